package strand

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestIsSingleStrand(t *testing.T) {
	tests := []struct {
		fwd, rev []int
		expected bool
	}{
		{[]int{0, 5}, []int{6, 0}, true},  // alt forward only, ref reverse only
		{[]int{5, 0}, []int{0, 5}, true},  // alt reverse only
		{[]int{3, 5}, []int{6, 0}, false}, // ref and alt share the forward strand
		{[]int{0, 5}, []int{6, 2}, false}, // alt on both strands
		{[]int{0, 0}, []int{0, 0}, true},
		{[]int{4}, []int{4}, false},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, IsSingleStrand(Depth{Fwd: test.fwd, Rev: test.rev}), "fwd=%v rev=%v", test.fwd, test.rev)
	}
}

func TestMinMerge(t *testing.T) {
	d := Depth{Fwd: []int{4, 7}, Rev: []int{3, 1}}
	d.MinMerge(Depth{Fwd: []int{6, 2}, Rev: []int{1, 5}})
	assert.Equal(t, []int{4, 2}, d.Fwd)
	assert.Equal(t, []int{1, 1}, d.Rev)
	assert.Equal(t, 8, d.Total())
	assert.Equal(t, 3, d.Allele(1))
	assert.True(t, d.OnBoth(1))
	assert.Equal(t, 0, d.Allele(5))
}
