package genotype

import (
	"github.com/dasnellings/scIndel/extract"
	"github.com/dasnellings/scIndel/samples"
	"github.com/stretchr/testify/assert"
	"testing"
)

var testBulkParams = BulkParams{MinDp: 20, MinHetDp: 8, MaxAltDp: 0, MinHetAb: 0.3}

var testCellParams = CellParams{MinAlt: 5, MinAltStrand: 2, MinAb: 0.2, MaxRef: 0, MinJoint: 2, MinJointStrand: 1, MinDmgStrand: 4}

// obs builds an observation from forward and reverse ref/alt depths.
func obs(refF, altF, refR, altR int) *extract.Allele {
	return extract.NewAllele([]int{refF, altF}, []int{refR, altR})
}

func TestClassifyBulk(t *testing.T) {
	tests := []struct {
		name     string
		bulk     []*extract.Allele
		expected Bulk
		fltBulk  bool
		het, hom bool
	}{
		{"het", []*extract.Allele{obs(6, 5, 6, 5)}, Bulk{AllHet: true, AllGoodAlt: true}, false, true, false},
		{"hom", []*extract.Allele{obs(0, 12, 0, 10)}, Bulk{AllHom: true, AllGoodAlt: true}, false, false, true},
		{"hom with ref", []*extract.Allele{obs(1, 12, 0, 10)}, Bulk{AllGoodAlt: true}, false, false, false},
		{"imbalanced", []*extract.Allele{obs(30, 5, 30, 5)}, Bulk{AllGoodAlt: true}, false, false, false},
		{"ref low depth", []*extract.Allele{obs(5, 0, 5, 0)}, Bulk{}, true, false, false},
		{"alt single strand", []*extract.Allele{obs(10, 10, 10, 0)}, Bulk{AllGoodAlt: true}, false, false, false},
	}

	for _, test := range tests {
		site := &extract.Site{Bulk: test.bulk}
		ans := ClassifyBulk(site, testBulkParams)
		assert.Equal(t, test.expected, ans, test.name)
		assert.Equal(t, test.fltBulk, site.FltBulk, test.name)
		assert.Equal(t, test.het, test.bulk[0].IsHet, test.name)
		assert.Equal(t, test.hom, test.bulk[0].IsHom, test.name)
	}
}

func TestBulkDiff(t *testing.T) {
	site := &extract.Site{Bulk: []*extract.Allele{obs(10, 0, 10, 0), obs(6, 5, 6, 5)}}
	assert.True(t, BulkDiff(site, 5, 2))
	assert.Equal(t, 1, RefHomBulks(site, 0))

	site = &extract.Site{Bulk: []*extract.Allele{obs(10, 0, 10, 0), obs(6, 5, 6, 1)}}
	assert.False(t, BulkDiff(site, 5, 2))

	site = &extract.Site{Bulk: []*extract.Allele{obs(10, 1, 10, 0), obs(6, 5, 6, 5)}}
	assert.False(t, BulkDiff(site, 5, 2))
	assert.Equal(t, 0, RefHomBulks(site, 0))
}

func TestClassifyCellsCalls(t *testing.T) {
	cells := []*samples.Meta{{Name: "a", Ploidy: 2}, {Name: "b", Ploidy: 2}, {Name: "c", Ploidy: 2}}
	site := &extract.Site{
		Bulk: []*extract.Allele{obs(10, 0, 10, 0)},
		Cell: []*extract.Allele{obs(0, 4, 0, 4), obs(3, 4, 0, 4), obs(0, 1, 0, 1)},
	}
	bulk := ClassifyBulk(site, testBulkParams)
	ans := ClassifyCells(site, bulk, cells, testCellParams, false)

	assert.True(t, site.Cell[0].IsAlt)
	assert.False(t, site.Cell[1].IsAlt) // ref reads above the ceiling
	assert.True(t, site.Cell[1].IsJointAlt)
	assert.False(t, site.Cell[2].IsAlt)
	assert.True(t, site.Cell[2].IsJointAlt)
	assert.Equal(t, 3, ans.NumJointAlt)
	assert.Equal(t, 3, site.NumJointAlt)
	assert.True(t, ans.AltDetected)
	for _, c := range cells {
		assert.Zero(t, c.Fn) // bulk is ref/ref, no false negatives counted
		assert.Zero(t, c.Ado[1])
	}

	site.Cell[0].Flt = true
	ans = ClassifyCells(site, bulk, cells, testCellParams, false)
	assert.False(t, site.Cell[0].IsAlt)
	assert.False(t, site.Cell[0].IsJointAlt)
	assert.False(t, ans.AltDetected)
}

func TestClassifyCellsHetBulkCounters(t *testing.T) {
	cells := []*samples.Meta{{Name: "a", Ploidy: 2}, {Name: "b", Ploidy: 1}, {Name: "c", Ploidy: 2}}
	site := &extract.Site{
		Bulk: []*extract.Allele{obs(6, 6, 6, 6)},
		Cell: []*extract.Allele{
			obs(0, 4, 0, 4), // alt only, dropped ref
			obs(0, 0, 0, 0), // no coverage
			obs(0, 5, 6, 0), // single strand signature
		},
	}
	bulk := ClassifyBulk(site, testBulkParams)
	assert.True(t, bulk.AllHet)
	ClassifyCells(site, bulk, cells, testCellParams, false)

	assert.Equal(t, [2]int{1, 0}, cells[0].Ado)
	assert.Equal(t, [2]int{1, 1}, cells[1].Ado)
	assert.Equal(t, [2]int{0, 0}, cells[2].Ado)

	assert.Equal(t, 0, cells[0].Fn)
	assert.Equal(t, 1, cells[1].Fn)
	assert.Equal(t, 1, cells[2].Fn)

	assert.True(t, site.Cell[2].IsDmg)
	assert.Equal(t, 1, cells[2].DmgFp)
	assert.Equal(t, [2]int{1, 1}, cells[2].DmgFn)
	assert.Equal(t, [2]int{1, 0}, cells[0].DmgFn)
	assert.Equal(t, [2]int{1, 1}, cells[1].DmgFn)

	// haploid cells do not count damage false positives
	site.Cell[1] = obs(0, 5, 6, 0)
	ClassifyCells(site, bulk, cells, testCellParams, false)
	assert.True(t, site.Cell[1].IsDmg)
	assert.Equal(t, 0, cells[1].DmgFp)
}

func TestClassifyCellsHaploidBulk(t *testing.T) {
	cells := []*samples.Meta{{Name: "a", Ploidy: 1}}
	site := &extract.Site{
		Bulk: []*extract.Allele{obs(0, 12, 0, 12)},
		Cell: []*extract.Allele{obs(0, 1, 0, 0)},
	}
	bulk := ClassifyBulk(site, testBulkParams)
	assert.True(t, bulk.Expected(true))
	ClassifyCells(site, bulk, cells, testCellParams, true)
	assert.Equal(t, [2]int{0, 1}, cells[0].Ado)
	assert.Equal(t, 1, cells[0].Fn)
}

func TestAltSupport(t *testing.T) {
	site := &extract.Site{Cell: []*extract.Allele{obs(0, 2, 0, 3), obs(0, 4, 0, 4), obs(1, 1, 0, 0)}}
	site.Cell[1].Flt = true
	fwd, rev := AltSupport(site)
	assert.Equal(t, 3, fwd)
	assert.Equal(t, 3, rev)
}
