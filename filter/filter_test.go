package filter

import (
	"github.com/dasnellings/scIndel/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

type point struct {
	chr string
	pos int
	flt bool
}

func (p *point) Chrom() string { return p.chr }
func (p *point) Position() int { return p.pos }
func (p *point) Filtered() bool { return p.flt }
func (p *point) MarkFiltered() { p.flt = true }

func TestWindowOrder(t *testing.T) {
	var out []int
	w := NewWindow(10, false, func(p *point) { out = append(out, p.pos) })
	for i := 0; i < 40; i++ { // force the ring to grow
		w.Push(&point{chr: "chr1", pos: i})
	}
	assert.Equal(t, 40, w.Len())
	w.Advance("chr1", 45)
	assert.Equal(t, 35, w.At(0).pos)
	assert.Equal(t, 5, w.Len())
	w.Push(&point{chr: "chr1", pos: 45})
	w.Advance("chr2", 1)
	assert.Zero(t, w.Len())
	require.Len(t, out, 41)
	for i := 0; i < 40; i++ {
		assert.Equal(t, i, out[i])
	}
	assert.Equal(t, 45, out[40])
}

func TestWindowBoundary(t *testing.T) {
	var out []int
	w := NewWindow(100, false, func(p *point) { out = append(out, p.pos) })
	w.Push(&point{chr: "chr1", pos: 100})
	w.Advance("chr1", 200) // exactly one window away
	assert.Equal(t, 1, w.Len())
	w.Advance("chr1", 201)
	assert.Zero(t, w.Len())
	assert.Equal(t, []int{100}, out)
}

func TestWindowFlushAndStats(t *testing.T) {
	var passed, all []int
	w := NewWindow(5, false, func(p *point) { passed = append(passed, p.pos) })
	v := NewWindow(5, true, func(p *point) { all = append(all, p.pos) })
	for _, p := range []point{{"chr1", 1, false}, {"chr1", 2, true}, {"chr1", 3, false}} {
		a, b := p, p
		w.Push(&a)
		v.Push(&b)
	}
	w.Flush()
	v.Flush()
	assert.Equal(t, []int{1, 3}, passed)
	assert.Equal(t, []int{1, 2, 3}, all)
	assert.Equal(t, Stats{Pushed: 3, Passed: 2, Suppressed: 1}, w.Stats())
	assert.Equal(t, w.Stats(), v.Stats())
}

func TestReadSites(t *testing.T) {
	file := filepath.Join(t.TempDir(), "sites.vcf")
	require.NoError(t, os.WriteFile(file, []byte("##fileformat=VCFv4.2\n#CHROM\tPOS\nchr1\t100\t.\tA\tC\nchr2\t5\n"), 0644))
	s := ReadSites(file)
	assert.Len(t, s, 2)
	assert.True(t, s.Has("chr1", 100))
	assert.True(t, s.Has("chr2", 5))
	assert.False(t, s.Has("chr1", 5))

	var none Sites
	assert.False(t, none.Has("chr1", 100))
	assert.Empty(t, ReadSites(""))
}

func TestReadSitesNoFinalNewline(t *testing.T) {
	file := filepath.Join(t.TempDir(), "sites.txt")
	require.NoError(t, os.WriteFile(file, []byte("chr1\t100\nchr2\t5"), 0644))
	s := ReadSites(file)
	assert.Len(t, s, 2)
	assert.True(t, s.Has("chr2", 5))
}

func TestBulkDiffs(t *testing.T) {
	var out []string
	q := NewBulkDiffs(100, Sites{"chr1:900": true}, func(b *BulkDiff) { out = append(out, b.Data) })
	q.Add("chr1", 100, "a", false)
	q.Add("chr1", 150, "b", false) // interferes with a
	q.Add("chr1", 400, "c", false)
	q.Add("chr1", 600, "d", true)
	q.Add("chr1", 900, "e", false)
	q.Add("chr2", 10, "f", false)
	q.Flush()
	assert.Equal(t, []string{"c", "f"}, out)
	assert.Equal(t, Stats{Pushed: 6, Passed: 2, Suppressed: 4}, q.Stats())
}

func site(chr string, pos int, cellAlt ...int) *extract.Site {
	s := &extract.Site{Chr: chr, Pos: pos, Ref: "AT", Alt: []string{"A"}, Biallelic: true}
	for _, alt := range cellAlt {
		s.Cell = append(s.Cell, extract.NewAllele([]int{0, alt}, []int{0, 0}))
	}
	return s
}

func TestIndelsSharedCell(t *testing.T) {
	var out []int
	q := NewIndels(100, false, nil, func(s *extract.Site) { out = append(out, s.Pos) })
	a, b, c := site("chr1", 100, 4, 0), site("chr1", 150, 3, 0), site("chr1", 170, 0, 2)
	q.Add(a)
	q.Add(b)
	q.Add(c)
	assert.True(t, a.Flt)
	assert.True(t, b.Flt)
	assert.False(t, c.Flt) // different cell

	d := site("chr1", 500, 5, 5) // too far from c
	q.Add(d)
	q.Flush()
	assert.Equal(t, []int{170, 500}, out)
	assert.False(t, d.Flt)
}

func TestIndelsFilters(t *testing.T) {
	var out []int
	q := NewIndels(10, false, Sites{"chr1:300": true}, func(s *extract.Site) { out = append(out, s.Pos) })
	excluded := site("chr1", 300, 5)
	bulk := site("chr1", 400, 5)
	bulk.FltBulk = true
	indel := site("chr1", 500, 5)
	indel.FltIndel = true
	ok := site("chr1", 600, 5)
	for _, s := range []*extract.Site{excluded, bulk, indel, ok} {
		q.Add(s)
	}
	q.Flush()
	assert.Equal(t, []int{600}, out)
	assert.True(t, excluded.Flt)
	assert.Equal(t, Stats{Pushed: 4, Passed: 1, Suppressed: 3}, q.Stats())
}

func TestIndelsShowFiltered(t *testing.T) {
	var out []bool
	q := NewIndels(100, true, nil, func(s *extract.Site) { out = append(out, s.Flt) })
	q.Add(site("chr1", 100, 4))
	q.Add(site("chr1", 120, 4))
	q.Add(site("chr2", 1, 0))
	q.Flush()
	assert.Equal(t, []bool{true, true, false}, out)
}
