// Package samples builds the per-cell metadata and column mapping used while
// streaming a joint Indel VCF with bulk samples in the leading columns.
package samples

import (
	"github.com/pkg/errors"
	"github.com/vertgenlab/gonomics/vcf"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"log"
	"strings"
)

// Meta holds the identity and the running counters of one retained cell.
type Meta struct {
	Name   string
	Ploidy int
	Col    int    // sample column, 0 is the first sample after FORMAT
	Ado    [2]int // allele dropout of ref and alt
	Fn     int
	Indel  int
	Dmg    int
	DmgFp  int
	DmgFn  [2]int
	Calls  []byte // one call code per joint site
}

// Lists are the auxiliary sample sets loaded before streaming.
type Lists struct {
	Excluded     map[string]bool
	Haploid      map[string]bool
	Replicates   map[string]string // member -> representative
	HaploidCells bool
}

// Registry maps sample columns to cells.
type Registry struct {
	Cells   []*Meta
	NumBulk int
	cols    int
	rep     []int
	cellIdx []int
}

func trimBam(s string) string {
	return strings.TrimSuffix(s, ".bam")
}

func lookup[V any](m map[string]V, name string) (V, bool) {
	if v, found := m[name]; found {
		return v, true
	}
	v, found := m[trimBam(name)]
	return v, found
}

// NewRegistry builds the cell list from the ordered sample names of the #CHROM line.
func NewRegistry(names []string, numBulk int, l Lists) (*Registry, error) {
	if numBulk < 0 || numBulk > len(names) {
		return nil, errors.Errorf("%d bulk samples requested but only %d sample columns present", numBulk, len(names))
	}
	r := &Registry{
		NumBulk: numBulk,
		cols:    len(names),
		rep:     make([]int, len(names)),
		cellIdx: make([]int, len(names)),
	}

	var found bool
	for i := range names {
		r.cellIdx[i] = -1
		if i < numBulk {
			continue
		}
		if _, found = lookup(l.Excluded, names[i]); found {
			continue
		}
		if _, found = lookup(l.Replicates, names[i]); found {
			continue
		}
		m := &Meta{Name: trimBam(names[i]), Ploidy: 2, Col: i}
		if hap, _ := lookup(l.Haploid, names[i]); hap || l.HaploidCells {
			m.Ploidy = 1
		}
		r.cellIdx[i] = len(r.Cells)
		r.Cells = append(r.Cells, m)
	}

	nameToCol := make(map[string]int, 2*len(names))
	for i := range names {
		nameToCol[names[i]] = i
		nameToCol[trimBam(names[i])] = i
	}
	warnMissing("excluded", maps.Keys(l.Excluded), nameToCol)
	warnMissing("haploid", maps.Keys(l.Haploid), nameToCol)

	var rep string
	var col int
	for i := range names {
		r.rep[i] = i
		if rep, found = lookup(l.Replicates, names[i]); !found {
			continue
		}
		if col, found = nameToCol[rep]; found {
			r.rep[i] = col
		}
	}
	return r, nil
}

// warnMissing logs listed names that match no sample column.
func warnMissing(list string, names []string, nameToCol map[string]int) {
	slices.Sort(names)
	var found bool
	for _, name := range names {
		if _, found = nameToCol[name]; found {
			continue
		}
		if _, found = nameToCol[trimBam(name)]; !found {
			log.Printf("WARNING: %s sample %s is not in the VCF header\n", list, name)
		}
	}
}

// NumColumns is the number of sample columns in the header.
func (r *Registry) NumColumns() int {
	return r.cols
}

// Rep returns the column whose cell receives the observations of column col.
func (r *Registry) Rep(col int) int {
	return r.rep[col]
}

// Cell returns the index in Cells receiving the data of column col, or -1.
func (r *Registry) Cell(col int) int {
	return r.cellIdx[r.rep[col]]
}

// Names returns the names of all retained cells.
func (r *Registry) Names() []string {
	ans := make([]string, len(r.Cells))
	for i := range r.Cells {
		ans[i] = r.Cells[i].Name
	}
	return ans
}

// NamesFromHeader returns sample names in column order.
func NamesFromHeader(h vcf.Header) []string {
	ans := make([]string, len(h.Samples))
	for key, val := range h.Samples {
		ans[val] = key
	}
	return ans
}
