package filter

import (
	"github.com/dasnellings/scIndel/extract"
)

// BulkDiff is a site where bulk samples disagree on the alternate allele.
type BulkDiff struct {
	Chr  string
	Pos  int
	Data string // tab delimited ctg, pos, ref, alt, per-bulk adf:adr
	Flt  bool
}

func (b *BulkDiff) Chrom() string { return b.Chr }
func (b *BulkDiff) Position() int { return b.Pos }
func (b *BulkDiff) Filtered() bool { return b.Flt }
func (b *BulkDiff) MarkFiltered() { b.Flt = true }

// BulkDiffs suppresses bulk disagreement sites that lie within a window of each other.
type BulkDiffs struct {
	*Window[*BulkDiff]
	excluded Sites
}

// NewBulkDiffs returns an empty queue. emit receives each surviving site.
func NewBulkDiffs(size int, excluded Sites, emit func(*BulkDiff)) *BulkDiffs {
	return &BulkDiffs{Window: NewWindow(size, false, emit), excluded: excluded}
}

// Add enqueues a new disagreement site. flt is the record level bulk filter.
// Any site still pending when a new one arrives is marked filtered, as is the new site.
func (q *BulkDiffs) Add(chr string, pos int, data string, flt bool) {
	q.Advance(chr, pos)
	b := &BulkDiff{Chr: chr, Pos: pos, Data: data, Flt: flt || q.excluded.Has(chr, pos)}
	q.Each(func(e *BulkDiff) {
		e.MarkFiltered()
		b.MarkFiltered()
	})
	q.Push(b)
}

// Indels holds candidate Indel sites until they leave the window.
type Indels struct {
	*Window[*extract.Site]
	excluded Sites
}

// NewIndels returns an empty queue. emit receives each evicted site that passed,
// or every evicted site when showFiltered is set.
func NewIndels(size int, showFiltered bool, excluded Sites, emit func(*extract.Site)) *Indels {
	return &Indels{Window: NewWindow(size, showFiltered, emit), excluded: excluded}
}

// Add evicts sites that fell behind site and enqueues it. A site is filtered
// if it is excluded or failed the bulk or Indel filters. Two pending sites
// that share a cell with alternate reads at both are both filtered.
func (q *Indels) Add(site *extract.Site) {
	q.Advance(site.Chr, site.Pos)
	if site.FltIndel || site.FltBulk || q.excluded.Has(site.Chr, site.Pos) {
		site.MarkFiltered()
	}
	q.Each(func(prev *extract.Site) {
		if sharesAltCell(prev, site) {
			prev.MarkFiltered()
			site.MarkFiltered()
		}
	})
	q.Push(site)
}

func sharesAltCell(a, b *extract.Site) bool {
	for i := range b.Cell {
		if i < len(a.Cell) && a.Cell[i].AltDepth() > 0 && b.Cell[i].AltDepth() > 0 {
			return true
		}
	}
	return false
}
