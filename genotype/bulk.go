// Package genotype classifies bulk zygosity and per-cell calls at one site.
package genotype

import (
	"github.com/dasnellings/scIndel/extract"
)

// BulkParams are the bulk genotyping thresholds.
type BulkParams struct {
	MinDp    int     // below this depth the site is filtered for bulk
	MinHetDp int     // min depth of each allele for a het, and of alt for a hom
	MaxAltDp int     // max ref depth of an alt-hom bulk, max alt depth of a ref-hom bulk
	MinHetAb float64 // min fraction of each allele in a het
}

// Bulk aggregates the bulk genotypes of one site.
type Bulk struct {
	AllHet     bool
	AllHom     bool
	AllGoodAlt bool // every bulk has at least MinHetDp alt reads
}

// Expected is true when the bulks show the germline genotype used for
// dropout and false negative estimation: all alt-hom for a haploid bulk,
// all het otherwise.
func (b Bulk) Expected(haploid bool) bool {
	if haploid {
		return b.AllHom
	}
	return b.AllHet
}

// ClassifyBulk sets IsHet and IsHom on each bulk sample. A bulk below MinDp
// filters the site for bulk.
func ClassifyBulk(site *extract.Site, p BulkParams) Bulk {
	ans := Bulk{AllHet: true, AllHom: true, AllGoodAlt: true}
	for _, b := range site.Bulk {
		b.IsHet, b.IsHom = false, false
		if b.OnBoth(0) && b.OnBoth(1) && b.Ref() >= p.MinHetDp && b.AltDepth() >= p.MinHetDp {
			minAllele := float64(b.Dp) * p.MinHetAb
			if float64(b.Ref()) >= minAllele && float64(b.AltDepth()) >= minAllele {
				b.IsHet = true
			}
		}
		if !b.IsHet && b.AltDepth() >= p.MinHetDp && b.OnBoth(1) && b.Ref() <= p.MaxAltDp {
			b.IsHom = true
		}
		if b.AltDepth() < p.MinHetDp {
			ans.AllGoodAlt = false
		}
		if !b.IsHet {
			ans.AllHet = false
		}
		if !b.IsHom {
			ans.AllHom = false
		}
		if b.Dp < p.MinDp {
			site.FltBulk = true
		}
	}
	return ans
}

// BulkDiff is true when at least one bulk has no alt reads and another has
// well supported alt reads on both strands.
func BulkDiff(site *extract.Site, minAlt, minAltStrand int) bool {
	var numRef, numAlt int
	for _, b := range site.Bulk {
		switch {
		case b.AltDepth() == 0:
			numRef++
		case b.AltDepth() >= minAlt && b.AltFwd() >= minAltStrand && b.AltRev() >= minAltStrand:
			numAlt++
		}
	}
	return numRef > 0 && numAlt > 0
}

// RefHomBulks counts bulks with at most maxAlt alt reads.
func RefHomBulks(site *extract.Site, maxAlt int) int {
	var ans int
	for _, b := range site.Bulk {
		if b.AltDepth() <= maxAlt {
			ans++
		}
	}
	return ans
}
