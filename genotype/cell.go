package genotype

import (
	"github.com/dasnellings/scIndel/extract"
	"github.com/dasnellings/scIndel/samples"
	"github.com/dasnellings/scIndel/strand"
)

// CellParams are the single-cell calling thresholds.
type CellParams struct {
	MinAlt         int
	MinAltStrand   int
	MinAb          float64
	MaxRef         int
	MinJoint       int
	MinJointStrand int
	MinDmgStrand   int
}

// Cells summarizes the cell calls of one site.
type Cells struct {
	NumJointAlt int
	AltDetected bool // some cell called alt at an unfiltered bulk site
}

// ClassifyCells sets IsAlt, IsJointAlt and IsDmg on every cell of site and
// updates the dropout, false negative and damage counters of cells.
func ClassifyCells(site *extract.Site, bulk Bulk, cells []*samples.Meta, p CellParams, haploidBulk bool) Cells {
	var ans Cells
	expected := !site.FltBulk && bulk.Expected(haploidBulk)

	// a haploid bulk only drops the alt allele
	if expected {
		for i, c := range site.Cell {
			if !haploidBulk && (c.Flt || c.Ref() < p.MinJoint) {
				cells[i].Ado[0]++
			}
			if c.Flt || c.AltDepth() < p.MinJoint {
				cells[i].Ado[1]++
			}
		}
	}

	dmgSite := bulk.AllHet && !site.FltBulk
	for i, c := range site.Cell {
		// haploid cells with ref reads are already filtered
		c.IsAlt = !c.Flt && c.AltDepth() >= p.MinAlt && c.AltFwd() >= p.MinAltStrand && c.AltRev() >= p.MinAltStrand &&
			float64(c.AltDepth()) >= float64(c.Dp)*p.MinAb && c.Ref() <= p.MaxRef
		c.IsJointAlt = !c.Flt && c.AltDepth() >= p.MinJoint && c.AltFwd() >= p.MinJointStrand && c.AltRev() >= p.MinJointStrand
		if c.IsJointAlt {
			ans.NumJointAlt++
		}
		if expected && !c.IsAlt {
			cells[i].Fn++
		}
		if !site.FltBulk && c.IsAlt {
			ans.AltDetected = true
		}

		c.IsDmg = !c.FltDmg && c.AltDepth() >= p.MinDmgStrand && c.Ref() >= p.MinDmgStrand && strand.IsSingleStrand(c.Depth)
		if dmgSite {
			if c.FltDmg || c.Fwd[0] < p.MinDmgStrand || c.Rev[0] < p.MinDmgStrand {
				cells[i].DmgFn[0]++
			}
			if c.FltDmg || c.AltFwd() < p.MinDmgStrand || c.AltRev() < p.MinDmgStrand {
				cells[i].DmgFn[1]++
			}
			if cells[i].Ploidy > 1 && c.IsDmg {
				cells[i].DmgFp++
			}
		}
	}
	site.NumJointAlt = ans.NumJointAlt
	return ans
}

// AltSupport sums the alt strand depths over unfiltered cells.
func AltSupport(site *extract.Site) (fwd, rev int) {
	for _, c := range site.Cell {
		if c.Flt {
			continue
		}
		fwd += c.AltFwd()
		rev += c.AltRev()
	}
	return fwd, rev
}
