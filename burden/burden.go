// Package burden turns evicted Indel sites into per-cell calls and computes
// the false negative corrected Indel and damage burden of each cell.
package burden

import (
	"github.com/dasnellings/scIndel/extract"
	"github.com/dasnellings/scIndel/genotype"
	"github.com/dasnellings/scIndel/report"
	"github.com/dasnellings/scIndel/samples"
	"strconv"
	"strings"
)

// Call codes appended to samples.Meta.Calls for every joint site.
const (
	CallMissing    byte = '.'
	CallRef        byte = '0' // diploid cell, no alt reads
	CallHet        byte = '1' // ref and alt reads
	CallHom        byte = '2' // diploid cell, alt reads only
	CallHapRef     byte = '3'
	CallHapAlt     byte = '4'
	CallHapBulkRef byte = '5'
	CallHapBulkAlt byte = '6'
)

// Tally counts sites where every bulk shows the germline genotype used to
// estimate sensitivity.
type Tally struct {
	HetBulk  int
	HomBulk  int
	Detected int // sites counted above with an alt call in some cell
}

// Count records the bulk and cell outcome of one site.
func (t *Tally) Count(b genotype.Bulk, c genotype.Cells, fltBulk, haploidBulk bool) {
	if fltBulk || !b.Expected(haploidBulk) {
		return
	}
	if haploidBulk {
		t.HomBulk++
	} else {
		t.HetBulk++
	}
	if c.AltDetected {
		t.Detected++
	}
}

// Expected is the denominator of the dropout and false negative rates.
func (t Tally) Expected(haploidBulk bool) int {
	if haploidBulk {
		return t.HomBulk
	}
	return t.HetBulk
}

// bulkDepth sums ref and alt over the bulks. When any bulk has alt reads the
// per-bulk alt depths are reported instead of their sum.
func bulkDepth(site *extract.Site) (ref int, alt string) {
	var altSum int
	perBulk := make([]string, len(site.Bulk))
	for i, b := range site.Bulk {
		ref += b.Ref()
		altSum += b.AltDepth()
		perBulk[i] = strconv.Itoa(b.AltDepth())
	}
	if altSum == 0 {
		return ref, "0"
	}
	return ref, strings.Join(perBulk, ":")
}

func window(a *extract.Allele) (start, end string) {
	if !a.HasWindow {
		return ".", "."
	}
	return strconv.Itoa(a.WinStart), strconv.Itoa(a.WinEnd)
}

// cellDetail is name:altFwd:altRev:numTags:tags:winStart:winEnd.
func cellDetail(name string, a *extract.Allele) string {
	start, end := window(a)
	return strings.Join([]string{name, strconv.Itoa(a.AltFwd()), strconv.Itoa(a.AltRev()),
		strconv.Itoa(a.TagCount), a.Tags, start, end}, ":")
}

func joinInts(vals []int) string {
	words := make([]string, len(vals))
	for i := range vals {
		words[i] = strconv.Itoa(vals[i])
	}
	return strings.Join(words, ",")
}

// damageDetail is name:adf:adr:numTags:tags:winStart:winEnd with all alleles.
func damageDetail(name string, a *extract.Allele) string {
	start, end := window(a)
	return strings.Join([]string{name, joinInts(a.Fwd), joinInts(a.Rev),
		strconv.Itoa(a.TagCount), a.Tags, start, end}, ":")
}

func callCode(a *extract.Allele, ploidy, minJoint int, haploidBulk bool) byte {
	switch {
	case a.Flt || a.Dp == 0:
		return CallMissing
	case a.Ref() > 0 && a.AltDepth() >= minJoint:
		return CallHet
	case a.AltDepth() >= minJoint:
		if haploidBulk {
			return CallHapBulkAlt
		}
		if ploidy == 1 {
			return CallHapAlt
		}
		return CallHom
	case a.AltDepth() > 0:
		return CallMissing
	case haploidBulk:
		return CallHapBulkRef
	case ploidy == 1:
		return CallHapRef
	}
	return CallRef
}

// Aggregate handles one site leaving the Indel window. Unfiltered sites with
// at least two joint alt cells add a call code to every cell and may produce
// a JV line. Alt calls are written as an NV line and count toward the Indel
// burden. A filtered site only reaches here when filtered sites are shown; its
// alt calls are written as an FV line and not counted.
func Aggregate(site *extract.Site, cells []*samples.Meta, minJoint int, haploidBulk bool, w *report.Writer) {
	var nv, jv []string
	joint := !site.Flt && site.NumJointAlt >= 2
	for i, c := range site.Cell {
		if joint {
			cells[i].Calls = append(cells[i].Calls, callCode(c, cells[i].Ploidy, minJoint, haploidBulk))
			if c.AltDepth() >= minJoint {
				jv = append(jv, cellDetail(cells[i].Name, c))
			}
		}
		if c.IsAlt {
			if !site.Flt {
				cells[i].Indel++
			}
			nv = append(nv, cellDetail(cells[i].Name, c))
		}
	}
	if len(nv) == 0 && len(jv) == 0 {
		return
	}
	ref, alt := bulkDepth(site)
	out := report.Site{Chr: site.Chr, Pos: site.Pos, Ref: site.Ref, Alt: site.AltText(), BulkRef: ref, BulkAlt: alt}
	if len(nv) > 0 {
		out.Tag, out.Cells = report.TagIndel, nv
		if site.Flt {
			out.Tag = report.TagFiltered
		}
		w.Site(out)
	}
	if len(jv) > 0 {
		out.Tag, out.Cells = report.TagJoint, jv
		w.Site(out)
	}
}

// Damage counts the single-strand damage calls of a site and writes them as
// a DV line. Excluded sites are counted but not written.
func Damage(site *extract.Site, cells []*samples.Meta, excluded bool, w *report.Writer) {
	var dv []string
	for i, c := range site.Cell {
		if !c.IsDmg {
			continue
		}
		dv = append(dv, damageDetail(cells[i].Name, c))
		cells[i].Dmg++
	}
	if len(dv) == 0 || excluded {
		return
	}
	ref, alt := bulkDepth(site)
	w.Site(report.Site{Tag: report.TagDamage, Chr: site.Chr, Pos: site.Pos, Ref: site.Ref, Alt: site.AltText(),
		BulkRef: ref, BulkAlt: alt, Cells: dv})
}
