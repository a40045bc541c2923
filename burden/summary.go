package burden

import (
	"github.com/dasnellings/scIndel/report"
	"github.com/dasnellings/scIndel/samples"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"strconv"
)

// Summary holds the end of stream per-cell statistics.
type Summary struct {
	HaploidBulk bool
	Tally       Tally
	Names       []string
	Ado         []float64
	Calls       []string
	Indel       []int
	Fnr         []float64
	CorrIndel   []float64
	Dmg         []int
	DmgFpr      []float64 // diploid bulk only
	DmgFnr      []float64 // diploid bulk only
	CorrDmg     []float64 // diploid bulk only
}

// rate normalizes count by the number of expected sites n. A haploid cell
// measured against a diploid bulk only sees the alt channel, so its rate is
// rescaled to 2*count/n - 1.
func rate(count, n, ploidy int, haploidBulk bool) float64 {
	if !haploidBulk && ploidy == 1 {
		return 2*float64(count)/float64(n) - 1
	}
	return float64(count) / float64(n)
}

// Summarize computes dropout, false negative rate, and corrected counts for each cell.
func Summarize(cells []*samples.Meta, t Tally, haploidBulk bool) Summary {
	n := t.Expected(haploidBulk)
	s := Summary{
		HaploidBulk: haploidBulk,
		Tally:       t,
		Names:       make([]string, len(cells)),
		Ado:         make([]float64, len(cells)),
		Calls:       make([]string, len(cells)),
		Indel:       make([]int, len(cells)),
		Fnr:         make([]float64, len(cells)),
		CorrIndel:   make([]float64, len(cells)),
		Dmg:         make([]int, len(cells)),
	}
	if !haploidBulk {
		s.DmgFpr = make([]float64, len(cells))
		s.DmgFnr = make([]float64, len(cells))
		s.CorrDmg = make([]float64, len(cells))
	}
	for i, c := range cells {
		s.Names[i] = c.Name
		s.Calls[i] = string(c.Calls)
		s.Ado[i] = rate(c.Ado[1], n, c.Ploidy, haploidBulk)
		s.Indel[i] = c.Indel
		s.Fnr[i] = rate(c.Fn, n, c.Ploidy, haploidBulk)
		s.CorrIndel[i] = float64(c.Indel) / (1 - s.Fnr[i])
		s.Dmg[i] = c.Dmg
		if haploidBulk {
			continue
		}
		s.DmgFpr[i] = float64(c.DmgFp) / float64(n)
		s.DmgFnr[i] = rate(c.DmgFn[1], n, c.Ploidy, haploidBulk)
		s.CorrDmg[i] = (float64(c.Dmg) - s.CorrIndel[i]*s.DmgFpr[i]) / (1 - s.Fnr[i])
	}
	return s
}

// SensitivityBinary is the fraction of expected sites detected in at least one cell.
func (s Summary) SensitivityBinary() float64 {
	return float64(s.Tally.Detected) / float64(s.Tally.Expected(s.HaploidBulk))
}

// SensitivityFnr is the mean of 1 - FNR over cells.
func (s Summary) SensitivityFnr() (sum, ratio float64) {
	sum = floats.Sum(s.Fnr)
	return sum, (float64(len(s.Fnr)) - sum) / float64(len(s.Fnr))
}

// MeanCorrected is the mean FNR corrected Indel count over cells.
func (s Summary) MeanCorrected() float64 {
	return stat.Mean(s.CorrIndel, nil)
}

// Write emits the per-cell rows, one NA line per cell, and the sensitivity lines.
func (s Summary) Write(w *report.Writer) {
	w.Ints(report.TagNumIndel, s.Indel)
	w.Floats(report.TagIndelFnr, s.Fnr, 4)
	w.Floats(report.TagCorrIndel, s.CorrIndel, 2)
	w.Ints(report.TagNumDamage, s.Dmg)
	if !s.HaploidBulk {
		w.Floats(report.TagDamageFpr, s.DmgFpr, 4)
		w.Floats(report.TagDamageFnr, s.DmgFnr, 4)
		w.Floats(report.TagCorrDamage, s.CorrDmg, 2)
	}
	for i := range s.Names {
		w.Line(report.TagAlign, s.Names[i], strconv.FormatFloat(s.Ado[i], 'f', 4, 64), s.Calls[i])
	}
	w.Line(report.TagSensBinary, strconv.Itoa(s.Tally.Detected), strconv.Itoa(s.Tally.Expected(s.HaploidBulk)),
		strconv.FormatFloat(s.SensitivityBinary(), 'f', 4, 64))
	sum, ratio := s.SensitivityFnr()
	w.Line(report.TagSensFnr, strconv.Itoa(len(s.Fnr)), strconv.FormatFloat(sum, 'f', 4, 64),
		strconv.FormatFloat(ratio, 'f', 4, 64))
}
