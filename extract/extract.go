// Package extract decodes one joint pileup record into per-bulk and per-cell
// allele observations, collapsing replicate columns into one logical cell.
package extract

import (
	"github.com/dasnellings/scIndel/samples"
	"github.com/dasnellings/scIndel/strand"
	"github.com/pkg/errors"
	"github.com/vertgenlab/gonomics/numbers"
	"github.com/vertgenlab/gonomics/vcf"
	"strconv"
	"strings"
)

// Stringency selects how an Indel is compared to the merged read window.
type Stringency int

const (
	Exact    Stringency = 1 // indel span equals the merged window
	Tolerant Stringency = 2 // both ends within 2bp of the merged window
	Overlap  Stringency = 3 // any overlap
)

// Matches is true if the indel span [start,end] tracks the window [winStart,winEnd].
func (s Stringency) Matches(start, end, winStart, winEnd int) bool {
	switch s {
	case Exact:
		return start == winStart && end == winEnd
	case Tolerant:
		return start >= winStart-2 && start <= winStart+2 && end >= winEnd-2 && end <= winEnd+2
	case Overlap:
		return start <= winEnd && (start >= winStart || end >= winStart)
	}
	return false
}

// Params are the record level thresholds.
type Params struct {
	MinMapQ     int
	MaxConflict int
	MinEndLen   float64
	Stringency  Stringency
}

// Allele is the observation of one sample at one record.
type Allele struct {
	strand.Depth
	Ad []int
	Dp int

	Flt    bool
	FltDmg bool // damage eligibility, not affected by the haploid two-allele filter

	Conflict  int
	TagCount  int
	Tags      string // set once all replicate columns are merged
	tagSeen   map[string]bool
	tagOrder  []string
	HasWindow bool
	WinStart  int
	WinEnd    int

	IsHet, IsHom             bool
	IsAlt, IsJointAlt, IsDmg bool
}

// NewAllele returns an observation from forward and reverse allele depths.
func NewAllele(fwd, rev []int) *Allele {
	a := &Allele{Depth: strand.Depth{Fwd: fwd, Rev: rev}, Ad: make([]int, len(fwd))}
	a.recount()
	return a
}

// Ref is the total reference depth.
func (a *Allele) Ref() int {
	return a.Ad[0]
}

// AltDepth is the total depth of the first alternate allele.
func (a *Allele) AltDepth() int {
	if len(a.Ad) < 2 {
		return 0
	}
	return a.Ad[1]
}

// AltFwd is the forward strand depth of the first alternate allele.
func (a *Allele) AltFwd() int {
	if len(a.Fwd) < 2 {
		return 0
	}
	return a.Fwd[1]
}

// AltRev is the reverse strand depth of the first alternate allele.
func (a *Allele) AltRev() int {
	if len(a.Rev) < 2 {
		return 0
	}
	return a.Rev[1]
}

func (a *Allele) recount() {
	a.Dp = 0
	for j := range a.Fwd {
		a.Ad[j] = a.Fwd[j] + a.Rev[j]
		a.Dp += a.Ad[j]
	}
}

func (a *Allele) addTag(tag string) {
	if a.tagSeen == nil {
		a.tagSeen = make(map[string]bool)
	}
	if a.tagSeen[tag] {
		return
	}
	a.tagSeen[tag] = true
	a.tagOrder = append(a.tagOrder, tag)
	a.TagCount = len(a.tagOrder)
}

func (a *Allele) addWindow(start, end int) {
	if !a.HasWindow {
		a.HasWindow = true
		a.WinStart, a.WinEnd = start, end
		return
	}
	a.WinStart = numbers.Min(a.WinStart, start)
	a.WinEnd = numbers.Max(a.WinEnd, end)
}

// merge folds a replicate observation of the same cell into a.
func (a *Allele) merge(b *Allele) {
	a.Flt = a.Flt || b.Flt
	a.FltDmg = a.FltDmg || b.FltDmg
	a.Conflict = numbers.Max(a.Conflict, b.Conflict)
	a.MinMerge(b.Depth)
	a.recount()
	for _, tag := range b.tagOrder {
		a.addTag(tag)
	}
	if b.HasWindow {
		a.addWindow(b.WinStart, b.WinEnd)
	}
}

// Site is one candidate record.
type Site struct {
	Chr  string
	Pos  int
	Ref  string
	Alt  []string
	Bulk []*Allele
	Cell []*Allele // indexed like samples.Registry.Cells

	Biallelic bool // exactly one ALT and not a substitution
	FltBulk   bool
	FltIndel  bool

	Flt         bool // window disposition
	NumJointAlt int
}

// AltText is the ALT column as written in the input.
func (s *Site) AltText() string {
	return strings.Join(s.Alt, ",")
}

// Key is the "contig:position" string used by the excluded-position set.
func (s *Site) Key() string {
	return s.Chr + ":" + strconv.Itoa(s.Pos)
}

// Chrom and Position satisfy filter.Entry.
func (s *Site) Chrom() string {
	return s.Chr
}

func (s *Site) Position() int {
	return s.Pos
}

func (s *Site) Filtered() bool {
	return s.Flt
}

func (s *Site) MarkFiltered() {
	s.Flt = true
}

// Extractor turns vcf records into Sites.
type Extractor struct {
	reg    *samples.Registry
	params Params
	format string
	schema Schema
}

// NewExtractor returns an Extractor for the columns in reg.
func NewExtractor(reg *samples.Registry, p Params) *Extractor {
	return &Extractor{reg: reg, params: p, format: "\x00"}
}

// Schema returns the field table for format, reparsing only when the FORMAT layout changes.
func (e *Extractor) Schema(format []string) (Schema, error) {
	f := strings.Join(format, ":")
	if f == e.format {
		return e.schema, nil
	}
	s, err := NewSchema(format)
	if err != nil {
		return s, err
	}
	e.format, e.schema = f, s
	return s, nil
}

// IndelSpan returns the first and last inserted or deleted base of an indel at pos.
func IndelSpan(pos int, ref, alt string) (start, end int) {
	start = pos + 1
	if len(ref) == 1 && len(alt) > 1 { // insertion, soft clip aligned
		return start, start + len(alt) - 2
	}
	return start, start + len(ref) - 2
}

// lowMapQ reports whether any per-sample mapping quality in AMQ is below min.
func lowMapQ(info string, min int) (bool, error) {
	for _, field := range strings.Split(info, ";") {
		if !strings.HasPrefix(field, "AMQ=") {
			continue
		}
		var low bool
		for _, word := range strings.Split(strings.TrimPrefix(field, "AMQ="), ",") {
			q, err := strconv.Atoi(word)
			if err != nil {
				return false, errors.Wrapf(err, "malformed AMQ in INFO: %s", info)
			}
			if q < min {
				low = true
			}
		}
		return low, nil
	}
	return false, nil
}

func parseInts(s string) ([]int, error) {
	words := strings.Split(s, ",")
	ans := make([]int, len(words))
	var err error
	for i := range words {
		ans[i], err = strconv.Atoi(words[i])
		if err != nil {
			return nil, err
		}
	}
	return ans, nil
}

// Extract decodes v. Errors are fatal schema or value errors.
func (e *Extractor) Extract(v vcf.Vcf) (*Site, error) {
	schema, err := e.Schema(v.Format)
	if err != nil {
		return nil, err
	}
	if len(v.Samples) != e.reg.NumColumns() {
		return nil, errors.Errorf("%s:%d has %d samples, header has %d", v.Chr, v.Pos, len(v.Samples), e.reg.NumColumns())
	}

	site := &Site{
		Chr:  v.Chr,
		Pos:  v.Pos,
		Ref:  v.Ref,
		Alt:  v.Alt,
		Bulk: make([]*Allele, 0, e.reg.NumBulk),
		Cell: make([]*Allele, len(e.reg.Cells)),
	}

	var low bool
	if low, err = lowMapQ(v.Info, e.params.MinMapQ); err != nil {
		return nil, err
	}
	if low {
		site.FltBulk, site.FltIndel = true, true
	}

	var a *Allele
	var cellIdx int
	for i := range v.Samples {
		cellIdx = -1
		if i >= e.reg.NumBulk {
			if cellIdx = e.reg.Cell(i); cellIdx == -1 {
				continue
			}
		}
		a, err = e.observe(site, v.Samples[i].FormatData, schema, cellIdx)
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d sample %d", v.Chr, v.Pos, i)
		}
		if cellIdx == -1 {
			site.Bulk = append(site.Bulk, a)
			continue
		}
		if site.Cell[cellIdx] == nil {
			site.Cell[cellIdx] = a
		} else {
			site.Cell[cellIdx].merge(a)
		}
	}
	for i := range site.Cell {
		if site.Cell[i] == nil { // representative column absent from the record
			site.Cell[i] = NewAllele([]int{0, 0}, []int{0, 0})
			site.Cell[i].Flt, site.Cell[i].FltDmg = true, true
			continue
		}
		site.Cell[i].Tags = strings.Join(site.Cell[i].tagOrder, ",")
	}

	site.Biallelic = len(v.Alt) == 1 && !(len(v.Alt[0]) == 1 && len(v.Ref) == 1)
	if !site.Biallelic {
		site.FltBulk, site.FltIndel = true, true
	}
	return site, nil
}

// observe parses one sample column. cellIdx is -1 for bulk samples.
func (e *Extractor) observe(site *Site, data []string, schema Schema, cellIdx int) (*Allele, error) {
	adfText, ok := get(data, schema.Adf)
	if !ok {
		return nil, errors.Errorf("missing %s value", KeyAdf)
	}
	adrText, ok := get(data, schema.Adr)
	if !ok {
		return nil, errors.Errorf("missing %s value", KeyAdr)
	}
	fwd, err := parseInts(adfText)
	if err != nil {
		return nil, errors.Wrapf(err, "malformed %s", KeyAdf)
	}
	rev, err := parseInts(adrText)
	if err != nil {
		return nil, errors.Wrapf(err, "malformed %s", KeyAdr)
	}
	if len(fwd) != len(rev) {
		return nil, errors.Errorf("inconsistent %s and %s: %s vs %s", KeyAdf, KeyAdr, adfText, adrText)
	}
	for len(fwd) < 2 {
		fwd = append(fwd, 0)
		rev = append(rev, 0)
	}
	a := NewAllele(fwd, rev)

	if cellIdx == -1 {
		return a, nil
	}

	if s, found := get(data, schema.Conflict); found {
		if a.Conflict, err = strconv.Atoi(s); err != nil {
			return nil, errors.Wrapf(err, "malformed %s", KeyConflict)
		}
	}

	// two alleles in a haploid cell; FltDmg is not affected
	if e.reg.Cells[cellIdx].Ploidy == 1 && a.Ad[0] > 0 && a.Dp-a.Ad[0] > 0 {
		a.Flt = true
	}
	if a.Conflict > e.params.MaxConflict {
		a.Flt = true
	}

	if s, found := get(data, schema.EndLen); found {
		words := strings.Split(s, ",")
		var endLen float64
		for j := 1; j < len(words); j++ {
			if words[j] == "." {
				continue
			}
			if endLen, err = strconv.ParseFloat(words[j], 64); err != nil {
				return nil, errors.Wrapf(err, "malformed %s", KeyEndLen)
			}
			if endLen < e.params.MinEndLen {
				a.Flt, a.FltDmg = true, true
			}
		}
	}

	if s, found := get(data, schema.TagPos); found {
		for _, tag := range strings.Split(s, ",") {
			if tag == "" || tag == "." || tag == "|" {
				continue
			}
			a.addTag(tag)
		}
	}

	if s, found := get(data, schema.MergePos); found {
		var start, end int
		for _, span := range strings.Split(s, ",") {
			if span == "" || span == "." || span == "|" {
				continue
			}
			ends := strings.Split(span, "|")
			if len(ends) != 2 {
				return nil, errors.Errorf("malformed %s: %s", KeyMergePos, s)
			}
			if start, err = strconv.Atoi(ends[0]); err != nil {
				return nil, errors.Wrapf(err, "malformed %s", KeyMergePos)
			}
			if end, err = strconv.Atoi(ends[1]); err != nil {
				return nil, errors.Wrapf(err, "malformed %s", KeyMergePos)
			}
			a.addWindow(start, end)
		}
		if a.HasWindow && len(site.Alt) > 0 {
			indelStart, indelEnd := IndelSpan(site.Pos, site.Ref, site.Alt[0])
			if e.params.Stringency.Matches(indelStart, indelEnd, a.WinStart, a.WinEnd) {
				a.Flt, a.FltDmg = true, true
			}
		}
	}

	return a, nil
}
