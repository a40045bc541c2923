package report

import (
	"bufio"
	"github.com/pkg/errors"
	"github.com/vertgenlab/gonomics/exception"
	"io"
	"os"
	"strconv"
	"strings"
)

// Alignment is an NA line: the dropout rate and call codes of one cell.
type Alignment struct {
	Name  string
	Ado   float64
	Calls string
}

// Sensitivity is a Sensitivity_binary or Sensitivity_FNR line.
type Sensitivity struct {
	Count int
	Total float64
	Ratio float64
}

// Report is a parsed report.
type Report struct {
	CommandLine string
	Version     string
	Samples     []string
	Sites       []Site               // NV, JV and DV lines in file order
	BulkDiffs   [][]string           // fields of BV lines
	PerCell     map[string][]float64 // NN, NR, NC, DN, DP, DR, DC rows
	Alignments  []Alignment
	Binary      Sensitivity
	Fnr         Sensitivity
}

// Column returns the per-cell values of tag, or nil if the row is absent.
func (r *Report) Column(tag string) []float64 {
	return r.PerCell[tag]
}

// ReadFile parses the report in file.
func ReadFile(file string) *Report {
	f, err := os.Open(file)
	exception.PanicOnErr(err)
	defer f.Close()
	ans, err := Read(f)
	exception.PanicOnErr(err)
	return ans
}

// Read parses a report.
func Read(in io.Reader) (*Report, error) {
	ans := &Report{PerCell: make(map[string][]float64)}
	s := bufio.NewScanner(in)
	s.Buffer(make([]byte, 0, 1<<16), 1<<26)
	var words []string
	var err error
	var lineNum int
	for s.Scan() {
		lineNum++
		if s.Text() == "" {
			continue
		}
		words = strings.Split(s.Text(), "\t")
		switch words[0] {
		case TagCommandLine:
			ans.CommandLine = strings.Join(words[1:], "\t")
		case TagVersion:
			ans.Version = strings.Join(words[1:], "\t")
		case TagComment:
		case TagSamples:
			ans.Samples = words[1:]
		case TagIndel, TagJoint, TagFiltered, TagDamage:
			var site Site
			if site, err = parseSite(words); err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNum)
			}
			ans.Sites = append(ans.Sites, site)
		case TagBulkDiff:
			ans.BulkDiffs = append(ans.BulkDiffs, words[1:])
		case TagNumIndel, TagIndelFnr, TagCorrIndel, TagNumDamage, TagDamageFpr, TagDamageFnr, TagCorrDamage:
			if ans.PerCell[words[0]], err = parseFloats(words[1:]); err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNum)
			}
		case TagAlign:
			var a Alignment
			if a, err = parseAlignment(words); err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNum)
			}
			ans.Alignments = append(ans.Alignments, a)
		case TagSensBinary:
			if ans.Binary, err = parseSensitivity(words); err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNum)
			}
		case TagSensFnr:
			if ans.Fnr, err = parseSensitivity(words); err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNum)
			}
		default:
			return nil, errors.Errorf("line %d: unknown tag %q", lineNum, words[0])
		}
	}
	if err = s.Err(); err != nil {
		return nil, err
	}
	return ans, nil
}

// parseFloats accepts NaN and Inf, which appear when a rate has no qualifying sites.
func parseFloats(words []string) ([]float64, error) {
	ans := make([]float64, len(words))
	var err error
	for i := range words {
		if ans[i], err = strconv.ParseFloat(words[i], 64); err != nil {
			return nil, err
		}
	}
	return ans, nil
}

func parseAlignment(words []string) (Alignment, error) {
	var a Alignment
	var err error
	if len(words) < 3 {
		return a, errors.Errorf("expected at least 3 fields in NA line, found %d", len(words))
	}
	a.Name = words[1]
	if a.Ado, err = strconv.ParseFloat(words[2], 64); err != nil {
		return a, err
	}
	if len(words) > 3 {
		a.Calls = words[3]
	}
	return a, nil
}

func parseSensitivity(words []string) (Sensitivity, error) {
	var s Sensitivity
	var err error
	if len(words) != 4 {
		return s, errors.Errorf("expected 4 fields in %s line, found %d", words[0], len(words))
	}
	if s.Count, err = strconv.Atoi(words[1]); err != nil {
		return s, err
	}
	if s.Total, err = strconv.ParseFloat(words[2], 64); err != nil {
		return s, err
	}
	s.Ratio, err = strconv.ParseFloat(words[3], 64)
	return s, err
}
