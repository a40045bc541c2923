// Package report writes and reads the tagged-line Indel report. Every line is
// tab delimited and begins with a tag naming its content.
package report

import (
	"fmt"
	"github.com/vertgenlab/gonomics/exception"
	"io"
	"strconv"
	"strings"
)

// Line tags.
const (
	TagCommandLine = "CL"
	TagVersion     = "VN"
	TagComment     = "CC"
	TagSamples     = "SM"
	TagIndel       = "NV"
	TagJoint       = "JV"
	TagFiltered    = "FV"
	TagBulkDiff    = "BV"
	TagDamage      = "DV"
	TagNumIndel    = "NN"
	TagIndelFnr    = "NR"
	TagCorrIndel   = "NC"
	TagAlign       = "NA"
	TagNumDamage   = "DN"
	TagDamageFpr   = "DP"
	TagDamageFnr   = "DR"
	TagCorrDamage  = "DC"
	TagSensBinary  = "Sensitivity_binary"
	TagSensFnr     = "Sensitivity_FNR"
)

var comments = []string{
	"SM  sample name (each sample)",
	"NV  somatic Indels",
	"FV  somatic Indel calls removed by the site filters (with -F)",
	"NN  number of called somatic Indels (each)",
	"NR  false negative rate (each)",
	"NC  number of somatic Indels after FNR correction (each)",
	"NA  alignment somatic Indels",
	"DV  DNA damages or amplification errors",
	"DN  number of called damages/errors (each)",
	"DR  false negative rate of damages/errors (each)",
	"DC  number of damages/errors after FNR correction (each)",
}

// Writer emits report lines.
type Writer struct {
	out io.Writer
}

// NewWriter returns a Writer on out.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Line writes tag followed by fields, all tab separated.
func (w *Writer) Line(tag string, fields ...string) {
	var err error
	if len(fields) == 0 {
		_, err = fmt.Fprintln(w.out, tag)
	} else {
		_, err = fmt.Fprintf(w.out, "%s\t%s\n", tag, strings.Join(fields, "\t"))
	}
	exception.PanicOnErr(err)
}

// Header writes the command line, version, and the tag legend.
func (w *Writer) Header(cmdline, version string) {
	w.Line(TagCommandLine, cmdline)
	w.Line(TagVersion, version)
	for _, c := range comments {
		w.Line(TagComment, c)
	}
	w.Line(TagComment)
}

// Samples writes the names of the retained cells.
func (w *Writer) Samples(names []string) {
	w.Line(TagSamples, names...)
}

// Ints writes a per-cell integer row.
func (w *Writer) Ints(tag string, vals []int) {
	fields := make([]string, len(vals))
	for i := range vals {
		fields[i] = strconv.Itoa(vals[i])
	}
	w.Line(tag, fields...)
}

// Floats writes a per-cell row with prec digits after the decimal point.
func (w *Writer) Floats(tag string, vals []float64, prec int) {
	fields := make([]string, len(vals))
	for i := range vals {
		fields[i] = strconv.FormatFloat(vals[i], 'f', prec, 64)
	}
	w.Line(tag, fields...)
}

// Site writes an NV, JV or DV line.
func (w *Writer) Site(s Site) {
	w.Line(s.Tag, s.fields()...)
}
