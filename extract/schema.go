package extract

import (
	"github.com/pkg/errors"
	"strings"
)

// FORMAT keys read from the joint pileup.
const (
	KeyAdf      = "ADF"    // forward strand allele depth
	KeyAdr      = "ADR"    // reverse strand allele depth
	KeyConflict = "LTDROP" // reads dropped for duplex conflict
	KeyEndLen   = "ALEN"   // per-allele min distance to a read end
	KeyTagPos   = "LTPOS"  // duplex tag (Tn5) positions
	KeyMergePos = "MGPOS"  // merged window spans, start|end
)

// Schema is the field-index table for one FORMAT layout. Optional fields are -1 when absent.
type Schema struct {
	Adf      int
	Adr      int
	Conflict int
	EndLen   int
	TagPos   int
	MergePos int
}

// NewSchema locates the FORMAT fields. ADF and ADR are required.
func NewSchema(format []string) (Schema, error) {
	s := Schema{Adf: -1, Adr: -1, Conflict: -1, EndLen: -1, TagPos: -1, MergePos: -1}
	for i := range format {
		switch format[i] {
		case KeyAdf:
			s.Adf = i
		case KeyAdr:
			s.Adr = i
		case KeyConflict:
			s.Conflict = i
		case KeyEndLen:
			s.EndLen = i
		case KeyTagPos:
			s.TagPos = i
		case KeyMergePos:
			s.MergePos = i
		}
	}
	if s.Adf == -1 || s.Adr == -1 {
		return s, errors.Errorf("missing %s or %s in FORMAT: %s", KeyAdf, KeyAdr, strings.Join(format, ":"))
	}
	return s, nil
}

// get returns the value of field idx in one sample, and false when absent or '.'.
func get(data []string, idx int) (string, bool) {
	if idx < 0 || idx >= len(data) || data[idx] == "." || data[idx] == "" {
		return "", false
	}
	return data[idx], true
}
