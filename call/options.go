package call

import (
	"github.com/dasnellings/scIndel/extract"
	"github.com/dasnellings/scIndel/genotype"
	"github.com/pkg/errors"
)

// Options are the settings of one calling run.
type Options struct {
	NumBulk      int
	HaploidBulk  bool
	HaploidCells bool
	ShowFiltered bool
	AutosomeOnly bool

	ExcludedSamples string // file of sample names to drop
	HaploidSamples  string // file of haploid cell names
	ExcludedSites   string // tab delimited contig and position to suppress
	Replicates      string // lines of representative followed by replicate members

	MinMapQ     int
	Window      int
	MaxConflict int
	MinEndLen   float64
	Stringency  int

	// cell
	MinAlt         int
	MinAltStrand   int
	MinAb          float64
	MaxRef         int
	MinJoint       int
	MinJointStrand int
	MinDmgStrand   int

	// bulk
	MinDp    int
	MinHetDp int
	MaxAltDp int
	MinHetAb float64

	Verbose     int
	CommandLine string
	Version     string
}

// DefaultOptions returns the default thresholds.
func DefaultOptions() Options {
	return Options{
		NumBulk:        1,
		MinMapQ:        50,
		Window:         100,
		MaxConflict:    1,
		MinEndLen:      10,
		Stringency:     int(extract.Overlap),
		MinAlt:         5,
		MinAltStrand:   2,
		MinAb:          0.2,
		MaxRef:         0,
		MinJoint:       2,
		MinJointStrand: 1,
		MinDmgStrand:   4,
		MinDp:          20,
		MinHetDp:       8,
		MaxAltDp:       0,
		MinHetAb:       0.3,
	}
}

// Validate reports inconsistent options.
func (o Options) Validate() error {
	switch {
	case o.NumBulk < 1:
		return errors.New("at least one bulk sample is required")
	case o.MinAltStrand*2 > o.MinAlt:
		return errors.Errorf("twice the min alt depth per strand (%d) is larger than the min alt depth (%d)", o.MinAltStrand, o.MinAlt)
	case o.Window < 0:
		return errors.Errorf("window size must not be negative, found %d", o.Window)
	case o.Stringency < int(extract.Exact) || o.Stringency > int(extract.Overlap):
		return errors.Errorf("stringency must be between %d and %d, found %d", extract.Exact, extract.Overlap, o.Stringency)
	}
	return nil
}

func (o Options) extractParams() extract.Params {
	return extract.Params{
		MinMapQ:     o.MinMapQ,
		MaxConflict: o.MaxConflict,
		MinEndLen:   o.MinEndLen,
		Stringency:  extract.Stringency(o.Stringency),
	}
}

func (o Options) bulkParams() genotype.BulkParams {
	return genotype.BulkParams{MinDp: o.MinDp, MinHetDp: o.MinHetDp, MaxAltDp: o.MaxAltDp, MinHetAb: o.MinHetAb}
}

func (o Options) cellParams() genotype.CellParams {
	return genotype.CellParams{
		MinAlt:         o.MinAlt,
		MinAltStrand:   o.MinAltStrand,
		MinAb:          o.MinAb,
		MaxRef:         o.MaxRef,
		MinJoint:       o.MinJoint,
		MinJointStrand: o.MinJointStrand,
		MinDmgStrand:   o.MinDmgStrand,
	}
}
