package main

import (
	"flag"
	"fmt"
	"github.com/dasnellings/scIndel/call"
	"github.com/vertgenlab/gonomics/exception"
	"log"
	"strings"
)

func callUsage(callFlags *flag.FlagSet) {
	fmt.Print(
		"call - classify candidate Indels in single cells against one or more matched bulk samples\n" +
			"\tInput is a coordinate sorted joint VCF with ADF and ADR in FORMAT and the bulk samples in the leading columns.\n\n" +
			"Usage:\n" +
			"  scindel call [options] -i joint.vcf > report.txt\n\n" +
			"Options:\n")
	callFlags.PrintDefaults()
}

func runCall(args []string) {
	var err error
	callFlags := flag.NewFlagSet("call", flag.ExitOnError)
	d := call.DefaultOptions()

	input := callFlags.String("i", "", "Input joint VCF sorted by coordinate.")
	output := callFlags.String("o", "stdout", "Output report file.")

	// general
	numBulk := callFlags.Int("b", d.NumBulk, "Number of bulk samples. Bulk samples must be the first sample columns.")
	haploidSamples := callFlags.String("h", "", "File with the names of haploid cells.")
	haploidCells := callFlags.Bool("H", false, "Mark all single cells as haploid.")
	excludedSamples := callFlags.String("e", "", "File with the names of samples to exclude.")
	excludedSites := callFlags.String("v", "", "VCF (or contig<tab>position) file of positions to suppress.")
	replicates := callFlags.String("r", "", "Cell replicates. Each line is a representative cell followed by its replicates.")
	showFiltered := callFlags.Bool("F", false, "Report Indels filtered by -w and -v.")
	autosomeOnly := callFlags.Bool("u", false, "Process autosomes only.")
	minMapQ := callFlags.Int("minMapQ", d.MinMapQ, "Minimum mapping quality of every sample in the AMQ INFO field.")

	// cell
	minAlt := callFlags.Int("a", d.MinAlt, "Min ALT read depth to call an Indel.")
	minAltStrand := callFlags.Int("s", d.MinAltStrand, "Min ALT read depth per strand.")
	maxConflict := callFlags.Int("l", d.MaxConflict, "Max duplex conflicting reads (LTDROP).")
	minEndLen := callFlags.Float64("L", d.MinEndLen, "Min distance towards the end of a read (ALEN).")
	window := callFlags.Int("w", d.Window, "Size of window to filter clustered Indels.")
	minDmgStrand := callFlags.Int("S", d.MinDmgStrand, "Min strand depth at candidate DNA damages.")
	minAb := callFlags.Float64("B", d.MinAb, "Min ALT allele balance.")
	minJoint := callFlags.Int("j", d.MinJoint, "Min allele depth to call joint Indels.")
	minJointStrand := callFlags.Int("J", d.MinJointStrand, "Min allele depth on both strands to call joint Indels.")
	maxRef := callFlags.Int("R", d.MaxRef, "Max REF read depth to call an Indel.")
	stringency := callFlags.Int("T", d.Stringency, "Merged window filtering stringency from 1 (most stringent) to 3 (least stringent).")

	// bulk
	minDp := callFlags.Int("D", d.MinDp, "Min bulk read depth.")
	minHetDp := callFlags.Int("A", d.MinHetDp, "Min bulk ALT read depth to call a het.")
	maxAltDp := callFlags.Int("m", d.MaxAltDp, "Max bulk ALT read depth to call an Indel.")
	minHetAb := callFlags.Float64("minHetAb", d.MinHetAb, "Min allele balance of each allele in a het bulk.")
	haploidBulk := callFlags.Bool("P", false, "The bulk is haploid. Implies -H.")

	verbose := callFlags.Int("verbose", 0, "Level of verbosity in log.")

	err = callFlags.Parse(args)
	exception.PanicOnErr(err)
	callFlags.Usage = func() { callUsage(callFlags) }

	if *input == "" {
		callFlags.Usage()
		errExit("\nERROR: must specify an input VCF with -i")
	}

	opts := call.Options{
		NumBulk:         *numBulk,
		HaploidBulk:     *haploidBulk,
		HaploidCells:    *haploidCells || *haploidBulk,
		ShowFiltered:    *showFiltered,
		AutosomeOnly:    *autosomeOnly,
		ExcludedSamples: *excludedSamples,
		HaploidSamples:  *haploidSamples,
		ExcludedSites:   *excludedSites,
		Replicates:      *replicates,
		MinMapQ:         *minMapQ,
		Window:          *window,
		MaxConflict:     *maxConflict,
		MinEndLen:       *minEndLen,
		Stringency:      *stringency,
		MinAlt:          *minAlt,
		MinAltStrand:    *minAltStrand,
		MinAb:           *minAb,
		MaxRef:          *maxRef,
		MinJoint:        *minJoint,
		MinJointStrand:  *minJointStrand,
		MinDmgStrand:    *minDmgStrand,
		MinDp:           *minDp,
		MinHetDp:        *minHetDp,
		MaxAltDp:        *maxAltDp,
		MinHetAb:        *minHetAb,
		Verbose:         *verbose,
		CommandLine:     "scindel call " + strings.Join(args, " "),
		Version:         version,
	}

	if err = opts.Validate(); err != nil {
		callFlags.Usage()
		errExit("\nERROR: " + err.Error())
	}

	if *verbose > 0 {
		log.Println("Calling...")
	}
	if err = call.Call(*input, *output, opts); err != nil {
		errExit("ERROR: " + err.Error())
	}
	if *verbose > 0 {
		log.Println("Done")
	}
}
