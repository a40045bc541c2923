// Package call runs the single pass that classifies candidate Indels in a
// coordinate sorted joint VCF of bulk and single-cell samples.
package call

import (
	"github.com/dasnellings/scIndel/burden"
	"github.com/dasnellings/scIndel/extract"
	"github.com/dasnellings/scIndel/filter"
	"github.com/dasnellings/scIndel/genotype"
	"github.com/dasnellings/scIndel/report"
	"github.com/dasnellings/scIndel/samples"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
	"github.com/vertgenlab/gonomics/vcf"
	"io"
	"log"
	"regexp"
	"strconv"
	"strings"
)

const progressInterval = 100000

var autosome = regexp.MustCompile(`^(chr)?[0-9]+$`)

// Call classifies the records in input and writes the report to output.
func Call(input, output string, opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	lists := samples.Lists{
		Excluded:     samples.ReadList(opts.ExcludedSamples),
		Haploid:      samples.ReadList(opts.HaploidSamples),
		Replicates:   samples.ReadReplicates(opts.Replicates),
		HaploidCells: opts.HaploidCells,
	}
	excluded := filter.ReadSites(opts.ExcludedSites)

	records, header := vcf.GoReadToChan(input)
	out := fileio.EasyCreate(output)
	defer cleanup(out)
	err := Run(records, header, lists, excluded, out, opts)
	if err != nil {
		drain(records)
	}
	return err
}

// drain consumes records so the reading goroutine can finish and close the input.
func drain(records <-chan vcf.Vcf) {
	for range records {
	}
}

func cleanup(f io.Closer) {
	err := f.Close()
	exception.PanicOnErr(err)
}

// bulkDiffData is ctg, pos, ref, alt, then altFwd:altRev of each bulk.
func bulkDiffData(site *extract.Site) string {
	words := []string{site.Chr, strconv.Itoa(site.Pos), site.Ref, site.AltText()}
	for _, b := range site.Bulk {
		words = append(words, strconv.Itoa(b.AltFwd())+":"+strconv.Itoa(b.AltRev()))
	}
	return strings.Join(words, "\t")
}

// Run consumes records and writes the report to out. Records must be sorted by coordinate.
func Run(records <-chan vcf.Vcf, header vcf.Header, lists samples.Lists, excluded filter.Sites, out io.Writer, opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	reg, err := samples.NewRegistry(samples.NamesFromHeader(header), opts.NumBulk, lists)
	if err != nil {
		return err
	}
	w := report.NewWriter(out)
	w.Header(opts.CommandLine, opts.Version)
	w.Samples(reg.Names())

	ex := extract.NewExtractor(reg, opts.extractParams())
	bp, cp := opts.bulkParams(), opts.cellParams()
	var tally burden.Tally

	bulkDiffs := filter.NewBulkDiffs(opts.Window, excluded, func(b *filter.BulkDiff) {
		w.Line(report.TagBulkDiff, b.Data)
	})
	indels := filter.NewIndels(opts.Window, opts.ShowFiltered, excluded, func(s *extract.Site) {
		burden.Aggregate(s, reg.Cells, opts.MinJoint, opts.HaploidBulk, w)
	})

	if opts.Verbose > 0 {
		log.Printf("Calling with %d bulk and %d cell samples\n", reg.NumBulk, len(reg.Cells))
	}

	var site *extract.Site
	var bulk genotype.Bulk
	var cells genotype.Cells
	var processed int
	for v := range records {
		processed++
		if opts.Verbose > 0 && processed%progressInterval == 0 {
			log.Printf("Processed %d records\t%s:%d\n", processed, v.Chr, v.Pos)
		}
		if opts.AutosomeOnly && !autosome.MatchString(v.Chr) {
			continue
		}

		site, err = ex.Extract(v)
		if err != nil {
			return err
		}

		bulk = genotype.ClassifyBulk(site, bp)
		if opts.NumBulk > 1 && !opts.HaploidBulk && genotype.BulkDiff(site, opts.MinAlt, opts.MinAltStrand) {
			bulkDiffs.Add(site.Chr, site.Pos, bulkDiffData(site), site.FltBulk)
		}

		cells = genotype.ClassifyCells(site, bulk, reg.Cells, cp, opts.HaploidBulk)
		tally.Count(bulk, cells, site.FltBulk, opts.HaploidBulk)

		// strong alt in every bulk, not a somatic candidate and not a window comparator
		if bulk.AllGoodAlt {
			continue
		}

		if genotype.RefHomBulks(site, opts.MaxAltDp) == 0 {
			site.FltIndel = true
		}

		if !site.FltIndel && !site.FltBulk {
			burden.Damage(site, reg.Cells, excluded.Has(site.Chr, site.Pos), w)
		}

		fwd, rev := genotype.AltSupport(site)
		if fwd < opts.MinAltStrand || rev < opts.MinAltStrand || fwd+rev < opts.MinAlt {
			site.FltIndel = true
		}

		if !site.Biallelic {
			indels.Advance(site.Chr, site.Pos)
			continue
		}
		indels.Add(site)
	}
	bulkDiffs.Flush()
	indels.Flush()

	summary := burden.Summarize(reg.Cells, tally, opts.HaploidBulk)
	summary.Write(w)

	if opts.Verbose > 0 {
		s := indels.Stats()
		log.Printf("Processed %d records\nIndel candidates: %d\tpassed: %d\tsuppressed: %d\nMean corrected Indel count per cell: %.2f\n",
			processed, s.Pushed, s.Passed, s.Suppressed, summary.MeanCorrected())
	}
	return nil
}
