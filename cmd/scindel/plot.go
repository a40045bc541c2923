package main

import (
	"flag"
	"fmt"
	"github.com/dasnellings/scIndel/report"
	"github.com/guptarohit/asciigraph"
	"github.com/vertgenlab/gonomics/exception"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"image/color"
	"log"
	"math"
)

func plotUsage(plotFlags *flag.FlagSet) {
	fmt.Print(
		"plot - bar chart of raw and FNR corrected Indel counts per cell from a 'scindel call' report\n\n" +
			"Usage:\n" +
			"  scindel plot [options] -i report.txt -o counts.pdf\n\n" +
			"Options:\n")
	plotFlags.PrintDefaults()
}

func runPlot(args []string) {
	var err error
	plotFlags := flag.NewFlagSet("plot", flag.ExitOnError)

	input := plotFlags.String("i", "", "Input report from 'scindel call'.")
	output := plotFlags.String("o", "", "Output image. Format is chosen by extension (e.g. .pdf, .png, .svg).")
	ascii := plotFlags.Bool("ascii", false, "Print corrected counts to the terminal.")
	width := plotFlags.Float64("width", 20, "Image width in cm.")
	height := plotFlags.Float64("height", 12, "Image height in cm.")

	err = plotFlags.Parse(args)
	exception.PanicOnErr(err)
	plotFlags.Usage = func() { plotUsage(plotFlags) }

	if *input == "" || (*output == "" && !*ascii) {
		plotFlags.Usage()
		errExit("\nERROR: must specify -i and at least one of -o or -ascii")
	}

	r := report.ReadFile(*input)
	raw, corr := r.Column(report.TagNumIndel), r.Column(report.TagCorrIndel)
	if len(raw) != len(r.Samples) || len(corr) != len(r.Samples) {
		errExit(fmt.Sprintf("ERROR: %s has %d samples but %d NN and %d NC values", *input, len(r.Samples), len(raw), len(corr)))
	}
	if len(r.Samples) == 0 {
		errExit("ERROR: no cells in " + *input)
	}
	raw, corr = finite(raw), finite(corr)

	if *ascii {
		fmt.Println(asciigraph.PlotMany([][]float64{raw, corr}, asciigraph.Height(10), asciigraph.Precision(1),
			asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
			asciigraph.Caption("Indels per cell (blue: raw, red: FNR corrected)")))
	}

	if *output != "" {
		p := countPlot(r.Samples, raw, corr)
		err = p.Save(vg.Length(*width)*vg.Centimeter, vg.Length(*height)*vg.Centimeter, *output)
		exception.PanicOnErr(err)
		log.Printf("Wrote %s\n", *output)
	}
}

// finite replaces NaN and Inf, which occur when no site qualified for FNR estimation.
func finite(vals []float64) []float64 {
	ans := make([]float64, len(vals))
	for i := range vals {
		if !math.IsNaN(vals[i]) && !math.IsInf(vals[i], 0) {
			ans[i] = vals[i]
		}
	}
	return ans
}

func countPlot(names []string, raw, corr []float64) *plot.Plot {
	p := plot.New()
	p.Title.Text = "Somatic Indels per cell"
	p.Y.Label.Text = "Indels"

	w := vg.Points(8)
	rawBars, err := plotter.NewBarChart(plotter.Values(raw), w)
	exception.PanicOnErr(err)
	rawBars.LineStyle.Width = vg.Length(0)
	rawBars.Color = color.RGBA{R: 66, G: 114, B: 196, A: 255}
	rawBars.Offset = -w / 2

	corrBars, err := plotter.NewBarChart(plotter.Values(corr), w)
	exception.PanicOnErr(err)
	corrBars.LineStyle.Width = vg.Length(0)
	corrBars.Color = color.RGBA{R: 196, G: 78, B: 82, A: 255}
	corrBars.Offset = w / 2

	p.Add(rawBars, corrBars)
	p.Legend.Add("raw", rawBars)
	p.Legend.Add("FNR corrected", corrBars)
	p.Legend.Top = true
	p.NominalX(names...)
	p.X.Tick.Label.Rotation = math.Pi / 2
	return p
}
