package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
)

const version string = "0.1.0"
const gonomicsVersion string = "1.0.1-0.20240426183757-e6c6ab634c20"

type subcommand struct {
	name     string
	function func(args []string)
	blurb    string
}

// SubCommands lists the scindel commands in the order usage prints them.
var SubCommands = []*subcommand{
	{"call", runCall, "classify somatic Indels in single cells against matched bulks"},
	{"plot", runPlot, "plot raw and FNR corrected Indel counts from a call report"},
	{"version", runVersion, "print the scindel and gonomics versions"},
}

func writeUsage(out io.Writer) {
	s := new(strings.Builder)
	s.WriteString(
		"Program: scindel (somatic Indel calling and burden estimation for duplex single-cell sequencing)\n" +
			"Version: " + version + " (gonomics " + gonomicsVersion + ")\n" +
			"Contact: https://github.com/dasnellings/scIndel/issues\n" +
			"\nInput is a coordinate sorted joint VCF with the bulk samples in the first columns.\n" +
			"\nUsage:\tscindel <command> [options]\n\n" +
			"Commands:\n")

	w := tabwriter.NewWriter(s, 0, 8, 5, '\t', tabwriter.AlignRight)
	for i := range SubCommands {
		fmt.Fprintf(w, "\t%s\t%s\n", SubCommands[i].name, SubCommands[i].blurb)
	}
	w.Flush()
	fmt.Fprint(out, s.String())
}

func usage() {
	writeUsage(os.Stdout)
}

func runVersion(args []string) {
	fmt.Printf("scindel %s (gonomics %s)\n", version, gonomicsVersion)
}

// lookup returns the subcommand called name, or nil.
func lookup(name string) func(args []string) {
	for i := range SubCommands {
		if SubCommands[i].name == name {
			return SubCommands[i].function
		}
	}
	return nil
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		return
	}
	command := lookup(flag.Arg(0))
	if command == nil {
		usage()
		errExit("unknown command: " + flag.Arg(0))
	}
	command(flag.Args()[1:])
}

func errExit(err string) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
