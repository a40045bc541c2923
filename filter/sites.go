package filter

import (
	"bufio"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
	"log"
	"strconv"
	"strings"
)

// Sites is a set of excluded positions keyed by "contig:position".
type Sites map[string]bool

// Has reports whether chr:pos is excluded. Has is safe on a nil Sites.
func (s Sites) Has(chr string, pos int) bool {
	return s[chr+":"+strconv.Itoa(pos)]
}

// ReadSites loads positions from the first two columns of a tab delimited
// file such as a VCF. Lines beginning with '#' are skipped.
func ReadSites(file string) Sites {
	ans := make(Sites)
	if file == "" {
		return ans
	}
	log.Println("Reading sites to filter...")
	in := fileio.EasyOpen(file)
	var line string
	var words []string
	s := bufio.NewScanner(in) // tolerates a final line without a newline
	for s.Scan() {
		line = strings.TrimSuffix(s.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = strings.SplitN(line, "\t", 3)
		if len(words) < 2 {
			log.Printf("WARNING: skipping malformed site line: %s\n", line)
			continue
		}
		ans[words[0]+":"+words[1]] = true
	}
	exception.PanicOnErr(s.Err())
	err := in.Close()
	exception.PanicOnErr(err)
	return ans
}
