package samples

import (
	"bufio"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
	"strings"
)

// realLines returns the non-empty lines of file that do not begin with '#'.
// Unlike fileio.EasyNextRealLine, a final line without a newline is kept.
func realLines(file string) []string {
	in := fileio.EasyOpen(file)
	var ans []string
	s := bufio.NewScanner(in)
	for s.Scan() {
		line := strings.TrimSuffix(s.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ans = append(ans, line)
	}
	exception.PanicOnErr(s.Err())
	err := in.Close()
	exception.PanicOnErr(err)
	return ans
}

// ReadList reads the first tab-delimited field of each line into a set.
// An empty file name returns an empty set.
func ReadList(file string) map[string]bool {
	ans := make(map[string]bool)
	if file == "" {
		return ans
	}
	for _, line := range realLines(file) {
		ans[strings.Split(line, "\t")[0]] = true
	}
	return ans
}

// ReadReplicates reads lines of "representative member..." and maps each
// member to its representative.
func ReadReplicates(file string) map[string]string {
	ans := make(map[string]string)
	if file == "" {
		return ans
	}
	var words []string
	for _, line := range realLines(file) {
		words = strings.Fields(line)
		for i := 1; i < len(words); i++ {
			ans[words[i]] = words[0]
		}
	}
	return ans
}
