package report

import (
	"github.com/pkg/errors"
	"strconv"
	"strings"
)

// Site is one per-site call line. BulkAlt is the summed bulk alt depth, or
// the per-bulk alt depths joined by ':' when any bulk has alt reads.
type Site struct {
	Tag     string
	Chr     string
	Pos     int
	Ref     string
	Alt     string
	BulkRef int
	BulkAlt string
	Cells   []string // colon delimited per-cell detail
}

func (s Site) fields() []string {
	return []string{
		s.Chr,
		strconv.Itoa(s.Pos),
		s.Ref,
		s.Alt,
		strconv.Itoa(s.BulkRef),
		s.BulkAlt,
		strconv.Itoa(len(s.Cells)),
		strings.Join(s.Cells, ","),
	}
}

// CellNames returns the cell name of each detail entry.
func (s Site) CellNames() []string {
	ans := make([]string, len(s.Cells))
	for i := range s.Cells {
		ans[i] = strings.SplitN(s.Cells[i], ":", 2)[0]
	}
	return ans
}

func parseSite(words []string) (Site, error) {
	var s Site
	var err error
	if len(words) != 9 {
		return s, errors.Errorf("expected 9 fields in %s line, found %d", words[0], len(words))
	}
	s.Tag, s.Chr, s.Ref, s.Alt, s.BulkAlt = words[0], words[1], words[3], words[4], words[6]
	if s.Pos, err = strconv.Atoi(words[2]); err != nil {
		return s, errors.Wrapf(err, "malformed position in %s line", s.Tag)
	}
	if s.BulkRef, err = strconv.Atoi(words[5]); err != nil {
		return s, errors.Wrapf(err, "malformed bulk depth in %s line", s.Tag)
	}
	var n int
	if n, err = strconv.Atoi(words[7]); err != nil {
		return s, errors.Wrapf(err, "malformed cell count in %s line", s.Tag)
	}
	if n > 0 {
		s.Cells = strings.Split(words[8], ",")
	}
	if len(s.Cells) != n {
		return s, errors.Errorf("%s line at %s:%d lists %d cells but reports %d", s.Tag, s.Chr, s.Pos, len(s.Cells), n)
	}
	return s, nil
}
