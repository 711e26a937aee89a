package wellpath

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// tokenizer yields trimmed, non-empty lines, skipping "--" comments.
type tokenizer struct {
	sc *bufio.Scanner
}

func newTokenizer(r io.Reader) *tokenizer {
	return &tokenizer{sc: bufio.NewScanner(r)}
}

// next returns the next significant line, or "" at end of input.
func (t *tokenizer) next() string {
	for t.sc.Scan() {
		line := strings.TrimSpace(t.sc.Text())
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		return line
	}
	return ""
}

// Load reads a well path file in the RMS WELLPATH format.
func Load(fname string, date time.Time) (*Path, error) {
	if strings.HasSuffix(fname, ".yaml") {
		slog.Warn("well path file extension is .yaml, potentially a snapwell config file",
			"file", fname)
	}
	f, err := os.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("open well path: %w", err)
	}
	defer f.Close()

	p, err := Parse(f, date)
	if err != nil {
		return nil, fmt.Errorf("well path %s: %w", fname, err)
	}
	p.FileName = fname
	return p, nil
}

// Parse reads a well path from r. The format is:
//
//	version
//	well type
//	well name [rkb_x [rkb_y [rkb_z]]]
//	number of logs
//	one "NAME unit scale" line per log
//	one row per point: x y z log...
//
// Blank lines and lines starting with "--" are ignored.
func Parse(r io.Reader, date time.Time) (*Path, error) {
	tok := newTokenizer(r)

	version := tok.next()
	if version == "" {
		return nil, fmt.Errorf("missing version line")
	}
	welltype := tok.next()
	if welltype == "" {
		return nil, fmt.Errorf("missing well type line")
	}

	nameLine := tok.next()
	if nameLine == "" {
		return nil, fmt.Errorf("missing well name line")
	}
	nameFields := strings.Fields(nameLine)
	p := New(version, welltype, nameFields[0])
	p.Date = date

	var rkb [3]float64
	for i := 0; i < 3 && i+1 < len(nameFields); i++ {
		v, err := strconv.ParseFloat(nameFields[i+1], 64)
		if err != nil {
			return nil, fmt.Errorf("could not parse RKB values: %w", err)
		}
		rkb[i] = v
	}
	p.SetRKB(rkb[0], rkb[1], rkb[2])

	numLine := tok.next()
	numLogs, err := strconv.Atoi(numLine)
	if err != nil {
		return nil, fmt.Errorf("could not parse log count %q: %w", numLine, err)
	}
	for i := 0; i < numLogs; i++ {
		header := tok.next()
		if header == "" {
			return nil, fmt.Errorf("expected %d log headers, got %d", numLogs, i)
		}
		name := strings.Fields(header)[0] // unit and scale are ignored
		if err := p.AddColumn(name, nil); err != nil {
			return nil, err
		}
	}

	for row := tok.next(); row != ""; row = tok.next() {
		fields := strings.Fields(row)
		vals := make([]float64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("could not parse row %q: %w", row, err)
			}
			vals[i] = v
		}
		if err := p.AppendRow(vals); err != nil {
			return nil, err
		}
	}
	if err := tok.sc.Err(); err != nil {
		return nil, fmt.Errorf("read well path: %w", err)
	}
	return p, nil
}
