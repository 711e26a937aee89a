package wellpath

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

func formatRow(row []float64) string {
	parts := make([]string, len(row))
	for i, v := range row {
		parts[i] = fmt.Sprintf("%.2f", v)
	}
	return strings.Join(parts, " ")
}

// WriteTo writes the path in the RMS WELLPATH format. With resinsight
// set, it instead writes the well name followed by the first four
// columns of each row, which is the import format ResInsight expects.
func (p *Path) WriteTo(w io.Writer, resinsight bool) error {
	out := bufio.NewWriter(w)

	if resinsight {
		fmt.Fprintln(out, p.WellName)
		for i := 0; i < p.Len(); i++ {
			row := p.Row(i)
			if len(row) > 4 {
				row = row[:4]
			}
			fmt.Fprintln(out, formatRow(row))
		}
		return out.Flush()
	}

	fmt.Fprintln(out, p.Version)
	fmt.Fprintln(out, p.WellType)
	fmt.Fprintf(out, "%s %s\n", p.WellName, formatRow(p.rkb[:]))
	fmt.Fprintln(out, len(p.headers)-3)
	for _, h := range p.headers[3:] {
		fmt.Fprintf(out, "%s 1 lin\n", h)
	}
	for i := 0; i < p.Len(); i++ {
		fmt.Fprintln(out, formatRow(p.Row(i)))
	}
	return out.Flush()
}

// Write stores the path to fname, defaulting to FileName + ".out". An
// existing file is not replaced unless overwrite is set. It returns the
// number of points written.
func (p *Path) Write(fname string, overwrite, resinsight bool) (int, error) {
	if fname == "" {
		if p.FileName == "" {
			return 0, fmt.Errorf("no file name set on well path and none provided")
		}
		fname = p.FileName + ".out"
	}
	if !overwrite {
		if _, err := os.Stat(fname); err == nil {
			return 0, fmt.Errorf("file %s exists, cannot overwrite unless explicitly told to", fname)
		}
	}
	f, err := os.Create(fname)
	if err != nil {
		return 0, fmt.Errorf("create well path output: %w", err)
	}
	defer f.Close()

	if err := p.WriteTo(f, resinsight); err != nil {
		return 0, fmt.Errorf("write well path %s: %w", fname, err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("write well path %s: %w", fname, err)
	}
	return p.Len(), nil
}
