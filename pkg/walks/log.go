package walks

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/arcview/pkg/errors"
)

// Row is one parsed line of a walk log.
type Row struct {
	Line   int
	Values []int
}

// Walk is the selected row.
type Walk struct {
	Step   int
	Line   int
	Values []int
}

// LoadLog reads the walk log at path.
func LoadLog(path string) ([]Row, error) {
	if err := errors.ValidateInputFile(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadLog(f, path)
}

// ReadLog parses one walk per non-blank line. A token that is not an integer
// fails with PARSE_ERROR naming the line; name is only used in messages.
func ReadLog(r io.Reader, name string) ([]Row, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16<<20)

	var rows []Row
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		fields := strings.Fields(text)
		values := make([]int, len(fields))
		for i, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, errors.Parse(name, line, text, "token %d %q is not an integer", i+1, f)
			}
			values[i] = v
		}
		rows = append(rows, Row{Line: line, Values: values})
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "read %s after line %d", name, line)
	}
	return rows, nil
}

// Select returns row step (zero-based). Out of range fails with LOOKUP_ERROR.
func Select(rows []Row, step int) (Walk, error) {
	if step < 0 || step >= len(rows) {
		return Walk{}, errors.New(errors.ErrCodeLookup,
			"step %d out of range: log has %d walks", step, len(rows))
	}
	r := rows[step]
	return Walk{Step: step, Line: r.Line, Values: r.Values}, nil
}

// Bounds returns the smallest and largest value, widened to include zero so
// the baseline is always on the plot.
func (w Walk) Bounds() (lo, hi int) {
	for _, v := range w.Values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}
