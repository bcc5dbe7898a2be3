package io

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/arcview/pkg/errors"
	"github.com/matzehuels/arcview/pkg/graph"
	"github.com/matzehuels/arcview/pkg/observability"
)

// maxLineBytes bounds a single input line. Index labels are often URLs.
const maxLineBytes = 1 << 20

// Load reads the index file and the arcs file and builds the graph.
//
// Load fails with FILE_NOT_FOUND if either path is missing, PARSE_ERROR for a
// malformed line, DUPLICATE_KEY for a repeated vertex id (or a repeated arc
// under [graph.DuplicatesReject]) and LOOKUP_ERROR for a sparse id space or
// a dangling edge endpoint. Errors from validation are prefixed with the
// offending path.
func Load(indexPath, arcsPath string, opts graph.Options) (*graph.Graph, error) {
	return LoadContext(context.Background(), indexPath, arcsPath, opts)
}

// LoadContext is Load with a context for observability hooks.
// Loading itself is not cancellable.
func LoadContext(ctx context.Context, indexPath, arcsPath string, opts graph.Options) (g *graph.Graph, err error) {
	start := time.Now()
	observability.Load().OnLoadStart(ctx, indexPath, arcsPath)
	defer func() {
		var nv, ne int
		if g != nil {
			nv, ne = g.VertexCount(), g.EdgeCount()
		}
		observability.Load().OnLoadComplete(ctx, nv, ne, time.Since(start), err)
	}()

	index, err := readFile(indexPath, ReadIndex)
	if err != nil {
		return nil, err
	}
	arcs, err := readFile(arcsPath, ReadArcs)
	if err != nil {
		return nil, err
	}

	g, err = graph.New(index, arcs, opts)
	if err != nil {
		if sparse(index) {
			return nil, fmt.Errorf("%s: %w", indexPath, err)
		}
		return nil, fmt.Errorf("%s: %w", arcsPath, err)
	}
	return g, nil
}

func readFile[T any](path string, read func(io.Reader, string) (T, error)) (T, error) {
	var zero T
	if err := errors.ValidateInputFile(path); err != nil {
		return zero, err
	}
	f, err := os.Open(path)
	if err != nil {
		return zero, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return read(f, path)
}

// sparse reports whether index ids leave a gap in [0, len(index)).
func sparse(index map[int]string) bool {
	for id := range index {
		if id >= len(index) {
			return true
		}
	}
	return false
}

// ReadIndex parses "<label> <id>" lines from r into an id → label map.
// A repeated id fails with DUPLICATE_KEY naming both lines.
func ReadIndex(r io.Reader, name string) (map[int]string, error) {
	index := make(map[int]string)
	lineOf := make(map[int]int)

	err := scanPairs(r, name, func(line int, text string, fields []string) error {
		id, err := parseID(fields[1])
		if err != nil {
			return errors.Parse(name, line, text, "vertex id %q: %v", fields[1], err)
		}
		if prev, dup := lineOf[id]; dup {
			return errors.New(errors.ErrCodeDuplicateKey,
				"%s:%d: vertex id %d already defined at line %d", name, line, id, prev)
		}
		index[id] = fields[0]
		lineOf[id] = line
		return nil
	})
	if err != nil {
		return nil, err
	}
	return index, nil
}

// ReadArcs parses "<source> <target>" lines from r in file order.
// Endpoints are not checked against any index here; see [graph.New].
func ReadArcs(r io.Reader, name string) ([]graph.Arc, error) {
	var arcs []graph.Arc

	err := scanPairs(r, name, func(line int, text string, fields []string) error {
		src, err := parseID(fields[0])
		if err != nil {
			return errors.Parse(name, line, text, "source id %q: %v", fields[0], err)
		}
		dst, err := parseID(fields[1])
		if err != nil {
			return errors.Parse(name, line, text, "target id %q: %v", fields[1], err)
		}
		arcs = append(arcs, graph.Arc{Source: src, Target: dst, Line: line})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return arcs, nil
}

// scanPairs calls fn for every non-blank line of r that splits into exactly
// two whitespace-separated tokens and fails with PARSE_ERROR otherwise.
func scanPairs(r io.Reader, name string, fn func(line int, text string, fields []string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 2 {
			return errors.Parse(name, line, text, "expected 2 tokens, got %d", len(fields))
		}
		if err := fn(line, text, fields); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeParse, err, "read %s after line %d", name, line)
	}
	return nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("not an integer")
	}
	if id < 0 {
		return 0, fmt.Errorf("must be non-negative")
	}
	return id, nil
}
