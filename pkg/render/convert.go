package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/matzehuels/arcview/pkg/errors"
)

// Format is an output file format.
type Format string

const (
	SVG Format = "svg"
	PNG Format = "png"
	PDF Format = "pdf"
)

// ParseFormat accepts "svg", "png" or "pdf" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case SVG, PNG, PDF:
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (want svg, png or pdf)", s)
}

// FromPath infers the format from a file extension, defaulting to SVG.
func FromPath(path string) Format {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return SVG
	}
	if f, err := ParseFormat(path[i+1:]); err == nil {
		return f
	}
	return SVG
}

// Convert returns svg encoded as f. SVG input is returned unchanged.
// PNG output is scaled by scale; values <= 0 mean 1.
//
// PNG and PDF require librsvg: brew install librsvg (macOS), apt install
// librsvg2-bin (Linux).
func Convert(ctx context.Context, svg []byte, f Format, scale float64) ([]byte, error) {
	switch f {
	case SVG:
		return svg, nil
	case PNG:
		if scale <= 0 {
			scale = 1
		}
		return rsvgConvert(ctx, svg, "png", "-z", fmt.Sprintf("%.2f", scale))
	case PDF:
		return rsvgConvert(ctx, svg, "pdf")
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", f)
}

func rsvgConvert(ctx context.Context, svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		return nil, errors.New(errors.ErrCodeUnavailable,
			"%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.CommandContext(ctx, "rsvg-convert", args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("rsvg-convert: %v: %s", err, errBuf.String())
	}
	return out.Bytes(), nil
}
