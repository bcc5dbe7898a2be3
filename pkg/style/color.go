package style

import (
	"fmt"
	"strings"

	"github.com/matzehuels/arcview/pkg/errors"
)

// Color is one of the selectable node colors.
type Color int

const (
	Red Color = iota
	Green
	Blue
)

// Colors lists the selectable colors in display order.
var Colors = []Color{Red, Green, Blue}

var (
	names = [...]string{Red: "Red", Green: "Green", Blue: "Blue"}
	codes = [...]string{Red: "#ff0000", Green: "#00ff00", Blue: "#0000ff"}
)

// Valid reports whether c is in the enumeration.
func (c Color) Valid() bool { return c >= Red && c <= Blue }

// String returns the display name ("Red", "Green", "Blue").
func (c Color) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Color(%d)", int(c))
	}
	return names[c]
}

// Code returns the literal color code the rendering surface understands.
func (c Color) Code() string {
	if !c.Valid() {
		return ""
	}
	return codes[c]
}

// Parse resolves a display name (case-insensitive) or a color code.
// Anything else fails with INVALID_COLOR.
func Parse(s string) (Color, error) {
	v := strings.TrimSpace(s)
	for _, c := range Colors {
		if strings.EqualFold(v, names[c]) || strings.EqualFold(v, codes[c]) {
			return c, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidColor,
		"unknown color %q (want Red, Green or Blue)", s)
}

// MustParse is Parse for values the caller built itself.
// It panics on anything outside the enumeration.
func MustParse(s string) Color {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// MarshalText implements [encoding.TextMarshaler].
func (c Color) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidColor, "invalid color %d", int(c))
	}
	return []byte(names[c]), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (c *Color) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
