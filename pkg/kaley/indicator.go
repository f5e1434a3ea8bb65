package kaley

import (
	"errors"
	"fmt"
)

// MaxDistinctRun is the longest run that still has its own indicator glyph.
const MaxDistinctRun = 7

// Palette holds the glyphs appended to symbols that consume more than one rune.
type Palette struct {
	Counts   [MaxDistinctRun - 1]string // runs of 2 through 7
	Overflow string                     // runs of 8 or more
}

// DefaultPalette returns the red, orange, yellow, green, blue, purple and
// black hearts.
func DefaultPalette() Palette {
	return Palette{
		Counts:   [MaxDistinctRun - 1]string{"❤️", "🧡", "💛", "💚", "💙", "💜"},
		Overflow: "🖤",
	}
}

// RunIndicator returns the indicator glyph for a run of the given length, or
// false when the run needs none. Lengths below one are a programming error.
func (p Palette) RunIndicator(length int) (string, bool) {
	switch {
	case length <= 0:
		panic(fmt.Sprintf("kaley: run indicator requested for length %d", length))
	case length == 1:
		return "", false
	case length <= MaxDistinctRun:
		return p.Counts[length-2], true
	default:
		return p.Overflow, true
	}
}

// Validate checks that every indicator glyph is set and distinct.
func (p Palette) Validate() error {
	seen := make(map[string]string)
	check := func(glyph, label string) error {
		if glyph == "" {
			return fmt.Errorf("indicator for %s is empty", label)
		}
		if other, exists := seen[glyph]; exists {
			return fmt.Errorf("indicator '%s' is used for both %s and %s", glyph, other, label)
		}
		seen[glyph] = label
		return nil
	}

	var errs []error
	for i, glyph := range p.Counts {
		if err := check(glyph, fmt.Sprintf("count %d", i+2)); err != nil {
			errs = append(errs, err)
		}
	}
	if err := check(p.Overflow, "overflow"); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// MapIndicators attaches the indicator glyph for each match length.
func MapIndicators(matches []Match, palette Palette) []EncodedToken {
	tokens := make([]EncodedToken, 0, len(matches))
	for _, m := range matches {
		token := EncodedToken{Symbol: m.Symbol, Length: m.Length}
		token.Indicator, token.HasIndicator = palette.RunIndicator(m.Length)
		tokens = append(tokens, token)
	}
	return tokens
}
