package kaley

import (
	"encoding/json"
)

// EncodedToken is a matched symbol together with its optional run indicator.
type EncodedToken struct {
	Symbol       *Symbol
	Length       int
	Indicator    string
	HasIndicator bool
}

// String returns the rendered form of the token: its glyph then its indicator.
func (t EncodedToken) String() string {
	if t.HasIndicator {
		return t.Symbol.Glyph + t.Indicator
	}
	return t.Symbol.Glyph
}

type tokenJSON struct {
	Glyph     string  `json:"glyph"`
	Name      string  `json:"name"`
	Length    int     `json:"length"`
	Indicator *string `json:"indicator,omitempty"`
}

// MarshalJSON implements custom JSON marshaling for EncodedToken.
func (t EncodedToken) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.toJSON())
}

func (t EncodedToken) toJSON() tokenJSON {
	out := tokenJSON{
		Glyph:  t.Symbol.Glyph,
		Name:   t.Symbol.Name,
		Length: t.Length,
	}
	if t.HasIndicator {
		indicator := t.Indicator
		out.Indicator = &indicator
	}
	return out
}

// wordTokenJSON is a token line of RenderJSON, tagged with the word it
// belongs to.
type wordTokenJSON struct {
	Word string `json:"word"`
	tokenJSON
}
