package kaley

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// Render writes tokens in the text layout. With reference set, a listing of
// each distinct symbol in first-use order precedes the result.
func Render(w io.Writer, tokens []EncodedToken, reference bool) error {
	bw := bufio.NewWriter(w)

	if reference {
		fmt.Fprintln(bw, "Reference:")
		seen := make(map[*Symbol]bool)
		for _, token := range tokens {
			if seen[token.Symbol] {
				continue
			}
			seen[token.Symbol] = true
			fmt.Fprintf(bw, "%s %s\n", token.Symbol.Glyph, token.Symbol.Name)
		}
		fmt.Fprintln(bw)
	}

	fmt.Fprintln(bw, "Result:")
	for _, token := range tokens {
		bw.WriteString(token.String())
	}
	fmt.Fprintln(bw)

	return bw.Flush()
}

// RenderJSON writes one JSON token object per line. Every object carries
// the encoded word under "word", so the output of several words can be
// split apart again.
func RenderJSON(w io.Writer, word string, tokens []EncodedToken) error {
	bw := bufio.NewWriter(w)
	for _, token := range tokens {
		jsonBytes, err := json.Marshal(wordTokenJSON{Word: word, tokenJSON: token.toJSON()})
		if err != nil {
			return fmt.Errorf("JSON encoding error: %w", err)
		}
		bw.Write(jsonBytes)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
