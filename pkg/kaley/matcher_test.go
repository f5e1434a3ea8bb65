package kaley

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/spicery/kaley-encoding/pkg/corpus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lexiconOf builds a lexicon from alternating name, glyph arguments.
func lexiconOf(pairs ...string) Lexicon {
	entries := make([]corpus.Entry, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		entries = append(entries, corpus.Entry{Name: pairs[i], Glyph: pairs[i+1]})
	}
	return BuildLexicon(entries)
}

type matchSummary struct {
	Glyph  string
	Length int
}

func summarize(matches []Match) []matchSummary {
	out := make([]matchSummary, 0, len(matches))
	for _, m := range matches {
		out = append(out, matchSummary{m.Symbol.Glyph, m.Length})
	}
	return out
}

func TestEncodeScenarios(t *testing.T) {
	tests := []struct {
		name     string
		lexicon  Lexicon
		input    string
		expected []matchSummary
	}{
		{
			"Whole input symbol is excluded",
			lexiconOf("a", "A", "b", "B", "ab", "C"),
			"ab",
			[]matchSummary{{"A", 1}, {"B", 1}},
		},
		{
			"Longest prefix wins",
			lexiconOf("h", "H", "e", "E", "hellos", "W"),
			"hello",
			[]matchSummary{{"W", 5}},
		},
		{
			"Ties keep the smallest name",
			lexiconOf("t", "T", "cat", "2", "cab", "1", "c", "C", "a", "A"),
			"ca",
			[]matchSummary{{"1", 2}},
		},
		{
			"Sub-run equal to a symbol is allowed",
			lexiconOf("c", "C", "a", "A", "t", "T", "cat", "X"),
			"catcat",
			[]matchSummary{{"X", 3}, {"X", 3}},
		},
		{
			"Self match exclusion only applies to the whole input",
			lexiconOf("c", "C", "a", "A", "t", "T", "cat", "X"),
			"cat",
			[]matchSummary{{"C", 1}, {"A", 1}, {"T", 1}},
		},
		{
			"Duplicate names keep corpus order",
			lexiconOf("cat", "first", "cat", "second", "s", "S"),
			"cats",
			[]matchSummary{{"first", 3}, {"S", 1}},
		},
		{
			"Positions count runes",
			lexiconOf("caf", "☕", "é", "E"),
			"café",
			[]matchSummary{{"☕", 3}, {"E", 1}},
		},
		{
			"Empty input",
			lexiconOf("a", "A"),
			"",
			[]matchSummary{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches, err := Encode(tt.input, tt.lexicon)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, summarize(matches))
		})
	}
}

func TestEncodeExhaustion(t *testing.T) {
	tests := []struct {
		name     string
		lexicon  Lexicon
		input    string
		position int
	}{
		{"Empty lexicon", Lexicon{}, "abc", 0},
		{"Missing character", lexiconOf("a", "A", "b", "B"), "abz", 2},
		{"Only the whole-input symbol matches", lexiconOf("xy", "X"), "xy", 0},
		{"Multi-byte position", lexiconOf("é", "E"), "éé?", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches, err := Encode(tt.input, tt.lexicon)
			assert.Nil(t, matches)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrNoSequence))

			var exhausted *ExhaustedError
			require.True(t, errors.As(err, &exhausted))
			assert.Equal(t, tt.input, exhausted.Input)
			assert.Equal(t, tt.position, exhausted.Position)
		})
	}
}

func TestMatchText(t *testing.T) {
	m := Match{Symbol: &Symbol{Name: "café", Glyph: "☕"}, Length: 4}
	assert.Equal(t, "café", m.Text())

	m.Length = 2
	assert.Equal(t, "ca", m.Text())
}

// TestEncodeProperties checks reconstruction, greedy maximality and the tie
// break against a brute-force scan on random words.
func TestEncodeProperties(t *testing.T) {
	entries := []corpus.Entry{}
	for r := 'a'; r <= 'z'; r++ {
		entries = append(entries, corpus.Entry{Name: string(r), Glyph: strings.ToUpper(string(r))})
	}
	for _, name := range []string{"abba", "ab", "bab", "banana", "ban", "nab", "aaaaaaaaa", "an", "ana"} {
		entries = append(entries, corpus.Entry{Name: name, Glyph: "<" + name + ">"})
	}
	lexicon := BuildLexicon(entries)

	rng := rand.New(rand.NewSource(42))
	alphabet := []rune("abn")

	for i := 0; i < 500; i++ {
		word := make([]rune, 1+rng.Intn(12))
		for j := range word {
			word[j] = alphabet[rng.Intn(len(alphabet))]
		}
		input := string(word)

		matches, err := Encode(input, lexicon)
		require.NoError(t, err, input)

		var rebuilt strings.Builder
		position := 0
		for _, m := range matches {
			require.Greater(t, m.Length, 0)
			remaining := word[position:]
			bestLength := 0
			var bestSymbol *Symbol
			for _, s := range lexicon {
				if s.Name == input {
					continue
				}
				if n := prefixByHasPrefix(string(remaining), s.Name); n > bestLength {
					bestLength = n
					bestSymbol = s
				}
			}
			assert.Equal(t, bestLength, m.Length, "maximality for %q at %d", input, position)
			assert.Same(t, bestSymbol, m.Symbol, "tie break for %q at %d", input, position)

			rebuilt.WriteString(m.Text())
			position += m.Length
		}
		assert.Equal(t, input, rebuilt.String())
		for _, m := range matches {
			assert.NotEqual(t, input, m.Symbol.Name, "self match for %q", input)
		}
	}
}

// prefixByHasPrefix finds the longest prefix of name that starts rest, in runes.
func prefixByHasPrefix(rest, name string) int {
	runes := []rune(name)
	for n := len(runes); n > 0; n-- {
		if strings.HasPrefix(rest, string(runes[:n])) {
			return n
		}
	}
	return 0
}
