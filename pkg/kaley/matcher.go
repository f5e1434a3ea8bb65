package kaley

import (
	"errors"
	"fmt"
)

// ErrNoSequence reports that no symbol matches at some input position.
var ErrNoSequence = errors.New("no sequence available")

// ExhaustedError records where the lexicon ran out of candidates.
type ExhaustedError struct {
	Input    string
	Position int // in runes
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%v: no symbol matches %q at position %d", ErrNoSequence, e.Input, e.Position)
}

func (e *ExhaustedError) Unwrap() error {
	return ErrNoSequence
}

// Match describes how many leading runes of the remaining input a symbol consumed.
type Match struct {
	Symbol *Symbol
	Length int
}

// Text returns the consumed part of the symbol's name.
func (m Match) Text() string {
	return string([]rune(m.Symbol.Name)[:m.Length])
}

// matcher walks the input left to right. All positions are rune offsets.
type matcher struct {
	input    string
	runes    []rune
	position int
	lexicon  Lexicon
	names    [][]rune
	matches  []Match
}

func newMatcher(input string, lexicon Lexicon) *matcher {
	names := make([][]rune, len(lexicon))
	for i, symbol := range lexicon {
		names[i] = []rune(symbol.Name)
	}
	return &matcher{
		input:   input,
		runes:   []rune(input),
		lexicon: lexicon,
		names:   names,
		matches: make([]Match, 0),
	}
}

// Encode greedily splits input into the longest available symbol prefixes.
// A symbol whose name is the whole input is never a candidate. Ties go to the
// earliest symbol in the lexicon. On failure no matches are returned.
func Encode(input string, lexicon Lexicon) ([]Match, error) {
	m := newMatcher(input, lexicon)
	for m.position < len(m.runes) {
		if err := m.next(); err != nil {
			return nil, err
		}
	}
	return m.matches, nil
}

// next selects the best symbol at the current position and advances past it.
func (m *matcher) next() error {
	remaining := m.runes[m.position:]
	longestRun := 0
	var best *Symbol

	for i, symbol := range m.lexicon {
		if symbol.Name == m.input {
			continue
		}
		if run := commonPrefixLen(remaining, m.names[i]); run > longestRun {
			longestRun = run
			best = symbol
		}
	}

	if best == nil {
		return &ExhaustedError{Input: m.input, Position: m.position}
	}

	m.matches = append(m.matches, Match{Symbol: best, Length: longestRun})
	m.position += longestRun
	return nil
}

func commonPrefixLen(a, b []rune) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}
