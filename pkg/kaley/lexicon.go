package kaley

import (
	"sort"
	"strings"

	"github.com/spicery/kaley-encoding/pkg/corpus"
)

// DefaultSeparators are the characters that mark a corpus name as multi-word.
// They are always applied, whatever extra separators are configured.
const DefaultSeparators = " "

// Symbol pairs a lowercase, separator-free name with the glyph it renders as.
// Symbols are never modified once the lexicon has been built.
type Symbol struct {
	Name  string
	Glyph string
}

// Lexicon is the set of symbols used as match candidates, sorted by name.
type Lexicon []*Symbol

// BuildLexicon creates a lexicon using the default separators.
func BuildLexicon(entries []corpus.Entry) Lexicon {
	return BuildLexiconWithSeparators(entries, DefaultSeparators)
}

// BuildLexiconWithSeparators creates a lexicon, discarding every entry whose
// lowercased name contains a default separator or any of the given extra
// separator characters.
func BuildLexiconWithSeparators(entries []corpus.Entry, separators string) Lexicon {
	separators = MergeSeparators(DefaultSeparators, separators)
	lexicon := make(Lexicon, 0, len(entries))
	for _, entry := range entries {
		name := asciiLower(entry.Name)
		if strings.ContainsAny(name, separators) {
			continue
		}
		lexicon = append(lexicon, &Symbol{Name: name, Glyph: entry.Glyph})
	}

	// Equal names keep corpus order.
	sort.SliceStable(lexicon, func(i, j int) bool {
		return lexicon[i].Name < lexicon[j].Name
	})

	return lexicon
}

// MergeSeparators returns the separator characters of base followed by those
// of extra that base does not already hold.
func MergeSeparators(base, extra string) string {
	var b strings.Builder
	b.WriteString(base)
	for _, r := range extra {
		if !strings.ContainsRune(b.String(), r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Len returns the number of symbols in the lexicon.
func (l Lexicon) Len() int {
	return len(l)
}

// Lookup returns the first symbol with exactly the given name.
func (l Lexicon) Lookup(name string) (*Symbol, bool) {
	i := sort.Search(len(l), func(i int) bool { return l[i].Name >= name })
	if i < len(l) && l[i].Name == name {
		return l[i], true
	}
	return nil, false
}

// asciiLower folds ASCII letters to lowercase and leaves everything else alone.
func asciiLower(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}
