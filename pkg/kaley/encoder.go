package kaley

import (
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"
	"github.com/spicery/kaley-encoding/pkg/corpus"
)

// Encoder owns a lexicon and palette and encodes words with them.
// It is safe for concurrent use.
type Encoder struct {
	lexicon Lexicon
	palette Palette
	entries int
	cache   *lru.Cache
	hits    atomic.Int64
	misses  atomic.Int64
}

// CacheStats reports how often EncodeWord was answered from the cache.
type CacheStats struct {
	Hits   int64
	Misses int64
	Size   int
}

// NewEncoder builds the lexicon from the providers' entries, in the order the
// providers are given. A nil cfg means DefaultConfig.
func NewEncoder(cfg *Config, providers ...corpus.Provider) (*Encoder, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	entries, err := corpus.Merge(providers...).Entries()
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}

	encoder := &Encoder{
		lexicon: BuildLexiconWithSeparators(entries, cfg.Separators),
		palette: cfg.Palette,
		entries: len(entries),
	}

	if cfg.CacheSize > 0 {
		cache, err := lru.New(cfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create cache: %w", err)
		}
		encoder.cache = cache
	}

	return encoder, nil
}

// EncodeWord folds word to lowercase and encodes it. Only successful
// encodings are cached, and cached token slices are shared between callers,
// so they must not be modified.
func (e *Encoder) EncodeWord(word string) ([]EncodedToken, error) {
	word = asciiLower(word)

	if e.cache != nil {
		if cached, ok := e.cache.Get(word); ok {
			e.hits.Add(1)
			return cached.([]EncodedToken), nil
		}
		e.misses.Add(1)
	}

	matches, err := Encode(word, e.lexicon)
	if err != nil {
		return nil, err
	}
	tokens := MapIndicators(matches, e.palette)

	if e.cache != nil {
		e.cache.Add(word, tokens)
	}
	return tokens, nil
}

// Lexicon returns the encoder's lexicon. Callers must not modify it.
func (e *Encoder) Lexicon() Lexicon {
	return e.lexicon
}

// Palette returns the encoder's indicator palette.
func (e *Encoder) Palette() Palette {
	return e.palette
}

// CorpusSize returns the number of corpus entries read, before filtering.
func (e *Encoder) CorpusSize() int {
	return e.entries
}

// Stats returns cache statistics.
func (e *Encoder) Stats() CacheStats {
	stats := CacheStats{Hits: e.hits.Load(), Misses: e.misses.Load()}
	if e.cache != nil {
		stats.Size = e.cache.Len()
	}
	return stats
}
