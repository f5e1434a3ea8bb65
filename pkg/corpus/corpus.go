package corpus

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Entry is a single name/glyph pair supplied by a corpus.
type Entry struct {
	Name  string `yaml:"name" toml:"name" json:"name"`
	Glyph string `yaml:"glyph" toml:"glyph" json:"glyph"`
}

// File represents the structure of a corpus file.
type File struct {
	Entries []Entry `yaml:"entries" toml:"entries"`
}

// Format identifies the encoding of a corpus or configuration document.
type Format string

const (
	YAML Format = "yaml"
	TOML Format = "toml"
)

// ErrUnsupportedFormat is returned when a file extension maps to no known format.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Provider supplies corpus entries in no particular order.
type Provider interface {
	Entries() ([]Entry, error)
}

//go:embed data/emoji.yaml
var embeddedCorpus []byte

type embedded struct{}

// Embedded returns the built-in emoji corpus.
func Embedded() Provider {
	return embedded{}
}

func (embedded) Entries() ([]Entry, error) {
	entries, err := Parse(embeddedCorpus, YAML)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded corpus: %w", err)
	}
	return entries, nil
}

// Static is an in-memory provider.
type Static []Entry

func (s Static) Entries() ([]Entry, error) {
	entries := make([]Entry, len(s))
	copy(entries, s)
	return entries, nil
}

type fileProvider struct {
	path string
}

// FromFile returns a provider that reads the corpus file at path each time
// Entries is called.
func FromFile(path string) Provider {
	return fileProvider{path: path}
}

func (f fileProvider) Entries() ([]Entry, error) {
	return LoadFile(f.path)
}

type merged []Provider

// Merge concatenates the entries of several providers, in argument order.
func Merge(providers ...Provider) Provider {
	return merged(providers)
}

func (m merged) Entries() ([]Entry, error) {
	var all []Entry
	for _, p := range m {
		entries, err := p.Entries()
		if err != nil {
			return nil, err
		}
		all = append(all, entries...)
	}
	return all, nil
}

// FormatForPath picks a document format from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	default:
		return "", fmt.Errorf("%w: '%s'", ErrUnsupportedFormat, path)
	}
}

// Decode unmarshals data in the given format into v.
func Decode(data []byte, format Format, v any) error {
	switch format {
	case YAML:
		return yaml.Unmarshal(data, v)
	case TOML:
		return toml.Unmarshal(data, v)
	default:
		return fmt.Errorf("%w: '%s'", ErrUnsupportedFormat, format)
	}
}

// Parse decodes a corpus document.
func Parse(data []byte, format Format) ([]Entry, error) {
	var file File
	if err := Decode(data, format, &file); err != nil {
		return nil, err
	}
	return file.Entries, nil
}

// LoadFile loads and parses a YAML or TOML corpus file.
func LoadFile(path string) ([]Entry, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus file '%s': %w", path, err)
	}

	entries, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s in corpus file '%s': %w", format, path, err)
	}
	return entries, nil
}
