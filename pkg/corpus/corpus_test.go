package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlCorpus = `
entries:
  - name: cat
    glyph: "🐈"
  - name: red heart
    glyph: "❤️"
`

const tomlCorpus = `
[[entries]]
name = "cat"
glyph = "🐈"

[[entries]]
name = "red heart"
glyph = "❤️"
`

func TestEmbedded(t *testing.T) {
	entries, err := Embedded().Entries()
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	byName := make(map[string]string)
	for _, entry := range entries {
		assert.NotEmpty(t, entry.Name)
		assert.NotEmpty(t, entry.Glyph, "entry %q has no glyph", entry.Name)
		byName[entry.Name] = entry.Glyph
	}

	for r := 'a'; r <= 'z'; r++ {
		assert.Contains(t, byName, string(r), "missing letter tile")
	}
	assert.Contains(t, byName, "red heart")
	assert.Contains(t, byName, "cat")
}

func TestParseFormats(t *testing.T) {
	expected := []Entry{{Name: "cat", Glyph: "🐈"}, {Name: "red heart", Glyph: "❤️"}}

	fromYAML, err := Parse([]byte(yamlCorpus), YAML)
	require.NoError(t, err)
	assert.Equal(t, expected, fromYAML)

	fromTOML, err := Parse([]byte(tomlCorpus), TOML)
	require.NoError(t, err)
	assert.Equal(t, expected, fromTOML)

	_, err = Parse([]byte(yamlCorpus), Format("xml"))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path     string
		expected Format
		wantErr  bool
	}{
		{"corpus.yaml", YAML, false},
		{"corpus.YML", YAML, false},
		{"dir/corpus.toml", TOML, false},
		{"corpus.json", "", true},
		{"corpus", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			format, err := FormatForPath(tt.path)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrUnsupportedFormat))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, format)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "corpus.yaml")
	tomlPath := filepath.Join(dir, "corpus.toml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(yamlCorpus), 0o600))
	require.NoError(t, os.WriteFile(tomlPath, []byte(tomlCorpus), 0o600))

	fromYAML, err := LoadFile(yamlPath)
	require.NoError(t, err)
	fromTOML, err := FromFile(tomlPath).Entries()
	require.NoError(t, err)
	assert.Equal(t, fromYAML, fromTOML)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	broken := filepath.Join(dir, "broken.toml")
	require.NoError(t, os.WriteFile(broken, []byte("[[entries]\nname ="), 0o600))
	_, err = LoadFile(broken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), broken)
}

func TestMerge(t *testing.T) {
	first := Static{{Name: "b", Glyph: "1"}}
	second := Static{{Name: "a", Glyph: "2"}, {Name: "c", Glyph: "3"}}

	entries, err := Merge(first, second).Entries()
	require.NoError(t, err)
	assert.Equal(t, []Entry{{"b", "1"}, {"a", "2"}, {"c", "3"}}, entries)

	entries, err = Merge().Entries()
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = Merge(first, FromFile("missing.yaml")).Entries()
	assert.Error(t, err)
}

func TestStaticCopies(t *testing.T) {
	static := Static{{Name: "cat", Glyph: "🐈"}}
	entries, err := static.Entries()
	require.NoError(t, err)

	entries[0].Name = "dog"
	assert.Equal(t, "cat", static[0].Name)
}
