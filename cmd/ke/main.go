package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode"

	"github.com/dustin/go-humanize"
	"github.com/spicery/kaley-encoding/pkg/corpus"
	"github.com/spicery/kaley-encoding/pkg/kaley"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

const (
	version = "0.1.0"
	usage   = `ke - Demonstration of Kaley Encoding

Usage:
  ke --input <word> [options]
  ke --batch [options]

Options:
  -h, --help            Show this help message
  -v, --version         Show version information
  -i, --input <word>    The word to encode (a single word, no whitespace)
  --reference           Print each emoji used in the result with its name
  --batch               Read words from stdin, one per line
  --json                Output one JSON token object per line, tagged with its word
  --output <file>       Output file (defaults to stdout)
  --corpus <file>       YAML or TOML corpus file to add to the lexicon
  --no-embedded         Do not include the built-in emoji corpus
  --config <file>       YAML or TOML configuration file (optional)
  --make-config         Generate default configuration YAML to stdout
  --verbose             Log debug information to stderr

Examples:
  ke --input kaley                       # Encode a single word
  ke -i kaley --reference                # Also list the emojis used
  ke --corpus extra.yaml -i kaley        # Add corpus entries from a file
  printf 'cat\ndog\n' | ke --batch       # Encode words from stdin
  ke --make-config > kaley.yaml          # Generate default configuration
`
)

type options struct {
	input      string
	reference  bool
	batch      bool
	jsonOutput bool
	outputFile string
	corpusFile string
	noEmbedded bool
	configFile string
	makeConfig bool
	verbose    bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts options
	var showHelp, showVersion bool

	flags := flag.NewFlagSet("ke", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.BoolVar(&showHelp, "h", false, "Show help")
	flags.BoolVar(&showHelp, "help", false, "Show help")
	flags.BoolVar(&showVersion, "v", false, "Show version")
	flags.BoolVar(&showVersion, "version", false, "Show version")
	flags.StringVar(&opts.input, "i", "", "The word to encode")
	flags.StringVar(&opts.input, "input", "", "The word to encode")
	flags.BoolVar(&opts.reference, "reference", false, "Print a reference listing")
	flags.BoolVar(&opts.batch, "batch", false, "Read words from stdin")
	flags.BoolVar(&opts.jsonOutput, "json", false, "Output JSON tokens")
	flags.StringVar(&opts.outputFile, "output", "", "Output file (defaults to stdout)")
	flags.StringVar(&opts.corpusFile, "corpus", "", "Corpus file (optional)")
	flags.BoolVar(&opts.noEmbedded, "no-embedded", false, "Skip the built-in corpus")
	flags.StringVar(&opts.configFile, "config", "", "Configuration file (optional)")
	flags.BoolVar(&opts.makeConfig, "make-config", false, "Generate default configuration YAML")
	flags.BoolVar(&opts.verbose, "verbose", false, "Log debug information")

	flags.Usage = func() {
		fmt.Fprint(stderr, usage)
	}

	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 1
	}

	if showHelp {
		flags.Usage()
		return 0
	}

	if showVersion {
		fmt.Fprintf(stdout, "ke version %s\n", version)
		return 0
	}

	if opts.makeConfig {
		if err := generateDefaultConfig(stdout); err != nil {
			fmt.Fprintf(stderr, "Error generating default configuration: %v\n", err)
			return 1
		}
		return 0
	}

	// Reject any positional arguments
	if len(flags.Args()) > 0 {
		fmt.Fprintf(stderr, "Error: Unexpected positional arguments. Use --input instead.\n\n")
		flags.Usage()
		return 1
	}

	if err := checkFlagConflicts(opts); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n\n", err)
		flags.Usage()
		return 1
	}

	if !opts.batch {
		if err := validateWord(opts.input); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n\n", err)
			flags.Usage()
			return 1
		}
	}

	logger := newLogger(stderr, opts.verbose)

	encoder, err := newEncoder(opts, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if opts.batch {
		return runBatch(encoder, opts, stdin, stdout, stderr, logger)
	}

	tokens, err := encoder.EncodeWord(opts.input)
	if err != nil {
		fmt.Fprintf(stderr, "Encoding error: %v\n", err)
		return 1
	}

	// Prepare output destination only once encoding has succeeded
	output, closeOutput, err := openOutput(opts.outputFile, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "Error creating output file '%s': %v\n", opts.outputFile, err)
		return 1
	}

	if err := render(output, opts.input, tokens, opts); err != nil {
		fmt.Fprintf(stderr, "Error writing output: %v\n", err)
		closeOutput()
		return 1
	}

	if err := closeOutput(); err != nil {
		fmt.Fprintf(stderr, "Error closing output file '%s': %v\n", opts.outputFile, err)
		return 1
	}
	return 0
}

// runBatch encodes every non-blank line of stdin. A word that cannot be
// encoded is reported and skipped; the exit code is then 1.
func runBatch(encoder *kaley.Encoder, opts options, stdin io.Reader, stdout, stderr io.Writer, logger *slog.Logger) int {
	output, closeOutput, err := openOutput(opts.outputFile, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "Error creating output file '%s': %v\n", opts.outputFile, err)
		return 1
	}

	prompt := isTerminal(stdin)
	exitCode := 0
	scanner := bufio.NewScanner(stdin)

	for {
		if prompt {
			fmt.Fprint(stderr, "> ")
		}
		if !scanner.Scan() {
			break
		}

		word := strings.TrimSpace(scanner.Text())
		if word == "" {
			continue
		}
		if err := validateWord(word); err != nil {
			fmt.Fprintf(stderr, "Error: %q: %v\n", word, err)
			exitCode = 1
			continue
		}

		tokens, err := encoder.EncodeWord(word)
		if err != nil {
			fmt.Fprintf(stderr, "Encoding error: %v\n", err)
			exitCode = 1
			continue
		}

		if err := render(output, word, tokens, opts); err != nil {
			fmt.Fprintf(stderr, "Error writing output: %v\n", err)
			closeOutput()
			return 1
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(stderr, "Error reading from stdin: %v\n", err)
		exitCode = 1
	}

	stats := encoder.Stats()
	logger.Debug("Batch completed",
		"cache_hits", humanize.Comma(stats.Hits),
		"cache_misses", humanize.Comma(stats.Misses),
		"cache_size", humanize.Comma(int64(stats.Size)))

	if err := closeOutput(); err != nil {
		fmt.Fprintf(stderr, "Error closing output file '%s': %v\n", opts.outputFile, err)
		return 1
	}
	return exitCode
}

// newEncoder assembles the configuration and corpus providers.
func newEncoder(opts options, logger *slog.Logger) (*kaley.Encoder, error) {
	var configFile *kaley.ConfigFile
	if opts.configFile != "" {
		var err error
		configFile, err = kaley.LoadConfigFile(opts.configFile)
		if err != nil {
			return nil, err
		}
	}

	cfg, err := kaley.ApplyConfigToDefaults(configFile)
	if err != nil {
		return nil, err
	}

	var providers []corpus.Provider
	if !opts.noEmbedded {
		providers = append(providers, corpus.Embedded())
	}
	for _, path := range cfg.CorpusFiles {
		providers = append(providers, corpus.FromFile(path))
	}
	if opts.corpusFile != "" {
		providers = append(providers, corpus.FromFile(opts.corpusFile))
	}

	encoder, err := kaley.NewEncoder(cfg, providers...)
	if err != nil {
		return nil, err
	}

	logger.Debug("Lexicon built",
		"corpus_entries", humanize.Comma(int64(encoder.CorpusSize())),
		"symbols", humanize.Comma(int64(encoder.Lexicon().Len())),
		"cache_size", cfg.CacheSize)

	if encoder.Lexicon().Len() == 0 {
		logger.Warn("Lexicon is empty; every word will fail to encode")
	} else if missing := missingLetters(encoder.Lexicon()); missing != "" {
		logger.Debug("Lexicon lacks single-letter symbols; words using these letters may fail to encode",
			"missing_letters", missing)
	}
	return encoder, nil
}

// missingLetters lists the ASCII letters that have no one-letter symbol.
func missingLetters(lexicon kaley.Lexicon) string {
	var missing strings.Builder
	for r := 'a'; r <= 'z'; r++ {
		if _, ok := lexicon.Lookup(string(r)); !ok {
			missing.WriteRune(r)
		}
	}
	return missing.String()
}

func render(w io.Writer, word string, tokens []kaley.EncodedToken, opts options) error {
	if opts.jsonOutput {
		return kaley.RenderJSON(w, word, tokens)
	}
	return kaley.Render(w, tokens, opts.reference)
}

// checkFlagConflicts rejects flags that would otherwise be silently ignored.
func checkFlagConflicts(opts options) error {
	if opts.batch && opts.input != "" {
		return errors.New("--input cannot be combined with --batch")
	}
	if opts.jsonOutput && opts.reference {
		return errors.New("--reference cannot be combined with --json")
	}
	return nil
}

// validateWord checks that word is a single non-empty word.
func validateWord(word string) error {
	if word == "" {
		return errors.New("--input is required")
	}
	if strings.IndexFunc(word, unicode.IsSpace) >= 0 {
		return errors.New("input must be a single word without whitespace")
	}
	return nil
}

// openOutput returns stdout or a newly created file, and a function that
// closes whatever was opened.
func openOutput(filename string, stdout io.Writer) (io.Writer, func() error, error) {
	if filename == "" {
		return stdout, func() error { return nil }, nil
	}
	file, err := os.Create(filename)
	if err != nil {
		return nil, nil, err
	}
	return file, file.Close, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// generateDefaultConfig outputs the default configuration in YAML format.
func generateDefaultConfig(w io.Writer) error {
	yamlBytes, err := yaml.Marshal(kaley.DefaultConfigFile())
	if err != nil {
		return fmt.Errorf("failed to marshal configuration to YAML: %w", err)
	}
	_, err = w.Write(yamlBytes)
	return err
}
