// Package wordlist loads word lists from files.
package wordlist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/verte-zerg/voynich/internal/config"
)

var (
	// ErrNotFound reports that a word list file does not exist.
	ErrNotFound = fmt.Errorf("word list not found: %w", fs.ErrNotExist)
	// ErrRead reports an I/O failure while reading a word list.
	ErrRead = errors.New("word list read failed")
)

// WordSet is a read-only set of lowercase words.
type WordSet map[string]struct{}

// NewWordSet normalizes and collects the given words.
func NewWordSet(words ...string) WordSet {
	set := make(WordSet, len(words))
	for _, w := range words {
		if w = Normalize(w); w != "" {
			set[w] = struct{}{}
		}
	}
	return set
}

// Contains reports whether word (already lowercase) is present.
func (s WordSet) Contains(word string) bool {
	_, ok := s[word]
	return ok
}

// Fingerprint hashes the sorted contents so runs can tell dictionaries apart.
func (s WordSet) Fingerprint() string {
	words := make([]string, 0, len(s))
	for w := range s {
		words = append(words, w)
	}
	sort.Strings(words)
	h := xxhash.New()
	for _, w := range words {
		_, _ = h.WriteString(w)
		_, _ = h.WriteString("\n")
	}
	return strconv.FormatUint(h.Sum64(), 16)
}

var lower = cases.Lower(language.Und)

// Normalize trims and lowercases a word.
func Normalize(word string) string {
	return lower.String(strings.TrimSpace(word))
}

// LoadWords reads one word per line from the provided file path.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()
	return readWords(file)
}

func readWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	return words, nil
}

// LoadWordSet reads a word list and normalizes it into a WordSet.
// An empty file yields an empty set, not an error.
func LoadWordSet(path string) (WordSet, error) {
	words, err := LoadWords(path)
	if err != nil {
		return nil, err
	}
	return NewWordSet(words...), nil
}

// Source resolves language names to dictionary files in a directory.
type Source struct {
	Dir     string
	Pattern string
}

// Load returns the word set for lang and the path it was read from.
func (s Source) Load(lang string) (WordSet, string, error) {
	path := config.DictionaryPath(s.Dir, s.Pattern, lang)
	set, err := LoadWordSet(path)
	return set, path, err
}
