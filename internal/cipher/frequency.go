package cipher

import (
	"sort"
	"strings"
	"unicode"

	"github.com/verte-zerg/voynich/internal/model"
)

// Frequency counts letters in text, most frequent first. Ties sort by letter.
func Frequency(text string) []model.FrequencyEntry {
	counts := map[rune]int{}
	for _, ch := range text {
		if unicode.IsLetter(ch) {
			counts[ch]++
		}
	}
	entries := make([]model.FrequencyEntry, 0, len(counts))
	for ch, n := range counts {
		entries = append(entries, model.FrequencyEntry{Char: ch, Count: n})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count == entries[j].Count {
			return entries[i].Char < entries[j].Char
		}
		return entries[i].Count > entries[j].Count
	})
	return entries
}

// Clean drops everything except ASCII letters and whitespace, then lowercases
// and trims. Page markers such as "f93v" lose their digits.
func Clean(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, ch := range text {
		if _, ok := letterBase(ch); ok || unicode.IsSpace(ch) {
			b.WriteRune(ch)
		}
	}
	return strings.TrimSpace(strings.ToLower(b.String()))
}
