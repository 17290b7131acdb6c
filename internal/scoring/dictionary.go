// Package scoring rates candidate plaintexts against a word list.
package scoring

import (
	"sort"
	"strings"

	"github.com/verte-zerg/voynich/internal/wordlist"
)

// Result is a dictionary validity score.
type Result struct {
	// Count is the number of matching token occurrences.
	Count int
	// Matched holds the distinct lowercase matches in ascending order.
	Matched []string
}

// Score splits text on whitespace and counts tokens found in words, ignoring case.
func Score(text string, words wordlist.WordSet) Result {
	if len(words) == 0 {
		return Result{Matched: []string{}}
	}
	var res Result
	seen := map[string]struct{}{}
	for _, token := range strings.Fields(text) {
		token = wordlist.Normalize(token)
		if !words.Contains(token) {
			continue
		}
		res.Count++
		if _, ok := seen[token]; !ok {
			seen[token] = struct{}{}
			res.Matched = append(res.Matched, token)
		}
	}
	if res.Matched == nil {
		res.Matched = []string{}
	}
	sort.Strings(res.Matched)
	return res
}

// Count returns only the number of matching tokens.
func Count(text string, words wordlist.WordSet) int {
	if len(words) == 0 {
		return 0
	}
	n := 0
	for _, token := range strings.Fields(text) {
		if words.Contains(wordlist.Normalize(token)) {
			n++
		}
	}
	return n
}
