// Package analysis runs the decoding techniques against word lists and
// collects their scores.
package analysis

import (
	"golang.org/x/sync/errgroup"

	"github.com/verte-zerg/voynich/internal/cipher"
	"github.com/verte-zerg/voynich/internal/scoring"
	"github.com/verte-zerg/voynich/internal/wordlist"
)

// ShiftCount is the number of distinct shifts tried by the breaker.
const ShiftCount = 26

// Breaker brute-forces the shift cipher.
type Breaker struct {
	// Jobs bounds concurrent shift evaluations. Values <= 1 run sequentially.
	Jobs int
}

// Break returns the lowest shift with the strictly highest score, or 0 when
// no shift matches any word.
func (b Breaker) Break(text string, words wordlist.WordSet) (int, scoring.Result) {
	scores := b.scoreAll(text, words)
	best := 0
	for shift := 1; shift < ShiftCount; shift++ {
		if scores[shift].Count > scores[best].Count {
			best = shift
		}
	}
	return best, scores[best]
}

func (b Breaker) scoreAll(text string, words wordlist.WordSet) []scoring.Result {
	scores := make([]scoring.Result, ShiftCount)
	if b.Jobs <= 1 {
		for shift := range scores {
			scores[shift] = scoring.Score(cipher.ShiftDecrypt(text, shift), words)
		}
		return scores
	}

	// Each goroutine owns one index, so no locking is needed.
	var g errgroup.Group
	g.SetLimit(min(b.Jobs, ShiftCount))
	for shift := range scores {
		g.Go(func() error {
			scores[shift] = scoring.Score(cipher.ShiftDecrypt(text, shift), words)
			return nil
		})
	}
	_ = g.Wait()
	return scores
}
