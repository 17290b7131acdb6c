package analysis

import (
	"fmt"
	"strconv"

	"github.com/verte-zerg/voynich/internal/cipher"
	"github.com/verte-zerg/voynich/internal/model"
	"github.com/verte-zerg/voynich/internal/scoring"
	"github.com/verte-zerg/voynich/internal/wordlist"
)

// Config holds the fixed keys the analyzer decodes with.
type Config struct {
	Substitution cipher.SubstitutionKey
	PolyKey      string
	Jobs         int
}

// DefaultConfig returns the built-in substitution key and keyword.
func DefaultConfig() Config {
	return Config{
		Substitution: cipher.DefaultSubstitutionKey(),
		PolyKey:      cipher.DefaultPolyKey,
	}
}

// Analyzer runs every technique against a ciphertext and word set.
type Analyzer struct {
	cfg     Config
	breaker Breaker
}

// NewAnalyzer returns an analyzer bound to cfg.
func NewAnalyzer(cfg Config) *Analyzer {
	return &Analyzer{cfg: cfg, breaker: Breaker{Jobs: cfg.Jobs}}
}

// Analyze reports letter frequencies and one result per technique. A bad
// polyalphabetic keyword skips only that technique and is recorded as a
// diagnostic.
func (a *Analyzer) Analyze(ciphertext string, words wordlist.WordSet) model.Analysis {
	out := model.Analysis{Frequency: cipher.Frequency(ciphertext)}

	shift, score := a.breaker.Break(ciphertext, words)
	out.Results = append(out.Results, newResult(model.TechniqueCaesar,
		map[string]string{"shift": strconv.Itoa(shift)},
		cipher.ShiftDecrypt(ciphertext, shift), score))

	text := cipher.SubstitutionDecrypt(ciphertext, a.cfg.Substitution)
	out.Results = append(out.Results, newResult(model.TechniqueSubstitution,
		map[string]string{"key": a.cfg.Substitution.String()},
		text, scoring.Score(text, words)))

	if text, err := cipher.PolyalphabeticDecrypt(ciphertext, a.cfg.PolyKey); err != nil {
		out.Diagnostics = append(out.Diagnostics, model.Diagnostic{
			Kind:    model.DiagInvalidKey,
			Message: fmt.Sprintf("skipping polyalphabetic analysis: %v", err),
		})
	} else {
		out.Results = append(out.Results, newResult(model.TechniquePolyalphabetic,
			map[string]string{"keyword": a.cfg.PolyKey},
			text, scoring.Score(text, words)))
	}

	text = cipher.Reverse(ciphertext)
	out.Results = append(out.Results, newResult(model.TechniqueReversal, nil,
		text, scoring.Score(text, words)))

	out.Results = append(out.Results, newResult(model.TechniquePlaintext, nil,
		ciphertext, scoring.Score(ciphertext, words)))
	return out
}

func newResult(t model.Technique, params map[string]string, text string, score scoring.Result) model.ScoreResult {
	return model.ScoreResult{
		Technique: t,
		Params:    params,
		Text:      text,
		Count:     score.Count,
		Matched:   score.Matched,
	}
}
