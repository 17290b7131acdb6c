package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/verte-zerg/voynich/internal/model"
	"github.com/verte-zerg/voynich/internal/wordlist"
)

// WordSource loads the word set for a language and reports where it came from.
type WordSource interface {
	Load(lang string) (wordlist.WordSet, string, error)
}

// Runner analyzes one ciphertext against every configured language.
type Runner struct {
	Analyzer *Analyzer
	Source   WordSource
	Logger   *slog.Logger
	Now      func() time.Time
}

// Run always returns a report. A missing word list skips its language, and an
// unreadable one is analyzed as empty; both are recorded as diagnostics.
func (r *Runner) Run(ctx context.Context, ciphertext string, languages []string) model.RunReport {
	now := r.Now
	if now == nil {
		now = time.Now
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	report := model.RunReport{StartedAt: now(), Ciphertext: ciphertext}
	for i, lang := range languages {
		if err := ctx.Err(); err != nil {
			d := model.Diagnostic{
				Kind:    model.DiagCanceled,
				Message: fmt.Sprintf("stopped before %d remaining languages: %v", len(languages)-i, err),
			}
			logger.Warn("analysis canceled", "remaining", len(languages)-i, "error", err)
			report.Diagnostics = append(report.Diagnostics, d)
			break
		}

		words, path, err := r.Source.Load(lang)
		if err != nil {
			if errors.Is(err, wordlist.ErrNotFound) {
				logger.Warn("dictionary not found", "language", lang, "path", path)
				report.Diagnostics = append(report.Diagnostics, model.Diagnostic{
					Kind:     model.DiagMissingWordList,
					Language: lang,
					Message:  fmt.Sprintf("dictionary not found for language %s: %s", lang, path),
				})
				continue
			}
			logger.Warn("failed to read dictionary", "language", lang, "path", path, "error", err)
			report.Diagnostics = append(report.Diagnostics, model.Diagnostic{
				Kind:     model.DiagWordListRead,
				Language: lang,
				Message:  fmt.Sprintf("error reading dictionary %s; scoring against an empty list: %v", path, err),
			})
			words = wordlist.WordSet{}
		}

		logger.Debug("analyzing language", "language", lang, "words", len(words))
		analysis := r.Analyzer.Analyze(ciphertext, words)
		for j := range analysis.Diagnostics {
			analysis.Diagnostics[j].Language = lang
			logger.Warn(analysis.Diagnostics[j].Message, "language", lang)
		}
		report.Languages = append(report.Languages, model.LanguageReport{
			Language:    lang,
			Dictionary:  path,
			Words:       len(words),
			Fingerprint: words.Fingerprint(),
			Analysis:    analysis,
		})
	}
	return report
}
