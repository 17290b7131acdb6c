// Package model defines shared data structures.
package model

import "time"

// Technique identifies a decoding technique in a report.
type Technique string

// Techniques in the order the analyzer runs them.
const (
	TechniqueCaesar         Technique = "caesar"
	TechniqueSubstitution   Technique = "substitution"
	TechniquePolyalphabetic Technique = "polyalphabetic"
	TechniqueReversal       Technique = "reversal"
	TechniquePlaintext      Technique = "plaintext"
)

// DiagnosticKind classifies a recoverable problem recorded during a run.
type DiagnosticKind string

const (
	DiagMissingWordList DiagnosticKind = "missing-word-list"
	DiagWordListRead    DiagnosticKind = "word-list-read-failure"
	DiagInvalidKey      DiagnosticKind = "invalid-key"
	DiagStore           DiagnosticKind = "store"
	DiagCanceled        DiagnosticKind = "canceled"
)

// Config defines analysis settings after config file and flags are merged.
type Config struct {
	Text         string
	Languages    []string
	DictDir      string
	DictPattern  string
	PolyKey      string
	Substitution map[rune]rune
	Clean        bool
	Jobs         int
	Format       string
	NoColor      bool
	NoSave       bool
}

// FrequencyEntry is one row of a letter frequency table.
type FrequencyEntry struct {
	Char  rune `json:"char" yaml:"char"`
	Count int  `json:"count" yaml:"count"`
}

// ScoreResult captures one technique invocation and its dictionary score.
type ScoreResult struct {
	Technique Technique         `json:"technique" yaml:"technique"`
	Params    map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
	Text      string            `json:"text" yaml:"text"`
	Count     int               `json:"count" yaml:"count"`
	Matched   []string          `json:"matched" yaml:"matched"`
}

// Diagnostic records a recoverable problem. Language is empty for run-wide issues.
type Diagnostic struct {
	Kind     DiagnosticKind `json:"kind" yaml:"kind"`
	Language string         `json:"language,omitempty" yaml:"language,omitempty"`
	Message  string         `json:"message" yaml:"message"`
}

// Analysis is the output of analyzing one ciphertext against one word set.
type Analysis struct {
	Frequency   []FrequencyEntry `json:"frequency" yaml:"frequency"`
	Results     []ScoreResult    `json:"results" yaml:"results"`
	Diagnostics []Diagnostic     `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// Result returns the result for a technique, if it ran.
func (a Analysis) Result(t Technique) (ScoreResult, bool) {
	for _, r := range a.Results {
		if r.Technique == t {
			return r, true
		}
	}
	return ScoreResult{}, false
}

// LanguageReport is the analysis for a single language's word list.
type LanguageReport struct {
	Language    string   `json:"language" yaml:"language"`
	Dictionary  string   `json:"dictionary" yaml:"dictionary"`
	Words       int      `json:"words" yaml:"words"`
	Fingerprint string   `json:"fingerprint" yaml:"fingerprint"`
	Analysis    Analysis `json:"analysis" yaml:"analysis"`
}

// RunReport is everything produced by one invocation.
type RunReport struct {
	StartedAt   time.Time        `json:"started_at" yaml:"started_at"`
	Ciphertext  string           `json:"ciphertext" yaml:"ciphertext"`
	Languages   []LanguageReport `json:"languages" yaml:"languages"`
	Diagnostics []Diagnostic     `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// RunSummary is a stored run as listed by the history view.
type RunSummary struct {
	RunID       int64
	StartedAt   time.Time
	Ciphertext  string
	Languages   int
	BestCount   int
	BestLang    string
	BestTech    Technique
	Diagnostics int
}

// StoredResult is a persisted ScoreResult with its language.
type StoredResult struct {
	Language string
	ScoreResult
}
