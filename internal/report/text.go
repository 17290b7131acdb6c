// Package report renders analysis runs for people and machines.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/verte-zerg/voynich/internal/model"
)

// Options controls text rendering.
type Options struct {
	NoColor bool
	// Top limits the frequency table to the N most frequent letters. 0 shows all.
	Top int
}

type palette struct {
	heading *color.Color
	best    *color.Color
	warn    *color.Color
	muted   *color.Color
}

func newPalette(noColor bool) palette {
	p := palette{
		heading: color.New(color.FgCyan, color.Bold),
		best:    color.New(color.FgGreen, color.Bold),
		warn:    color.New(color.FgYellow),
		muted:   color.New(color.FgHiBlack),
	}
	for _, c := range []*color.Color{p.heading, p.best, p.warn, p.muted} {
		if noColor {
			c.DisableColor()
		} else {
			c.EnableColor()
		}
	}
	return p
}

// printer remembers the first write error so renderers can stay linear.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) println(args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.w, args...)
}

var techniqueTitles = map[model.Technique]string{
	model.TechniqueCaesar:         "Caesar Cipher",
	model.TechniqueSubstitution:   "Monoalphabetic Substitution",
	model.TechniquePolyalphabetic: "Polyalphabetic (Vigenère) Cipher",
	model.TechniqueReversal:       "Transposition (Reversal)",
	model.TechniquePlaintext:      "Dictionary-Based Analysis of Ciphertext",
}

// TechniqueTitle returns a display name for a technique.
func TechniqueTitle(t model.Technique) string {
	if title, ok := techniqueTitles[t]; ok {
		return title
	}
	return string(t)
}

// RenderText prints the full report: per language frequency table, one block
// per technique with its matched words, a summary table, then diagnostics.
func RenderText(w io.Writer, report model.RunReport, opts Options) error {
	pal := newPalette(opts.NoColor)
	p := &printer{w: w}

	p.println("Analyzed text:")
	p.println(report.Ciphertext)

	if len(report.Languages) == 0 {
		p.println()
		p.println("No dictionaries were available; nothing was analyzed.")
	}
	for _, lang := range report.Languages {
		renderLanguage(p, pal, lang, opts)
	}

	if diags := collectDiagnostics(report); len(diags) > 0 {
		p.println()
		p.println(pal.heading.Sprint("=== Diagnostics ==="))
		for _, d := range diags {
			label := string(d.Kind)
			if d.Language != "" {
				label += " [" + d.Language + "]"
			}
			p.printf("%s %s\n", pal.warn.Sprint(label), d.Message)
		}
	}
	return p.err
}

func renderLanguage(p *printer, pal palette, lang model.LanguageReport, opts Options) {
	rule := strings.Repeat("=", 29)
	p.println()
	p.println(rule)
	p.println(pal.heading.Sprint("Analyzing Language: " + lang.Language))
	p.println(rule)
	p.println(pal.muted.Sprintf("Dictionary: %s (%d words, fingerprint %s)", lang.Dictionary, lang.Words, lang.Fingerprint))

	p.println()
	p.println(pal.heading.Sprint("=== Frequency Analysis ==="))
	for _, line := range frequencyLines(lang.Analysis.Frequency, opts.Top) {
		p.println(line)
	}

	best := bestIndex(lang.Analysis.Results)
	for i, r := range lang.Analysis.Results {
		p.println()
		p.println(pal.heading.Sprintf("=== %s ===", TechniqueTitle(r.Technique)))
		switch r.Technique {
		case model.TechniqueCaesar:
			p.printf("Best Caesar Shift: %s\n", r.Params["shift"])
			p.printf("Decrypted Text with Best Shift: %s\n", r.Text)
		case model.TechniqueSubstitution:
			p.printf("Key: %s\n", r.Params["key"])
			p.printf("Decrypted Text: %s\n", r.Text)
		case model.TechniquePolyalphabetic:
			p.printf("Keyword: %s\n", r.Params["keyword"])
			p.printf("Decrypted Text: %s\n", r.Text)
		case model.TechniqueReversal:
			p.printf("Reversed Text: %s\n", r.Text)
		default:
			p.printf("Text: %s\n", r.Text)
		}
		count := fmt.Sprintf("Valid Words: %d", r.Count)
		if i == best {
			count = pal.best.Sprint(count + " (best)")
		}
		p.println(count)
		p.printf("Matched Words: [%s]\n", strings.Join(r.Matched, ", "))
	}

	p.println()
	p.println(pal.heading.Sprint("=== Summary ==="))
	for _, line := range summaryLines(lang.Analysis.Results) {
		p.println(line)
	}
}

func frequencyLines(entries []model.FrequencyEntry, top int) []string {
	if len(entries) == 0 {
		return []string{"No letters found."}
	}
	if top > 0 && top < len(entries) {
		entries = entries[:top]
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{string(e.Char), fmt.Sprintf("%d", e.Count)})
	}
	return formatTable([]string{"Char", "Count"}, rows, map[int]bool{1: true})
}

func summaryLines(results []model.ScoreResult) []string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{string(r.Technique), fmt.Sprintf("%d", r.Count), formatParams(r.Params)})
	}
	return formatTable([]string{"Technique", "Valid", "Params"}, rows, map[int]bool{1: true})
}

func formatParams(params map[string]string) string {
	if len(params) == 0 {
		return "-"
	}
	for _, k := range []string{"shift", "keyword", "key"} {
		if v, ok := params[k]; ok {
			return k + "=" + v
		}
	}
	return "-"
}

// bestIndex returns the first result with the highest positive count, or -1.
func bestIndex(results []model.ScoreResult) int {
	best := -1
	for i, r := range results {
		if r.Count > 0 && (best < 0 || r.Count > results[best].Count) {
			best = i
		}
	}
	return best
}

func collectDiagnostics(report model.RunReport) []model.Diagnostic {
	var out []model.Diagnostic
	for _, lang := range report.Languages {
		out = append(out, lang.Analysis.Diagnostics...)
	}
	return append(out, report.Diagnostics...)
}
