package historyui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/voynich/internal/model"
)

type fakeSource struct {
	runs    []model.RunSummary
	results map[int64][]model.StoredResult
	diags   map[int64][]model.Diagnostic
	runsErr error
}

func (f *fakeSource) ListRuns(_ context.Context, limit int) ([]model.RunSummary, error) {
	if f.runsErr != nil {
		return nil, f.runsErr
	}
	if limit > 0 && limit < len(f.runs) {
		return f.runs[:limit], nil
	}
	return f.runs, nil
}

func (f *fakeSource) ListResults(_ context.Context, runID int64) ([]model.StoredResult, error) {
	return f.results[runID], nil
}

func (f *fakeSource) ListDiagnostics(_ context.Context, runID int64) ([]model.Diagnostic, error) {
	return f.diags[runID], nil
}

func sampleSource() *fakeSource {
	return &fakeSource{
		runs: []model.RunSummary{
			{RunID: 7, StartedAt: time.Unix(0, 0), Ciphertext: "wkhuh lv", Languages: 1, BestCount: 2, BestLang: "latin", BestTech: model.TechniqueCaesar, Diagnostics: 1},
		},
		results: map[int64][]model.StoredResult{
			7: {
				{Language: "latin", ScoreResult: model.ScoreResult{Technique: model.TechniqueCaesar, Params: map[string]string{"shift": "3"}, Text: "there is", Count: 2, Matched: []string{"is", "there"}}},
				{Language: "latin", ScoreResult: model.ScoreResult{Technique: model.TechniqueReversal, Text: "vl huhkw"}},
			},
		},
		diags: map[int64][]model.Diagnostic{
			7: {{Kind: model.DiagMissingWordList, Language: "klingon", Message: "word list not found"}},
		},
	}
}

func TestRenderDetails(t *testing.T) {
	src := sampleSource()
	out := renderDetails(src.runs[0], src.results[7], src.diags[7])
	for _, want := range []string{
		"Run 7",
		"Ciphertext: wkhuh lv",
		"latin",
		"Caesar Cipher",
		"there is",
		"shift=3",
		"matched: is, there",
		"Transposition (Reversal)",
		"Diagnostics",
		"missing-word-list [klingon] word list not found",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in details:\n%s", want, out)
		}
	}
	if strings.HasSuffix(out, "\n") {
		t.Fatalf("expected trimmed output")
	}
}

func TestRunRows(t *testing.T) {
	rows := runRows([]model.RunSummary{
		{RunID: 1, StartedAt: time.Unix(0, 0), Languages: 3, BestCount: 0},
		{RunID: 2, StartedAt: time.Unix(0, 0), Languages: 1, BestCount: 4, BestLang: "greek", BestTech: model.TechniqueSubstitution},
	})
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][3] != "-" {
		t.Fatalf("expected placeholder best for empty run, got %q", rows[0][3])
	}
	if rows[1][3] != "greek/substitution" || rows[1][4] != "4" {
		t.Fatalf("unexpected row: %v", rows[1])
	}
}

func TestEnterOpensDetails(t *testing.T) {
	m := NewModel(sampleSource(), 10)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.activeTab != tabDetails {
		t.Fatalf("expected details tab after enter, got %d", m.activeTab)
	}
	if m.selected != 7 {
		t.Fatalf("expected run 7 selected, got %d", m.selected)
	}
	if !strings.Contains(m.View(), "Details") {
		t.Fatalf("expected tabs in view")
	}
}

func TestQuitKeys(t *testing.T) {
	m := NewModel(sampleSource(), 0)
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}); cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC}); cmd == nil {
		t.Fatalf("expected quit command")
	}
}

func TestLoadErrorShownInFooter(t *testing.T) {
	m := NewModel(&fakeSource{runsErr: errors.New("disk gone")}, 0)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	if !strings.Contains(m.View(), "failed to load runs: disk gone") {
		t.Fatalf("expected error in view, got:\n%s", m.View())
	}
}
