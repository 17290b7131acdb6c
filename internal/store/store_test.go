package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/voynich/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "voynich.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func sampleReport(start time.Time, best int) model.RunReport {
	return model.RunReport{
		StartedAt:  start,
		Ciphertext: "wkhuh lv",
		Languages: []model.LanguageReport{
			{
				Language:    "latin",
				Dictionary:  "dictionary/latin_dictionary.txt",
				Words:       2,
				Fingerprint: "abc",
				Analysis: model.Analysis{
					Results: []model.ScoreResult{
						{Technique: model.TechniqueCaesar, Params: map[string]string{"shift": "3"}, Text: "there is", Count: best, Matched: []string{"is", "there"}},
						{Technique: model.TechniqueReversal, Text: "vl huhkw", Count: 0, Matched: []string{}},
					},
					Diagnostics: []model.Diagnostic{{Kind: model.DiagInvalidKey, Language: "latin", Message: "bad key"}},
				},
			},
		},
		Diagnostics: []model.Diagnostic{{Kind: model.DiagMissingWordList, Language: "klingon", Message: "missing"}},
	}
}

func TestInsertAndListRuns(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 3; i++ {
		id, err := st.InsertRun(ctx, sampleReport(time.Unix(0, 0).Add(time.Duration(i)*time.Minute), i))
		if err != nil {
			t.Fatalf("insert run: %v", err)
		}
		ids = append(ids, id)
	}

	runs, err := st.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].RunID != ids[2] || runs[1].RunID != ids[1] {
		t.Fatalf("expected newest first, got %+v", runs)
	}
	if runs[0].BestCount != 2 || runs[0].BestTech != model.TechniqueCaesar || runs[0].BestLang != "latin" {
		t.Fatalf("unexpected best result: %+v", runs[0])
	}
	if runs[0].Languages != 1 || runs[0].Diagnostics != 2 {
		t.Fatalf("unexpected counts: %+v", runs[0])
	}
}

func TestListResultsRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	id, err := st.InsertRun(ctx, sampleReport(time.Unix(0, 0), 2))
	if err != nil {
		t.Fatalf("insert run: %v", err)
	}
	results, err := st.ListResults(ctx, id)
	if err != nil {
		t.Fatalf("list results: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	first := results[0]
	if first.Language != "latin" || first.Technique != model.TechniqueCaesar || first.Params["shift"] != "3" {
		t.Fatalf("unexpected first result: %+v", first)
	}
	if len(first.Matched) != 2 || first.Matched[1] != "there" {
		t.Fatalf("unexpected matched words: %v", first.Matched)
	}
	if results[1].Params != nil {
		t.Fatalf("expected nil params for reversal, got %v", results[1].Params)
	}

	diags, err := st.ListDiagnostics(ctx, id)
	if err != nil {
		t.Fatalf("list diagnostics: %v", err)
	}
	if len(diags) != 2 || diags[0].Language != "klingon" {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
}

func TestListRunsEmpty(t *testing.T) {
	st := openTestStore(t)
	runs, err := st.ListRuns(context.Background(), 0)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("expected no runs, got %d", len(runs))
	}
}
