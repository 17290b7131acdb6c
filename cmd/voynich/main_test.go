package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/voynich/internal/analysis"
	"github.com/verte-zerg/voynich/internal/config"
	"github.com/verte-zerg/voynich/internal/model"
	"github.com/verte-zerg/voynich/internal/report"
	"github.com/verte-zerg/voynich/internal/store"
)

func testConfig(t *testing.T, format string) model.Config {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "latin_dictionary.txt"), []byte("there\nis\n"), 0o644))
	return model.Config{
		Text:        "Wkhuh lv!",
		Languages:   []string{"latin", "klingon"},
		DictDir:     dir,
		DictPattern: config.DefaultDictPattern,
		Clean:       true,
		Format:      format,
		NoColor:     true,
	}
}

func TestAnalyzeJSONAndSavesRun(t *testing.T) {
	cfg := testConfig(t, report.FormatJSON)
	dbPath := filepath.Join(t.TempDir(), "voynich.db")
	var out bytes.Buffer

	err := analyze(context.Background(), &out, slog.New(slog.DiscardHandler), cfg, analysis.DefaultConfig(), dbPath)
	require.NoError(t, err)

	var rep model.RunReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &rep))
	assert.Equal(t, "wkhuh lv", rep.Ciphertext)
	require.Len(t, rep.Languages, 1)
	caesar, ok := rep.Languages[0].Analysis.Result(model.TechniqueCaesar)
	require.True(t, ok)
	assert.Equal(t, "3", caesar.Params["shift"])
	assert.Equal(t, "there is", caesar.Text)
	assert.Equal(t, 2, caesar.Count)
	require.Len(t, rep.Diagnostics, 1)
	assert.Equal(t, model.DiagMissingWordList, rep.Diagnostics[0].Kind)
	assert.Equal(t, "klingon", rep.Diagnostics[0].Language)

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer func() {
		_ = st.Close()
	}()
	runs, err := st.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 2, runs[0].BestCount)
}

func TestAnalyzeStoreFailureIsDiagnostic(t *testing.T) {
	cfg := testConfig(t, report.FormatText)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	var out bytes.Buffer

	err := analyze(context.Background(), &out, slog.New(slog.DiscardHandler), cfg, analysis.DefaultConfig(), filepath.Join(blocker, "voynich.db"))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Analyzing Language: latin")
	assert.Contains(t, out.String(), "failed to open history db")
}

func TestAnalyzerConfigRejectsBadSubstitution(t *testing.T) {
	_, err := analyzerConfig(model.Config{Substitution: map[rune]rune{'a': '1'}})
	require.Error(t, err)

	cfg, err := analyzerConfig(model.Config{PolyKey: "KEY", Jobs: 4, Substitution: map[rune]rune{'a': 'b'}})
	require.NoError(t, err)
	assert.Equal(t, "KEY", cfg.PolyKey)
	assert.Equal(t, 4, cfg.Jobs)
	assert.Equal(t, map[rune]rune{'a': 'b'}, cfg.Substitution.Map())
}

func TestWriteKeyspace(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, writeKeyspace(&out, 2, 3))
	assert.Equal(t, "aa\nab\nac\n", out.String())

	require.Error(t, writeKeyspace(&out, 14, 0))
	require.Error(t, writeKeyspace(&out, -1, 0))
}

func TestWriteLangs(t *testing.T) {
	cfg := testConfig(t, report.FormatText)
	var out bytes.Buffer
	require.NoError(t, writeLangs(&out, cfg))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "latin"))
	assert.Contains(t, lines[0], " ok ")
	assert.Contains(t, lines[1], "missing")
}

func TestNormalizeLangs(t *testing.T) {
	assert.Equal(t, []string{"latin", "greek"}, normalizeLangs([]string{" Latin", "greek", "", "LATIN"}))
}

func TestValidateConfig(t *testing.T) {
	cfg := model.Config{Format: "xml", DictDir: "d"}
	require.Error(t, validateConfig(cfg))
	cfg.Format = report.FormatYAML
	require.NoError(t, validateConfig(cfg))
	cfg.Jobs = -1
	require.Error(t, validateConfig(cfg))
}
