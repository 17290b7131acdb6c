// Package main provides the CLI entrypoint for voynich.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/voynich/internal/analysis"
	"github.com/verte-zerg/voynich/internal/cipher"
	"github.com/verte-zerg/voynich/internal/config"
	"github.com/verte-zerg/voynich/internal/historyui"
	"github.com/verte-zerg/voynich/internal/keyspace"
	"github.com/verte-zerg/voynich/internal/model"
	"github.com/verte-zerg/voynich/internal/report"
	"github.com/verte-zerg/voynich/internal/store"
	"github.com/verte-zerg/voynich/internal/wordfreq"
	"github.com/verte-zerg/voynich/internal/wordlist"
)

const (
	defaultText         = "possheody qoteeo qosho cphy opchody opor opchy otchdal or shodaiin"
	defaultDictDir      = "dictionary"
	defaultJobs         = 1
	defaultWordlistSz   = 10000
	defaultHistoryLimit = 50
	defaultKeyLength    = 2
)

var defaultLanguages = []string{
	"akkadian", "anglosaxxon", "arabic", "aramaic", "celtic", "chinese", "egyptian",
	"etruscan", "farsi", "french", "german", "greek", "hebrew", "italian", "latin",
	"portuguese", "protoroman", "russian", "sanskrit", "spanish", "sumerian",
}

var (
	analysisText    string
	analysisLangs   []string
	analysisDictDir string
	analysisKey     string
	analysisJobs    int
	analysisFormat  string
	analysisNoColor bool
	analysisNoSave  bool

	historyLimit int

	dictLang  string
	dictAs    string
	dictSize  int
	dictForce bool

	keyLength int
	keyLimit  int
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "voynich",
		Short:         "Classical cryptanalysis of Voynich-style ciphertext",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runAnalyzeCmd,
	}

	rootCmd.PersistentFlags().StringSliceVar(&analysisLangs, "lang", defaultLanguages, "comma-separated dictionary languages")
	rootCmd.PersistentFlags().StringVar(&analysisDictDir, "dict-dir", defaultDictDir, "dictionary directory")
	rootCmd.Flags().StringVar(&analysisText, "text", defaultText, "ciphertext to analyze")
	rootCmd.Flags().StringVar(&analysisKey, "key", cipher.DefaultPolyKey, "polyalphabetic keyword")
	rootCmd.Flags().IntVar(&analysisJobs, "jobs", defaultJobs, "parallel workers for the Caesar search")
	rootCmd.Flags().StringVar(&analysisFormat, "format", report.FormatText, "output format: text, json or yaml")
	rootCmd.Flags().BoolVar(&analysisNoColor, "no-color", false, "disable coloured output")
	rootCmd.Flags().BoolVar(&analysisNoSave, "no-save", false, "do not record the run in the history database")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLangsCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newDictionaryCmd())
	rootCmd.AddCommand(newKeyspaceCmd())

	return rootCmd
}

// loadSettings merges the config file under the command line flags.
func loadSettings(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	ac := fileCfg.Analysis
	applyStringConfig(cmd, "text", &analysisText, ac.Text)
	applySliceConfig(cmd, "lang", &analysisLangs, ac.Languages)
	applyStringConfig(cmd, "dict-dir", &analysisDictDir, ac.DictDir)
	applyStringConfig(cmd, "key", &analysisKey, ac.PolyKey)
	applyIntConfig(cmd, "jobs", &analysisJobs, ac.Jobs)
	applyStringConfig(cmd, "format", &analysisFormat, ac.Format)

	substitution, err := ac.SubstitutionMap()
	if err != nil {
		return model.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	cfg := model.Config{
		Text:         analysisText,
		Languages:    normalizeLangs(analysisLangs),
		DictDir:      analysisDictDir,
		DictPattern:  config.DefaultDictPattern,
		PolyKey:      analysisKey,
		Substitution: substitution,
		Clean:        true,
		Jobs:         analysisJobs,
		Format:       strings.ToLower(strings.TrimSpace(analysisFormat)),
		NoColor:      analysisNoColor,
		NoSave:       analysisNoSave,
	}
	if ac.DictPattern != nil {
		cfg.DictPattern = *ac.DictPattern
	}
	if ac.Clean != nil {
		cfg.Clean = *ac.Clean
	}
	return cfg, nil
}

func runAnalyzeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}
	analyzerCfg, err := analyzerConfig(cfg)
	if err != nil {
		return err
	}
	if !cfg.NoColor && !term.IsTerminal(int(os.Stdout.Fd())) {
		cfg.NoColor = true
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelInfo}))
	dbPath := ""
	if !cfg.NoSave {
		dbPath = config.DefaultDBPath()
	}
	return analyze(cmd.Context(), cmd.OutOrStdout(), logger, cfg, analyzerCfg, dbPath)
}

// analyze runs every configured language, records the run, and prints the
// report. Analysis problems end up as diagnostics; only output failures are
// returned.
func analyze(ctx context.Context, out io.Writer, logger *slog.Logger, cfg model.Config, analyzerCfg analysis.Config, dbPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	text := cfg.Text
	if cfg.Clean {
		text = cipher.Clean(text)
	}

	runner := &analysis.Runner{
		Analyzer: analysis.NewAnalyzer(analyzerCfg),
		Source:   wordlist.Source{Dir: cfg.DictDir, Pattern: cfg.DictPattern},
		Logger:   logger,
	}
	rep := runner.Run(ctx, text, cfg.Languages)

	if dbPath != "" {
		if d, ok := saveRun(ctx, dbPath, rep); !ok {
			logger.Warn(d.Message)
			rep.Diagnostics = append(rep.Diagnostics, d)
		}
	}

	if cfg.Format == report.FormatText {
		if err := report.RenderText(out, rep, report.Options{NoColor: cfg.NoColor}); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		return nil
	}
	if err := report.Export(out, rep, cfg.Format); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func saveRun(ctx context.Context, dbPath string, rep model.RunReport) (model.Diagnostic, bool) {
	st, err := store.Open(dbPath)
	if err != nil {
		return model.Diagnostic{Kind: model.DiagStore, Message: fmt.Sprintf("failed to open history db: %v", err)}, false
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	if _, err := st.InsertRun(ctx, rep); err != nil {
		return model.Diagnostic{Kind: model.DiagStore, Message: fmt.Sprintf("failed to save run: %v", err)}, false
	}
	return model.Diagnostic{}, true
}

func analyzerConfig(cfg model.Config) (analysis.Config, error) {
	out := analysis.DefaultConfig()
	out.PolyKey = cfg.PolyKey
	out.Jobs = cfg.Jobs
	if len(cfg.Substitution) > 0 {
		key, err := cipher.NewSubstitutionKey(cfg.Substitution)
		if err != nil {
			return analysis.Config{}, fmt.Errorf("invalid config: %w", err)
		}
		out.Substitution = key
	}
	return out, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newLangsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List configured languages and their dictionaries",
		Args:  cobra.NoArgs,
		RunE:  runLangsCmd,
	}
}

func runLangsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	return writeLangs(cmd.OutOrStdout(), cfg)
}

func writeLangs(w io.Writer, cfg model.Config) error {
	for _, lang := range cfg.Languages {
		path := config.DictionaryPath(cfg.DictDir, cfg.DictPattern, lang)
		status := "ok"
		if info, err := os.Stat(path); err != nil {
			status = "missing"
			if !os.IsNotExist(err) {
				status = "unreadable"
			}
		} else if info.IsDir() {
			status = "unreadable"
		}
		if _, err := fmt.Fprintf(w, "%-12s %-10s %s\n", lang, status, path); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse recorded analysis runs",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLimit, "limit", defaultHistoryLimit, "number of recent runs to show (0 for all)")
	return cmd
}

func runHistoryCmd(_ *cobra.Command, _ []string) error {
	if historyLimit < 0 {
		return fmt.Errorf("--limit must be >= 0")
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	program := tea.NewProgram(historyui.NewModel(st, historyLimit), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run history TUI: %w", err)
	}
	return nil
}

func newDictionaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dictionary",
		Short: "Build a dictionary from the wordfreq dataset",
		Args:  cobra.NoArgs,
		RunE:  runDictionaryCmd,
	}
	cmd.Flags().StringVar(&dictLang, "code", "", "wordfreq language code, e.g. la or it")
	cmd.Flags().StringVar(&dictAs, "as", "", "dictionary language name (default: the code)")
	cmd.Flags().IntVar(&dictSize, "size", defaultWordlistSz, "number of words")
	cmd.Flags().BoolVar(&dictForce, "force", false, "overwrite an existing dictionary")
	return cmd
}

func runDictionaryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	code := strings.TrimSpace(strings.ToLower(dictLang))
	if code == "" {
		return fmt.Errorf("--code is required")
	}
	if dictSize <= 0 {
		return fmt.Errorf("--size must be greater than 0")
	}
	name := strings.TrimSpace(strings.ToLower(dictAs))
	if name == "" {
		name = code
	}
	outPath := config.DictionaryPath(cfg.DictDir, cfg.DictPattern, name)
	if !dictForce {
		if _, err := os.Stat(outPath); err == nil {
			return fmt.Errorf("dictionary already exists: %s (use --force to overwrite)", outPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat dictionary: %w", err)
		}
	}

	logErrln("Fetching wordfreq metadata...")
	wheel, err := wordfreq.DownloadLatestWheel(cmd.Context(), nil, config.DefaultWordfreqCacheDir())
	if err != nil {
		return fmt.Errorf("failed to download wordfreq wheel: %w", err)
	}
	if wheel.Cached {
		logErrf("Using cached wheel %s\n", wheel.Filename)
	} else {
		logErrf("Downloaded wheel %s\n", wheel.Filename)
	}
	langTypes, err := wordfreq.ListLanguageTypes(wheel.Path)
	if err != nil {
		return fmt.Errorf("failed to list languages: %w", err)
	}
	listType, ok := langTypes.Best(code)
	if !ok {
		return fmt.Errorf("unknown language %q (available: %s)", code, strings.Join(langTypes.Languages(), ", "))
	}

	logErrf("Extracting %s (%s) word list...\n", code, listType)
	words, err := wordfreq.ExtractWordlist(wheel.Path, code, listType, dictSize)
	if err != nil {
		return fmt.Errorf("failed to extract %s word list: %w", code, err)
	}
	if err := writeWordList(outPath, words); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	logErrf("Wrote %s (%d words)\n", outPath, len(words))

	if err := wordfreq.WriteAttribution(filepath.Dir(outPath), wheel.Version); err != nil {
		return fmt.Errorf("failed to write attribution: %w", err)
	}
	logErrln("Wrote ATTRIBUTION.txt")
	return nil
}

func writeWordList(path string, words []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create dictionary dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "dictionary-*.txt")
	if err != nil {
		return fmt.Errorf("failed to create temp dictionary: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	for _, word := range words {
		if _, err := fmt.Fprintln(writer, word); err != nil {
			return fmt.Errorf("failed to write dictionary: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush dictionary: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close dictionary: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write dictionary: %w", err)
	}
	return nil
}

func newKeyspaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keyspace",
		Short: "Enumerate fixed-length keys over a-z",
		Args:  cobra.NoArgs,
		RunE:  runKeyspaceCmd,
	}
	cmd.Flags().IntVar(&keyLength, "length", defaultKeyLength, "key length")
	cmd.Flags().IntVar(&keyLimit, "limit", 0, "stop after N keys (0 for all)")
	return cmd
}

func runKeyspaceCmd(cmd *cobra.Command, _ []string) error {
	return writeKeyspace(cmd.OutOrStdout(), keyLength, keyLimit)
}

func writeKeyspace(w io.Writer, length, limit int) error {
	if length < 0 {
		return fmt.Errorf("--length must be >= 0")
	}
	if limit < 0 {
		return fmt.Errorf("--limit must be >= 0")
	}
	total, err := keyspace.Count(length)
	if err != nil && limit == 0 {
		return fmt.Errorf("%w; pass --limit", err)
	}
	if err == nil {
		logErrf("%d keys of length %d\n", total, length)
	}

	seq := keyspace.Strings(length)
	if limit > 0 {
		seq = keyspace.Take(seq, limit)
	}
	bw := bufio.NewWriter(w)
	for key := range seq {
		if _, err := fmt.Fprintln(bw, key); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applySliceConfig(cmd *cobra.Command, name string, target *[]string, value []string) {
	if len(value) == 0 {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = append([]string(nil), value...)
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func normalizeLangs(langs []string) []string {
	out := make([]string, 0, len(langs))
	seen := make(map[string]struct{}, len(langs))
	for _, lang := range langs {
		lang = strings.TrimSpace(strings.ToLower(lang))
		if lang == "" {
			continue
		}
		if _, ok := seen[lang]; ok {
			continue
		}
		seen[lang] = struct{}{}
		out = append(out, lang)
	}
	return out
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# voynich configuration
# Uncomment a value to enable it. CLI flags override config values.

[analysis]
# text = %q
# languages = ["latin", "italian", "greek"]
# dict-dir = %q            # Directory holding dictionaries
# dict-pattern = %q
# poly-key = %q             # Polyalphabetic keyword
# clean = true                   # Strip digits and punctuation before analysis
# jobs = %d                      # Parallel workers for the Caesar search
# format = "text"                # text, json or yaml

# [analysis.substitution]        # Letters not listed map to themselves
# a = "z"
# b = "y"
`,
		defaultText,
		defaultDictDir,
		config.DefaultDictPattern,
		cipher.DefaultPolyKey,
		defaultJobs,
	)
}

func validateConfig(cfg model.Config) error {
	if !report.ValidFormat(cfg.Format) {
		return fmt.Errorf("--format must be one of text, json, yaml")
	}
	if cfg.Jobs < 0 {
		return fmt.Errorf("--jobs must be >= 0")
	}
	if cfg.DictDir == "" {
		return fmt.Errorf("--dict-dir must not be empty")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
