// Package wordfreq builds dictionaries from the wordfreq dataset.
package wordfreq

import (
	"archive/zip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const pypiEndpoint = "https://pypi.org/pypi/wordfreq/json"

const dataPrefix = "wordfreq/data/"

// Wheel describes a cached wordfreq wheel.
type Wheel struct {
	Version  string
	Path     string
	Filename string
	Cached   bool
}

type pypiFile struct {
	URL         string `json:"url"`
	Filename    string `json:"filename"`
	Packagetype string `json:"packagetype"`
}

type pypiResponse struct {
	Info struct {
		Version string `json:"version"`
	} `json:"info"`
	URLs []pypiFile `json:"urls"`
}

// DownloadLatestWheel fetches the latest wordfreq wheel into cacheDir unless
// it is already cached.
func DownloadLatestWheel(ctx context.Context, client *http.Client, cacheDir string) (Wheel, error) {
	if cacheDir == "" {
		return Wheel{}, fmt.Errorf("cache directory is required")
	}
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return Wheel{}, fmt.Errorf("failed to create cache dir: %w", err)
	}

	var payload pypiResponse
	if err := getJSON(ctx, client, pypiEndpoint, &payload); err != nil {
		return Wheel{}, err
	}
	if payload.Info.Version == "" {
		return Wheel{}, fmt.Errorf("missing version in pypi response")
	}
	file, ok := pickWheel(payload.URLs)
	if !ok {
		return Wheel{}, fmt.Errorf("no suitable wordfreq wheel found")
	}

	wheel := Wheel{Version: payload.Info.Version, Path: filepath.Join(cacheDir, file.Filename), Filename: file.Filename}
	if _, err := os.Stat(wheel.Path); err == nil {
		wheel.Cached = true
		return wheel, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return Wheel{}, fmt.Errorf("failed to stat cached wheel: %w", err)
	}
	if err := download(ctx, client, file.URL, wheel.Path); err != nil {
		return Wheel{}, err
	}
	return wheel, nil
}

func get(ctx context.Context, client *http.Client, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status from %s: %s", url, resp.Status)
	}
	return resp, nil
}

func getJSON(ctx context.Context, client *http.Client, url string, out any) error {
	resp, err := get(ctx, client, url)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode pypi response: %w", err)
	}
	return nil
}

// download writes url to dest through a temp file so a failed transfer never
// leaves a partial wheel in the cache.
func download(ctx context.Context, client *http.Client, url, dest string) error {
	resp, err := get(ctx, client, url)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	tmpFile, err := os.CreateTemp(filepath.Dir(dest), "wordfreq-*.whl")
	if err != nil {
		return fmt.Errorf("failed to create temp wheel: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()
	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		return fmt.Errorf("failed to download wheel: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp wheel: %w", err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return fmt.Errorf("failed to move wheel into cache: %w", err)
	}
	return nil
}

func pickWheel(files []pypiFile) (pypiFile, bool) {
	var fallback *pypiFile
	for i, f := range files {
		if f.Packagetype != "bdist_wheel" {
			continue
		}
		if strings.HasSuffix(f.Filename, "py3-none-any.whl") {
			return f, true
		}
		if fallback == nil {
			fallback = &files[i]
		}
	}
	if fallback != nil {
		return *fallback, true
	}
	return pypiFile{}, false
}

// LanguageTypes maps language codes to available list types ("large", "small").
type LanguageTypes map[string]map[string]struct{}

// Languages returns the sorted language codes.
func (t LanguageTypes) Languages() []string {
	out := make([]string, 0, len(t))
	for lang := range t {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

// Best returns "large" when available, otherwise "small".
func (t LanguageTypes) Best(lang string) (string, bool) {
	types := t[lang]
	for _, candidate := range []string{"large", "small"} {
		if _, ok := types[candidate]; ok {
			return candidate, true
		}
	}
	return "", false
}

// ListLanguageTypes returns available languages and list types in the wheel.
func ListLanguageTypes(wheelPath string) (LanguageTypes, error) {
	reader, err := zip.OpenReader(wheelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wheel: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	langs := make(LanguageTypes)
	for _, file := range reader.File {
		lang, listType := parseDataName(file.Name)
		if lang == "" {
			continue
		}
		if _, ok := langs[lang]; !ok {
			langs[lang] = make(map[string]struct{})
		}
		langs[lang][listType] = struct{}{}
	}
	if len(langs) == 0 {
		return nil, fmt.Errorf("no languages found in wordfreq wheel")
	}
	return langs, nil
}

// parseDataName maps "wordfreq/data/large_en.msgpack.gz" to ("en", "large").
func parseDataName(name string) (lang, listType string) {
	name = strings.ToLower(name)
	if !strings.HasPrefix(name, dataPrefix) {
		return "", ""
	}
	base := strings.TrimPrefix(name, dataPrefix)
	base, ok := strings.CutSuffix(base, ".msgpack.gz")
	if !ok {
		base, ok = strings.CutSuffix(base, ".msgpack")
	}
	if !ok {
		return "", ""
	}
	for _, t := range []string{"large", "small"} {
		if lang, found := strings.CutPrefix(base, t+"_"); found && lang != "" {
			return lang, t
		}
	}
	return "", ""
}

// WriteAttribution writes the dataset attribution next to generated dictionaries.
func WriteAttribution(outDir, version string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	text := strings.Join([]string{
		"Dictionaries generated from the wordfreq dataset" + versionSuffix(version) + ".",
		"Source: https://github.com/rspeer/wordfreq",
		"Data license: Creative Commons Attribution-ShareAlike 4.0 International (CC BY-SA 4.0).",
		"https://creativecommons.org/licenses/by-sa/4.0/",
		"Changes were made: lowercased, filtered to alphabetic words and truncated to the requested size.",
		"",
	}, "\n")
	if err := os.WriteFile(filepath.Join(outDir, "ATTRIBUTION.txt"), []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write attribution: %w", err)
	}
	return nil
}

func versionSuffix(version string) string {
	if version == "" {
		return ""
	}
	return " " + version
}
