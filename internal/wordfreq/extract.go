package wordfreq

import (
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/verte-zerg/voynich/internal/wordlist"
)

// ExtractWordlist returns up to limit words for lang, most frequent first.
// Words that are not purely alphabetic, or that the language filter rejects,
// are dropped.
func ExtractWordlist(wheelPath, lang, listType string, limit int) ([]string, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than 0")
	}
	buckets, err := readBuckets(wheelPath, strings.ToLower(lang), listType)
	if err != nil {
		return nil, err
	}

	filter := wordlist.FilterForLang(lang)
	seen := make(map[string]struct{})
	words := make([]string, 0, limit)
	for _, bucket := range buckets {
		for _, word := range bucket {
			word = wordlist.Normalize(word)
			if _, ok := seen[word]; ok || !isAlpha(word) || !filter(word) {
				continue
			}
			if n := utf8.RuneCountInString(word); n < 1 || n > 20 {
				continue
			}
			seen[word] = struct{}{}
			words = append(words, word)
			if len(words) >= limit {
				return words, nil
			}
		}
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("no words found for %s/%s", lang, listType)
	}
	return words, nil
}

func readBuckets(wheelPath, lang, listType string) ([][]string, error) {
	reader, err := zip.OpenReader(wheelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wheel: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	var data *zip.File
	for _, f := range reader.File {
		if l, t := parseDataName(f.Name); l == lang && t == listType {
			data = f
			break
		}
	}
	if data == nil {
		return nil, fmt.Errorf("no data file found for %s/%s", lang, listType)
	}

	rc, err := data.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer func() {
		_ = rc.Close()
	}()

	var r io.Reader = rc
	if strings.HasSuffix(strings.ToLower(data.Name), ".gz") {
		gz, err := gzip.NewReader(rc)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer func() {
			_ = gz.Close()
		}()
		r = gz
	}
	return decodeBuckets(r)
}

// decodeBuckets reads the cBpack layout: a header map followed by one list of
// words per frequency bucket, most frequent bucket first.
func decodeBuckets(r io.Reader) ([][]string, error) {
	var payload []any
	if err := msgpack.NewDecoder(r).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode wordfreq data: %w", err)
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("wordfreq data contained no entries")
	}
	if header, ok := payload[0].(map[string]any); ok {
		if format, _ := header["format"].(string); format != "" && format != "cB" {
			return nil, fmt.Errorf("unsupported wordfreq format %q", format)
		}
		payload = payload[1:]
	}

	buckets := make([][]string, 0, len(payload))
	for i, item := range payload {
		list, ok := item.([]any)
		if !ok {
			return nil, fmt.Errorf("bucket %d: expected list, got %T", i, item)
		}
		bucket := make([]string, 0, len(list))
		for _, w := range list {
			if s, ok := w.(string); ok {
				bucket = append(bucket, s)
			}
		}
		buckets = append(buckets, bucket)
	}
	return buckets, nil
}

func isAlpha(word string) bool {
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return word != ""
}
