// Package wordlist provides word list filtering helpers.
package wordlist

import "strings"

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// FilterForLang returns a language-specific filter for word lists.
// Languages written in the Latin alphabet keep words the shift ciphers can
// produce; everything else is kept as-is.
func FilterForLang(lang string) FilterFunc {
	switch strings.ToLower(lang) {
	case "en", "english", "la", "latin", "it", "italian":
		return filterASCIILetters
	default:
		return func(word string) bool { return word != "" }
	}
}

func filterASCIILetters(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		ch := word[i]
		if ch < 'a' || ch > 'z' {
			return false
		}
	}
	return true
}
