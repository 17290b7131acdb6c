package cipher

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidKey indicates a key that cannot drive a transform.
var ErrInvalidKey = errors.New("invalid key")

// DefaultPolyKey is the keyword used when none is configured.
const DefaultPolyKey = "VOYNICH"

// ValidatePolyKey checks that keyword is non-empty and made of ASCII letters.
func ValidatePolyKey(keyword string) error {
	if keyword == "" {
		return fmt.Errorf("%w: polyalphabetic keyword is empty", ErrInvalidKey)
	}
	for _, ch := range keyword {
		if _, ok := letterBase(ch); !ok {
			return fmt.Errorf("%w: polyalphabetic keyword %q contains %q", ErrInvalidKey, keyword, ch)
		}
	}
	return nil
}

// PolyalphabeticDecrypt undoes a repeating-keyword shift. The key position
// advances only on letters, so spaces and punctuation do not consume it.
func PolyalphabeticDecrypt(text, keyword string) (string, error) {
	if err := ValidatePolyKey(keyword); err != nil {
		return "", err
	}
	shifts := make([]int, 0, len(keyword))
	for _, ch := range keyword {
		base, _ := letterBase(ch)
		shifts = append(shifts, int(ch-base))
	}

	var b strings.Builder
	b.Grow(len(text))
	pos := 0
	for _, ch := range text {
		if _, ok := letterBase(ch); !ok {
			b.WriteRune(ch)
			continue
		}
		b.WriteRune(shiftRune(ch, shifts[pos%len(shifts)]))
		pos++
	}
	return b.String(), nil
}
