package cipher

import "strings"

const alphabetSize = 26

// NormalizeShift maps any shift into [0,25].
func NormalizeShift(shift int) int {
	return ((shift % alphabetSize) + alphabetSize) % alphabetSize
}

// ShiftDecrypt shifts every ASCII letter back by shift positions, keeping case.
func ShiftDecrypt(text string, shift int) string {
	shift = NormalizeShift(shift)
	var b strings.Builder
	b.Grow(len(text))
	for _, ch := range text {
		b.WriteRune(shiftRune(ch, shift))
	}
	return b.String()
}

// ShiftEncrypt is the inverse of ShiftDecrypt for the same shift.
func ShiftEncrypt(text string, shift int) string {
	return ShiftDecrypt(text, -shift)
}

func shiftRune(ch rune, shift int) rune {
	base, ok := letterBase(ch)
	if !ok {
		return ch
	}
	return (ch-base-rune(shift)+alphabetSize)%alphabetSize + base
}

func letterBase(ch rune) (rune, bool) {
	switch {
	case ch >= 'a' && ch <= 'z':
		return 'a', true
	case ch >= 'A' && ch <= 'Z':
		return 'A', true
	default:
		return 0, false
	}
}
