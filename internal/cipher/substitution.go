package cipher

import "fmt"

// SubstitutionKey maps every lowercase letter to a replacement letter.
// It need not be a bijection.
type SubstitutionKey [alphabetSize]rune

// NewSubstitutionKey builds a key from a partial mapping. Letters missing from
// mapping map to themselves.
func NewSubstitutionKey(mapping map[rune]rune) (SubstitutionKey, error) {
	var key SubstitutionKey
	for i := range key {
		key[i] = 'a' + rune(i)
	}
	for from, to := range mapping {
		if from < 'a' || from > 'z' || to < 'a' || to > 'z' {
			return SubstitutionKey{}, fmt.Errorf("%w: substitution %q->%q must use a-z", ErrInvalidKey, from, to)
		}
		key[from-'a'] = to
	}
	return key, nil
}

// DefaultSubstitutionKey returns the fixed a->z, b->y, c->x, d->w key.
func DefaultSubstitutionKey() SubstitutionKey {
	key, _ := NewSubstitutionKey(map[rune]rune{'a': 'z', 'b': 'y', 'c': 'x', 'd': 'w'})
	return key
}

// Map returns the letters the key does not map to themselves.
func (k SubstitutionKey) Map() map[rune]rune {
	out := map[rune]rune{}
	for i, to := range k {
		if from := 'a' + rune(i); from != to {
			out[from] = to
		}
	}
	return out
}

// String renders the changed pairs, e.g. "a>z b>y".
func (k SubstitutionKey) String() string {
	var s []byte
	for i, to := range k {
		from := 'a' + rune(i)
		if from == to {
			continue
		}
		if len(s) > 0 {
			s = append(s, ' ')
		}
		s = append(s, byte(from), '>', byte(to))
	}
	return string(s)
}

// SubstitutionDecrypt replaces each ASCII letter through key. Lookups use the
// lowercase form and uppercase input yields uppercase output.
func SubstitutionDecrypt(text string, key SubstitutionKey) string {
	out := []rune(text)
	for i, ch := range out {
		switch {
		case ch >= 'a' && ch <= 'z':
			out[i] = key[ch-'a']
		case ch >= 'A' && ch <= 'Z':
			out[i] = key[ch-'A'] - 'a' + 'A'
		}
	}
	return string(out)
}
