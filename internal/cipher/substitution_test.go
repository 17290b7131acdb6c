package cipher

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubstitutionDecryptDefaultKey(t *testing.T) {
	key := DefaultSubstitutionKey()
	assert.Equal(t, "zyxw", SubstitutionDecrypt("abcd", key))
	assert.Equal(t, "zyxe", SubstitutionDecrypt("abce", key))
	assert.Equal(t, "z y, x!", SubstitutionDecrypt("a b, c!", key))
}

func TestSubstitutionDecryptRestoresCase(t *testing.T) {
	key := DefaultSubstitutionKey()
	assert.Equal(t, "ZyXe", SubstitutionDecrypt("AbCe", key))
}

func TestNewSubstitutionKeyCompletesIdentity(t *testing.T) {
	key, err := NewSubstitutionKey(map[rune]rune{'q': 'a', 'r': 'a'})
	require.NoError(t, err)
	assert.Equal(t, 'a', key['q'-'a'])
	assert.Equal(t, 'a', key['r'-'a'])
	assert.Equal(t, 's', key['s'-'a'])
	assert.Equal(t, map[rune]rune{'q': 'a', 'r': 'a'}, key.Map())
	assert.Equal(t, "q>a r>a", key.String())
}

func TestNewSubstitutionKeyRejectsNonLetters(t *testing.T) {
	_, err := NewSubstitutionKey(map[rune]rune{'A': 'z'})
	assert.True(t, errors.Is(err, ErrInvalidKey))
	_, err = NewSubstitutionKey(map[rune]rune{'a': '1'})
	assert.True(t, errors.Is(err, ErrInvalidKey))
}
