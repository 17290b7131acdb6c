package cipher

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolyalphabeticDecrypt(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		keyword string
		want    string
	}{
		{name: "two letters", text: "ac", keyword: "AB", want: "ab"},
		{name: "lowercase keyword", text: "ac", keyword: "ab", want: "ab"},
		{name: "spaces do not advance key", text: "a c a c", keyword: "AB", want: "a b a b"},
		{name: "keeps case", text: "Ac", keyword: "AB", want: "Ab"},
		{name: "matches shift for single letter key", text: "wkhuh lv", keyword: "D", want: "there is"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PolyalphabeticDecrypt(tt.text, tt.keyword)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPolyalphabeticEmptyKey(t *testing.T) {
	_, err := PolyalphabeticDecrypt("abc", "")
	assert.True(t, errors.Is(err, ErrInvalidKey))
}

func TestPolyalphabeticNonLetterKey(t *testing.T) {
	_, err := PolyalphabeticDecrypt("abc", "K3Y")
	assert.True(t, errors.Is(err, ErrInvalidKey))
}

func TestPolyalphabeticPreservesLayout(t *testing.T) {
	text := "possheody, qoteeo! Qosho."
	got, err := PolyalphabeticDecrypt(text, DefaultPolyKey)
	require.NoError(t, err)
	in := []rune(text)
	out := []rune(got)
	require.Len(t, out, len(in))
	for i, ch := range in {
		if _, ok := letterBase(ch); !ok {
			assert.Equal(t, ch, out[i], "position %d", i)
		}
	}
}
