package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/verte-zerg/voynich/internal/cipher"
	"github.com/verte-zerg/voynich/internal/wordlist"
)

func TestBreakFindsShift(t *testing.T) {
	words := wordlist.NewWordSet("there", "is")
	for _, jobs := range []int{0, 1, 4, 64} {
		shift, score := Breaker{Jobs: jobs}.Break("wkhuh lv", words)
		assert.Equal(t, 3, shift, "jobs %d", jobs)
		assert.Equal(t, 2, score.Count)
		assert.Equal(t, []string{"is", "there"}, score.Matched)
	}
}

func TestBreakKnownFixture(t *testing.T) {
	words := wordlist.NewWordSet("rsgif")
	assert.Equal(t, "rsgif ry", cipher.ShiftDecrypt("uvjli ub", 3))
	shift, score := Breaker{}.Break("uvjli ub", words)
	assert.Equal(t, 3, shift)
	assert.Equal(t, 1, score.Count)
}

func TestBreakTieReturnsLowestShift(t *testing.T) {
	// "hhh" reads "eee" at shift 3 and "lll" reads "eee" at shift 7.
	words := wordlist.NewWordSet("eee")
	for _, jobs := range []int{1, 2, 26} {
		shift, score := Breaker{Jobs: jobs}.Break("hhh lll", words)
		assert.Equal(t, 3, shift, "jobs %d", jobs)
		assert.Equal(t, 1, score.Count)
	}
}

func TestBreakNoMatchReturnsZero(t *testing.T) {
	shift, score := Breaker{}.Break("qqq", wordlist.NewWordSet("nothing"))
	assert.Equal(t, 0, shift)
	assert.Equal(t, 0, score.Count)

	shift, _ = Breaker{Jobs: 8}.Break("qqq", nil)
	assert.Equal(t, 0, shift)
}
