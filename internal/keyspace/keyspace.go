// Package keyspace enumerates fixed-length candidate keys over a-z.
package keyspace

import (
	"fmt"
	"iter"
	"math"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// Count returns 26^length, or an error if it does not fit in a uint64.
func Count(length int) (uint64, error) {
	if length < 0 {
		return 0, fmt.Errorf("length must be >= 0")
	}
	n := uint64(1)
	for i := 0; i < length; i++ {
		if n > math.MaxUint64/uint64(len(alphabet)) {
			return 0, fmt.Errorf("keyspace of length %d overflows uint64", length)
		}
		n *= uint64(len(alphabet))
	}
	return n, nil
}

// Strings yields every string of the given length in lexicographic order.
// Nothing is materialized up front; each range over the sequence starts again
// from "aa...a". Length 0 yields the empty string once.
func Strings(length int) iter.Seq[string] {
	return func(yield func(string) bool) {
		if length < 0 {
			return
		}
		idx := make([]int, length)
		buf := make([]byte, length)
		for i := range buf {
			buf[i] = alphabet[0]
		}
		for {
			if !yield(string(buf)) {
				return
			}
			pos := length - 1
			for pos >= 0 {
				idx[pos]++
				if idx[pos] < len(alphabet) {
					buf[pos] = alphabet[idx[pos]]
					break
				}
				idx[pos] = 0
				buf[pos] = alphabet[0]
				pos--
			}
			if pos < 0 {
				return
			}
		}
	}
}

// Take yields at most n values from seq.
func Take(seq iter.Seq[string], n int) iter.Seq[string] {
	return func(yield func(string) bool) {
		if n <= 0 {
			return
		}
		i := 0
		for s := range seq {
			if !yield(s) {
				return
			}
			i++
			if i >= n {
				return
			}
		}
	}
}
