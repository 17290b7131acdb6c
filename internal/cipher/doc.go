// Package cipher implements the classical decoding transforms and letter
// frequency counting used by the analyzer.
//
// Every transform is a pure function of its input. Letters outside the ASCII
// Latin alphabet are treated like punctuation and copied through unchanged.
package cipher
