package stemmer

import (
	"fmt"
	"strings"

	"github.com/kljensen/snowball"
	"github.com/surgebase/porter2"
)

// Supported stemming algorithms.
const (
	AlgorithmSnowball = "snowball"
	AlgorithmPorter2  = "porter2"
)

// Stemmer reduces a word to its stem.
type Stemmer interface {
	Stem(word string) string
}

// Func adapts a plain function to a Stemmer.
type Func func(word string) string

// Stem calls f(word).
func (f Func) Stem(word string) string { return f(word) }

// New returns the stemmer for the named algorithm. An empty name selects snowball.
func New(algorithm string) (Stemmer, error) {
	switch strings.ToLower(strings.TrimSpace(algorithm)) {
	case "", AlgorithmSnowball:
		return Snowball{}, nil
	case AlgorithmPorter2:
		return Porter2{}, nil
	default:
		return nil, fmt.Errorf("stemmer algorithm %q is not supported", algorithm)
	}
}

// Snowball stems English words with the Snowball algorithm.
type Snowball struct{}

// Stem returns the snowball stem of word, or word itself if it cannot be stemmed.
func (Snowball) Stem(word string) string {
	return guard(word, func(w string) string {
		stemmed, err := snowball.Stem(w, "english", true)
		if err != nil {
			return w
		}
		return stemmed
	})
}

// Porter2 stems English words with the Porter2 algorithm.
type Porter2 struct{}

// Stem returns the porter2 stem of word, or word itself if it cannot be stemmed.
func (Porter2) Stem(word string) string {
	return guard(word, func(w string) string {
		return porter2.Stem(strings.ToLower(w))
	})
}

// guard runs fn and falls back to word when fn panics or yields nothing.
func guard(word string, fn func(string) string) (out string) {
	if word == "" {
		return word
	}
	defer func() {
		if recover() != nil {
			out = word
		}
	}()
	if out = fn(word); out == "" {
		out = word
	}
	return out
}
