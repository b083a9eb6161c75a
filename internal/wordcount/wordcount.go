package wordcount

import (
	"sort"
	"strings"

	"github.com/Adda-Baaj/news-signature/internal/stemmer"
	"github.com/Adda-Baaj/news-signature/internal/stopwords"
)

// Frequencies maps a stemmed word to the number of times it occurred.
type Frequencies map[string]int

// Merge adds every count in other into f. Merging is commutative.
func (f Frequencies) Merge(other Frequencies) {
	for stem, n := range other {
		f[stem] += n
	}
}

// Total returns the sum of all counts.
func (f Frequencies) Total() int {
	total := 0
	for _, n := range f {
		total += n
	}
	return total
}

// Keys returns the stems in lexical order.
func (f Frequencies) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Counter counts stemmed words in normalized text, skipping stopwords.
// It holds no mutable state and is safe for concurrent use.
type Counter struct {
	stopwords *stopwords.Set
	stemmer   stemmer.Stemmer
}

// NewCounter builds a Counter. A nil set falls back to the bundled stopwords and a nil
// stemmer to snowball.
func NewCounter(set *stopwords.Set, s stemmer.Stemmer) *Counter {
	if set == nil {
		set = stopwords.Default()
	}
	if s == nil {
		s = stemmer.Snowball{}
	}
	return &Counter{stopwords: set, stemmer: s}
}

// Count splits text on whitespace and counts the stem of every token that is not a
// stopword. Stopword membership is tested on the token as written, before stemming.
func (c *Counter) Count(text string) Frequencies {
	counts := make(Frequencies)
	for _, token := range strings.Fields(text) {
		if c.stopwords.Contains(token) {
			continue
		}
		counts[c.stemmer.Stem(token)]++
	}
	return counts
}
