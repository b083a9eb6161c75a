package stopwords

import (
	"bufio"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"
)

// ResourceName is the bundled word list compiled into the binary.
const ResourceName = "low-value-words.txt"

//go:embed low-value-words.txt
var bundled embed.FS

// ErrEmpty is returned when a word list contains no words.
var ErrEmpty = errors.New("stopword list contains no words")

// Set holds words that carry too little topical signal to be counted.
// A Set is immutable after construction and safe for concurrent reads.
type Set struct {
	words map[string]struct{}
}

// New builds a set from the given words, trimming whitespace and skipping blanks.
func New(words ...string) *Set {
	s := &Set{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			s.words[w] = struct{}{}
		}
	}
	return s
}

// Load reads one word per line from r.
func Load(r io.Reader) (*Set, error) {
	if r == nil {
		return nil, errors.New("stopword reader is nil")
	}

	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if w := strings.TrimSpace(scanner.Text()); w != "" {
			words = append(words, w)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read stopwords: %w", err)
	}
	if len(words) == 0 {
		return nil, ErrEmpty
	}
	return New(words...), nil
}

// LoadFS reads the named word list from fsys.
func LoadFS(fsys fs.FS, name string) (*Set, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open stopwords %q: %w", name, err)
	}
	defer f.Close()

	set, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("load stopwords %q: %w", name, err)
	}
	return set, nil
}

// MustLoadFS is like LoadFS but panics on error.
func MustLoadFS(fsys fs.FS, name string) *Set {
	set, err := LoadFS(fsys, name)
	if err != nil {
		panic(err)
	}
	return set
}

var defaultSet = sync.OnceValue(func() *Set {
	return MustLoadFS(bundled, ResourceName)
})

// Default returns the process-wide set built from the bundled word list.
// It is loaded on first use; an unreadable resource aborts the process.
func Default() *Set {
	return defaultSet()
}

// Contains reports whether word is in the set. Matching is exact and case-sensitive.
func (s *Set) Contains(word string) bool {
	if s == nil {
		return false
	}
	_, ok := s.words[word]
	return ok
}

// Len returns the number of words in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.words)
}
