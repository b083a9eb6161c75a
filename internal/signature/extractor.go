package signature

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Adda-Baaj/news-signature/internal/domain"
	"github.com/Adda-Baaj/news-signature/internal/logger"
	"github.com/Adda-Baaj/news-signature/internal/normalizer"
	"github.com/Adda-Baaj/news-signature/internal/wordcount"
)

const defaultWorkers = 10

// Signature is the word-frequency feature vector of one article plus the metadata the
// downstream clustering stage keys on.
type Signature struct {
	URL         string                `json:"url"`
	Headline    string                `json:"headline"`
	FeedTitle   string                `json:"feed_title,omitempty"`
	PublishedAt *time.Time            `json:"published_at,omitempty"`
	New         bool                  `json:"new"`
	Words       wordcount.Frequencies `json:"words"`
}

// Extractor derives word-frequency signatures from articles.
type Extractor struct {
	normalizer normalizer.Normalizer
	counter    *wordcount.Counter
	workers    int
	log        logger.Logger
}

// Option customizes an Extractor.
type Option func(*Extractor)

// WithWorkers bounds how many articles Extract processes concurrently.
func WithWorkers(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithLogger sets the logger used by Extract.
func WithLogger(log logger.Logger) Option {
	return func(e *Extractor) {
		if log != nil {
			e.log = log
		}
	}
}

// NewExtractor creates an Extractor. Nil arguments fall back to the HTML normalizer and a
// counter built from the bundled stopwords and the snowball stemmer.
func NewExtractor(n normalizer.Normalizer, c *wordcount.Counter, opts ...Option) *Extractor {
	if n == nil {
		n = normalizer.New()
	}
	if c == nil {
		c = wordcount.NewCounter(nil, nil)
	}
	e := &Extractor{
		normalizer: n,
		counter:    c,
		workers:    defaultWorkers,
		log:        logger.NopLogger{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WordFrequencies counts the stems of the article body and adds the headline counts.
// Each stem's count is its body occurrences plus its headline occurrences.
func (e *Extractor) WordFrequencies(a *domain.Article) wordcount.Frequencies {
	counts := e.counter.Count(e.normalizer.StripMarkupAndPunctuation(a.Text()))
	counts.Merge(e.counter.Count(e.normalizer.StripMarkupAndPunctuation(a.Headline())))
	return counts
}

// Signature builds the signature of a, judging freshness against now.
func (e *Extractor) Signature(a *domain.Article, now time.Time) Signature {
	sig := Signature{
		URL:       a.URL(),
		Headline:  a.Headline(),
		FeedTitle: a.FeedTitle(),
		New:       a.IsNew(now),
		Words:     e.WordFrequencies(a),
	}
	if ts, ok := a.PublishedAt(); ok {
		sig.PublishedAt = &ts
	}
	return sig
}

// Extract computes signatures for articles using a bounded pool of workers. Results keep
// the input order. On cancellation it stops dispatching and returns what was finished.
func (e *Extractor) Extract(ctx context.Context, now time.Time, articles []*domain.Article) []Signature {
	if len(articles) == 0 {
		return nil
	}

	out := make([]Signature, len(articles))
	done := make([]bool, len(articles))

	workerCount := min(len(articles), e.workers)
	jobCh := make(chan int)
	var wg sync.WaitGroup

	for workerID := range workerCount {
		wg.Add(1)
		go e.worker(ctx, now, articles, jobCh, out, done, &wg, workerID)
	}

dispatch:
	for idx := range articles {
		select {
		case <-ctx.Done():
			break dispatch
		case jobCh <- idx:
		}
	}
	close(jobCh)

	wg.Wait()

	results := make([]Signature, 0, len(articles))
	for idx, ok := range done {
		if ok {
			results = append(results, out[idx])
		}
	}
	if ctx.Err() != nil && len(results) < len(articles) {
		e.log.WarnObj("signature extraction interrupted", "extract_partial", map[string]any{
			"requested": len(articles),
			"completed": len(results),
			"error":     fmt.Sprint(ctx.Err()),
		})
	}
	return results
}

// worker drains jobCh, writing each article's signature into its slot in out.
func (e *Extractor) worker(
	ctx context.Context,
	now time.Time,
	articles []*domain.Article,
	jobCh <-chan int,
	out []Signature,
	done []bool,
	wg *sync.WaitGroup,
	workerID int,
) {
	defer wg.Done()

	for idx := range jobCh {
		if ctx.Err() != nil {
			return
		}
		art := articles[idx]
		if art == nil {
			continue
		}
		out[idx] = e.Signature(art, now)
		done[idx] = true

		e.log.DebugObj("article signature extracted", "extract_article", map[string]any{
			"worker_id": workerID,
			"url":       art.URL(),
			"stems":     len(out[idx].Words),
		})
	}
}

// Describe renders an article as its bracketed headline, its text and its sorted stems.
func (e *Extractor) Describe(a *domain.Article) string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(a.Headline())
	b.WriteString("]\n")
	b.WriteString(a.Text())
	b.WriteByte('\n')
	b.WriteString(fmt.Sprint(e.WordFrequencies(a).Keys()))
	b.WriteByte('\n')
	return b.String()
}
