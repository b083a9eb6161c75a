package documents

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Adda-Baaj/news-signature/internal/domain"
)

// file is the on-disk layout of an article batch.
type file struct {
	Articles []Document `json:"articles" yaml:"articles"`
}

// Document is one already-ingested article as written by the upstream harvester.
type Document struct {
	Headline    string         `json:"headline" yaml:"headline"`
	Text        string         `json:"text" yaml:"text"`
	URL         string         `json:"url" yaml:"url"`
	PublishedAt string         `json:"published_at" yaml:"published_at"`
	Images      []domain.Image `json:"images" yaml:"images"`
	FeedTitle   string         `json:"feed_title" yaml:"feed_title"`
	FeedLogo    *domain.Image  `json:"feed_logo" yaml:"feed_logo"`
	FeedIcon    *domain.Image  `json:"feed_icon" yaml:"feed_icon"`
}

// LoadFile reads an article batch from path. "-" reads standard input.
func LoadFile(path string) ([]*domain.Article, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("articles file path is empty")
	}
	if path == "-" {
		return Load(os.Stdin, "")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open articles file: %w", err)
	}
	defer f.Close()

	return Load(f, filepath.Ext(path))
}

// Load decodes an article batch from r. ext selects the decoder (".yaml", ".yml",
// ".json"); an empty ext tries each in turn.
func Load(r io.Reader, ext string) ([]*domain.Article, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read articles: %w", err)
	}

	batch, err := parse(raw, ext)
	if err != nil {
		return nil, err
	}

	articles := make([]*domain.Article, 0, len(batch.Articles))
	for i, doc := range batch.Articles {
		art, err := doc.Article()
		if err != nil {
			return nil, fmt.Errorf("articles[%d]: %w", i, err)
		}
		articles = append(articles, art)
	}
	return articles, nil
}

// parse attempts to decode the batch with the decoder matching ext.
func parse(data []byte, ext string) (file, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	decoders := []struct {
		name string
		ext  string
		fn   func([]byte, any) error
	}{
		{name: "json", ext: ".json", fn: json.Unmarshal},
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
	}

	var lastErr error
	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var batch file
		if err := d.fn(data, &batch); err != nil {
			lastErr = fmt.Errorf("decode %s articles: %w", d.name, err)
			continue
		}
		return batch, nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("articles file extension %q not recognized (expected YAML or JSON)", ext)
	}
	return file{}, lastErr
}

// Article converts the document into an immutable domain.Article.
func (d Document) Article() (*domain.Article, error) {
	fields := domain.ArticleFields{
		Headline:  strings.TrimSpace(d.Headline),
		Text:      d.Text,
		URL:       strings.TrimSpace(d.URL),
		Images:    sanitizeImages(d.Images),
		FeedTitle: strings.TrimSpace(d.FeedTitle),
		FeedLogo:  sanitizeImage(d.FeedLogo),
		FeedIcon:  sanitizeImage(d.FeedIcon),
	}

	published, err := parsePublicationDate(d.PublishedAt)
	if err != nil {
		return nil, err
	}
	fields.PublishedAt = published

	return domain.NewArticle(fields), nil
}

// publicationLayouts are tried in order when parsing published_at.
var publicationLayouts = []string{
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parsePublicationDate parses raw with the known layouts. An empty value means the feed
// supplied no date.
func parsePublicationDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range publicationLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("published_at %q is not a recognized timestamp", raw)
}

// sanitizeImages trims image fields and drops images without a URL.
func sanitizeImages(images []domain.Image) []domain.Image {
	out := make([]domain.Image, 0, len(images))
	for _, img := range images {
		if clean := sanitizeImage(&img); clean != nil {
			out = append(out, *clean)
		}
	}
	return out
}

func sanitizeImage(img *domain.Image) *domain.Image {
	if img == nil {
		return nil
	}
	clean := domain.Image{URL: strings.TrimSpace(img.URL), Title: strings.TrimSpace(img.Title)}
	if clean.URL == "" {
		return nil
	}
	return &clean
}
