package documents

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const yamlBatch = `
articles:
  - headline: "Cats running"
    text: "<p>The cat sat on the mat.</p>"
    url: " https://example.com/cats "
    published_at: "2024-05-01T11:45:00Z"
    feed_title: Example News
    images:
      - url: https://example.com/1.jpg
        title: A cat
      - url: "  "
    feed_logo:
      url: https://example.com/logo.png
  - headline: Undated
    text: ""
    url: https://example.com/undated
`

const jsonBatch = `{"articles":[{"headline":"Markets","text":"Stocks rose","url":"https://example.com/m","published_at":"Wed, 01 May 2024 11:45:00 +0000","feed_icon":{"url":"https://example.com/favicon.ico"}}]}`

func TestLoadYAML(t *testing.T) {
	articles, err := Load(strings.NewReader(yamlBatch), ".yaml")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("got %d articles; want 2", len(articles))
	}

	a := articles[0]
	if a.Headline() != "Cats running" || a.URL() != "https://example.com/cats" || a.FeedTitle() != "Example News" {
		t.Fatalf("unexpected article %q %q %q", a.Headline(), a.URL(), a.FeedTitle())
	}
	ts, ok := a.PublishedAt()
	if !ok || !ts.Equal(time.Date(2024, 5, 1, 11, 45, 0, 0, time.UTC)) {
		t.Fatalf("PublishedAt = %v, %v", ts, ok)
	}
	if imgs := a.Images(); len(imgs) != 1 || imgs[0].Title != "A cat" {
		t.Fatalf("Images = %+v", imgs)
	}
	if logo, ok := a.FeedLogo(); !ok || logo.URL != "https://example.com/logo.png" {
		t.Fatalf("FeedLogo = %v, %v", logo, ok)
	}
	if _, ok := a.FeedIcon(); ok {
		t.Fatal("FeedIcon present; want absent")
	}

	if _, ok := articles[1].PublishedAt(); ok {
		t.Fatal("undated article has a publication time")
	}
}

func TestLoadJSONWithoutExtension(t *testing.T) {
	articles, err := Load(strings.NewReader(jsonBatch), "")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("got %d articles; want 1", len(articles))
	}
	ts, ok := articles[0].PublishedAt()
	if !ok || !ts.Equal(time.Date(2024, 5, 1, 11, 45, 0, 0, time.UTC)) {
		t.Fatalf("PublishedAt = %v, %v", ts, ok)
	}
	if icon, ok := articles[0].FeedIcon(); !ok || icon.URL != "https://example.com/favicon.ico" {
		t.Fatalf("FeedIcon = %v, %v", icon, ok)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name string
		data string
		ext  string
	}{
		{"bad date", `{"articles":[{"headline":"x","published_at":"yesterday"}]}`, ".json"},
		{"malformed json", `{"articles":[`, ".json"},
		{"unknown extension", `articles: []`, ".toml"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := Load(strings.NewReader(c.data), c.ext); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.yml")
	if err := os.WriteFile(path, []byte(yamlBatch), 0o644); err != nil {
		t.Fatal(err)
	}
	articles, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("got %d articles; want 2", len(articles))
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
	if _, err := LoadFile("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}
