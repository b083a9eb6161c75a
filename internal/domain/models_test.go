package domain

import (
	"testing"
	"time"
)

func TestIsNew(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) *time.Time {
		ts := now.Add(-d)
		return &ts
	}

	cases := []struct {
		name string
		date *time.Time
		want bool
	}{
		{"no date", nil, false},
		{"just published", at(0), true},
		{"ten minutes old", at(10 * time.Minute), true},
		{"one second short of window", at(NewWindow - time.Second), true},
		{"exactly window", at(NewWindow), false},
		{"an hour old", at(time.Hour), false},
		{"future dated", at(-5 * time.Minute), true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := NewArticle(ArticleFields{Headline: "h", PublishedAt: c.date})
			if got := a.IsNew(now); got != c.want {
				t.Fatalf("IsNew = %v; want %v", got, c.want)
			}
		})
	}
}

func TestIsNewWithoutDateIgnoresNow(t *testing.T) {
	a := NewArticle(ArticleFields{Headline: "h"})
	for _, now := range []time.Time{{}, time.Unix(0, 0), time.Now()} {
		if a.IsNew(now) {
			t.Fatalf("IsNew(%v) = true for undated article", now)
		}
	}
}

func TestArticleAccessors(t *testing.T) {
	published := time.Date(2024, 5, 1, 11, 45, 0, 0, time.UTC)
	logo := Image{URL: "https://example.com/logo.png", Title: "Example"}
	a := NewArticle(ArticleFields{
		Headline:    "Headline",
		Text:        "Body",
		URL:         "https://example.com/a",
		PublishedAt: &published,
		Images:      []Image{{URL: "https://example.com/1.jpg"}},
		FeedTitle:   "Example Feed",
		FeedLogo:    &logo,
	})

	if a.Headline() != "Headline" || a.Text() != "Body" || a.URL() != "https://example.com/a" || a.FeedTitle() != "Example Feed" {
		t.Fatalf("unexpected accessors: %q %q %q %q", a.Headline(), a.Text(), a.URL(), a.FeedTitle())
	}
	if got, ok := a.PublishedAt(); !ok || !got.Equal(published) {
		t.Fatalf("PublishedAt = %v, %v", got, ok)
	}
	if got, ok := a.FeedLogo(); !ok || got != logo {
		t.Fatalf("FeedLogo = %v, %v", got, ok)
	}
	if _, ok := a.FeedIcon(); ok {
		t.Fatal("FeedIcon present; want absent")
	}
}

func TestArticleIsImmutable(t *testing.T) {
	published := time.Date(2024, 5, 1, 11, 45, 0, 0, time.UTC)
	icon := Image{URL: "https://example.com/favicon.ico"}
	images := []Image{{URL: "https://example.com/1.jpg"}, {URL: "https://example.com/2.jpg"}}
	a := NewArticle(ArticleFields{PublishedAt: &published, Images: images, FeedIcon: &icon})

	images[0].URL = "mutated"
	published = published.Add(time.Hour)
	icon.URL = "mutated"

	got := a.Images()
	if got[0].URL != "https://example.com/1.jpg" {
		t.Fatalf("constructor slice leaked into article: %v", got)
	}
	got[1].URL = "mutated"
	if a.Images()[1].URL != "https://example.com/2.jpg" {
		t.Fatal("Images() returned the article's own slice")
	}
	if ts, _ := a.PublishedAt(); ts.Hour() != 11 {
		t.Fatalf("PublishedAt changed to %v", ts)
	}
	if ic, _ := a.FeedIcon(); ic.URL != "https://example.com/favicon.ico" {
		t.Fatalf("FeedIcon changed to %v", ic)
	}
}

func TestImagesEmpty(t *testing.T) {
	a := NewArticle(ArticleFields{})
	if len(a.Images()) != 0 {
		t.Fatal("expected no images")
	}
}
