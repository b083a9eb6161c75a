package domain

import "time"

// Domain contains the core article model.

// NewWindow is how long after publication an article counts as new.
const NewWindow = 30 * time.Minute

// Image is a picture attached to an article or a feed.
type Image struct {
	URL   string `json:"url" yaml:"url"`
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
}

// ArticleFields carries the values an Article is built from. Nil pointers mark absent
// optional values.
type ArticleFields struct {
	Headline    string
	Text        string
	URL         string
	PublishedAt *time.Time
	Images      []Image
	FeedTitle   string
	FeedLogo    *Image
	FeedIcon    *Image
}

// Article holds the headline, text and metadata of one syndicated article.
// It cannot be modified after construction.
type Article struct {
	headline    string
	text        string
	url         string
	publishedAt time.Time
	hasDate     bool
	images      []Image
	feedTitle   string
	feedLogo    Image
	hasLogo     bool
	feedIcon    Image
	hasIcon     bool
}

// NewArticle copies f into a new Article.
func NewArticle(f ArticleFields) *Article {
	a := &Article{
		headline:  f.Headline,
		text:      f.Text,
		url:       f.URL,
		images:    cloneImages(f.Images),
		feedTitle: f.FeedTitle,
	}
	if f.PublishedAt != nil {
		a.publishedAt, a.hasDate = *f.PublishedAt, true
	}
	if f.FeedLogo != nil {
		a.feedLogo, a.hasLogo = *f.FeedLogo, true
	}
	if f.FeedIcon != nil {
		a.feedIcon, a.hasIcon = *f.FeedIcon, true
	}
	return a
}

// Headline returns the article's title.
func (a *Article) Headline() string { return a.headline }

// Text returns the article body as supplied by the feed, markup included.
func (a *Article) Text() string { return a.text }

// URL returns the article's link.
func (a *Article) URL() string { return a.url }

// FeedTitle returns the title of the feed the article came from.
func (a *Article) FeedTitle() string { return a.feedTitle }

// PublishedAt returns the publication time and whether the feed supplied one.
func (a *Article) PublishedAt() (time.Time, bool) { return a.publishedAt, a.hasDate }

// Images returns a copy of the article's images in feed order.
func (a *Article) Images() []Image { return cloneImages(a.images) }

// FeedLogo returns the full-size logo of the article's feed, if any.
func (a *Article) FeedLogo() (Image, bool) { return a.feedLogo, a.hasLogo }

// FeedIcon returns the favicon of the article's feed, if any.
func (a *Article) FeedIcon() (Image, bool) { return a.feedIcon, a.hasIcon }

// IsNew reports whether the article was published less than NewWindow before now.
// Articles without a publication time are never new.
func (a *Article) IsNew(now time.Time) bool {
	return a.hasDate && now.Sub(a.publishedAt) < NewWindow
}

func cloneImages(images []Image) []Image {
	if len(images) == 0 {
		return nil
	}
	out := make([]Image, len(images))
	copy(out, images)
	return out
}
