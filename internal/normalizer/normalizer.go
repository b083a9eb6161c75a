package normalizer

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Normalizer turns raw feed text into lowercase words separated by single spaces.
type Normalizer interface {
	StripMarkupAndPunctuation(text string) string
}

// Func adapts a plain function to a Normalizer.
type Func func(text string) string

// StripMarkupAndPunctuation calls f(text).
func (f Func) StripMarkupAndPunctuation(text string) string { return f(text) }

// ignoredElements never contribute readable text.
const ignoredElements = "script, style, noscript, template"

// HTML strips markup by parsing the text as an HTML fragment.
type HTML struct{}

// New returns the HTML normalizer.
func New() HTML { return HTML{} }

// StripMarkupAndPunctuation removes tags, entities and punctuation from text.
func (HTML) StripMarkupAndPunctuation(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	return StripPunctuation(stripMarkup(text))
}

// stripMarkup returns the text content of an HTML fragment. Text nodes are joined
// with spaces so adjacent block elements do not glue their words together.
func stripMarkup(text string) string {
	if !strings.ContainsAny(text, "<&") {
		return text
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return text
	}
	doc.Find(ignoredElements).Remove()

	var b strings.Builder
	for _, n := range doc.Nodes {
		collectText(&b, n)
	}
	return b.String()
}

func collectText(b *strings.Builder, n *html.Node) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		b.WriteByte(' ')
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c)
	}
}

// StripPunctuation lowercases text, drops apostrophes, turns every other rune that is not
// a letter or digit into a separator and collapses whitespace runs to one space.
func StripPunctuation(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	space := true
	for _, r := range text {
		switch {
		case r == '\'' || r == '’' || r == 'ʼ':
			continue
		case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r):
			b.WriteRune(unicode.ToLower(r))
			space = false
		default:
			if !space {
				b.WriteByte(' ')
				space = true
			}
		}
	}
	return strings.TrimRight(b.String(), " ")
}
