package publishers

import (
	"crypto/sha1" //nolint:gosec // non-cryptographic id generation
	"encoding/hex"
	"strconv"
	"time"

	"github.com/Adda-Baaj/news-signature/internal/signature"
)

// Event is the message delivered to the clustering stage for one article.
type Event struct {
	ArticleID string              `json:"article_id"`
	EmittedAt time.Time           `json:"emitted_at"`
	Signature signature.Signature `json:"signature"`
}

// NewEvent wraps sig in an Event keyed by a hash of the article URL.
func NewEvent(sig signature.Signature, emittedAt time.Time) Event {
	return Event{
		ArticleID: hashURL(sig.URL),
		EmittedAt: emittedAt.UTC(),
		Signature: sig,
	}
}

// attributes are the message attributes queue providers can filter on.
func (e Event) attributes() map[string]string {
	return map[string]string{
		"article_id": e.ArticleID,
		"new":        strconv.FormatBool(e.Signature.New),
	}
}

// hashURL generates a SHA-1 hash of the given URL string.
func hashURL(u string) string {
	sum := sha1.Sum([]byte(u))
	return hex.EncodeToString(sum[:])
}
