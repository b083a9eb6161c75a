package publishers

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Dispatch delivers every event to every publisher. Publishers run concurrently; events
// reach a given publisher in order. A failed delivery is logged and does not stop the
// remaining ones. The returned error joins all failures.
func Dispatch(ctx context.Context, pubs []Publisher, events []Event, log Logger) error {
	if len(pubs) == 0 || len(events) == 0 {
		return nil
	}
	log = ensureLogger(log)

	var (
		mu   sync.Mutex
		errs []error
		wg   sync.WaitGroup
	)

	for _, pub := range pubs {
		wg.Add(1)
		go func(pub Publisher) {
			defer wg.Done()

			delivered := 0
			for _, evt := range events {
				if ctx.Err() != nil {
					mu.Lock()
					errs = append(errs, fmt.Errorf("publisher %q: %w", pub.ID(), ctx.Err()))
					mu.Unlock()
					return
				}
				if err := pub.Publish(ctx, evt); err != nil {
					log.WarnObj("signature delivery failed", "publisher_error", map[string]any{
						"publisher_id": pub.ID(),
						"type":         pub.Type(),
						"article_id":   evt.ArticleID,
						"error":        err.Error(),
					})
					mu.Lock()
					errs = append(errs, fmt.Errorf("publisher %q article %s: %w", pub.ID(), evt.ArticleID, err))
					mu.Unlock()
					continue
				}
				delivered++
			}

			log.InfoObj("publisher finished", "publisher_summary", map[string]any{
				"publisher_id": pub.ID(),
				"delivered":    delivered,
				"total":        len(events),
			})
		}(pub)
	}

	wg.Wait()
	return errors.Join(errs...)
}
