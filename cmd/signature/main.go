// Command signature reads a batch of article documents, derives the word-frequency
// signature of each one and hands the signatures to the clustering stage.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/Adda-Baaj/news-signature/internal/config"
	"github.com/Adda-Baaj/news-signature/internal/documents"
	"github.com/Adda-Baaj/news-signature/internal/logger"
	"github.com/Adda-Baaj/news-signature/internal/normalizer"
	"github.com/Adda-Baaj/news-signature/internal/signature"
	"github.com/Adda-Baaj/news-signature/internal/stemmer"
	"github.com/Adda-Baaj/news-signature/internal/stopwords"
	"github.com/Adda-Baaj/news-signature/internal/wordcount"
	"github.com/Adda-Baaj/news-signature/pkg/publishers"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "signature:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := pflag.NewFlagSet("signature", pflag.ContinueOnError)
	config.RegisterFlags(fs)
	now := fs.String("now", "", "RFC3339 time used to judge article freshness (default: current time)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(fs)
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	clock := time.Now()
	if *now != "" {
		if clock, err = time.Parse(time.RFC3339, *now); err != nil {
			return fmt.Errorf("parse --now: %w", err)
		}
	}

	stem, err := stemmer.New(cfg.Extract.Stemmer)
	if err != nil {
		return err
	}
	set := stopwords.Default()
	extractor := signature.NewExtractor(
		normalizer.New(),
		wordcount.NewCounter(set, stem),
		signature.WithWorkers(cfg.Extract.Workers),
		signature.WithLogger(log.With(zap.String("component", "extractor"))),
	)

	articles, err := documents.LoadFile(cfg.Input.Path)
	if err != nil {
		return err
	}
	log.InfoObj("articles loaded", "articles_loaded", map[string]any{
		"input":     cfg.Input.Path,
		"articles":  len(articles),
		"stopwords": set.Len(),
		"stemmer":   cfg.Extract.Stemmer,
	})

	sigs := extractor.Extract(ctx, clock, articles)

	emittedAt := time.Now()
	events := make([]publishers.Event, 0, len(sigs))
	for _, sig := range sigs {
		events = append(events, publishers.NewEvent(sig, emittedAt))
	}

	if cfg.Publishers.File == "" {
		err = writeEvents(stdout, events)
	} else {
		err = publish(ctx, cfg.Publishers.File, events, log)
	}
	if err != nil {
		return err
	}
	// a partial batch was emitted; report the interruption
	return ctx.Err()
}

// writeEvents prints one JSON event per line.
func writeEvents(w io.Writer, events []publishers.Event) error {
	enc := json.NewEncoder(w)
	for _, evt := range events {
		if err := enc.Encode(evt); err != nil {
			return fmt.Errorf("write event: %w", err)
		}
	}
	return nil
}

func publish(ctx context.Context, path string, events []publishers.Event, log logger.Logger) (err error) {
	cfgs, err := publishers.LoadConfigs(path)
	if err != nil {
		return err
	}

	pubs, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), cfgs, log)
	if err != nil {
		return err
	}
	if len(pubs) == 0 {
		return errors.New("no enabled publishers configured")
	}
	defer func() {
		err = errors.Join(err, publishers.CloseAll(pubs))
	}()

	return publishers.Dispatch(ctx, pubs, events, log)
}
