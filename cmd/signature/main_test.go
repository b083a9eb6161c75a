package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/Adda-Baaj/news-signature/pkg/publishers"
)

const articlesYAML = `
articles:
  - headline: "Markets rally as banks cut rates"
    text: "<p>Stock markets rallied after the central banks cut interest rates.</p>"
    url: https://example.com/markets
    published_at: "2024-05-01T11:50:00Z"
    feed_title: Example Business
  - headline: "Storm warning"
    text: "Heavy storms are expected tonight."
    url: https://example.com/storm
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunWritesEvents(t *testing.T) {
	input := writeFile(t, "articles.yaml", articlesYAML)

	var out bytes.Buffer
	err := run(context.Background(), []string{"--input", input, "--now", "2024-05-01T12:00:00Z", "--log-level", "error"}, &out)
	if err != nil {
		t.Fatalf("run error: %v", err)
	}

	var events []publishers.Event
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		var evt publishers.Event
		if err := json.Unmarshal(scanner.Bytes(), &evt); err != nil {
			t.Fatalf("decode line %q: %v", scanner.Text(), err)
		}
		events = append(events, evt)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events; want 2", len(events))
	}

	markets := events[0].Signature
	if markets.URL != "https://example.com/markets" || !markets.New {
		t.Fatalf("unexpected first signature %+v", markets)
	}
	if markets.Words["market"] != 2 || markets.Words["rate"] != 2 || markets.Words["bank"] != 2 {
		t.Fatalf("unexpected words %v", markets.Words)
	}
	if _, ok := markets.Words["the"]; ok {
		t.Fatalf("stopword counted: %v", markets.Words)
	}
	if events[1].Signature.New {
		t.Fatal("undated article reported as new")
	}
}

func TestRunPublishesOverHTTP(t *testing.T) {
	var received atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received.Add(1)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	input := writeFile(t, "articles.yaml", articlesYAML)
	pubFile := writeFile(t, "publishers.yaml", `
publishers:
  - id: clustering
    type: http
    http:
      url: `+srv.URL+`
`)

	var out bytes.Buffer
	err := run(context.Background(), []string{"--input", input, "--publishers", pubFile, "--log-level", "error"}, &out)
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	if received.Load() != 2 {
		t.Fatalf("server received %d events; want 2", received.Load())
	}
	if out.Len() != 0 {
		t.Fatalf("unexpected stdout output %q", out.String())
	}
}

func TestRunErrors(t *testing.T) {
	input := writeFile(t, "articles.yaml", articlesYAML)
	cases := []struct {
		name string
		args []string
	}{
		{"missing input", []string{"--input", filepath.Join(t.TempDir(), "none.yaml")}},
		{"bad now", []string{"--input", input, "--now", "noon"}},
		{"bad stemmer", []string{"--input", input, "--stemmer", "nope"}},
		{"unknown flag", []string{"--bogus"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if err := run(context.Background(), append(c.args, "--log-level", "error"), &bytes.Buffer{}); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestRunReportsInterruption(t *testing.T) {
	input := writeFile(t, "articles.yaml", articlesYAML)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := run(ctx, []string{"--input", input, "--log-level", "error"}, &out)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("run error = %v; want context.Canceled", err)
	}
	if out.Len() != 0 {
		t.Fatalf("interrupted run wrote %q", out.String())
	}
}
