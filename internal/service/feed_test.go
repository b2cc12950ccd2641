package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/podfeedapp/podfeed-server/internal/catalog"
	"github.com/podfeedapp/podfeed-server/internal/feed"
	"github.com/podfeedapp/podfeed-server/internal/store"
)

const testCatalogTOML = `
[aliases]
"dailynews-old" = "1"

[[shows]]
id = 1
title = "Daily News"
description = "The day in ten minutes."
language = "en"

[[shows.episodes]]
guid = "dn-001"
title = "Pilot"
published_at = 2026-01-05T06:00:00Z
sound_url = "http://media.example.com/dn/001.mp3"
article_url = "http://example.com/dailynews/pilot"
duration_sec = 600
`

// memStore is an in-memory RedirectStore for service tests.
type memStore struct {
	mu     sync.Mutex
	tables map[store.LinkKind]map[string]string // original -> proxy
	next   int
}

func newMemStore() *memStore {
	return &memStore{
		tables: map[store.LinkKind]map[string]string{
			store.KindSound:   {},
			store.KindArticle: {},
		},
	}
}

func (m *memStore) GetOrCreateProxy(_ context.Context, kind store.LinkKind, original string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if proxy, ok := m.tables[kind][original]; ok {
		return proxy, nil
	}
	m.next++
	proxy := fmt.Sprintf("code%d", m.next)
	m.tables[kind][original] = proxy
	return proxy, nil
}

func (m *memStore) ResolveOriginal(_ context.Context, kind store.LinkKind, proxy string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for original, p := range m.tables[kind] {
		if p == proxy {
			return original, nil
		}
	}
	return "", store.ErrNotFound
}

func (m *memStore) Close() error { return nil }

func newTestService(t *testing.T) (*FeedService, *memStore) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	path := filepath.Join(t.TempDir(), "catalog.toml")
	if err := os.WriteFile(path, []byte(testCatalogTOML), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	cat, err := catalog.Load(path, logger)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	redirects := newMemStore()
	svc := NewFeedService(
		catalog.NewResolver(cat, cat.Aliases()),
		feed.NewGenerator(logger),
		redirects,
		"http://feeds.example.com/",
		logger,
	)
	return svc, redirects
}

func TestFeedXMLRewritesThroughStore(t *testing.T) {
	svc, redirects := newTestService(t)
	ctx := context.Background()

	show, err := svc.ResolveShow("dailynews", true)
	if err != nil {
		t.Fatalf("ResolveShow: %v", err)
	}

	out, err := svc.FeedXML(ctx, show)
	if err != nil {
		t.Fatalf("FeedXML: %v", err)
	}
	xml := string(out)

	soundRe := regexp.MustCompile(`url="http://feeds\.example\.com/episode/dailynews/(code\d+)"`)
	m := soundRe.FindStringSubmatch(xml)
	if m == nil {
		t.Fatalf("no rewritten sound URL in feed:\n%s", xml)
	}
	if !strings.Contains(xml, "http://feeds.example.com/artikkel/dailynews/") {
		t.Errorf("no rewritten article URL in feed:\n%s", xml)
	}

	// The proxy code must recover the original URL.
	original, err := svc.EpisodeTarget(ctx, m[1])
	if err != nil {
		t.Fatalf("EpisodeTarget: %v", err)
	}
	if original != "http://media.example.com/dn/001.mp3" {
		t.Errorf("EpisodeTarget: got %q", original)
	}

	// Regenerating the feed reuses the same codes.
	again, err := svc.FeedXML(ctx, show)
	if err != nil {
		t.Fatalf("FeedXML (second): %v", err)
	}
	if !strings.Contains(string(again), m[1]) {
		t.Error("second generation produced a different sound code")
	}
	if got := len(redirects.tables[store.KindSound]); got != 1 {
		t.Errorf("expected 1 sound entry, got %d", got)
	}
}

func TestFeedURLs(t *testing.T) {
	svc, _ := newTestService(t)

	show, err := svc.ResolveShow("Daily News", true)
	if err != nil {
		t.Fatalf("ResolveShow: %v", err)
	}

	if got := svc.FeedURL(show); got != "http://feeds.example.com/dailynews" {
		t.Errorf("FeedURL: got %q", got)
	}
	if got := svc.FeedSlug(show); got != "dailynews" {
		t.Errorf("FeedSlug: got %q", got)
	}
	if got := svc.PredictedFeedURL("My Show!"); got != "http://feeds.example.com/myshow" {
		t.Errorf("PredictedFeedURL: got %q", got)
	}
}

func TestResolveShowAlias(t *testing.T) {
	svc, _ := newTestService(t)

	show, err := svc.ResolveShow("dailynews-old", false)
	if err != nil {
		t.Fatalf("ResolveShow: %v", err)
	}
	if show.ID != 1 {
		t.Errorf("ID: got %d, want 1", show.ID)
	}
}

func TestArticleTargetNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.ArticleTarget(context.Background(), "missing"); err == nil {
		t.Fatal("expected error for unknown article code")
	}
}
