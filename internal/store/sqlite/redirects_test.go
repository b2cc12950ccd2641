package sqlite

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/podfeedapp/podfeed-server/internal/store"
)

func TestGetOrCreateProxyRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	const original = "http://media.example.com/ep/1.mp3"

	code, err := s.GetOrCreateProxy(ctx, store.KindSound, original)
	if err != nil {
		t.Fatalf("GetOrCreateProxy: %v", err)
	}
	if code == "" {
		t.Fatal("expected non-empty proxy code")
	}

	// Second call must return the same code, not create a new row.
	again, err := s.GetOrCreateProxy(ctx, store.KindSound, original)
	if err != nil {
		t.Fatalf("GetOrCreateProxy (second call): %v", err)
	}
	if again != code {
		t.Errorf("expected stable code %q, got %q", code, again)
	}

	got, err := s.ResolveOriginal(ctx, store.KindSound, code)
	if err != nil {
		t.Fatalf("ResolveOriginal: %v", err)
	}
	if got != original {
		t.Errorf("ResolveOriginal: got %q, want %q", got, original)
	}
}

func TestGetOrCreateProxyDistinctOriginals(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	codes := make(map[string]bool)
	originals := []string{
		"http://media.example.com/ep/1.mp3",
		"http://media.example.com/ep/2.mp3",
		"http://media.example.com/ep/3.mp3",
	}
	for _, original := range originals {
		code, err := s.GetOrCreateProxy(ctx, store.KindArticle, original)
		if err != nil {
			t.Fatalf("GetOrCreateProxy(%q): %v", original, err)
		}
		if codes[code] {
			t.Errorf("duplicate proxy code %q for %q", code, original)
		}
		codes[code] = true
	}
}

func TestKindsAreIndependent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	const original = "http://example.com/shared"

	soundCode, err := s.GetOrCreateProxy(ctx, store.KindSound, original)
	if err != nil {
		t.Fatalf("GetOrCreateProxy sound: %v", err)
	}
	if _, err := s.GetOrCreateProxy(ctx, store.KindArticle, original); err != nil {
		t.Fatalf("GetOrCreateProxy article: %v", err)
	}

	// The sound code must not resolve in the article table.
	if _, err := s.ResolveOriginal(ctx, store.KindArticle, soundCode); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for sound code in article table, got %v", err)
	}
}

func TestResolveOriginalNotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.ResolveOriginal(ctx, store.KindSound, "no-such-code")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected store.ErrNotFound, got %v", err)
	}

	var storeErr *store.Error
	if !errors.As(err, &storeErr) {
		t.Fatalf("expected *store.Error, got %T", err)
	}
	if storeErr.HTTPCode() != 404 {
		t.Errorf("expected status 404, got %d", storeErr.HTTPCode())
	}
}

func TestInvalidKindRejected(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.GetOrCreateProxy(ctx, store.LinkKind("bogus"), "http://x/1.mp3"); err == nil {
		t.Error("expected error for unknown kind on GetOrCreateProxy")
	}
	if _, err := s.ResolveOriginal(ctx, store.LinkKind("bogus"), "abc"); err == nil {
		t.Error("expected error for unknown kind on ResolveOriginal")
	}
	if _, err := s.GetOrCreateProxy(ctx, store.KindSound, ""); err == nil {
		t.Error("expected error for empty original URL")
	}
}

func TestGetOrCreateProxyConcurrent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	const (
		original = "http://media.example.com/ep/race.mp3"
		workers  = 16
	)

	var wg sync.WaitGroup
	codes := make([]string, workers)
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			codes[i], errs[i] = s.GetOrCreateProxy(ctx, store.KindSound, original)
		}()
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("worker %d: %v", i, errs[i])
		}
		if codes[i] != codes[0] {
			t.Errorf("worker %d: got code %q, want %q", i, codes[i], codes[0])
		}
	}

	// Exactly one row must exist for the original.
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM sound WHERE original = ?`, original).Scan(&count); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 1 {
		t.Errorf("expected exactly one row, got %d", count)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO sound (original, proxy) VALUES (?, ?)`, "http://x/a.mp3", "code-a"); err != nil {
		t.Fatalf("seed row: %v", err)
	}

	// Duplicate primary key.
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sound (original, proxy) VALUES (?, ?)`, "http://x/a.mp3", "code-b")
	if !isUniqueViolation(err) {
		t.Errorf("expected unique violation for duplicate original, got %v", err)
	}

	// Duplicate proxy code.
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sound (original, proxy) VALUES (?, ?)`, "http://x/b.mp3", "code-a")
	if !isUniqueViolation(err) {
		t.Errorf("expected unique violation for duplicate proxy, got %v", err)
	}

	if isUniqueViolation(nil) {
		t.Error("nil error must not be a unique violation")
	}
}
