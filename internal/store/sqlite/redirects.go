package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/podfeedapp/podfeed-server/internal/id"
	"github.com/podfeedapp/podfeed-server/internal/store"
)

// ResolveOriginal returns the original URL stored for a proxy code.
// Returns store.ErrNotFound if no entry has that code.
func (s *Store) ResolveOriginal(ctx context.Context, kind store.LinkKind, proxy string) (string, error) {
	if !kind.Valid() {
		return "", store.ErrInvalidInput.WithMessage(fmt.Sprintf("unknown link kind %q", kind))
	}
	if proxy == "" {
		return "", store.ErrNotFound
	}

	var original string
	// kind is validated above, so interpolating the table name is safe.
	err := s.db.QueryRowContext(ctx,
		`SELECT original FROM `+string(kind)+` WHERE proxy = ?`, proxy).Scan(&original)
	if errors.Is(err, sql.ErrNoRows) {
		return "", store.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("select original: %w", err)
	}
	return original, nil
}

// GetOrCreateProxy returns the proxy code for an original URL, creating
// a new entry if none exists.
//
// The operation is a read-then-insert: a miss on the read leads to an
// insert with a freshly generated code. The insert can fail on either
// unique constraint (another caller created the row first, or the code
// collided with an existing row); both cases restart from the read and
// converge on a single stored row. The retry loop is capped; exhausting
// it returns store.ErrRedirectConflict.
func (s *Store) GetOrCreateProxy(ctx context.Context, kind store.LinkKind, original string) (string, error) {
	if !kind.Valid() {
		return "", store.ErrInvalidInput.WithMessage(fmt.Sprintf("unknown link kind %q", kind))
	}
	if original == "" {
		return "", store.ErrInvalidInput.WithMessage("original url is required")
	}

	for attempt := 0; attempt < s.retryBudget; attempt++ {
		proxy, err := s.proxyByOriginal(ctx, kind, original)
		if err == nil {
			return proxy, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return "", err
		}

		code, err := id.NewCode()
		if err != nil {
			return "", err
		}

		_, err = s.db.ExecContext(ctx,
			`INSERT INTO `+string(kind)+` (original, proxy) VALUES (?, ?)`,
			original, code)
		if err == nil {
			s.logger.Debug("created redirect entry", "kind", kind, "proxy", code)
			return code, nil
		}
		if !isUniqueViolation(err) {
			return "", fmt.Errorf("insert redirect entry: %w", err)
		}
		// Lost the creation race or generated a colliding code; re-read.
	}

	s.logger.Error("redirect conflict retries exhausted", "kind", kind, "original", original)
	return "", store.ErrRedirectConflict
}

// proxyByOriginal returns the proxy code stored for an original URL.
// Returns store.ErrNotFound if no entry exists yet.
func (s *Store) proxyByOriginal(ctx context.Context, kind store.LinkKind, original string) (string, error) {
	var proxy string
	err := s.db.QueryRowContext(ctx,
		`SELECT proxy FROM `+string(kind)+` WHERE original = ?`, original).Scan(&proxy)
	if errors.Is(err, sql.ErrNoRows) {
		return "", store.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("select proxy: %w", err)
	}
	return proxy, nil
}

// isUniqueViolation reports whether err is a sqlite unique-constraint
// failure (covers both the primary key and the proxy index).
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
