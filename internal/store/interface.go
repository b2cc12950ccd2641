// Package store defines the persistence contract for redirect entries.
package store

import "context"

// LinkKind selects which redirect table an operation targets.
type LinkKind string

const (
	// KindSound maps proxy codes to original episode audio URLs.
	KindSound LinkKind = "sound"
	// KindArticle maps proxy codes to original article URLs.
	KindArticle LinkKind = "article"
)

// Valid reports whether k is one of the known link kinds.
func (k LinkKind) Valid() bool {
	return k == KindSound || k == KindArticle
}

// RedirectStore persists the mapping between original external URLs
// and short opaque proxy codes, one table per link kind.
//
// Entries are created at most once per distinct original URL and are
// never updated or deleted afterwards.
type RedirectStore interface {
	// ResolveOriginal returns the original URL stored for a proxy code.
	// Returns ErrNotFound if no entry has that code.
	ResolveOriginal(ctx context.Context, kind LinkKind, proxy string) (string, error)

	// GetOrCreateProxy returns the proxy code for an original URL,
	// creating a new entry if none exists. Concurrent calls for the
	// same original converge on the same code.
	GetOrCreateProxy(ctx context.Context, kind LinkKind, original string) (string, error)

	// Close releases the underlying storage handle.
	Close() error
}
