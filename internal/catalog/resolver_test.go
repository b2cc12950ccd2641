package catalog

import (
	"errors"
	"testing"
)

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	c := newTestCatalog(t)
	return NewResolver(c, c.Aliases())
}

func TestResolve(t *testing.T) {
	r := newTestResolver(t)

	tests := []struct {
		name   string
		token  string
		strict bool
		wantID int
	}{
		{"title strict", "Daily News", true, 1},
		{"slug strict", "dailynews", true, 1},
		{"legacy alias", "dailynews-old", false, 1},
		{"alias case and whitespace", "  DailyNews-OLD ", false, 1},
		{"numeric id non-strict", "1", false, 1},
		{"alias in strict mode still resolves", "dailynews-old", true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			show, err := r.Resolve(tt.token, tt.strict)
			if err != nil {
				t.Fatalf("Resolve(%q): %v", tt.token, err)
			}
			if show.ID != tt.wantID {
				t.Errorf("ID: got %d, want %d", show.ID, tt.wantID)
			}
		})
	}
}

func TestResolveNotFound(t *testing.T) {
	r := newTestResolver(t)

	for _, token := range []string{"nope", "999", ""} {
		if _, err := r.Resolve(token, false); !errors.Is(err, ErrShowNotFound) {
			t.Errorf("Resolve(%q): got %v, want ErrShowNotFound", token, err)
		}
	}
}

func TestResolveStrictIgnoresNumericID(t *testing.T) {
	r := newTestResolver(t)

	// In strict mode "1" is a name, not an id, and no show slugs to "1".
	if _, err := r.Resolve("1", true); !errors.Is(err, ErrShowNotFound) {
		t.Fatalf("Resolve(\"1\", strict): got %v, want ErrShowNotFound", err)
	}
}

func TestResolveAliasChain(t *testing.T) {
	c := newTestCatalog(t)
	r := NewResolver(c, map[string]string{
		"oldest": "older",
		"older":  "1",
	})

	show, err := r.Resolve("oldest", false)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if show.ID != 1 {
		t.Errorf("ID: got %d, want 1", show.ID)
	}
}

func TestResolveLoopTerminates(t *testing.T) {
	c := newTestCatalog(t)
	r := NewResolver(c, map[string]string{
		"a": "b",
		"b": "a",
	})

	if _, err := r.Resolve("a", false); !errors.Is(err, ErrResolveLoop) {
		t.Fatalf("Resolve: got %v, want ErrResolveLoop", err)
	}

	// Self-referential alias terminates the same way.
	r = NewResolver(c, map[string]string{"self": "self"})
	if _, err := r.Resolve("self", false); !errors.Is(err, ErrResolveLoop) {
		t.Fatalf("Resolve: got %v, want ErrResolveLoop", err)
	}
}

func TestNewResolverCopiesAliases(t *testing.T) {
	c := newTestCatalog(t)
	aliases := map[string]string{"old": "1"}
	r := NewResolver(c, aliases)

	aliases["old"] = "999"

	show, err := r.Resolve("old", false)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if show.ID != 1 {
		t.Errorf("ID: got %d, want 1 (resolver must hold its own copy)", show.ID)
	}
}
