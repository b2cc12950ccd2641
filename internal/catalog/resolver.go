package catalog

import (
	"errors"
	"strconv"
	"strings"

	"github.com/podfeedapp/podfeed-server/internal/domain"
)

// MaxAliasHops bounds alias chasing during resolution. A chain longer
// than this means the alias map points back at itself.
const MaxAliasHops = 20

var (
	// ErrShowNotFound means no id, title, or legacy alias matched.
	ErrShowNotFound = errors.New("no such show")

	// ErrResolveLoop means alias chasing exceeded MaxAliasHops, which
	// only happens when the alias map is misconfigured with a cycle.
	ErrResolveLoop = errors.New("alias resolution exceeded hop bound")
)

// Resolver resolves user-supplied show tokens (numeric id, show name,
// or legacy alias) to catalog shows.
//
// The alias map is fixed at construction; changing aliases requires a
// new Resolver.
type Resolver struct {
	catalog *Catalog
	aliases map[string]string
}

// NewResolver creates a resolver over the given catalog and legacy
// alias map. The map is copied, so the caller's map stays untouched.
func NewResolver(catalog *Catalog, aliases map[string]string) *Resolver {
	copied := make(map[string]string, len(aliases))
	for k, v := range aliases {
		copied[k] = v
	}
	return &Resolver{
		catalog: catalog,
		aliases: copied,
	}
}

// Resolve maps a show token to a show.
//
// In non-strict mode the token is first tried as a numeric show id.
// Either way it is then tried as a show name, and finally as a legacy
// alias; an alias match substitutes the mapped token and the search
// starts over in non-strict mode. The alias map may chain (alias to
// alias to id), so hops are bounded by MaxAliasHops.
//
// Returns ErrShowNotFound when no path matches and ErrResolveLoop when
// the hop bound is hit.
func (r *Resolver) Resolve(token string, strict bool) (*domain.Show, error) {
	for hops := 0; hops < MaxAliasHops; hops++ {
		if !strict {
			if id, err := strconv.Atoi(strings.TrimSpace(token)); err == nil {
				if show, ok := r.catalog.ShowByID(id); ok {
					return show, nil
				}
			}
		}

		if show, ok := r.catalog.ShowByName(token); ok {
			return show, nil
		}

		// Perhaps this is an old-style URL.
		next, ok := r.lookupAlias(token)
		if !ok {
			return nil, ErrShowNotFound
		}
		token, strict = next, false
	}
	return nil, ErrResolveLoop
}

// lookupAlias scans the alias map for a case-insensitive match of the
// trimmed token.
func (r *Resolver) lookupAlias(token string) (string, bool) {
	needle := strings.ToLower(strings.TrimSpace(token))
	for alias, target := range r.aliases {
		if strings.ToLower(alias) == needle {
			return target, true
		}
	}
	return "", false
}
