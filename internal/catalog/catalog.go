// Package catalog provides the read-only show source and show resolution.
//
// Shows, their episodes, and the legacy alias map are declared in a
// single TOML file. The catalog indexes shows by id and by feed slug
// and can reload the file when it changes on disk.
package catalog

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/podfeedapp/podfeed-server/internal/domain"
	"github.com/podfeedapp/podfeed-server/internal/util"
)

// file is the on-disk catalog document.
type file struct {
	Shows []*domain.Show `toml:"shows"`
	// Aliases maps a legacy URL alias to a resolvable show token,
	// usually a numeric show id, possibly another alias.
	Aliases map[string]string `toml:"aliases"`
}

// Catalog is the in-memory show source. All reads go through an
// RWMutex so the file watcher can swap in a fresh load.
type Catalog struct {
	path   string
	logger *slog.Logger

	mu      sync.RWMutex
	shows   []*domain.Show
	byID    map[int]*domain.Show
	bySlug  map[string]*domain.Show
	aliases map[string]string
}

// Load reads and indexes the catalog file at path.
func Load(path string, logger *slog.Logger) (*Catalog, error) {
	c := &Catalog{
		path:   path,
		logger: logger,
	}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload re-reads the catalog file and swaps the indexes on success.
// A failed reload leaves the previous catalog contents in place.
func (c *Catalog) Reload() error {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return fmt.Errorf("read catalog file: %w", err)
	}

	var doc file
	if err := toml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse catalog file: %w", err)
	}

	byID := make(map[int]*domain.Show, len(doc.Shows))
	bySlug := make(map[string]*domain.Show, len(doc.Shows))
	for _, show := range doc.Shows {
		if show.ID <= 0 {
			return fmt.Errorf("show %q: missing or invalid id", show.Title)
		}
		if show.Title == "" {
			return fmt.Errorf("show %d: missing title", show.ID)
		}
		if _, exists := byID[show.ID]; exists {
			return fmt.Errorf("duplicate show id %d", show.ID)
		}
		slug := util.Slug(show.Title)
		if other, exists := bySlug[slug]; exists {
			return fmt.Errorf("shows %d and %d share slug %q", other.ID, show.ID, slug)
		}
		for _, ep := range show.Episodes {
			ep.Show = show
		}
		byID[show.ID] = show
		bySlug[slug] = show
	}

	if doc.Aliases == nil {
		doc.Aliases = map[string]string{}
	}

	c.mu.Lock()
	c.shows = doc.Shows
	c.byID = byID
	c.bySlug = bySlug
	c.aliases = doc.Aliases
	c.mu.Unlock()

	c.logger.Info("catalog loaded", "path", c.path, "shows", len(doc.Shows), "aliases", len(doc.Aliases))
	return nil
}

// ShowByID returns the show with the given catalog id.
func (c *Catalog) ShowByID(id int) (*domain.Show, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	show, ok := c.byID[id]
	return show, ok
}

// ShowByName returns the show whose title slugs to the same value as
// name. Titles and free-text names both normalize through util.Slug,
// so "Daily News" and "dailynews" find the same show.
func (c *Catalog) ShowByName(name string) (*domain.Show, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	show, ok := c.bySlug[util.Slug(name)]
	return show, ok
}

// Shows returns all shows in catalog order.
func (c *Catalog) Shows() []*domain.Show {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*domain.Show, len(c.shows))
	copy(out, c.shows)
	return out
}

// Aliases returns a copy of the legacy alias map.
func (c *Catalog) Aliases() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]string, len(c.aliases))
	for k, v := range c.aliases {
		out[k] = v
	}
	return out
}
