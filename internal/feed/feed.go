// Package feed renders podcast RSS feeds from catalog shows.
//
// The generator is deliberately narrow: it takes a show, rewrites the
// outbound sound and article URLs through registered hooks, and
// returns the serialized XML. The hooks are the only place feed
// generation touches the redirect store.
package feed

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"time"

	"github.com/podfeedapp/podfeed-server/internal/domain"
)

// RewriteFunc rewrites an outbound original URL to the proxy URL that
// gets embedded in the feed. It receives the episode for context.
type RewriteFunc func(ctx context.Context, originalURL string, ep *domain.Episode) (string, error)

// Generator renders RSS 2.0 feeds with iTunes extensions.
type Generator struct {
	rewriteSound   RewriteFunc
	rewriteArticle RewriteFunc
	logger         *slog.Logger
}

// NewGenerator creates a feed generator. Until hooks are registered,
// original URLs are embedded unchanged.
func NewGenerator(logger *slog.Logger) *Generator {
	return &Generator{logger: logger}
}

// RegisterRedirectHooks installs the URL rewrite hooks. Either hook
// may be nil to leave that link kind unrewritten.
func (g *Generator) RegisterRedirectHooks(sound, article RewriteFunc) {
	g.rewriteSound = sound
	g.rewriteArticle = article
}

// Generate renders the feed XML for a show.
func (g *Generator) Generate(ctx context.Context, show *domain.Show) ([]byte, error) {
	ch := &channel{
		Title:       show.Title,
		Link:        show.Website,
		Description: show.Description,
		Language:    show.Language,
		Author:      show.Author,
		Explicit:    explicitValue(show.Explicit),
	}
	if show.ImageURL != "" {
		ch.Image = &itunesImage{Href: show.ImageURL}
	}

	var newest time.Time
	for _, ep := range show.Episodes {
		item, err := g.renderItem(ctx, ep)
		if err != nil {
			return nil, err
		}
		ch.Items = append(ch.Items, item)
		// Catalog order is not guaranteed; track the latest.
		if item.pubTime.After(newest) {
			newest = item.pubTime
			ch.LastBuildDate = item.PubDate
		}
	}

	doc := rss{
		Version:  "2.0",
		ItunesNS: itunesNamespace,
		Channel:  ch,
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal feed: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.Write(out)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// renderItem renders a single episode, rewriting its outbound URLs.
func (g *Generator) renderItem(ctx context.Context, ep *domain.Episode) (*item, error) {
	soundURL := ep.SoundURL
	if g.rewriteSound != nil {
		rewritten, err := g.rewriteSound(ctx, ep.SoundURL, ep)
		if err != nil {
			return nil, fmt.Errorf("rewrite sound url for %q: %w", ep.GUID, err)
		}
		soundURL = rewritten
	}

	articleURL := ep.ArticleURL
	if articleURL != "" && g.rewriteArticle != nil {
		rewritten, err := g.rewriteArticle(ctx, ep.ArticleURL, ep)
		if err != nil {
			return nil, fmt.Errorf("rewrite article url for %q: %w", ep.GUID, err)
		}
		articleURL = rewritten
	}

	it := &item{
		Title:       ep.Title,
		Link:        articleURL,
		Description: ep.Description,
		GUID:        guid{IsPermaLink: false, Value: ep.GUID},
		PubDate:     ep.PublishedAt.UTC().Format(time.RFC1123Z),
		pubTime:     ep.PublishedAt,
		Enclosure: &enclosure{
			URL:    soundURL,
			Length: ep.ByteSize,
			Type:   "audio/mpeg",
		},
	}
	if ep.DurationSec > 0 {
		it.Duration = formatDuration(ep.DurationSec)
	}
	return it, nil
}

// InjectStylesheet inserts an xml-stylesheet processing instruction
// after the XML declaration so browsers render the feed readably.
func InjectStylesheet(feedXML []byte, href string) []byte {
	pi := fmt.Sprintf("<?xml-stylesheet type=\"text/xsl\" href=\"%s\"?>\n", href)
	idx := bytes.IndexByte(feedXML, '\n')
	if idx < 0 {
		return append([]byte(pi), feedXML...)
	}
	var buf bytes.Buffer
	buf.Grow(len(feedXML) + len(pi))
	buf.Write(feedXML[:idx+1])
	buf.WriteString(pi)
	buf.Write(feedXML[idx+1:])
	return buf.Bytes()
}

// formatDuration renders seconds as HH:MM:SS.
func formatDuration(sec int) string {
	return fmt.Sprintf("%02d:%02d:%02d", sec/3600, sec%3600/60, sec%60)
}

func explicitValue(explicit bool) string {
	if explicit {
		return "yes"
	}
	return "no"
}
