// Package service wires the catalog, feed generator, and redirect
// store into the operations the HTTP layer exposes.
package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/podfeedapp/podfeed-server/internal/catalog"
	"github.com/podfeedapp/podfeed-server/internal/domain"
	"github.com/podfeedapp/podfeed-server/internal/feed"
	"github.com/podfeedapp/podfeed-server/internal/store"
	"github.com/podfeedapp/podfeed-server/internal/util"
)

// FeedService resolves shows and renders their feeds with stable
// redirect links.
type FeedService struct {
	resolver  *catalog.Resolver
	generator *feed.Generator
	redirects store.RedirectStore
	baseURL   string
	logger    *slog.Logger
}

// NewFeedService creates the feed service and installs the redirect
// hooks on the generator. The hooks are the sole write path into the
// redirect store.
func NewFeedService(resolver *catalog.Resolver, generator *feed.Generator, redirects store.RedirectStore, baseURL string, logger *slog.Logger) *FeedService {
	s := &FeedService{
		resolver:  resolver,
		generator: generator,
		redirects: redirects,
		baseURL:   strings.TrimRight(baseURL, "/"),
		logger:    logger,
	}
	generator.RegisterRedirectHooks(s.rewriteSoundURL, s.rewriteArticleURL)
	return s
}

// ResolveShow maps a user-supplied show token to a show.
func (s *FeedService) ResolveShow(token string, strict bool) (*domain.Show, error) {
	return s.resolver.Resolve(token, strict)
}

// FeedSlug returns the canonical feed slug for a show.
func (s *FeedService) FeedSlug(show *domain.Show) string {
	return util.Slug(show.Title)
}

// FeedURL returns the canonical feed URL for a show.
func (s *FeedService) FeedURL(show *domain.Show) string {
	return s.baseURL + "/" + s.FeedSlug(show)
}

// PredictedFeedURL returns the feed URL a show with the given name
// would get, without requiring the show to exist.
func (s *FeedService) PredictedFeedURL(name string) string {
	return s.baseURL + "/" + util.Slug(name)
}

// FeedXML renders the feed for a show. Outbound URLs are replaced by
// proxy URLs, creating redirect entries on first use.
func (s *FeedService) FeedXML(ctx context.Context, show *domain.Show) ([]byte, error) {
	return s.generator.Generate(ctx, show)
}

// EpisodeTarget recovers the original sound URL for a proxy code.
func (s *FeedService) EpisodeTarget(ctx context.Context, proxy string) (string, error) {
	return s.redirects.ResolveOriginal(ctx, store.KindSound, proxy)
}

// ArticleTarget recovers the original article URL for a proxy code.
func (s *FeedService) ArticleTarget(ctx context.Context, proxy string) (string, error) {
	return s.redirects.ResolveOriginal(ctx, store.KindArticle, proxy)
}

// rewriteSoundURL is the generator hook for enclosure URLs.
func (s *FeedService) rewriteSoundURL(ctx context.Context, original string, ep *domain.Episode) (string, error) {
	code, err := s.redirects.GetOrCreateProxy(ctx, store.KindSound, original)
	if err != nil {
		return "", err
	}
	return s.baseURL + "/episode/" + util.Slug(ep.Show.Title) + "/" + code, nil
}

// rewriteArticleURL is the generator hook for article links.
func (s *FeedService) rewriteArticleURL(ctx context.Context, original string, ep *domain.Episode) (string, error) {
	code, err := s.redirects.GetOrCreateProxy(ctx, store.KindArticle, original)
	if err != nil {
		return "", err
	}
	return s.baseURL + "/artikkel/" + util.Slug(ep.Show.Title) + "/" + code, nil
}
