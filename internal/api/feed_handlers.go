package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/podfeedapp/podfeed-server/internal/catalog"
	"github.com/podfeedapp/podfeed-server/internal/domain"
	"github.com/podfeedapp/podfeed-server/internal/feed"
	"github.com/podfeedapp/podfeed-server/internal/http/response"
)

// stylesheetPath is where handleStylesheet serves the feed XSL.
const stylesheetPath = "/static/style.xsl"

// resolveShowToken resolves a path token to a show and writes the
// error response on failure. Returns nil when a response was written.
func (s *Server) resolveShowToken(w http.ResponseWriter, token string, strict bool) *domain.Show {
	show, err := s.feeds.ResolveShow(token, strict)
	if err == nil {
		return show
	}
	if errors.Is(err, catalog.ErrShowNotFound) {
		response.NotFound(w, "show not found", s.logger)
		return nil
	}
	if errors.Is(err, catalog.ErrResolveLoop) {
		// Alias map misconfiguration, not a client problem.
		s.logger.Error("alias resolution loop", "token", token)
		response.InternalError(w, "show resolution failed", s.logger)
		return nil
	}
	s.logger.Error("show resolution failed", "token", token, "error", err)
	response.InternalError(w, "show resolution failed", s.logger)
	return nil
}

// handleFeed serves a show's feed XML. Requests using a non-canonical
// token (show id or legacy alias) are redirected to the slug URL.
func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "show")

	show := s.resolveShowToken(w, token, false)
	if show == nil {
		return
	}

	if token != s.feeds.FeedSlug(show) {
		http.Redirect(w, r, s.feeds.FeedURL(show), http.StatusFound)
		return
	}

	feedXML, err := s.feeds.FeedXML(r.Context(), show)
	if err != nil {
		s.logger.Error("feed generation failed", "show", show.ID, "error", err)
		response.HandleError(w, err, s.logger)
		return
	}
	feedXML = feed.InjectStylesheet(feedXML, stylesheetPath)

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	// Feeds are pull-polled by podcast clients; an hour of caching is plenty fresh.
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(feedXML); err != nil {
		s.logger.Error("failed to write feed response", "error", err)
	}
}

// handleEpisodeRedirect sends the client to the original sound URL
// behind a proxy code.
func (s *Server) handleEpisodeRedirect(w http.ResponseWriter, r *http.Request) {
	if show := s.resolveShowToken(w, chi.URLParam(r, "show"), false); show == nil {
		return
	}

	target, err := s.feeds.EpisodeTarget(r.Context(), chi.URLParam(r, "episode"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// handleArticleRedirect sends the client to the original article URL
// behind a proxy code.
func (s *Server) handleArticleRedirect(w http.ResponseWriter, r *http.Request) {
	if show := s.resolveShowToken(w, chi.URLParam(r, "show"), false); show == nil {
		return
	}

	target, err := s.feeds.ArticleTarget(r.Context(), chi.URLParam(r, "article"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// handleHomepage redirects to the official website.
func (s *Server) handleHomepage(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, s.officialWebsite, http.StatusFound)
}
