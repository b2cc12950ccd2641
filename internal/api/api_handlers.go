package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

const apiHelpText = `<pre>
podfeed API

GET /api/url/&lt;show&gt;   feed URL for an existing show (id, name, or alias)
GET /api/slug/&lt;name&gt;  feed URL a show with the given name would get

Responses are plain text: the URL, nothing else.
</pre>`

const apiURLHelpText = `<pre>
GET /api/url/&lt;show&gt;

Returns the canonical feed URL for a show. The show may be given by
numeric id, by name in any casing or spelling, or by a legacy alias.
404 when no such show exists.
</pre>`

const apiSlugHelpText = `<pre>
GET /api/slug/&lt;name&gt;

Returns the feed URL a show named &lt;name&gt; would be served under. The
show does not have to exist; this predicts the slug only.
</pre>`

func writeHelp(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(text))
}

func writePlain(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(text))
}

// handleAPIHelp describes the API surface.
func (s *Server) handleAPIHelp(w http.ResponseWriter, _ *http.Request) {
	writeHelp(w, apiHelpText)
}

// handleAPIURLHelp describes the url endpoint.
func (s *Server) handleAPIURLHelp(w http.ResponseWriter, _ *http.Request) {
	writeHelp(w, apiURLHelpText)
}

// handleAPIURL returns the canonical feed URL for an existing show.
func (s *Server) handleAPIURL(w http.ResponseWriter, r *http.Request) {
	show := s.resolveShowToken(w, chi.URLParam(r, "show"), false)
	if show == nil {
		return
	}
	writePlain(w, s.feeds.FeedURL(show))
}

// handleAPISlugHelp describes the slug endpoint.
func (s *Server) handleAPISlugHelp(w http.ResponseWriter, _ *http.Request) {
	writeHelp(w, apiSlugHelpText)
}

// handleAPISlug predicts the feed URL for a show name without
// requiring the show to exist.
func (s *Server) handleAPISlug(w http.ResponseWriter, r *http.Request) {
	writePlain(w, s.feeds.PredictedFeedURL(chi.URLParam(r, "name")))
}
