package api

import (
	_ "embed"
	"net/http"
)

// style.xsl renders the raw RSS into a readable page when a feed URL
// is opened in a browser instead of a podcast client.
//
//go:embed static/style.xsl
var feedStylesheet []byte

// handleStylesheet serves the embedded feed stylesheet.
func (s *Server) handleStylesheet(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/xsl; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(feedStylesheet)
}
