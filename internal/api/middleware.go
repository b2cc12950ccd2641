package api

import (
	"net"
	"net/http"

	"github.com/podfeedapp/podfeed-server/internal/http/response"
)

// canonicalURL redirects any request whose URL differs from its
// canonical form (currently: carries a query string) to the bare path
// before routing. Podcast clients sometimes append cache-busting
// parameters; a permanent redirect keeps the published URLs stable.
func (s *Server) canonicalURL(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "" {
			http.Redirect(w, r, r.URL.Path, http.StatusMovedPermanently)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// rateLimit applies per-client token bucket limiting on the API routes.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientIP(r)
		if !s.limiter.Allow(key) {
			s.logger.Warn("API rate limit exceeded", "client", key)
			response.Error(w, http.StatusTooManyRequests, "rate limit exceeded", s.logger)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP extracts the client address set by the RealIP middleware.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
