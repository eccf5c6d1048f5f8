package clientip

import (
	"net"
	"net/http"
	"strings"
)

// FromRequest returns the client IP from the request.
// Uses r.RemoteAddr only (no proxy headers); use for rate limiting and
// logging when traffic reaches the app directly.
func FromRequest(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return strings.TrimSpace(host)
}
