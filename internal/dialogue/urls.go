package dialogue

import (
	"net/http"
	"strings"
)

// publicURL computes the externally reachable absolute URL for path. The
// platform calls back over the public internet, so relative or internal
// addresses are useless to it. An explicit override wins; otherwise the
// forwarded host and proto header pair set by a reverse proxy is preferred,
// falling back to the request's own host and scheme.
func publicURL(r *http.Request, override, path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	if override != "" {
		return strings.TrimRight(override, "/") + path
	}

	host := r.Header.Get("X-Forwarded-Host")
	scheme := r.Header.Get("X-Forwarded-Proto")
	if host == "" || scheme == "" {
		host = r.Host
		scheme = "http"
		if r.TLS != nil {
			scheme = "https"
		}
	}

	return scheme + "://" + strings.TrimRight(host, "/") + path
}
