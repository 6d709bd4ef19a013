// Package requestmeta resolves request scheme, origin, and full URLs.
package requestmeta

import (
	"net/http"
	"net/url"
	"strings"
)

// SchemePolicy controls how the request scheme is resolved.
// X-Forwarded-Proto is only honoured when TrustForwardedProto is set.
type SchemePolicy struct {
	TrustForwardedProto bool
}

// Scheme returns "https" or "http" for r.
func Scheme(r *http.Request, policy SchemePolicy) string {
	if r == nil {
		return "http"
	}
	if policy.TrustForwardedProto {
		if forwarded := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto"))); forwarded == "http" || forwarded == "https" {
			return forwarded
		}
	}
	if r.URL != nil {
		if scheme := strings.ToLower(r.URL.Scheme); scheme == "http" || scheme == "https" {
			return scheme
		}
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

// IsHTTPS reports whether r should be treated as HTTPS.
func IsHTTPS(r *http.Request, policy SchemePolicy) bool {
	return Scheme(r, policy) == "https"
}

// Origin returns scheme://host for r.
func Origin(r *http.Request, policy SchemePolicy) string {
	if r == nil {
		return ""
	}
	host := strings.TrimSpace(r.Host)
	if host == "" && r.URL != nil {
		host = r.URL.Host
	}
	if host == "" {
		return ""
	}
	return Scheme(r, policy) + "://" + host
}

// CurrentURL returns the full URL of r: origin, path and query string. A
// non-empty siteURL replaces the request origin.
func CurrentURL(r *http.Request, policy SchemePolicy, siteURL string) string {
	if r == nil || r.URL == nil {
		return strings.TrimRight(siteURL, "/")
	}
	origin := strings.TrimRight(strings.TrimSpace(siteURL), "/")
	if origin == "" {
		origin = Origin(r, policy)
	}
	target := r.URL.EscapedPath()
	if target == "" {
		target = "/"
	}
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	return origin + target
}

// HasSameOriginProof reports whether the Origin header, or the Referer when
// Origin is absent, names the same scheme, host and port as r.
func HasSameOriginProof(r *http.Request, policy SchemePolicy) bool {
	if r == nil {
		return false
	}
	claimed := strings.TrimSpace(r.Header.Get("Origin"))
	if claimed == "" {
		claimed = strings.TrimSpace(r.Header.Get("Referer"))
	}
	if claimed == "" {
		return false
	}
	want, ok := parseOrigin(Origin(r, policy))
	if !ok {
		return false
	}
	got, ok := parseOrigin(claimed)
	if !ok {
		return false
	}
	return got == want
}

type originParts struct {
	scheme string
	host   string
	port   string
}

func parseOrigin(raw string) (originParts, bool) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return originParts{}, false
	}
	parts := originParts{
		scheme: strings.ToLower(parsed.Scheme),
		host:   strings.ToLower(parsed.Hostname()),
		port:   parsed.Port(),
	}
	if parts.scheme == "" || parts.host == "" {
		return originParts{}, false
	}
	if parts.port == "" {
		switch parts.scheme {
		case "https":
			parts.port = "443"
		case "http":
			parts.port = "80"
		default:
			return originParts{}, false
		}
	}
	return parts, true
}
