// Package routepath stores canonical HTTP paths for web modules.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root             = "/"
	HomeExact        = "/{$}"
	PagePattern      = "/{slug}"
	BlogPrefix       = "/blog/"
	BlogPostPattern  = BlogPrefix + "{slug}"
	AuthorsPrefix    = "/authors/"
	AuthorPattern    = AuthorsPrefix + "{slug}"
	CategoriesPrefix = "/categories/"
	CategoryPattern  = CategoriesPrefix + "{slug}"
	ConsentPrefix    = "/consent/"
	ConsentAccept    = "/consent/accept"
	ConsentReject    = "/consent/reject"
	ConsentEvents    = "/consent/events"
	StaticPrefix     = "/static/"
	Metrics          = "/metrics"
	Health           = "/healthz"
)

// BlogPost returns the post detail route.
func BlogPost(slug string) string {
	return BlogPrefix + escapeSegment(slug)
}

// Author returns the author route.
func Author(slug string) string {
	return AuthorsPrefix + escapeSegment(slug)
}

// Category returns the category route.
func Category(slug string) string {
	return CategoriesPrefix + escapeSegment(slug)
}

// Page returns the CMS page route.
func Page(slug string) string {
	return Root + escapeSegment(slug)
}

// Static returns the route of an embedded asset.
func Static(name string) string {
	return StaticPrefix + strings.TrimLeft(name, "/")
}

// IsLocalRedirect reports whether target is a same-site path safe to
// redirect to.
func IsLocalRedirect(target string) bool {
	target = strings.TrimSpace(target)
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return false
	}
	parsed, err := url.Parse(target)
	if err != nil {
		return false
	}
	return parsed.Scheme == "" && parsed.Host == ""
}

func escapeSegment(raw string) string {
	return url.PathEscape(strings.TrimSpace(raw))
}
