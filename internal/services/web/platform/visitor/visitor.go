// Package visitor assigns each browser a stable anonymous id. The id
// partitions consent storage and keys analytics captures.
package visitor

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/louisbranch/storyfront/internal/services/web/platform/requestmeta"
)

// CookieName stores the visitor id.
const CookieName = "sf_visitor"

const cookieMaxAge = 2 * 365 * 24 * time.Hour

// Lookup returns the visitor id carried by r, if it is a valid UUID.
func Lookup(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", false
	}
	id, err := uuid.Parse(strings.TrimSpace(cookie.Value))
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// Ensure returns the visitor id for r, issuing a new one when missing.
func Ensure(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy) string {
	if id, ok := Lookup(r); ok {
		return id
	}
	id := uuid.NewString()
	if w != nil {
		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    id,
			Path:     "/",
			MaxAge:   int(cookieMaxAge.Seconds()),
			HttpOnly: true,
			Secure:   requestmeta.IsHTTPS(r, policy),
			SameSite: http.SameSiteLaxMode,
		})
	}
	return id
}
