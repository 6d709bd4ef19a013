// Package langpref resolves the request locale and builds language switch
// links.
package langpref

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/louisbranch/storyfront/internal/platform/i18n"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the visitor's language preference.
	LangCookieName = "sf_lang"
)

// Source names where a resolved locale came from.
type Source string

const (
	SourceQuery   Source = "query"
	SourceCookie  Source = "cookie"
	SourceHeader  Source = "header"
	SourceDefault Source = "default"
)

// Resolve determines the locale for r: a supported lang query, then the
// preference cookie, then the first Accept-Language token, then the default.
func Resolve(r *http.Request) (i18n.Locale, Source) {
	if r == nil {
		return i18n.Default(), SourceDefault
	}
	if r.URL != nil {
		if value := strings.TrimSpace(r.URL.Query().Get(LangParam)); value != "" {
			if locale, ok := i18n.ParseLocale(value); ok {
				return locale, SourceQuery
			}
		}
	}
	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if locale, ok := i18n.ParseLocale(cookie.Value); ok {
			return locale, SourceCookie
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		return i18n.Detect(accept), SourceHeader
	}
	return i18n.Default(), SourceDefault
}

// ResolveAndPersist resolves the locale and stores a query selection in the
// preference cookie.
func ResolveAndPersist(w http.ResponseWriter, r *http.Request) i18n.Locale {
	locale, source := Resolve(r)
	if source == SourceQuery {
		SetLanguageCookie(w, locale)
	}
	return locale
}

// SetLanguageCookie persists the selected locale on the response.
func SetLanguageCookie(w http.ResponseWriter, locale i18n.Locale) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    locale.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Option is one entry of the language switch.
type Option struct {
	Locale i18n.Locale
	Label  string
	URL    string
	Active bool
}

// Options builds the language switch for the current path and query.
func Options(active i18n.Locale, path string, rawQuery string, label func(i18n.Locale) string) []Option {
	supported := i18n.Supported()
	options := make([]Option, 0, len(supported))
	for _, locale := range supported {
		text := locale.String()
		if label != nil {
			if resolved := strings.TrimSpace(label(locale)); resolved != "" {
				text = resolved
			}
		}
		options = append(options, Option{
			Locale: locale,
			Label:  text,
			URL:    LanguageURL(path, rawQuery, locale),
			Active: locale == active,
		})
	}
	return options
}

// LanguageURL returns path with the lang param set to locale, keeping the
// rest of the query.
func LanguageURL(path string, rawQuery string, locale i18n.Locale) string {
	path = strings.TrimSpace(path)
	if path == "" {
		path = "/"
	}
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		query = url.Values{}
	}
	query.Set(LangParam, locale.String())
	return (&url.URL{Path: path, RawQuery: query.Encode()}).String()
}
