// Package i18n resolves display text for the site's supported locales.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Locale identifies a supported content language, such as "en" or "pt_BR".
type Locale string

const (
	// English is the base language every content field is authored in.
	English Locale = "en"
	// BrazilianPortuguese is the first translated locale.
	BrazilianPortuguese Locale = "pt_BR"
)

var supported = []Locale{English, BrazilianPortuguese}

var supportedTags = []language.Tag{language.English, language.BrazilianPortuguese}

var matcher = language.NewMatcher(supportedTags)

// Default returns the base locale.
func Default() Locale {
	return English
}

// Supported returns every supported locale with the base locale first.
func Supported() []Locale {
	out := make([]Locale, len(supported))
	copy(out, supported)
	return out
}

// IsSupported reports whether l is one of the supported locales.
func (l Locale) IsSupported() bool {
	for _, candidate := range supported {
		if candidate == l {
			return true
		}
	}
	return false
}

// String returns the locale code.
func (l Locale) String() string {
	return string(l)
}

// Tag returns the BCP 47 tag for l, used for html lang attributes and
// message printers. Unsupported locales map to the base language.
func (l Locale) Tag() language.Tag {
	switch l {
	case BrazilianPortuguese:
		return language.BrazilianPortuguese
	default:
		return language.English
	}
}

// ForTag maps a matched language tag back to a supported locale.
func ForTag(tag language.Tag) Locale {
	base, _ := tag.Base()
	if base.String() == "pt" {
		return BrazilianPortuguese
	}
	return English
}

// ParseLocale resolves an explicit user selection (query parameter or
// cookie) to a supported locale. Both "pt_BR" and "pt-BR" spellings are
// accepted. The bool is false when the value names no supported locale.
func ParseLocale(value string) (Locale, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Default(), false
	}
	if candidate := Locale(value); candidate.IsSupported() {
		return candidate, true
	}
	tag, err := language.Parse(strings.ReplaceAll(value, "_", "-"))
	if err != nil {
		return Default(), false
	}
	_, idx, confidence := matcher.Match(tag)
	if confidence == language.No {
		return Default(), false
	}
	return ForTag(supportedTags[idx]), true
}

// Detect derives the locale from an Accept-Language header value. Only the
// first preference token is consulted and its quality weight is ignored: any
// "pt" variant selects BrazilianPortuguese, everything else (including an
// empty header) selects English.
func Detect(acceptLanguage string) Locale {
	first, _, _ := strings.Cut(acceptLanguage, ",")
	first, _, _ = strings.Cut(first, ";")
	first = strings.ToLower(strings.TrimSpace(first))
	if strings.HasPrefix(first, "pt") {
		return BrazilianPortuguese
	}
	return English
}
