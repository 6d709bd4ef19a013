package i18n

// Overrides maps a locale to its translation of one field. A nil or empty
// map is valid and means the field has no translations.
type Overrides map[Locale]string

// Resolve returns the non-empty override for locale, or fallback when the
// map is absent, lacks the locale, or holds an empty string for it.
func Resolve(overrides Overrides, fallback string, locale Locale) string {
	if value := overrides[locale]; value != "" {
		return value
	}
	return fallback
}

// Text is a field authored in the base language with optional translations.
type Text struct {
	Default   string
	Overrides Overrides
}

// Plain returns a Text without translations.
func Plain(value string) Text {
	return Text{Default: value}
}

// In resolves t for locale.
func (t Text) In(locale Locale) string {
	return Resolve(t.Overrides, t.Default, locale)
}

// IsZero reports whether t carries no text in any locale.
func (t Text) IsZero() bool {
	if t.Default != "" {
		return false
	}
	for _, value := range t.Overrides {
		if value != "" {
			return false
		}
	}
	return true
}
