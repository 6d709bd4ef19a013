package templates

import (
	"fmt"
	"time"

	"github.com/louisbranch/storyfront/internal/platform/i18n"
)

var portugueseMonths = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// FormatDate renders a publication date in the locale's long form.
func FormatDate(t time.Time, locale i18n.Locale) string {
	if t.IsZero() {
		return ""
	}
	t = t.UTC()
	switch locale {
	case i18n.BrazilianPortuguese:
		return fmt.Sprintf("%d de %s de %d", t.Day(), portugueseMonths[t.Month()-1], t.Year())
	default:
		return t.Format("January 2, 2006")
	}
}
