package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/louisbranch/storyfront/internal/platform/i18n"
	"github.com/louisbranch/storyfront/internal/platform/i18n/catalog"
	"github.com/louisbranch/storyfront/internal/services/web/routepath"
)

// NotFoundKind names the content kind a missing-record view describes.
type NotFoundKind string

const (
	NotFoundPage     NotFoundKind = "page"
	NotFoundPost     NotFoundKind = "post"
	NotFoundAuthor   NotFoundKind = "author"
	NotFoundCategory NotFoundKind = "category"
)

// NotFoundConfig parameterizes the not-found view. Each text field is the
// base-language default; the *I18n maps hold per-locale overrides.
type NotFoundConfig struct {
	Title    string
	Message  string
	LinkHref string
	LinkText string

	TitleI18n    i18n.Overrides
	MessageI18n  i18n.Overrides
	LinkTextI18n i18n.Overrides
}

// NotFoundFor builds the config of kind from the catalog's notfound
// namespace. Unknown kinds fall back to the page copy.
func NotFoundFor(kind NotFoundKind, bundle *catalog.Bundle) NotFoundConfig {
	href := routepath.BlogPrefix
	switch kind {
	case NotFoundPost, NotFoundAuthor, NotFoundCategory:
	default:
		kind = NotFoundPage
		href = routepath.Root
	}
	if bundle == nil {
		bundle = catalog.Default()
	}
	prefix := "notfound." + string(kind) + "."
	title := bundle.Text(prefix + "title")
	message := bundle.Text(prefix + "message")
	linkText := bundle.Text(prefix + "link_text")
	return NotFoundConfig{
		Title:        title.Default,
		Message:      message.Default,
		LinkHref:     href,
		LinkText:     linkText.Default,
		TitleI18n:    title.Overrides,
		MessageI18n:  message.Overrides,
		LinkTextI18n: linkText.Overrides,
	}
}

// Heading returns the resolved title for locale.
func (c NotFoundConfig) Heading(locale i18n.Locale) string {
	return i18n.Resolve(c.TitleI18n, c.Title, locale)
}

// NotFound renders the informational view for a missing record.
func NotFound(cfg NotFoundConfig, locale i18n.Locale) templ.Component {
	return notice("not-found",
		cfg.Heading(locale),
		i18n.Resolve(cfg.MessageI18n, cfg.Message, locale),
		cfg.LinkHref,
		i18n.Resolve(cfg.LinkTextI18n, cfg.LinkText, locale),
	)
}

// ServerError renders the failure view shown for 5xx responses.
func ServerError(loc Localizer) templ.Component {
	return notice("server-error",
		T(loc, "error.server.title"),
		T(loc, "error.server.message"),
		routepath.Root,
		T(loc, "error.server.link_text"),
	)
}

func notice(class, title, message, href, linkText string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		m := newMarkup(w)
		m.open("section", "class", "notice "+class)
		m.element("h1", title)
		if message != "" {
			m.element("p", message)
		}
		if href != "" {
			m.element("a", linkText, "class", "notice-link", "href", href)
		}
		m.close("section")
		return m.err
	})
}
