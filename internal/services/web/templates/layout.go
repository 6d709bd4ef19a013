package templates

import (
	"context"
	"encoding/json"
	"io"
	"strconv"

	"github.com/a-h/templ"
	"github.com/louisbranch/storyfront/internal/services/web/routepath"
)

const googleTagScriptURL = "https://www.googletagmanager.com/gtag/js?id="

// Layout renders the document shell around its templ children.
func Layout(page PageContext) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := newMarkup(w)
		m.raw("<!doctype html>")
		m.open("html", "lang", page.Locale.Tag().String())
		m.raw("<head>", `<meta charset="utf-8">`, `<meta name="viewport" content="width=device-width, initial-scale=1">`)
		m.element("title", page.documentTitle())
		if page.Description != "" {
			m.open("meta", "name", "description", "content", page.Description)
		}
		m.open("link", "rel", "stylesheet", "href", routepath.Static("site.css"))
		if err := writeGoogleTag(m, page); err != nil {
			return err
		}
		m.open("script", "src", routepath.Static("site.js"), "defer", "defer")
		m.close("script")
		m.raw("</head>")

		m.open("body", "data-consent-events", routepath.ConsentEvents)
		writeHeader(m, page)
		m.open("main", "class", "site-main")
		m.component(ctx, templ.GetChildren(ctx))
		m.close("main")
		m.open("footer", "class", "site-footer")
		m.element("p", T(page.Loc, "site.footer", strconv.Itoa(page.Year)))
		m.close("footer")
		label := T(page.Loc, "site.scroll_top")
		m.open("button", "type", "button", "class", "scroll-top", "data-scroll-top", "", "aria-label", label, "title", label, "hidden", "")
		m.raw("&uarr;")
		m.close("button")
		if page.Consent.Prompt {
			writeConsentBanner(m, page)
		}
		m.raw("</body></html>")
		return m.err
	})
}

func writeHeader(m *markup, page PageContext) {
	m.open("header", "class", "site-header")
	m.element("a", T(page.Loc, "site.name"), "class", "brand", "href", routepath.Root)
	m.open("nav", "class", "site-nav")
	m.element("a", T(page.Loc, "site.nav.home"), "href", routepath.Root)
	m.element("a", T(page.Loc, "site.nav.blog"), "href", routepath.BlogPrefix)
	m.close("nav")
	if len(page.LanguageOptions) > 0 {
		m.open("nav", "class", "lang-switch", "aria-label", T(page.Loc, "site.nav.language"))
		for _, option := range page.LanguageOptions {
			m.element("a", option.Label,
				"href", option.URL,
				"hreflang", option.Code,
				attrIf(option.Active, "aria-current"), "true",
			)
		}
		m.close("nav")
	}
	m.close("header")
}

func writeGoogleTag(m *markup, page PageContext) error {
	if page.GoogleTagID == "" {
		return nil
	}
	defaults, err := json.Marshal(page.Consent.Signal)
	if err != nil {
		return err
	}
	tagID, err := json.Marshal(page.GoogleTagID)
	if err != nil {
		return err
	}
	m.open("script", "async", "async", "src", googleTagScriptURL+page.GoogleTagID)
	m.close("script")
	m.raw("<script>",
		"window.dataLayer=window.dataLayer||[];function gtag(){dataLayer.push(arguments);}",
		"gtag('consent','default',", string(defaults), ");",
		"gtag('js',new Date());gtag('config',", string(tagID), ");",
		"</script>")
	return nil
}

func writeConsentBanner(m *markup, page PageContext) {
	m.open("section",
		"class", "consent-banner",
		"data-consent-banner", "",
		"data-prompt-delay", strconv.FormatInt(page.Consent.PromptDelay.Milliseconds(), 10),
		"role", "dialog",
		"aria-labelledby", "consent-title",
		"hidden", "",
	)
	m.element("h2", T(page.Loc, "consent.title"), "id", "consent-title")
	m.element("p", T(page.Loc, "consent.message"))
	m.open("div", "class", "consent-actions")
	writeConsentForm(m, page, routepath.ConsentAccept, T(page.Loc, "consent.accept"), "primary")
	writeConsentForm(m, page, routepath.ConsentReject, T(page.Loc, "consent.reject"), "secondary")
	m.close("div")
	m.close("section")
}

func writeConsentForm(m *markup, page PageContext, action, label, class string) {
	m.open("form", "method", "post", "action", action, "data-consent-form", "")
	m.open("input", "type", "hidden", "name", "return_to", "value", page.ReturnTo())
	m.element("button", label, "type", "submit", "class", class)
	m.close("form")
}
