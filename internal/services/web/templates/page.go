package templates

import (
	"time"

	"github.com/louisbranch/storyfront/internal/platform/consent"
	"github.com/louisbranch/storyfront/internal/platform/i18n"
)

// PageContext provides shared layout context for pages.
type PageContext struct {
	Locale          i18n.Locale
	Loc             Localizer
	Title           string
	Description     string
	CurrentPath     string
	CurrentQuery    string
	GoogleTagID     string
	Year            int
	LanguageOptions []LanguageOption
	Consent         ConsentView
}

// LanguageOption is one entry of the language switch.
type LanguageOption struct {
	Code   string
	Label  string
	URL    string
	Active bool
}

// ConsentView carries the visitor's consent state into the layout.
type ConsentView struct {
	// Prompt shows the consent banner. It is true while no choice is
	// persisted.
	Prompt      bool
	PromptDelay time.Duration
	Signal      consent.Signal
}

// ReturnTo is the local URL consent forms redirect back to.
func (p PageContext) ReturnTo() string {
	path := p.CurrentPath
	if path == "" {
		path = "/"
	}
	if p.CurrentQuery == "" {
		return path
	}
	return path + "?" + p.CurrentQuery
}

func (p PageContext) documentTitle() string {
	name := T(p.Loc, "site.name")
	if p.Title == "" || p.Title == name {
		return name
	}
	return p.Title + " · " + name
}
