package pages

import (
	"context"
	"fmt"

	"github.com/louisbranch/storyfront/internal/platform/i18n"
	"github.com/louisbranch/storyfront/internal/services/web/content"
	webtemplates "github.com/louisbranch/storyfront/internal/services/web/templates"
)

type service struct {
	source content.Source
}

func newService(source content.Source) service {
	return service{source: source}
}

type page struct {
	view        webtemplates.PageView
	description string
}

func (s service) page(ctx context.Context, slug string, locale i18n.Locale) (page, error) {
	record, err := s.source.Page(ctx, slug)
	if err != nil {
		return page{}, fmt.Errorf("get page %q: %w", slug, err)
	}
	return page{
		view:        webtemplates.PageView{Title: record.Title.In(locale), Body: record.Body.In(locale)},
		description: record.Description.In(locale),
	}, nil
}
