package home

import (
	"context"
	"fmt"

	"github.com/louisbranch/storyfront/internal/platform/i18n"
	"github.com/louisbranch/storyfront/internal/services/web/content"
	"github.com/louisbranch/storyfront/internal/services/web/platform/contentview"
	webtemplates "github.com/louisbranch/storyfront/internal/services/web/templates"
)

const latestPostLimit = 3

type service struct {
	source content.Source
}

func newService(source content.Source) service {
	return service{source: source}
}

func (s service) home(ctx context.Context, locale i18n.Locale) (webtemplates.HomeView, error) {
	posts, err := s.source.Posts(ctx, content.ListOptions{Limit: latestPostLimit})
	if err != nil {
		return webtemplates.HomeView{}, fmt.Errorf("list latest posts: %w", err)
	}
	latest, err := contentview.Summaries(ctx, s.source, locale, posts)
	if err != nil {
		return webtemplates.HomeView{}, err
	}
	categories, err := s.source.Categories(ctx)
	if err != nil {
		return webtemplates.HomeView{}, fmt.Errorf("list categories: %w", err)
	}
	view := webtemplates.HomeView{Latest: latest}
	for _, category := range categories {
		view.Categories = append(view.Categories, contentview.CategoryLink(category, locale))
	}
	return view, nil
}
