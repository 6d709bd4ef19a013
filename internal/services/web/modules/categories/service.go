package categories

import (
	"context"
	"fmt"

	"github.com/louisbranch/storyfront/internal/platform/i18n"
	"github.com/louisbranch/storyfront/internal/services/web/content"
	"github.com/louisbranch/storyfront/internal/services/web/platform/contentview"
	webtemplates "github.com/louisbranch/storyfront/internal/services/web/templates"
)

type service struct {
	source content.Source
}

func newService(source content.Source) service {
	return service{source: source}
}

func (s service) category(ctx context.Context, slug string, locale i18n.Locale) (webtemplates.CategoryView, error) {
	category, err := s.source.Category(ctx, slug)
	if err != nil {
		return webtemplates.CategoryView{}, fmt.Errorf("get category %q: %w", slug, err)
	}
	posts, err := s.source.Posts(ctx, content.ListOptions{CategorySlug: category.Slug})
	if err != nil {
		return webtemplates.CategoryView{}, fmt.Errorf("list posts in %q: %w", slug, err)
	}
	summaries, err := contentview.Summaries(ctx, s.source, locale, posts)
	if err != nil {
		return webtemplates.CategoryView{}, err
	}
	return webtemplates.CategoryView{
		Title:       category.Title.In(locale),
		Description: category.Description.In(locale),
		Posts:       summaries,
	}, nil
}
