package authors

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

func (s service) author(ctx context.Context, slug string, locale i18n.Locale) (webtemplates.AuthorView, error) {
	author, err := s.source.Author(ctx, slug)
	if err != nil {
		return webtemplates.AuthorView{}, fmt.Errorf("get author %q: %w", slug, err)
	}
	posts, err := s.source.Posts(ctx, content.ListOptions{AuthorSlug: author.Slug})
	if err != nil {
		return webtemplates.AuthorView{}, fmt.Errorf("list posts by %q: %w", slug, err)
	}
	summaries, err := contentview.Summaries(ctx, s.source, locale, posts)
	if err != nil {
		return webtemplates.AuthorView{}, err
	}
	return webtemplates.AuthorView{
		Name:     author.Name,
		Bio:      author.Bio.In(locale),
		ImageURL: author.ImageURL,
		Posts:    summaries,
	}, nil
}
