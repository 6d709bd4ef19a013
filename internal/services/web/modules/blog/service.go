package blog

import (
	"context"
	"errors"
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

func (s service) index(ctx context.Context, locale i18n.Locale) ([]webtemplates.PostSummary, error) {
	posts, err := s.source.Posts(ctx, content.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return contentview.Summaries(ctx, s.source, locale, posts)
}

func (s service) post(ctx context.Context, slug string, locale i18n.Locale) (webtemplates.PostView, error) {
	post, err := s.source.Post(ctx, slug)
	if err != nil {
		return webtemplates.PostView{}, fmt.Errorf("get post %q: %w", slug, err)
	}
	summaries, err := contentview.Summaries(ctx, s.source, locale, []content.Post{post})
	if err != nil {
		return webtemplates.PostView{}, err
	}
	if len(summaries) != 1 {
		return webtemplates.PostView{}, errors.New("post summary is missing")
	}
	return webtemplates.PostView{PostSummary: summaries[0], Body: post.Body.In(locale)}, nil
}
