// Package contentview resolves content records into localized template
// views.
package contentview

import (
	"context"
	"errors"
	"fmt"

	"github.com/louisbranch/storyfront/internal/platform/i18n"
	"github.com/louisbranch/storyfront/internal/services/web/content"
	"github.com/louisbranch/storyfront/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/storyfront/internal/services/web/templates"
)

// Summaries resolves posts for locale, linking each to its author and
// categories. A dangling author reference leaves the byline empty.
func Summaries(ctx context.Context, source content.Source, locale i18n.Locale, posts []content.Post) ([]webtemplates.PostSummary, error) {
	if len(posts) == 0 {
		return nil, nil
	}
	categories, err := source.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	bySlug := make(map[string]content.Category, len(categories))
	for _, category := range categories {
		bySlug[category.Slug] = category
	}

	authors := map[string]content.Author{}
	out := make([]webtemplates.PostSummary, 0, len(posts))
	for _, post := range posts {
		author, ok := authors[post.AuthorSlug]
		if !ok && post.AuthorSlug != "" {
			author, err = source.Author(ctx, post.AuthorSlug)
			switch {
			case errors.Is(err, content.ErrNotFound):
				author = content.Author{}
			case err != nil:
				return nil, fmt.Errorf("get author %q: %w", post.AuthorSlug, err)
			}
			authors[post.AuthorSlug] = author
		}
		out = append(out, Summary(post, author, bySlug, locale))
	}
	return out, nil
}

// Summary resolves a single post. Category slugs missing from categories
// are skipped.
func Summary(post content.Post, author content.Author, categories map[string]content.Category, locale i18n.Locale) webtemplates.PostSummary {
	summary := webtemplates.PostSummary{
		Title:       post.Title.In(locale),
		Excerpt:     post.Excerpt.In(locale),
		URL:         routepath.BlogPost(post.Slug),
		PublishedAt: post.PublishedAt,
	}
	if author.Slug != "" {
		summary.Author = webtemplates.Link{Label: author.Name, URL: routepath.Author(author.Slug)}
	}
	for _, slug := range post.CategorySlugs {
		category, ok := categories[slug]
		if !ok {
			continue
		}
		summary.Categories = append(summary.Categories, CategoryLink(category, locale))
	}
	return summary
}

// CategoryLink returns the listing link of category.
func CategoryLink(category content.Category, locale i18n.Locale) webtemplates.Link {
	return webtemplates.Link{Label: category.Title.In(locale), URL: routepath.Category(category.Slug)}
}
