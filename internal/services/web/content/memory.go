package content

import (
	"context"
	"slices"
	"sort"
	"strings"
)

// MemorySource serves a fixed content set from memory.
type MemorySource struct {
	fixtures Fixtures
}

var _ Source = (*MemorySource)(nil)

// NewMemorySource returns a Source over fixtures.
func NewMemorySource(fixtures Fixtures) *MemorySource {
	return &MemorySource{fixtures: fixtures}
}

// Post returns the post with slug.
func (m *MemorySource) Post(_ context.Context, slug string) (Post, error) {
	slug = strings.TrimSpace(slug)
	for _, p := range m.fixtures.Posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Post{}, ErrNotFound
}

// Posts returns posts newest first.
func (m *MemorySource) Posts(_ context.Context, opts ListOptions) ([]Post, error) {
	out := make([]Post, 0, len(m.fixtures.Posts))
	for _, p := range m.fixtures.Posts {
		if opts.AuthorSlug != "" && p.AuthorSlug != opts.AuthorSlug {
			continue
		}
		if opts.CategorySlug != "" && !slices.Contains(p.CategorySlugs, opts.CategorySlug) {
			continue
		}
		out = append(out, p)
	}
	sortPosts(out)
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

// Author returns the author with slug.
func (m *MemorySource) Author(_ context.Context, slug string) (Author, error) {
	slug = strings.TrimSpace(slug)
	for _, a := range m.fixtures.Authors {
		if a.Slug == slug {
			return a, nil
		}
	}
	return Author{}, ErrNotFound
}

// Category returns the category with slug.
func (m *MemorySource) Category(_ context.Context, slug string) (Category, error) {
	slug = strings.TrimSpace(slug)
	for _, c := range m.fixtures.Categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return Category{}, ErrNotFound
}

// Categories returns all categories ordered by slug.
func (m *MemorySource) Categories(context.Context) ([]Category, error) {
	out := slices.Clone(m.fixtures.Categories)
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out, nil
}

// Page returns the page with slug.
func (m *MemorySource) Page(_ context.Context, slug string) (Page, error) {
	slug = strings.TrimSpace(slug)
	for _, p := range m.fixtures.Pages {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Page{}, ErrNotFound
}

func sortPosts(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].PublishedAt.Equal(posts[j].PublishedAt) {
			return posts[i].PublishedAt.After(posts[j].PublishedAt)
		}
		return posts[i].Slug < posts[j].Slug
	})
}
