package content

import (
	"context"
	"errors"
	"testing"
	"time"
)

func testFixtures() Fixtures {
	day := func(d int) time.Time { return time.Date(2026, 1, d, 0, 0, 0, 0, time.UTC) }
	return Fixtures{
		Authors:    []Author{{Slug: "ana", Name: "Ana"}, {Slug: "ben", Name: "Ben"}},
		Categories: []Category{{Slug: "eng"}, {Slug: "design"}},
		Posts: []Post{
			{Slug: "old", AuthorSlug: "ana", CategorySlugs: []string{"design"}, PublishedAt: day(1)},
			{Slug: "new", AuthorSlug: "ben", CategorySlugs: []string{"eng"}, PublishedAt: day(3)},
			{Slug: "mid", AuthorSlug: "ana", CategorySlugs: []string{"eng", "design"}, PublishedAt: day(2)},
		},
		Pages: []Page{{Slug: "about"}},
	}
}

func TestMemorySourcePostsOrderingAndFilters(t *testing.T) {
	t.Parallel()

	src := NewMemorySource(testFixtures())
	ctx := context.Background()

	tests := []struct {
		name string
		opts ListOptions
		want []string
	}{
		{name: "all", want: []string{"new", "mid", "old"}},
		{name: "author", opts: ListOptions{AuthorSlug: "ana"}, want: []string{"mid", "old"}},
		{name: "category", opts: ListOptions{CategorySlug: "eng"}, want: []string{"new", "mid"}},
		{name: "limit", opts: ListOptions{Limit: 1}, want: []string{"new"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			posts, err := src.Posts(ctx, tc.opts)
			if err != nil {
				t.Fatalf("Posts() error = %v", err)
			}
			if len(posts) != len(tc.want) {
				t.Fatalf("len = %d, want %d", len(posts), len(tc.want))
			}
			for i, slug := range tc.want {
				if posts[i].Slug != slug {
					t.Fatalf("posts[%d] = %q, want %q", i, posts[i].Slug, slug)
				}
			}
		})
	}
}

func TestMemorySourceMissingRecordsReturnNotFound(t *testing.T) {
	t.Parallel()

	src := NewMemorySource(testFixtures())
	ctx := context.Background()
	if _, err := src.Post(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Post() error = %v, want ErrNotFound", err)
	}
	if _, err := src.Author(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Author() error = %v, want ErrNotFound", err)
	}
	if _, err := src.Category(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Category() error = %v, want ErrNotFound", err)
	}
	if _, err := src.Page(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Page() error = %v, want ErrNotFound", err)
	}
	if page, err := src.Page(ctx, "about"); err != nil || page.Slug != "about" {
		t.Fatalf("Page(about) = %+v, %v", page, err)
	}
}

func TestMemorySourceCategoriesSorted(t *testing.T) {
	t.Parallel()

	cats, err := NewMemorySource(testFixtures()).Categories(context.Background())
	if err != nil {
		t.Fatalf("Categories() error = %v", err)
	}
	if cats[0].Slug != "design" || cats[1].Slug != "eng" {
		t.Fatalf("categories = %+v", cats)
	}
}
