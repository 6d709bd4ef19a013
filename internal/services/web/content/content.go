// Package content defines the CMS records rendered by the web service and
// the read-only Source contract that supplies them.
package content

import (
	"context"
	"errors"
	"time"

	"github.com/louisbranch/storyfront/internal/platform/i18n"
)

// ErrNotFound is returned when no record matches the requested slug.
var ErrNotFound = errors.New("content not found")

// Author is a post author.
type Author struct {
	Slug     string
	Name     string
	Bio      i18n.Text
	ImageURL string
}

// Category groups posts by topic.
type Category struct {
	Slug        string
	Title       i18n.Text
	Description i18n.Text
}

// Post is a blog post. Body holds markdown.
type Post struct {
	Slug          string
	Title         i18n.Text
	Excerpt       i18n.Text
	Body          i18n.Text
	AuthorSlug    string
	CategorySlugs []string
	PublishedAt   time.Time
}

// Page is a standalone CMS page served at /{slug}. Body holds markdown.
type Page struct {
	Slug        string
	Title       i18n.Text
	Description i18n.Text
	Body        i18n.Text
}

// ListOptions filters post listings. Zero values mean no filter.
type ListOptions struct {
	AuthorSlug   string
	CategorySlug string
	Limit        int
}

// Source is the read-only content query contract.
type Source interface {
	Post(ctx context.Context, slug string) (Post, error)
	Posts(ctx context.Context, opts ListOptions) ([]Post, error)
	Author(ctx context.Context, slug string) (Author, error)
	Category(ctx context.Context, slug string) (Category, error)
	Categories(ctx context.Context) ([]Category, error)
	Page(ctx context.Context, slug string) (Page, error)
}
