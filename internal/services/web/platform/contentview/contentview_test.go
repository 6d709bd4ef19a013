package contentview

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/louisbranch/storyfront/internal/platform/i18n"
	"github.com/louisbranch/storyfront/internal/services/web/content"
)

func TestSummariesResolveLocaleAndLinks(t *testing.T) {
	t.Parallel()

	fixtures, err := content.SampleFixtures()
	if err != nil {
		t.Fatalf("SampleFixtures() error = %v", err)
	}
	source := content.NewMemorySource(fixtures)
	posts, err := source.Posts(context.Background(), content.ListOptions{})
	if err != nil {
		t.Fatalf("Posts() error = %v", err)
	}

	got, err := Summaries(context.Background(), source, i18n.BrazilianPortuguese, posts)
	if err != nil {
		t.Fatalf("Summaries() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len(Summaries()) = %d, want 3", len(got))
	}
	first := got[0]
	if first.Title != "Traduzindo Conteúdo Sem um Segundo Site" {
		t.Fatalf("title = %q", first.Title)
	}
	if first.URL != "/blog/translating-content" {
		t.Fatalf("url = %q", first.URL)
	}
	if first.Author.Label != "Ana Lima" || first.Author.URL != "/authors/ana-lima" {
		t.Fatalf("author = %+v", first.Author)
	}
	if len(first.Categories) != 2 || first.Categories[1].Label != "Engenharia" {
		t.Fatalf("categories = %+v", first.Categories)
	}
}

type brokenSource struct {
	content.Source
	authorErr error
}

func (b brokenSource) Categories(context.Context) ([]content.Category, error) {
	return nil, nil
}

func (b brokenSource) Author(context.Context, string) (content.Author, error) {
	return content.Author{}, b.authorErr
}

func TestSummariesHandleAuthorLookupFailures(t *testing.T) {
	t.Parallel()

	posts := []content.Post{{Slug: "p", Title: i18n.Plain("P"), AuthorSlug: "ghost", CategorySlugs: []string{"gone"}, PublishedAt: time.Now()}}

	got, err := Summaries(context.Background(), brokenSource{authorErr: content.ErrNotFound}, i18n.English, posts)
	if err != nil {
		t.Fatalf("Summaries() error = %v", err)
	}
	if got[0].Author.Label != "" || len(got[0].Categories) != 0 {
		t.Fatalf("summary = %+v, want no author and no categories", got[0])
	}

	boom := errors.New("boom")
	if _, err := Summaries(context.Background(), brokenSource{authorErr: boom}, i18n.English, posts); !errors.Is(err, boom) {
		t.Fatalf("Summaries() error = %v, want %v", err, boom)
	}
}
