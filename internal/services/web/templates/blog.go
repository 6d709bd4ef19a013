package templates

import (
	"context"
	"io"
	"time"

	"github.com/a-h/templ"
	"github.com/louisbranch/storyfront/internal/platform/i18n"
)

// Link is a labelled URL.
type Link struct {
	Label string
	URL   string
}

// PostSummary is a post resolved for one locale, as shown in listings.
type PostSummary struct {
	Title       string
	Excerpt     string
	URL         string
	Author      Link
	Categories  []Link
	PublishedAt time.Time
}

// PostView is a post detail page.
type PostView struct {
	PostSummary
	Body string
}

// AuthorView is an author profile with their posts.
type AuthorView struct {
	Name     string
	Bio      string
	ImageURL string
	Posts    []PostSummary
}

// CategoryView is a category with its posts.
type CategoryView struct {
	Title       string
	Description string
	Posts       []PostSummary
}

// HomeView is the landing page.
type HomeView struct {
	Latest     []PostSummary
	Categories []Link
}

// PageView is a standalone CMS page.
type PageView struct {
	Title string
	Body  string
}

// Home renders the landing page.
func Home(loc Localizer, locale i18n.Locale, view HomeView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := newMarkup(w)
		m.open("section", "class", "hero")
		m.element("h1", T(loc, "site.name"))
		m.element("p", T(loc, "site.tagline"), "class", "tagline")
		m.close("section")
		m.open("section", "class", "latest")
		m.element("h2", T(loc, "site.home.latest"))
		writePostList(m, loc, locale, view.Latest)
		m.close("section")
		if len(view.Categories) > 0 {
			m.open("section", "class", "topics")
			m.element("h2", T(loc, "site.home.categories"))
			writeLinks(m, "topic-list", view.Categories)
			m.close("section")
		}
		return m.err
	})
}

// PostList renders the blog index.
func PostList(loc Localizer, locale i18n.Locale, posts []PostSummary) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		m := newMarkup(w)
		m.element("h1", T(loc, "site.blog.title"))
		writePostList(m, loc, locale, posts)
		return m.err
	})
}

// PostDetail renders one post with its markdown body.
func PostDetail(loc Localizer, locale i18n.Locale, post PostView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := newMarkup(w)
		m.open("article", "class", "post")
		m.open("header")
		m.element("h1", post.Title)
		writeByline(m, loc, locale, post.PostSummary)
		m.close("header")
		m.open("div", "class", "post-body")
		m.component(ctx, Markdown(post.Body))
		m.close("div")
		if len(post.Categories) > 0 {
			m.open("footer", "class", "post-categories")
			m.element("span", T(loc, "site.blog.filed_under"))
			writeLinks(m, "category-list", post.Categories)
			m.close("footer")
		}
		m.close("article")
		return m.err
	})
}

// AuthorProfile renders an author and their posts.
func AuthorProfile(loc Localizer, locale i18n.Locale, author AuthorView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		m := newMarkup(w)
		m.open("section", "class", "author")
		if author.ImageURL != "" {
			m.open("img", "class", "author-image", "src", author.ImageURL, "alt", author.Name)
		}
		m.element("h1", author.Name)
		if author.Bio != "" {
			m.element("p", author.Bio, "class", "author-bio")
		}
		m.close("section")
		m.element("h2", T(loc, "site.author.posts", author.Name))
		writePostList(m, loc, locale, author.Posts)
		return m.err
	})
}

// CategoryListing renders a category and its posts.
func CategoryListing(loc Localizer, locale i18n.Locale, category CategoryView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		m := newMarkup(w)
		m.element("h1", T(loc, "site.category.posts", category.Title))
		if category.Description != "" {
			m.element("p", category.Description, "class", "category-description")
		}
		writePostList(m, loc, locale, category.Posts)
		return m.err
	})
}

// CMSPage renders a standalone page.
func CMSPage(page PageView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := newMarkup(w)
		m.open("article", "class", "page")
		m.element("h1", page.Title)
		m.open("div", "class", "page-body")
		m.component(ctx, Markdown(page.Body))
		m.close("div")
		m.close("article")
		return m.err
	})
}

func writePostList(m *markup, loc Localizer, locale i18n.Locale, posts []PostSummary) {
	if len(posts) == 0 {
		m.element("p", T(loc, "site.blog.empty"), "class", "empty")
		return
	}
	m.open("ul", "class", "post-list")
	for _, post := range posts {
		m.open("li", "class", "post-card")
		m.open("h3")
		m.element("a", post.Title, "href", post.URL)
		m.close("h3")
		writeByline(m, loc, locale, post)
		if post.Excerpt != "" {
			m.element("p", post.Excerpt, "class", "excerpt")
		}
		m.element("a", T(loc, "site.blog.read_more"), "class", "read-more", "href", post.URL)
		m.close("li")
	}
	m.close("ul")
}

func writeByline(m *markup, loc Localizer, locale i18n.Locale, post PostSummary) {
	m.open("p", "class", "byline")
	if post.Author.Label != "" {
		m.open("a", "href", post.Author.URL, "rel", "author")
		m.text(T(loc, "site.blog.by_author", post.Author.Label))
		m.close("a")
	}
	if !post.PublishedAt.IsZero() {
		m.raw(" ")
		m.open("time", "datetime", post.PublishedAt.UTC().Format(time.RFC3339))
		m.text(T(loc, "site.blog.published_on", FormatDate(post.PublishedAt, locale)))
		m.close("time")
	}
	m.close("p")
}

func writeLinks(m *markup, class string, links []Link) {
	m.open("ul", "class", class)
	for _, link := range links {
		m.open("li")
		m.element("a", link.Label, "href", link.URL)
		m.close("li")
	}
	m.close("ul")
}
