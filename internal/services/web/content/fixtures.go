package content

import (
	"embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/louisbranch/storyfront/internal/platform/i18n"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures/*.yaml
var embeddedFixtures embed.FS

const sampleFixture = "fixtures/sample.yaml"

// Fixtures is a complete content set, typically used to seed a store.
type Fixtures struct {
	Authors    []Author
	Categories []Category
	Posts      []Post
	Pages      []Page
}

type fixtureFile struct {
	Authors []struct {
		Slug     string            `yaml:"slug"`
		Name     string            `yaml:"name"`
		Bio      string            `yaml:"bio"`
		BioI18n  map[string]string `yaml:"i18n_bio"`
		ImageURL string            `yaml:"image_url"`
	} `yaml:"authors"`
	Categories []struct {
		Slug            string            `yaml:"slug"`
		Title           string            `yaml:"title"`
		TitleI18n       map[string]string `yaml:"i18n_title"`
		Description     string            `yaml:"description"`
		DescriptionI18n map[string]string `yaml:"i18n_description"`
	} `yaml:"categories"`
	Posts []struct {
		Slug        string            `yaml:"slug"`
		Title       string            `yaml:"title"`
		TitleI18n   map[string]string `yaml:"i18n_title"`
		Excerpt     string            `yaml:"excerpt"`
		ExcerptI18n map[string]string `yaml:"i18n_excerpt"`
		Body        string            `yaml:"body"`
		BodyI18n    map[string]string `yaml:"i18n_body"`
		Author      string            `yaml:"author"`
		Categories  []string          `yaml:"categories"`
		PublishedAt string            `yaml:"published_at"`
	} `yaml:"posts"`
	Pages []struct {
		Slug            string            `yaml:"slug"`
		Title           string            `yaml:"title"`
		TitleI18n       map[string]string `yaml:"i18n_title"`
		Description     string            `yaml:"description"`
		DescriptionI18n map[string]string `yaml:"i18n_description"`
		Body            string            `yaml:"body"`
		BodyI18n        map[string]string `yaml:"i18n_body"`
	} `yaml:"pages"`
}

// SampleFixtures returns the embedded sample content set.
func SampleFixtures() (Fixtures, error) {
	f, err := embeddedFixtures.Open(sampleFixture)
	if err != nil {
		return Fixtures{}, fmt.Errorf("open sample fixtures: %w", err)
	}
	defer f.Close()
	return DecodeFixtures(f)
}

// LoadFixtures reads fixtures from a YAML file on disk.
func LoadFixtures(path string) (Fixtures, error) {
	f, err := os.Open(path)
	if err != nil {
		return Fixtures{}, fmt.Errorf("open fixtures: %w", err)
	}
	defer f.Close()
	return DecodeFixtures(f)
}

// DecodeFixtures parses and validates a YAML fixture document.
func DecodeFixtures(r io.Reader) (Fixtures, error) {
	var file fixtureFile
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return Fixtures{}, fmt.Errorf("decode fixtures: %w", err)
	}

	var out Fixtures
	var err error
	for _, a := range file.Authors {
		author := Author{Slug: strings.TrimSpace(a.Slug), Name: strings.TrimSpace(a.Name), ImageURL: strings.TrimSpace(a.ImageURL)}
		if author.Bio, err = fixtureText(a.Bio, a.BioI18n); err != nil {
			return Fixtures{}, fmt.Errorf("author %q bio: %w", a.Slug, err)
		}
		out.Authors = append(out.Authors, author)
	}
	for _, c := range file.Categories {
		category := Category{Slug: strings.TrimSpace(c.Slug)}
		if category.Title, err = fixtureText(c.Title, c.TitleI18n); err != nil {
			return Fixtures{}, fmt.Errorf("category %q title: %w", c.Slug, err)
		}
		if category.Description, err = fixtureText(c.Description, c.DescriptionI18n); err != nil {
			return Fixtures{}, fmt.Errorf("category %q description: %w", c.Slug, err)
		}
		out.Categories = append(out.Categories, category)
	}
	for _, p := range file.Posts {
		post := Post{
			Slug:          strings.TrimSpace(p.Slug),
			AuthorSlug:    strings.TrimSpace(p.Author),
			CategorySlugs: p.Categories,
		}
		if post.Title, err = fixtureText(p.Title, p.TitleI18n); err != nil {
			return Fixtures{}, fmt.Errorf("post %q title: %w", p.Slug, err)
		}
		if post.Excerpt, err = fixtureText(p.Excerpt, p.ExcerptI18n); err != nil {
			return Fixtures{}, fmt.Errorf("post %q excerpt: %w", p.Slug, err)
		}
		if post.Body, err = fixtureText(p.Body, p.BodyI18n); err != nil {
			return Fixtures{}, fmt.Errorf("post %q body: %w", p.Slug, err)
		}
		if strings.TrimSpace(p.PublishedAt) != "" {
			post.PublishedAt, err = time.Parse(time.RFC3339, strings.TrimSpace(p.PublishedAt))
			if err != nil {
				return Fixtures{}, fmt.Errorf("post %q published_at: %w", p.Slug, err)
			}
		}
		out.Posts = append(out.Posts, post)
	}
	for _, p := range file.Pages {
		page := Page{Slug: strings.TrimSpace(p.Slug)}
		if page.Title, err = fixtureText(p.Title, p.TitleI18n); err != nil {
			return Fixtures{}, fmt.Errorf("page %q title: %w", p.Slug, err)
		}
		if page.Description, err = fixtureText(p.Description, p.DescriptionI18n); err != nil {
			return Fixtures{}, fmt.Errorf("page %q description: %w", p.Slug, err)
		}
		if page.Body, err = fixtureText(p.Body, p.BodyI18n); err != nil {
			return Fixtures{}, fmt.Errorf("page %q body: %w", p.Slug, err)
		}
		out.Pages = append(out.Pages, page)
	}
	if err := out.Validate(); err != nil {
		return Fixtures{}, err
	}
	return out, nil
}

// Validate checks slugs are present and unique and that post references resolve.
func (f Fixtures) Validate() error {
	authors := map[string]bool{}
	for _, a := range f.Authors {
		if err := claimSlug(authors, "author", a.Slug); err != nil {
			return err
		}
	}
	categories := map[string]bool{}
	for _, c := range f.Categories {
		if err := claimSlug(categories, "category", c.Slug); err != nil {
			return err
		}
	}
	posts := map[string]bool{}
	for _, p := range f.Posts {
		if err := claimSlug(posts, "post", p.Slug); err != nil {
			return err
		}
		if p.AuthorSlug != "" && !authors[p.AuthorSlug] {
			return fmt.Errorf("post %q references unknown author %q", p.Slug, p.AuthorSlug)
		}
		for _, c := range p.CategorySlugs {
			if !categories[c] {
				return fmt.Errorf("post %q references unknown category %q", p.Slug, c)
			}
		}
	}
	pages := map[string]bool{}
	for _, p := range f.Pages {
		if err := claimSlug(pages, "page", p.Slug); err != nil {
			return err
		}
	}
	return nil
}

func claimSlug(seen map[string]bool, kind string, slug string) error {
	if slug == "" {
		return fmt.Errorf("%s slug is required", kind)
	}
	if seen[slug] {
		return fmt.Errorf("duplicate %s slug %q", kind, slug)
	}
	seen[slug] = true
	return nil
}

func fixtureText(value string, overrides map[string]string) (i18n.Text, error) {
	text := i18n.Text{Default: strings.TrimSpace(value)}
	if len(overrides) == 0 {
		return text, nil
	}
	keys := make([]string, 0, len(overrides))
	for key := range overrides {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	text.Overrides = i18n.Overrides{}
	for _, key := range keys {
		locale := i18n.Locale(strings.TrimSpace(key))
		if !locale.IsSupported() {
			return i18n.Text{}, fmt.Errorf("unsupported locale %q", key)
		}
		text.Overrides[locale] = strings.TrimSpace(overrides[key])
	}
	return text, nil
}
