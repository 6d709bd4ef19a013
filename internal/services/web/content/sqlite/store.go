// Package sqlite provides a content Source backed by SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/storyfront/internal/platform/i18n"
	"github.com/louisbranch/storyfront/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/storyfront/internal/platform/timeouts"
	"github.com/louisbranch/storyfront/internal/services/web/content"
	"github.com/louisbranch/storyfront/internal/services/web/content/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store serves content records from SQLite.
type Store struct {
	sqlDB *sql.DB
}

var _ content.Source = (*Store)(nil)

// Open opens and migrates a content SQLite database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=foreign_keys(ON)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(ctx, sqlDB, migrations.FS, "."); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Seed upserts every record in fixtures. Running it twice with the same
// fixtures leaves the store unchanged.
func (s *Store) Seed(ctx context.Context, fixtures content.Fixtures) error {
	if err := fixtures.Validate(); err != nil {
		return fmt.Errorf("validate fixtures: %w", err)
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, a := range fixtures.Authors {
		bio, err := encodeOverrides(a.Bio.Overrides)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO authors (slug, name, bio, bio_i18n, image_url) VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT(slug) DO UPDATE SET
			    name = excluded.name, bio = excluded.bio, bio_i18n = excluded.bio_i18n, image_url = excluded.image_url`,
			a.Slug, a.Name, a.Bio.Default, bio, a.ImageURL,
		); err != nil {
			return fmt.Errorf("seed author %q: %w", a.Slug, err)
		}
	}
	for _, c := range fixtures.Categories {
		title, err := encodeOverrides(c.Title.Overrides)
		if err != nil {
			return err
		}
		description, err := encodeOverrides(c.Description.Overrides)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO categories (slug, title, title_i18n, description, description_i18n) VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT(slug) DO UPDATE SET
			    title = excluded.title, title_i18n = excluded.title_i18n,
			    description = excluded.description, description_i18n = excluded.description_i18n`,
			c.Slug, c.Title.Default, title, c.Description.Default, description,
		); err != nil {
			return fmt.Errorf("seed category %q: %w", c.Slug, err)
		}
	}
	for _, p := range fixtures.Posts {
		if err := seedPost(ctx, tx, p); err != nil {
			return err
		}
	}
	for _, p := range fixtures.Pages {
		title, err := encodeOverrides(p.Title.Overrides)
		if err != nil {
			return err
		}
		description, err := encodeOverrides(p.Description.Overrides)
		if err != nil {
			return err
		}
		body, err := encodeOverrides(p.Body.Overrides)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO pages (slug, title, title_i18n, description, description_i18n, body, body_i18n) VALUES (?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(slug) DO UPDATE SET
			    title = excluded.title, title_i18n = excluded.title_i18n,
			    description = excluded.description, description_i18n = excluded.description_i18n,
			    body = excluded.body, body_i18n = excluded.body_i18n`,
			p.Slug, p.Title.Default, title, p.Description.Default, description, p.Body.Default, body,
		); err != nil {
			return fmt.Errorf("seed page %q: %w", p.Slug, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}

func seedPost(ctx context.Context, tx *sql.Tx, p content.Post) error {
	title, err := encodeOverrides(p.Title.Overrides)
	if err != nil {
		return err
	}
	excerpt, err := encodeOverrides(p.Excerpt.Overrides)
	if err != nil {
		return err
	}
	body, err := encodeOverrides(p.Body.Overrides)
	if err != nil {
		return err
	}
	var publishedAt int64
	if !p.PublishedAt.IsZero() {
		publishedAt = p.PublishedAt.UTC().UnixMilli()
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO posts (slug, title, title_i18n, excerpt, excerpt_i18n, body, body_i18n, author_slug, published_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(slug) DO UPDATE SET
		    title = excluded.title, title_i18n = excluded.title_i18n,
		    excerpt = excluded.excerpt, excerpt_i18n = excluded.excerpt_i18n,
		    body = excluded.body, body_i18n = excluded.body_i18n,
		    author_slug = excluded.author_slug, published_at = excluded.published_at`,
		p.Slug, p.Title.Default, title, p.Excerpt.Default, excerpt, p.Body.Default, body, p.AuthorSlug, publishedAt,
	); err != nil {
		return fmt.Errorf("seed post %q: %w", p.Slug, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM post_categories WHERE post_slug = ?`, p.Slug); err != nil {
		return fmt.Errorf("clear post %q categories: %w", p.Slug, err)
	}
	for idx, category := range p.CategorySlugs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO post_categories (post_slug, category_slug, position) VALUES (?, ?, ?)`,
			p.Slug, category, idx,
		); err != nil {
			return fmt.Errorf("seed post %q category %q: %w", p.Slug, category, err)
		}
	}
	return nil
}

const postColumns = `p.slug, p.title, p.title_i18n, p.excerpt, p.excerpt_i18n, p.body, p.body_i18n, p.author_slug, p.published_at`

// Post returns the post with slug.
func (s *Store) Post(ctx context.Context, slug string) (content.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.ContentQuery)
	defer cancel()

	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts p WHERE p.slug = ?`, strings.TrimSpace(slug))
	post, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return content.Post{}, content.ErrNotFound
	}
	if err != nil {
		return content.Post{}, fmt.Errorf("get post: %w", err)
	}
	if post.CategorySlugs, err = s.postCategories(ctx, post.Slug); err != nil {
		return content.Post{}, err
	}
	return post, nil
}

// Posts returns posts newest first.
func (s *Store) Posts(ctx context.Context, opts content.ListOptions) ([]content.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.ContentQuery)
	defer cancel()

	query := `SELECT ` + postColumns + ` FROM posts p`
	var where []string
	var args []any
	if opts.CategorySlug != "" {
		query += ` JOIN post_categories pc ON pc.post_slug = p.slug`
		where = append(where, `pc.category_slug = ?`)
		args = append(args, opts.CategorySlug)
	}
	if opts.AuthorSlug != "" {
		where = append(where, `p.author_slug = ?`)
		args = append(args, opts.AuthorSlug)
	}
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY p.published_at DESC, p.slug ASC`
	if opts.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []content.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	rows.Close()

	for i := range posts {
		if posts[i].CategorySlugs, err = s.postCategories(ctx, posts[i].Slug); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

// Author returns the author with slug.
func (s *Store) Author(ctx context.Context, slug string) (content.Author, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.ContentQuery)
	defer cancel()

	var author content.Author
	var bio string
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT slug, name, bio, bio_i18n, image_url FROM authors WHERE slug = ?`, strings.TrimSpace(slug),
	).Scan(&author.Slug, &author.Name, &author.Bio.Default, &bio, &author.ImageURL)
	if errors.Is(err, sql.ErrNoRows) {
		return content.Author{}, content.ErrNotFound
	}
	if err != nil {
		return content.Author{}, fmt.Errorf("get author: %w", err)
	}
	if author.Bio.Overrides, err = decodeOverrides(bio); err != nil {
		return content.Author{}, err
	}
	return author, nil
}

// Category returns the category with slug.
func (s *Store) Category(ctx context.Context, slug string) (content.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.ContentQuery)
	defer cancel()

	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT slug, title, title_i18n, description, description_i18n FROM categories WHERE slug = ?`, strings.TrimSpace(slug),
	)
	category, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return content.Category{}, content.ErrNotFound
	}
	if err != nil {
		return content.Category{}, fmt.Errorf("get category: %w", err)
	}
	return category, nil
}

// Categories returns all categories ordered by slug.
func (s *Store) Categories(ctx context.Context) ([]content.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.ContentQuery)
	defer cancel()

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT slug, title, title_i18n, description, description_i18n FROM categories ORDER BY slug`,
	)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []content.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

// Page returns the page with slug.
func (s *Store) Page(ctx context.Context, slug string) (content.Page, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.ContentQuery)
	defer cancel()

	var page content.Page
	var title, description, body string
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT slug, title, title_i18n, description, description_i18n, body, body_i18n FROM pages WHERE slug = ?`,
		strings.TrimSpace(slug),
	).Scan(&page.Slug, &page.Title.Default, &title, &page.Description.Default, &description, &page.Body.Default, &body)
	if errors.Is(err, sql.ErrNoRows) {
		return content.Page{}, content.ErrNotFound
	}
	if err != nil {
		return content.Page{}, fmt.Errorf("get page: %w", err)
	}
	if page.Title.Overrides, err = decodeOverrides(title); err != nil {
		return content.Page{}, err
	}
	if page.Description.Overrides, err = decodeOverrides(description); err != nil {
		return content.Page{}, err
	}
	if page.Body.Overrides, err = decodeOverrides(body); err != nil {
		return content.Page{}, err
	}
	return page, nil
}

func (s *Store) postCategories(ctx context.Context, slug string) ([]string, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT category_slug FROM post_categories WHERE post_slug = ? ORDER BY position, category_slug`, slug,
	)
	if err != nil {
		return nil, fmt.Errorf("list post categories: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("scan post category: %w", err)
		}
		out = append(out, category)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(row scanner) (content.Post, error) {
	var post content.Post
	var title, excerpt, body string
	var publishedAt int64
	if err := row.Scan(&post.Slug, &post.Title.Default, &title, &post.Excerpt.Default, &excerpt,
		&post.Body.Default, &body, &post.AuthorSlug, &publishedAt); err != nil {
		return content.Post{}, err
	}
	var err error
	if post.Title.Overrides, err = decodeOverrides(title); err != nil {
		return content.Post{}, err
	}
	if post.Excerpt.Overrides, err = decodeOverrides(excerpt); err != nil {
		return content.Post{}, err
	}
	if post.Body.Overrides, err = decodeOverrides(body); err != nil {
		return content.Post{}, err
	}
	if publishedAt > 0 {
		post.PublishedAt = time.UnixMilli(publishedAt).UTC()
	}
	return post, nil
}

func scanCategory(row scanner) (content.Category, error) {
	var category content.Category
	var title, description string
	if err := row.Scan(&category.Slug, &category.Title.Default, &title, &category.Description.Default, &description); err != nil {
		return content.Category{}, err
	}
	var err error
	if category.Title.Overrides, err = decodeOverrides(title); err != nil {
		return content.Category{}, err
	}
	if category.Description.Overrides, err = decodeOverrides(description); err != nil {
		return content.Category{}, err
	}
	return category, nil
}

func encodeOverrides(overrides i18n.Overrides) (string, error) {
	if len(overrides) == 0 {
		return "{}", nil
	}
	raw, err := json.Marshal(overrides)
	if err != nil {
		return "", fmt.Errorf("encode overrides: %w", err)
	}
	return string(raw), nil
}

func decodeOverrides(raw string) (i18n.Overrides, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "{}" {
		return nil, nil
	}
	var overrides i18n.Overrides
	if err := json.Unmarshal([]byte(raw), &overrides); err != nil {
		return nil, fmt.Errorf("decode overrides: %w", err)
	}
	return overrides, nil
}
