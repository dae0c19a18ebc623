package models

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/jackc/pgx/v5"
)

// ArticleCategory groups magazine articles.
type ArticleCategory string

const (
	CategoryStartup   ArticleCategory = "startup"
	CategoryTrend     ArticleCategory = "trend"
	CategoryInterview ArticleCategory = "interview"
	CategoryPolicy    ArticleCategory = "policy"
)

// ArticleCategories returns the categories in navigation order.
func ArticleCategories() []ArticleCategory {
	return []ArticleCategory{CategoryStartup, CategoryTrend, CategoryInterview, CategoryPolicy}
}

// Valid reports whether c is a known category.
func (c ArticleCategory) Valid() bool {
	for _, k := range ArticleCategories() {
		if c == k {
			return true
		}
	}
	return false
}

func (c ArticleCategory) Label() string {
	switch c {
	case CategoryStartup:
		return "창업 가이드"
	case CategoryTrend:
		return "트렌드"
	case CategoryInterview:
		return "사장님 인터뷰"
	case CategoryPolicy:
		return "지원 정책"
	default:
		return string(c)
	}
}

var slugPattern = regexp.MustCompile(`^[a-z0-9-]{3,80}$`)

// ValidSlug reports whether s can be used as an article URL segment.
func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// Article is a magazine entry.
type Article struct {
	ID          int64           `json:"id"`
	Slug        string          `json:"slug"`
	Title       string          `json:"title"`
	Summary     string          `json:"summary"`
	Body        string          `json:"body"`
	Category    ArticleCategory `json:"category"`
	CoverURL    string          `json:"cover_url"`
	Published   bool            `json:"published"`
	PublishedAt *time.Time      `json:"published_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ArticleInput is the admin form for a new article.
type ArticleInput struct {
	Slug     string `json:"slug" validate:"required,min=3,max=80"`
	Title    string `json:"title" validate:"required,max=200"`
	Summary  string `json:"summary" validate:"max=500"`
	Body     string `json:"body" validate:"required"`
	Category string `json:"category" validate:"required,oneof=startup trend interview policy"`
	CoverURL string `json:"cover_url" validate:"omitempty,url,max=500"`
}

// ArticlePage is one page of the public magazine list.
type ArticlePage struct {
	Articles []*Article
	Page     int
	HasNext  bool
}

// ArticlesPerPage is the public list page size.
const ArticlesPerPage = 12

type ArticleService struct {
	db DBTX
}

func NewArticleService(db DBTX) *ArticleService {
	return &ArticleService{db: db}
}

const articleColumns = `id, slug, title, summary, body, category, cover_url, published, published_at, created_at`

// ListPublished returns a page of published articles, newest first. An empty
// category lists every category.
func (s *ArticleService) ListPublished(ctx context.Context, category ArticleCategory, page int) (*ArticlePage, error) {
	if page < 1 {
		page = 1
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.db.Query(ctx, `
		SELECT `+articleColumns+`
		FROM articles
		WHERE published AND ($1 = '' OR category = $1)
		ORDER BY published_at DESC, id DESC
		LIMIT $2 OFFSET $3`,
		string(category), ArticlesPerPage+1, (page-1)*ArticlesPerPage,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	articles, err := collect(rows, scanArticle)
	if err != nil {
		return nil, fmt.Errorf("failed to scan articles: %w", err)
	}

	out := &ArticlePage{Page: page}
	if len(articles) > ArticlesPerPage {
		out.HasNext = true
		articles = articles[:ArticlesPerPage]
	}
	out.Articles = articles
	return out, nil
}

// BySlug returns a published article.
func (s *ArticleService) BySlug(ctx context.Context, slug string) (*Article, error) {
	if !ValidSlug(slug) {
		return nil, ErrArticleNotFound
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	a, err := scanArticle(s.db.QueryRow(ctx, `SELECT `+articleColumns+` FROM articles WHERE slug = $1 AND published`, slug))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrArticleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch article: %w", err)
	}
	return a, nil
}

// All returns every article for the admin console.
func (s *ArticleService) All(ctx context.Context) ([]*Article, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.db.Query(ctx, `SELECT `+articleColumns+` FROM articles ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	articles, err := collect(rows, scanArticle)
	if err != nil {
		return nil, fmt.Errorf("failed to scan articles: %w", err)
	}
	return articles, nil
}

// Create stores a draft article.
func (s *ArticleService) Create(ctx context.Context, in ArticleInput) (*Article, error) {
	if !ValidSlug(in.Slug) {
		return nil, fmt.Errorf("invalid slug %q", in.Slug)
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	a, err := scanArticle(s.db.QueryRow(ctx, `
		INSERT INTO articles (slug, title, summary, body, category, cover_url, published)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE)
		RETURNING `+articleColumns,
		in.Slug, in.Title, in.Summary, in.Body, in.Category, in.CoverURL,
	))
	if isUniqueViolation(err) {
		return nil, ErrSlugTaken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create article: %w", err)
	}
	return a, nil
}

// SetPublished publishes or unpublishes an article. The first publish stamps
// published_at; later toggles keep it.
func (s *ArticleService) SetPublished(ctx context.Context, id int64, published bool) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tag, err := s.db.Exec(ctx, `
		UPDATE articles
		SET published = $1,
		    published_at = CASE WHEN $1 THEN COALESCE(published_at, NOW()) ELSE published_at END
		WHERE id = $2`,
		published, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update article: %w", err)
	}
	return expectOne(tag, ErrArticleNotFound)
}

func (s *ArticleService) Delete(ctx context.Context, id int64) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tag, err := s.db.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	return expectOne(tag, ErrArticleNotFound)
}

func scanArticle(row rowScanner) (*Article, error) {
	a := &Article{}
	err := row.Scan(&a.ID, &a.Slug, &a.Title, &a.Summary, &a.Body, &a.Category, &a.CoverURL, &a.Published, &a.PublishedAt, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}
