package controllers

import (
	"context"

	"github.com/rahul4469/bizstart/internal/market"
	"github.com/rahul4469/bizstart/internal/models"
)

// The controllers depend on these narrow views of the model services so
// handlers can be tested with in-memory fakes.

type SnapshotSource interface {
	Indicators(ctx context.Context, regionCode, businessType string) (market.Indicators, bool, error)
}

type BannerStore interface {
	Active(ctx context.Context) ([]*models.Banner, error)
	All(ctx context.Context) ([]*models.Banner, error)
	Create(ctx context.Context, in models.BannerInput) (*models.Banner, error)
	Toggle(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}

type ArticleStore interface {
	ListPublished(ctx context.Context, category models.ArticleCategory, page int) (*models.ArticlePage, error)
	BySlug(ctx context.Context, slug string) (*models.Article, error)
	All(ctx context.Context) ([]*models.Article, error)
	Create(ctx context.Context, in models.ArticleInput) (*models.Article, error)
	SetPublished(ctx context.Context, id int64, published bool) error
	Delete(ctx context.Context, id int64) error
}

type InquiryStore interface {
	Create(ctx context.Context, in models.InquiryInput) (*models.Inquiry, error)
	List(ctx context.Context, status models.InquiryStatus, limit int) ([]*models.Inquiry, error)
	UpdateStatus(ctx context.Context, id int64, next models.InquiryStatus) error
	CountByStatus(ctx context.Context) (map[models.InquiryStatus]int, error)
}

type FranchiseStore interface {
	List(ctx context.Context, f models.FranchiseFilter) (*models.FranchisePage, error)
	ByIDs(ctx context.Context, ids []int64) ([]*models.Franchise, error)
}

// Pinger reports backing store health.
type Pinger interface {
	Health(ctx context.Context) error
}
