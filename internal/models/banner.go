package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// Banner is a home page carousel slide managed from the admin console.
type Banner struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"image_url"`
	LinkURL   string    `json:"link_url"`
	SortOrder int       `json:"sort_order"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// BannerInput is the admin form for a new banner.
type BannerInput struct {
	Title     string `json:"title" validate:"required,max=100"`
	ImageURL  string `json:"image_url" validate:"required,url,max=500"`
	LinkURL   string `json:"link_url" validate:"omitempty,max=500"`
	SortOrder int    `json:"sort_order" validate:"min=0,max=999"`
}

type BannerService struct {
	db DBTX
}

func NewBannerService(db DBTX) *BannerService {
	return &BannerService{db: db}
}

const bannerColumns = `id, title, image_url, link_url, sort_order, active, created_at`

// Active returns the banners shown on the home page.
func (s *BannerService) Active(ctx context.Context) ([]*Banner, error) {
	return s.list(ctx, `SELECT `+bannerColumns+` FROM banners WHERE active ORDER BY sort_order, id`)
}

// All returns every banner for the admin console.
func (s *BannerService) All(ctx context.Context) ([]*Banner, error) {
	return s.list(ctx, `SELECT `+bannerColumns+` FROM banners ORDER BY sort_order, id`)
}

func (s *BannerService) list(ctx context.Context, query string) ([]*Banner, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list banners: %w", err)
	}
	banners, err := collect(rows, scanBanner)
	if err != nil {
		return nil, fmt.Errorf("failed to scan banners: %w", err)
	}
	return banners, nil
}

func (s *BannerService) Create(ctx context.Context, in BannerInput) (*Banner, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.db.QueryRow(ctx, `
		INSERT INTO banners (title, image_url, link_url, sort_order, active)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING `+bannerColumns,
		in.Title, in.ImageURL, in.LinkURL, in.SortOrder,
	)
	b, err := scanBanner(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create banner: %w", err)
	}
	return b, nil
}

// Toggle flips the active flag and returns the new value.
func (s *BannerService) Toggle(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var active bool
	err := s.db.QueryRow(ctx, `UPDATE banners SET active = NOT active WHERE id = $1 RETURNING active`, id).Scan(&active)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, ErrBannerNotFound
	}
	if err != nil {
		return false, fmt.Errorf("failed to toggle banner: %w", err)
	}
	return active, nil
}

func (s *BannerService) Delete(ctx context.Context, id int64) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tag, err := s.db.Exec(ctx, `DELETE FROM banners WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete banner: %w", err)
	}
	return expectOne(tag, ErrBannerNotFound)
}

func scanBanner(row rowScanner) (*Banner, error) {
	b := &Banner{}
	err := row.Scan(&b.ID, &b.Title, &b.ImageURL, &b.LinkURL, &b.SortOrder, &b.Active, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}
