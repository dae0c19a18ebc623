package controllers

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rahul4469/bizstart/internal/market"
	"github.com/rahul4469/bizstart/internal/models"
)

var errStoreDown = errors.New("store down")

type fakeSnapshots struct {
	cached bool
	err    error
}

func (f *fakeSnapshots) Indicators(_ context.Context, region, bt string) (market.Indicators, bool, error) {
	if f.err != nil {
		return market.Indicators{}, false, f.err
	}
	ind, err := market.Compute(region, bt)
	if err != nil {
		return market.Indicators{}, false, err
	}
	return ind, f.cached, nil
}

type fakeBanners struct {
	banners []*models.Banner
	err     error
}

func (f *fakeBanners) Active(context.Context) ([]*models.Banner, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*models.Banner
	for _, b := range f.banners {
		if b.Active {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBanners) All(context.Context) ([]*models.Banner, error) {
	return f.banners, f.err
}

func (f *fakeBanners) Create(_ context.Context, in models.BannerInput) (*models.Banner, error) {
	b := &models.Banner{
		ID:        int64(len(f.banners) + 1),
		Title:     in.Title,
		ImageURL:  in.ImageURL,
		LinkURL:   in.LinkURL,
		SortOrder: in.SortOrder,
		Active:    true,
		CreatedAt: time.Now(),
	}
	f.banners = append(f.banners, b)
	return b, nil
}

func (f *fakeBanners) Toggle(_ context.Context, id int64) (bool, error) {
	for _, b := range f.banners {
		if b.ID == id {
			b.Active = !b.Active
			return b.Active, nil
		}
	}
	return false, models.ErrBannerNotFound
}

func (f *fakeBanners) Delete(_ context.Context, id int64) error {
	for i, b := range f.banners {
		if b.ID == id {
			f.banners = append(f.banners[:i], f.banners[i+1:]...)
			return nil
		}
	}
	return models.ErrBannerNotFound
}

type fakeArticles struct {
	articles []*models.Article
	err      error
}

func (f *fakeArticles) ListPublished(_ context.Context, category models.ArticleCategory, page int) (*models.ArticlePage, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := &models.ArticlePage{Page: page}
	for _, a := range f.articles {
		if a.Published && (category == "" || a.Category == category) {
			out.Articles = append(out.Articles, a)
		}
	}
	return out, nil
}

func (f *fakeArticles) BySlug(_ context.Context, slug string) (*models.Article, error) {
	for _, a := range f.articles {
		if a.Slug == slug && a.Published {
			return a, nil
		}
	}
	return nil, models.ErrArticleNotFound
}

func (f *fakeArticles) All(context.Context) ([]*models.Article, error) {
	return f.articles, f.err
}

func (f *fakeArticles) Create(_ context.Context, in models.ArticleInput) (*models.Article, error) {
	for _, a := range f.articles {
		if a.Slug == in.Slug {
			return nil, models.ErrSlugTaken
		}
	}
	a := &models.Article{
		ID:       int64(len(f.articles) + 1),
		Slug:     in.Slug,
		Title:    in.Title,
		Summary:  in.Summary,
		Body:     in.Body,
		Category: models.ArticleCategory(in.Category),
	}
	f.articles = append(f.articles, a)
	return a, nil
}

func (f *fakeArticles) SetPublished(_ context.Context, id int64, published bool) error {
	for _, a := range f.articles {
		if a.ID == id {
			a.Published = published
			return nil
		}
	}
	return models.ErrArticleNotFound
}

func (f *fakeArticles) Delete(_ context.Context, id int64) error {
	for i, a := range f.articles {
		if a.ID == id {
			f.articles = append(f.articles[:i], f.articles[i+1:]...)
			return nil
		}
	}
	return models.ErrArticleNotFound
}

type fakeInquiries struct {
	inquiries []*models.Inquiry
	createErr error
}

func (f *fakeInquiries) Create(_ context.Context, in models.InquiryInput) (*models.Inquiry, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	inq := &models.Inquiry{
		ID:        int64(len(f.inquiries) + 1),
		Name:      in.Name,
		Phone:     in.Phone,
		Email:     in.Email,
		Topic:     in.Topic,
		Message:   in.Message,
		Status:    models.InquiryNew,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.inquiries = append(f.inquiries, inq)
	return inq, nil
}

func (f *fakeInquiries) List(_ context.Context, status models.InquiryStatus, _ int) ([]*models.Inquiry, error) {
	var out []*models.Inquiry
	for _, inq := range f.inquiries {
		if status == "" || inq.Status == status {
			out = append(out, inq)
		}
	}
	return out, nil
}

func (f *fakeInquiries) UpdateStatus(_ context.Context, id int64, next models.InquiryStatus) error {
	for _, inq := range f.inquiries {
		if inq.ID == id {
			if !inq.Status.CanTransition(next) {
				return models.ErrInvalidTransition
			}
			inq.Status = next
			return nil
		}
	}
	return models.ErrInquiryNotFound
}

func (f *fakeInquiries) CountByStatus(context.Context) (map[models.InquiryStatus]int, error) {
	counts := map[models.InquiryStatus]int{}
	for _, inq := range f.inquiries {
		counts[inq.Status]++
	}
	return counts, nil
}

type fakeFranchises struct {
	franchises []*models.Franchise
}

func (f *fakeFranchises) List(_ context.Context, filter models.FranchiseFilter) (*models.FranchisePage, error) {
	page := &models.FranchisePage{Filter: filter}
	for _, fr := range f.franchises {
		if filter.Category == "" || fr.Category == filter.Category {
			page.Franchises = append(page.Franchises, fr)
		}
	}
	return page, nil
}

func (f *fakeFranchises) ByIDs(_ context.Context, ids []int64) ([]*models.Franchise, error) {
	out := make([]*models.Franchise, 0, len(ids))
	for _, id := range ids {
		var found *models.Franchise
		for _, fr := range f.franchises {
			if fr.ID == id {
				found = fr
			}
		}
		if found == nil {
			return nil, models.ErrFranchiseNotFound
		}
		out = append(out, found)
	}
	return out, nil
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls []*models.Inquiry
	err   error
}

func (f *fakeNotifier) InquiryReceived(_ context.Context, inq *models.Inquiry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, inq)
	return f.err
}
