package models

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Franchise is a brand listed in the franchise directory. Money amounts are
// in 만원.
type Franchise struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	Summary         string    `json:"summary"`
	Stores          int       `json:"stores"`
	StartupCost     int       `json:"startup_cost"`
	FranchiseFee    int       `json:"franchise_fee"`
	AvgMonthlySales int       `json:"avg_monthly_sales"`
	EstablishedYear int       `json:"established_year"`
	LogoURL         string    `json:"logo_url"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// FranchiseCategory is a directory filter entry. Keys line up with the
// recommendation categories so a result can link straight into the list.
type FranchiseCategory struct {
	Key   string
	Label string
}

var franchiseCategories = []FranchiseCategory{
	{Key: "cafe", Label: "카페"},
	{Key: "restaurant", Label: "외식"},
	{Key: "retail", Label: "소매"},
	{Key: "education", Label: "교육"},
	{Key: "beauty", Label: "뷰티"},
	{Key: "unmanned", Label: "무인매장"},
	{Key: "fitness", Label: "피트니스"},
}

func FranchiseCategories() []FranchiseCategory {
	out := make([]FranchiseCategory, len(franchiseCategories))
	copy(out, franchiseCategories)
	return out
}

// CategoryLabel returns the display name of the franchise's category.
func (f *Franchise) CategoryLabel() string {
	for _, c := range franchiseCategories {
		if c.Key == f.Category {
			return c.Label
		}
	}
	return f.Category
}

func validFranchiseCategory(key string) bool {
	for _, c := range franchiseCategories {
		if c.Key == key {
			return true
		}
	}
	return false
}

const (
	SortStores      = "stores"
	SortStartupCost = "startup_cost"
	SortSales       = "sales"
	SortName        = "name"

	OrderAsc  = "asc"
	OrderDesc = "desc"

	FranchisesPerPage = 20
	maxKeywordLength  = 50
)

var sortColumns = map[string]string{
	SortStores:      "stores",
	SortStartupCost: "startup_cost",
	SortSales:       "avg_monthly_sales",
	SortName:        "name",
}

// defaultOrder is the direction used when the query omits one.
func defaultOrder(sort string) string {
	if sort == SortName || sort == SortStartupCost {
		return OrderAsc
	}
	return OrderDesc
}

// FranchiseFilter is the directory list state carried in the page URL.
type FranchiseFilter struct {
	Category string
	Query    string
	Sort     string
	Order    string
	Page     int
}

// ParseFranchiseFilter reads list state from a query string. Unknown values
// fall back to defaults so a hand-edited URL never errors.
func ParseFranchiseFilter(q url.Values) FranchiseFilter {
	f := FranchiseFilter{
		Category: strings.TrimSpace(q.Get("category")),
		Query:    strings.TrimSpace(q.Get("q")),
		Sort:     q.Get("sort"),
		Order:    q.Get("order"),
		Page:     1,
	}
	if !validFranchiseCategory(f.Category) {
		f.Category = ""
	}
	if r := []rune(f.Query); len(r) > maxKeywordLength {
		f.Query = string(r[:maxKeywordLength])
	}
	if _, ok := sortColumns[f.Sort]; !ok {
		f.Sort = SortStores
	}
	if f.Order != OrderAsc && f.Order != OrderDesc {
		f.Order = defaultOrder(f.Sort)
	}
	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 1 {
		f.Page = p
	}
	return f
}

// Values encodes f, omitting defaults. ParseFranchiseFilter(f.Values())
// returns f for any parsed filter.
func (f FranchiseFilter) Values() url.Values {
	v := url.Values{}
	if f.Category != "" {
		v.Set("category", f.Category)
	}
	if f.Query != "" {
		v.Set("q", f.Query)
	}
	if f.Sort != "" && f.Sort != SortStores {
		v.Set("sort", f.Sort)
	}
	if f.Order != "" && f.Order != defaultOrder(f.sortOrDefault()) {
		v.Set("order", f.Order)
	}
	if f.Page > 1 {
		v.Set("page", strconv.Itoa(f.Page))
	}
	return v
}

// WithPage returns a copy of f on another page.
func (f FranchiseFilter) WithPage(page int) FranchiseFilter {
	f.Page = page
	return f
}

// WithSort returns a copy sorted by key. Picking the active key again flips
// the direction; a new key starts at its default direction and page one.
func (f FranchiseFilter) WithSort(key string) FranchiseFilter {
	if f.sortOrDefault() == key {
		if f.Order == OrderAsc {
			f.Order = OrderDesc
		} else {
			f.Order = OrderAsc
		}
	} else {
		f.Sort = key
		f.Order = defaultOrder(key)
	}
	f.Page = 1
	return f
}

func (f FranchiseFilter) sortOrDefault() string {
	if f.Sort == "" {
		return SortStores
	}
	return f.Sort
}

// orderBy builds the ORDER BY clause from whitelisted identifiers only.
func (f FranchiseFilter) orderBy() string {
	col, ok := sortColumns[f.Sort]
	if !ok {
		col = sortColumns[SortStores]
	}
	dir := "DESC"
	if f.Order == OrderAsc || (f.Order == "" && defaultOrder(f.sortOrDefault()) == OrderAsc) {
		dir = "ASC"
	}
	return col + " " + dir + ", id ASC"
}

// likePattern escapes LIKE metacharacters in a user keyword.
func likePattern(q string) string {
	if q == "" {
		return ""
	}
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(q) + "%"
}

// FranchisePage is one page of the directory.
type FranchisePage struct {
	Franchises []*Franchise
	Filter     FranchiseFilter
	HasNext    bool
}

type FranchiseService struct {
	db DBTX
}

func NewFranchiseService(db DBTX) *FranchiseService {
	return &FranchiseService{db: db}
}

const franchiseColumns = `id, name, category, summary, stores, startup_cost, franchise_fee, avg_monthly_sales, established_year, logo_url, updated_at`

func (s *FranchiseService) List(ctx context.Context, f FranchiseFilter) (*FranchisePage, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.db.Query(ctx, `
		SELECT `+franchiseColumns+`
		FROM franchises
		WHERE ($1 = '' OR category = $1)
		  AND ($2 = '' OR name ILIKE $2 OR summary ILIKE $2)
		ORDER BY `+f.orderBy()+`
		LIMIT $3 OFFSET $4`,
		f.Category, likePattern(f.Query), FranchisesPerPage+1, (f.Page-1)*FranchisesPerPage,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list franchises: %w", err)
	}
	list, err := collect(rows, scanFranchise)
	if err != nil {
		return nil, fmt.Errorf("failed to scan franchises: %w", err)
	}

	page := &FranchisePage{Filter: f}
	if len(list) > FranchisesPerPage {
		page.HasNext = true
		list = list[:FranchisesPerPage]
	}
	page.Franchises = list
	return page, nil
}

// ParseCompareIDs reads franchise ids from repeated or comma separated
// "ids" values. Duplicates are dropped; the result must hold 2 to 4 ids.
func ParseCompareIDs(values []string) ([]int64, error) {
	seen := make(map[int64]bool)
	var ids []int64
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil || id <= 0 {
				return nil, fmt.Errorf("invalid franchise id %q", part)
			}
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	if len(ids) < 2 || len(ids) > 4 {
		return nil, ErrCompareCount
	}
	return ids, nil
}

// ByIDs loads franchises for side-by-side comparison in the order given.
func (s *FranchiseService) ByIDs(ctx context.Context, ids []int64) ([]*Franchise, error) {
	if len(ids) < 2 || len(ids) > 4 {
		return nil, ErrCompareCount
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.db.Query(ctx, `SELECT `+franchiseColumns+` FROM franchises WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load franchises: %w", err)
	}
	found, err := collect(rows, scanFranchise)
	if err != nil {
		return nil, fmt.Errorf("failed to scan franchises: %w", err)
	}
	return orderByIDs(found, ids)
}

func orderByIDs(found []*Franchise, ids []int64) ([]*Franchise, error) {
	byID := make(map[int64]*Franchise, len(found))
	for _, f := range found {
		byID[f.ID] = f
	}
	out := make([]*Franchise, 0, len(ids))
	for _, id := range ids {
		f, ok := byID[id]
		if !ok {
			return nil, ErrFranchiseNotFound
		}
		out = append(out, f)
	}
	return out, nil
}

func scanFranchise(row rowScanner) (*Franchise, error) {
	f := &Franchise{}
	err := row.Scan(&f.ID, &f.Name, &f.Category, &f.Summary, &f.Stores, &f.StartupCost,
		&f.FranchiseFee, &f.AvgMonthlySales, &f.EstablishedYear, &f.LogoURL, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return f, nil
}
