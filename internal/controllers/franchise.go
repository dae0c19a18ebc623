package controllers

import (
	"errors"
	"net/http"

	"github.com/rahul4469/bizstart/internal/logger"
	"github.com/rahul4469/bizstart/internal/models"
	"github.com/rahul4469/bizstart/internal/views"
)

// FranchiseController serves the franchise directory and comparison table.
type FranchiseController struct {
	franchises FranchiseStore
	templates  FranchiseTemplates
	log        *logger.Logger
}

type FranchiseTemplates struct {
	List    *views.Template
	Compare *views.Template
}

func NewFranchiseController(franchises FranchiseStore, templates FranchiseTemplates, log *logger.Logger) *FranchiseController {
	return &FranchiseController{franchises: franchises, templates: templates, log: log}
}

// SortLink is a column header that toggles sorting while keeping the filter.
type SortLink struct {
	Key    string
	Label  string
	Href   string
	Active bool
	Order  string
}

type FranchiseListData struct {
	Page       *models.FranchisePage
	Filter     models.FranchiseFilter
	Categories []models.FranchiseCategory
	SortLinks  []SortLink
	PrevHref   string
	NextHref   string
}

var sortLabels = []struct{ key, label string }{
	{models.SortStores, "가맹점 수"},
	{models.SortStartupCost, "창업 비용"},
	{models.SortSales, "평균 매출"},
	{models.SortName, "이름"},
}

func listHref(f models.FranchiseFilter) string {
	if enc := f.Values().Encode(); enc != "" {
		return "/franchises?" + enc
	}
	return "/franchises"
}

func sortLinks(f models.FranchiseFilter) []SortLink {
	links := make([]SortLink, len(sortLabels))
	for i, s := range sortLabels {
		links[i] = SortLink{
			Key:    s.key,
			Label:  s.label,
			Href:   listHref(f.WithSort(s.key)),
			Active: f.Sort == s.key,
			Order:  f.Order,
		}
	}
	return links
}

// GetList renders /franchises. All list state lives in the query string.
func (c *FranchiseController) GetList(w http.ResponseWriter, r *http.Request) {
	filter := models.ParseFranchiseFilter(r.URL.Query())

	page, err := c.franchises.List(r.Context(), filter)
	if err != nil {
		c.log.Error(r.Context(), "franchise list failed", err)
		http.Error(w, "Failed to load franchises", http.StatusInternalServerError)
		return
	}

	list := FranchiseListData{
		Page:       page,
		Filter:     filter,
		Categories: models.FranchiseCategories(),
		SortLinks:  sortLinks(filter),
	}
	if filter.Page > 1 {
		list.PrevHref = listHref(filter.WithPage(filter.Page - 1))
	}
	if page.HasNext {
		list.NextHref = listHref(filter.WithPage(filter.Page + 1))
	}

	data := newPageData(w, r, "프랜차이즈 비교", list)
	data.Description = "업종별 프랜차이즈의 가맹점 수와 창업 비용을 비교해 보세요."
	c.templates.List.ExecuteHTTP(w, r, data)
}

type FranchiseCompareData struct {
	Franchises []*models.Franchise
	// Best holds the id of the leading franchise per metric.
	Best map[string]int64
}

// bestBy picks the winner of each metric. Lower startup cost wins; ties keep
// the first listed.
func bestBy(list []*models.Franchise) map[string]int64 {
	best := map[string]int64{}
	if len(list) == 0 {
		return best
	}
	stores, cost, sales := list[0], list[0], list[0]
	for _, f := range list[1:] {
		if f.Stores > stores.Stores {
			stores = f
		}
		if f.StartupCost < cost.StartupCost {
			cost = f
		}
		if f.AvgMonthlySales > sales.AvgMonthlySales {
			sales = f
		}
	}
	best[models.SortStores] = stores.ID
	best[models.SortStartupCost] = cost.ID
	best[models.SortSales] = sales.ID
	return best
}

// GetCompare renders /franchises/compare?ids=1,2,3 for two to four brands.
func (c *FranchiseController) GetCompare(w http.ResponseWriter, r *http.Request) {
	ids, err := models.ParseCompareIDs(r.URL.Query()["ids"])
	if err != nil {
		redirectWithFlash(w, r, "/franchises", flashError, "비교할 프랜차이즈를 2개 이상 4개 이하로 선택해 주세요.")
		return
	}

	list, err := c.franchises.ByIDs(r.Context(), ids)
	if errors.Is(err, models.ErrFranchiseNotFound) {
		redirectWithFlash(w, r, "/franchises", flashError, "선택한 프랜차이즈를 찾을 수 없습니다.")
		return
	}
	if err != nil {
		c.log.Error(r.Context(), "franchise compare failed", err)
		http.Error(w, "Failed to load franchises", http.StatusInternalServerError)
		return
	}

	data := newPageData(w, r, "프랜차이즈 비교표", FranchiseCompareData{
		Franchises: list,
		Best:       bestBy(list),
	})
	c.templates.Compare.ExecuteHTTP(w, r, data)
}
