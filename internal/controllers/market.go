package controllers

import (
	"net/http"
	"strings"

	"github.com/rahul4469/bizstart/internal/logger"
	"github.com/rahul4469/bizstart/internal/market"
	"github.com/rahul4469/bizstart/internal/metrics"
	"github.com/rahul4469/bizstart/internal/views"
)

// MarketController serves the trade-area dashboard and its JSON API.
type MarketController struct {
	snapshots SnapshotSource
	generator *market.Generator
	templates MarketTemplates
	log       *logger.Logger
}

type MarketTemplates struct {
	Dashboard *views.Template
}

func NewMarketController(snapshots SnapshotSource, generator *market.Generator, templates MarketTemplates, log *logger.Logger) *MarketController {
	return &MarketController{
		snapshots: snapshots,
		generator: generator,
		templates: templates,
		log:       log,
	}
}

// RegionOption is a quick-pick region on the dashboard form.
type RegionOption struct {
	Code  string
	Label string
}

var sampleRegions = []RegionOption{
	{Code: "1168010100", Label: "서울 강남구 역삼동"},
	{Code: "1144012000", Label: "서울 마포구 서교동"},
	{Code: "1120011400", Label: "서울 성동구 성수동1가"},
	{Code: "2635010500", Label: "부산 해운대구 우동"},
	{Code: "4113510900", Label: "경기 성남시 분당구 정자동"},
}

// TrendBar is one column of the trend chart, scaled to the series range.
type TrendBar struct {
	Period string
	Index  int
	Height int
}

type MarketPageData struct {
	Region        string
	Type          string
	Regions       []RegionOption
	BusinessTypes []market.BusinessType
	Snapshot      *market.Snapshot
	Bars          []TrendBar
	Cached        bool
}

// trendBars scales the series so the lowest point keeps a visible stub.
func trendBars(points []market.TrendPoint) []TrendBar {
	if len(points) == 0 {
		return nil
	}
	lo, hi := points[0].Index, points[0].Index
	for _, p := range points[1:] {
		lo = min(lo, p.Index)
		hi = max(hi, p.Index)
	}
	bars := make([]TrendBar, len(points))
	for i, p := range points {
		height := 100
		if hi > lo {
			height = 30 + 70*(p.Index-lo)/(hi-lo)
		}
		bars[i] = TrendBar{Period: p.Period, Index: p.Index, Height: height}
	}
	return bars
}

// GetSnapshot handles GET /api/market/snapshot?region=&type=.
func (c *MarketController) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ind, cached, err := c.snapshots.Indicators(r.Context(), q.Get("region"), q.Get("type"))
	if err != nil {
		if ve, ok := market.AsValidationError(err); ok {
			metrics.SnapshotRejected.WithLabelValues(string(ve.Code)).Inc()
			writeError(w, http.StatusBadRequest, string(ve.Code), ve.Message, map[string]string{"value": ve.Value})
			return
		}
		c.log.Error(r.Context(), "snapshot failed", err)
		writeError(w, http.StatusInternalServerError, CodeInternal, "일시적인 오류가 발생했습니다.", nil)
		return
	}

	if cached {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	writeJSON(w, http.StatusOK, c.generator.Stamp(ind))
}

// GetDashboard renders /market. The form submits by GET so results are
// shareable links.
func (c *MarketController) GetDashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := MarketPageData{
		Region:        strings.TrimSpace(q.Get("region")),
		Type:          q.Get("type"),
		Regions:       sampleRegions,
		BusinessTypes: market.BusinessTypes(),
	}
	if page.Type == "" {
		page.Type = string(market.BusinessFNB)
	}

	data := newPageData(w, r, "상권 분석", &page)
	data.Description = "행정동 코드와 업종으로 상권 지표를 확인하세요."

	if page.Region == "" {
		c.templates.Dashboard.ExecuteHTTP(w, r, data)
		return
	}

	ind, cached, err := c.snapshots.Indicators(r.Context(), page.Region, page.Type)
	if err != nil {
		if ve, ok := market.AsValidationError(err); ok {
			metrics.SnapshotRejected.WithLabelValues(string(ve.Code)).Inc()
			data.FieldErrors = map[string]string{fieldFor(ve.Code): ve.Message}
			data.Error = ve.Message
			c.templates.Dashboard.ExecuteHTTPWithStatus(w, r, http.StatusUnprocessableEntity, data)
			return
		}
		c.log.Error(r.Context(), "snapshot failed", err)
		data.Error = "상권 데이터를 불러오지 못했습니다. 잠시 후 다시 시도해 주세요."
		c.templates.Dashboard.ExecuteHTTPWithStatus(w, r, http.StatusInternalServerError, data)
		return
	}

	page.Snapshot = c.generator.Stamp(ind)
	page.Bars = trendBars(ind.Trend)
	page.Cached = cached
	data.Title = "상권 분석 · " + page.Region
	c.templates.Dashboard.ExecuteHTTP(w, r, data)
}

func fieldFor(code market.ErrorCode) string {
	if code == market.CodeInvalidRegion {
		return "region"
	}
	return "type"
}
