package controllers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rahul4469/bizstart/internal/interior"
	"github.com/rahul4469/bizstart/internal/market"
	"github.com/rahul4469/bizstart/internal/views"
)

// InteriorController serves the interior cost estimator.
type InteriorController struct {
	templates InteriorTemplates
}

type InteriorTemplates struct {
	Estimator *views.Template
}

func NewInteriorController(templates InteriorTemplates) *InteriorController {
	return &InteriorController{templates: templates}
}

// parseEstimateQuery reads area, grade, type and items. Items may repeat or
// be comma separated. An unparseable area becomes 0 and fails validation.
func parseEstimateQuery(q url.Values) interior.Request {
	area, err := strconv.ParseFloat(strings.TrimSpace(q.Get("area")), 64)
	if err != nil {
		area = 0
	}
	var items []string
	for _, v := range q["items"] {
		for _, k := range strings.Split(v, ",") {
			if k = strings.TrimSpace(k); k != "" {
				items = append(items, k)
			}
		}
	}
	return interior.Request{
		AreaPyeong:   area,
		Grade:        q.Get("grade"),
		BusinessType: q.Get("type"),
		Items:        items,
	}
}

// GetEstimate handles GET /api/interior/estimate.
func (c *InteriorController) GetEstimate(w http.ResponseWriter, r *http.Request) {
	est, err := interior.Calculate(parseEstimateQuery(r.URL.Query()))
	if err != nil {
		var ve *interior.ValidationError
		if errors.As(err, &ve) {
			writeError(w, http.StatusBadRequest, ve.Code, ve.Message, nil)
			return
		}
		writeError(w, http.StatusInternalServerError, CodeInternal, "일시적인 오류가 발생했습니다.", nil)
		return
	}
	writeJSON(w, http.StatusOK, est)
}

type InteriorPageData struct {
	Request       interior.Request
	Selected      map[string]bool
	Grades        []interior.Grade
	Items         []interior.ItemOption
	BusinessTypes []market.BusinessType
	Estimate      *interior.Estimate
}

// GetEstimator renders /interior. The form submits by GET.
func (c *InteriorController) GetEstimator(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := parseEstimateQuery(q)
	if req.Grade == "" {
		req.Grade = string(interior.GradeStandard)
	}
	if req.BusinessType == "" {
		req.BusinessType = string(market.BusinessFNB)
	}

	page := &InteriorPageData{
		Request:       req,
		Selected:      make(map[string]bool, len(req.Items)),
		Grades:        interior.Grades(),
		Items:         interior.Items(),
		BusinessTypes: market.BusinessTypes(),
	}
	for _, k := range req.Items {
		page.Selected[k] = true
	}

	data := newPageData(w, r, "인테리어 견적", page)
	data.Description = "면적과 마감 등급으로 예상 인테리어 비용을 계산해 보세요."

	if q.Get("area") == "" {
		c.templates.Estimator.ExecuteHTTP(w, r, data)
		return
	}

	est, err := interior.Calculate(req)
	if err != nil {
		var ve *interior.ValidationError
		if errors.As(err, &ve) {
			data.Error = ve.Message
			c.templates.Estimator.ExecuteHTTPWithStatus(w, r, http.StatusUnprocessableEntity, data)
			return
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	page.Estimate = est
	c.templates.Estimator.ExecuteHTTP(w, r, data)
}
