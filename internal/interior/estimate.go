// Package interior estimates self-interior costs for a new store.
// All amounts are in units of 10,000 KRW (만원).
package interior

import (
	"fmt"
	"math"
	"strings"

	"github.com/rahul4469/bizstart/internal/market"
)

// Grade is the finish level.
type Grade string

const (
	GradeBasic    Grade = "basic"
	GradeStandard Grade = "standard"
	GradePremium  Grade = "premium"
)

// MaxAreaPyeong bounds the floor area accepted by Estimate.
const MaxAreaPyeong = 500

// VATRate is applied to the subtotal.
const VATRate = 0.10

// BandRate widens the total into a low/high range.
const BandRate = 0.10

// fnbSurcharge applies to wet-work items for food and beverage stores.
const fnbSurcharge = 1.15

type item struct {
	Key   string
	Label string
	// Per-pyeong unit cost by grade, or a flat fee when Flat is set.
	Cost map[Grade]float64
	Flat bool
	// Wet marks items that carry the FNB surcharge.
	Wet bool
}

// catalog order is the order of line items in every estimate.
var catalog = []item{
	{Key: "demolition", Label: "철거", Cost: map[Grade]float64{GradeBasic: 8, GradeStandard: 10, GradePremium: 12}},
	{Key: "floor", Label: "바닥", Cost: map[Grade]float64{GradeBasic: 12, GradeStandard: 18, GradePremium: 30}},
	{Key: "wall", Label: "벽체·도장", Cost: map[Grade]float64{GradeBasic: 10, GradeStandard: 16, GradePremium: 28}},
	{Key: "ceiling", Label: "천장", Cost: map[Grade]float64{GradeBasic: 8, GradeStandard: 12, GradePremium: 20}},
	{Key: "electrical", Label: "전기·조명", Cost: map[Grade]float64{GradeBasic: 10, GradeStandard: 15, GradePremium: 25}, Wet: true},
	{Key: "plumbing", Label: "설비·배관", Cost: map[Grade]float64{GradeBasic: 6, GradeStandard: 9, GradePremium: 14}, Wet: true},
	{Key: "signage", Label: "간판", Cost: map[Grade]float64{GradeBasic: 150, GradeStandard: 300, GradePremium: 600}, Flat: true},
	{Key: "furniture", Label: "가구·집기", Cost: map[Grade]float64{GradeBasic: 15, GradeStandard: 25, GradePremium: 45}},
}

// ItemKeys returns the valid item keys in catalog order.
func ItemKeys() []string {
	out := make([]string, len(catalog))
	for i, it := range catalog {
		out[i] = it.Key
	}
	return out
}

// ItemOption is a selectable work item for forms.
type ItemOption struct {
	Key   string
	Label string
}

// Items returns the work items in catalog order.
func Items() []ItemOption {
	out := make([]ItemOption, len(catalog))
	for i, it := range catalog {
		out[i] = ItemOption{Key: it.Key, Label: it.Label}
	}
	return out
}

// Grades returns the supported grades from cheapest to most expensive.
func Grades() []Grade {
	return []Grade{GradeBasic, GradeStandard, GradePremium}
}

func (g Grade) Label() string {
	switch g {
	case GradeBasic:
		return "실속형"
	case GradeStandard:
		return "표준형"
	case GradePremium:
		return "고급형"
	default:
		return string(g)
	}
}

// Request is the estimator input. An empty Items list selects every item.
type Request struct {
	AreaPyeong   float64  `json:"areaPyeong"`
	Grade        string   `json:"grade"`
	BusinessType string   `json:"businessType"`
	Items        []string `json:"items,omitempty"`
}

// LineItem is one priced row of an estimate.
type LineItem struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Cost  int    `json:"cost"`
}

// Estimate is the priced result.
type Estimate struct {
	AreaPyeong float64    `json:"areaPyeong"`
	Grade      Grade      `json:"grade"`
	Items      []LineItem `json:"items"`
	Subtotal   int        `json:"subtotal"`
	VAT        int        `json:"vat"`
	Total      int        `json:"total"`
	Low        int        `json:"low"`
	High       int        `json:"high"`
	PerPyeong  int        `json:"perPyeong"`
}

// Error codes reported by ValidationError.
const (
	CodeInvalidArea         = "INVALID_AREA"
	CodeInvalidGrade        = "INVALID_GRADE"
	CodeInvalidBusinessType = "INVALID_BUSINESS_TYPE"
	CodeInvalidItem         = "INVALID_ITEM"
)

// ValidationError reports malformed estimator input.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Calculate prices the request. It is a pure function.
func Calculate(req Request) (*Estimate, error) {
	if math.IsNaN(req.AreaPyeong) || req.AreaPyeong <= 0 || req.AreaPyeong > MaxAreaPyeong {
		return nil, &ValidationError{Code: CodeInvalidArea, Message: fmt.Sprintf("면적은 0평 초과 %d평 이하로 입력해 주세요.", MaxAreaPyeong)}
	}
	grade := Grade(strings.ToLower(strings.TrimSpace(req.Grade)))
	if _, ok := catalog[0].Cost[grade]; !ok {
		return nil, &ValidationError{Code: CodeInvalidGrade, Message: "마감 등급은 basic, standard, premium 중 하나여야 합니다."}
	}
	bt, err := market.ParseBusinessType(req.BusinessType)
	if err != nil {
		return nil, &ValidationError{Code: CodeInvalidBusinessType, Message: "업종은 FNB, RETAIL, SERVICE 중 하나여야 합니다."}
	}
	selected, err := selectItems(req.Items)
	if err != nil {
		return nil, err
	}

	est := &Estimate{AreaPyeong: req.AreaPyeong, Grade: grade}
	for _, it := range catalog {
		if !selected[it.Key] {
			continue
		}
		cost := it.Cost[grade]
		if !it.Flat {
			cost *= req.AreaPyeong
		}
		if it.Wet && bt == market.BusinessFNB {
			cost *= fnbSurcharge
		}
		li := LineItem{Key: it.Key, Label: it.Label, Cost: int(math.Round(cost))}
		est.Items = append(est.Items, li)
		est.Subtotal += li.Cost
	}
	est.VAT = int(math.Round(float64(est.Subtotal) * VATRate))
	est.Total = est.Subtotal + est.VAT
	est.Low = int(math.Round(float64(est.Total) * (1 - BandRate)))
	est.High = int(math.Round(float64(est.Total) * (1 + BandRate)))
	est.PerPyeong = int(math.Round(float64(est.Total) / req.AreaPyeong))
	return est, nil
}

func selectItems(keys []string) (map[string]bool, error) {
	selected := make(map[string]bool, len(catalog))
	if len(keys) == 0 {
		for _, it := range catalog {
			selected[it.Key] = true
		}
		return selected, nil
	}
	valid := make(map[string]bool, len(catalog))
	for _, it := range catalog {
		valid[it.Key] = true
	}
	for _, k := range keys {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		if !valid[k] {
			return nil, &ValidationError{Code: CodeInvalidItem, Message: fmt.Sprintf("알 수 없는 공사 항목입니다: %s", k)}
		}
		selected[k] = true
	}
	if len(selected) == 0 {
		for _, it := range catalog {
			selected[it.Key] = true
		}
	}
	return selected, nil
}
