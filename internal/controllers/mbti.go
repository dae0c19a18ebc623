package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/rahul4469/bizstart/internal/logger"
	"github.com/rahul4469/bizstart/internal/mbti"
	"github.com/rahul4469/bizstart/internal/metrics"
	"github.com/rahul4469/bizstart/internal/models"
	"github.com/rahul4469/bizstart/internal/views"
)

// MBTIController serves the founder personality quiz.
type MBTIController struct {
	templates MBTITemplates
	log       *logger.Logger
}

type MBTITemplates struct {
	Test   *views.Template
	Result *views.Template
}

func NewMBTIController(templates MBTITemplates, log *logger.Logger) *MBTIController {
	return &MBTIController{templates: templates, log: log}
}

type questionDTO struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Axis string `json:"axis"`
}

type questionsResponse struct {
	Questions []questionDTO `json:"questions"`
	Scale     struct {
		Min int `json:"min"`
		Max int `json:"max"`
	} `json:"scale"`
}

type resultRequest struct {
	Answers mbti.Answers `json:"answers"`
}

// GetQuestions handles GET /api/mbti/questions.
func (c *MBTIController) GetQuestions(w http.ResponseWriter, r *http.Request) {
	var resp questionsResponse
	for _, q := range mbti.Questions() {
		resp.Questions = append(resp.Questions, questionDTO{ID: q.ID, Text: q.Text, Axis: q.Axis.String()})
	}
	resp.Scale.Min, resp.Scale.Max = mbti.ScaleMin, mbti.ScaleMax
	writeJSON(w, http.StatusOK, resp)
}

// PostResult handles POST /api/mbti/result with {"answers":{"q1":5,...}}.
// Missing or out-of-range answers are ignored by the scorer, so an absent
// "answers" key scores like an empty quiz.
func (c *MBTIController) PostResult(w http.ResponseWriter, r *http.Request) {
	var req resultRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidBody, "요청 본문을 해석할 수 없습니다.", nil)
		return
	}

	res := mbti.Calculate(req.Answers)
	metrics.MBTIResults.WithLabelValues(res.Type, metrics.SourceAnswers).Inc()
	writeJSON(w, http.StatusOK, res)
}

// GetResult handles GET /api/mbti/result?type=ENTJ.
func (c *MBTIController) GetResult(w http.ResponseWriter, r *http.Request) {
	res, err := mbti.RecommendFromType(r.URL.Query().Get("type"))
	if err != nil {
		var ve *mbti.ValidationError
		if errors.As(err, &ve) {
			writeError(w, http.StatusBadRequest, ve.Code, ve.Message, nil)
			return
		}
		writeError(w, http.StatusInternalServerError, CodeInternal, "일시적인 오류가 발생했습니다.", nil)
		return
	}
	metrics.MBTIResults.WithLabelValues(res.Type, metrics.SourceType).Inc()
	writeJSON(w, http.StatusOK, res)
}

// ChoiceOption is one radio button of the 1..5 scale.
type ChoiceOption struct {
	Value int
	Label string
}

var choiceLabels = map[int]string{
	1: "전혀 아니다",
	2: "아니다",
	3: "보통이다",
	4: "그렇다",
	5: "매우 그렇다",
}

type MBTITestData struct {
	Questions []mbti.Question
	Choices   []ChoiceOption
	Answers   mbti.Answers
}

type MBTIResultData struct {
	Result   mbti.Result
	ShareURL string
	Links    map[string]string
}

func choiceOptions() []ChoiceOption {
	out := make([]ChoiceOption, 0, mbti.ScaleMax-mbti.ScaleMin+1)
	for v := mbti.ScaleMin; v <= mbti.ScaleMax; v++ {
		out = append(out, ChoiceOption{Value: v, Label: choiceLabels[v]})
	}
	return out
}

// GetTest renders the quiz form.
func (c *MBTIController) GetTest(w http.ResponseWriter, r *http.Request) {
	data := newPageData(w, r, "창업 성향 테스트", MBTITestData{
		Questions: mbti.Questions(),
		Choices:   choiceOptions(),
		Answers:   mbti.Answers{},
	})
	c.templates.Test.ExecuteHTTP(w, r, data)
}

// PostTest scores a submitted quiz. The page form requires every question;
// the JSON API does not.
func (c *MBTIController) PostTest(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	answers := mbti.Answers{}
	missing := map[string]string{}
	for _, q := range mbti.Questions() {
		v, err := strconv.Atoi(r.PostForm.Get(q.ID))
		if err != nil || v < mbti.ScaleMin || v > mbti.ScaleMax {
			missing[q.ID] = "응답을 선택해 주세요."
			continue
		}
		answers[q.ID] = v
	}

	if len(missing) > 0 {
		data := newPageData(w, r, "창업 성향 테스트", MBTITestData{
			Questions: mbti.Questions(),
			Choices:   choiceOptions(),
			Answers:   answers,
		})
		data.Error = "모든 문항에 응답해 주세요."
		data.FieldErrors = missing
		c.templates.Test.ExecuteHTTPWithStatus(w, r, http.StatusUnprocessableEntity, data)
		return
	}

	res := mbti.Calculate(answers)
	metrics.MBTIResults.WithLabelValues(res.Type, metrics.SourceAnswers).Inc()
	c.renderResult(w, r, res)
}

// GetResultPage renders /mbti/result?type=XXXX, the shareable form of a result.
func (c *MBTIController) GetResultPage(w http.ResponseWriter, r *http.Request) {
	res, err := mbti.RecommendFromType(r.URL.Query().Get("type"))
	if err != nil {
		redirectWithFlash(w, r, "/mbti", flashError, "올바르지 않은 유형 코드입니다. 테스트를 진행해 주세요.")
		return
	}
	metrics.MBTIResults.WithLabelValues(res.Type, metrics.SourceType).Inc()
	c.renderResult(w, r, res)
}

func (c *MBTIController) renderResult(w http.ResponseWriter, r *http.Request, res mbti.Result) {
	links := make(map[string]string, len(res.Recommended))
	for _, rec := range res.Recommended {
		links[rec.Key] = directoryLink(rec.Key)
	}
	data := newPageData(w, r, res.Type+" · 창업 성향 결과", MBTIResultData{
		Result:   res,
		ShareURL: "/mbti/result?type=" + res.Type,
		Links:    links,
	})
	data.Description = res.Description
	c.templates.Result.ExecuteHTTP(w, r, data)
}

// directoryLink points a recommended category at the franchise directory
// when the directory lists that category.
func directoryLink(category string) string {
	for _, fc := range models.FranchiseCategories() {
		if fc.Key == category {
			return "/franchises?" + models.FranchiseFilter{Category: category}.Values().Encode()
		}
	}
	return "/franchises"
}
