package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rahul4469/bizstart/internal/logger"
	"github.com/rahul4469/bizstart/internal/metrics"
	"github.com/rahul4469/bizstart/internal/models"
	"github.com/rahul4469/bizstart/internal/notify"
	"github.com/rahul4469/bizstart/internal/views"
)

const notifyTimeout = 5 * time.Second

// InquiryController handles the public consultation request form.
type InquiryController struct {
	inquiries InquiryStore
	notifier  notify.Notifier
	templates InquiryTemplates
	log       *logger.Logger
}

type InquiryTemplates struct {
	Form *views.Template
}

func NewInquiryController(inquiries InquiryStore, notifier notify.Notifier, templates InquiryTemplates, log *logger.Logger) *InquiryController {
	return &InquiryController{
		inquiries: inquiries,
		notifier:  notifier,
		templates: templates,
		log:       log,
	}
}

// TopicOption is a selectable consultation topic.
type TopicOption struct {
	Key   string
	Label string
}

var inquiryTopics = []TopicOption{
	{Key: "market", Label: "상권·입지"},
	{Key: "franchise", Label: "프랜차이즈 가맹"},
	{Key: "interior", Label: "인테리어"},
	{Key: "loan", Label: "창업 자금·대출"},
	{Key: "etc", Label: "기타"},
}

type InquiryFormData struct {
	Form   models.InquiryInput
	Topics []TopicOption
}

// GetForm renders /inquiry. A topic query preselects the topic.
func (c *InquiryController) GetForm(w http.ResponseWriter, r *http.Request) {
	form := models.InquiryInput{Topic: r.URL.Query().Get("topic")}
	data := newPageData(w, r, "창업 상담 신청", InquiryFormData{Form: form, Topics: inquiryTopics})
	data.Description = "전문 컨설턴트가 1영업일 안에 연락드립니다."
	c.templates.Form.ExecuteHTTP(w, r, data)
}

// PostForm stores the inquiry and notifies the operator.
func (c *InquiryController) PostForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	form := models.InquiryInput{
		Name:    strings.TrimSpace(r.PostForm.Get("name")),
		Phone:   strings.TrimSpace(r.PostForm.Get("phone")),
		Email:   strings.TrimSpace(r.PostForm.Get("email")),
		Topic:   r.PostForm.Get("topic"),
		Message: strings.TrimSpace(r.PostForm.Get("message")),
		Agree:   r.PostForm.Get("agree") == "on",
	}

	if err := validate.Struct(form); err != nil {
		data := newPageData(w, r, "창업 상담 신청", InquiryFormData{Form: form, Topics: inquiryTopics})
		data.Error = "입력 내용을 확인해 주세요."
		data.FieldErrors = fieldErrors(err)
		c.templates.Form.ExecuteHTTPWithStatus(w, r, http.StatusUnprocessableEntity, data)
		return
	}

	inq, err := c.inquiries.Create(r.Context(), form)
	if err != nil {
		c.log.Error(r.Context(), "inquiry create failed", err)
		data := newPageData(w, r, "창업 상담 신청", InquiryFormData{Form: form, Topics: inquiryTopics})
		data.Error = "상담 신청을 저장하지 못했습니다. 잠시 후 다시 시도해 주세요."
		c.templates.Form.ExecuteHTTPWithStatus(w, r, http.StatusInternalServerError, data)
		return
	}
	metrics.InquiriesReceived.Inc()

	ctx := c.log.WithField(r.Context(), "inquiry_id", inq.ID)
	c.notify(ctx, inq)
	c.log.Info(ctx, "inquiry.received")

	redirectWithFlash(w, r, "/inquiry", flashSuccess, "상담 신청이 접수되었습니다. 곧 연락드리겠습니다.")
}

func (c *InquiryController) notify(ctx context.Context, inq *models.Inquiry) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()
	if err := c.notifier.InquiryReceived(ctx, inq); err != nil {
		metrics.NotificationsFailed.WithLabelValues("email").Inc()
		c.log.Warn(ctx, "inquiry notification failed", err)
	}
}
