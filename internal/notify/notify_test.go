package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahul4469/bizstart/internal/config"
	"github.com/rahul4469/bizstart/internal/models"
)

type MockSESService struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

func (m *MockSESService) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	return m.SendEmailFunc(ctx, params, optFns...)
}

func sampleInquiry() *models.Inquiry {
	return &models.Inquiry{
		ID:        42,
		Name:      "김사장",
		Phone:     "010-1234-5678",
		Email:     "owner@example.com",
		Topic:     "market",
		Message:   "강남역 카페 상권이 궁금합니다.",
		Status:    models.InquiryNew,
		CreatedAt: time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC),
	}
}

func TestSESNotifierSendsMaskedMail(t *testing.T) {
	var got *ses.SendEmailInput
	mock := &MockSESService{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			got = params
			return &ses.SendEmailOutput{}, nil
		},
	}
	n := NewSESNotifier(mock, "noreply@bizstart.kr", "ops@bizstart.kr", "https://bizstart.kr/")

	require.NoError(t, n.InquiryReceived(context.Background(), sampleInquiry()))
	require.NotNil(t, got)

	assert.Equal(t, "noreply@bizstart.kr", aws.ToString(got.Source))
	assert.Equal(t, []string{"ops@bizstart.kr"}, got.Destination.ToAddresses)
	assert.Contains(t, aws.ToString(got.Message.Subject.Data), "#42")

	body := aws.ToString(got.Message.Body.Text.Data)
	assert.Contains(t, body, "010-****-5678")
	assert.Contains(t, body, "o***@example.com")
	assert.NotContains(t, body, "1234")
	assert.Contains(t, body, "https://bizstart.kr/admin/inquiries")
	assert.Contains(t, body, "강남역 카페")
}

func TestSESNotifierWrapsError(t *testing.T) {
	mock := &MockSESService{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			return nil, errors.New("throttled")
		},
	}
	n := NewSESNotifier(mock, "a@b.kr", "c@d.kr", "")

	err := n.InquiryReceived(context.Background(), sampleInquiry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}

func TestInquiryMessageOmitsEmptyEmail(t *testing.T) {
	inq := sampleInquiry()
	inq.Email = ""
	_, body := inquiryMessage(inq, "")
	assert.NotContains(t, body, "이메일")
}

func TestNewDisabledReturnsNop(t *testing.T) {
	n, err := New(context.Background(), config.MailConfig{Enabled: false}, "")
	require.NoError(t, err)
	assert.IsType(t, Nop{}, n)
	assert.NoError(t, n.InquiryReceived(context.Background(), sampleInquiry()))
}
