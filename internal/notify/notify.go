// Package notify tells the operator about new consultation requests.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/rahul4469/bizstart/internal/config"
	"github.com/rahul4469/bizstart/internal/crypto"
	"github.com/rahul4469/bizstart/internal/models"
)

// Notifier is called after an inquiry is stored. Callers log failures and
// never fail the request because of them.
type Notifier interface {
	InquiryReceived(ctx context.Context, inq *models.Inquiry) error
}

// New returns an SES notifier when mail is enabled and a no-op otherwise.
func New(ctx context.Context, cfg config.MailConfig, baseURL string) (Notifier, error) {
	if !cfg.Enabled {
		return Nop{}, nil
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return NewSESNotifier(ses.NewFromConfig(awsCfg), cfg.From, cfg.AdminTo, baseURL), nil
}

// Nop drops every notification.
type Nop struct{}

func (Nop) InquiryReceived(context.Context, *models.Inquiry) error { return nil }

// SESService is the part of the SES client used here.
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SESNotifier struct {
	client  SESService
	from    string
	to      string
	baseURL string
}

func NewSESNotifier(client SESService, from, to, baseURL string) *SESNotifier {
	return &SESNotifier{
		client:  client,
		from:    from,
		to:      to,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (n *SESNotifier) InquiryReceived(ctx context.Context, inq *models.Inquiry) error {
	subject, body := inquiryMessage(inq, n.baseURL)
	_, err := n.client.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{n.to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject), Charset: aws.String("UTF-8")},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body), Charset: aws.String("UTF-8")},
			},
		},
		Source: aws.String(n.from),
	})
	if err != nil {
		return fmt.Errorf("send inquiry mail: %w", err)
	}
	return nil
}

// inquiryMessage builds the operator mail. Contact details are masked; the
// full values are only shown in the admin console.
func inquiryMessage(inq *models.Inquiry, baseURL string) (string, string) {
	subject := fmt.Sprintf("[창업상담] 새 문의 #%d (%s)", inq.ID, inq.Name)

	var b strings.Builder
	fmt.Fprintf(&b, "이름: %s\n", inq.Name)
	fmt.Fprintf(&b, "연락처: %s\n", crypto.MaskPhone(inq.Phone))
	if inq.Email != "" {
		fmt.Fprintf(&b, "이메일: %s\n", crypto.MaskEmail(inq.Email))
	}
	fmt.Fprintf(&b, "분야: %s\n", inq.Topic)
	fmt.Fprintf(&b, "접수: %s\n\n", inq.CreatedAt.Format("2006-01-02 15:04"))
	b.WriteString(inq.Message)
	fmt.Fprintf(&b, "\n\n관리자 화면: %s/admin/inquiries\n", baseURL)
	return subject, b.String()
}
