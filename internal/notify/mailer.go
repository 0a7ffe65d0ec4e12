package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// Message is one email to be delivered.
type Message struct {
	// Sender is the From address.
	Sender string

	// Recipient is the To address.
	Recipient string

	// Subject is the subject line.
	Subject string

	// TextBody is the plain-text body. Always set.
	TextBody string

	// HTMLBody is the HTML body. Optional; when empty the message is
	// sent as plain text only.
	HTMLBody string
}

// Mailer delivers a single message to a recipient.
// Implementations may fail; the Notifier decides what a delivery failure
// means for the run.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SESMailer delivers messages through Amazon SES.
//
// Design decision: We use the SES v2 API rather than SMTP because the
// monitor runs in environments that already carry AWS credentials (cron
// hosts, serverless runtimes) and SES needs no extra secret distribution
// there.
type SESMailer struct {
	// client is the SES v2 API client bound to the configured region.
	client *sesv2.Client
}

// NewSESMailer creates an SESMailer for the given region using the
// default AWS credential chain (environment, shared config, instance role).
func NewSESMailer(ctx context.Context, region string) (*SESMailer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return &SESMailer{client: sesv2.NewFromConfig(cfg)}, nil
}

// Send delivers the message via SES SendEmail.
func (m *SESMailer) Send(ctx context.Context, msg Message) error {
	body := &types.Body{
		Text: &types.Content{
			Data:    aws.String(msg.TextBody),
			Charset: aws.String("UTF-8"),
		},
	}
	if msg.HTMLBody != "" {
		body.Html = &types.Content{
			Data:    aws.String(msg.HTMLBody),
			Charset: aws.String("UTF-8"),
		}
	}

	_, err := m.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(msg.Sender),
		Destination: &types.Destination{
			ToAddresses: []string{msg.Recipient},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(msg.Subject),
					Charset: aws.String("UTF-8"),
				},
				Body: body,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	return nil
}
