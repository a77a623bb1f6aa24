package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/mindfuel/daily-quotes/internal/config"
	"github.com/mindfuel/daily-quotes/internal/domain"
	"github.com/mindfuel/daily-quotes/internal/pkg/logger"
)

// SESTransport sends mail through AWS SES using the SDK v2.
type SESTransport struct {
	client   *sesv2.Client
	from     string
	fromName string
	envName  string
	now      func() time.Time
}

// NewSESTransport creates an SES transport. Returns an error when the AWS
// client cannot be initialized from the given credentials.
func NewSESTransport(cfg config.MailConfig, envName string) (*SESTransport, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.SESRegion),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.SESAccessKey, cfg.SESSecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("init aws config: %w", err)
	}

	return &SESTransport{
		client:   sesv2.NewFromConfig(awsCfg),
		from:     cfg.FromAddress,
		fromName: cfg.FromName,
		envName:  envName,
		now:      time.Now,
	}, nil
}

// SendQuote delivers the quote email to one recipient and reports success.
func (t *SESTransport) SendQuote(ctx context.Context, to string, q *domain.Quote, name string, freq domain.Frequency) bool {
	text, html := quoteBodies(name, q)

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fmt.Sprintf("%s <%s>", t.fromName, t.from)),
		Destination:      &types.Destination{ToAddresses: []string{to}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(quoteSubject(freq)), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(text), Charset: aws.String("UTF-8")},
					Html: &types.Content{Data: aws.String(html), Charset: aws.String("UTF-8")},
				},
			},
		},
	}

	if _, err := t.client.SendEmail(ctx, input); err != nil {
		logger.Error("failed to send email", "to", to, "error", err)
		return false
	}
	logger.Info("email sent", "to", to, "frequency", string(freq))
	return true
}

// SendSummary delivers the aggregate report to the administrator. Failures
// are logged, never propagated.
func (t *SESTransport) SendSummary(ctx context.Context, s domain.DailySummary, adminAddr string) {
	if adminAddr == "" {
		logger.Warn("no admin email configured, skipping summary")
		return
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fmt.Sprintf("%s <%s>", t.fromName, t.from)),
		Destination:      &types.Destination{ToAddresses: []string{adminAddr}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(summarySubject(t.envName)), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(summaryBody(s, t.now())), Charset: aws.String("UTF-8")},
				},
			},
		},
	}

	if _, err := t.client.SendEmail(ctx, input); err != nil {
		logger.Error("failed to send summary email", "admin_email", adminAddr, "error", err)
		return
	}
	logger.Info("summary email sent", "admin_email", adminAddr)
}
