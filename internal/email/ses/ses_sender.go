package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"certiquote/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendQuoteReadyEmail(ctx context.Context, toEmail, toName, quoteURL string) error {
	subject := "Your translation quote is ready"
	htmlBody := buildQuoteReadyHTML(toName, quoteURL)
	textBody := fmt.Sprintf("Hi %s,\n\nYour certified translation quote is ready. View it here:\n%s\n\nCertiQuote Team", toName, quoteURL)
	return s.send(ctx, toEmail, subject, htmlBody, textBody)
}

func (s *sesSender) SendQuoteLinkEmail(ctx context.Context, toEmail, toName, resumeURL string) error {
	subject := "Pick up where you left off"
	htmlBody := buildResumeHTML(toName, resumeURL)
	textBody := fmt.Sprintf("Hi %s,\n\nYou can return to your quote any time with this link:\n%s\n\nThe link expires in 24 hours.\n\nCertiQuote Team", toName, resumeURL)
	return s.send(ctx, toEmail, subject, htmlBody, textBody)
}

func (s *sesSender) SendReviewNeededEmail(ctx context.Context, toEmail, toName, quoteID string) error {
	subject := "We're reviewing your quote"
	htmlBody := buildReviewHTML(toName, quoteID)
	textBody := fmt.Sprintf("Hi %s,\n\nYour quote (reference %s) needs a quick look from our team. We'll email you the final price shortly.\n\nCertiQuote Team", toName, quoteID)
	return s.send(ctx, toEmail, subject, htmlBody, textBody)
}

func (s *sesSender) send(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildQuoteReadyHTML(name, quoteURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Your quote is ready</h2>
  <p>Hi %s,</p>
  <p>We've finished pricing your certified translation. Review and accept your quote below:</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #0F766E; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">View Quote</a>
  </p>
  <p>Or copy and paste this link into your browser:</p>
  <p style="word-break: break-all; color: #666;">%s</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">CertiQuote - Certified Document Translation</p>
</body>
</html>`, name, quoteURL, quoteURL)
}

func buildResumeHTML(name, resumeURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Resume your quote</h2>
  <p>Hi %s,</p>
  <p>Your quote is saved. Use the button below to continue where you left off:</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #0F766E; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Continue Quote</a>
  </p>
  <p style="word-break: break-all; color: #666;">%s</p>
  <p style="color: #999; font-size: 12px;">This link expires in 24 hours.</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">CertiQuote - Certified Document Translation</p>
</body>
</html>`, name, resumeURL, resumeURL)
}

func buildReviewHTML(name, quoteID string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">We're reviewing your quote</h2>
  <p>Hi %s,</p>
  <p>Your documents need a quick look from our team before we can finalize the price. We'll email you the final quote shortly.</p>
  <p style="color: #666;">Reference: %s</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">CertiQuote - Certified Document Translation</p>
</body>
</html>`, name, quoteID)
}
