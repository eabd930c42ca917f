package service

import (
	"context"
	"fmt"
	"html"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"go.uber.org/zap"
)

// EmailService handles sending emails via Amazon SES
type EmailService struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	enabled   bool
	debug     bool
	logger    *zap.Logger
}

// NewEmailService creates a new email service
func NewEmailService(awsRegion, fromEmail, fromName string, debug bool, logger *zap.Logger) (*EmailService, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	// If fromEmail is empty, create a disabled service
	if fromEmail == "" {
		logger.Info("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{
			enabled: false,
			debug:   debug,
			logger:  logger,
		}, nil
	}

	if debug {
		logger.Debug("Initializing email service with AWS SES",
			zap.String("region", awsRegion),
			zap.String("from_email", fromEmail),
			zap.String("from_name", fromName))
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := sesv2.NewFromConfig(cfg)

	logger.Info("Email service enabled", zap.String("from", fromEmail), zap.String("region", awsRegion))

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   true,
		debug:     debug,
		logger:    logger,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendRunShare mails a link to a saved run
func (s *EmailService) SendRunShare(ctx context.Context, toEmail, nickname, shareURL string, score, streak int) error {
	if !s.enabled {
		s.logger.Info("Skipping email send (service disabled)", zap.String("to", toEmail))
		return nil
	}

	subject := fmt.Sprintf("%s scored %d in ScreenGuess", nickname, score)
	htmlBody := renderShareHTML(nickname, shareURL, score, streak)
	textBody := fmt.Sprintf(`%s finished a ScreenGuess run with %d points and a streak of %d.

See every round here:
%s

---
This is an automated email from ScreenGuess. Please do not reply.
`, nickname, score, streak, shareURL)

	if s.debug {
		s.logger.Debug("Sending run share email",
			zap.String("subject", subject),
			zap.String("to", toEmail),
			zap.Int("html_bytes", len(htmlBody)),
			zap.Int("text_bytes", len(textBody)))
	}

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

func renderShareHTML(nickname, shareURL string, score, streak int) string {
	name := html.EscapeString(nickname)
	link := html.EscapeString(shareURL)
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #1f2937; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #f9f9f9; padding: 30px; border-radius: 0 0 5px 5px; }
		.score { font-size: 32px; font-weight: bold; text-align: center; }
		.button { display: inline-block; padding: 12px 30px; background-color: #f59e0b; color: white; text-decoration: none; border-radius: 5px; margin: 20px 0; }
		.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>ScreenGuess</h1>
		</div>
		<div class="content">
			<p>%s shared an Endless run with you.</p>
			<p class="score">%d points</p>
			<p style="text-align: center;">Best streak: %d</p>
			<p style="text-align: center;">
				<a href="%s" class="button">See the run</a>
			</p>
		</div>
		<div class="footer">
			<p>This is an automated email from ScreenGuess. Please do not reply.</p>
		</div>
	</div>
</body>
</html>
`, name, score, streak, link)
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	if s.debug && result.MessageId != nil {
		s.logger.Debug("SES SendEmail succeeded", zap.String("message_id", *result.MessageId))
	}

	s.logger.Info("Email sent successfully", zap.String("to", toEmail), zap.String("subject", subject))
	return nil
}
