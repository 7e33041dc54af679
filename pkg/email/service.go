package email

import (
	"context"
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/mrz1836/postmark"

	"github.com/notifykit/notifykit/pkg/notify"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Service delivers notifications as Postmark transactional emails.
type Service struct {
	client *postmark.Client
	config Config
}

// NewService creates a Postmark-backed delivery service.
func NewService(cfg Config) (*Service, error) {
	if cfg.PostmarkServerToken == "" {
		return nil, fmt.Errorf("%w: PostmarkServerToken is required", ErrInvalidConfig)
	}
	if cfg.PostmarkAccountToken == "" {
		return nil, fmt.Errorf("%w: PostmarkAccountToken is required", ErrInvalidConfig)
	}
	if !emailRegex.MatchString(cfg.SenderEmail) {
		return nil, fmt.Errorf("%w: SenderEmail must be a valid email address", ErrInvalidConfig)
	}
	if !emailRegex.MatchString(cfg.RecipientEmail) {
		return nil, fmt.Errorf("%w: RecipientEmail must be a valid email address", ErrInvalidConfig)
	}

	return &Service{
		client: postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken),
		config: cfg,
	}, nil
}

// MustNewService creates a Postmark service that panics on invalid config,
// failing fast during initialization rather than at the first dispatch.
func MustNewService(cfg Config) *Service {
	svc, err := NewService(cfg)
	if err != nil {
		panic(err)
	}
	return svc
}

func (s *Service) ID() string { return "email" }

func (s *Service) DisplayName() string { return "Email" }

// Send delivers one notification as a single email to the configured
// recipient address. The notification level becomes the Postmark tag so
// delivery analytics can be split by severity.
func (s *Service) Send(ctx context.Context, req notify.Request) error {
	resp, err := s.client.SendEmail(ctx, postmark.Email{
		From:     s.config.SenderEmail,
		To:       s.config.RecipientEmail,
		Subject:  req.Name,
		Tag:      req.Level.String(),
		HTMLBody: buildHTMLBody(req),
		TextBody: buildTextBody(req),
	})
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(
			ErrFailedToSendEmail,
			fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message),
		)
	}
	return nil
}

func buildHTMLBody(req notify.Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>%s</h2>", html.EscapeString(req.Name))
	if req.Description != "" {
		fmt.Fprintf(&b, "<p>%s</p>", html.EscapeString(req.Description))
	}
	if req.URL != "" {
		fmt.Fprintf(&b, `<p><a href="%s">%s</a></p>`, html.EscapeString(req.URL), html.EscapeString(req.URL))
	}
	return b.String()
}

func buildTextBody(req notify.Request) string {
	parts := []string{req.Name}
	if req.Description != "" {
		parts = append(parts, req.Description)
	}
	if req.URL != "" {
		parts = append(parts, req.URL)
	}
	return strings.Join(parts, "\n\n")
}
