package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/notifykit/notifykit/pkg/notify"
)

// payload is the JSON body POSTed to the receiving endpoint.
type payload struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	URL         string       `json:"url,omitempty"`
	Level       notify.Level `json:"level"`
	UserIDs     []string     `json:"user_ids"`
	SentAt      time.Time    `json:"sent_at"`
}

// Service delivers notifications as signed JSON webhooks.
type Service struct {
	config Config
	client *http.Client
}

// NewService creates a webhook delivery service. The endpoint URL is
// validated eagerly; http and https are the only accepted schemes, which
// also blocks SSRF-style targets like file: or gopher: URLs.
func NewService(cfg Config) (*Service, error) {
	u, err := url.Parse(cfg.EndpointURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: only http and https schemes are supported", ErrInvalidURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: host is required", ErrInvalidURL)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &Service{
		config: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

// NewServiceWithClient creates a webhook service with a custom HTTP client,
// for tests or custom transports.
func NewServiceWithClient(cfg Config, client *http.Client) (*Service, error) {
	svc, err := NewService(cfg)
	if err != nil {
		return nil, err
	}
	if client != nil {
		svc.client = client
	}
	return svc, nil
}

func (s *Service) ID() string { return "webhook" }

func (s *Service) DisplayName() string { return "Webhook" }

// Send POSTs the notification to the configured endpoint. Any status
// outside 2xx is a delivery failure.
func (s *Service) Send(ctx context.Context, req notify.Request) error {
	body, err := json.Marshal(payload{
		Name:        req.Name,
		Description: req.Description,
		URL:         req.URL,
		Level:       req.Level,
		UserIDs:     req.UserIDs,
		SentAt:      time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.EndpointURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWebhookDeliveryFailed, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	if s.config.Secret != "" {
		headers, err := SignPayload(s.config.Secret, body)
		if err != nil {
			return err
		}
		for k, v := range headers.Headers() {
			httpReq.Header.Set(k, v)
		}
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWebhookDeliveryFailed, err)
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: endpoint returned %d", ErrWebhookDeliveryFailed, resp.StatusCode)
	}
	return nil
}
