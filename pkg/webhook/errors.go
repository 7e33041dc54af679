package webhook

import "errors"

var (
	ErrWebhookDeliveryFailed = errors.New("webhook delivery failed")
	ErrInvalidConfiguration  = errors.New("invalid webhook configuration")
	ErrInvalidPayload        = errors.New("invalid webhook payload")
	ErrInvalidURL            = errors.New("invalid webhook URL")
)
