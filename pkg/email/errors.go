package email

import "errors"

var (
	ErrFailedToSendEmail = errors.New("failed to send notification email")
	ErrInvalidConfig     = errors.New("invalid email service config")
)
