package webhook

import "time"

// Config holds the webhook delivery service configuration. Secret is
// optional: when empty, deliveries go out unsigned.
type Config struct {
	EndpointURL string        `env:"NOTIFY_WEBHOOK_URL,required"`
	Secret      string        `env:"NOTIFY_WEBHOOK_SECRET"`
	Timeout     time.Duration `env:"NOTIFY_WEBHOOK_TIMEOUT" envDefault:"10s"`
}
