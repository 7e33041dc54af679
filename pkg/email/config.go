package email

// Config holds the email delivery service configuration. Both Postmark
// tokens are required: a half-configured email backend should fail at
// startup, not at the first dispatch.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN,required"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN,required"`
	SenderEmail          string `env:"NOTIFY_SENDER_EMAIL,required"`
	RecipientEmail       string `env:"NOTIFY_RECIPIENT_EMAIL,required"`
}
