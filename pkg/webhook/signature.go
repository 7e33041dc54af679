package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// SignatureHeaders contains the webhook signature headers attached to every
// delivery. The header names follow the scheme used by the major webhook
// providers so off-the-shelf verifiers work.
type SignatureHeaders struct {
	Signature string
	Timestamp int64
	ID        string
}

// Headers returns the signature headers as a map for HTTP header setting.
func (s SignatureHeaders) Headers() map[string]string {
	return map[string]string{
		"X-Webhook-Signature": s.Signature,
		"X-Webhook-Timestamp": strconv.FormatInt(s.Timestamp, 10),
		"X-Webhook-ID":        s.ID,
	}
}

// SignPayload creates an HMAC-SHA256 signature for webhook authentication.
// The timestamp is bound into the signed message to prevent replay:
// HMAC-SHA256(secret, timestamp + "." + payload).
func SignPayload(secret string, payload []byte) (SignatureHeaders, error) {
	if secret == "" {
		return SignatureHeaders{}, fmt.Errorf("%w: secret is required", ErrInvalidConfiguration)
	}
	if len(payload) == 0 {
		return SignatureHeaders{}, fmt.Errorf("%w: payload cannot be empty", ErrInvalidPayload)
	}

	timestamp := time.Now().Unix()
	id := uuid.New().String()

	signaturePayload := fmt.Sprintf("%d.%s", timestamp, payload)

	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(signaturePayload))
	signature := hex.EncodeToString(h.Sum(nil))

	return SignatureHeaders{
		Signature: signature,
		Timestamp: timestamp,
		ID:        id,
	}, nil
}

// VerifySignature checks a received signature against the payload. The
// timestamp must come from the X-Webhook-Timestamp header of the same
// delivery. Comparison is constant-time.
func VerifySignature(secret string, payload []byte, timestamp int64, signature string) bool {
	if secret == "" || len(payload) == 0 || signature == "" {
		return false
	}

	signaturePayload := fmt.Sprintf("%d.%s", timestamp, payload)
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(signaturePayload))
	expected := hex.EncodeToString(h.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
