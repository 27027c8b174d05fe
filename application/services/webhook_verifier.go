package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/vloex/vloex-go/application/ports/inbound"
)

// DefaultSignatureTolerance bounds the replay window for webhook deliveries.
const DefaultSignatureTolerance = 300 * time.Second

type webhookVerifier struct {
	secret    []byte
	tolerance time.Duration
	now       func() time.Time
}

// NewWebhookVerifier builds a verifier for the given shared secret. A
// non-positive tolerance falls back to DefaultSignatureTolerance.
func NewWebhookVerifier(secret []byte, tolerance time.Duration) inbound.WebhookVerifierPort {
	if tolerance <= 0 {
		tolerance = DefaultSignatureTolerance
	}
	return &webhookVerifier{
		secret:    secret,
		tolerance: tolerance,
		now:       time.Now,
	}
}

// Verify checks that the delivery was signed by the holder of the shared
// secret and is fresh. The signed message is "<timestamp>.<payload>" and the
// expected header value is the lowercase hex HMAC-SHA256 digest, optionally
// prefixed like "sha256=<hex>". Malformed input yields false, never a panic.
//
// The digest comparison uses hmac.Equal, which is constant time for
// equal-length inputs; a length mismatch only reveals the digest length,
// which is fixed and public for hex-encoded SHA-256.
func (v *webhookVerifier) Verify(payload []byte, signatureHeader string, timestampHeader string) bool {
	if len(v.secret) == 0 {
		return false
	}
	if signatureHeader == "" {
		return false
	}

	timestamp, err := strconv.ParseInt(timestampHeader, 10, 64)
	if err != nil {
		return false
	}

	skew := v.now().Unix() - timestamp
	if skew < 0 {
		skew = -skew
	}
	if skew > int64(v.tolerance/time.Second) {
		return false
	}

	provided := signatureHeader
	if idx := strings.Index(signatureHeader, "="); idx >= 0 {
		provided = signatureHeader[idx+1:]
	}
	if provided == "" {
		return false
	}

	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(timestampHeader))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(provided))
}
