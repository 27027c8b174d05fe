package inbound

// WebhookVerifierPort decides whether a received webhook delivery is authentic
// and fresh. Malformed input never causes an error, only a false verdict.
type WebhookVerifierPort interface {
	Verify(payload []byte, signatureHeader string, timestampHeader string) bool
}
