package inbound

import (
	"context"

	"github.com/vloex/vloex-go/domain"
)

type ProcessWebhookParams struct {
	Payload         []byte
	SignatureHeader string
	TimestampHeader string
}

type WebhookProcessorPort interface {
	// Process returns (event, true, nil) for an authentic delivery. A failed
	// signature or freshness check yields ok == false with no error.
	Process(ctx context.Context, params ProcessWebhookParams) (domain.WebhookEvent, bool, error)
}
