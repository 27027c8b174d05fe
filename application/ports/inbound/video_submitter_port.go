package inbound

import (
	"context"

	"github.com/vloex/vloex-go/domain"
)

type SubmitVideoParams struct {
	Script        string
	Options       domain.VideoOptions
	WebhookURL    string
	WebhookSecret string
}

type SubmitJourneyParams struct {
	Frames        []domain.JourneyFrame
	Options       domain.VideoOptions
	WebhookURL    string
	WebhookSecret string
}

type VideoSubmitterPort interface {
	Submit(ctx context.Context, params SubmitVideoParams) (domain.VideoJob, error)
	SubmitJourney(ctx context.Context, params SubmitJourneyParams) (domain.VideoJob, error)
}
