package outbound

import (
	"context"
	"fmt"

	"github.com/vloex/vloex-go/domain"
)

type CreateVideoParams struct {
	Script        string
	Options       domain.VideoOptions
	WebhookURL    string
	WebhookSecret string
}

type CreateJourneyParams struct {
	Frames        []domain.JourneyFrame
	Options       domain.VideoOptions
	WebhookURL    string
	WebhookSecret string
}

// ApiError is a non-2xx answer from the vendor. Transport failures are
// returned as plain errors and never wrapped in ApiError.
type ApiError struct {
	StatusCode int
	Message    string
}

func (e *ApiError) Error() string {
	return fmt.Sprintf("vloex api error (status %d): %s", e.StatusCode, e.Message)
}

type VideoGatewayPort interface {
	CreateVideo(ctx context.Context, params CreateVideoParams) (domain.VideoJob, error)
	RetrieveVideo(ctx context.Context, id string) (domain.VideoJob, error)
	CreateJourney(ctx context.Context, params CreateJourneyParams) (domain.VideoJob, error)
}
