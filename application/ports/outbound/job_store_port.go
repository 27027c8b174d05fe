package outbound

import (
	"context"

	"github.com/vloex/vloex-go/domain"
)

type RecordOutcomeParams struct {
	Event string
	Job   domain.VideoJob
}

type JobStorePort interface {
	RecordOutcome(ctx context.Context, params RecordOutcomeParams) error
}
