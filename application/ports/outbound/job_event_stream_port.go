package outbound

import (
	"context"

	"github.com/vloex/vloex-go/domain"
)

// JobEventStreamPort subscribes to the vendor's per-job SSE progress feed.
// Both channels are closed when the stream ends or the context is cancelled.
type JobEventStreamPort interface {
	Stream(ctx context.Context, jobID string) (<-chan domain.VideoJob, <-chan error)
}
