package inbound

import (
	"context"

	"github.com/vloex/vloex-go/domain"
)

// JobWatcherPort polls a job until it reaches a terminal status. The update
// channel carries every observed change and is closed after the terminal
// snapshot (or on cancellation).
type JobWatcherPort interface {
	Watch(ctx context.Context, jobID string) (<-chan domain.JobUpdate, <-chan error)
}
