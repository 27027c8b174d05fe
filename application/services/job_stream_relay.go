package services

import (
	"context"

	"github.com/vloex/vloex-go/application/ports/inbound"
	"github.com/vloex/vloex-go/application/ports/outbound"
	"github.com/vloex/vloex-go/channel_utils"
	"github.com/vloex/vloex-go/domain"
)

// jobStreamRelay is the push-based JobWatcherPort: instead of polling the
// status endpoint it rides the vendor's SSE feed and reshapes its snapshots
// into JobUpdates.
type jobStreamRelay struct {
	logger     outbound.LoggerPort
	stream     outbound.JobEventStreamPort
	workerPool outbound.TaskDispatcher
}

func NewJobStreamRelay(logger outbound.LoggerPort, stream outbound.JobEventStreamPort, workerPool outbound.TaskDispatcher) inbound.JobWatcherPort {
	return &jobStreamRelay{
		logger:     logger,
		stream:     stream,
		workerPool: workerPool,
	}
}

func (r *jobStreamRelay) Watch(ctx context.Context, jobID string) (<-chan domain.JobUpdate, <-chan error) {
	out := make(chan domain.JobUpdate)
	relayErrCh := make(chan error, 1)

	newCtx, cancel := context.WithCancel(ctx)

	jobs, streamErrCh := r.stream.Stream(newCtx, jobID)

	mergedErrCh, err := channel_utils.MergeChannels[error](r.workerPool, streamErrCh, relayErrCh)
	if err != nil {
		r.logger.Error(err, "Failed to merge error channels")
		close(out)
		relayErrCh <- err
		close(relayErrCh)
		cancel()
		return out, relayErrCh
	}

	err = r.workerPool.Submit(func() {
		defer close(out)
		defer close(relayErrCh)
		defer cancel()

		seq := 0
		var lastStatus domain.JobStatus

		for job := range jobs {
			if job.Status == lastStatus {
				continue
			}
			lastStatus = job.Status
			seq++
			select {
			case out <- domain.JobUpdate{Seq: seq, Job: job}:
			case <-newCtx.Done():
				return
			}
			if job.Status.Terminal() {
				return
			}
		}
	})
	if err != nil {
		r.logger.Error(err, "Failed to submit task to worker pool")
		relayErrCh <- err
		close(out)
		close(relayErrCh)
		cancel()
	}

	return out, mergedErrCh
}
