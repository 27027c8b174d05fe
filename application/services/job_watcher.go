package services

import (
	"context"
	"time"

	"github.com/vloex/vloex-go/application/ports/inbound"
	"github.com/vloex/vloex-go/application/ports/outbound"
	"github.com/vloex/vloex-go/domain"
)

type jobWatcher struct {
	logger     outbound.LoggerPort
	gateway    outbound.VideoGatewayPort
	workerPool outbound.TaskDispatcher
	interval   time.Duration
}

func NewJobWatcher(logger outbound.LoggerPort, gateway outbound.VideoGatewayPort, workerPool outbound.TaskDispatcher, interval time.Duration) inbound.JobWatcherPort {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &jobWatcher{
		logger:     logger,
		gateway:    gateway,
		workerPool: workerPool,
		interval:   interval,
	}
}

// Watch polls the status endpoint until the job is terminal. Every observed
// status change is forwarded as a JobUpdate; the terminal snapshot is always
// the last update before the channels close.
func (w *jobWatcher) Watch(ctx context.Context, jobID string) (<-chan domain.JobUpdate, <-chan error) {
	out := make(chan domain.JobUpdate)
	errCh := make(chan error)

	newCtx, cancel := context.WithCancel(ctx)

	err := w.workerPool.Submit(func() {
		defer close(out)
		defer close(errCh)
		defer cancel()

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		seq := 0
		var lastStatus domain.JobStatus

		for {
			job, err := w.gateway.RetrieveVideo(newCtx, jobID)
			if err != nil {
				w.logger.ErrorWithFields(err, "Failed to retrieve job status", map[string]interface{}{
					"job_id": jobID,
				})
				errCh <- err
				return
			}

			if job.Status != lastStatus {
				lastStatus = job.Status
				seq++
				select {
				case out <- domain.JobUpdate{Seq: seq, Job: job}:
				case <-newCtx.Done():
					return
				}
			}

			if job.Status.Terminal() {
				return
			}

			select {
			case <-ticker.C:
			case <-newCtx.Done():
				return
			}
		}
	})
	if err != nil {
		w.logger.Error(err, "Failed to submit task to worker pool")
		errCh <- err
	}

	return out, errCh
}
