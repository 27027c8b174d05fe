package adapters

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/donovanhide/eventsource"

	"github.com/vloex/vloex-go/application/ports/outbound"
	"github.com/vloex/vloex-go/config"
	"github.com/vloex/vloex-go/domain"
)

const streamDoneSignal = "[DONE]"
const streamMaxRetries = 3

type jobEventStream struct {
	logger     outbound.LoggerPort
	apiConfig  *config.VideoApiConfig
	workerPool outbound.TaskDispatcher
}

func NewJobEventStream(apiConfig *config.VideoApiConfig, workerPool outbound.TaskDispatcher, logger outbound.LoggerPort) outbound.JobEventStreamPort {
	return &jobEventStream{
		logger:     logger,
		apiConfig:  apiConfig,
		workerPool: workerPool,
	}
}

func (s *jobEventStream) Stream(ctx context.Context, jobID string) (<-chan domain.VideoJob, <-chan error) {
	out := make(chan domain.VideoJob)
	errCh := make(chan error)

	retryCount := 0

	newCtx, cancel := context.WithCancel(ctx)

	err := s.workerPool.Submit(func() {
		defer close(out)
		defer close(errCh)
		defer cancel()

		req, err := http.NewRequestWithContext(newCtx, http.MethodGet, s.apiConfig.ApiUrl+"/v1/jobs/"+jobID+"/events", nil)
		if err != nil {
			s.logger.Error(err, "Failed to create HTTP request for job event stream")
			errCh <- err
			return
		}
		req.Header.Add("Authorization", "Bearer "+s.apiConfig.ApiKey)

		stream, err := eventsource.SubscribeWithRequest("", req)
		if err != nil {
			s.logger.Error(err, "Failed to subscribe to job event stream")
			errCh <- err
			return
		}

		for {
			select {
			case <-newCtx.Done():
				return
			case ev := <-stream.Events:
				if ev.Data() == streamDoneSignal {
					return
				}
				job, err := s.extractJob(ev)
				if err != nil {
					errCh <- err
					cancel()
					return
				}
				out <- job
				if job.Status.Terminal() {
					return
				}
				retryCount = 0
			case err := <-stream.Errors:
				if err == io.EOF {
					s.logger.Info("Job event stream closed")
					return
				} else if retryCount < streamMaxRetries {
					s.logger.ErrorWithFields(err, "Error occurred during streaming, retrying", map[string]interface{}{
						"retry_count": retryCount})
					retryCount++
					continue
				}
				s.logger.Error(err, "Error occurred during streaming, max retries reached")
				errCh <- err
				cancel()
				return
			}
		}
	})
	if err != nil {
		s.logger.Error(err, "Failed to submit task to worker pool")
		errCh <- err
	}

	return out, errCh
}

func (s *jobEventStream) extractJob(event eventsource.Event) (domain.VideoJob, error) {
	var res jobResponse
	err := json.Unmarshal([]byte(event.Data()), &res)
	if err != nil {
		s.logger.Error(err, "Failed to unmarshal event data")
		return domain.VideoJob{}, err
	}

	return res.toJob(), nil
}
