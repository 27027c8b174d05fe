package services

import (
	"context"
	"encoding/json"

	"github.com/vloex/vloex-go/application/ports/inbound"
	"github.com/vloex/vloex-go/application/ports/outbound"
	"github.com/vloex/vloex-go/domain"
)

type webhookProcessor struct {
	logger     outbound.LoggerPort
	verifier   inbound.WebhookVerifierPort
	jobStore   outbound.JobStorePort
	archive    outbound.VideoArchivePort
	workerPool outbound.TaskDispatcher
}

func NewWebhookProcessor(
	logger outbound.LoggerPort,
	verifier inbound.WebhookVerifierPort,
	jobStore outbound.JobStorePort,
	archive outbound.VideoArchivePort,
	workerPool outbound.TaskDispatcher,
) inbound.WebhookProcessorPort {
	return &webhookProcessor{
		logger:     logger,
		verifier:   verifier,
		jobStore:   jobStore,
		archive:    archive,
		workerPool: workerPool,
	}
}

func (p *webhookProcessor) Process(ctx context.Context, params inbound.ProcessWebhookParams) (domain.WebhookEvent, bool, error) {
	if !p.verifier.Verify(params.Payload, params.SignatureHeader, params.TimestampHeader) {
		p.logger.Warn("Rejected webhook delivery with a bad signature")
		return domain.WebhookEvent{}, false, nil
	}

	var event domain.WebhookEvent
	if err := json.Unmarshal(params.Payload, &event); err != nil {
		p.logger.Error(err, "Failed to unmarshal webhook payload")
		return domain.WebhookEvent{}, true, err
	}

	if err := p.jobStore.RecordOutcome(ctx, outbound.RecordOutcomeParams{
		Event: event.Event,
		Job:   event.ToJob(),
	}); err != nil {
		return event, true, err
	}

	if event.Event == domain.VideoCompletedEvent && event.VideoURL != "" && p.archive != nil {
		p.submitArchival(event)
	}

	p.logger.InfoWithFields("Processed webhook delivery", map[string]interface{}{
		"event":  event.Event,
		"job_id": event.JobID,
	})

	return event, true, nil
}

// submitArchival copies the video in the background so the vendor gets its
// ack before the download starts. Archival failures are logged, not surfaced;
// the recorded outcome still holds the vendor URL.
func (p *webhookProcessor) submitArchival(event domain.WebhookEvent) {
	err := p.workerPool.Submit(func() {
		_, err := p.archive.Archive(context.Background(), event.JobID, event.VideoURL)
		if err != nil {
			p.logger.ErrorWithFields(err, "Failed to archive video", map[string]interface{}{
				"job_id": event.JobID,
			})
		}
	})
	if err != nil {
		p.logger.Error(err, "Failed to submit archival task to worker pool")
	}
}
