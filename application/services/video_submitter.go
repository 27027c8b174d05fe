package services

import (
	"context"
	"errors"

	"github.com/vloex/vloex-go/application/ports/inbound"
	"github.com/vloex/vloex-go/application/ports/outbound"
	"github.com/vloex/vloex-go/domain"
)

var (
	ErrEmptyScript = errors.New("script must not be empty")
	ErrNoFrames    = errors.New("journey needs at least one frame")
	ErrEmptyFrame  = errors.New("journey frame needs a url or an image")
)

type videoSubmitter struct {
	logger  outbound.LoggerPort
	gateway outbound.VideoGatewayPort
}

func NewVideoSubmitter(logger outbound.LoggerPort, gateway outbound.VideoGatewayPort) inbound.VideoSubmitterPort {
	return &videoSubmitter{
		logger:  logger,
		gateway: gateway,
	}
}

func (s *videoSubmitter) Submit(ctx context.Context, params inbound.SubmitVideoParams) (domain.VideoJob, error) {
	if params.Script == "" {
		return domain.VideoJob{}, ErrEmptyScript
	}

	job, err := s.gateway.CreateVideo(ctx, outbound.CreateVideoParams{
		Script:        params.Script,
		Options:       params.Options,
		WebhookURL:    params.WebhookURL,
		WebhookSecret: params.WebhookSecret,
	})
	if err != nil {
		return domain.VideoJob{}, err
	}

	s.logger.InfoWithFields("Submitted video job", map[string]interface{}{
		"job_id": job.ID,
		"status": string(job.Status),
	})

	return job, nil
}

func (s *videoSubmitter) SubmitJourney(ctx context.Context, params inbound.SubmitJourneyParams) (domain.VideoJob, error) {
	if len(params.Frames) == 0 {
		return domain.VideoJob{}, ErrNoFrames
	}
	for _, frame := range params.Frames {
		if frame.URL == "" && frame.ImageB64 == "" {
			return domain.VideoJob{}, ErrEmptyFrame
		}
	}

	job, err := s.gateway.CreateJourney(ctx, outbound.CreateJourneyParams{
		Frames:        params.Frames,
		Options:       params.Options,
		WebhookURL:    params.WebhookURL,
		WebhookSecret: params.WebhookSecret,
	})
	if err != nil {
		return domain.VideoJob{}, err
	}

	s.logger.InfoWithFields("Submitted journey job", map[string]interface{}{
		"job_id": job.ID,
		"status": string(job.Status),
	})

	return job, nil
}
