package adapters

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/rs/zerolog/log"

	"github.com/vloex/vloex-go/application/ports/outbound"
	"github.com/vloex/vloex-go/config"
)

type s3VideoArchive struct {
	fetcher  ContentFetcher
	s3Svc    *s3.S3
	s3Config *config.S3Config
}

// NewS3VideoArchive copies finished renderings from the vendor's CDN into the
// integrator's own bucket, so the video outlives the vendor's retention.
func NewS3VideoArchive(fetcher ContentFetcher, s3Svc *s3.S3, s3Config *config.S3Config) outbound.VideoArchivePort {
	return &s3VideoArchive{
		fetcher:  fetcher,
		s3Svc:    s3Svc,
		s3Config: s3Config,
	}
}

func (a *s3VideoArchive) Archive(ctx context.Context, jobID string, videoURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, videoURL, nil)
	if err != nil {
		log.Error().Err(err).Str("videoURL", videoURL).Msg("Failed to create download request")
		return "", err
	}

	status, content, err := a.fetcher.FetchContent(req)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		log.Error().Int("status", status).Str("videoURL", videoURL).Msg("Video download returned non-OK status")
		return "", fmt.Errorf("video download returned status %d", status)
	}

	itemPath := a.getS3ItemPath(jobID)

	putInput := &s3.PutObjectInput{
		Bucket:        aws.String(a.s3Config.BucketName),
		Key:           aws.String(itemPath),
		Body:          bytes.NewReader(content),
		ContentLength: aws.Int64(int64(len(content))),
		ContentType:   aws.String("video/mp4"),
	}

	_, err = a.s3Svc.PutObjectWithContext(ctx, putInput)
	if err != nil {
		log.Error().
			Err(err).
			Str("bucket", a.s3Config.BucketName).
			Str("jobID", jobID).
			Msg("Failed to upload video to S3")
		return "", err
	}

	s3Url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.s3Config.BucketName, a.s3Config.Region, itemPath)
	log.Debug().
		Str("s3Url", s3Url).
		Msg("Successfully archived video to S3")

	return s3Url, nil
}

func (a *s3VideoArchive) getS3ItemPath(jobID string) string {
	return fmt.Sprintf("videos/%s.mp4", jobID)
}
