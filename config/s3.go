package config

import (
	"fmt"
	"os"
)

type S3Config struct {
	BucketName string
	Region     string
}

func GetS3Config() (*S3Config, error) {
	bucketName := os.Getenv("VIDEO_ARCHIVE_BUCKET")
	if bucketName == "" {
		return nil, fmt.Errorf("VIDEO_ARCHIVE_BUCKET must be set")
	}

	region := os.Getenv("VIDEO_ARCHIVE_REGION")
	if region == "" {
		return nil, fmt.Errorf("VIDEO_ARCHIVE_REGION must be set")
	}

	return &S3Config{
		BucketName: bucketName,
		Region:     region,
	}, nil
}
