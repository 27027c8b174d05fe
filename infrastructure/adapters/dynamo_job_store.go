package adapters

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"

	"github.com/vloex/vloex-go/application/ports/outbound"
	"github.com/vloex/vloex-go/config"
)

type dynamoOutcomeItem struct {
	JobId        string `dynamodbav:"job_id"`
	Event        string `dynamodbav:"event"`
	Status       string `dynamodbav:"status"`
	VideoUrl     string `dynamodbav:"video_url"`
	ErrorMessage string `dynamodbav:"error_message"`
	ReceivedAt   int64  `dynamodbav:"received_at"`
	TTL          int64  `dynamodbav:"ttl"`
}

type dynamoJobStore struct {
	logger       outbound.LoggerPort
	dynamoSvc    *dynamodb.DynamoDB
	dynamoConfig *config.DynamoConfig
}

func NewDynamoJobStore(logger outbound.LoggerPort, dynamoSvc *dynamodb.DynamoDB, dynamoConfig *config.DynamoConfig) outbound.JobStorePort {
	return &dynamoJobStore{
		logger:       logger,
		dynamoSvc:    dynamoSvc,
		dynamoConfig: dynamoConfig,
	}
}

func (s *dynamoJobStore) RecordOutcome(ctx context.Context, params outbound.RecordOutcomeParams) error {
	now := time.Now()
	item := dynamoOutcomeItem{
		JobId:        params.Job.ID,
		Event:        params.Event,
		Status:       string(params.Job.Status),
		VideoUrl:     params.Job.URL,
		ErrorMessage: params.Job.Error,
		ReceivedAt:   now.Unix(),
		TTL:          now.Add(time.Duration(s.dynamoConfig.TtlMinutes) * time.Minute).Unix(),
	}

	av, err := dynamodbattribute.MarshalMap(item)
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to marshal outcome item", map[string]interface{}{
			"item": item,
		})
		return err
	}

	input := &dynamodb.PutItemInput{
		Item:      av,
		TableName: aws.String(s.dynamoConfig.TableName),
	}

	_, err = s.dynamoSvc.PutItemWithContext(ctx, input)
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to save outcome item", map[string]interface{}{
			"item": item,
		})
		return err
	}

	return err
}
