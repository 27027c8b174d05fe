package config

import (
	"fmt"
	"os"
	"strconv"
)

type DynamoConfig struct {
	TableName  string
	TtlMinutes int
}

func GetDynamoConfig() (*DynamoConfig, error) {
	tableName := os.Getenv("JOB_INBOX_TABLE_NAME")
	if tableName == "" {
		return nil, fmt.Errorf("JOB_INBOX_TABLE_NAME must be set")
	}

	ttl := os.Getenv("JOB_INBOX_TTL_MINUTES")
	if ttl == "" {
		return nil, fmt.Errorf("JOB_INBOX_TTL_MINUTES must be set")
	}
	ttlVal, err := strconv.Atoi(ttl)
	if err != nil {
		return nil, fmt.Errorf("Failed to parse job inbox ttl minutes")
	}

	return &DynamoConfig{
		TableName:  tableName,
		TtlMinutes: ttlVal,
	}, nil
}
