package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type WebhookConfig struct {
	Secret           string
	ToleranceSeconds int
}

func GetWebhookConfig() (*WebhookConfig, error) {
	secret := os.Getenv("VLOEX_WEBHOOK_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("VLOEX_WEBHOOK_SECRET must be set")
	}

	toleranceSeconds := 300
	if tolerance := os.Getenv("VLOEX_WEBHOOK_TOLERANCE_SECONDS"); tolerance != "" {
		toleranceVal, err := strconv.Atoi(tolerance)
		if err != nil {
			return nil, fmt.Errorf("Failed to parse webhook tolerance seconds")
		}
		toleranceSeconds = toleranceVal
	}

	return &WebhookConfig{
		Secret:           secret,
		ToleranceSeconds: toleranceSeconds,
	}, nil
}

func (c *WebhookConfig) Tolerance() time.Duration {
	return time.Duration(c.ToleranceSeconds) * time.Second
}
