package config

import (
	"fmt"
	"os"
	"strconv"
)

const DefaultApiUrl = "https://api.vloex.com"

type VideoApiConfig struct {
	ApiUrl         string
	ApiKey         string
	TimeoutSeconds int
	RequestsPerMin int
	Debug          bool
}

func GetVideoApiConfig() (*VideoApiConfig, error) {
	apiKey := os.Getenv("VLOEX_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("VLOEX_API_KEY must be set")
	}

	apiUrl := os.Getenv("VLOEX_API_URL")
	if apiUrl == "" {
		apiUrl = DefaultApiUrl
	}

	timeoutSeconds := 30
	if timeout := os.Getenv("VLOEX_TIMEOUT_SECONDS"); timeout != "" {
		timeoutVal, err := strconv.Atoi(timeout)
		if err != nil {
			return nil, fmt.Errorf("Failed to parse vloex timeout seconds")
		}
		timeoutSeconds = timeoutVal
	}

	requestsPerMin := 120
	if rpm := os.Getenv("VLOEX_REQUESTS_PER_MINUTE"); rpm != "" {
		rpmVal, err := strconv.Atoi(rpm)
		if err != nil {
			return nil, fmt.Errorf("Failed to parse vloex requests per minute")
		}
		requestsPerMin = rpmVal
	}

	debug := os.Getenv("VLOEX_DEBUG") == "true"

	return &VideoApiConfig{
		ApiUrl:         apiUrl,
		ApiKey:         apiKey,
		TimeoutSeconds: timeoutSeconds,
		RequestsPerMin: requestsPerMin,
		Debug:          debug,
	}, nil
}
