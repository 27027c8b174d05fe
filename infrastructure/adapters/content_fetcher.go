package adapters

import (
	"io"
	"net/http"
	"time"

	"github.com/vloex/vloex-go/application/ports/outbound"
)

// ContentFetcher executes a prepared request and hands back the status code
// together with the full body. Non-2xx answers are not an error at this
// layer; the gateway decides how to surface them.
type ContentFetcher interface {
	FetchContent(req *http.Request) (int, []byte, error)
}

type contentFetcher struct {
	client *http.Client
	logger outbound.LoggerPort
	debug  bool
}

func NewContentFetcher(logger outbound.LoggerPort, timeout time.Duration, debug bool) ContentFetcher {
	return &contentFetcher{
		client: &http.Client{Timeout: timeout},
		logger: logger,
		debug:  debug,
	}
}

func (c *contentFetcher) FetchContent(req *http.Request) (int, []byte, error) {
	if c.debug {
		c.logger.DebugWithFields("Sending HTTP request", map[string]interface{}{
			"method": req.Method,
			"URL":    req.URL.String(),
		})
	}

	res, err := c.client.Do(req)
	if err != nil {
		c.logger.ErrorWithFields(err, "Failed to send the HTTP request", map[string]interface{}{
			"method": req.Method,
			"URL":    req.URL.String(),
		})
		return 0, nil, err
	}

	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			c.logger.Error(err, "Failed to close the response body")
		}
	}(res.Body)

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		c.logger.ErrorWithFields(err, "Failed to read the response body", map[string]interface{}{
			"method": req.Method,
			"URL":    req.URL.String(),
		})
		return res.StatusCode, nil, err
	}

	if c.debug {
		c.logger.DebugWithFields("Received HTTP response", map[string]interface{}{
			"method": req.Method,
			"URL":    req.URL.String(),
			"status": res.StatusCode,
			"body":   string(payload),
		})
	}

	return res.StatusCode, payload, nil
}
