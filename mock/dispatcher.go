package mock_vendor

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/vloex/vloex-go/application/ports/outbound"
	"github.com/vloex/vloex-go/domain"
)

// webhookDispatcher plays the vendor's delivery side: it signs the event the
// same way production does, so receivers exercise their real verification
// path against it.
type webhookDispatcher struct {
	logger     outbound.LoggerPort
	workerPool outbound.TaskDispatcher
	client     *http.Client
}

func newWebhookDispatcher(logger outbound.LoggerPort, workerPool outbound.TaskDispatcher) *webhookDispatcher {
	return &webhookDispatcher{
		logger:     logger,
		workerPool: workerPool,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (d *webhookDispatcher) Dispatch(job *mockJob) {
	err := d.workerPool.Submit(func() {
		event := domain.WebhookEvent{
			Event:    domain.VideoCompletedEvent,
			JobID:    job.ID,
			VideoURL: fmt.Sprintf("https://cdn.vloex.test/%s.mp4", job.ID),
		}
		if job.Status == domain.FailedJobStatus {
			event = domain.WebhookEvent{
				Event: domain.VideoFailedEvent,
				JobID: job.ID,
				Error: "rendering failed",
			}
		}

		payload, err := json.Marshal(event)
		if err != nil {
			d.logger.Error(err, "failed to marshal webhook event")
			return
		}

		timestamp := strconv.FormatInt(time.Now().Unix(), 10)

		mac := hmac.New(sha256.New, []byte(job.WebhookSecret))
		mac.Write([]byte(timestamp + "."))
		mac.Write(payload)
		signature := "sha256=" + hex.EncodeToString(mac.Sum(nil))

		req, err := http.NewRequest(http.MethodPost, job.WebhookURL, bytes.NewReader(payload))
		if err != nil {
			d.logger.Error(err, "failed to create webhook request")
			return
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Vloex-Signature", signature)
		req.Header.Set("X-Vloex-Timestamp", timestamp)

		res, err := d.client.Do(req)
		if err != nil {
			d.logger.Error(err, "failed to deliver webhook")
			return
		}
		defer res.Body.Close()

		d.logger.InfoWithFields("Delivered mock webhook", map[string]interface{}{
			"job_id": job.ID,
			"status": res.StatusCode,
		})
	})
	if err != nil {
		d.logger.Error(err, "failed to submit webhook delivery to worker pool")
	}
}
