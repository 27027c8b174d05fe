package mock_vendor

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vloex/vloex-go/application/ports/outbound"
	"github.com/vloex/vloex-go/domain"
)

type createRequest struct {
	Input         string `json:"input"`
	WebhookURL    string `json:"webhook_url"`
	WebhookSecret string `json:"webhook_secret"`
}

type journeyRequest struct {
	Frames []struct {
		URL      string `json:"url"`
		ImageB64 string `json:"image_b64"`
	} `json:"frames"`
	WebhookURL    string `json:"webhook_url"`
	WebhookSecret string `json:"webhook_secret"`
}

type MockVendorController interface {
	RegisterRoutes(g *gin.Engine)
}

type mockVendorController struct {
	logger     outbound.LoggerPort
	registry   *jobRegistry
	dispatcher *webhookDispatcher
}

func NewMockVendorController(logger outbound.LoggerPort, registry *jobRegistry, dispatcher *webhookDispatcher) MockVendorController {
	return &mockVendorController{
		logger:     logger,
		registry:   registry,
		dispatcher: dispatcher,
	}
}

func (m *mockVendorController) createVideo(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "input is required"})
		return
	}
	if req.Input == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "input must not be empty"})
		return
	}

	job := &mockJob{
		ID:            uuid.NewString(),
		Status:        domain.QueuedJobStatus,
		WebhookURL:    req.WebhookURL,
		WebhookSecret: req.WebhookSecret,
		// The magic script "[fail]" asks the fake backend to fail the job,
		// so receivers can exercise their video.failed path.
		Fail: req.Input == "[fail]",
	}
	m.registry.add(job)

	// Creation answers with job_id, matching the vendor's newer naming.
	c.JSON(http.StatusOK, gin.H{"job_id": job.ID, "status": string(job.Status)})
}

func (m *mockVendorController) createJourney(c *gin.Context) {
	var req journeyRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Frames) == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "frames must not be empty"})
		return
	}

	job := &mockJob{
		ID:            uuid.NewString(),
		Status:        domain.QueuedJobStatus,
		WebhookURL:    req.WebhookURL,
		WebhookSecret: req.WebhookSecret,
	}
	m.registry.add(job)

	c.JSON(http.StatusOK, gin.H{"job_id": job.ID, "status": string(job.Status)})
}

func (m *mockVendorController) getStatus(c *gin.Context) {
	job, ok := m.registry.advance(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "job not found"})
		return
	}

	body := gin.H{"id": job.ID, "status": string(job.Status)}
	switch job.Status {
	case domain.CompletedJobStatus:
		body["video_url"] = fmt.Sprintf("https://cdn.vloex.test/%s.mp4", job.ID)
	case domain.FailedJobStatus:
		body["error_message"] = "rendering failed"
	}
	if job.Status.Terminal() && job.WebhookURL != "" && m.dispatcher != nil {
		m.dispatcher.Dispatch(job)
	}

	c.JSON(http.StatusOK, body)
}

func (m *mockVendorController) streamEvents(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")

	id := c.Param("id")
	for {
		job, ok := m.registry.advance(id)
		if !ok {
			c.SSEvent("message", gin.H{"detail": "job not found"})
			return
		}

		payload := gin.H{"id": job.ID, "status": string(job.Status)}
		switch job.Status {
		case domain.CompletedJobStatus:
			payload["video_url"] = fmt.Sprintf("https://cdn.vloex.test/%s.mp4", job.ID)
		case domain.FailedJobStatus:
			payload["error_message"] = "rendering failed"
		}
		c.SSEvent("message", payload)
		c.Writer.Flush()

		if job.Status.Terminal() {
			return
		}
	}
}

func (m *mockVendorController) RegisterRoutes(g *gin.Engine) {
	g.POST("/v1/generate", m.createVideo)
	g.POST("/v1/journeys", m.createJourney)
	g.GET("/v1/jobs/:id/status", m.getStatus)
	g.GET("/v1/jobs/:id/events", m.streamEvents)
}
