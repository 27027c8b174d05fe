package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vloex/vloex-go/application/ports/inbound"
	"github.com/vloex/vloex-go/application/ports/outbound"
)

const (
	SignatureHeader = "X-Vloex-Signature"
	TimestampHeader = "X-Vloex-Timestamp"
)

type WebhookController interface {
	HandleDelivery(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type webhookController struct {
	logger    outbound.LoggerPort
	processor inbound.WebhookProcessorPort
}

func NewWebhookController(logger outbound.LoggerPort, processor inbound.WebhookProcessorPort) WebhookController {
	return &webhookController{
		logger:    logger,
		processor: processor,
	}
}

func (w *webhookController) HandleDelivery(c *gin.Context) {
	// The signature covers the raw bytes, so the body must be read before
	// any JSON binding touches it.
	payload, err := c.GetRawData()
	if err != nil {
		w.logger.Error(err, "failed to read webhook body")
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}

	event, ok, err := w.processor.Process(c.Request.Context(), inbound.ProcessWebhookParams{
		Payload:         payload,
		SignatureHeader: c.GetHeader(SignatureHeader),
		TimestampHeader: c.GetHeader(TimestampHeader),
	})
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process delivery"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true, "job_id": event.JobID})
}

func (w *webhookController) RegisterRoutes(g *gin.Engine) {
	g.POST("/webhooks/vloex", w.HandleDelivery)
}
