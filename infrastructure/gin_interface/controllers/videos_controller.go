package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vloex/vloex-go/application/ports/inbound"
	"github.com/vloex/vloex-go/application/ports/outbound"
	"github.com/vloex/vloex-go/application/services"
	"github.com/vloex/vloex-go/domain"
	"github.com/vloex/vloex-go/infrastructure/gin_interface/dto"
	"github.com/vloex/vloex-go/middleware"
)

type VideosController interface {
	SubmitVideo(c *gin.Context)
	SubmitJourney(c *gin.Context)
	GetVideo(c *gin.Context)
	StreamVideoEvents(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type videosController struct {
	logger     outbound.LoggerPort
	workerPool outbound.TaskDispatcher
	submitter  inbound.VideoSubmitterPort
	gateway    outbound.VideoGatewayPort
	jobWatcher inbound.JobWatcherPort
}

func NewVideosController(
	logger outbound.LoggerPort,
	workerPool outbound.TaskDispatcher,
	submitter inbound.VideoSubmitterPort,
	gateway outbound.VideoGatewayPort,
	jobWatcher inbound.JobWatcherPort,
) VideosController {
	return &videosController{
		logger:     logger,
		workerPool: workerPool,
		submitter:  submitter,
		gateway:    gateway,
		jobWatcher: jobWatcher,
	}
}

func (v *videosController) SubmitVideo(c *gin.Context) {
	var req dto.SubmitVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		err = c.AbortWithError(400, err)
		if err != nil {
			v.logger.Error(err, "failed to abort with error")
		}
		return
	}

	job, err := v.submitter.Submit(c.Request.Context(), inbound.SubmitVideoParams{
		Script:        req.Script,
		Options:       toDomainOptions(req.Options),
		WebhookURL:    req.WebhookURL,
		WebhookSecret: req.WebhookSecret,
	})
	if err != nil {
		v.respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, toJobResponse(job))
}

func (v *videosController) SubmitJourney(c *gin.Context) {
	var req dto.SubmitJourneyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		err = c.AbortWithError(400, err)
		if err != nil {
			v.logger.Error(err, "failed to abort with error")
		}
		return
	}

	frames := make([]domain.JourneyFrame, 0, len(req.Frames))
	for _, f := range req.Frames {
		frames = append(frames, domain.JourneyFrame{URL: f.URL, ImageB64: f.ImageB64})
	}

	job, err := v.submitter.SubmitJourney(c.Request.Context(), inbound.SubmitJourneyParams{
		Frames:        frames,
		Options:       toDomainOptions(req.Options),
		WebhookURL:    req.WebhookURL,
		WebhookSecret: req.WebhookSecret,
	})
	if err != nil {
		v.respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, toJobResponse(job))
}

func (v *videosController) GetVideo(c *gin.Context) {
	job, err := v.gateway.RetrieveVideo(c.Request.Context(), c.Param("id"))
	if err != nil {
		v.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toJobResponse(job))
}

func (v *videosController) StreamVideoEvents(c *gin.Context) {
	newCtx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	updates, errCh := v.jobWatcher.Watch(newCtx, c.Param("id"))

	for {
		select {
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			if err != nil {
				v.logger.Error(err, "error while watching job")
				c.SSEvent("error", gin.H{"error": "watch failed"})
				c.Writer.Flush()
				return
			}
		case update, ok := <-updates:
			if !ok {
				c.SSEvent("done", gin.H{})
				c.Writer.Flush()
				return
			}
			c.SSEvent("update", update.ToEvent())
			c.Writer.Flush()
		case <-newCtx.Done():
			return
		}
	}
}

// respondError keeps the vendor's status code when the failure came from the
// API; everything else is a plain 502 because the receiver could not reach
// the vendor at all.
func (v *videosController) respondError(c *gin.Context, err error) {
	var apiErr *outbound.ApiError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.StatusCode, gin.H{"error": apiErr.Message})
		return
	}
	if errors.Is(err, services.ErrEmptyScript) || errors.Is(err, services.ErrNoFrames) || errors.Is(err, services.ErrEmptyFrame) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	v.logger.Error(err, "vendor call failed")
	c.JSON(http.StatusBadGateway, gin.H{"error": "upstream request failed"})
}

func (v *videosController) RegisterRoutes(g *gin.Engine) {
	g.POST("/videos", v.SubmitVideo)
	g.POST("/journeys", v.SubmitJourney)
	g.GET("/videos/:id", v.GetVideo)
	g.GET("/videos/:id/events", middleware.SSEMiddleware(v.workerPool), v.StreamVideoEvents)
}

func toDomainOptions(opts dto.VideoOptions) domain.VideoOptions {
	return domain.VideoOptions{
		Avatar:     opts.Avatar,
		Voice:      opts.Voice,
		Background: opts.Background,
	}
}

func toJobResponse(job domain.VideoJob) dto.VideoJobResponse {
	return dto.VideoJobResponse{
		ID:     job.ID,
		Status: string(job.Status),
		URL:    job.URL,
		Error:  job.Error,
	}
}
