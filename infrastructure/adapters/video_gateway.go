package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/vloex/vloex-go/application/ports/outbound"
	"github.com/vloex/vloex-go/config"
	"github.com/vloex/vloex-go/domain"
)

// Wire shapes. The json tags here are the single translation point between
// the vendor's snake_case field names and the domain model.
type generateRequest struct {
	Input         string           `json:"input"`
	Options       *generateOptions `json:"options,omitempty"`
	WebhookURL    string           `json:"webhook_url,omitempty"`
	WebhookSecret string           `json:"webhook_secret,omitempty"`
}

type generateOptions struct {
	Avatar     string `json:"avatar,omitempty"`
	Voice      string `json:"voice,omitempty"`
	Background string `json:"background,omitempty"`
}

type journeyRequest struct {
	Frames        []journeyFrame   `json:"frames"`
	Options       *generateOptions `json:"options,omitempty"`
	WebhookURL    string           `json:"webhook_url,omitempty"`
	WebhookSecret string           `json:"webhook_secret,omitempty"`
}

type journeyFrame struct {
	URL      string `json:"url,omitempty"`
	ImageB64 string `json:"image_b64,omitempty"`
}

// jobResponse tolerates both naming generations of the vendor API: the
// creation endpoint answers with job_id, the status endpoint with id, and
// the URL/error fields drifted the same way.
type jobResponse struct {
	JobID        string `json:"job_id"`
	ID           string `json:"id"`
	Status       string `json:"status"`
	VideoURL     string `json:"video_url"`
	URL          string `json:"url"`
	ErrorMessage string `json:"error_message"`
	Error        string `json:"error"`
}

func (r jobResponse) toJob() domain.VideoJob {
	id := r.JobID
	if id == "" {
		id = r.ID
	}
	videoURL := r.VideoURL
	if videoURL == "" {
		videoURL = r.URL
	}
	errMessage := r.ErrorMessage
	if errMessage == "" {
		errMessage = r.Error
	}
	return domain.VideoJob{
		ID:     id,
		Status: domain.JobStatus(r.Status),
		URL:    videoURL,
		Error:  errMessage,
	}
}

type apiErrorResponse struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

type videoGateway struct {
	fetcher   ContentFetcher
	logger    outbound.LoggerPort
	apiConfig *config.VideoApiConfig
	limiter   *rate.Limiter
}

func NewVideoGateway(fetcher ContentFetcher, apiConfig *config.VideoApiConfig, logger outbound.LoggerPort) outbound.VideoGatewayPort {
	requestsPerMin := apiConfig.RequestsPerMin
	if requestsPerMin <= 0 {
		requestsPerMin = 120
	}
	perSecond := rate.Every(time.Minute / time.Duration(requestsPerMin))
	return &videoGateway{
		fetcher:   fetcher,
		logger:    logger,
		apiConfig: apiConfig,
		limiter:   rate.NewLimiter(perSecond, requestsPerMin),
	}
}

func (g *videoGateway) CreateVideo(ctx context.Context, params outbound.CreateVideoParams) (domain.VideoJob, error) {
	reqBody := generateRequest{
		Input:         params.Script,
		Options:       toWireOptions(params.Options),
		WebhookURL:    params.WebhookURL,
		WebhookSecret: params.WebhookSecret,
	}

	req, err := g.postRequest(ctx, "/v1/generate", reqBody)
	if err != nil {
		return domain.VideoJob{}, err
	}

	return g.send(req)
}

func (g *videoGateway) RetrieveVideo(ctx context.Context, id string) (domain.VideoJob, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.apiConfig.ApiUrl+"/v1/jobs/"+id+"/status", nil)
	if err != nil {
		g.logger.Error(err, "Failed to create the HTTP request")
		return domain.VideoJob{}, err
	}
	req.Header.Add("Authorization", "Bearer "+g.apiConfig.ApiKey)

	return g.send(req)
}

// CreateJourney submits screenshots or URLs instead of a script. The
// endpoint is experimental and may change without notice.
func (g *videoGateway) CreateJourney(ctx context.Context, params outbound.CreateJourneyParams) (domain.VideoJob, error) {
	frames := make([]journeyFrame, 0, len(params.Frames))
	for _, f := range params.Frames {
		frames = append(frames, journeyFrame{URL: f.URL, ImageB64: f.ImageB64})
	}

	reqBody := journeyRequest{
		Frames:        frames,
		Options:       toWireOptions(params.Options),
		WebhookURL:    params.WebhookURL,
		WebhookSecret: params.WebhookSecret,
	}

	req, err := g.postRequest(ctx, "/v1/journeys", reqBody)
	if err != nil {
		return domain.VideoJob{}, err
	}

	return g.send(req)
}

func (g *videoGateway) postRequest(ctx context.Context, path string, body interface{}) (*http.Request, error) {
	jsonPayload, err := json.Marshal(body)
	if err != nil {
		g.logger.Error(err, "Failed to marshal the request body")
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.apiConfig.ApiUrl+path, bytes.NewBuffer(jsonPayload))
	if err != nil {
		g.logger.ErrorWithFields(err, "Failed to create the HTTP request", map[string]interface{}{
			"URL": g.apiConfig.ApiUrl + path,
		})
		return nil, err
	}

	reqHeaders := map[string]string{
		"Authorization":   "Bearer " + g.apiConfig.ApiKey,
		"Content-Type":    "application/json",
		"Idempotency-Key": uuid.NewString(),
	}
	for key, value := range reqHeaders {
		req.Header.Add(key, value)
	}

	return req, nil
}

func (g *videoGateway) send(req *http.Request) (domain.VideoJob, error) {
	if err := g.limiter.Wait(req.Context()); err != nil {
		return domain.VideoJob{}, err
	}

	status, payload, err := g.fetcher.FetchContent(req)
	if err != nil {
		return domain.VideoJob{}, err
	}

	if status < 200 || status >= 300 {
		return domain.VideoJob{}, g.toApiError(status, payload)
	}

	var res jobResponse
	if err := json.Unmarshal(payload, &res); err != nil {
		g.logger.Error(err, "Failed to unmarshal the response body")
		return domain.VideoJob{}, err
	}

	return res.toJob(), nil
}

func (g *videoGateway) toApiError(status int, payload []byte) *outbound.ApiError {
	var errRes apiErrorResponse
	message := fmt.Sprintf("request failed with status %d", status)
	if err := json.Unmarshal(payload, &errRes); err == nil {
		if errRes.Detail != "" {
			message = errRes.Detail
		} else if errRes.Message != "" {
			message = errRes.Message
		}
	}

	g.logger.WarnWithFields("Vendor returned a non-success status", map[string]interface{}{
		"status":  status,
		"message": message,
	})

	return &outbound.ApiError{
		StatusCode: status,
		Message:    message,
	}
}

func toWireOptions(opts domain.VideoOptions) *generateOptions {
	if opts == (domain.VideoOptions{}) {
		return nil
	}
	return &generateOptions{
		Avatar:     opts.Avatar,
		Voice:      opts.Voice,
		Background: opts.Background,
	}
}
