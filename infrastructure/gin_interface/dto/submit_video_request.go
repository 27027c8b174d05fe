package dto

type VideoOptions struct {
	Avatar     string `json:"avatar"`
	Voice      string `json:"voice"`
	Background string `json:"background"`
}

type SubmitVideoRequest struct {
	Script        string       `json:"script" binding:"required"`
	Options       VideoOptions `json:"options"`
	WebhookURL    string       `json:"webhook_url"`
	WebhookSecret string       `json:"webhook_secret"`
}

type JourneyFrame struct {
	URL      string `json:"url"`
	ImageB64 string `json:"image_b64"`
}

type SubmitJourneyRequest struct {
	Frames        []JourneyFrame `json:"frames" binding:"required"`
	Options       VideoOptions   `json:"options"`
	WebhookURL    string         `json:"webhook_url"`
	WebhookSecret string         `json:"webhook_secret"`
}

type VideoJobResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	URL    string `json:"url,omitempty"`
	Error  string `json:"error,omitempty"`
}
