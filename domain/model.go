package domain

type JobStatus string

const (
	QueuedJobStatus     JobStatus = "queued"
	ProcessingJobStatus JobStatus = "processing"
	CompletedJobStatus  JobStatus = "completed"
	FailedJobStatus     JobStatus = "failed"
)

// Terminal reports whether the vendor will never move the job again.
func (s JobStatus) Terminal() bool {
	return s == CompletedJobStatus || s == FailedJobStatus
}

type VideoJob struct {
	ID     string
	Status JobStatus
	URL    string
	Error  string
}

type VideoOptions struct {
	Avatar     string
	Voice      string
	Background string
}

// JourneyFrame is one step of an experimental journey submission.
// Exactly one of URL or ImageB64 should be set.
type JourneyFrame struct {
	URL      string
	ImageB64 string
}

const (
	VideoCompletedEvent = "video.completed"
	VideoFailedEvent    = "video.failed"
)

type WebhookEvent struct {
	Event    string `json:"event"`
	JobID    string `json:"job_id"`
	VideoURL string `json:"video_url,omitempty"`
	Error    string `json:"error,omitempty"`
}

func (e WebhookEvent) ToJob() VideoJob {
	status := CompletedJobStatus
	if e.Event == VideoFailedEvent {
		status = FailedJobStatus
	}
	return VideoJob{
		ID:     e.JobID,
		Status: status,
		URL:    e.VideoURL,
		Error:  e.Error,
	}
}

type JobUpdate struct {
	Seq int
	Job VideoJob
}

type JobUpdateEvent struct {
	Seq      int    `json:"seq"`
	JobID    string `json:"job_id"`
	Status   string `json:"status"`
	VideoURL string `json:"video_url,omitempty"`
	Error    string `json:"error,omitempty"`
}

func (u JobUpdate) ToEvent() JobUpdateEvent {
	return JobUpdateEvent{
		Seq:      u.Seq,
		JobID:    u.Job.ID,
		Status:   string(u.Job.Status),
		VideoURL: u.Job.URL,
		Error:    u.Job.Error,
	}
}
