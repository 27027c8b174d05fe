package outbound

import "context"

// VideoArchivePort copies a finished rendering into long-term storage and
// returns the archived location.
type VideoArchivePort interface {
	Archive(ctx context.Context, jobID string, videoURL string) (string, error)
}
