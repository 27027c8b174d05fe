package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/vloex/vloex-go/domain"
)

type streamStub struct {
	jobs []domain.VideoJob
	err  error
}

func (s *streamStub) Stream(ctx context.Context, jobID string) (<-chan domain.VideoJob, <-chan error) {
	out := make(chan domain.VideoJob)
	errCh := make(chan error)
	go func() {
		defer close(out)
		defer close(errCh)
		for _, job := range s.jobs {
			select {
			case out <- job:
			case <-ctx.Done():
				return
			}
		}
		if s.err != nil {
			errCh <- s.err
		}
	}()
	return out, errCh
}

func TestJobStreamRelay_RelaysStatusChanges(t *testing.T) {
	workerPool, err := ants.NewPool(10)
	if err != nil {
		t.Fatal("Failed to create worker pool:", err)
	}
	defer workerPool.Release()

	stream := &streamStub{jobs: []domain.VideoJob{
		{ID: "abc-123", Status: domain.QueuedJobStatus},
		{ID: "abc-123", Status: domain.ProcessingJobStatus},
		{ID: "abc-123", Status: domain.ProcessingJobStatus},
		{ID: "abc-123", Status: domain.CompletedJobStatus, URL: "https://x/y.mp4"},
	}}

	relay := NewJobStreamRelay(nopLogger{}, stream, workerPool)

	updates, errCh := relay.Watch(context.Background(), "abc-123")

	var seen []domain.JobStatus
	for {
		select {
		case err, ok := <-errCh:
			if ok && err != nil {
				t.Fatal("relay reported an error:", err)
			}
		case update, ok := <-updates:
			if !ok {
				// the duplicate processing snapshot must have been deduplicated
				want := []domain.JobStatus{domain.QueuedJobStatus, domain.ProcessingJobStatus, domain.CompletedJobStatus}
				if len(seen) != len(want) {
					t.Fatalf("got statuses %v, want %v", seen, want)
				}
				for i := range want {
					if seen[i] != want[i] {
						t.Fatalf("got statuses %v, want %v", seen, want)
					}
				}
				return
			}
			seen = append(seen, update.Job.Status)
		case <-time.After(5 * time.Second):
			t.Fatal("relay never finished")
		}
	}
}

func TestJobStreamRelay_ForwardsStreamErrors(t *testing.T) {
	workerPool, err := ants.NewPool(10)
	if err != nil {
		t.Fatal("Failed to create worker pool:", err)
	}
	defer workerPool.Release()

	streamErr := errors.New("stream disconnected")
	stream := &streamStub{
		jobs: []domain.VideoJob{{ID: "abc-123", Status: domain.ProcessingJobStatus}},
		err:  streamErr,
	}

	relay := NewJobStreamRelay(nopLogger{}, stream, workerPool)

	updates, errCh := relay.Watch(context.Background(), "abc-123")

	deadline := time.After(5 * time.Second)
	for {
		select {
		case err, ok := <-errCh:
			if !ok {
				t.Fatal("error channel closed without the stream error")
			}
			if !errors.Is(err, streamErr) {
				t.Fatalf("got %v, want %v", err, streamErr)
			}
			return
		case <-updates:
		case <-deadline:
			t.Fatal("stream error never surfaced")
		}
	}
}
