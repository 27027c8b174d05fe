package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/vloex/vloex-go/application/ports/outbound"
	"github.com/vloex/vloex-go/domain"
)

type gatewayStub struct {
	mu    sync.Mutex
	calls int
	plan  []domain.VideoJob
	err   error
}

func (g *gatewayStub) CreateVideo(context.Context, outbound.CreateVideoParams) (domain.VideoJob, error) {
	return domain.VideoJob{}, errors.New("not implemented")
}

func (g *gatewayStub) CreateJourney(context.Context, outbound.CreateJourneyParams) (domain.VideoJob, error) {
	return domain.VideoJob{}, errors.New("not implemented")
}

func (g *gatewayStub) RetrieveVideo(context.Context, string) (domain.VideoJob, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return domain.VideoJob{}, g.err
	}
	job := g.plan[g.calls]
	if g.calls < len(g.plan)-1 {
		g.calls++
	}
	return job, nil
}

func TestJobWatcher_WalksToTerminal(t *testing.T) {
	workerPool, err := ants.NewPool(10)
	if err != nil {
		t.Fatal("Failed to create worker pool:", err)
	}
	defer workerPool.Release()

	gateway := &gatewayStub{plan: []domain.VideoJob{
		{ID: "abc-123", Status: domain.QueuedJobStatus},
		{ID: "abc-123", Status: domain.ProcessingJobStatus},
		{ID: "abc-123", Status: domain.CompletedJobStatus, URL: "https://x/y.mp4"},
	}}

	watcher := NewJobWatcher(nopLogger{}, gateway, workerPool, time.Millisecond)

	updates, errCh := watcher.Watch(context.Background(), "abc-123")

	var seen []domain.JobStatus
	for {
		select {
		case err, ok := <-errCh:
			if ok && err != nil {
				t.Fatal("watcher reported an error:", err)
			}
		case update, ok := <-updates:
			if !ok {
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
			if update.Seq != len(seen)+1 {
				t.Errorf("got seq %d, want %d", update.Seq, len(seen)+1)
			}
			seen = append(seen, update.Job.Status)
		case <-time.After(5 * time.Second):
			t.Fatal("watcher did not finish")
		}
	}
}

func TestJobWatcher_SurfacesGatewayError(t *testing.T) {
	workerPool, err := ants.NewPool(10)
	if err != nil {
		t.Fatal("Failed to create worker pool:", err)
	}
	defer workerPool.Release()

	gateway := &gatewayStub{err: &outbound.ApiError{StatusCode: 401, Message: "invalid api key"}}

	watcher := NewJobWatcher(nopLogger{}, gateway, workerPool, time.Millisecond)

	_, errCh := watcher.Watch(context.Background(), "abc-123")

	select {
	case err := <-errCh:
		var apiErr *outbound.ApiError
		if !errors.As(err, &apiErr) || apiErr.StatusCode != 401 {
			t.Fatalf("got %v, want ApiError 401", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watcher never reported the error")
	}
}

func TestJobWatcher_CancellationStopsPolling(t *testing.T) {
	workerPool, err := ants.NewPool(10)
	if err != nil {
		t.Fatal("Failed to create worker pool:", err)
	}
	defer workerPool.Release()

	gateway := &gatewayStub{plan: []domain.VideoJob{
		{ID: "abc-123", Status: domain.ProcessingJobStatus},
	}}

	watcher := NewJobWatcher(nopLogger{}, gateway, workerPool, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	updates, _ := watcher.Watch(ctx, "abc-123")

	select {
	case <-updates:
	case <-time.After(5 * time.Second):
		t.Fatal("no first update")
	}

	cancel()

	select {
	case _, ok := <-updates:
		if ok {
			// a final in-flight update may slip through; the channel must
			// still close right after
			if _, ok := <-updates; ok {
				t.Fatal("updates kept flowing after cancellation")
			}
		}
	case <-time.After(5 * time.Second):
		t.Fatal("updates channel never closed after cancellation")
	}
}
