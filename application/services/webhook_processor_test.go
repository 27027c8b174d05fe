package services

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/vloex/vloex-go/application/ports/inbound"
	"github.com/vloex/vloex-go/application/ports/outbound"
	"github.com/vloex/vloex-go/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string)                                           {}
func (nopLogger) InfoWithFields(string, map[string]interface{})         {}
func (nopLogger) Error(error, string)                                   {}
func (nopLogger) ErrorWithFields(error, string, map[string]interface{}) {}
func (nopLogger) Debug(string)                                          {}
func (nopLogger) DebugWithFields(string, map[string]interface{})        {}
func (nopLogger) Warn(string)                                           {}
func (nopLogger) WarnWithFields(string, map[string]interface{})         {}

// inlineDispatcher runs tasks synchronously so tests need no pool teardown.
type inlineDispatcher struct{}

func (inlineDispatcher) Submit(task func()) error {
	task()
	return nil
}

type jobStoreStub struct {
	mu       sync.Mutex
	recorded []outbound.RecordOutcomeParams
	err      error
}

func (s *jobStoreStub) RecordOutcome(_ context.Context, params outbound.RecordOutcomeParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.recorded = append(s.recorded, params)
	return nil
}

type archiveStub struct {
	mu       sync.Mutex
	archived []string
}

func (a *archiveStub) Archive(_ context.Context, jobID string, _ string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.archived = append(a.archived, jobID)
	return "https://bucket.s3.amazonaws.com/videos/" + jobID + ".mp4", nil
}

func signedParams(t *testing.T, secret []byte, payload []byte) inbound.ProcessWebhookParams {
	t.Helper()
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	return inbound.ProcessWebhookParams{
		Payload:         payload,
		SignatureHeader: "sha256=" + signPayload(secret, timestamp, payload),
		TimestampHeader: timestamp,
	}
}

func TestWebhookProcessor_CompletedEvent(t *testing.T) {
	secret := []byte("whsec_test")
	store := &jobStoreStub{}
	archive := &archiveStub{}

	processor := NewWebhookProcessor(nopLogger{}, NewWebhookVerifier(secret, 0), store, archive, inlineDispatcher{})

	payload := []byte(`{"event":"video.completed","job_id":"abc-123","video_url":"https://cdn.vloex.test/abc-123.mp4"}`)

	event, ok, err := processor.Process(context.Background(), signedParams(t, secret, payload))
	if err != nil {
		t.Fatal("Process failed:", err)
	}
	if !ok {
		t.Fatal("authentic delivery was rejected")
	}
	if event.JobID != "abc-123" || event.Event != domain.VideoCompletedEvent {
		t.Errorf("got event %+v", event)
	}

	if len(store.recorded) != 1 {
		t.Fatalf("got %d recorded outcomes, want 1", len(store.recorded))
	}
	outcome := store.recorded[0]
	if outcome.Job.Status != domain.CompletedJobStatus || outcome.Job.URL == "" {
		t.Errorf("got outcome %+v", outcome)
	}

	if len(archive.archived) != 1 || archive.archived[0] != "abc-123" {
		t.Errorf("got archived %v, want [abc-123]", archive.archived)
	}
}

func TestWebhookProcessor_FailedEvent(t *testing.T) {
	secret := []byte("whsec_test")
	store := &jobStoreStub{}
	archive := &archiveStub{}

	processor := NewWebhookProcessor(nopLogger{}, NewWebhookVerifier(secret, 0), store, archive, inlineDispatcher{})

	payload := []byte(`{"event":"video.failed","job_id":"abc-123","error":"render exploded"}`)

	_, ok, err := processor.Process(context.Background(), signedParams(t, secret, payload))
	if err != nil || !ok {
		t.Fatalf("Process failed: ok=%v err=%v", ok, err)
	}

	if len(store.recorded) != 1 {
		t.Fatalf("got %d recorded outcomes, want 1", len(store.recorded))
	}
	if store.recorded[0].Job.Status != domain.FailedJobStatus {
		t.Errorf("got status %v", store.recorded[0].Job.Status)
	}
	if len(archive.archived) != 0 {
		t.Error("failed events must not be archived")
	}
}

func TestWebhookProcessor_BadSignature(t *testing.T) {
	secret := []byte("whsec_test")
	store := &jobStoreStub{}

	processor := NewWebhookProcessor(nopLogger{}, NewWebhookVerifier(secret, 0), store, &archiveStub{}, inlineDispatcher{})

	payload := []byte(`{"event":"video.completed","job_id":"abc-123"}`)
	params := signedParams(t, []byte("some-other-secret"), payload)

	_, ok, err := processor.Process(context.Background(), params)
	if err != nil {
		t.Fatal("bad signature must not be an error:", err)
	}
	if ok {
		t.Fatal("forged delivery was accepted")
	}
	if len(store.recorded) != 0 {
		t.Error("forged delivery reached the job store")
	}
}

func TestWebhookProcessor_MalformedPayload(t *testing.T) {
	secret := []byte("whsec_test")

	processor := NewWebhookProcessor(nopLogger{}, NewWebhookVerifier(secret, 0), &jobStoreStub{}, &archiveStub{}, inlineDispatcher{})

	_, ok, err := processor.Process(context.Background(), signedParams(t, secret, []byte(`not json`)))
	if !ok {
		t.Fatal("signature was valid, delivery should be authentic")
	}
	if err == nil {
		t.Fatal("expected a decode error")
	}
}
