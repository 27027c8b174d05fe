package services

import (
	"context"
	"errors"
	"testing"

	"github.com/vloex/vloex-go/application/ports/inbound"
	"github.com/vloex/vloex-go/domain"
)

func TestVideoSubmitter_RejectsEmptyScript(t *testing.T) {
	submitter := NewVideoSubmitter(nopLogger{}, &gatewayStub{})

	_, err := submitter.Submit(context.Background(), inbound.SubmitVideoParams{Script: ""})
	if !errors.Is(err, ErrEmptyScript) {
		t.Fatalf("got %v, want ErrEmptyScript", err)
	}
}

func TestVideoSubmitter_RejectsEmptyJourney(t *testing.T) {
	submitter := NewVideoSubmitter(nopLogger{}, &gatewayStub{})

	_, err := submitter.SubmitJourney(context.Background(), inbound.SubmitJourneyParams{})
	if !errors.Is(err, ErrNoFrames) {
		t.Fatalf("got %v, want ErrNoFrames", err)
	}

	_, err = submitter.SubmitJourney(context.Background(), inbound.SubmitJourneyParams{
		Frames: []domain.JourneyFrame{{}},
	})
	if !errors.Is(err, ErrEmptyFrame) {
		t.Fatalf("got %v, want ErrEmptyFrame", err)
	}
}
