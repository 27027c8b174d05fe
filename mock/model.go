package mock_vendor

import (
	"sync"

	"github.com/vloex/vloex-go/domain"
)

type mockJob struct {
	ID            string
	Status        domain.JobStatus
	WebhookURL    string
	WebhookSecret string
	Polls         int
	Fail          bool
}

// jobRegistry is the fake backend state. Jobs advance one status per poll so
// tests can walk the queued -> processing -> completed ladder deterministically.
type jobRegistry struct {
	mu   sync.Mutex
	jobs map[string]*mockJob

	// PollsToComplete controls how many status reads a job needs before it
	// turns terminal. Zero means complete on the first read.
	PollsToComplete int
}

func newJobRegistry(pollsToComplete int) *jobRegistry {
	return &jobRegistry{
		jobs:            make(map[string]*mockJob),
		PollsToComplete: pollsToComplete,
	}
}

func (r *jobRegistry) add(job *mockJob) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[job.ID] = job
}

func (r *jobRegistry) advance(id string) (*mockJob, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok {
		return nil, false
	}

	if !job.Status.Terminal() {
		job.Polls++
		switch {
		case job.Polls >= r.PollsToComplete && job.Fail:
			job.Status = domain.FailedJobStatus
		case job.Polls >= r.PollsToComplete:
			job.Status = domain.CompletedJobStatus
		default:
			job.Status = domain.ProcessingJobStatus
		}
	}

	snapshot := *job
	return &snapshot, true
}
