package ingest

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/h108777/ThreatMap/model"
	"go.uber.org/zap"
)

// JobStatus is the lifecycle state of one supervised run.
type JobStatus string

// Job lifecycle states.
const (
	StatusRunning   JobStatus = "running"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
)

// Runner executes one ingestion pass.
type Runner interface {
	Run(ctx context.Context) (model.IngestionReport, error)
}

// JobState is the observable handle for one run. Callers poll it to learn
// completion and failure counts instead of guessing.
type JobState struct {
	ID         string                 `json:"job_id"`
	Status     JobStatus              `json:"status"`
	StartedAt  time.Time              `json:"started_at"`
	FinishedAt *time.Time             `json:"finished_at,omitempty"`
	Report     *model.IngestionReport `json:"report,omitempty"`
	Error      string                 `json:"error,omitempty"`
}

// Supervisor launches ingestion runs and keeps their states in memory. No
// persistent job history is kept; restarting the process forgets past runs.
// Concurrent runs are allowed and race benignly on the same document keys
// (last write wins, consistent with the upsert policy).
type Supervisor struct {
	mu   sync.Mutex
	jobs map[string]*JobState
	log  *zap.SugaredLogger
}

// NewSupervisor builds an empty job registry.
func NewSupervisor(log *zap.SugaredLogger) *Supervisor {
	return &Supervisor{
		jobs: make(map[string]*JobState),
		log:  log,
	}
}

// Start launches the runner on its own goroutine, detached from the caller's
// lifecycle, and returns the job id immediately.
func (s *Supervisor) Start(runner Runner) string {
	id := uuid.NewString()

	state := &JobState{
		ID:        id,
		Status:    StatusRunning,
		StartedAt: time.Now(),
	}

	s.mu.Lock()
	s.jobs[id] = state
	s.mu.Unlock()

	go func() {
		report, err := runner.Run(context.Background())
		now := time.Now()

		s.mu.Lock()
		defer s.mu.Unlock()
		state.Report = &report
		state.FinishedAt = &now
		if err != nil {
			state.Status = StatusFailed
			state.Error = err.Error()
			s.log.Errorw("ingestion job failed", "job_id", id, "error", err)
			return
		}
		state.Status = StatusCompleted
	}()

	return id
}

// Get returns a snapshot of the job state for the given id.
func (s *Supervisor) Get(id string) (JobState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.jobs[id]
	if !ok {
		return JobState{}, false
	}
	return *state, true
}
