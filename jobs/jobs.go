// Package jobs queues label verification work and tracks each job through
// review. One worker processes submissions in order; completed jobs wait in
// the review queue until an operator accepts or denies them.
package jobs

import (
	"context"
	"image"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jkassemi/ttb-labeling/label"
	"github.com/jkassemi/ttb-labeling/observability"
	"github.com/jkassemi/ttb-labeling/rules"
)

// Status tracks a job through the queue.
type Status string

const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Decision is the operator's review outcome.
type Decision string

const (
	DecisionAccepted Decision = "accepted"
	DecisionDenied   Decision = "denied"
)

// Payload is one submission: the label images plus optional application
// context.
type Payload struct {
	Images      []image.Image
	Names       []string
	Application *rules.ApplicationFields
}

// Result is the verification output of one completed job.
type Result struct {
	LabelInfo *label.LabelInfo
	Checklist *rules.Result
	Err       error
}

// Job is the tracked state of one submission.
type Job struct {
	ID          string
	Status      Status
	SubmittedAt time.Time
	StartedAt   time.Time
	CompletedAt time.Time
	Payload     Payload
	Result      *Result
	Decision    Decision
}

// Processor runs the verification for one payload.
type Processor func(ctx context.Context, payload Payload) (label.LabelInfo, rules.Result, error)

// Store queues jobs and runs them sequentially on one worker goroutine.
type Store struct {
	process Processor
	log     observability.Logger

	mu     sync.Mutex
	cond   *sync.Cond
	jobs   map[string]*Job
	queue  []string
	closed bool
	done   chan struct{}
}

// NewStore starts a store with one worker.
func NewStore(process Processor, log observability.Logger) *Store {
	if log == nil {
		log = observability.NopLogger{}
	}
	s := &Store{
		process: process,
		log:     log,
		jobs:    make(map[string]*Job),
		done:    make(chan struct{}),
	}
	s.cond = sync.NewCond(&s.mu)
	go s.worker()
	return s
}

// Submit queues a payload and returns the new job. Submission never blocks
// on the worker.
func (s *Store) Submit(payload Payload) *Job {
	job := &Job{
		ID:          uuid.NewString(),
		Status:      StatusQueued,
		SubmittedAt: time.Now(),
		Payload:     payload,
	}
	s.mu.Lock()
	s.jobs[job.ID] = job
	s.queue = append(s.queue, job.ID)
	depth := len(s.queue)
	s.mu.Unlock()
	s.cond.Signal()
	s.log.Debug("job queued",
		observability.String("job_id", job.ID),
		observability.Int("images", len(payload.Images)),
		observability.Int(observability.MetricJobQueueDepth, depth),
	)
	return job
}

// Get returns a snapshot of one job.
func (s *Store) Get(id string) (Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return Job{}, false
	}
	return *job, true
}

// List returns snapshots of all tracked jobs, newest submission first.
func (s *Store) List() []Job {
	s.mu.Lock()
	jobs := make([]Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		jobs = append(jobs, *job)
	}
	s.mu.Unlock()
	sort.Slice(jobs, func(i, j int) bool {
		if jobs[i].SubmittedAt.Equal(jobs[j].SubmittedAt) {
			return jobs[i].ID < jobs[j].ID
		}
		return jobs[i].SubmittedAt.After(jobs[j].SubmittedAt)
	})
	return jobs
}

// ReviewQueue returns the completed, undecided jobs, newest first.
func (s *Store) ReviewQueue() []Job {
	all := s.List()
	review := all[:0]
	for _, job := range all {
		if job.Status == StatusCompleted && job.Decision == "" {
			review = append(review, job)
		}
	}
	return review
}

// Decide records the operator decision and removes the job from tracking.
func (s *Store) Decide(id string, decision Decision) (Job, bool) {
	s.mu.Lock()
	job, ok := s.jobs[id]
	if ok {
		delete(s.jobs, id)
	}
	s.mu.Unlock()
	if !ok {
		return Job{}, false
	}
	job.Decision = decision
	s.log.Info("job decided",
		observability.String("job_id", id),
		observability.String("decision", string(decision)),
	)
	return *job, true
}

// Close stops the worker after the current job finishes. Queued jobs are
// left unprocessed.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()
	s.cond.Signal()
	<-s.done
}

func (s *Store) worker() {
	defer close(s.done)
	for {
		s.mu.Lock()
		for len(s.queue) == 0 && !s.closed {
			s.cond.Wait()
		}
		if s.closed {
			s.mu.Unlock()
			return
		}
		id := s.queue[0]
		s.queue = s.queue[1:]
		job, ok := s.jobs[id]
		if !ok {
			s.mu.Unlock()
			continue
		}
		job.Status = StatusRunning
		job.StartedAt = time.Now()
		payload := job.Payload
		s.mu.Unlock()

		info, checklist, err := s.runOne(payload)

		s.mu.Lock()
		if job, ok := s.jobs[id]; ok {
			job.CompletedAt = time.Now()
			if err != nil {
				job.Status = StatusFailed
				job.Result = &Result{Err: err}
			} else {
				job.Status = StatusCompleted
				job.Result = &Result{LabelInfo: &info, Checklist: &checklist}
			}
		}
		s.mu.Unlock()

		if err != nil {
			s.log.Error("job failed",
				observability.String("job_id", id),
				observability.Error("error", err),
			)
		} else {
			s.log.Info("job completed", observability.String("job_id", id))
		}
	}
}

func (s *Store) runOne(payload Payload) (label.LabelInfo, rules.Result, error) {
	return s.process(context.Background(), payload)
}
