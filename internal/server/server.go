// Package server implements the HTTP API of the optimization service:
// submitting swarm optimization jobs, polling their status, and
// cancelling them.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/copyleftdev/VORTX/internal/config"
	"github.com/copyleftdev/VORTX/internal/metrics"
	"github.com/copyleftdev/VORTX/internal/optimization"
	"github.com/copyleftdev/VORTX/internal/optimization/objectives"
	"github.com/copyleftdev/VORTX/internal/optimization/swarm"
	"github.com/copyleftdev/VORTX/internal/scenario"
)

// Job status values.
const (
	StatusPending   = "pending"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
)

// Job tracks one optimization run. Access goes through the server mutex.
type Job struct {
	ID        string
	Objective string
	Status    string
	StartTime time.Time
	EndTime   *time.Time

	// Progress is the fraction of the step budget consumed, fed by the
	// solver's observer.
	Progress  float64
	BestError float64

	Result *optimization.Result
	Error  string

	cancel context.CancelFunc
}

// Server manages optimization jobs and serves the REST API.
type Server struct {
	cfg     *config.Config
	logger  *zap.Logger
	metrics *metrics.Metrics

	// seq disambiguates job IDs created within the same nanosecond.
	seq atomic.Uint64

	mu   sync.RWMutex
	jobs map[string]*Job
}

// New creates a server instance with the given config, logger and metrics.
func New(cfg *config.Config, logger *zap.Logger, m *metrics.Metrics) *Server {
	return &Server{
		cfg:     cfg,
		logger:  logger,
		metrics: m,
		jobs:    make(map[string]*Job),
	}
}

// RegisterRoutes mounts the API under /api/v1.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/objectives", s.handleObjectives)
		r.Post("/optimize", s.handleOptimize)
		r.Get("/status/{id}", s.handleStatus)
		r.Delete("/optimization/{id}", s.handleCancel)
	})
}

// Close cancels every running job.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, job := range s.jobs {
		if job.cancel != nil {
			job.cancel()
		}
	}
	return nil
}

func (s *Server) handleObjectives(w http.ResponseWriter, r *http.Request) {
	type entry struct {
		Name   string  `json:"name"`
		Lower  float64 `json:"lower"`
		Upper  float64 `json:"upper"`
		MinDim int     `json:"min_dim"`
	}
	out := make([]entry, 0, len(objectives.Names()))
	for _, name := range objectives.Names() {
		b, _ := objectives.ByName(name)
		out = append(out, entry{Name: b.Name, Lower: b.Lower, Upper: b.Upper, MinDim: b.MinDim})
	}
	s.respond(w, http.StatusOK, map[string]interface{}{"objectives": out})
}

func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	var sc scenario.Scenario
	if err := json.NewDecoder(r.Body).Decode(&sc); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	cfg, bench, err := sc.Build()
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if cfg.Dim > s.cfg.Solver.MaxDim {
		s.respondError(w, http.StatusBadRequest,
			fmt.Sprintf("dim %d exceeds the service limit of %d", cfg.Dim, s.cfg.Solver.MaxDim))
		return
	}
	if cfg.MaxSteps > s.cfg.Solver.MaxSteps {
		s.respondError(w, http.StatusBadRequest,
			fmt.Sprintf("max_steps %d exceeds the service limit of %d", cfg.MaxSteps, s.cfg.Solver.MaxSteps))
		return
	}

	// Progress polling needs observer callbacks even when the client
	// did not ask for a report interval.
	if cfg.ReportEvery == 0 {
		cfg.ReportEvery = cfg.MaxSteps / 100
		if cfg.ReportEvery < 1 {
			cfg.ReportEvery = 1
		}
	}

	id := fmt.Sprintf("opt_%d_%d", time.Now().UnixNano(), s.seq.Add(1))
	ctx, cancel := context.WithCancel(context.Background())

	job := &Job{
		ID:        id,
		Objective: bench.Name,
		Status:    StatusPending,
		StartTime: time.Now(),
		cancel:    cancel,
	}

	opts := append(sc.Options(),
		swarm.WithLogger(s.logger.With(zap.String("job_id", id))),
		swarm.WithObserver(s.progressObserver(id)),
	)
	opt, err := swarm.New(cfg, bench.Eval, opts...)
	if err != nil {
		cancel()
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	if s.activeLocked() >= s.cfg.Solver.MaxJobs {
		s.mu.Unlock()
		cancel()
		s.respondError(w, http.StatusTooManyRequests,
			fmt.Sprintf("job limit of %d reached, retry later", s.cfg.Solver.MaxJobs))
		return
	}
	s.jobs[id] = job
	s.mu.Unlock()

	go s.run(ctx, job, opt)

	s.logger.Info("optimization accepted",
		zap.String("job_id", id),
		zap.String("objective", bench.Name),
		zap.Int("dim", cfg.Dim),
		zap.Stringer("topology", cfg.Topology),
	)
	s.respond(w, http.StatusAccepted, map[string]string{
		"optimization_id": id,
		"status":          StatusPending,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.RLock()
	job, ok := s.jobs[id]
	if !ok {
		s.mu.RUnlock()
		s.respondError(w, http.StatusNotFound, "optimization not found")
		return
	}

	resp := map[string]interface{}{
		"optimization_id": job.ID,
		"objective":       job.Objective,
		"status":          job.Status,
		"progress":        job.Progress,
		"start_time":      job.StartTime.Format(time.RFC3339),
	}
	if job.Status == StatusRunning {
		resp["best_error"] = job.BestError
	}
	if job.EndTime != nil {
		resp["end_time"] = job.EndTime.Format(time.RFC3339)
	}
	if job.Error != "" {
		resp["error"] = job.Error
	}
	if job.Result != nil {
		resp["result"] = map[string]interface{}{
			"best_position": job.Result.Best.Position,
			"best_error":    job.Result.Best.Value,
			"steps":         job.Result.Steps,
			"evaluations":   job.Result.Evaluations,
			"goal_reached":  job.Result.GoalReached,
		}
	}
	s.mu.RUnlock()

	s.respond(w, http.StatusOK, resp)
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	job, ok := s.jobs[id]
	if !ok {
		s.mu.Unlock()
		s.respondError(w, http.StatusNotFound, "optimization not found")
		return
	}
	switch job.Status {
	case StatusCompleted, StatusFailed, StatusCancelled:
		status := job.Status
		s.mu.Unlock()
		s.respondError(w, http.StatusConflict, fmt.Sprintf("cannot cancel optimization with status %s", status))
		return
	}
	job.cancel()
	s.mu.Unlock()

	s.logger.Info("optimization cancellation requested", zap.String("job_id", id))
	s.respond(w, http.StatusOK, map[string]string{"status": "cancellation requested"})
}

// run executes one optimization job and records its outcome.
func (s *Server) run(ctx context.Context, job *Job, opt *swarm.Optimizer) {
	s.mu.Lock()
	job.Status = StatusRunning
	s.mu.Unlock()

	s.metrics.JobsActive.Inc()
	defer s.metrics.JobsActive.Dec()

	result, err := opt.Optimize(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	job.EndTime = &now

	switch {
	case errors.Is(err, context.Canceled):
		job.Status = StatusCancelled
		s.metrics.JobsTotal.WithLabelValues(StatusCancelled).Inc()
		s.logger.Info("optimization cancelled", zap.String("job_id", job.ID))
	case err != nil:
		job.Status = StatusFailed
		job.Error = err.Error()
		s.metrics.JobsTotal.WithLabelValues(StatusFailed).Inc()
		s.logger.Error("optimization failed", zap.String("job_id", job.ID), zap.Error(err))
	default:
		job.Status = StatusCompleted
		job.Result = result
		job.Progress = 1
		job.BestError = result.Best.Value
		s.metrics.JobsTotal.WithLabelValues(StatusCompleted).Inc()
		s.metrics.Evaluations.Add(float64(result.Evaluations))
		s.metrics.RunSteps.Observe(float64(result.Steps))
		s.metrics.FinalError.Observe(result.Best.Value)
		s.logger.Info("optimization completed",
			zap.String("job_id", job.ID),
			zap.Float64("best_error", result.Best.Value),
			zap.Int("steps", result.Steps),
			zap.Bool("goal_reached", result.GoalReached),
		)
	}

	s.pruneLocked()
}

// pruneLocked drops the oldest finished jobs once their number exceeds
// the retention limit, so the job map does not grow without bound.
// Callers hold the mutex.
func (s *Server) pruneLocked() {
	limit := s.cfg.Solver.RetainJobs
	if limit <= 0 {
		return
	}

	var finished []*Job
	for _, job := range s.jobs {
		if job.EndTime != nil {
			finished = append(finished, job)
		}
	}
	if len(finished) <= limit {
		return
	}

	sort.Slice(finished, func(i, j int) bool {
		return finished[i].EndTime.Before(*finished[j].EndTime)
	})
	for _, job := range finished[:len(finished)-limit] {
		delete(s.jobs, job.ID)
		s.logger.Debug("pruned finished optimization", zap.String("job_id", job.ID))
	}
}

// progressObserver feeds solver progress into the job record.
func (s *Server) progressObserver(id string) swarm.Observer {
	return func(step, maxSteps int, inertia, bestError float64) {
		s.mu.Lock()
		defer s.mu.Unlock()
		job, ok := s.jobs[id]
		if !ok {
			return
		}
		if maxSteps > 0 {
			job.Progress = float64(step) / float64(maxSteps)
		}
		job.BestError = bestError
	}
}

// activeLocked counts pending and running jobs. Callers hold the mutex.
func (s *Server) activeLocked() int {
	n := 0
	for _, job := range s.jobs {
		if job.Status == StatusPending || job.Status == StatusRunning {
			n++
		}
	}
	return n
}

func (s *Server) respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respond(w, status, map[string]string{"error": message})
}
