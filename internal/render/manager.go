package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// ErrManagerClosed is returned by Submit after Shutdown.
var ErrManagerClosed = errors.New("render manager is shut down")

// Subscriber receives render lifecycle events. A superseded job's Cancelled
// outcome is never delivered here: a newer request has already taken its
// place.
type Subscriber interface {
	RenderStarted(jobID string)
	// RenderProgress carries a fraction in [0,1], or -1 when indeterminate.
	// The external renderer does not reliably report fractional progress, so
	// consumers should expect indeterminate.
	RenderProgress(jobID string, fraction float64)
	RenderFinished(jobID, artifactPath string)
	RenderFailed(jobID, reason string)
}

// ArtifactSink persists a successful render against its originating version
// and returns the durable artifact path (the scratch path is purged with the
// workspace).
type ArtifactSink func(ctx context.Context, projectID, versionID, scratchPath string) (storedPath string, err error)

// Request describes one render submission. Code is origin-agnostic.
type Request struct {
	Code       string
	EntryPoint string // auto-detected from Code when empty
	Config     Config

	// ProjectID/VersionID, when both set, identify the originating version;
	// a successful artifact is handed to the manager's sink against it.
	ProjectID string
	VersionID string
}

// Job is the caller's handle on a submitted render.
type Job struct {
	ID         string
	EntryPoint string

	done       chan struct{}
	result     Result
	superseded atomic.Bool
}

// Done is closed once the job reached a terminal outcome.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Result returns the terminal result; valid only after Done is closed.
func (j *Job) Result() Result {
	return j.result
}

// Superseded reports whether a newer submission preempted this job.
func (j *Job) Superseded() bool {
	return j.superseded.Load()
}

// Wait blocks until the job finishes or ctx is done.
func (j *Job) Wait(ctx context.Context) (Result, error) {
	select {
	case <-j.done:
		return j.result, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Manager is the render orchestrator: it owns the workspace and at most one
// live worker, preempting a running job when a newer one arrives. At no
// instant are two subprocesses alive against the same workspace.
type Manager struct {
	workspace *Workspace
	renderer  []string
	defaults  Config
	sink      ArtifactSink
	logger    *slog.Logger

	mu      sync.Mutex
	current *Job
	worker  *Worker
	closed  bool

	subMu sync.Mutex
	subs  []Subscriber

	wg       sync.WaitGroup
	shutdown sync.Once
}

// NewManager creates a render manager owning workspace. sink may be nil when
// no persistence is wanted.
func NewManager(workspace *Workspace, renderer []string, defaults Config, sink ArtifactSink, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		workspace: workspace,
		renderer:  renderer,
		defaults:  defaults.withDefaults(),
		sink:      sink,
		logger:    logger,
	}
}

// Subscribe registers an event subscriber. Subscribers are passed by
// reference to consumers rather than looked up through any global registry.
func (m *Manager) Subscribe(sub Subscriber) {
	m.subMu.Lock()
	defer m.subMu.Unlock()
	m.subs = append(m.subs, sub)
}

// Submit starts a new render job. A currently running job is cancelled and
// its termination awaited before the new subprocess starts; the superseded
// job's outcome is suppressed from subscribers.
func (m *Manager) Submit(ctx context.Context, req Request) (*Job, error) {
	if req.Code == "" {
		return nil, fmt.Errorf("empty code")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrManagerClosed
	}

	if prev := m.current; prev != nil {
		prev.superseded.Store(true)
		m.worker.Cancel()
		m.logger.Info("superseding running render job", "job_id", prev.ID)
		select {
		case <-prev.done:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	entry := req.EntryPoint
	if entry == "" {
		entry = DetectEntryPoint(req.Code)
	}

	cfg := req.Config
	if cfg == (Config{}) {
		cfg = m.defaults
	}
	cfg = cfg.withDefaults()

	jobID := uuid.NewString()
	src, err := m.workspace.WriteSource(jobID, req.Code, entry)
	if err != nil {
		return nil, fmt.Errorf("preparing source file: %w", err)
	}

	mediaDir := cfg.OutputDir
	if mediaDir == "" {
		mediaDir = m.workspace.MediaDir(jobID)
	}

	worker := NewWorker(m.renderer, m.logger)
	if err := worker.Start(src, entry, mediaDir, cfg); err != nil {
		return nil, fmt.Errorf("starting render worker: %w", err)
	}

	job := &Job{ID: jobID, EntryPoint: entry, done: make(chan struct{})}
	m.current = job
	m.worker = worker

	m.logger.Info("render job started", "job_id", jobID, "entry_point", entry, "quality", cfg.Quality)
	m.notifyStarted(jobID)
	m.notifyProgress(jobID, -1)

	m.wg.Add(1)
	go m.await(job, worker, req)

	return job, nil
}

// Cancel requests cancellation of the currently active job, if any.
func (m *Manager) Cancel() {
	m.mu.Lock()
	worker := m.worker
	m.mu.Unlock()

	if worker != nil {
		worker.Cancel()
	}
}

// Shutdown cancels any active job, awaits its termination, then purges the
// workspace. Call once at teardown; skipping it leaks the scratch directory.
func (m *Manager) Shutdown() {
	m.shutdown.Do(func() {
		m.mu.Lock()
		m.closed = true
		worker := m.worker
		m.mu.Unlock()

		if worker != nil {
			worker.Cancel()
		}
		m.wg.Wait()
		m.workspace.Purge()
		m.logger.Info("render manager shut down")
	})
}

// await bridges one worker's terminal result to the job handle, the optional
// artifact sink, and subscribers.
func (m *Manager) await(job *Job, worker *Worker, req Request) {
	defer m.wg.Done()

	res := <-worker.Done()

	if res.Success() && m.sink != nil && req.ProjectID != "" && req.VersionID != "" {
		stored, err := m.sink(context.Background(), req.ProjectID, req.VersionID, res.ArtifactPath)
		if err != nil {
			m.logger.Warn("failed to persist artifact",
				"job_id", job.ID, "project_id", req.ProjectID, "version_id", req.VersionID, "error", err)
		} else {
			res.ArtifactPath = stored
		}
	}

	job.result = res
	close(job.done)

	m.mu.Lock()
	if m.current == job {
		m.current = nil
		m.worker = nil
	}
	m.mu.Unlock()

	switch {
	case res.Outcome == OutcomeCancelled:
		// Suppressed from subscribers; supersession means a newer job has
		// already replaced this one, and an explicit cancel is reported
		// through the job handle.
		m.logger.Info("render job cancelled", "job_id", job.ID, "superseded", job.Superseded())
	case res.Success():
		m.logger.Info("render job finished", "job_id", job.ID, "artifact", res.ArtifactPath, "elapsed", res.Elapsed)
		m.notifyFinished(job.ID, res.ArtifactPath)
	default:
		m.logger.Warn("render job failed", "job_id", job.ID, "outcome", res.Outcome, "reason", res.Reason)
		m.notifyFailed(job.ID, res.Reason)
	}
}

func (m *Manager) notifyStarted(jobID string) {
	for _, sub := range m.subscribers() {
		sub.RenderStarted(jobID)
	}
}

func (m *Manager) notifyProgress(jobID string, fraction float64) {
	for _, sub := range m.subscribers() {
		sub.RenderProgress(jobID, fraction)
	}
}

func (m *Manager) notifyFinished(jobID, artifactPath string) {
	for _, sub := range m.subscribers() {
		sub.RenderFinished(jobID, artifactPath)
	}
}

func (m *Manager) notifyFailed(jobID, reason string) {
	for _, sub := range m.subscribers() {
		sub.RenderFailed(jobID, reason)
	}
}

func (m *Manager) subscribers() []Subscriber {
	m.subMu.Lock()
	defer m.subMu.Unlock()
	return append([]Subscriber(nil), m.subs...)
}
