package render

import (
	"bytes"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// Worker executes one rendering subprocess. Its lifecycle is
// Idle → Running → {Completed, Failed, TimedOut, Cancelled}; terminal states
// admit no further transitions, and exactly one Result is delivered on Done.
type Worker struct {
	renderer []string
	logger   *slog.Logger

	mu        sync.Mutex
	running   bool
	finished  bool
	cancelled bool
	timedOut  bool
	cmd       *exec.Cmd

	done chan Result
}

// NewWorker creates an idle worker. renderer is the external CLI invocation
// prefix (e.g. ["python3", "-m", "manim"]).
func NewWorker(renderer []string, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{
		renderer: renderer,
		logger:   logger,
		done:     make(chan Result, 1),
	}
}

// Start launches the renderer subprocess and returns immediately; the
// terminal Result is delivered asynchronously on Done. A launch failure is
// itself delivered as a Failed result. Starting twice is an error.
func (w *Worker) Start(src SourceFile, entryPoint, mediaDir string, cfg Config) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running || w.finished {
		return fmt.Errorf("worker already started")
	}
	if len(w.renderer) == 0 {
		return fmt.Errorf("no renderer command configured")
	}

	cfg = cfg.withDefaults()

	args := append([]string{}, w.renderer[1:]...)
	args = append(args,
		"render",
		src.Path,
		entryPoint,
		"-q"+cfg.Quality.Flag(),
		"--format", cfg.Format,
		"--media_dir", mediaDir,
	)
	if cfg.DisableCaching {
		args = append(args, "--disable_caching")
	}

	cmd := exec.Command(w.renderer[0], args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	setProcGroup(cmd)

	start := time.Now()
	if err := cmd.Start(); err != nil {
		w.finished = true
		w.done <- Result{
			Outcome: OutcomeFailed,
			Elapsed: time.Since(start),
			Reason:  fmt.Sprintf("failed to launch renderer: %v", err),
		}
		return nil
	}

	w.running = true
	w.cmd = cmd

	timer := time.AfterFunc(cfg.Timeout, func() {
		w.mu.Lock()
		expired := w.running && !w.cancelled
		if expired {
			w.timedOut = true
		}
		w.mu.Unlock()
		if expired {
			killProc(cmd)
		}
	})

	go func() {
		waitErr := cmd.Wait()
		timer.Stop()
		elapsed := time.Since(start)

		w.mu.Lock()
		w.running = false
		w.finished = true
		cancelled, timedOut := w.cancelled, w.timedOut
		w.mu.Unlock()

		w.done <- w.outcome(waitErr, elapsed, cancelled, timedOut, src, entryPoint, mediaDir, cfg, stdout.String(), stderr.String())
	}()

	return nil
}

// Done returns the channel carrying the terminal result.
func (w *Worker) Done() <-chan Result {
	return w.done
}

// Cancel requests termination of the subprocess. The eventual outcome is
// Cancelled even if the process exits non-zero as a result of the kill.
// Calling Cancel after the worker reached a terminal state is a no-op.
func (w *Worker) Cancel() {
	w.mu.Lock()
	if !w.running || w.cancelled || w.timedOut {
		w.mu.Unlock()
		return
	}
	w.cancelled = true
	cmd := w.cmd
	w.mu.Unlock()

	killProc(cmd)
}

func (w *Worker) outcome(waitErr error, elapsed time.Duration, cancelled, timedOut bool, src SourceFile, entryPoint, mediaDir string, cfg Config, stdout, stderr string) Result {
	res := Result{Elapsed: elapsed, Stdout: stdout, Stderr: stderr}

	switch {
	case cancelled:
		res.Outcome = OutcomeCancelled
		res.Reason = "render cancelled"

	case timedOut:
		res.Outcome = OutcomeTimedOut
		res.Elapsed = cfg.Timeout
		res.Reason = fmt.Sprintf("render timed out after %s", cfg.Timeout)

	case waitErr == nil:
		// Exit 0 alone isn't success: the artifact must be locatable in
		// this job's own output tree.
		artifact := Locate(src.Stem, entryPoint, cfg.Quality, cfg.Format, mediaDir)
		if artifact == "" {
			res.Outcome = OutcomeFailed
			res.Reason = "render completed but no output artifact was found"
			break
		}
		res.Outcome = OutcomeCompleted
		res.ArtifactPath = artifact

	default:
		res.Outcome = OutcomeFailed
		if exitErr, ok := waitErr.(*exec.ExitError); ok {
			parsed := ParseStderr(stderr, src.Path)
			res.Reason = fmt.Sprintf("renderer exited with code %d: %s", exitErr.ExitCode(), parsed.Summary)
		} else {
			res.Reason = fmt.Sprintf("renderer failed: %v", waitErr)
		}
	}

	if res.Outcome != OutcomeCompleted && res.Reason != "" {
		w.logger.Debug("render worker finished", "outcome", res.Outcome, "reason", res.Reason, "stderr_tail", tail(stderr, 400))
	}
	return res
}

// tail returns the last n bytes of s, for log-friendly stderr excerpts.
func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
