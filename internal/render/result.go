package render

import "time"

// Outcome is the terminal state of a render job.
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeFailed    Outcome = "failed"
	OutcomeTimedOut  Outcome = "timed_out"
	OutcomeCancelled Outcome = "cancelled"
)

// Result is a worker's terminal report. Exactly one is delivered per started
// worker.
type Result struct {
	Outcome      Outcome
	ArtifactPath string
	Elapsed      time.Duration
	Reason       string
	Stdout       string
	Stderr       string
}

// Success reports whether the render produced a locatable artifact.
func (r Result) Success() bool {
	return r.Outcome == OutcomeCompleted
}
