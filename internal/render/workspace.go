package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SourceFile is an opaque handle to a scratch source file. Stem is the
// on-disk filename without extension; output discovery recomputes paths
// from it.
type SourceFile struct {
	Path string
	Stem string
}

// Workspace owns a process-lifetime scratch directory for render inputs and
// outputs. Each Manager owns exactly one Workspace; it is never shared across
// managers so concurrent jobs can't collide on scratch files.
type Workspace struct {
	root string
}

// NewWorkspace creates a fresh scratch root.
func NewWorkspace() (*Workspace, error) {
	root, err := os.MkdirTemp("", "sceneforge_")
	if err != nil {
		return nil, fmt.Errorf("creating scratch dir: %w", err)
	}
	return &Workspace{root: root}, nil
}

// Root returns the scratch root path.
func (w *Workspace) Root() string {
	return w.root
}

// WriteSource writes code into a fresh file under a job-scoped subdirectory.
// The filename is derived deterministically from logicalName (case-normalized,
// .py suffix) so output discovery can recompute the stem.
func (w *Workspace) WriteSource(jobID, code, logicalName string) (SourceFile, error) {
	stem := NormalizeStem(logicalName)
	dir := filepath.Join(w.root, jobID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return SourceFile{}, fmt.Errorf("creating job dir: %w", err)
	}

	path := filepath.Join(dir, stem+".py")
	if err := os.WriteFile(path, []byte(code), 0o644); err != nil {
		return SourceFile{}, fmt.Errorf("writing source file: %w", err)
	}

	return SourceFile{Path: path, Stem: stem}, nil
}

// MediaDir returns a job-scoped output directory, so a job's discovery scan
// can never pick up stale artifacts from an earlier run.
func (w *Workspace) MediaDir(jobID string) string {
	return filepath.Join(w.root, jobID, "media")
}

// Purge removes the scratch root. Best-effort and repeat-safe: scratch space
// is disposable, so removal errors are swallowed.
func (w *Workspace) Purge() {
	if w.root == "" {
		return
	}
	_ = os.RemoveAll(w.root)
}

// NormalizeStem derives a stable lowercase filename stem from a logical name.
func NormalizeStem(logicalName string) string {
	stem := strings.ToLower(strings.TrimSpace(logicalName))
	stem = strings.ReplaceAll(stem, " ", "_")
	if stem == "" {
		stem = "scene"
	}
	return stem
}
