package render

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// writeStub writes an executable shell script standing in for the manim CLI.
// Argument layout matches the worker's invocation:
//
//	$1=render $2=source $3=entry-point $4=-q<flag> $5=--format $6=<format>
//	$7=--media_dir $8=<dir> [$9=--disable_caching]
func writeStub(t *testing.T, body string) []string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manim-stub.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return []string{path}
}

func startWorker(t *testing.T, renderer []string, code string, cfg Config) (*Worker, string) {
	t.Helper()
	ws := newTestWorkspace(t)
	src, err := ws.WriteSource("job1", code, "GeneratedScene")
	require.NoError(t, err)
	mediaDir := ws.MediaDir("job1")

	w := NewWorker(renderer, nil)
	require.NoError(t, w.Start(src, "GeneratedScene", mediaDir, cfg))
	return w, mediaDir
}

func TestWorkerCompleted(t *testing.T) {
	renderer := writeStub(t, `
mkdir -p "$8/videos/generatedscene/480p15"
: > "$8/videos/generatedscene/480p15/$3.mp4"
exit 0
`)

	w, mediaDir := startWorker(t, renderer, "class GeneratedScene(Scene): pass", Config{Timeout: 10 * time.Second})
	res := <-w.Done()

	require.Equal(t, OutcomeCompleted, res.Outcome)
	expected := filepath.Join(mediaDir, "videos", "generatedscene", "480p15", "GeneratedScene.mp4")
	require.Equal(t, expected, res.ArtifactPath)
	require.Greater(t, res.Elapsed, time.Duration(0))
}

func TestWorkerExitZeroWithoutArtifact(t *testing.T) {
	renderer := writeStub(t, "exit 0\n")

	w, _ := startWorker(t, renderer, "x", Config{Timeout: 10 * time.Second})
	res := <-w.Done()

	require.Equal(t, OutcomeFailed, res.Outcome)
	require.Contains(t, res.Reason, "no output artifact")
}

func TestWorkerNonZeroExit(t *testing.T) {
	renderer := writeStub(t, `
echo "Traceback (most recent call last):" >&2
echo '  File "scene.py", line 2, in construct' >&2
echo "NameError: name 'Circl' is not defined" >&2
exit 1
`)

	w, _ := startWorker(t, renderer, "x", Config{Timeout: 10 * time.Second})
	res := <-w.Done()

	require.Equal(t, OutcomeFailed, res.Outcome)
	require.Contains(t, res.Reason, "exited with code 1")
	require.Contains(t, res.Reason, "NameError")
	require.Contains(t, res.Stderr, "Traceback")
}

func TestWorkerTimeout(t *testing.T) {
	renderer := writeStub(t, "sleep 30\n")

	start := time.Now()
	w, _ := startWorker(t, renderer, "x", Config{Timeout: 1 * time.Second})
	res := <-w.Done()

	require.Equal(t, OutcomeTimedOut, res.Outcome)
	require.Equal(t, 1*time.Second, res.Elapsed, "timed-out elapsed reports the configured budget")
	// The stub slept 30s; a prompt return proves the process was killed.
	require.Less(t, time.Since(start), 5*time.Second)
}

func TestWorkerCancel(t *testing.T) {
	renderer := writeStub(t, "sleep 30\n")

	start := time.Now()
	w, _ := startWorker(t, renderer, "x", Config{Timeout: 20 * time.Second})
	time.Sleep(100 * time.Millisecond)
	w.Cancel()
	res := <-w.Done()

	require.Equal(t, OutcomeCancelled, res.Outcome, "cancellation wins over the kill-induced exit code")
	require.Less(t, time.Since(start), 5*time.Second)

	w.Cancel() // no-op after terminal state
}

func TestWorkerLaunchFailure(t *testing.T) {
	w, _ := startWorker(t, []string{"/nonexistent/manim-binary"}, "x", Config{Timeout: time.Second})
	res := <-w.Done()

	require.Equal(t, OutcomeFailed, res.Outcome)
	require.Contains(t, res.Reason, "failed to launch renderer")
}

func TestWorkerStartTwice(t *testing.T) {
	renderer := writeStub(t, "exit 0\n")

	ws := newTestWorkspace(t)
	src, err := ws.WriteSource("job1", "x", "scene")
	require.NoError(t, err)

	w := NewWorker(renderer, nil)
	require.NoError(t, w.Start(src, "scene", ws.MediaDir("job1"), Config{Timeout: time.Second}))
	require.Error(t, w.Start(src, "scene", ws.MediaDir("job1"), Config{Timeout: time.Second}))
	<-w.Done()
}

func TestWorkerDisableCachingFlag(t *testing.T) {
	renderer := writeStub(t, `
if [ "$9" = "--disable_caching" ]; then
  mkdir -p "$8/videos/generatedscene/480p15"
  : > "$8/videos/generatedscene/480p15/$3.mp4"
fi
exit 0
`)

	w, _ := startWorker(t, renderer, "x", Config{Timeout: 10 * time.Second, DisableCaching: true})
	res := <-w.Done()
	require.Equal(t, OutcomeCompleted, res.Outcome)
}
