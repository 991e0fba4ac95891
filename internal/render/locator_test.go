package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFileAt(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestLocateExpectedPath(t *testing.T) {
	root := t.TempDir()
	expected := filepath.Join(root, "videos", "scene1", "480p15", "GeneratedScene.mp4")
	writeFileAt(t, expected)

	got := Locate("scene1", "GeneratedScene", QualityLow, "mp4", root)
	require.Equal(t, expected, got)
}

func TestLocateFallbackScan(t *testing.T) {
	root := t.TempDir()
	// Renderer wrote somewhere unexpected within the scene directory.
	stray := filepath.Join(root, "videos", "scene1", "partial_movie_files", "clip.mp4")
	writeFileAt(t, stray)

	got := Locate("scene1", "GeneratedScene", QualityLow, "mp4", root)
	require.Equal(t, stray, got)
}

func TestLocateIgnoresNonVideoFiles(t *testing.T) {
	root := t.TempDir()
	writeFileAt(t, filepath.Join(root, "videos", "scene1", "480p15", "notes.txt"))

	got := Locate("scene1", "GeneratedScene", QualityLow, "mp4", root)
	require.Empty(t, got)
}

func TestLocateAbsent(t *testing.T) {
	root := t.TempDir()
	require.Empty(t, Locate("scene1", "GeneratedScene", QualityLow, "mp4", root))
}

func TestLocateScopedToStem(t *testing.T) {
	root := t.TempDir()
	writeFileAt(t, filepath.Join(root, "videos", "other_scene", "480p15", "GeneratedScene.mp4"))

	require.Empty(t, Locate("scene1", "GeneratedScene", QualityLow, "mp4", root))
}
