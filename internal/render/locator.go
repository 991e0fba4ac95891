package render

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Locate maps (stem, entry point, quality) to the video the renderer wrote
// under searchRoot, returning "" when nothing is found. Callers must treat
// absence as distinct from a process error.
//
// Primary strategy: the exact path manim documents,
// searchRoot/videos/<stem>/<qualityDir>/<entryPoint>.<format>.
// Fallback: recursively scan searchRoot/videos/<stem> for any file with a
// known video extension and take the first match in traversal order. The
// fallback is nondeterministic when several candidates exist; it is an
// accepted heuristic, not a correctness guarantee.
func Locate(stem, entryPoint string, quality Quality, format, searchRoot string) string {
	sceneDir := filepath.Join(searchRoot, "videos", stem)

	expected := filepath.Join(sceneDir, quality.OutputDir(), entryPoint+"."+strings.TrimPrefix(format, "."))
	if fileExists(expected) {
		return expected
	}

	if _, err := os.Stat(sceneDir); err != nil {
		return ""
	}

	var found string
	_ = filepath.WalkDir(sceneDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if videoExtensions[strings.ToLower(filepath.Ext(path))] {
			found = path
			return filepath.SkipAll
		}
		return nil
	})
	return found
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
