package render

import "regexp"

// DefaultEntryPoint is used when no scene class can be detected in the code.
const DefaultEntryPoint = "GeneratedScene"

// sceneClassRe matches a Python class definition whose base list mentions a
// Scene type (Scene, MovingCameraScene, ThreeDScene, manim.Scene, ...).
var sceneClassRe = regexp.MustCompile(`(?m)^class\s+(\w+)\s*\(([^)]*Scene[^)]*)\)\s*:`)

// DetectEntryPoint scans code for class definitions deriving from a Scene
// base and returns the first one in top-to-bottom source order. This is a
// heuristic tie-break, not a correctness guarantee: when multiple scenes
// exist the first wins, deterministically. Falls back to DefaultEntryPoint.
func DetectEntryPoint(code string) string {
	if m := sceneClassRe.FindStringSubmatch(code); m != nil {
		return m[1]
	}
	return DefaultEntryPoint
}
