package render

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectEntryPointFirstWins(t *testing.T) {
	code := `from manim import *

class FirstScene(Scene):
    def construct(self):
        pass

class SecondScene(Scene):
    def construct(self):
        pass
`
	// Deterministic across repeated runs on identical input.
	for i := 0; i < 5; i++ {
		require.Equal(t, "FirstScene", DetectEntryPoint(code))
	}
}

func TestDetectEntryPointSceneVariants(t *testing.T) {
	require.Equal(t, "Camera3D", DetectEntryPoint("class Camera3D(ThreeDScene):\n    pass\n"))
	require.Equal(t, "Qualified", DetectEntryPoint("class Qualified(manim.Scene):\n    pass\n"))
	require.Equal(t, "Multi", DetectEntryPoint("class Multi(Mixin, MovingCameraScene):\n    pass\n"))
}

func TestDetectEntryPointDefault(t *testing.T) {
	require.Equal(t, DefaultEntryPoint, DetectEntryPoint("x = 1\n"))
	require.Equal(t, DefaultEntryPoint, DetectEntryPoint("class Plain:\n    pass\n"))
	require.Equal(t, DefaultEntryPoint, DetectEntryPoint(""))
}
