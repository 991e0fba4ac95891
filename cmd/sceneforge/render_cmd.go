package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sceneforge/sceneforge/internal/render"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a stored version or a source file",
	Long: `Render scene code through the manim CLI.

With --project and --version, renders a stored snapshot and attaches the
artifact to it on success. With --file, renders ad hoc without persisting.`,
	RunE: runRender,
}

var (
	renderProject string
	renderVersion string
	renderFile    string
	renderEntry   string
	renderQuality string
	renderFormat  string
	renderTimeout int
)

func init() {
	renderCmd.Flags().StringVar(&renderProject, "project", "", "Project ID")
	renderCmd.Flags().StringVar(&renderVersion, "version", "", "Version ID to render")
	renderCmd.Flags().StringVar(&renderFile, "file", "", "Scene source file for an ad-hoc render")
	renderCmd.Flags().StringVar(&renderEntry, "entry", "", "Scene class to render (auto-detected when omitted)")
	renderCmd.Flags().StringVar(&renderQuality, "quality", "", "Quality preset (low, medium, high, ultra)")
	renderCmd.Flags().StringVar(&renderFormat, "format", "", "Output container (mp4, gif, webm, mov)")
	renderCmd.Flags().IntVar(&renderTimeout, "timeout", 0, "Wall-clock budget in seconds")
}

func runRender(cmd *cobra.Command, args []string) error {
	if (renderFile == "") == (renderVersion == "") {
		return fmt.Errorf("provide either --file or --project with --version")
	}
	if renderVersion != "" && renderProject == "" {
		return fmt.Errorf("--version requires --project")
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	code := ""
	if renderFile != "" {
		data, err := os.ReadFile(renderFile)
		if err != nil {
			return fmt.Errorf("read source file: %w", err)
		}
		code = string(data)
	} else {
		ver, err := a.versions.Get(cmd.Context(), renderProject, renderVersion)
		if err != nil {
			return err
		}
		code = ver.Code
	}

	cfg, err := renderConfigFromFlags(a)
	if err != nil {
		return err
	}

	workspace, err := render.NewWorkspace()
	if err != nil {
		return fmt.Errorf("create workspace: %w", err)
	}

	sink := render.ArtifactSink(nil)
	if renderVersion != "" {
		sink = func(ctx context.Context, projectID, versionID, scratchPath string) (string, error) {
			ver, err := a.versions.AttachArtifact(ctx, projectID, versionID, scratchPath, nil)
			if err != nil {
				return "", err
			}
			return *ver.VideoPath, nil
		}
	}

	manager := render.NewManager(workspace, a.cfg.Renderer.Command, cfg, sink, nil)
	defer manager.Shutdown()

	job, err := manager.Submit(cmd.Context(), render.Request{
		Code:       code,
		EntryPoint: renderEntry,
		ProjectID:  renderProject,
		VersionID:  renderVersion,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Rendering %s (budget %s)...\n", job.EntryPoint, cfg.Timeout)

	result, err := job.Wait(cmd.Context())
	if err != nil {
		return err
	}

	switch result.Outcome {
	case render.OutcomeCompleted:
		fmt.Printf("Completed in %s\n", result.Elapsed.Round(time.Millisecond))
		fmt.Printf("Artifact: %s\n", result.ArtifactPath)
		return nil
	case render.OutcomeTimedOut:
		return fmt.Errorf("render timed out after %s", result.Elapsed)
	case render.OutcomeCancelled:
		return fmt.Errorf("render cancelled")
	default:
		return fmt.Errorf("render failed: %s", result.Reason)
	}
}

func renderConfigFromFlags(a *app) (render.Config, error) {
	quality, err := render.ParseQuality(a.cfg.Renderer.Quality)
	if err != nil {
		return render.Config{}, err
	}
	cfg := render.Config{
		Quality:        quality,
		Format:         a.cfg.Renderer.Format,
		Timeout:        a.cfg.Renderer.Timeout(),
		DisableCaching: a.cfg.Renderer.DisableCaching,
	}
	if renderQuality != "" {
		if cfg.Quality, err = render.ParseQuality(renderQuality); err != nil {
			return render.Config{}, err
		}
	}
	if renderFormat != "" {
		cfg.Format = renderFormat
	}
	if renderTimeout > 0 {
		cfg.Timeout = time.Duration(renderTimeout) * time.Second
	}
	return cfg, nil
}
