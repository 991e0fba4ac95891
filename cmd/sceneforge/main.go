package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sceneforge/sceneforge/internal/config"
	"github.com/sceneforge/sceneforge/internal/domain/project"
	"github.com/sceneforge/sceneforge/internal/domain/version"
	"github.com/sceneforge/sceneforge/internal/sqlite"
)

var rootCmd = &cobra.Command{
	Use:   "sceneforge",
	Short: "sceneforge - procedural animation projects from the command line",
	Long:  `sceneforge keeps every edit of an animation as an immutable version and renders scenes through the manim CLI. This tool works directly against the local store; the MCP server offers the same operations to agents.`,
	// No RunE - defaults to showing help when no subcommand is provided
}

func init() {
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(renderCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app bundles the store and services the subcommands run against.
type app struct {
	cfg      config.Config
	db       *sqlite.DB
	projects *project.Service
	versions *version.Service
}

func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	if err := os.MkdirAll(cfg.Data.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("prepare data directory: %w", err)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	projectRepo := sqlite.NewProjectRepository(db)
	versionRepo := sqlite.NewVersionRepository(db)

	return &app{
		cfg:      cfg,
		db:       db,
		projects: project.NewService(projectRepo, cfg.Data.Dir, logger),
		versions: version.NewService(versionRepo, projectRepo, cfg.Data.Dir, logger),
	}, nil
}

func (a *app) close() {
	a.db.Close()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

func truncateID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
