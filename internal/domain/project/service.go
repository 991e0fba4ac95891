package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sceneforge/sceneforge/internal/repository"
)

// Service handles project operations.
type Service struct {
	repo    Repository
	dataDir string
	logger  *slog.Logger
}

// NewService creates a new project service. dataDir is the root under which
// each project keeps its copied-in artifacts.
func NewService(repo Repository, dataDir string, logger *slog.Logger) *Service {
	return &Service{repo: repo, dataDir: dataDir, logger: logger}
}

// CreateRequest defines project creation inputs.
type CreateRequest struct {
	Name        string
	Description string
}

// Create creates a new project and its artifact directory.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Project, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidInput
	}

	now := time.Now()
	proj := &Project{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if s.dataDir != "" {
		if err := os.MkdirAll(filepath.Join(s.dataDir, proj.ID), 0o755); err != nil {
			return nil, fmt.Errorf("creating project storage: %w", err)
		}
	}

	if err := s.repo.Create(ctx, proj); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	return proj, nil
}

// Get fetches a project by ID.
func (s *Service) Get(ctx context.Context, id string) (*Project, error) {
	proj, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		if errors.Is(err, repository.ErrCorruptRecord) {
			return nil, ErrCorruptProject
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

// List returns project summaries ordered by update time descending.
func (s *Service) List(ctx context.Context) ([]Summary, error) {
	return s.repo.List(ctx)
}

// Delete removes the project, all its versions, and its artifact directory.
// Idempotent: deleting an absent project succeeds silently.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	if s.dataDir != "" {
		if err := os.RemoveAll(filepath.Join(s.dataDir, id)); err != nil && s.logger != nil {
			s.logger.Warn("failed to remove project artifacts", "project_id", id, "error", err)
		}
	}
	return nil
}

// SetCurrentVersion points the project at a version and bumps its update time.
func (s *Service) SetCurrentVersion(ctx context.Context, projectID, versionID string) error {
	var vid *string
	if versionID != "" {
		vid = &versionID
	}
	if err := s.repo.SetCurrentVersion(ctx, projectID, vid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectNotFound
		}
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return fmt.Errorf("%w: version %s", ErrInvalidInput, versionID)
		}
		return fmt.Errorf("setting current version: %w", err)
	}
	return nil
}
