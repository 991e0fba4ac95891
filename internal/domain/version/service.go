package version

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/sceneforge/sceneforge/internal/domain/project"
	"github.com/sceneforge/sceneforge/internal/repository"
)

// Service handles version history operations for a project's snapshot tree.
type Service struct {
	versions Repository
	projects project.Repository
	dataDir  string
	logger   *slog.Logger
}

// NewService creates a new version service. dataDir is the root under which
// rendered artifacts are copied, one directory per project and version.
func NewService(versions Repository, projects project.Repository, dataDir string, logger *slog.Logger) *Service {
	return &Service{versions: versions, projects: projects, dataDir: dataDir, logger: logger}
}

// CreateRequest describes a version creation request. Code is origin-agnostic:
// AI output, a manual edit, and a variable tweak all arrive the same way.
type CreateRequest struct {
	ProjectID  string
	Code       string
	Prompt     *string
	Provenance Provenance
	ParentID   *string
}

// Create persists a new immutable snapshot. A parent, if given, must resolve
// to an existing version of the same project.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Version, error) {
	if req.ProjectID == "" || req.Code == "" {
		return nil, ErrInvalidInput
	}
	if !req.Provenance.Valid() {
		return nil, fmt.Errorf("%w: unknown provenance %q", ErrInvalidInput, req.Provenance)
	}

	if _, err := s.projects.Get(ctx, req.ProjectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("checking project: %w", err)
	}

	if req.ParentID != nil && *req.ParentID != "" {
		if _, err := s.versions.Get(ctx, req.ProjectID, *req.ParentID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrParentNotFound
			}
			return nil, fmt.Errorf("checking parent version: %w", err)
		}
	}

	now := time.Now()
	v := &Version{
		ID:         uuid.NewString(),
		ProjectID:  req.ProjectID,
		Code:       req.Code,
		Prompt:     req.Prompt,
		Provenance: req.Provenance,
		ParentID:   req.ParentID,
		CreatedAt:  now,
	}

	if err := s.versions.Create(ctx, v); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, ErrParentNotFound
		}
		return nil, fmt.Errorf("creating version: %w", err)
	}

	if err := s.projects.Touch(ctx, req.ProjectID, now); err != nil && s.logger != nil {
		s.logger.Warn("failed to bump project update time", "project_id", req.ProjectID, "error", err)
	}

	return v, nil
}

// Get fetches a version by ID within a project.
func (s *Service) Get(ctx context.Context, projectID, id string) (*Version, error) {
	v, err := s.versions.Get(ctx, projectID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVersionNotFound
		}
		if errors.Is(err, repository.ErrCorruptRecord) {
			return nil, ErrCorruptVersion
		}
		return nil, fmt.Errorf("getting version: %w", err)
	}
	return v, nil
}

// List returns all versions of a project in creation order.
func (s *Service) List(ctx context.Context, projectID string) ([]Version, error) {
	return s.versions.List(ctx, projectID)
}

// Latest returns the newest version by creation order, or ErrVersionNotFound
// for an empty history.
func (s *Service) Latest(ctx context.Context, projectID string) (*Version, error) {
	versions, err := s.versions.List(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing versions: %w", err)
	}
	if len(versions) == 0 {
		return nil, ErrVersionNotFound
	}
	return &versions[len(versions)-1], nil
}

// AttachArtifact copies the rendered video (and optional thumbnail) into the
// project's durable storage and records the final paths on the version. This
// is the one allowed post-creation mutation.
func (s *Service) AttachArtifact(ctx context.Context, projectID, id, videoPath string, thumbnailPath *string) (*Version, error) {
	if _, err := s.versions.Get(ctx, projectID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVersionNotFound
		}
		return nil, fmt.Errorf("getting version: %w", err)
	}

	storedVideo := videoPath
	var storedThumb *string
	if s.dataDir != "" {
		destDir := filepath.Join(s.dataDir, projectID, id)
		copied, err := copyInto(videoPath, destDir)
		if err != nil {
			return nil, fmt.Errorf("copying artifact: %w", err)
		}
		storedVideo = copied
		if thumbnailPath != nil && *thumbnailPath != "" {
			copiedThumb, err := copyInto(*thumbnailPath, destDir)
			if err != nil {
				return nil, fmt.Errorf("copying thumbnail: %w", err)
			}
			storedThumb = &copiedThumb
		}
	} else {
		storedThumb = thumbnailPath
	}

	if err := s.versions.AttachArtifact(ctx, projectID, id, storedVideo, storedThumb); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVersionNotFound
		}
		return nil, fmt.Errorf("attaching artifact: %w", err)
	}

	if err := s.projects.Touch(ctx, projectID, time.Now()); err != nil && s.logger != nil {
		s.logger.Warn("failed to bump project update time", "project_id", projectID, "error", err)
	}

	return s.Get(ctx, projectID, id)
}

// copyInto copies src into destDir keeping the base name, creating destDir as
// needed, and returns the destination path.
func copyInto(src, destDir string) (string, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", err
	}
	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer in.Close()

	dest := filepath.Join(destDir, filepath.Base(src))
	out, err := os.Create(dest)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	return dest, nil
}
