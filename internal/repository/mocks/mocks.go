package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/sceneforge/sceneforge/internal/domain/project"
	"github.com/sceneforge/sceneforge/internal/domain/version"
)

// ProjectRepository is a mock for project.Repository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	args := m.Called(ctx, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) List(ctx context.Context) ([]project.Summary, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.Summary); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ProjectRepository) SetCurrentVersion(ctx context.Context, projectID string, versionID *string) error {
	args := m.Called(ctx, projectID, versionID)
	return args.Error(0)
}

func (m *ProjectRepository) Touch(ctx context.Context, projectID string, at time.Time) error {
	args := m.Called(ctx, projectID, at)
	return args.Error(0)
}

// VersionRepository is a mock for version.Repository.
type VersionRepository struct {
	mock.Mock
}

func (m *VersionRepository) Create(ctx context.Context, v *version.Version) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *VersionRepository) Get(ctx context.Context, projectID, id string) (*version.Version, error) {
	args := m.Called(ctx, projectID, id)
	if v, ok := args.Get(0).(*version.Version); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *VersionRepository) List(ctx context.Context, projectID string) ([]version.Version, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]version.Version); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *VersionRepository) AttachArtifact(ctx context.Context, projectID, id string, videoPath string, thumbnailPath *string) error {
	args := m.Called(ctx, projectID, id, videoPath, thumbnailPath)
	return args.Error(0)
}
