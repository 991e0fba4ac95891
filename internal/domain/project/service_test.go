package project_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sceneforge/sceneforge/internal/domain/project"
	"github.com/sceneforge/sceneforge/internal/repository"
	"github.com/sceneforge/sceneforge/internal/repository/mocks"
)

func TestProjectService_CreateValidation(t *testing.T) {
	repo := &mocks.ProjectRepository{}
	svc := project.NewService(repo, "", nil)

	_, err := svc.Create(context.Background(), project.CreateRequest{Name: "  "})
	require.ErrorIs(t, err, project.ErrInvalidInput)
}

func TestProjectService_CreateMakesStorage(t *testing.T) {
	ctx := context.Background()
	dataDir := t.TempDir()

	repo := &mocks.ProjectRepository{}
	repo.On("Create", ctx, mock.Anything).Return(nil)

	svc := project.NewService(repo, dataDir, nil)
	proj, err := svc.Create(ctx, project.CreateRequest{Name: "orbits", Description: "planets"})
	require.NoError(t, err)
	require.NotEmpty(t, proj.ID)
	require.Nil(t, proj.CurrentVersionID)

	info, err := os.Stat(filepath.Join(dataDir, proj.ID))
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestProjectService_GetMapsNotFound(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "missing").Return(nil, repository.ErrNotFound)
	repo.On("Get", ctx, "corrupt").Return(nil, repository.ErrCorruptRecord)

	svc := project.NewService(repo, "", nil)
	_, err := svc.Get(ctx, "missing")
	require.ErrorIs(t, err, project.ErrProjectNotFound)

	_, err = svc.Get(ctx, "corrupt")
	require.ErrorIs(t, err, project.ErrCorruptProject)
}

func TestProjectService_DeleteRemovesArtifacts(t *testing.T) {
	ctx := context.Background()
	dataDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dataDir, "p1", "v1"), 0o755))

	repo := &mocks.ProjectRepository{}
	repo.On("Delete", ctx, "p1").Return(nil)

	svc := project.NewService(repo, dataDir, nil)
	require.NoError(t, svc.Delete(ctx, "p1"))

	_, err := os.Stat(filepath.Join(dataDir, "p1"))
	require.True(t, os.IsNotExist(err))
}

func TestProjectService_SetCurrentVersionMapsErrors(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("SetCurrentVersion", ctx, "missing", mock.Anything).Return(repository.ErrNotFound)
	repo.On("SetCurrentVersion", ctx, "p1", mock.Anything).Return(repository.ErrForeignKeyViolation)

	svc := project.NewService(repo, "", nil)
	err := svc.SetCurrentVersion(ctx, "missing", "v1")
	require.ErrorIs(t, err, project.ErrProjectNotFound)

	err = svc.SetCurrentVersion(ctx, "p1", "foreign-version")
	require.ErrorIs(t, err, project.ErrInvalidInput)
}
