package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/sceneforge/sceneforge/internal/domain/project"
	"github.com/sceneforge/sceneforge/internal/domain/version"
	"github.com/sceneforge/sceneforge/internal/repository"
)

func newTestProject(name string) *project.Project {
	now := time.Now()
	return &project.Project{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newTestVersion(projectID, code string) *version.Version {
	return &version.Version{
		ID:         uuid.NewString(),
		ProjectID:  projectID,
		Code:       code,
		Provenance: version.ProvenanceManualEdit,
		CreatedAt:  time.Now(),
	}
}

func TestProjectCreateGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	proj := newTestProject("circles")
	proj.Description = "a circle animation"
	require.NoError(t, repo.Create(ctx, proj))

	got, err := repo.Get(ctx, proj.ID)
	require.NoError(t, err)
	require.Equal(t, proj.ID, got.ID)
	require.Equal(t, "circles", got.Name)
	require.Equal(t, "a circle animation", got.Description)
	require.Nil(t, got.CurrentVersionID)
}

func TestProjectGetMissing(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)

	_, err := repo.Get(context.Background(), "nope")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectListOrder(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	older := newTestProject("older")
	older.UpdatedAt = time.Now().Add(-time.Hour)
	newer := newTestProject("newer")
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	summaries, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	require.Equal(t, "newer", summaries[0].Name)
	require.Equal(t, "older", summaries[1].Name)
}

func TestProjectDeleteCascades(t *testing.T) {
	db := NewTestDB(t)
	projects := NewProjectRepository(db)
	versions := NewVersionRepository(db)
	ctx := context.Background()

	proj := newTestProject("doomed")
	require.NoError(t, projects.Create(ctx, proj))
	v := newTestVersion(proj.ID, "code")
	require.NoError(t, versions.Create(ctx, v))
	require.NoError(t, projects.SetCurrentVersion(ctx, proj.ID, &v.ID))

	require.NoError(t, projects.Delete(ctx, proj.ID))

	_, err := projects.Get(ctx, proj.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
	_, err = versions.Get(ctx, proj.ID, v.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectDeleteIdempotent(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Delete(ctx, "never-existed"))

	proj := newTestProject("twice")
	require.NoError(t, repo.Create(ctx, proj))
	require.NoError(t, repo.Delete(ctx, proj.ID))
	require.NoError(t, repo.Delete(ctx, proj.ID))
}

func TestProjectSetCurrentVersion(t *testing.T) {
	db := NewTestDB(t)
	projects := NewProjectRepository(db)
	versions := NewVersionRepository(db)
	ctx := context.Background()

	proj := newTestProject("pointer")
	require.NoError(t, projects.Create(ctx, proj))
	v := newTestVersion(proj.ID, "code")
	require.NoError(t, versions.Create(ctx, v))

	require.NoError(t, projects.SetCurrentVersion(ctx, proj.ID, &v.ID))
	got, err := projects.Get(ctx, proj.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CurrentVersionID)
	require.Equal(t, v.ID, *got.CurrentVersionID)

	// A version from another project must be rejected.
	other := newTestProject("other")
	require.NoError(t, projects.Create(ctx, other))
	err = projects.SetCurrentVersion(ctx, other.ID, &v.ID)
	require.ErrorIs(t, err, repository.ErrForeignKeyViolation)

	// Clearing the pointer is allowed.
	require.NoError(t, projects.SetCurrentVersion(ctx, proj.ID, nil))
	got, err = projects.Get(ctx, proj.ID)
	require.NoError(t, err)
	require.Nil(t, got.CurrentVersionID)
}

func TestProjectTouch(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	proj := newTestProject("touched")
	proj.UpdatedAt = time.Now().Add(-time.Hour)
	require.NoError(t, repo.Create(ctx, proj))

	at := time.Now()
	require.NoError(t, repo.Touch(ctx, proj.ID, at))
	got, err := repo.Get(ctx, proj.ID)
	require.NoError(t, err)
	require.WithinDuration(t, at, got.UpdatedAt, time.Second)

	require.ErrorIs(t, repo.Touch(ctx, "nope", at), repository.ErrNotFound)
}
