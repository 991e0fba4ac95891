package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/sceneforge/sceneforge/internal/domain/version"
	"github.com/sceneforge/sceneforge/internal/repository"
)

func TestVersionRoundTrip(t *testing.T) {
	db := NewTestDB(t)
	projects := NewProjectRepository(db)
	versions := NewVersionRepository(db)
	ctx := context.Background()

	proj := newTestProject("roundtrip")
	require.NoError(t, projects.Create(ctx, proj))

	code := "from manim import *\n\nclass CircleScene(Scene):\n    def construct(self):\n        self.play(Create(Circle()))\n"
	prompt := "draw a circle"
	v := &version.Version{
		ID:         uuid.NewString(),
		ProjectID:  proj.ID,
		Code:       code,
		Prompt:     &prompt,
		Provenance: version.ProvenanceAIGenerated,
		CreatedAt:  time.Now(),
	}
	require.NoError(t, versions.Create(ctx, v))

	got, err := versions.Get(ctx, proj.ID, v.ID)
	require.NoError(t, err)
	require.Equal(t, code, got.Code, "code text must round-trip byte-identical")
	require.Equal(t, version.ProvenanceAIGenerated, got.Provenance)
	require.NotNil(t, got.Prompt)
	require.Equal(t, prompt, *got.Prompt)
	require.Nil(t, got.ParentID)
	require.False(t, got.Rendered())
}

func TestVersionGetScopedToProject(t *testing.T) {
	db := NewTestDB(t)
	projects := NewProjectRepository(db)
	versions := NewVersionRepository(db)
	ctx := context.Background()

	a := newTestProject("a")
	b := newTestProject("b")
	require.NoError(t, projects.Create(ctx, a))
	require.NoError(t, projects.Create(ctx, b))

	v := newTestVersion(a.ID, "code")
	require.NoError(t, versions.Create(ctx, v))

	_, err := versions.Get(ctx, b.ID, v.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestVersionParentForeignKey(t *testing.T) {
	db := NewTestDB(t)
	projects := NewProjectRepository(db)
	versions := NewVersionRepository(db)
	ctx := context.Background()

	proj := newTestProject("chain")
	require.NoError(t, projects.Create(ctx, proj))

	missing := uuid.NewString()
	v := newTestVersion(proj.ID, "code")
	v.ParentID = &missing
	err := versions.Create(ctx, v)
	require.ErrorIs(t, err, repository.ErrForeignKeyViolation)
}

func TestVersionListOrder(t *testing.T) {
	db := NewTestDB(t)
	projects := NewProjectRepository(db)
	versions := NewVersionRepository(db)
	ctx := context.Background()

	proj := newTestProject("ordered")
	require.NoError(t, projects.Create(ctx, proj))

	base := time.Now().Add(-time.Minute)
	var ids []string
	for i := 0; i < 3; i++ {
		v := newTestVersion(proj.ID, "code")
		v.CreatedAt = base.Add(time.Duration(i) * time.Second)
		if i > 0 {
			v.ParentID = &ids[i-1]
		}
		require.NoError(t, versions.Create(ctx, v))
		ids = append(ids, v.ID)
	}

	list, err := versions.List(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, v := range list {
		require.Equal(t, ids[i], v.ID, "versions must list in creation order")
	}
}

func TestVersionAttachArtifact(t *testing.T) {
	db := NewTestDB(t)
	projects := NewProjectRepository(db)
	versions := NewVersionRepository(db)
	ctx := context.Background()

	proj := newTestProject("attach")
	require.NoError(t, projects.Create(ctx, proj))
	v := newTestVersion(proj.ID, "code")
	require.NoError(t, versions.Create(ctx, v))

	thumb := "/data/p/v/thumb.png"
	require.NoError(t, versions.AttachArtifact(ctx, proj.ID, v.ID, "/data/p/v/Scene.mp4", &thumb))

	got, err := versions.Get(ctx, proj.ID, v.ID)
	require.NoError(t, err)
	require.True(t, got.Rendered())
	require.Equal(t, "/data/p/v/Scene.mp4", *got.VideoPath)
	require.Equal(t, thumb, *got.ThumbnailPath)

	err = versions.AttachArtifact(ctx, proj.ID, "missing", "/x.mp4", nil)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestVersionRejectsUnknownProvenance(t *testing.T) {
	db := NewTestDB(t)
	projects := NewProjectRepository(db)
	ctx := context.Background()

	proj := newTestProject("strict")
	require.NoError(t, projects.Create(ctx, proj))

	_, err := db.ExecContext(ctx, `
		INSERT INTO versions (id, project_id, code, provenance, created_at)
		VALUES (?, ?, 'code', 'freestyle', ?)
	`, uuid.NewString(), proj.ID, time.Now())
	require.Error(t, err, "CHECK constraint must reject unknown provenance")
}

func TestVersionCorruptRecord(t *testing.T) {
	db := NewTestDB(t)
	projects := NewProjectRepository(db)
	versions := NewVersionRepository(db)
	ctx := context.Background()

	proj := newTestProject("corrupt")
	require.NoError(t, projects.Create(ctx, proj))

	// Bypass the CHECK constraint the way on-disk corruption would.
	_, err := db.ExecContext(ctx, `PRAGMA ignore_check_constraints = ON`)
	require.NoError(t, err)
	id := uuid.NewString()
	_, err = db.ExecContext(ctx, `
		INSERT INTO versions (id, project_id, code, provenance, created_at)
		VALUES (?, ?, 'code', 'freestyle', ?)
	`, id, proj.ID, time.Now())
	require.NoError(t, err)

	_, err = versions.Get(ctx, proj.ID, id)
	require.ErrorIs(t, err, repository.ErrCorruptRecord)
	require.NotErrorIs(t, err, repository.ErrNotFound)
}
