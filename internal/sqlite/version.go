package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sceneforge/sceneforge/internal/domain/version"
	"github.com/sceneforge/sceneforge/internal/repository"
)

// VersionRepository implements version.Repository for SQLite
type VersionRepository struct {
	db *DB
}

// NewVersionRepository creates a new VersionRepository
func NewVersionRepository(db *DB) *VersionRepository {
	return &VersionRepository{db: db}
}

// Create appends a new version snapshot
func (r *VersionRepository) Create(ctx context.Context, v *version.Version) error {
	query := `
		INSERT INTO versions (id, project_id, code, prompt, provenance, parent_id, created_at, video_path, thumbnail_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		v.ID,
		v.ProjectID,
		v.Code,
		v.Prompt,
		string(v.Provenance),
		v.ParentID,
		v.CreatedAt,
		v.VideoPath,
		v.ThumbnailPath,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		if isCheckViolation(err) {
			return fmt.Errorf("%w: %v", repository.ErrInvalidInput, err)
		}
		return fmt.Errorf("failed to create version: %w", err)
	}

	return nil
}

// Get retrieves a version by ID within a project
func (r *VersionRepository) Get(ctx context.Context, projectID, id string) (*version.Version, error) {
	query := `
		SELECT id, project_id, code, prompt, provenance, parent_id, created_at, video_path, thumbnail_path
		FROM versions
		WHERE id = ? AND project_id = ?
	`

	row := r.db.QueryRowContext(ctx, query, id, projectID)
	v, err := scanVersion(row.Scan)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// List returns all versions of a project in creation order
func (r *VersionRepository) List(ctx context.Context, projectID string) ([]version.Version, error) {
	query := `
		SELECT id, project_id, code, prompt, provenance, parent_id, created_at, video_path, thumbnail_path
		FROM versions
		WHERE project_id = ?
		ORDER BY created_at ASC, rowid ASC
	`

	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list versions: %w", err)
	}
	defer rows.Close()

	var versions []version.Version
	for rows.Next() {
		v, err := scanVersion(rows.Scan)
		if err != nil {
			return nil, err
		}
		versions = append(versions, *v)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating version rows: %w", err)
	}

	return versions, nil
}

// AttachArtifact records artifact paths on an existing version. This is the
// only column update the schema ever sees after insert.
func (r *VersionRepository) AttachArtifact(ctx context.Context, projectID, id string, videoPath string, thumbnailPath *string) error {
	query := `
		UPDATE versions
		SET video_path = ?, thumbnail_path = COALESCE(?, thumbnail_path)
		WHERE id = ? AND project_id = ?
	`

	result, err := r.db.ExecContext(ctx, query, videoPath, thumbnailPath, id, projectID)
	if err != nil {
		return fmt.Errorf("failed to attach artifact: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// scanVersion scans one version row and validates its shape. A row that
// scans but carries an unknown provenance tag or an empty snapshot is
// reported as corrupt, distinct from absence.
func scanVersion(scan func(dest ...any) error) (*version.Version, error) {
	var v version.Version
	var prompt, parentID, videoPath, thumbnailPath sql.NullString
	var provenance string

	err := scan(
		&v.ID,
		&v.ProjectID,
		&v.Code,
		&prompt,
		&provenance,
		&parentID,
		&v.CreatedAt,
		&videoPath,
		&thumbnailPath,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrCorruptRecord, err)
	}

	v.Provenance = version.Provenance(provenance)
	if v.ID == "" || v.Code == "" || !v.Provenance.Valid() {
		return nil, repository.ErrCorruptRecord
	}

	if prompt.Valid {
		v.Prompt = &prompt.String
	}
	if parentID.Valid {
		v.ParentID = &parentID.String
	}
	if videoPath.Valid {
		v.VideoPath = &videoPath.String
	}
	if thumbnailPath.Valid {
		v.ThumbnailPath = &thumbnailPath.String
	}

	return &v, nil
}
