package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sceneforge/sceneforge/internal/domain/project"
	"github.com/sceneforge/sceneforge/internal/repository"
)

// ProjectRepository implements project.Repository for SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create creates a new project
func (r *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	query := `
		INSERT INTO projects (id, name, description, current_version_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		proj.ID,
		proj.Name,
		proj.Description,
		proj.CurrentVersionID,
		proj.CreatedAt,
		proj.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// Get retrieves a project by ID
func (r *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	query := `
		SELECT id, name, description, current_version_id, created_at, updated_at
		FROM projects
		WHERE id = ?
	`

	var proj project.Project
	var currentVersion sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&proj.ID,
		&proj.Name,
		&proj.Description,
		&currentVersion,
		&proj.CreatedAt,
		&proj.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrCorruptRecord, err)
	}
	if proj.ID == "" || proj.Name == "" {
		return nil, repository.ErrCorruptRecord
	}
	if currentVersion.Valid {
		proj.CurrentVersionID = &currentVersion.String
	}

	return &proj, nil
}

// List returns all projects with summary information, newest update first
func (r *ProjectRepository) List(ctx context.Context) ([]project.Summary, error) {
	query := `
		SELECT
			p.id,
			p.name,
			p.description,
			p.updated_at,
			COUNT(v.id) as version_count,
			COUNT(v.video_path) as rendered_count
		FROM projects p
		LEFT JOIN versions v ON v.project_id = p.id
		GROUP BY p.id, p.name, p.description, p.updated_at
		ORDER BY p.updated_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var summaries []project.Summary
	for rows.Next() {
		var summary project.Summary
		err := rows.Scan(
			&summary.ID,
			&summary.Name,
			&summary.Description,
			&summary.UpdatedAt,
			&summary.VersionCount,
			&summary.RenderedCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project summary: %w", err)
		}
		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	return summaries, nil
}

// Delete removes the project and every version beneath it in one transaction.
// Deleting an absent project is a no-op.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Clear the current-version pointer first so the versions FK can go.
	if _, err := tx.ExecContext(ctx, `UPDATE projects SET current_version_id = NULL WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to clear current version: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM versions WHERE project_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete versions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// SetCurrentVersion points the project at a version. The version, when given,
// must belong to the project.
func (r *ProjectRepository) SetCurrentVersion(ctx context.Context, projectID string, versionID *string) error {
	if versionID != nil {
		var count int
		query := `SELECT COUNT(*) FROM versions WHERE id = ? AND project_id = ?`
		if err := r.db.QueryRowContext(ctx, query, *versionID, projectID).Scan(&count); err != nil {
			return fmt.Errorf("failed to check version: %w", err)
		}
		if count == 0 {
			return repository.ErrForeignKeyViolation
		}
	}

	query := `UPDATE projects SET current_version_id = ?, updated_at = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, versionID, time.Now(), projectID)
	if err != nil {
		return fmt.Errorf("failed to set current version: %w", err)
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

// Touch bumps the project's update time
func (r *ProjectRepository) Touch(ctx context.Context, projectID string, at time.Time) error {
	result, err := r.db.ExecContext(ctx, `UPDATE projects SET updated_at = ? WHERE id = ?`, at, projectID)
	if err != nil {
		return fmt.Errorf("failed to touch project: %w", err)
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
