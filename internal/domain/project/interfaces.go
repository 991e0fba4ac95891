package project

import (
	"context"
	"time"
)

// Repository provides persistence for projects.
type Repository interface {
	Create(ctx context.Context, proj *Project) error
	Get(ctx context.Context, id string) (*Project, error)
	List(ctx context.Context) ([]Summary, error)
	Delete(ctx context.Context, id string) error
	SetCurrentVersion(ctx context.Context, projectID string, versionID *string) error
	Touch(ctx context.Context, projectID string, at time.Time) error
}
