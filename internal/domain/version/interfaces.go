package version

import "context"

// Repository provides append-only persistence for versions.
type Repository interface {
	Create(ctx context.Context, v *Version) error
	Get(ctx context.Context, projectID, id string) (*Version, error)
	List(ctx context.Context, projectID string) ([]Version, error)
	AttachArtifact(ctx context.Context, projectID, id string, videoPath string, thumbnailPath *string) error
}
