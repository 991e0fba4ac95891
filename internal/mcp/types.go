package mcp

import (
	"github.com/sceneforge/sceneforge/internal/domain/version"
)

type CreateProjectParams struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type GetProjectParams struct {
	ID string `json:"id"`
}

type DeleteProjectParams struct {
	ID string `json:"id"`
}

type CreateVersionParams struct {
	ProjectID  string  `json:"project_id"`
	Code       string  `json:"code"`
	Prompt     *string `json:"prompt,omitempty"`
	Provenance string  `json:"provenance"`
	ParentID   *string `json:"parent_id,omitempty"`
}

type GetVersionParams struct {
	ProjectID string `json:"project_id"`
	VersionID string `json:"version_id,omitempty"`
}

type ListVersionsParams struct {
	ProjectID string `json:"project_id"`
}

type SetCurrentVersionParams struct {
	ProjectID string `json:"project_id"`
	VersionID string `json:"version_id"`
}

type RenderParams struct {
	ProjectID      string `json:"project_id,omitempty"`
	VersionID      string `json:"version_id,omitempty"`
	Code           string `json:"code,omitempty"`
	EntryPoint     string `json:"entry_point,omitempty"`
	Quality        string `json:"quality,omitempty"`
	Format         string `json:"format,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"`
}

type DeleteProjectResponse struct {
	Status string `json:"status"`
	ID     string `json:"id"`
}

type VersionListResponse struct {
	ProjectID string            `json:"project_id"`
	Versions  []version.Version `json:"versions"`
	Count     int               `json:"count"`
}

type RenderResponse struct {
	JobID        string `json:"job_id"`
	EntryPoint   string `json:"entry_point"`
	Outcome      string `json:"outcome"`
	Superseded   bool   `json:"superseded,omitempty"`
	ArtifactPath string `json:"artifact_path,omitempty"`
	ElapsedMS    int64  `json:"elapsed_ms"`
	Error        string `json:"error,omitempty"`
}

type CancelRenderResponse struct {
	Status string `json:"status"`
}
