package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sceneforge/sceneforge/internal/domain/project"
	"github.com/sceneforge/sceneforge/internal/domain/version"
	"github.com/sceneforge/sceneforge/internal/render"
)

// ProjectService defines project operations needed by MCP.
type ProjectService interface {
	Create(ctx context.Context, req project.CreateRequest) (*project.Project, error)
	Get(ctx context.Context, id string) (*project.Project, error)
	List(ctx context.Context) ([]project.Summary, error)
	Delete(ctx context.Context, id string) error
	SetCurrentVersion(ctx context.Context, projectID, versionID string) error
}

// VersionService defines version operations needed by MCP.
type VersionService interface {
	Create(ctx context.Context, req version.CreateRequest) (*version.Version, error)
	Get(ctx context.Context, projectID, id string) (*version.Version, error)
	List(ctx context.Context, projectID string) ([]version.Version, error)
	Latest(ctx context.Context, projectID string) (*version.Version, error)
}

// RenderService defines render orchestration needed by MCP. Submit replaces
// any in-flight job; Cancel stops the current one.
type RenderService interface {
	Submit(ctx context.Context, req render.Request) (*render.Job, error)
	Cancel()
}

// Handler dispatches MCP commands.
type Handler struct {
	projects ProjectService
	versions VersionService
	renders  RenderService
}

// NewHandler creates a new MCP handler.
func NewHandler(projects ProjectService, versions VersionService, renders RenderService) *Handler {
	return &Handler{
		projects: projects,
		versions: versions,
		renders:  renders,
	}
}

// Handle dispatches MCP requests to domain services.
func (h *Handler) Handle(ctx context.Context, method string, params json.RawMessage) (any, error) {
	switch method {
	case "create_project":
		var req CreateProjectParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		proj, err := h.projects.Create(ctx, project.CreateRequest{
			Name:        req.Name,
			Description: req.Description,
		})
		if err != nil {
			return nil, mapError(err)
		}
		return proj, nil
	case "list_projects":
		summaries, err := h.projects.List(ctx)
		if err != nil {
			return nil, mapError(err)
		}
		return summaries, nil
	case "get_project":
		var req GetProjectParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		proj, err := h.projects.Get(ctx, req.ID)
		if err != nil {
			return nil, mapError(err)
		}
		return proj, nil
	case "delete_project":
		var req DeleteProjectParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if err := h.projects.Delete(ctx, req.ID); err != nil {
			return nil, mapError(err)
		}
		return DeleteProjectResponse{Status: "deleted", ID: req.ID}, nil
	case "create_version":
		var req CreateVersionParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		prov, err := version.ParseProvenance(req.Provenance)
		if err != nil {
			return nil, mapError(err)
		}
		ver, err := h.versions.Create(ctx, version.CreateRequest{
			ProjectID:  req.ProjectID,
			Code:       req.Code,
			Prompt:     req.Prompt,
			Provenance: prov,
			ParentID:   req.ParentID,
		})
		if err != nil {
			return nil, mapError(err)
		}
		return ver, nil
	case "get_version":
		var req GetVersionParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		// Omitting version_id asks for the newest snapshot.
		if req.VersionID == "" {
			ver, err := h.versions.Latest(ctx, req.ProjectID)
			if err != nil {
				return nil, mapError(err)
			}
			return ver, nil
		}
		ver, err := h.versions.Get(ctx, req.ProjectID, req.VersionID)
		if err != nil {
			return nil, mapError(err)
		}
		return ver, nil
	case "list_versions":
		var req ListVersionsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		versions, err := h.versions.List(ctx, req.ProjectID)
		if err != nil {
			return nil, mapError(err)
		}
		return VersionListResponse{
			ProjectID: req.ProjectID,
			Versions:  versions,
			Count:     len(versions),
		}, nil
	case "set_current_version":
		var req SetCurrentVersionParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if err := h.projects.SetCurrentVersion(ctx, req.ProjectID, req.VersionID); err != nil {
			return nil, mapError(err)
		}
		proj, err := h.projects.Get(ctx, req.ProjectID)
		if err != nil {
			return nil, mapError(err)
		}
		return proj, nil
	case "render":
		var req RenderParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.handleRender(ctx, req)
	case "cancel_render":
		h.renders.Cancel()
		return CancelRenderResponse{Status: "cancel requested"}, nil
	default:
		return nil, fmt.Errorf("unknown method: %s", method)
	}
}

// handleRender submits a render and blocks until it reaches a terminal
// outcome. Code comes either inline or from a stored version; only
// version-backed renders persist their artifact.
func (h *Handler) handleRender(ctx context.Context, req RenderParams) (any, error) {
	if req.Code != "" && req.VersionID != "" {
		return nil, &APIError{
			Code:         "AMBIGUOUS_SOURCE",
			Message:      "provide either code or version_id, not both",
			RecoveryHint: "Render inline code, or name a stored version",
		}
	}

	code := req.Code
	if req.VersionID != "" {
		ver, err := h.versions.Get(ctx, req.ProjectID, req.VersionID)
		if err != nil {
			return nil, mapError(err)
		}
		code = ver.Code
	}
	if code == "" {
		return nil, &APIError{
			Code:         "EMPTY_SOURCE",
			Message:      "nothing to render",
			RecoveryHint: "Pass code, or project_id plus version_id",
		}
	}

	cfg, err := renderConfig(req)
	if err != nil {
		return nil, err
	}

	job, err := h.renders.Submit(ctx, render.Request{
		Code:       code,
		EntryPoint: req.EntryPoint,
		Config:     cfg,
		ProjectID:  req.ProjectID,
		VersionID:  req.VersionID,
	})
	if err != nil {
		return nil, mapError(err)
	}

	result, err := job.Wait(ctx)
	if err != nil {
		return nil, err
	}

	resp := RenderResponse{
		JobID:        job.ID,
		EntryPoint:   job.EntryPoint,
		Outcome:      string(result.Outcome),
		Superseded:   job.Superseded(),
		ArtifactPath: result.ArtifactPath,
		ElapsedMS:    result.Elapsed.Milliseconds(),
	}
	if !result.Success() {
		resp.Error = result.Reason
	}
	if job.Superseded() {
		resp.Error = "superseded by a newer render request"
	}
	return resp, nil
}

func renderConfig(req RenderParams) (render.Config, error) {
	cfg := render.DefaultConfig()
	if req.Quality != "" {
		quality, err := render.ParseQuality(req.Quality)
		if err != nil {
			return render.Config{}, &APIError{
				Code:         "INVALID_QUALITY",
				Message:      err.Error(),
				RecoveryHint: "Use one of: low, medium, high, ultra",
			}
		}
		cfg.Quality = quality
	}
	if req.Format != "" {
		cfg.Format = req.Format
	}
	if req.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(req.TimeoutSeconds) * time.Second
	}
	return cfg, nil
}

func decodeParams(params json.RawMessage, out any) error {
	if len(params) == 0 {
		return nil
	}
	return json.Unmarshal(params, out)
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
