package mcp

import (
	"errors"
	"fmt"

	"github.com/sceneforge/sceneforge/internal/domain/project"
	"github.com/sceneforge/sceneforge/internal/domain/version"
	"github.com/sceneforge/sceneforge/internal/render"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, project.ErrProjectNotFound), errors.Is(err, version.ErrProjectNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: "project not found", RecoveryHint: "Call list_projects to see valid IDs"}
	case errors.Is(err, version.ErrVersionNotFound):
		return &APIError{Code: "VERSION_NOT_FOUND", Message: "version not found", RecoveryHint: "Call list_versions to see the project history"}
	case errors.Is(err, version.ErrParentNotFound):
		return &APIError{Code: "PARENT_NOT_FOUND", Message: "parent version not found in project", RecoveryHint: "Parent must be an existing version of the same project"}
	case errors.Is(err, project.ErrCorruptProject), errors.Is(err, version.ErrCorruptVersion):
		return &APIError{Code: "CORRUPT_RECORD", Message: "stored record is unreadable", RecoveryHint: "The record exists but fails validation; it cannot be loaded"}
	case errors.Is(err, project.ErrInvalidInput), errors.Is(err, version.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error()}
	case errors.Is(err, render.ErrManagerClosed):
		return &APIError{Code: "RENDERER_UNAVAILABLE", Message: "render manager is shut down", RecoveryHint: "Restart the server"}
	default:
		return nil
	}
}
