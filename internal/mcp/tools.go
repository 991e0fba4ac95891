package mcp

import (
	"context"
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolDefinition describes a callable tool
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// registerTools binds the tool catalog to the SDK server, routing every call
// through the handler's dispatch.
func registerTools(server *sdkmcp.Server, handler *Handler) {
	for _, def := range buildToolCatalog() {
		def := def
		tool := &sdkmcp.Tool{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: compileSchema(def.InputSchema),
		}
		server.AddTool(tool, func(ctx context.Context, req *sdkmcp.CallToolRequest) (*sdkmcp.CallToolResult, error) {
			result, err := handler.Handle(ctx, def.Name, req.Params.Arguments)
			if err != nil {
				return toolError(err), nil
			}
			payload, err := json.Marshal(result)
			if err != nil {
				return nil, err
			}
			return &sdkmcp.CallToolResult{
				Content:           []sdkmcp.Content{&sdkmcp.TextContent{Text: string(payload)}},
				StructuredContent: result,
			}, nil
		})
	}
}

// toolError reports a failed call in-band so the client sees the error code
// and recovery hint instead of a bare protocol error.
func toolError(err error) *sdkmcp.CallToolResult {
	var text string
	if apiErr, ok := err.(*APIError); ok {
		if payload, merr := json.Marshal(apiErr); merr == nil {
			text = string(payload)
		}
	}
	if text == "" {
		text = err.Error()
	}
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: text}},
	}
}

func compileSchema(raw map[string]any) *jsonschema.Schema {
	data, err := json.Marshal(raw)
	if err != nil {
		return nil
	}
	var schema jsonschema.Schema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil
	}
	return &schema
}

// buildToolCatalog returns all available MCP tools
func buildToolCatalog() []ToolDefinition {
	return []ToolDefinition{
		// Projects
		{
			Name:        "create_project",
			Description: "Create a new animation project",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name": map[string]any{
						"type":        "string",
						"description": "Project display name",
					},
					"description": map[string]any{
						"type":        "string",
						"description": "Project description",
					},
				},
				"required": []string{"name"},
			},
		},
		{
			Name:        "list_projects",
			Description: "List all projects with version and render counts, most recently updated first",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
		{
			Name:        "get_project",
			Description: "Get details for a specific project",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":        "string",
						"description": "Project ID",
					},
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "delete_project",
			Description: "Delete a project, its version history, and its stored artifacts",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":        "string",
						"description": "Project ID",
					},
				},
				"required": []string{"id"},
			},
		},

		// Versions
		{
			Name:        "create_version",
			Description: "Append an immutable code snapshot to a project's history",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"project_id": map[string]any{
						"type":        "string",
						"description": "Owning project ID",
					},
					"code": map[string]any{
						"type":        "string",
						"description": "Complete scene source code",
					},
					"prompt": map[string]any{
						"type":        "string",
						"description": "Prompt that produced this code, if any",
					},
					"provenance": map[string]any{
						"type":        "string",
						"description": "How the code originated",
						"enum":        []string{"ai-generated", "manual-edit", "variable-tweak"},
					},
					"parent_id": map[string]any{
						"type":        "string",
						"description": "Version this one derives from (must belong to the same project)",
					},
				},
				"required": []string{"project_id", "code", "provenance"},
			},
		},
		{
			Name:        "get_version",
			Description: "Get one version, or the newest version when version_id is omitted",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"project_id": map[string]any{
						"type":        "string",
						"description": "Owning project ID",
					},
					"version_id": map[string]any{
						"type":        "string",
						"description": "Version ID (omit for the newest version)",
					},
				},
				"required": []string{"project_id"},
			},
		},
		{
			Name:        "list_versions",
			Description: "List a project's versions in creation order",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"project_id": map[string]any{
						"type":        "string",
						"description": "Owning project ID",
					},
				},
				"required": []string{"project_id"},
			},
		},
		{
			Name:        "set_current_version",
			Description: "Point a project at one of its versions as the current working state",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"project_id": map[string]any{
						"type":        "string",
						"description": "Project ID",
					},
					"version_id": map[string]any{
						"type":        "string",
						"description": "Version ID (must belong to the project)",
					},
				},
				"required": []string{"project_id", "version_id"},
			},
		},

		// Rendering
		{
			Name:        "render",
			Description: "Render scene code to video and wait for the outcome. A new render replaces any render still in flight.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"project_id": map[string]any{
						"type":        "string",
						"description": "Project ID (required with version_id)",
					},
					"version_id": map[string]any{
						"type":        "string",
						"description": "Stored version to render; its artifact is persisted on success",
					},
					"code": map[string]any{
						"type":        "string",
						"description": "Inline scene code for an ad-hoc render (mutually exclusive with version_id)",
					},
					"entry_point": map[string]any{
						"type":        "string",
						"description": "Scene class to render (auto-detected when omitted)",
					},
					"quality": map[string]any{
						"type":        "string",
						"description": "Quality preset",
						"enum":        []string{"low", "medium", "high", "ultra"},
					},
					"format": map[string]any{
						"type":        "string",
						"description": "Output container (mp4, gif, webm, mov)",
					},
					"timeout_seconds": map[string]any{
						"type":        "integer",
						"description": "Wall-clock budget before the render is killed",
					},
				},
			},
		},
		{
			Name:        "cancel_render",
			Description: "Cancel the render currently in flight, if any",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
	}
}
