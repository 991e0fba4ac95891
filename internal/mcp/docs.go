package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `sceneforge renders procedural animations and keeps every edit as an immutable version.

Core concepts (keep this mental model small):
- Project: a container for one animation's edit history, plus a current-version pointer.
- Version: an immutable code snapshot with provenance (ai-generated, manual-edit, variable-tweak) and an optional parent link. Code is write-once; only render artifacts attach afterwards.
- Render: one subprocess at a time. Submitting a new render cancels and replaces the one in flight; the replaced job reports "cancelled" with a superseded note, not a failure.

Rules of engagement (default workflow):
1) Orient: list_projects, then get_project for the one you care about.
2) Read history cheaply: list_versions returns snapshots in creation order; get_version without version_id returns the newest.
3) Write: create_version appends a snapshot (never mutate code in place). Link parent_id to the version you derived from.
4) Render: call render with a version_id to persist the artifact against that version, or with inline code for a throwaway preview. The call blocks until the render completes, fails, times out, or is superseded.
5) Promote: set_current_version once a version renders the way you want.

Failure notes:
- Renders are budgeted by wall clock; a timed-out render reports outcome "timed_out" with the configured budget as elapsed time.
- A failed render's error field carries the parsed exception from the renderer's traceback.

Docs (progressive disclosure):
- sceneforge://docs/index (what to read when)
- sceneforge://docs/workflows/iterate (the edit-render-promote loop)
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "sceneforge://docs/index",
		Name:        "docs_index",
		Title:       "sceneforge docs index",
		Description: "Entry point for agent-facing docs: what exists and what to read.",
		Content: `# sceneforge: Agent Docs Index

This server keeps baseline context small. Load deeper docs only when needed.

## Quick start (no deep docs)

- ` + "`create_project`" + ` then ` + "`create_version`" + ` with your first scene code.
- ` + "`render`" + ` with the version_id; on success the artifact path comes back and is stored against the version.
- ` + "`set_current_version`" + ` to mark the keeper.

## When to read more

- Iterating on code with renders in flight: sceneforge://docs/workflows/iterate

## Known limitations

- One render at a time. A new submission supersedes the old one rather than queueing.
- Version code is immutable. To "fix" a version, create a child version with the corrected code.
`,
	},
	{
		URI:         "sceneforge://docs/workflows/iterate",
		Name:        "docs_workflow_iterate",
		Title:       "Workflow: iterate on a scene",
		Description: "The edit-render-promote loop, including supersession behavior.",
		Content: `# Workflow: iterate on a scene

1. ` + "`get_version`" + ` (no version_id) to load the newest code.
2. Edit the code. ` + "`create_version`" + ` with parent_id set to the version you started from. Pick the provenance that matches how the edit happened.
3. ` + "`render`" + ` with the new version_id.
   - Outcome ` + "`completed`" + `: artifact_path is durable; the version now reports video_path.
   - Outcome ` + "`failed`" + `: the error field holds the parsed renderer exception. Fix the code and create another version.
   - Outcome ` + "`timed_out`" + `: simplify the scene or raise timeout_seconds.
   - Outcome ` + "`cancelled`" + ` with superseded=true: a newer render replaced this one. Nothing to do; the newer call carries the result that matters.
4. ` + "`set_current_version`" + ` when satisfied.

Renders submitted while one is in flight do not queue. The in-flight render is killed first, so the latest code is always what renders.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
		}, func(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      doc.URI,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
