package version

import (
	"fmt"
	"time"
)

// Provenance tags how a version's code originated.
type Provenance string

const (
	ProvenanceAIGenerated   Provenance = "ai-generated"
	ProvenanceManualEdit    Provenance = "manual-edit"
	ProvenanceVariableTweak Provenance = "variable-tweak"
)

// ParseProvenance validates a provenance tag at the boundary.
func ParseProvenance(s string) (Provenance, error) {
	switch p := Provenance(s); p {
	case ProvenanceAIGenerated, ProvenanceManualEdit, ProvenanceVariableTweak:
		return p, nil
	}
	return "", fmt.Errorf("%w: unknown provenance %q", ErrInvalidInput, s)
}

// Valid reports whether the tag belongs to the closed provenance set.
func (p Provenance) Valid() bool {
	_, err := ParseProvenance(string(p))
	return err == nil
}

// Version is one immutable code snapshot within a project's history. The code
// text is write-once; the only permitted post-creation mutation is attaching
// artifact paths after a successful render.
type Version struct {
	ID            string     `json:"id"`
	ProjectID     string     `json:"project_id"`
	Code          string     `json:"code"`
	Prompt        *string    `json:"prompt,omitempty"`
	Provenance    Provenance `json:"provenance"`
	ParentID      *string    `json:"parent_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	VideoPath     *string    `json:"video_path,omitempty"`
	ThumbnailPath *string    `json:"thumbnail_path,omitempty"`
}

// Rendered reports whether a video artifact has been attached.
func (v *Version) Rendered() bool {
	return v.VideoPath != nil && *v.VideoPath != ""
}
