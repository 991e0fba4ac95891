package project

import "time"

// Project is a user-level container for one animated artifact's edit history.
type Project struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description,omitempty"`
	CurrentVersionID *string   `json:"current_version_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Summary is a lightweight representation for listing
type Summary struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	VersionCount  int       `json:"version_count"`
	RenderedCount int       `json:"rendered_count"`
	UpdatedAt     time.Time `json:"updated_at"`
}
