package projects

import (
	"encoding/json"

	"museo/internal/services/generation"
)

// Status values accepted by the backend for a project.
const (
	StatusDraft     = "draft"
	StatusCompleted = "completed"
	StatusArchived  = "archived"
)

// ValidStatus reports whether s is a known project status.
func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusCompleted, StatusArchived:
		return true
	default:
		return false
	}
}

// Request is the body used to create a project.
type Request struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Status      string          `json:"status,omitempty"`
	SceneData   json.RawMessage `json:"scene_data,omitempty"`
}

// Patch is a partial project update; nil fields are not sent.
type Patch struct {
	Name        *string         `json:"name,omitempty"`
	Description *string         `json:"description,omitempty"`
	Status      *string         `json:"status,omitempty"`
	SceneData   json.RawMessage `json:"scene_data,omitempty"`
}

// Empty reports whether the patch would send no fields.
func (p Patch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Status == nil && len(p.SceneData) == 0
}

// Project is a project record.
type Project struct {
	ID          string                  `json:"id"`
	UserID      string                  `json:"user_id"`
	Name        string                  `json:"name"`
	Description string                  `json:"description,omitempty"`
	Status      string                  `json:"status"`
	SceneData   json.RawMessage         `json:"scene_data,omitempty"`
	CreatedAt   string                  `json:"created_at"`
	UpdatedAt   string                  `json:"updated_at"`
	Generations []generation.Generation `json:"generations,omitempty"`
}

// Page is one page of the project listing.
type Page struct {
	Success  bool      `json:"success"`
	Projects []Project `json:"projects"`
	Total    int       `json:"total"`
	Pages    int       `json:"pages"`
}

// DeleteResult is the response of a project deletion.
type DeleteResult struct {
	Success bool `json:"success"`
}

type sceneBody struct {
	SceneData json.RawMessage `json:"scene_data"`
}
