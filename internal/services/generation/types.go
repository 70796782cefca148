package generation

// Status is the lifecycle state reported for a generation.
type Status string

const (
	StatusGenerating Status = "generating"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Valid reports whether s is one of the known states.
func (s Status) Valid() bool {
	switch s {
	case StatusGenerating, StatusCompleted, StatusFailed:
		return true
	default:
		return false
	}
}

// Vec3 is an x/y/z triple as sent to the renderer.
type Vec3 [3]float64

// RawCamera pins the camera explicitly instead of using a preset.
type RawCamera struct {
	Position Vec3    `json:"position"`
	Rotation Vec3    `json:"rotation"`
	FOV      float64 `json:"fov"`
}

// RawLight overrides the key light. Both fields are optional.
type RawLight struct {
	Position  *Vec3    `json:"position,omitempty"`
	Intensity *float64 `json:"intensity,omitempty"`
}

// Request is the body of POST /generation/single.
type Request struct {
	Prompt         string     `json:"prompt"`
	NegativePrompt string     `json:"negative_prompt,omitempty"`
	RawCamera      *RawCamera `json:"raw_camera,omitempty"`
	RawLight       *RawLight  `json:"raw_light,omitempty"`
	ProjectID      string     `json:"project_id,omitempty"`
}

// Generation is one generation record.
type Generation struct {
	ID             string `json:"id"`
	UserID         string `json:"user_id"`
	ProjectID      string `json:"project_id,omitempty"`
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negative_prompt,omitempty"`
	ImageURL       string `json:"image_url,omitempty"`
	VideoURL       string `json:"video_url,omitempty"`
	Status         Status `json:"status"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

// Health is the response of the unauthenticated health probe.
type Health struct {
	Status string `json:"status"`
}
