package templates

import (
	"encoding/json"

	"crm-backend/internal/errs"
)

// ---------- requests

type CreateTemplateRequest struct {
	Name        string          `json:"name" validate:"required,min=3,max=255"`
	Description string          `json:"description"`
	Type        string          `json:"type" validate:"required,oneof=profile_template content_block"`
	Content     json.RawMessage `json:"content"`
}

// ---------- responses

// TemplateData is the payload slice of the mutation result shape.
type TemplateData struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type"`
}

// MutationResponse is the result shape for create/duplicate/delete.
// success:false is authoritative regardless of HTTP status.
type MutationResponse struct {
	Success bool              `json:"success"`
	Data    *TemplateData     `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Details []errs.FieldError `json:"details,omitempty"`
}

type ListItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Type        string  `json:"type"`
	WorkspaceID *string `json:"workspace_id,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

type ListResponse struct {
	Templates []ListItem `json:"templates"`
}
