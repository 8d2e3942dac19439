package profiles

import "encoding/json"

type CreateFromTemplateRequest struct {
	DisplayName string          `json:"display_name" validate:"required,min=2,max=120"`
	Bio         string          `json:"bio" validate:"max=2000"`
	AvatarURL   string          `json:"avatar_url" validate:"omitempty,url"`
	Socials     json.RawMessage `json:"socials"`
}

type ProfileCreatedResponse struct {
	ID        string `json:"id"`
	Slug      string `json:"slug"`
	PublicURL string `json:"public_url"`
}
