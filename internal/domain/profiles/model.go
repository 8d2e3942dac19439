package profiles

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Profile is a public page instance resolved by slug. Content is a
// MATERIALIZED BlockContent copy: deleting the source template never
// breaks a published page.
type Profile struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`

	Slug        string `gorm:"not null;uniqueIndex" json:"slug"`
	DisplayName string `gorm:"not null" json:"display_name"`
	Bio         string `json:"bio,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`

	// Provenance only. No live reference; content below is the source of truth.
	TemplateID *string `gorm:"type:uuid;index" json:"template_id,omitempty"`

	Content datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'" json:"content"`
	Socials datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'" json:"socials"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
