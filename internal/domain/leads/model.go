package leads

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lead is a visitor-submitted contact captured from a public profile.
// Append-only: rows are never updated and never touch the profile or
// template they reference.
type Lead struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	ProfileID string `gorm:"type:uuid;not null;index" json:"profile_id"`

	Name     string `gorm:"not null" json:"name"`
	Phone    string `gorm:"not null" json:"phone"`
	Interest string `json:"interest,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
