package workspaces

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Workspace is the tenancy unit. Billing/plan state lives with the
// external subscription service; only identity is kept here.
type Workspace struct {
	ID   string `gorm:"type:uuid;primaryKey" json:"id"`
	Name string `gorm:"not null" json:"name"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// User is the editor identity referenced by profiles. Credentials and
// session issuance belong to the auth service; the JWT middleware is the
// only consumer of this identity here.
type User struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	WorkspaceID string `gorm:"type:uuid;not null;index" json:"workspace_id"`
	Name        string `gorm:"not null" json:"name"`
	Email       string `gorm:"not null;uniqueIndex" json:"email"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (w *Workspace) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
