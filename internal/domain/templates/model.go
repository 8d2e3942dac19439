package templates

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	TypeProfileTemplate = "profile_template"
	TypeContentBlock    = "content_block"
)

func ValidType(t string) bool {
	return t == TypeProfileTemplate || t == TypeContentBlock
}

// Template is a named, persisted BlockContent document. WorkspaceID nil
// marks a global template visible platform-wide. The composite unique
// index makes the name-uniqueness check an insert-time guarantee rather
// than a check-then-act race; the NULL workspace scope gets its own
// partial index in Migrate (SQL unique indexes treat NULLs as distinct).
type Template struct {
	ID          string  `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string  `gorm:"not null;uniqueIndex:idx_templates_scope_type_name" json:"name"`
	Description string  `json:"description,omitempty"`
	Type        string  `gorm:"not null;uniqueIndex:idx_templates_scope_type_name" json:"type"`
	WorkspaceID *string `gorm:"type:uuid;index;uniqueIndex:idx_templates_scope_type_name" json:"workspace_id,omitempty"`

	Content datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'" json:"content"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Template) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// Global reports whether the template is platform-wide.
func (t *Template) Global() bool {
	return t.WorkspaceID == nil
}
