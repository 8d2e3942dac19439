package templates

import (
	dt "crm-backend/internal/domain/templates"

	"gorm.io/gorm"
)

// visibleScopeQuery selects templates the caller may see: their own
// workspace plus the global catalog.
func visibleScopeQuery(db *gorm.DB, workspaceID string) *gorm.DB {
	return db.Model(&dt.Template{}).
		Where("workspace_id = ? OR workspace_id IS NULL", workspaceID)
}

func findVisible(db *gorm.DB, workspaceID, templateID string) (*dt.Template, error) {
	var tpl dt.Template
	err := visibleScopeQuery(db, workspaceID).
		Where("id = ?", templateID).
		First(&tpl).Error
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}
