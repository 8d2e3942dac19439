package templates

import (
	"fmt"

	"gorm.io/gorm"
)

/*
	Name scope helpers
	------------------
	Names are unique per (workspace_id, type). Pass db in, do NOT import
	crm-backend/database here (avoids import cycle).
*/

// NameTaken reports whether an active template already holds name inside
// the (workspaceID, typ) scope. workspaceID nil checks the global scope.
func NameTaken(db *gorm.DB, workspaceID *string, typ, name string) (bool, error) {
	q := db.Model(&Template{}).Where("type = ? AND name = ?", typ, name)
	if workspaceID == nil {
		q = q.Where("workspace_id IS NULL")
	} else {
		q = q.Where("workspace_id = ?", *workspaceID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// NextCopyName derives the duplicate's name: `base (copy)`, then
// `base (copy 2)` and so on until the scope is free.
func NextCopyName(db *gorm.DB, workspaceID *string, typ, base string) (string, error) {
	name := base + " (copy)"
	for n := 2; ; n++ {
		taken, err := NameTaken(db, workspaceID, typ, name)
		if err != nil {
			return "", err
		}
		if !taken {
			return name, nil
		}
		name = fmt.Sprintf("%s (copy %d)", base, n)
	}
}
