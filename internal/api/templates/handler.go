package templates

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"crm-backend/database"
	"crm-backend/internal/domain/blocks"
	dt "crm-backend/internal/domain/templates"
	"crm-backend/internal/errs"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func mustWorkspaceID(c *gin.Context) (string, bool) {
	workspaceID := c.GetString("workspace_id")
	if workspaceID == "" {
		c.JSON(http.StatusUnauthorized, MutationResponse{Success: false, Error: "Unauthorized"})
		return "", false
	}
	return workspaceID, true
}

// ------------------------------
// POST /templates  (workspace scope)
// ------------------------------
func CreateTemplate(c *gin.Context) {
	workspaceID, ok := mustWorkspaceID(c)
	if !ok {
		return
	}
	createTemplate(c, &workspaceID)
}

// POST /admin/templates (global scope, wired behind RequireRole("admin"))
func CreateGlobalTemplate(c *gin.Context) {
	createTemplate(c, nil)
}

func createTemplate(c *gin.Context, workspaceID *string) {
	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, MutationResponse{Success: false, Error: "Malformed request body"})
		return
	}

	if verrs := errs.ValidateStruct(req); len(verrs) > 0 {
		c.JSON(http.StatusBadRequest, MutationResponse{Success: false, Error: "Validation failed", Details: verrs})
		return
	}

	// Content is optional on create; when present it must be a valid
	// block tree, with every violation reported. Absent content gets an
	// empty document so later reads always decode a valid BlockContent.
	var content []byte
	if len(req.Content) > 0 {
		if _, err := blocks.ParseContent(req.Content); err != nil {
			verrs, _ := errs.AsValidation(err)
			c.JSON(http.StatusBadRequest, MutationResponse{Success: false, Error: "Invalid content", Details: verrs})
			return
		}
		content = req.Content
	} else {
		empty := blocks.BlockContent{Metadata: blocks.BlockMetadata{Name: req.Name}}
		content, _ = json.Marshal(empty)
	}

	tpl := dt.Template{
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		WorkspaceID: workspaceID,
		Content:     content,
	}

	err := database.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		taken, err := dt.NameTaken(tx, workspaceID, req.Type, req.Name)
		if err != nil {
			return err
		}
		if taken {
			return errs.ErrConflict
		}
		return tx.Create(&tpl).Error
	})

	if err != nil {
		respondMutationError(c, err, workspaceID, req.Type, req.Name)
		return
	}

	invalidateListings(workspaceID)

	c.JSON(http.StatusCreated, MutationResponse{
		Success: true,
		Data:    &TemplateData{ID: tpl.ID, Name: tpl.Name, Description: tpl.Description, Type: tpl.Type},
	})
}

// ------------------------------
// POST /templates/:id/duplicate
// ------------------------------
// The duplicate lands in the SAME scope as its source: a global source
// yields a global copy, a workspace source stays in that workspace.
func DuplicateTemplate(c *gin.Context) {
	workspaceID, ok := mustWorkspaceID(c)
	if !ok {
		return
	}
	templateID := c.Param("id")

	var dup dt.Template

	err := database.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		src, err := findVisible(tx, workspaceID, templateID)
		if err != nil {
			return err
		}

		content, err := blocks.ParseContent(src.Content)
		if err != nil {
			// Stored content failing its own schema is a persistence-side
			// defect, not a user error.
			return fmt.Errorf("%w: stored content invalid: %v", errs.ErrPersistence, err)
		}

		cloned := content
		cloned.Elements = blocks.CloneWithNewIDs(content.Elements)
		raw, err := json.Marshal(cloned)
		if err != nil {
			return err
		}

		name, err := dt.NextCopyName(tx, src.WorkspaceID, src.Type, src.Name)
		if err != nil {
			return err
		}

		dup = dt.Template{
			Name:        name,
			Description: src.Description,
			Type:        src.Type,
			WorkspaceID: src.WorkspaceID,
			Content:     raw,
		}
		return tx.Create(&dup).Error
	})

	if err != nil {
		respondMutationError(c, err, dup.WorkspaceID, dup.Type, dup.Name)
		return
	}

	invalidateListings(dup.WorkspaceID)

	c.JSON(http.StatusCreated, MutationResponse{
		Success: true,
		Data:    &TemplateData{ID: dup.ID, Name: dup.Name, Description: dup.Description, Type: dup.Type},
	})
}

// ------------------------------
// DELETE /templates/:id
// ------------------------------
// Never cascades to profiles: they hold materialized copies, so deleting
// a template must never break a published public page.
func DeleteTemplate(c *gin.Context) {
	workspaceID, ok := mustWorkspaceID(c)
	if !ok {
		return
	}
	templateID := c.Param("id")

	var scope *string

	err := database.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		tpl, err := findVisible(tx, workspaceID, templateID)
		if err != nil {
			return err
		}
		if tpl.Global() && c.GetString("role") != "admin" {
			return errs.ErrForbidden
		}
		scope = tpl.WorkspaceID
		return tx.Delete(&dt.Template{}, "id = ?", tpl.ID).Error
	})

	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, MutationResponse{Success: false, Error: "Template not found"})
		case errors.Is(err, errs.ErrForbidden):
			c.JSON(http.StatusForbidden, MutationResponse{Success: false, Error: "Global templates can only be deleted by an admin"})
		default:
			c.JSON(http.StatusInternalServerError, MutationResponse{Success: false, Error: "Failed to delete template"})
		}
		return
	}

	invalidateListings(scope)

	c.JSON(http.StatusOK, MutationResponse{Success: true})
}

// ------------------------------
// GET /templates?type=
// ------------------------------
func ListTemplates(c *gin.Context) {
	workspaceID, ok := mustWorkspaceID(c)
	if !ok {
		return
	}

	q := visibleScopeQuery(database.DB.WithContext(c.Request.Context()), workspaceID)
	if typ := c.Query("type"); typ != "" {
		q = q.Where("type = ?", typ)
	}

	var tpls []dt.Template
	if err := q.Order("created_at DESC").Find(&tpls).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load templates"})
		return
	}

	out := ListResponse{Templates: make([]ListItem, 0, len(tpls))}
	for _, t := range tpls {
		out.Templates = append(out.Templates, ListItem{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			Type:        t.Type,
			WorkspaceID: t.WorkspaceID,
			CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, out)
}

// respondMutationError maps domain errors onto the public result shape.
// Nothing raises past this boundary; storage detail stays opaque.
func respondMutationError(c *gin.Context, err error, workspaceID *string, typ, name string) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, MutationResponse{Success: false, Error: "Template not found"})
	case errors.Is(err, errs.ErrConflict), errors.Is(err, gorm.ErrDuplicatedKey):
		scope := "global scope"
		if workspaceID != nil {
			scope = "workspace " + *workspaceID
		}
		c.JSON(http.StatusConflict, MutationResponse{
			Success: false,
			Error:   fmt.Sprintf("a %s named %q already exists in %s", typ, name, scope),
		})
	default:
		c.JSON(http.StatusInternalServerError, MutationResponse{Success: false, Error: "Failed to save template"})
	}
}
