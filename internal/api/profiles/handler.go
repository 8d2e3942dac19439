package profiles

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/http"

	"crm-backend/config"
	"crm-backend/database"
	"crm-backend/internal/domain/blocks"
	dp "crm-backend/internal/domain/profiles"
	dt "crm-backend/internal/domain/templates"
	"crm-backend/internal/errs"
	"crm-backend/internal/render"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func mustIdentity(c *gin.Context) (userID, workspaceID string, ok bool) {
	userID = c.GetString("user_id")
	workspaceID = c.GetString("workspace_id")
	if userID == "" || workspaceID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", "", false
	}
	return userID, workspaceID, true
}

// ------------------------------
// GET /p/:slug  (public, anonymous)
// ------------------------------
// Hard contract: a miss renders the terminal not-found page, never an
// empty page and never a raw storage error.
func PublicProfilePage(c *gin.Context) {
	slug := c.Param("slug")

	p, err := dp.ResolveBySlug(database.DB.WithContext(c.Request.Context()), slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.Data(http.StatusNotFound, "text/html; charset=utf-8", notFoundPage(slug))
			return
		}
		c.Data(http.StatusInternalServerError, "text/html; charset=utf-8", errorPage())
		return
	}

	// Content was validated when materialized; the renderer tolerates
	// anything anyway, so decode leniently rather than failing the page.
	var content blocks.BlockContent
	_ = json.Unmarshal(p.Content, &content)

	var body bytes.Buffer
	if err := render.WriteHTML(&body, render.Render(content)); err != nil {
		c.Data(http.StatusInternalServerError, "text/html; charset=utf-8", errorPage())
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", wrapDocument(p.DisplayName, body.Bytes()))
}

// ------------------------------
// POST /profiles/from-template/:id  (auth)
// ------------------------------
// Materializes the template's content into a new profile. The clone gets
// fresh element ids and no live reference back, so deleting the template
// later cannot break this page.
func CreateProfileFromTemplate(c *gin.Context) {
	userID, workspaceID, ok := mustIdentity(c)
	if !ok {
		return
	}
	templateID := c.Param("id")

	var req CreateFromTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed request body"})
		return
	}
	if verrs := errs.ValidateStruct(req); len(verrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": verrs})
		return
	}

	var created dp.Profile

	err := database.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var tpl dt.Template
		if err := tx.
			Where("id = ? AND type = ?", templateID, dt.TypeProfileTemplate).
			Where("workspace_id = ? OR workspace_id IS NULL", workspaceID).
			First(&tpl).Error; err != nil {
			return err
		}

		content, err := blocks.ParseContent(tpl.Content)
		if err != nil {
			return fmt.Errorf("%w: stored content invalid: %v", errs.ErrPersistence, err)
		}
		content.Elements = blocks.CloneWithNewIDs(content.Elements)
		raw, err := json.Marshal(content)
		if err != nil {
			return err
		}

		slug, err := dp.EnsureUniqueSlug(tx, dp.MakeSlug(req.DisplayName))
		if err != nil {
			return err
		}

		socials := req.Socials
		if len(socials) == 0 {
			socials = []byte(`[]`)
		}

		created = dp.Profile{
			UserID:      userID,
			Slug:        slug,
			DisplayName: req.DisplayName,
			Bio:         req.Bio,
			AvatarURL:   req.AvatarURL,
			TemplateID:  &tpl.ID,
			Content:     raw,
			Socials:     datatypes.JSON(socials),
		}
		return tx.Create(&created).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create profile"})
		return
	}

	c.JSON(http.StatusCreated, ProfileCreatedResponse{
		ID:        created.ID,
		Slug:      created.Slug,
		PublicURL: dp.BuildPublicURL(config.PUBLIC_BASE_URL, created.Slug),
	})
}

func wrapDocument(title string, body []byte) []byte {
	var b bytes.Buffer
	b.WriteString("<!doctype html><html><head><meta charset=\"utf-8\"><title>")
	b.WriteString(html.EscapeString(title))
	b.WriteString("</title></head><body>")
	b.Write(body)
	b.WriteString("</body></html>")
	return b.Bytes()
}

func notFoundPage(slug string) []byte {
	var b bytes.Buffer
	b.WriteString("<!doctype html><html><head><meta charset=\"utf-8\"><title>Not found</title></head><body>")
	b.WriteString("<main class=\"not-found\"><h1>Profile not found</h1><p>There is no page at /p/")
	b.WriteString(html.EscapeString(slug))
	b.WriteString(".</p></main></body></html>")
	return b.Bytes()
}

func errorPage() []byte {
	return []byte("<!doctype html><html><head><meta charset=\"utf-8\"><title>Error</title></head><body>" +
		"<main class=\"error\"><h1>Something went wrong</h1><p>Please try again later.</p></main></body></html>")
}
