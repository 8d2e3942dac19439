package profiles

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"crm-backend/database"
	"crm-backend/internal/domain/blocks"
	dp "crm-backend/internal/domain/profiles"
	dt "crm-backend/internal/domain/templates"
)

const (
	testUser      = "aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaaa"
	testWorkspace = "bbbbbbbb-bbbb-4bbb-8bbb-bbbbbbbbbbbb"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", testUser)
		c.Set("workspace_id", testWorkspace)
	})
	r.GET("/p/:slug", PublicProfilePage)
	r.POST("/profiles/from-template/:id", CreateProfileFromTemplate)
	return r
}

func seedTemplate(t *testing.T) dt.Template {
	t.Helper()
	content := blocks.BlockContent{
		Metadata: blocks.BlockMetadata{Name: "Starter"},
		Elements: []blocks.EditorElement{
			{
				ID:   "root",
				Type: blocks.TypeSection,
				Children: []blocks.EditorElement{
					{ID: "h", Type: blocks.TypeHeading, Props: map[string]any{"text": "Welcome", "level": "1"}},
					{ID: "form", Type: blocks.TypeContactForm, Props: map[string]any{"title": "Say hi"}},
				},
			},
		},
	}
	raw, err := json.Marshal(content)
	require.NoError(t, err)

	tpl := dt.Template{Name: "Starter", Type: dt.TypeProfileTemplate, Content: raw}
	require.NoError(t, database.DB.Create(&tpl).Error)
	return tpl
}

func createProfile(t *testing.T, r *gin.Engine, templateID, displayName string) ProfileCreatedResponse {
	t.Helper()
	body, _ := json.Marshal(gin.H{"display_name": displayName})
	req := httptest.NewRequest(http.MethodPost, "/profiles/from-template/"+templateID, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp ProfileCreatedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestCreateProfileFromTemplate(t *testing.T) {
	r := setupRouter(t)
	tpl := seedTemplate(t)

	resp := createProfile(t, r, tpl.ID, "Jane Doe")
	assert.Equal(t, "jane-doe", resp.Slug)

	// Materialized copy: structurally identical, no shared element ids.
	var p dp.Profile
	require.NoError(t, database.DB.First(&p, "id = ?", resp.ID).Error)
	require.NotNil(t, p.TemplateID)
	assert.Equal(t, tpl.ID, *p.TemplateID)

	tplContent, err := blocks.ParseContent(tpl.Content)
	require.NoError(t, err)
	profContent, err := blocks.ParseContent(p.Content)
	require.NoError(t, err)
	assert.Empty(t, blocks.DiffStructure(tplContent.Elements, profContent.Elements))

	shared := map[string]bool{}
	for _, id := range blocks.CollectIDs(tplContent.Elements) {
		shared[id] = true
	}
	for _, id := range blocks.CollectIDs(profContent.Elements) {
		assert.False(t, shared[id])
	}

	// Same display name gets a suffixed slug.
	resp2 := createProfile(t, r, tpl.ID, "Jane Doe")
	assert.Equal(t, "jane-doe-2", resp2.Slug)
}

func TestCreateProfileStoresSocials(t *testing.T) {
	r := setupRouter(t)
	tpl := seedTemplate(t)

	body, _ := json.Marshal(gin.H{
		"display_name": "Jane Doe",
		"socials":      []gin.H{{"kind": "instagram", "url": "https://ig/jane"}},
	})
	req := httptest.NewRequest(http.MethodPost, "/profiles/from-template/"+tpl.ID, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp ProfileCreatedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	var p dp.Profile
	require.NoError(t, database.DB.First(&p, "id = ?", resp.ID).Error)

	var socials []map[string]any
	require.NoError(t, json.Unmarshal(p.Socials, &socials))
	require.Len(t, socials, 1)
	assert.Equal(t, "instagram", socials[0]["kind"])

	// Omitted socials persist as an empty list, not NULL.
	resp2 := createProfile(t, r, tpl.ID, "No Socials")
	var p2 dp.Profile
	require.NoError(t, database.DB.First(&p2, "id = ?", resp2.ID).Error)
	assert.JSONEq(t, `[]`, string(p2.Socials))
}

func TestCreateProfileFromMissingTemplate(t *testing.T) {
	r := setupRouter(t)

	body, _ := json.Marshal(gin.H{"display_name": "Jane"})
	req := httptest.NewRequest(http.MethodPost, "/profiles/from-template/99999999-9999-4999-8999-999999999999", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPublicProfilePage(t *testing.T) {
	r := setupRouter(t)
	tpl := seedTemplate(t)
	resp := createProfile(t, r, tpl.ID, "Jane Doe")

	req := httptest.NewRequest(http.MethodGet, "/p/"+resp.Slug, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	page := w.Body.String()
	assert.Contains(t, page, "<title>Jane Doe</title>")
	assert.Contains(t, page, "<h1>Welcome</h1>")
	assert.Contains(t, page, `class="lead-form"`)
}

func TestPublicProfilePageNotFoundTerminal(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/p/does-not-exist", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Profile not found", "miss must render the terminal state, not an empty page")
}

func TestPublicPageSurvivesTemplateDeletion(t *testing.T) {
	r := setupRouter(t)
	tpl := seedTemplate(t)
	resp := createProfile(t, r, tpl.ID, "Jane Doe")

	require.NoError(t, database.DB.Delete(&dt.Template{}, "id = ?", tpl.ID).Error)

	req := httptest.NewRequest(http.MethodGet, "/p/"+resp.Slug, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, "profiles hold materialized copies; deleting the template must not 500 the page")
	assert.Contains(t, w.Body.String(), "<h1>Welcome</h1>")
}

func TestPublicPageRendersUnknownBlocks(t *testing.T) {
	r := setupRouter(t)

	content, _ := json.Marshal(blocks.BlockContent{
		Metadata: blocks.BlockMetadata{Name: "Future"},
		Elements: []blocks.EditorElement{
			{ID: "f", Type: "FutureBlockXYZ", Props: map[string]any{"x": 1.0}, Children: []blocks.EditorElement{
				{ID: "p", Type: blocks.TypeParagraph, Props: map[string]any{"text": "still here"}},
			}},
		},
	})
	p := dp.Profile{
		UserID: testUser, Slug: "future", DisplayName: "Future",
		Content: content, Socials: []byte(`[]`),
	}
	require.NoError(t, database.DB.Create(&p).Error)

	req := httptest.NewRequest(http.MethodGet, "/p/future", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `data-block-type="FutureBlockXYZ"`)
	assert.Contains(t, w.Body.String(), "still here")
}
