package leads

import (
	"errors"
	"net/http"

	"crm-backend/database"
	dl "crm-backend/internal/domain/leads"
	dp "crm-backend/internal/domain/profiles"
	"crm-backend/internal/errs"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ------------------------------
// POST /leads  (public, anonymous)
// ------------------------------
// Validation enumerates EVERY invalid field before returning; the error
// set is never collapsed to a single message.
func CaptureLead(c *gin.Context) {
	var req CaptureLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Malformed request body"})
		return
	}

	if verrs := errs.ValidateStruct(req); len(verrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Validation failed", "details": verrs})
		return
	}

	var count int64
	if err := database.DB.WithContext(c.Request.Context()).
		Model(&dp.Profile{}).Where("id = ?", req.ProfileID).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, CaptureResponse{Success: false, Error: "Failed to save lead"})
		return
	}
	if count == 0 {
		c.JSON(http.StatusNotFound, CaptureResponse{Success: false, Error: "Profile not found"})
		return
	}

	persistLead(c, dl.Lead{
		ProfileID: req.ProfileID,
		Name:      req.Name,
		Phone:     req.Phone,
		Interest:  req.Interest,
	})
}

// ------------------------------
// POST /p/:slug/leads  (public, anonymous)
// ------------------------------
func CaptureLeadForSlug(c *gin.Context) {
	slug := c.Param("slug")

	var req LeadFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Malformed request body"})
		return
	}

	if verrs := errs.ValidateStruct(req); len(verrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Validation failed", "details": verrs})
		return
	}

	p, err := dp.ResolveBySlug(database.DB.WithContext(c.Request.Context()), slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, CaptureResponse{Success: false, Error: "Profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, CaptureResponse{Success: false, Error: "Failed to save lead"})
		return
	}

	persistLead(c, dl.Lead{
		ProfileID: p.ID,
		Name:      req.Name,
		Phone:     req.Phone,
		Interest:  req.Interest,
	})
}

// persistLead appends the record and kicks the notifier without waiting
// on it. Leads are immutable after this point.
func persistLead(c *gin.Context, lead dl.Lead) {
	if err := database.DB.WithContext(c.Request.Context()).Create(&lead).Error; err != nil {
		c.JSON(http.StatusInternalServerError, CaptureResponse{Success: false, Error: "Failed to save lead"})
		return
	}

	notifyAsync(lead)

	c.JSON(http.StatusCreated, CaptureResponse{Success: true, ID: lead.ID})
}
