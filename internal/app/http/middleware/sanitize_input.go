package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

// SanitizeAndCleanInputMiddleware strips markup from every string value
// in a JSON body before it reaches a handler. Applied to public write
// routes only (lead capture); authenticated editors submit block props
// that are escaped at render time instead.
func SanitizeAndCleanInputMiddleware() gin.HandlerFunc {
	policy := bluemonday.StrictPolicy()

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost &&
			c.Request.Method != http.MethodPut &&
			c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		buf, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid body"})
			return
		}

		var body any
		if err := json.Unmarshal(buf, &body); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Malformed JSON"})
			return
		}

		newBody, _ := json.Marshal(sanitizeValue(policy, body))
		c.Request.Body = io.NopCloser(bytes.NewBuffer(newBody))
		c.Request.ContentLength = int64(len(newBody))

		c.Next()
	}
}

// sanitizeValue cleans strings at any nesting level of the decoded body.
func sanitizeValue(policy *bluemonday.Policy, v any) any {
	switch t := v.(type) {
	case string:
		return policy.Sanitize(t)
	case map[string]any:
		for k, e := range t {
			t[k] = sanitizeValue(policy, e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = sanitizeValue(policy, e)
		}
		return t
	default:
		return v
	}
}
