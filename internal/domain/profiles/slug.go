package profiles

import (
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

/*
	Slug helpers
	------------
	- Responsible ONLY for:
	  • generating URL-safe slugs
	  • resolving profiles by slug
	  • building public URLs
	- No template logic, no lead logic here
*/

var (
	nonSlug   = regexp.MustCompile(`[^a-z0-9\-]+`)
	multiDash = regexp.MustCompile(`-+`)
)

// MakeSlug generates a URL-safe base slug from a display name.
// Example: "John Doe" -> "john-doe"
func MakeSlug(name string) string {
	base := strings.ToLower(strings.TrimSpace(name))
	base = strings.ReplaceAll(base, " ", "-")
	base = nonSlug.ReplaceAllString(base, "")
	base = multiDash.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")

	if base == "" {
		base = "profile"
	}
	return base
}

// EnsureUniqueSlug returns base if free, otherwise base-2, base-3, ...
func EnsureUniqueSlug(db *gorm.DB, base string) (string, error) {
	slug := base
	for n := 2; ; n++ {
		var count int64
		if err := db.Model(&Profile{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}
}

// ResolveBySlug is an exact, case-sensitive lookup. Read-only: a page
// view never mutates state. Returns gorm.ErrRecordNotFound on a miss.
func ResolveBySlug(db *gorm.DB, slug string) (*Profile, error) {
	var p Profile
	if err := db.First(&p, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// BuildPublicURL builds the public page URL from a slug.
func BuildPublicURL(baseURL, slug string) string {
	return strings.TrimRight(baseURL, "/") + "/p/" + slug
}
