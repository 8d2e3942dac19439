package profiles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMakeSlug(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"John Doe", "john-doe"},
		{"  Ana  María!! ", "ana-mara"},
		{"---", "profile"},
		{"", "profile"},
		{"UPPER case", "upper-case"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, MakeSlug(tc.in), "MakeSlug(%q)", tc.in)
	}
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Profile{}))
	return db
}

func TestEnsureUniqueSlug(t *testing.T) {
	db := newTestDB(t)

	slug, err := EnsureUniqueSlug(db, "jane-doe")
	require.NoError(t, err)
	assert.Equal(t, "jane-doe", slug)

	require.NoError(t, db.Create(&Profile{
		UserID: "u", Slug: "jane-doe", DisplayName: "Jane",
		Content: []byte(`{}`), Socials: []byte(`[]`),
	}).Error)

	slug, err = EnsureUniqueSlug(db, "jane-doe")
	require.NoError(t, err)
	assert.Equal(t, "jane-doe-2", slug)
}

func TestResolveBySlugIsExactMatch(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&Profile{
		UserID: "u", Slug: "jane-doe", DisplayName: "Jane",
		Content: []byte(`{}`), Socials: []byte(`[]`),
	}).Error)

	p, err := ResolveBySlug(db, "jane-doe")
	require.NoError(t, err)
	assert.Equal(t, "Jane", p.DisplayName)

	_, err = ResolveBySlug(db, "Jane-Doe")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound, "lookup is case-sensitive, no fuzzy match")

	_, err = ResolveBySlug(db, "jane")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound, "no partial resolution")
}
