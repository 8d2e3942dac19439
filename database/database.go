package database

import (
	"fmt"
	"log"
	"os"

	"crm-backend/internal/domain/leads"
	"crm-backend/internal/domain/profiles"
	"crm-backend/internal/domain/templates"
	"crm-backend/internal/domain/workspaces"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("❌ DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}

	DB = db

	if err := Migrate(DB); err != nil {
		log.Fatal("❌ AutoMigrate error:", err)
	}

	fmt.Println("✅ Connected and migrated successfully")
}

// Migrate runs AutoMigrate for every domain model. Split out so tests
// can run it against their own database handle.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		// tenancy
		&workspaces.Workspace{},
		&workspaces.User{},

		// digital templates
		&templates.Template{},

		// public pages
		&profiles.Profile{},

		// lead capture
		&leads.Lead{},
	); err != nil {
		return err
	}

	// The composite unique index on (workspace_id, type, name) treats NULL
	// workspace_ids as distinct, so global templates need their own index.
	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_templates_global_type_name
		 ON templates (type, name) WHERE workspace_id IS NULL`,
	).Error
}
