package database

import (
	"gorm.io/gorm"

	"github.com/smartchef/backend/internal/model"
)

// Migrate brings the schema up to date. GORM auto-migration covers both the
// postgres deployment and the sqlite test databases.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Recipe{},
		&model.Favorite{},
		&model.GenerationRequest{},
	)
}
