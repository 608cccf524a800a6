package countries

import (
	"fmt"
	"strings"

	"country-api/core/database"
	"country-api/feature/countries/models"

	"gorm.io/gorm"
)

// Migrate creates or updates the countries table and verifies its columns.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Country{}); err != nil {
		return fmt.Errorf("failed to migrate countries: %w", err)
	}

	missing, err := database.MissingColumns(db, models.Country{}.TableName(), models.Columns)
	if err != nil {
		return fmt.Errorf("failed to inspect countries: %w", err)
	}
	if len(missing) > 0 {
		return fmt.Errorf("countries table is missing columns: %s", strings.Join(missing, ", "))
	}
	return nil
}
