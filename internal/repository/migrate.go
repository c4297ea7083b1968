package repository

import "gorm.io/gorm"

// AutoMigrate creates or updates the tables backing every repository.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&preferencesModel{},
		&voteModel{},
	)
}
