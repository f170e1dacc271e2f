package repository

import "gorm.io/gorm"

// AutoMigrate creates or updates the schema for every table the
// repositories use. Called by the seed command and the e2e tests.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&clubModel{},
		&berthModel{},
		&vesselModel{},
		&tariffModel{},
		&bookingRuleModel{},
		&bookingModel{},
		&paymentModel{},
		&activityModel{},
	)
}
