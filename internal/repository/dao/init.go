package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&EventSettings{},
		&FoodOption{},
		&SpectatorRegistration{},
		&CandidateRegistration{},
		&Partner{},
		&JuryMember{},
		&AfterMovie{},
		&PracticalModality{},
	)
}

// DropTables removes every table InitTables creates. Used by integration tests.
func DropTables(db *gorm.DB) error {
	return db.Migrator().DropTable(
		&PracticalModality{},
		&AfterMovie{},
		&JuryMember{},
		&Partner{},
		&CandidateRegistration{},
		&SpectatorRegistration{},
		&FoodOption{},
		&EventSettings{},
	)
}
