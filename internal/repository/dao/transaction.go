package dao

import (
	"context"

	"gorm.io/gorm"
)

// AdmissionTx groups the DAOs bound to one database transaction.
type AdmissionTx struct {
	Settings      *SettingsDAO
	FoodOptions   *FoodOptionDAO
	Registrations *RegistrationDAO
}

type TransactionDAO struct {
	db *gorm.DB
}

func NewTransactionDAO(db *gorm.DB) *TransactionDAO {
	return &TransactionDAO{
		db: db,
	}
}

// Transaction runs fn inside a database transaction. It commits when fn
// returns nil and rolls back otherwise.
func (d *TransactionDAO) Transaction(ctx context.Context, fn func(tx AdmissionTx) error) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(AdmissionTx{
			Settings:      NewSettingsDAO(tx),
			FoodOptions:   NewFoodOptionDAO(tx),
			Registrations: NewRegistrationDAO(tx),
		})
	})
}
