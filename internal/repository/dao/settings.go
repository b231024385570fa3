package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrSettingsNotFound = errors.New("event settings not found")
)

type EventSettings struct {
	ID  uint   `gorm:"primaryKey"`
	Key string `gorm:"uniqueIndex;size:64;not null"`

	EventTitle       string `gorm:"size:255"`
	EventTheme       string `gorm:"size:255"`
	EventDate        string `gorm:"size:255"`
	EventLocation    string `gorm:"size:255"`
	InstagramURL     string `gorm:"size:255"`
	PrivacyPolicyURL string `gorm:"size:2000"`
	RulesURL         string `gorm:"size:2000"`

	SpectatorCapacity             int `gorm:"not null"`
	SpectatorRegistrationsEnabled bool `gorm:"not null"`
	SpectatorRegistrationsEndAt   *time.Time
	SpectatorCustomFormEnabled    bool   `gorm:"not null"`
	SpectatorCustomFormURL        string `gorm:"size:2000"`

	CandidateCapacity             int `gorm:"not null"`
	CandidateRegistrationsEnabled bool `gorm:"not null"`
	CandidateRegistrationsEndAt   *time.Time
	CandidateCustomFormEnabled    bool   `gorm:"not null"`
	CandidateCustomFormURL        string `gorm:"size:2000"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (EventSettings) TableName() string {
	return "event_settings"
}

type SettingsDAO struct {
	db *gorm.DB
}

func NewSettingsDAO(db *gorm.DB) *SettingsDAO {
	return &SettingsDAO{
		db: db,
	}
}

// InsertIfMissing creates the row unless one with the same key already exists.
func (d *SettingsDAO) InsertIfMissing(ctx context.Context, settings EventSettings) error {
	result := d.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "key"}}, DoNothing: true}).
		Create(&settings)

	return result.Error
}

func (d *SettingsDAO) FindByKey(ctx context.Context, key string) (EventSettings, error) {
	var settings EventSettings

	result := d.db.WithContext(ctx).Where("key = ?", key).First(&settings)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return EventSettings{}, ErrSettingsNotFound
		}

		return EventSettings{}, result.Error
	}

	return settings, nil
}

// LockByKey reads the row with SELECT ... FOR UPDATE. Only meaningful on a
// DAO bound to a transaction; the lock is held until it commits or rolls back.
func (d *SettingsDAO) LockByKey(ctx context.Context, key string) (EventSettings, error) {
	var settings EventSettings

	result := d.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("key = ?", key).
		First(&settings)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return EventSettings{}, ErrSettingsNotFound
		}

		return EventSettings{}, result.Error
	}

	return settings, nil
}

func (d *SettingsDAO) Update(ctx context.Context, settings EventSettings) (EventSettings, error) {
	result := d.db.WithContext(ctx).Save(&settings)
	if result.Error != nil {
		return EventSettings{}, result.Error
	}

	return settings, nil
}
