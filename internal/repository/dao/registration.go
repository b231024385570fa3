package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrCandidateEmailExists = errors.New("candidate email already registered")
)

const candidateEmailIndex = "idx_candidate_registrations_email"

type AccompanyingPerson struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type SpectatorRegistration struct {
	ID                 uint                 `gorm:"primaryKey"`
	FullName           string               `gorm:"size:255;not null"`
	Email              string               `gorm:"size:255;not null;index"`
	Phone              string               `gorm:"size:50;not null"`
	AccompanyingCount  int                  `gorm:"not null"`
	AccompanyingPeople []AccompanyingPerson `gorm:"type:jsonb;serializer:json"`

	FoodWanted      bool
	FoodOptionID    *uint
	FoodQuantities  map[uint]int `gorm:"type:jsonb;serializer:json"`
	FoodOptionLabel string       `gorm:"size:2000"`

	AcceptedPrivacy bool `gorm:"not null"`
	AcceptedRules   bool `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

type CandidateRegistration struct {
	ID        uint   `gorm:"primaryKey"`
	FullName  string `gorm:"size:255;not null"`
	Email     string `gorm:"size:255;not null;uniqueIndex:idx_candidate_registrations_email"`
	Phone     string `gorm:"size:50;not null"`
	Faculty   string `gorm:"size:255;not null;index"`
	StudyYear string `gorm:"size:50"`
	TextPath  string `gorm:"size:1024;not null"`
	ProofPath string `gorm:"size:1024;not null"`

	AcceptedPrivacy bool `gorm:"not null"`
	AcceptedRules   bool `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

// GroupCount is one row of a GROUP BY ... COUNT(*) aggregate.
type GroupCount struct {
	Value string
	Total int
}

type RegistrationDAO struct {
	db *gorm.DB
}

func NewRegistrationDAO(db *gorm.DB) *RegistrationDAO {
	return &RegistrationDAO{
		db: db,
	}
}

func (d *RegistrationDAO) InsertSpectator(ctx context.Context, registration SpectatorRegistration) (SpectatorRegistration, error) {
	result := d.db.WithContext(ctx).Create(&registration)
	if result.Error != nil {
		return SpectatorRegistration{}, result.Error
	}

	return registration, nil
}

func (d *RegistrationDAO) InsertCandidate(ctx context.Context, registration CandidateRegistration) (CandidateRegistration, error) {
	result := d.db.WithContext(ctx).Create(&registration)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			(err.ConstraintName == candidateEmailIndex || strings.Contains(err.Message, candidateEmailIndex)) {
			return CandidateRegistration{}, ErrCandidateEmailExists
		}

		return CandidateRegistration{}, result.Error
	}

	return registration, nil
}

// SeatsUsed sums the registrant plus the accompanying people of every row.
func (d *RegistrationDAO) SeatsUsed(ctx context.Context) (int, error) {
	var used int

	result := d.db.WithContext(ctx).
		Model(&SpectatorRegistration{}).
		Select("COALESCE(SUM(1 + accompanying_count), 0)").
		Scan(&used)
	if result.Error != nil {
		return 0, result.Error
	}

	return used, nil
}

func (d *RegistrationDAO) CountCandidates(ctx context.Context) (int, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&CandidateRegistration{}).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return int(count), nil
}

func (d *RegistrationDAO) CandidateEmailExists(ctx context.Context, email string) (bool, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&CandidateRegistration{}).
		Where("email = ?", email).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

func (d *RegistrationDAO) ListSpectators(ctx context.Context) ([]SpectatorRegistration, error) {
	var registrations []SpectatorRegistration

	result := d.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&registrations)
	if result.Error != nil {
		return nil, result.Error
	}

	return registrations, nil
}

// ListFoodOrders loads only the food columns of spectator rows that ordered something.
func (d *RegistrationDAO) ListFoodOrders(ctx context.Context) ([]SpectatorRegistration, error) {
	var registrations []SpectatorRegistration

	result := d.db.WithContext(ctx).
		Select("id", "food_wanted", "food_option_id", "food_quantities").
		Where("food_option_id IS NOT NULL OR food_quantities IS NOT NULL").
		Find(&registrations)
	if result.Error != nil {
		return nil, result.Error
	}

	return registrations, nil
}

func (d *RegistrationDAO) ListCandidates(ctx context.Context) ([]CandidateRegistration, error) {
	var registrations []CandidateRegistration

	result := d.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&registrations)
	if result.Error != nil {
		return nil, result.Error
	}

	return registrations, nil
}

// CountCandidatesBy groups candidates on column, largest groups first.
func (d *RegistrationDAO) CountCandidatesBy(ctx context.Context, column string) ([]GroupCount, error) {
	var groups []GroupCount

	result := d.db.WithContext(ctx).
		Model(&CandidateRegistration{}).
		Select("COALESCE(" + column + ", '') AS value, COUNT(*) AS total").
		Group(column).
		Order("total DESC").
		Order("value").
		Scan(&groups)
	if result.Error != nil {
		return nil, result.Error
	}

	return groups, nil
}

func (d *RegistrationDAO) FindSpectatorByID(ctx context.Context, id uint) (SpectatorRegistration, error) {
	var registration SpectatorRegistration

	result := d.db.WithContext(ctx).First(&registration, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return SpectatorRegistration{}, ErrRegistrationNotFound
		}

		return SpectatorRegistration{}, result.Error
	}

	return registration, nil
}

func (d *RegistrationDAO) FindCandidateByID(ctx context.Context, id uint) (CandidateRegistration, error) {
	var registration CandidateRegistration

	result := d.db.WithContext(ctx).First(&registration, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return CandidateRegistration{}, ErrRegistrationNotFound
		}

		return CandidateRegistration{}, result.Error
	}

	return registration, nil
}

func (d *RegistrationDAO) DeleteSpectator(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&SpectatorRegistration{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRegistrationNotFound
	}

	return nil
}

func (d *RegistrationDAO) DeleteCandidate(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&CandidateRegistration{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRegistrationNotFound
	}

	return nil
}
