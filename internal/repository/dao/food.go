package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrFoodOptionNotFound = errors.New("food option not found")
)

type FoodOption struct {
	ID        uint   `gorm:"primaryKey"`
	Label     string `gorm:"size:255;not null"`
	SortOrder int    `gorm:"not null;index"`
	IsActive  bool   `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type FoodOptionDAO struct {
	db *gorm.DB
}

func NewFoodOptionDAO(db *gorm.DB) *FoodOptionDAO {
	return &FoodOptionDAO{
		db: db,
	}
}

func (d *FoodOptionDAO) Insert(ctx context.Context, option FoodOption) (FoodOption, error) {
	result := d.db.WithContext(ctx).Create(&option)
	if result.Error != nil {
		return FoodOption{}, result.Error
	}

	return option, nil
}

func (d *FoodOptionDAO) FindByID(ctx context.Context, id uint) (FoodOption, error) {
	var option FoodOption

	result := d.db.WithContext(ctx).First(&option, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return FoodOption{}, ErrFoodOptionNotFound
		}

		return FoodOption{}, result.Error
	}

	return option, nil
}

// FindByIDs returns the options among ids in catalog order. Unknown ids are
// silently absent from the result.
func (d *FoodOptionDAO) FindByIDs(ctx context.Context, ids []uint, activeOnly bool) ([]FoodOption, error) {
	var options []FoodOption
	if len(ids) == 0 {
		return options, nil
	}

	query := d.db.WithContext(ctx).Where("id IN ?", ids)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	result := query.Order("sort_order").Order("label").Find(&options)
	if result.Error != nil {
		return nil, result.Error
	}

	return options, nil
}

func (d *FoodOptionDAO) List(ctx context.Context, activeOnly bool) ([]FoodOption, error) {
	var options []FoodOption

	query := d.db.WithContext(ctx)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	result := query.Order("sort_order").Order("label").Find(&options)
	if result.Error != nil {
		return nil, result.Error
	}

	return options, nil
}

func (d *FoodOptionDAO) CountActive(ctx context.Context) (int, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&FoodOption{}).Where("is_active = ?", true).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return int(count), nil
}

func (d *FoodOptionDAO) MaxSortOrder(ctx context.Context) (int, error) {
	var max int

	result := d.db.WithContext(ctx).Model(&FoodOption{}).Select("COALESCE(MAX(sort_order), 0)").Scan(&max)
	if result.Error != nil {
		return 0, result.Error
	}

	return max, nil
}

func (d *FoodOptionDAO) Update(ctx context.Context, option FoodOption) (FoodOption, error) {
	result := d.db.WithContext(ctx).Save(&option)
	if result.Error != nil {
		return FoodOption{}, result.Error
	}

	return option, nil
}

func (d *FoodOptionDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&FoodOption{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFoodOptionNotFound
	}

	return nil
}
