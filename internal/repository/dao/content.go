package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrContentNotFound = errors.New("content not found")
	errNoPosition      = errors.New("content table has no position column")
)

type Partner struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:255;not null"`
	URL         string `gorm:"size:255"`
	Description string `gorm:"type:text"`
	LogoURL     string `gorm:"size:255"`
	IsFeatured  bool   `gorm:"not null;index"`
	SortOrder   int    `gorm:"not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type JuryMember struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:255;not null"`
	Role        string `gorm:"size:255;not null"`
	Detail      string `gorm:"size:255"`
	Description string `gorm:"type:text"`
	PhotoURL    string `gorm:"size:255"`
	IsActive    bool   `gorm:"not null;index"`
	SortOrder   int    `gorm:"not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type AfterMovie struct {
	ID            uint      `gorm:"primaryKey"`
	Date          time.Time `gorm:"type:date;not null;index"`
	Location      string    `gorm:"size:255"`
	Theme         string    `gorm:"size:255"`
	Winner        string    `gorm:"size:255;not null"`
	AftermovieURL string    `gorm:"size:255"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PracticalModality keeps its position in display_order; order is reserved.
type PracticalModality struct {
	ID           uint   `gorm:"primaryKey"`
	DisplayOrder int    `gorm:"not null;index"`
	IconName     string `gorm:"size:255;not null"`
	Title        string `gorm:"size:255;not null"`
	Description  string `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// contentTable describes how rows of one content table are listed. flag is
// the boolean column a flagged-only listing filters on, position the integer
// column new rows are appended after.
type contentTable struct {
	order    []string
	flag     string
	position string
}

// ContentDAO stores one kind of editorial content of the public site.
type ContentDAO[M any] struct {
	db    *gorm.DB
	table contentTable
}

func NewPartnerDAO(db *gorm.DB) *ContentDAO[Partner] {
	return &ContentDAO[Partner]{
		db: db,
		table: contentTable{
			order:    []string{"sort_order", "name"},
			flag:     "is_featured",
			position: "sort_order",
		},
	}
}

func NewJuryMemberDAO(db *gorm.DB) *ContentDAO[JuryMember] {
	return &ContentDAO[JuryMember]{
		db: db,
		table: contentTable{
			order:    []string{"sort_order", "name"},
			flag:     "is_active",
			position: "sort_order",
		},
	}
}

func NewAfterMovieDAO(db *gorm.DB) *ContentDAO[AfterMovie] {
	return &ContentDAO[AfterMovie]{
		db: db,
		table: contentTable{
			order: []string{"date DESC", "id DESC"},
		},
	}
}

func NewPracticalModalityDAO(db *gorm.DB) *ContentDAO[PracticalModality] {
	return &ContentDAO[PracticalModality]{
		db: db,
		table: contentTable{
			order:    []string{"display_order", "id"},
			position: "display_order",
		},
	}
}

func (d *ContentDAO[M]) Insert(ctx context.Context, row M) (M, error) {
	result := d.db.WithContext(ctx).Create(&row)
	if result.Error != nil {
		var zero M
		return zero, result.Error
	}

	return row, nil
}

func (d *ContentDAO[M]) FindByID(ctx context.Context, id uint) (M, error) {
	var row M

	result := d.db.WithContext(ctx).First(&row, id)
	if result.Error != nil {
		var zero M
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return zero, ErrContentNotFound
		}

		return zero, result.Error
	}

	return row, nil
}

// List returns rows in display order. flaggedOnly is ignored for tables
// without a flag column; a limit of zero or less means no limit.
func (d *ContentDAO[M]) List(ctx context.Context, flaggedOnly bool, limit int) ([]M, error) {
	var rows []M

	query := d.db.WithContext(ctx)
	if flaggedOnly && d.table.flag != "" {
		query = query.Where(d.table.flag+" = ?", true)
	}
	for _, o := range d.table.order {
		query = query.Order(o)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	result := query.Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

// MaxPosition returns the highest position in use, or -1 for an empty table.
func (d *ContentDAO[M]) MaxPosition(ctx context.Context) (int, error) {
	if d.table.position == "" {
		return 0, errNoPosition
	}

	var max int

	result := d.db.WithContext(ctx).Model(new(M)).Select("COALESCE(MAX(" + d.table.position + "), -1)").Scan(&max)
	if result.Error != nil {
		return 0, result.Error
	}

	return max, nil
}

func (d *ContentDAO[M]) Update(ctx context.Context, row M) (M, error) {
	result := d.db.WithContext(ctx).Save(&row)
	if result.Error != nil {
		var zero M
		return zero, result.Error
	}

	return row, nil
}

func (d *ContentDAO[M]) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(new(M), id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrContentNotFound
	}

	return nil
}
