package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/eloquence-api/internal/domain"
	"github.com/vietanh2810/eloquence-api/internal/repository/dao"
)

var (
	ErrFoodOptionNotFound = dao.ErrFoodOptionNotFound
)

type FoodOptionDAO interface {
	Insert(ctx context.Context, option dao.FoodOption) (dao.FoodOption, error)
	FindByID(ctx context.Context, id uint) (dao.FoodOption, error)
	List(ctx context.Context, activeOnly bool) ([]dao.FoodOption, error)
	CountActive(ctx context.Context) (int, error)
	MaxSortOrder(ctx context.Context) (int, error)
	Update(ctx context.Context, option dao.FoodOption) (dao.FoodOption, error)
	Delete(ctx context.Context, id uint) error
}

type FoodOptionRepository struct {
	dao FoodOptionDAO
}

func NewFoodOptionRepository(dao FoodOptionDAO) *FoodOptionRepository {
	return &FoodOptionRepository{
		dao: dao,
	}
}

func (r *FoodOptionRepository) Create(ctx context.Context, option domain.FoodOption) (domain.FoodOption, error) {
	created, err := r.dao.Insert(ctx, foodDomainToDAO(option))
	if err != nil {
		return domain.FoodOption{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return foodDAOToDomain(created), nil
}

func (r *FoodOptionRepository) FindByID(ctx context.Context, id uint) (domain.FoodOption, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.FoodOption{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return foodDAOToDomain(found), nil
}

func (r *FoodOptionRepository) List(ctx context.Context, activeOnly bool) ([]domain.FoodOption, error) {
	found, err := r.dao.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	return foodDAOsToDomain(found), nil
}

func (r *FoodOptionRepository) CountActive(ctx context.Context) (int, error) {
	count, err := r.dao.CountActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountActive -> %w", err)
	}

	return count, nil
}

func (r *FoodOptionRepository) MaxSortOrder(ctx context.Context) (int, error) {
	max, err := r.dao.MaxSortOrder(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.MaxSortOrder -> %w", err)
	}

	return max, nil
}

func (r *FoodOptionRepository) Update(ctx context.Context, option domain.FoodOption) (domain.FoodOption, error) {
	updated, err := r.dao.Update(ctx, foodDomainToDAO(option))
	if err != nil {
		return domain.FoodOption{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return foodDAOToDomain(updated), nil
}

func (r *FoodOptionRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func foodDomainToDAO(o domain.FoodOption) dao.FoodOption {
	return dao.FoodOption{
		ID:        o.ID,
		Label:     o.Label,
		SortOrder: o.SortOrder,
		IsActive:  o.IsActive,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func foodDAOToDomain(o dao.FoodOption) domain.FoodOption {
	return domain.FoodOption{
		ID:        o.ID,
		Label:     o.Label,
		SortOrder: o.SortOrder,
		IsActive:  o.IsActive,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func foodDAOsToDomain(options []dao.FoodOption) []domain.FoodOption {
	result := make([]domain.FoodOption, len(options))
	for i, o := range options {
		result[i] = foodDAOToDomain(o)
	}

	return result
}
