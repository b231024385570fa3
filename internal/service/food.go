package service

import (
	"context"
	"fmt"

	"github.com/vietanh2810/eloquence-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/eloquence-api/internal/domain"
)

type FoodOptionRepository interface {
	Create(ctx context.Context, option domain.FoodOption) (domain.FoodOption, error)
	FindByID(ctx context.Context, id uint) (domain.FoodOption, error)
	List(ctx context.Context, activeOnly bool) ([]domain.FoodOption, error)
	CountActive(ctx context.Context) (int, error)
	MaxSortOrder(ctx context.Context) (int, error)
	Update(ctx context.Context, option domain.FoodOption) (domain.FoodOption, error)
	Delete(ctx context.Context, id uint) error
}

type FoodOrderRepository interface {
	FoodOrderTotals(ctx context.Context) (map[uint]int, error)
}

type FoodService struct {
	repo   FoodOptionRepository
	orders FoodOrderRepository
}

func NewFoodService(repo FoodOptionRepository, orders FoodOrderRepository) *FoodService {
	return &FoodService{
		repo:   repo,
		orders: orders,
	}
}

// List returns the whole catalog with the quantity ordered for each option.
func (s *FoodService) List(ctx context.Context) ([]domain.FoodOption, error) {
	options, err := s.repo.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	totals, err := s.orders.FoodOrderTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.orders.FoodOrderTotals -> %w", err)
	}

	for i := range options {
		options[i].OrderedQuantity = totals[options[i].ID]
	}

	return options, nil
}

func (s *FoodService) ListActive(ctx context.Context) ([]domain.FoodOption, error) {
	options, err := s.repo.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return options, nil
}

// Create appends the option at the end of the catalog unless a sort order is
// given. New options are active by default.
func (s *FoodService) Create(ctx context.Context, req request.FoodOptionRequest) (domain.FoodOption, error) {
	if err := req.Validate(); err != nil {
		return domain.FoodOption{}, newValidationError(err)
	}

	option := req.Apply(domain.FoodOption{IsActive: true})
	if req.SortOrder == nil {
		max, err := s.repo.MaxSortOrder(ctx)
		if err != nil {
			return domain.FoodOption{}, fmt.Errorf("s.repo.MaxSortOrder -> %w", err)
		}
		option.SortOrder = max + 1
	}

	created, err := s.repo.Create(ctx, option)
	if err != nil {
		return domain.FoodOption{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *FoodService) Update(ctx context.Context, id uint, req request.FoodOptionRequest) (domain.FoodOption, error) {
	if err := req.Validate(); err != nil {
		return domain.FoodOption{}, newValidationError(err)
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.FoodOption{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	updated, err := s.repo.Update(ctx, req.Apply(current))
	if err != nil {
		return domain.FoodOption{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *FoodService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
