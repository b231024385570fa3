package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/eloquence-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/eloquence-api/internal/domain"
	"github.com/vietanh2810/eloquence-api/internal/repository"
)

type memFoods struct {
	mu      sync.Mutex
	options map[uint]domain.FoodOption
	nextID  uint
}

func newMemFoods(options ...domain.FoodOption) *memFoods {
	f := &memFoods{options: make(map[uint]domain.FoodOption)}
	for _, o := range options {
		f.options[o.ID] = o
		if o.ID > f.nextID {
			f.nextID = o.ID
		}
	}

	return f
}

func (f *memFoods) Create(_ context.Context, option domain.FoodOption) (domain.FoodOption, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	option.ID = f.nextID
	f.options[option.ID] = option

	return option, nil
}

func (f *memFoods) FindByID(_ context.Context, id uint) (domain.FoodOption, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	option, ok := f.options[id]
	if !ok {
		return domain.FoodOption{}, repository.ErrFoodOptionNotFound
	}

	return option, nil
}

func (f *memFoods) List(_ context.Context, activeOnly bool) ([]domain.FoodOption, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var options []domain.FoodOption
	for _, o := range f.options {
		if activeOnly && !o.IsActive {
			continue
		}
		options = append(options, o)
	}
	sort.Slice(options, func(i, j int) bool {
		if options[i].SortOrder != options[j].SortOrder {
			return options[i].SortOrder < options[j].SortOrder
		}
		return options[i].Label < options[j].Label
	})

	return options, nil
}

func (f *memFoods) CountActive(ctx context.Context) (int, error) {
	options, err := f.List(ctx, true)

	return len(options), err
}

func (f *memFoods) MaxSortOrder(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	max := 0
	for _, o := range f.options {
		if o.SortOrder > max {
			max = o.SortOrder
		}
	}

	return max, nil
}

func (f *memFoods) Update(_ context.Context, option domain.FoodOption) (domain.FoodOption, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.options[option.ID] = option

	return option, nil
}

func (f *memFoods) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.options[id]; !ok {
		return repository.ErrFoodOptionNotFound
	}
	delete(f.options, id)

	return nil
}

func boolPtr(v bool) *bool { return &v }

func TestFoodService_Create(t *testing.T) {
	foods := newMemFoods(domain.FoodOption{ID: 1, Label: "Soup", SortOrder: 4, IsActive: true})
	svc := NewFoodService(foods, newMemStore(openSettings(10, 5)))

	appended, err := svc.Create(context.Background(), request.FoodOptionRequest{Label: "  Salad "})
	require.NoError(t, err)
	assert.Equal(t, "Salad", appended.Label)
	assert.Equal(t, 5, appended.SortOrder)
	assert.True(t, appended.IsActive)

	placed, err := svc.Create(context.Background(), request.FoodOptionRequest{
		Label:     "Quiche",
		SortOrder: intPtr(0),
		IsActive:  boolPtr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, placed.SortOrder)
	assert.False(t, placed.IsActive)
}

func TestFoodService_Create_Invalid(t *testing.T) {
	svc := NewFoodService(newMemFoods(), newMemStore(openSettings(10, 5)))

	_, err := svc.Create(context.Background(), request.FoodOptionRequest{SortOrder: intPtr(-3)})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "label")
	assert.Contains(t, verr.Fields, "sort_order")
}

func TestFoodService_Update(t *testing.T) {
	foods := newMemFoods(domain.FoodOption{ID: 1, Label: "Soup", SortOrder: 4, IsActive: true})
	svc := NewFoodService(foods, newMemStore(openSettings(10, 5)))

	updated, err := svc.Update(context.Background(), 1, request.FoodOptionRequest{Label: "Tomato soup", IsActive: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, "Tomato soup", updated.Label)
	assert.Equal(t, 4, updated.SortOrder)
	assert.False(t, updated.IsActive)

	_, err = svc.Update(context.Background(), 9, request.FoodOptionRequest{Label: "Ghost"})
	assert.ErrorIs(t, err, ErrFoodOptionNotFound)
}

func TestFoodService_Delete(t *testing.T) {
	foods := newMemFoods(domain.FoodOption{ID: 1, Label: "Soup", IsActive: true})
	svc := NewFoodService(foods, newMemStore(openSettings(10, 5)))

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.ErrorIs(t, svc.Delete(context.Background(), 1), ErrFoodOptionNotFound)
}

func TestFoodService_ListWithOrderedQuantities(t *testing.T) {
	soup := domain.FoodOption{ID: 1, Label: "Soup", SortOrder: 1, IsActive: true}
	salad := domain.FoodOption{ID: 2, Label: "Salad", SortOrder: 2, IsActive: false}
	store := newMemStore(openSettings(20, 5), soup, salad)
	foods := newMemFoods(soup, salad)

	admission := newTestAdmission(store, newMemDocs())
	req := spectatorRequest("Marie Curie", 0)
	req.FoodWanted = true
	req.FoodQuantities = map[string]int{"1": 3}
	_, _, err := admission.RegisterSpectator(context.Background(), req)
	require.NoError(t, err)

	legacy := spectatorRequest("Pierre Curie", 0)
	legacy.FoodOptionID = &salad.ID
	_, _, err = admission.RegisterSpectator(context.Background(), legacy)
	require.NoError(t, err)

	svc := NewFoodService(foods, store)

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 3, all[0].OrderedQuantity)
	assert.Equal(t, 1, all[1].OrderedQuantity)

	active, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Soup", active[0].Label)
}
