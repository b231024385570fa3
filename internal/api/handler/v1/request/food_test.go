package request

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vietanh2810/eloquence-api/internal/domain"
)

func TestFoodOptionRequest_Validate(t *testing.T) {
	errs := fieldErrors(t, (&FoodOptionRequest{SortOrder: intPtr(maxSortOrder + 1)}).Validate())

	assert.Contains(t, errs, "label")
	assert.Contains(t, errs, "sort_order")
	assert.NoError(t, (&FoodOptionRequest{Label: "Soup"}).Validate())
}

func TestFoodOptionRequest_Apply(t *testing.T) {
	inactive := false
	current := domain.FoodOption{ID: 3, Label: "Soup", SortOrder: 2, IsActive: true}

	kept := (&FoodOptionRequest{Label: " Tomato soup "}).Apply(current)
	assert.Equal(t, domain.FoodOption{ID: 3, Label: "Tomato soup", SortOrder: 2, IsActive: true}, kept)

	changed := (&FoodOptionRequest{Label: "Soup", SortOrder: intPtr(0), IsActive: &inactive}).Apply(current)
	assert.Equal(t, 0, changed.SortOrder)
	assert.False(t, changed.IsActive)
}
