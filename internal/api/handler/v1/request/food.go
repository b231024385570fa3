package request

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/vietanh2810/eloquence-api/internal/domain"
)

const maxSortOrder = 10000

type FoodOptionRequest struct {
	Label     string `json:"label"`
	SortOrder *int   `json:"sort_order"`
	IsActive  *bool  `json:"is_active"`
}

func (req *FoodOptionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Label, validation.Required, validation.Length(1, 255)),
		validation.Field(&req.SortOrder, validation.Min(0), validation.Max(maxSortOrder)),
	)
}

// Apply copies the request onto option. A missing is_active keeps the current
// flag; a missing sort_order keeps the current order.
func (req *FoodOptionRequest) Apply(option domain.FoodOption) domain.FoodOption {
	option.Label = strings.TrimSpace(req.Label)
	if req.SortOrder != nil {
		option.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		option.IsActive = *req.IsActive
	}

	return option
}
