package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

type FoodOption struct {
	ID              uint      `json:"id"`
	Label           string    `json:"label"`
	SortOrder       int       `json:"sort_order"`
	IsActive        bool      `json:"is_active"`
	OrderedQuantity int       `json:"ordered_quantity"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type FoodSelectionKind string

const (
	FoodNone       FoodSelectionKind = "none"
	FoodSingle     FoodSelectionKind = "single"
	FoodQuantities FoodSelectionKind = "quantities"
)

// FoodSelection is what a spectator ordered: nothing, one legacy option, or a
// quantity per option. Only the fields matching Kind are meaningful.
type FoodSelection struct {
	Kind       FoodSelectionKind `json:"kind"`
	OptionID   uint              `json:"option_id,omitempty"`
	Quantities map[uint]int      `json:"quantities,omitempty"`
}

func NoFood() FoodSelection {
	return FoodSelection{Kind: FoodNone}
}

func SingleFoodOption(id uint) FoodSelection {
	return FoodSelection{Kind: FoodSingle, OptionID: id}
}

// FoodQuantitiesOf keeps the strictly positive quantities only. An empty
// result collapses to NoFood.
func FoodQuantitiesOf(quantities map[uint]int) FoodSelection {
	kept := make(map[uint]int, len(quantities))
	for id, qty := range quantities {
		if qty > 0 {
			kept[id] = qty
		}
	}
	if len(kept) == 0 {
		return NoFood()
	}

	return FoodSelection{Kind: FoodQuantities, Quantities: kept}
}

// OptionIDs returns the referenced option ids in ascending order.
func (f FoodSelection) OptionIDs() []uint {
	switch f.Kind {
	case FoodSingle:
		return []uint{f.OptionID}
	case FoodQuantities:
		ids := make([]uint, 0, len(f.Quantities))
		for id := range f.Quantities {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		return ids
	default:
		return nil
	}
}

// Units is how many portions the selection accounts for in food totals.
func (f FoodSelection) Units(optionID uint) int {
	switch f.Kind {
	case FoodSingle:
		if f.OptionID == optionID {
			return 1
		}
	case FoodQuantities:
		return f.Quantities[optionID]
	}

	return 0
}

// Label renders the selection against resolved options, in the order the
// options are given. Options not referenced by the selection are skipped.
func (f FoodSelection) Label(options []FoodOption) string {
	switch f.Kind {
	case FoodSingle:
		for _, o := range options {
			if o.ID == f.OptionID {
				return strings.TrimSpace(o.Label)
			}
		}
	case FoodQuantities:
		parts := make([]string, 0, len(f.Quantities))
		for _, o := range options {
			qty := f.Quantities[o.ID]
			if qty <= 0 {
				continue
			}
			parts = append(parts, fmt.Sprintf("%s ×%d", strings.TrimSpace(o.Label), qty))
		}

		return strings.Join(parts, ", ")
	}

	return ""
}
