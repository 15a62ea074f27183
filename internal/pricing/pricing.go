// Package pricing implements the option-selection rules of the
// storefront: validation of a customer's selection against a menu
// item's option groups, clamped selection mutation, default seeding
// and price computation including the free-option allowance.
package pricing

import (
	"sort"
	"strconv"

	"github.com/tabletap/tabletap-backend/internal/app/model"
	"github.com/tabletap/tabletap-backend/internal/cart"
)

// GroupSelection is the transient selection state for one option group.
// Single and multi select groups use ChoiceIDs; quantity select groups
// use Quantities keyed by choice id.
type GroupSelection struct {
	ChoiceIDs  []uint
	Quantities map[uint]int
}

// Selection maps option group id to the group's selection state.
type Selection map[uint]GroupSelection

// DefaultSelection seeds the selection state shown when a customer
// opens an item: default available choices are pre-selected, a required
// single select with no default falls back to the first available
// choice, and quantity select defaults start at max(1, min quantity).
func DefaultSelection(groups []model.OptionGroup) Selection {
	sel := make(Selection, len(groups))
	for _, group := range groups {
		gs := GroupSelection{}
		switch group.Type {
		case model.GroupQuantitySelect:
			gs.Quantities = make(map[uint]int, len(group.Choices))
			for _, choice := range group.Choices {
				qty := choice.MinQuantity
				if choice.IsDefault && choice.IsAvailable && qty < 1 {
					qty = 1
				}
				gs.Quantities[choice.ID] = qty
			}
		default:
			for _, choice := range group.Choices {
				if choice.IsDefault && choice.IsAvailable {
					gs.ChoiceIDs = append(gs.ChoiceIDs, choice.ID)
				}
			}
			if len(gs.ChoiceIDs) == 0 && group.Type == model.GroupSingleSelect && group.IsRequired {
				for _, choice := range group.Choices {
					if choice.IsAvailable {
						gs.ChoiceIDs = []uint{choice.ID}
						break
					}
				}
			}
		}
		sel[group.ID] = gs
	}
	return sel
}

// IsGroupValid reports whether one group's selection satisfies the
// group's constraints.
func IsGroupValid(group model.OptionGroup, gs GroupSelection) bool {
	if group.Type == model.GroupQuantitySelect {
		total := 0
		for _, qty := range gs.Quantities {
			total += qty
		}
		if group.IsRequired || group.AggregateMinQuantity != nil {
			min := 1
			if group.AggregateMinQuantity != nil {
				min = *group.AggregateMinQuantity
			}
			if total < min {
				return false
			}
		}
		if group.AggregateMaxQuantity != nil && total > *group.AggregateMaxQuantity {
			return false
		}
		return true
	}

	if !group.IsRequired {
		return true
	}
	return len(gs.ChoiceIDs) >= group.MinSelections
}

// IsSelectionValid reports whether every group attached to an item is
// independently valid; only then may the item enter the cart.
func IsSelectionValid(groups []model.OptionGroup, sel Selection) bool {
	for _, group := range groups {
		if !IsGroupValid(group, sel[group.ID]) {
			return false
		}
	}
	return true
}

// ToggleChoice selects or deselects a choice inside a single or multi
// select group. Refused transitions (selecting past max, deselecting a
// required group below min, unavailable choices) return the selection
// unchanged rather than erroring.
func ToggleChoice(group model.OptionGroup, gs GroupSelection, choiceID uint) GroupSelection {
	choice := findChoice(group, choiceID)
	if choice == nil || !choice.IsAvailable {
		return gs
	}

	for i, id := range gs.ChoiceIDs {
		if id == choiceID {
			if group.IsRequired && len(gs.ChoiceIDs)-1 < group.MinSelections {
				return gs
			}
			next := make([]uint, 0, len(gs.ChoiceIDs)-1)
			next = append(next, gs.ChoiceIDs[:i]...)
			next = append(next, gs.ChoiceIDs[i+1:]...)
			gs.ChoiceIDs = next
			return gs
		}
	}

	if group.Type == model.GroupSingleSelect {
		gs.ChoiceIDs = []uint{choiceID}
		return gs
	}
	if group.MaxSelections != nil && len(gs.ChoiceIDs)+1 > *group.MaxSelections {
		return gs
	}
	gs.ChoiceIDs = append(append([]uint(nil), gs.ChoiceIDs...), choiceID)
	return gs
}

// AdjustQuantity changes a choice quantity inside a quantity select
// group by delta, clamped to the choice's own bounds. Pushing the group
// total past the aggregate maximum is refused.
func AdjustQuantity(group model.OptionGroup, gs GroupSelection, choiceID uint, delta int) GroupSelection {
	choice := findChoice(group, choiceID)
	if choice == nil || !choice.IsAvailable {
		return gs
	}

	current := gs.Quantities[choiceID]
	next := current + delta

	if next < choice.MinQuantity {
		next = choice.MinQuantity
	}
	if choice.MaxQuantity != nil && next > *choice.MaxQuantity {
		return gs
	}

	if next > current && group.AggregateMaxQuantity != nil {
		total := 0
		for _, qty := range gs.Quantities {
			total += qty
		}
		if total+(next-current) > *group.AggregateMaxQuantity {
			return gs
		}
	}

	quantities := make(map[uint]int, len(gs.Quantities)+1)
	for id, qty := range gs.Quantities {
		quantities[id] = qty
	}
	quantities[choiceID] = next
	gs.Quantities = quantities
	return gs
}

// GroupPrice computes one group's price contribution: every selected
// unit's modifier, sorted ascending, with the cheapest NumFreeOptions
// charging units free. Zero and negative modifiers pass through
// untouched; making a discount "free" would raise the price, so the
// allowance only ever consumes units the customer would pay for.
func GroupPrice(group model.OptionGroup, gs GroupSelection) int64 {
	prices := unitPrices(group, gs)
	sort.Slice(prices, func(i, j int) bool { return prices[i] < prices[j] })

	var total int64
	free := group.NumFreeOptions
	for _, price := range prices {
		if price > 0 && free > 0 {
			free--
			continue
		}
		total += price
	}
	return total
}

// ItemTotal is the configured price of an item: base price plus every
// group's contribution, multiplied by the chosen quantity.
func ItemTotal(basePrice int64, groups []model.OptionGroup, sel Selection, quantity int) int64 {
	total := basePrice
	for _, group := range groups {
		total += GroupPrice(group, sel[group.ID])
	}
	return total * int64(quantity)
}

// Flatten resolves a valid selection into the per-unit choice list the
// cart engine stores: one entry per selected unit, with the free-option
// allowance already applied so the cart can sum prices naively.
func Flatten(groups []model.OptionGroup, sel Selection) []cart.OptionSelection {
	var out []cart.OptionSelection
	for _, group := range groups {
		gs := sel[group.ID]
		units := selectedUnits(group, gs)
		if len(units) == 0 {
			continue
		}

		// Mark the cheapest charging units free, then emit in the
		// group's original choice order. Matches GroupPrice.
		order := make([]int, len(units))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			return units[order[a]].price < units[order[b]].price
		})
		free := group.NumFreeOptions
		for _, idx := range order {
			if free == 0 {
				break
			}
			if units[idx].price > 0 {
				units[idx].price = 0
				free--
			}
		}

		opt := cart.OptionSelection{
			GroupID:   strconv.FormatUint(uint64(group.ID), 10),
			GroupName: group.Name,
		}
		for _, unit := range units {
			opt.Choices = append(opt.Choices, cart.ChoiceSelection{
				ID:    strconv.FormatUint(uint64(unit.choiceID), 10),
				Name:  unit.name,
				Price: unit.price,
			})
		}
		out = append(out, opt)
	}
	return out
}

type selectedUnit struct {
	choiceID uint
	name     string
	price    int64
}

// selectedUnits expands a group selection into one entry per unit:
// each selected choice once for single/multi select, quantity repeated
// copies for quantity select.
func selectedUnits(group model.OptionGroup, gs GroupSelection) []*selectedUnit {
	var units []*selectedUnit
	if group.Type == model.GroupQuantitySelect {
		for _, choice := range group.Choices {
			for i := 0; i < gs.Quantities[choice.ID]; i++ {
				units = append(units, &selectedUnit{choiceID: choice.ID, name: choice.Name, price: choice.PriceModifier})
			}
		}
		return units
	}
	for _, choice := range group.Choices {
		for _, id := range gs.ChoiceIDs {
			if id == choice.ID {
				units = append(units, &selectedUnit{choiceID: choice.ID, name: choice.Name, price: choice.PriceModifier})
				break
			}
		}
	}
	return units
}

func unitPrices(group model.OptionGroup, gs GroupSelection) []int64 {
	units := selectedUnits(group, gs)
	prices := make([]int64, len(units))
	for i, unit := range units {
		prices[i] = unit.price
	}
	return prices
}

func findChoice(group model.OptionGroup, choiceID uint) *model.Choice {
	for i := range group.Choices {
		if group.Choices[i].ID == choiceID {
			return &group.Choices[i]
		}
	}
	return nil
}
