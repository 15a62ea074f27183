package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tabletap/tabletap-backend/internal/app/model"
)

func intPtr(n int) *int { return &n }

func multiGroup(required bool, min int, max *int, numFree int, prices ...int64) model.OptionGroup {
	group := model.OptionGroup{
		ID:             1,
		Name:           "Toppings",
		Type:           model.GroupMultiSelect,
		IsRequired:     required,
		MinSelections:  min,
		MaxSelections:  max,
		NumFreeOptions: numFree,
	}
	for i, price := range prices {
		group.Choices = append(group.Choices, model.Choice{
			ID: uint(i + 1), OptionGroupID: 1, Name: "Topping", PriceModifier: price, IsAvailable: true,
		})
	}
	return group
}

func quantityGroup(required bool, aggMin, aggMax *int, choices ...model.Choice) model.OptionGroup {
	return model.OptionGroup{
		ID:                   2,
		Name:                 "Side Dishes",
		Type:                 model.GroupQuantitySelect,
		IsRequired:           required,
		AggregateMinQuantity: aggMin,
		AggregateMaxQuantity: aggMax,
		Choices:              choices,
	}
}

func TestIsGroupValid_OptionalAlwaysValid(t *testing.T) {
	group := multiGroup(false, 1, nil, 0, 100, 200)

	assert.True(t, IsGroupValid(group, GroupSelection{}))
}

func TestIsGroupValid_RequiredMinimum(t *testing.T) {
	group := multiGroup(true, 2, nil, 0, 100, 200, 300)

	assert.False(t, IsGroupValid(group, GroupSelection{ChoiceIDs: []uint{1}}))
	assert.True(t, IsGroupValid(group, GroupSelection{ChoiceIDs: []uint{1, 2}}))
}

func TestIsGroupValid_QuantityAggregateBounds(t *testing.T) {
	group := quantityGroup(false, intPtr(3), intPtr(6),
		model.Choice{ID: 10, Name: "Rice", IsAvailable: true},
		model.Choice{ID: 11, Name: "Soup", IsAvailable: true},
	)

	assert.False(t, IsGroupValid(group, GroupSelection{Quantities: map[uint]int{10: 2}}))
	assert.True(t, IsGroupValid(group, GroupSelection{Quantities: map[uint]int{10: 2, 11: 1}}))
	assert.True(t, IsGroupValid(group, GroupSelection{Quantities: map[uint]int{10: 4, 11: 2}}))
	assert.False(t, IsGroupValid(group, GroupSelection{Quantities: map[uint]int{10: 4, 11: 3}}))
}

func TestIsGroupValid_RequiredQuantityDefaultsMinToOne(t *testing.T) {
	group := quantityGroup(true, nil, nil,
		model.Choice{ID: 10, Name: "Rice", IsAvailable: true},
	)

	assert.False(t, IsGroupValid(group, GroupSelection{Quantities: map[uint]int{}}))
	assert.True(t, IsGroupValid(group, GroupSelection{Quantities: map[uint]int{10: 1}}))
}

func TestToggleChoice_RefusesPastMax(t *testing.T) {
	group := multiGroup(false, 0, intPtr(2), 0, 100, 200, 300)
	gs := GroupSelection{ChoiceIDs: []uint{1, 2}}

	next := ToggleChoice(group, gs, 3)

	assert.Equal(t, gs.ChoiceIDs, next.ChoiceIDs)
}

func TestToggleChoice_RefusesBelowRequiredMin(t *testing.T) {
	group := multiGroup(true, 1, nil, 0, 100)
	gs := GroupSelection{ChoiceIDs: []uint{1}}

	next := ToggleChoice(group, gs, 1)

	assert.Equal(t, []uint{1}, next.ChoiceIDs)
}

func TestToggleChoice_SingleSelectReplaces(t *testing.T) {
	group := multiGroup(false, 0, nil, 0, 100, 200)
	group.Type = model.GroupSingleSelect
	gs := GroupSelection{ChoiceIDs: []uint{1}}

	next := ToggleChoice(group, gs, 2)

	assert.Equal(t, []uint{2}, next.ChoiceIDs)
}

func TestAdjustQuantity_RefusesPastAggregateMax(t *testing.T) {
	group := quantityGroup(false, intPtr(3), intPtr(6),
		model.Choice{ID: 10, Name: "Rice", IsAvailable: true},
		model.Choice{ID: 11, Name: "Soup", IsAvailable: true},
	)
	gs := GroupSelection{Quantities: map[uint]int{10: 4, 11: 2}}

	next := AdjustQuantity(group, gs, 11, 1)

	assert.Equal(t, gs.Quantities, next.Quantities)
}

func TestAdjustQuantity_RefusesPastChoiceMax(t *testing.T) {
	group := quantityGroup(false, nil, nil,
		model.Choice{ID: 10, Name: "Rice", IsAvailable: true, MaxQuantity: intPtr(2)},
	)
	gs := GroupSelection{Quantities: map[uint]int{10: 2}}

	next := AdjustQuantity(group, gs, 10, 1)

	assert.Equal(t, 2, next.Quantities[10])
}

func TestAdjustQuantity_ClampsToChoiceMin(t *testing.T) {
	group := quantityGroup(false, nil, nil,
		model.Choice{ID: 10, Name: "Rice", IsAvailable: true, MinQuantity: 1},
	)
	gs := GroupSelection{Quantities: map[uint]int{10: 1}}

	next := AdjustQuantity(group, gs, 10, -1)

	assert.Equal(t, 1, next.Quantities[10])
}

func TestGroupPrice_FreeAllowanceSkipsDiscounts(t *testing.T) {
	group := multiGroup(false, 0, nil, 1, 300, 500, -100)
	gs := GroupSelection{ChoiceIDs: []uint{1, 2, 3}}

	// The cheapest charging unit (300) is freed; the -100 discount
	// still applies: 500 - 100 = 400.
	assert.Equal(t, int64(400), GroupPrice(group, gs))
}

func TestGroupPrice_AllowanceLargerThanSelection(t *testing.T) {
	group := multiGroup(false, 0, nil, 5, 300, 500)
	gs := GroupSelection{ChoiceIDs: []uint{1, 2}}

	assert.Equal(t, int64(0), GroupPrice(group, gs))
}

func TestGroupPrice_QuantitySelectUnits(t *testing.T) {
	group := quantityGroup(false, nil, nil,
		model.Choice{ID: 10, Name: "Rice", IsAvailable: true, PriceModifier: 1000},
		model.Choice{ID: 11, Name: "Soup", IsAvailable: true, PriceModifier: 1500},
	)
	group.NumFreeOptions = 1
	gs := GroupSelection{Quantities: map[uint]int{10: 2, 11: 1}}

	// Units 1000, 1000, 1500; cheapest one free.
	assert.Equal(t, int64(1000+1500), GroupPrice(group, gs))
}

func TestItemTotal(t *testing.T) {
	group := multiGroup(false, 0, nil, 0, 300, 500)
	gs := GroupSelection{ChoiceIDs: []uint{1, 2}}

	total := ItemTotal(5000, []model.OptionGroup{group}, Selection{1: gs}, 2)

	assert.Equal(t, int64((5000+800)*2), total)
}

func TestDefaultSelection_SeedsDefaults(t *testing.T) {
	group := multiGroup(false, 0, nil, 0, 100, 200)
	group.Choices[1].IsDefault = true

	sel := DefaultSelection([]model.OptionGroup{group})

	assert.Equal(t, []uint{2}, sel[group.ID].ChoiceIDs)
}

func TestDefaultSelection_RequiredSingleFallsBackToFirstAvailable(t *testing.T) {
	group := multiGroup(true, 1, nil, 0, 100, 200)
	group.Type = model.GroupSingleSelect
	group.Choices[0].IsAvailable = false

	sel := DefaultSelection([]model.OptionGroup{group})

	assert.Equal(t, []uint{2}, sel[group.ID].ChoiceIDs)
}

func TestDefaultSelection_QuantityDefaultsStartAtOne(t *testing.T) {
	group := quantityGroup(false, nil, nil,
		model.Choice{ID: 10, Name: "Rice", IsAvailable: true, IsDefault: true},
		model.Choice{ID: 11, Name: "Soup", IsAvailable: true, MinQuantity: 0},
	)

	sel := DefaultSelection([]model.OptionGroup{group})

	assert.Equal(t, 1, sel[group.ID].Quantities[10])
	assert.Equal(t, 0, sel[group.ID].Quantities[11])
}

func TestFlatten_AppliesFreeAllowance(t *testing.T) {
	group := multiGroup(false, 0, nil, 1, 300, 500, -100)
	gs := GroupSelection{ChoiceIDs: []uint{1, 2, 3}}

	flat := Flatten([]model.OptionGroup{group}, Selection{1: gs})

	require.Len(t, flat, 1)
	require.Len(t, flat[0].Choices, 3)

	var sum int64
	for _, choice := range flat[0].Choices {
		sum += choice.Price
	}
	assert.Equal(t, int64(400), sum)
	// The cheapest charging unit (300) was freed; the discount survives.
	assert.Equal(t, int64(0), flat[0].Choices[0].Price)
	assert.Equal(t, int64(-100), flat[0].Choices[2].Price)
}

func TestFlatten_QuantitySelectRepeatsUnits(t *testing.T) {
	group := quantityGroup(false, nil, nil,
		model.Choice{ID: 10, Name: "Rice", IsAvailable: true, PriceModifier: 1000},
	)
	gs := GroupSelection{Quantities: map[uint]int{10: 3}}

	flat := Flatten([]model.OptionGroup{group}, Selection{2: gs})

	require.Len(t, flat, 1)
	assert.Len(t, flat[0].Choices, 3)
}
