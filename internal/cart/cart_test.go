package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions(choiceIDs ...string) []OptionSelection {
	opt := OptionSelection{GroupID: "1", GroupName: "Toppings"}
	for _, id := range choiceIDs {
		opt.Choices = append(opt.Choices, ChoiceSelection{ID: id, Name: "choice-" + id, Price: 100})
	}
	return []OptionSelection{opt}
}

func testItem(itemID string, quantity int, options []OptionSelection) Item {
	return Item{
		ItemID:          itemID,
		Name:            "Bulgogi Burger",
		BasePrice:       5000,
		Quantity:        quantity,
		SelectedOptions: options,
		StoreID:         "1",
		StoreSlug:       "han-river-grill",
	}
}

func TestGenerateItemID_Deterministic(t *testing.T) {
	a := GenerateItemID("42", testOptions("7", "3", "11"))
	b := GenerateItemID("42", testOptions("11", "7", "3"))
	c := GenerateItemID("42", testOptions("3", "11", "7"))

	assert.Equal(t, a, b)
	assert.Equal(t, b, c)
	assert.Contains(t, a, "cart-42-")
}

func TestGenerateItemID_DistinguishesSelections(t *testing.T) {
	a := GenerateItemID("42", testOptions("7", "3"))
	b := GenerateItemID("42", testOptions("7", "3", "11"))
	c := GenerateItemID("43", testOptions("7", "3"))

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestAddItem_NewLine(t *testing.T) {
	c := &Cart{}

	c.AddItem(testItem("42", 2, testOptions("7")))

	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.Equal(t, int64((5000+100)*2), c.Items[0].TotalPrice)
	assert.Equal(t, "han-river-grill", c.StoreSlug)
}

func TestAddItem_MergesSameConfiguration(t *testing.T) {
	c := &Cart{}

	c.AddItem(testItem("42", 2, testOptions("7", "3")))
	c.AddItem(testItem("42", 3, testOptions("3", "7")))

	require.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.Items[0].Quantity)
	assert.Equal(t, int64((5000+200)*5), c.Items[0].TotalPrice)
}

func TestAddItem_DifferentConfigurationStaysSeparate(t *testing.T) {
	c := &Cart{}

	c.AddItem(testItem("42", 1, testOptions("7")))
	c.AddItem(testItem("42", 1, testOptions("3")))

	assert.Len(t, c.Items, 2)
}

func TestUpdateQuantity(t *testing.T) {
	c := &Cart{}
	c.AddItem(testItem("42", 2, testOptions("7")))
	id := c.Items[0].ID

	c.UpdateQuantity(id, 4)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 4, c.Items[0].Quantity)
	assert.Equal(t, int64((5000+100)*4), c.Items[0].TotalPrice)
}

func TestUpdateQuantity_BelowOneRemoves(t *testing.T) {
	c := &Cart{}
	c.AddItem(testItem("42", 2, testOptions("7")))
	id := c.Items[0].ID

	c.UpdateQuantity(id, 0)

	assert.Empty(t, c.Items)
}

func TestRemoveItem_UnknownIDNoop(t *testing.T) {
	c := &Cart{}
	c.AddItem(testItem("42", 1, nil))

	c.RemoveItem("cart-99-zzz")

	assert.Len(t, c.Items, 1)
}

func TestSetStore_SameSlugUnchanged(t *testing.T) {
	c := &Cart{}
	c.AddItem(testItem("42", 1, nil))

	cleared := c.SetStore("han-river-grill")

	assert.False(t, cleared)
	assert.Len(t, c.Items, 1)
}

func TestSetStore_DifferentSlugClears(t *testing.T) {
	c := &Cart{}
	c.AddItem(testItem("42", 1, nil))

	cleared := c.SetStore("busan-noodle-bar")

	assert.True(t, cleared)
	assert.Empty(t, c.Items)
	assert.Equal(t, "busan-noodle-bar", c.StoreSlug)
}

func TestDerivedReads(t *testing.T) {
	c := &Cart{}
	c.AddItem(testItem("42", 2, testOptions("7")))
	c.AddItem(testItem("43", 3, nil))

	assert.Equal(t, 5, c.ItemCount())
	assert.Equal(t, int64((5000+100)*2+5000*3), c.Subtotal())
}

func TestClear(t *testing.T) {
	c := &Cart{}
	c.AddItem(testItem("42", 1, nil))

	c.Clear()

	assert.Empty(t, c.Items)
	assert.Equal(t, "", c.StoreSlug)
}

func TestSanitize_DropsMalformedLines(t *testing.T) {
	c := &Cart{
		StoreSlug: "han-river-grill",
		Items: []Item{
			{ID: "cart-1-a", ItemID: "1", Name: "Kimchi Stew", BasePrice: 9000, Quantity: 1},
			{ID: "", ItemID: "2", Name: "broken", BasePrice: 100, Quantity: 1},
			{ID: "cart-3-c", ItemID: "3", Name: "zero qty", BasePrice: 100, Quantity: 0},
			{ID: "cart-4-d", ItemID: "4", Name: "", BasePrice: 100, Quantity: 1},
		},
	}

	c.Sanitize()

	require.Len(t, c.Items, 1)
	assert.Equal(t, "cart-1-a", c.Items[0].ID)
}

func TestSanitize_RecomputesStaleTotals(t *testing.T) {
	c := &Cart{
		Items: []Item{
			{
				ID: "cart-1-a", ItemID: "1", Name: "Kimchi Stew",
				BasePrice: 9000, Quantity: 2,
				SelectedOptions: testOptions("7"),
				TotalPrice:      1, // stale
			},
		},
	}

	c.Sanitize()

	assert.Equal(t, int64((9000+100)*2), c.Items[0].TotalPrice)
}
