package cart

import (
	"fmt"
	"sort"
	"strconv"
)

// ChoiceSelection is a single configured choice carried by a cart line.
// Price is the effective per-unit price after any free-option allowance
// has been applied upstream by the pricing package.
type ChoiceSelection struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// OptionSelection groups the configured choices of one option group.
type OptionSelection struct {
	GroupID   string            `json:"group_id"`
	GroupName string            `json:"group_name"`
	Choices   []ChoiceSelection `json:"choices"`
}

// Item is one cart line. TotalPrice is derived and recomputed on every
// mutation, never patched incrementally.
type Item struct {
	ID              string            `json:"id"`
	ItemID          string            `json:"item_id"`
	Name            string            `json:"name"`
	ImageURL        string            `json:"image_url,omitempty"`
	BasePrice       int64             `json:"base_price"`
	Quantity        int               `json:"quantity"`
	SelectedOptions []OptionSelection `json:"selected_options"`
	TotalPrice      int64             `json:"total_price"`
	StoreID         string            `json:"store_id"`
	StoreSlug       string            `json:"store_slug"`
}

// Cart holds cart lines in insertion order plus the slug of the store
// the cart belongs to. All items in a non-empty cart share that slug.
type Cart struct {
	Items     []Item `json:"items"`
	StoreSlug string `json:"store_slug"`
}

// GenerateItemID derives a deterministic cart line id from the menu item
// id and the set of selected choice ids. The same item with the same
// choice set produces the same id regardless of selection order, so
// repeated adds of one configuration merge instead of duplicating.
func GenerateItemID(itemID string, options []OptionSelection) string {
	var choiceIDs []string
	for _, opt := range options {
		for _, choice := range opt.Choices {
			choiceIDs = append(choiceIDs, choice.ID)
		}
	}
	sort.Strings(choiceIDs)

	key := itemID
	for _, id := range choiceIDs {
		key += ":" + id
	}

	var hash int32
	for _, ch := range key {
		hash = (hash << 5) - hash + int32(ch)
	}

	abs := int64(hash)
	if abs < 0 {
		abs = -abs
	}
	return fmt.Sprintf("cart-%s-%s", itemID, strconv.FormatInt(abs, 36))
}

// optionsTotal sums the effective per-unit choice prices of a line.
func optionsTotal(options []OptionSelection) int64 {
	var total int64
	for _, opt := range options {
		for _, choice := range opt.Choices {
			total += choice.Price
		}
	}
	return total
}

// lineTotal recomputes the derived total for a line from scratch.
func lineTotal(item Item) int64 {
	return (item.BasePrice + optionsTotal(item.SelectedOptions)) * int64(item.Quantity)
}

// AddItem inserts a candidate line, merging by summing quantities when a
// line with the same derived id already exists. The cart adopts the
// candidate's store slug as its tag.
func (c *Cart) AddItem(candidate Item) {
	candidate.ID = GenerateItemID(candidate.ItemID, candidate.SelectedOptions)

	for i, existing := range c.Items {
		if existing.ID == candidate.ID {
			candidate.Quantity += existing.Quantity
			candidate.TotalPrice = lineTotal(candidate)
			c.Items[i] = candidate
			c.StoreSlug = candidate.StoreSlug
			return
		}
	}

	candidate.TotalPrice = lineTotal(candidate)
	c.Items = append(c.Items, candidate)
	c.StoreSlug = candidate.StoreSlug
}

// UpdateQuantity sets the quantity of a line and recomputes its total.
// A quantity below 1 removes the line entirely.
func (c *Cart) UpdateQuantity(cartItemID string, quantity int) {
	if quantity < 1 {
		c.RemoveItem(cartItemID)
		return
	}
	for i := range c.Items {
		if c.Items[i].ID == cartItemID {
			c.Items[i].Quantity = quantity
			c.Items[i].TotalPrice = lineTotal(c.Items[i])
			return
		}
	}
}

// RemoveItem deletes a line by id. Unknown ids are a no-op.
func (c *Cart) RemoveItem(cartItemID string) {
	for i := range c.Items {
		if c.Items[i].ID == cartItemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart and drops the store tag.
func (c *Cart) Clear() {
	c.Items = nil
	c.StoreSlug = ""
}

// SetStore switches the cart to a store. Setting the current slug again
// is a no-op returning false; any other slug wipes all items first and
// returns true. This is the single place that prevents mixing items
// from different stores in one cart.
func (c *Cart) SetStore(slug string) bool {
	if c.StoreSlug == slug {
		return false
	}
	c.Items = nil
	c.StoreSlug = slug
	return true
}

// ItemCount is the total unit count across all lines.
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Subtotal is the sum of line totals.
func (c *Cart) Subtotal() int64 {
	var subtotal int64
	for _, item := range c.Items {
		subtotal += item.TotalPrice
	}
	return subtotal
}

// Sanitize drops persisted lines missing required scalar fields and
// recomputes every derived total, so a corrupt or stale snapshot can
// never poison the session. Invalid entries are discarded silently.
func (c *Cart) Sanitize() {
	valid := c.Items[:0]
	for _, item := range c.Items {
		if item.ID == "" || item.ItemID == "" || item.Name == "" {
			continue
		}
		if item.Quantity < 1 || item.BasePrice < 0 {
			continue
		}
		item.TotalPrice = lineTotal(item)
		valid = append(valid, item)
	}
	c.Items = valid
	if len(c.Items) == 0 && c.StoreSlug == "" {
		c.Items = nil
	}
}
