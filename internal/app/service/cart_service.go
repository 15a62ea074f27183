package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/tabletap/tabletap-backend/internal/app/model"
	"github.com/tabletap/tabletap-backend/internal/app/repository"
	"github.com/tabletap/tabletap-backend/internal/cart"
	"github.com/tabletap/tabletap-backend/internal/pricing"
	"github.com/tabletap/tabletap-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrInvalidSelection = errors.New("invalid option selection")

type ChoiceQuantityInput struct {
	ChoiceID uint `json:"choice_id" binding:"required"`
	Quantity int  `json:"quantity"`
}

type SelectionInput struct {
	GroupID    uint                  `json:"group_id" binding:"required"`
	ChoiceIDs  []uint                `json:"choice_ids"`
	Quantities []ChoiceQuantityInput `json:"quantities"`
}

type AddItemInput struct {
	MenuItemID uint             `json:"menu_item_id" binding:"required"`
	Quantity   int              `json:"quantity" binding:"required,gt=0"`
	Selections []SelectionInput `json:"selections"`
}

// CartView is the storefront cart response. Count and subtotal are
// derived from the item list on every read.
type CartView struct {
	Items     []cart.Item `json:"items"`
	StoreSlug string      `json:"store_slug"`
	ItemCount int         `json:"item_count"`
	Subtotal  int64       `json:"subtotal"`
}

// Quote is the computed price of an item configuration before it is
// added to the cart.
type Quote struct {
	IsValid    bool  `json:"is_valid"`
	UnitPrice  int64 `json:"unit_price"`
	TotalPrice int64 `json:"total_price"`
}

type CartService interface {
	GetCart(ctx context.Context, sessionID string) (*CartView, error)
	AddItem(ctx context.Context, sessionID string, input AddItemInput) (*CartView, error)
	UpdateQuantity(ctx context.Context, sessionID, cartItemID string, quantity int) (*CartView, error)
	RemoveItem(ctx context.Context, sessionID, cartItemID string) (*CartView, error)
	ClearCart(ctx context.Context, sessionID string) (*CartView, error)
	SetStore(ctx context.Context, sessionID, slug string) (bool, *CartView, error)
	QuoteItem(input AddItemInput) (*Quote, error)
}

type cartService struct {
	cartRepo  repository.CartRepository
	menuRepo  repository.MenuRepository
	storeRepo repository.StoreRepository
}

func NewCartService(
	cartRepo repository.CartRepository,
	menuRepo repository.MenuRepository,
	storeRepo repository.StoreRepository,
) CartService {
	return &cartService{
		cartRepo:  cartRepo,
		menuRepo:  menuRepo,
		storeRepo: storeRepo,
	}
}

func view(c *cart.Cart) *CartView {
	return &CartView{
		Items:     c.Items,
		StoreSlug: c.StoreSlug,
		ItemCount: c.ItemCount(),
		Subtotal:  c.Subtotal(),
	}
}

// persist writes the cart back to storage. Failures are logged and
// swallowed so a storage hiccup never fails the request; the in-memory
// state the response was computed from stays authoritative.
func (s *cartService) persist(ctx context.Context, sessionID string, c *cart.Cart) {
	if err := s.cartRepo.Save(ctx, sessionID, c); err != nil {
		logger.Warn("Cart save failed, serving in-memory state", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}
}

func (s *cartService) GetCart(ctx context.Context, sessionID string) (*CartView, error) {
	c, err := s.cartRepo.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return view(c), nil
}

// buildSelection converts the request payload into selection state,
// rejecting references to unknown groups or choices. Quantities are
// clamped to each choice's own bounds before validation.
func buildSelection(groups []model.OptionGroup, inputs []SelectionInput) (pricing.Selection, error) {
	byGroup := make(map[uint]*model.OptionGroup, len(groups))
	for i := range groups {
		byGroup[groups[i].ID] = &groups[i]
	}

	sel := make(pricing.Selection, len(groups))
	for _, in := range inputs {
		group, ok := byGroup[in.GroupID]
		if !ok {
			return nil, ErrInvalidSelection
		}

		gs := pricing.GroupSelection{}
		if group.Type == model.GroupQuantitySelect {
			gs.Quantities = make(map[uint]int, len(in.Quantities))
			for _, q := range in.Quantities {
				if _, dup := gs.Quantities[q.ChoiceID]; dup {
					return nil, ErrInvalidSelection
				}
				choice := findGroupChoice(group, q.ChoiceID)
				if choice == nil || !choice.IsAvailable {
					return nil, ErrInvalidSelection
				}
				qty := q.Quantity
				if qty < choice.MinQuantity {
					qty = choice.MinQuantity
				}
				if choice.MaxQuantity != nil && qty > *choice.MaxQuantity {
					qty = *choice.MaxQuantity
				}
				gs.Quantities[q.ChoiceID] = qty
			}
		} else {
			// Choice ids form a set; a repeated id would satisfy the
			// minimum with one choice and be priced twice.
			seen := make(map[uint]bool, len(in.ChoiceIDs))
			for _, id := range in.ChoiceIDs {
				if seen[id] {
					return nil, ErrInvalidSelection
				}
				seen[id] = true
				choice := findGroupChoice(group, id)
				if choice == nil || !choice.IsAvailable {
					return nil, ErrInvalidSelection
				}
				gs.ChoiceIDs = append(gs.ChoiceIDs, id)
			}
			if group.Type == model.GroupSingleSelect && len(gs.ChoiceIDs) > 1 {
				return nil, ErrInvalidSelection
			}
			if group.MaxSelections != nil && len(gs.ChoiceIDs) > *group.MaxSelections {
				return nil, ErrInvalidSelection
			}
		}
		sel[group.ID] = gs
	}
	return sel, nil
}

func findGroupChoice(group *model.OptionGroup, choiceID uint) *model.Choice {
	for i := range group.Choices {
		if group.Choices[i].ID == choiceID {
			return &group.Choices[i]
		}
	}
	return nil
}

func (s *cartService) configureItem(input AddItemInput) (*model.MenuItem, *model.Store, []cart.OptionSelection, error) {
	item, err := s.menuRepo.FindByID(input.MenuItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, ErrMenuItemNotFound
		}
		return nil, nil, nil, err
	}
	if !item.IsAvailable {
		return nil, nil, nil, ErrMenuItemUnavailable
	}

	store, err := s.storeRepo.FindByID(item.StoreID)
	if err != nil {
		return nil, nil, nil, err
	}

	sel, err := buildSelection(item.OptionGroups, input.Selections)
	if err != nil {
		return nil, nil, nil, err
	}
	if !pricing.IsSelectionValid(item.OptionGroups, sel) {
		return nil, nil, nil, ErrInvalidSelection
	}

	return item, store, pricing.Flatten(item.OptionGroups, sel), nil
}

func (s *cartService) AddItem(ctx context.Context, sessionID string, input AddItemInput) (*CartView, error) {
	logger.Info("Adding item to cart", map[string]interface{}{
		"session_id":   sessionID,
		"menu_item_id": input.MenuItemID,
		"quantity":     input.Quantity,
	})

	item, store, flattened, err := s.configureItem(input)
	if err != nil {
		return nil, err
	}

	c, err := s.cartRepo.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// Adding from a different store switches the cart to that store,
	// wiping any lines from the previous one.
	dropped := len(c.Items)
	if c.SetStore(store.Slug) && dropped > 0 {
		logger.Info("Cart cleared on store switch", map[string]interface{}{
			"session_id":    sessionID,
			"store_slug":    store.Slug,
			"dropped_lines": dropped,
		})
	}

	c.AddItem(cart.Item{
		ItemID:          strconv.FormatUint(uint64(item.ID), 10),
		Name:            item.Name,
		ImageURL:        item.ImageURL,
		BasePrice:       item.BasePrice,
		Quantity:        input.Quantity,
		SelectedOptions: flattened,
		StoreID:         strconv.FormatUint(uint64(store.ID), 10),
		StoreSlug:       store.Slug,
	})

	s.persist(ctx, sessionID, c)
	return view(c), nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, sessionID, cartItemID string, quantity int) (*CartView, error) {
	c, err := s.cartRepo.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	c.UpdateQuantity(cartItemID, quantity)

	s.persist(ctx, sessionID, c)
	return view(c), nil
}

func (s *cartService) RemoveItem(ctx context.Context, sessionID, cartItemID string) (*CartView, error) {
	c, err := s.cartRepo.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	c.RemoveItem(cartItemID)

	s.persist(ctx, sessionID, c)
	return view(c), nil
}

func (s *cartService) ClearCart(ctx context.Context, sessionID string) (*CartView, error) {
	c, err := s.cartRepo.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	c.Clear()

	s.persist(ctx, sessionID, c)
	return view(c), nil
}

func (s *cartService) SetStore(ctx context.Context, sessionID, slug string) (bool, *CartView, error) {
	store, err := s.storeRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil, ErrStoreNotFound
		}
		return false, nil, err
	}

	c, err := s.cartRepo.Load(ctx, sessionID)
	if err != nil {
		return false, nil, err
	}

	cleared := c.SetStore(store.Slug)
	if cleared {
		logger.Info("Cart switched to store", map[string]interface{}{
			"session_id": sessionID,
			"store_slug": store.Slug,
		})
		s.persist(ctx, sessionID, c)
	}
	return cleared, view(c), nil
}

// QuoteItem validates a configuration and computes its price without
// touching the cart. Used by the storefront while the customer is
// still configuring an item.
func (s *cartService) QuoteItem(input AddItemInput) (*Quote, error) {
	item, err := s.menuRepo.FindByID(input.MenuItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, err
	}
	if !item.IsAvailable {
		return nil, ErrMenuItemUnavailable
	}

	sel, err := buildSelection(item.OptionGroups, input.Selections)
	if err != nil {
		return &Quote{IsValid: false}, nil
	}
	if !pricing.IsSelectionValid(item.OptionGroups, sel) {
		return &Quote{IsValid: false}, nil
	}

	unit := pricing.ItemTotal(item.BasePrice, item.OptionGroups, sel, 1)
	return &Quote{
		IsValid:    true,
		UnitPrice:  unit,
		TotalPrice: unit * int64(input.Quantity),
	}, nil
}
