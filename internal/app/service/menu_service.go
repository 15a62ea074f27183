package service

import (
	"errors"

	"github.com/tabletap/tabletap-backend/internal/app/model"
	"github.com/tabletap/tabletap-backend/internal/app/repository"
	"github.com/tabletap/tabletap-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrMenuItemNotFound    = errors.New("menu item not found")
	ErrMenuItemUnavailable = errors.New("menu item unavailable")
	ErrInvalidPrice        = errors.New("invalid base price")
)

type MenuItemInput struct {
	CategoryID  uint
	Name        string
	Description string
	BasePrice   int64
	ImageURL    string
	IsAvailable *bool
	SortOrder   int
}

// MenuCategory is one section of the storefront menu tree.
type MenuCategory struct {
	model.Category
	Items []model.MenuItem `json:"items"`
}

// Menu is the customer-facing menu of a store.
type Menu struct {
	Store      StoreStatus    `json:"store"`
	Categories []MenuCategory `json:"categories"`
}

type MenuService interface {
	CreateMenuItem(ownerID, storeID uint, input MenuItemInput) (*model.MenuItem, error)
	UpdateMenuItem(ownerID, itemID uint, input MenuItemInput) (*model.MenuItem, error)
	DeleteMenuItem(ownerID, itemID uint) error
	ListMenuItems(ownerID, storeID uint) ([]model.MenuItem, error)
	GetMenuItem(itemID uint) (*model.MenuItem, error)

	GetStoreMenu(slug string) (*Menu, error)
}

type menuService struct {
	menuRepo     repository.MenuRepository
	categoryRepo repository.CategoryRepository
	storeRepo    repository.StoreRepository
	storeService StoreService
}

func NewMenuService(
	menuRepo repository.MenuRepository,
	categoryRepo repository.CategoryRepository,
	storeRepo repository.StoreRepository,
	storeService StoreService,
) MenuService {
	return &menuService{
		menuRepo:     menuRepo,
		categoryRepo: categoryRepo,
		storeRepo:    storeRepo,
		storeService: storeService,
	}
}

func (s *menuService) CreateMenuItem(ownerID, storeID uint, input MenuItemInput) (*model.MenuItem, error) {
	if _, err := checkStoreOwner(s.storeRepo, ownerID, storeID); err != nil {
		return nil, err
	}
	if input.BasePrice < 0 {
		return nil, ErrInvalidPrice
	}

	category, err := s.categoryRepo.FindByID(input.CategoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	if category.StoreID != storeID {
		return nil, ErrCategoryNotFound
	}

	item := &model.MenuItem{
		StoreID:     storeID,
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Description: input.Description,
		BasePrice:   input.BasePrice,
		ImageURL:    input.ImageURL,
		IsAvailable: true,
		SortOrder:   input.SortOrder,
	}
	if input.IsAvailable != nil {
		item.IsAvailable = *input.IsAvailable
	}

	if err := s.menuRepo.Create(item); err != nil {
		return nil, err
	}

	logger.Info("Menu item created", map[string]interface{}{
		"menu_item_id": item.ID,
		"store_id":     storeID,
	})
	return item, nil
}

func (s *menuService) ownedMenuItem(ownerID, itemID uint) (*model.MenuItem, error) {
	item, err := s.menuRepo.FindByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, err
	}
	if _, err := checkStoreOwner(s.storeRepo, ownerID, item.StoreID); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *menuService) UpdateMenuItem(ownerID, itemID uint, input MenuItemInput) (*model.MenuItem, error) {
	item, err := s.ownedMenuItem(ownerID, itemID)
	if err != nil {
		return nil, err
	}
	if input.BasePrice < 0 {
		return nil, ErrInvalidPrice
	}

	if input.CategoryID != 0 && input.CategoryID != item.CategoryID {
		category, err := s.categoryRepo.FindByID(input.CategoryID)
		if err != nil || category.StoreID != item.StoreID {
			return nil, ErrCategoryNotFound
		}
		item.CategoryID = input.CategoryID
	}
	if input.Name != "" {
		item.Name = input.Name
	}
	item.Description = input.Description
	item.BasePrice = input.BasePrice
	item.ImageURL = input.ImageURL
	item.SortOrder = input.SortOrder
	if input.IsAvailable != nil {
		item.IsAvailable = *input.IsAvailable
	}

	if err := s.menuRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *menuService) DeleteMenuItem(ownerID, itemID uint) error {
	if _, err := s.ownedMenuItem(ownerID, itemID); err != nil {
		return err
	}
	if err := s.menuRepo.Delete(itemID); err != nil {
		return err
	}
	logger.Info("Menu item deleted", map[string]interface{}{
		"menu_item_id": itemID,
	})
	return nil
}

func (s *menuService) ListMenuItems(ownerID, storeID uint) ([]model.MenuItem, error) {
	if _, err := checkStoreOwner(s.storeRepo, ownerID, storeID); err != nil {
		return nil, err
	}
	return s.menuRepo.FindByStoreID(storeID)
}

func (s *menuService) GetMenuItem(itemID uint) (*model.MenuItem, error) {
	item, err := s.menuRepo.FindByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, err
	}
	return item, nil
}

// GetStoreMenu builds the storefront menu tree: active categories in
// display order, each with its available items and their option groups.
func (s *menuService) GetStoreMenu(slug string) (*Menu, error) {
	status, err := s.storeService.GetStoreBySlug(slug)
	if err != nil {
		return nil, err
	}

	categories, err := s.categoryRepo.FindByStoreID(status.ID)
	if err != nil {
		return nil, err
	}
	items, err := s.menuRepo.FindByStoreID(status.ID)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[uint][]model.MenuItem)
	for _, item := range items {
		if !item.IsAvailable {
			continue
		}
		byCategory[item.CategoryID] = append(byCategory[item.CategoryID], item)
	}

	menu := &Menu{Store: *status}
	for _, category := range categories {
		if !category.IsActive {
			continue
		}
		menu.Categories = append(menu.Categories, MenuCategory{
			Category: category,
			Items:    byCategory[category.ID],
		})
	}
	return menu, nil
}
