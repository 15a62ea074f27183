package repository

import (
	"github.com/tabletap/tabletap-backend/internal/app/model"
	"github.com/tabletap/tabletap-backend/pkg/logger"
	"gorm.io/gorm"
)

type MenuRepository interface {
	Create(item *model.MenuItem) error
	FindByID(id uint) (*model.MenuItem, error)
	FindByStoreID(storeID uint) ([]model.MenuItem, error)
	FindByCategoryID(categoryID uint) ([]model.MenuItem, error)
	Update(item *model.MenuItem) error
	Delete(id uint) error
}

type menuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

// withOptions preloads option groups and their choices in display order.
func withOptions(db *gorm.DB) *gorm.DB {
	return db.
		Preload("OptionGroups", func(db *gorm.DB) *gorm.DB {
			return db.Order("option_groups.sort_order asc, option_groups.id asc")
		}).
		Preload("OptionGroups.Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("choices.sort_order asc, choices.id asc")
		})
}

func (r *menuRepository) Create(item *model.MenuItem) error {
	logger.Debug("Creating menu item in database", map[string]interface{}{
		"store_id": item.StoreID,
		"name":     item.Name,
	})

	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to create menu item in database", err, map[string]interface{}{
			"store_id": item.StoreID,
			"name":     item.Name,
		})
		return err
	}
	return nil
}

func (r *menuRepository) FindByID(id uint) (*model.MenuItem, error) {
	var item model.MenuItem
	if err := withOptions(r.db).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *menuRepository) FindByStoreID(storeID uint) ([]model.MenuItem, error) {
	var items []model.MenuItem
	err := withOptions(r.db).
		Where("store_id = ?", storeID).
		Order("sort_order asc, id asc").
		Find(&items).Error
	if err != nil {
		logger.Error("Failed to find menu items by store in database", err, map[string]interface{}{
			"store_id": storeID,
		})
		return nil, err
	}
	return items, nil
}

func (r *menuRepository) FindByCategoryID(categoryID uint) ([]model.MenuItem, error) {
	var items []model.MenuItem
	err := withOptions(r.db).
		Where("category_id = ?", categoryID).
		Order("sort_order asc, id asc").
		Find(&items).Error
	if err != nil {
		logger.Error("Failed to find menu items by category in database", err, map[string]interface{}{
			"category_id": categoryID,
		})
		return nil, err
	}
	return items, nil
}

func (r *menuRepository) Update(item *model.MenuItem) error {
	if err := r.db.Save(item).Error; err != nil {
		logger.Error("Failed to update menu item in database", err, map[string]interface{}{
			"menu_item_id": item.ID,
		})
		return err
	}
	return nil
}

func (r *menuRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.MenuItem{}, id).Error; err != nil {
		logger.Error("Failed to delete menu item from database", err, map[string]interface{}{
			"menu_item_id": id,
		})
		return err
	}
	return nil
}
