package repository

import (
	"github.com/tabletap/tabletap-backend/internal/app/model"
	"github.com/tabletap/tabletap-backend/pkg/logger"
	"gorm.io/gorm"
)

type OptionRepository interface {
	CreateGroup(group *model.OptionGroup) error
	FindGroupByID(id uint) (*model.OptionGroup, error)
	FindGroupsByMenuItemID(menuItemID uint) ([]model.OptionGroup, error)
	UpdateGroup(group *model.OptionGroup) error
	DeleteGroup(id uint) error

	CreateChoice(choice *model.Choice) error
	FindChoiceByID(id uint) (*model.Choice, error)
	UpdateChoice(choice *model.Choice) error
	DeleteChoice(id uint) error
}

type optionRepository struct {
	db *gorm.DB
}

func NewOptionRepository(db *gorm.DB) OptionRepository {
	return &optionRepository{db: db}
}

func (r *optionRepository) CreateGroup(group *model.OptionGroup) error {
	if err := r.db.Create(group).Error; err != nil {
		logger.Error("Failed to create option group in database", err, map[string]interface{}{
			"menu_item_id": group.MenuItemID,
			"name":         group.Name,
		})
		return err
	}
	return nil
}

func (r *optionRepository) FindGroupByID(id uint) (*model.OptionGroup, error) {
	var group model.OptionGroup
	err := r.db.
		Preload("Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("choices.sort_order asc, choices.id asc")
		}).
		First(&group, id).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *optionRepository) FindGroupsByMenuItemID(menuItemID uint) ([]model.OptionGroup, error) {
	var groups []model.OptionGroup
	err := r.db.
		Preload("Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("choices.sort_order asc, choices.id asc")
		}).
		Where("menu_item_id = ?", menuItemID).
		Order("sort_order asc, id asc").
		Find(&groups).Error
	if err != nil {
		logger.Error("Failed to find option groups by menu item in database", err, map[string]interface{}{
			"menu_item_id": menuItemID,
		})
		return nil, err
	}
	return groups, nil
}

func (r *optionRepository) UpdateGroup(group *model.OptionGroup) error {
	if err := r.db.Save(group).Error; err != nil {
		logger.Error("Failed to update option group in database", err, map[string]interface{}{
			"option_group_id": group.ID,
		})
		return err
	}
	return nil
}

func (r *optionRepository) DeleteGroup(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("option_group_id = ?", id).Delete(&model.Choice{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.OptionGroup{}, id).Error
	})
}

func (r *optionRepository) CreateChoice(choice *model.Choice) error {
	if err := r.db.Create(choice).Error; err != nil {
		logger.Error("Failed to create choice in database", err, map[string]interface{}{
			"option_group_id": choice.OptionGroupID,
			"name":            choice.Name,
		})
		return err
	}
	return nil
}

func (r *optionRepository) FindChoiceByID(id uint) (*model.Choice, error) {
	var choice model.Choice
	if err := r.db.First(&choice, id).Error; err != nil {
		return nil, err
	}
	return &choice, nil
}

func (r *optionRepository) UpdateChoice(choice *model.Choice) error {
	if err := r.db.Save(choice).Error; err != nil {
		logger.Error("Failed to update choice in database", err, map[string]interface{}{
			"choice_id": choice.ID,
		})
		return err
	}
	return nil
}

func (r *optionRepository) DeleteChoice(id uint) error {
	if err := r.db.Delete(&model.Choice{}, id).Error; err != nil {
		logger.Error("Failed to delete choice from database", err, map[string]interface{}{
			"choice_id": id,
		})
		return err
	}
	return nil
}
