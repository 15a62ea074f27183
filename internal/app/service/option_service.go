package service

import (
	"errors"

	"github.com/tabletap/tabletap-backend/internal/app/model"
	"github.com/tabletap/tabletap-backend/internal/app/repository"
	"github.com/tabletap/tabletap-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrOptionGroupNotFound = errors.New("option group not found")
	ErrChoiceNotFound      = errors.New("choice not found")
	ErrInvalidOptionBounds = errors.New("invalid option bounds")
)

type OptionGroupInput struct {
	Name                 string
	Type                 model.OptionGroupType
	IsRequired           bool
	MinSelections        int
	MaxSelections        *int
	NumFreeOptions       int
	AggregateMinQuantity *int
	AggregateMaxQuantity *int
	SortOrder            int
}

type ChoiceInput struct {
	Name          string
	PriceModifier int64
	IsDefault     bool
	IsAvailable   *bool
	MinQuantity   int
	MaxQuantity   *int
	SortOrder     int
}

type OptionService interface {
	CreateGroup(ownerID, menuItemID uint, input OptionGroupInput) (*model.OptionGroup, error)
	UpdateGroup(ownerID, groupID uint, input OptionGroupInput) (*model.OptionGroup, error)
	DeleteGroup(ownerID, groupID uint) error
	ListGroups(ownerID, menuItemID uint) ([]model.OptionGroup, error)

	CreateChoice(ownerID, groupID uint, input ChoiceInput) (*model.Choice, error)
	UpdateChoice(ownerID, choiceID uint, input ChoiceInput) (*model.Choice, error)
	DeleteChoice(ownerID, choiceID uint) error
}

type optionService struct {
	optionRepo repository.OptionRepository
	menuRepo   repository.MenuRepository
	storeRepo  repository.StoreRepository
}

func NewOptionService(
	optionRepo repository.OptionRepository,
	menuRepo repository.MenuRepository,
	storeRepo repository.StoreRepository,
) OptionService {
	return &optionService{
		optionRepo: optionRepo,
		menuRepo:   menuRepo,
		storeRepo:  storeRepo,
	}
}

// validateGroupInput enforces structural sanity of the bounds so the
// storefront validator never sees a contradictory group.
func validateGroupInput(input OptionGroupInput) error {
	switch input.Type {
	case model.GroupSingleSelect, model.GroupMultiSelect, model.GroupQuantitySelect:
	default:
		return ErrInvalidOptionBounds
	}
	if input.MinSelections < 0 || input.NumFreeOptions < 0 {
		return ErrInvalidOptionBounds
	}
	if input.MaxSelections != nil && *input.MaxSelections < input.MinSelections {
		return ErrInvalidOptionBounds
	}
	if input.AggregateMinQuantity != nil && *input.AggregateMinQuantity < 0 {
		return ErrInvalidOptionBounds
	}
	if input.AggregateMaxQuantity != nil {
		if *input.AggregateMaxQuantity < 1 {
			return ErrInvalidOptionBounds
		}
		if input.AggregateMinQuantity != nil && *input.AggregateMaxQuantity < *input.AggregateMinQuantity {
			return ErrInvalidOptionBounds
		}
	}
	return nil
}

func (s *optionService) ownedMenuItem(ownerID, menuItemID uint) (*model.MenuItem, error) {
	item, err := s.menuRepo.FindByID(menuItemID)
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

func (s *optionService) ownedGroup(ownerID, groupID uint) (*model.OptionGroup, error) {
	group, err := s.optionRepo.FindGroupByID(groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOptionGroupNotFound
		}
		return nil, err
	}
	if _, err := s.ownedMenuItem(ownerID, group.MenuItemID); err != nil {
		return nil, err
	}
	return group, nil
}

func (s *optionService) CreateGroup(ownerID, menuItemID uint, input OptionGroupInput) (*model.OptionGroup, error) {
	if _, err := s.ownedMenuItem(ownerID, menuItemID); err != nil {
		return nil, err
	}
	if err := validateGroupInput(input); err != nil {
		return nil, err
	}

	group := &model.OptionGroup{
		MenuItemID:           menuItemID,
		Name:                 input.Name,
		Type:                 input.Type,
		IsRequired:           input.IsRequired,
		MinSelections:        input.MinSelections,
		MaxSelections:        input.MaxSelections,
		NumFreeOptions:       input.NumFreeOptions,
		AggregateMinQuantity: input.AggregateMinQuantity,
		AggregateMaxQuantity: input.AggregateMaxQuantity,
		SortOrder:            input.SortOrder,
	}
	if err := s.optionRepo.CreateGroup(group); err != nil {
		return nil, err
	}

	logger.Info("Option group created", map[string]interface{}{
		"option_group_id": group.ID,
		"menu_item_id":    menuItemID,
		"type":            group.Type,
	})
	return group, nil
}

func (s *optionService) UpdateGroup(ownerID, groupID uint, input OptionGroupInput) (*model.OptionGroup, error) {
	group, err := s.ownedGroup(ownerID, groupID)
	if err != nil {
		return nil, err
	}
	if err := validateGroupInput(input); err != nil {
		return nil, err
	}

	group.Name = input.Name
	group.Type = input.Type
	group.IsRequired = input.IsRequired
	group.MinSelections = input.MinSelections
	group.MaxSelections = input.MaxSelections
	group.NumFreeOptions = input.NumFreeOptions
	group.AggregateMinQuantity = input.AggregateMinQuantity
	group.AggregateMaxQuantity = input.AggregateMaxQuantity
	group.SortOrder = input.SortOrder

	if err := s.optionRepo.UpdateGroup(group); err != nil {
		return nil, err
	}
	return group, nil
}

func (s *optionService) DeleteGroup(ownerID, groupID uint) error {
	if _, err := s.ownedGroup(ownerID, groupID); err != nil {
		return err
	}
	if err := s.optionRepo.DeleteGroup(groupID); err != nil {
		return err
	}
	logger.Info("Option group deleted", map[string]interface{}{
		"option_group_id": groupID,
	})
	return nil
}

func (s *optionService) ListGroups(ownerID, menuItemID uint) ([]model.OptionGroup, error) {
	if _, err := s.ownedMenuItem(ownerID, menuItemID); err != nil {
		return nil, err
	}
	return s.optionRepo.FindGroupsByMenuItemID(menuItemID)
}

func (s *optionService) CreateChoice(ownerID, groupID uint, input ChoiceInput) (*model.Choice, error) {
	if _, err := s.ownedGroup(ownerID, groupID); err != nil {
		return nil, err
	}
	if input.MinQuantity < 0 {
		return nil, ErrInvalidOptionBounds
	}
	if input.MaxQuantity != nil && *input.MaxQuantity < input.MinQuantity {
		return nil, ErrInvalidOptionBounds
	}

	choice := &model.Choice{
		OptionGroupID: groupID,
		Name:          input.Name,
		PriceModifier: input.PriceModifier,
		IsDefault:     input.IsDefault,
		IsAvailable:   true,
		MinQuantity:   input.MinQuantity,
		MaxQuantity:   input.MaxQuantity,
		SortOrder:     input.SortOrder,
	}
	if input.IsAvailable != nil {
		choice.IsAvailable = *input.IsAvailable
	}

	if err := s.optionRepo.CreateChoice(choice); err != nil {
		return nil, err
	}
	return choice, nil
}

func (s *optionService) ownedChoice(ownerID, choiceID uint) (*model.Choice, error) {
	choice, err := s.optionRepo.FindChoiceByID(choiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChoiceNotFound
		}
		return nil, err
	}
	if _, err := s.ownedGroup(ownerID, choice.OptionGroupID); err != nil {
		return nil, err
	}
	return choice, nil
}

func (s *optionService) UpdateChoice(ownerID, choiceID uint, input ChoiceInput) (*model.Choice, error) {
	choice, err := s.ownedChoice(ownerID, choiceID)
	if err != nil {
		return nil, err
	}
	if input.MinQuantity < 0 {
		return nil, ErrInvalidOptionBounds
	}
	if input.MaxQuantity != nil && *input.MaxQuantity < input.MinQuantity {
		return nil, ErrInvalidOptionBounds
	}

	choice.Name = input.Name
	choice.PriceModifier = input.PriceModifier
	choice.IsDefault = input.IsDefault
	choice.MinQuantity = input.MinQuantity
	choice.MaxQuantity = input.MaxQuantity
	choice.SortOrder = input.SortOrder
	if input.IsAvailable != nil {
		choice.IsAvailable = *input.IsAvailable
	}

	if err := s.optionRepo.UpdateChoice(choice); err != nil {
		return nil, err
	}
	return choice, nil
}

func (s *optionService) DeleteChoice(ownerID, choiceID uint) error {
	if _, err := s.ownedChoice(ownerID, choiceID); err != nil {
		return err
	}
	return s.optionRepo.DeleteChoice(choiceID)
}
