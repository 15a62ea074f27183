package service

import (
	"errors"

	"github.com/tabletap/tabletap-backend/internal/app/model"
	"github.com/tabletap/tabletap-backend/internal/app/repository"
	"github.com/tabletap/tabletap-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrCategoryNotFound = errors.New("category not found")

type CategoryInput struct {
	Name      string
	SortOrder int
	IsActive  *bool
}

type CategoryService interface {
	CreateCategory(ownerID, storeID uint, input CategoryInput) (*model.Category, error)
	UpdateCategory(ownerID, categoryID uint, input CategoryInput) (*model.Category, error)
	DeleteCategory(ownerID, categoryID uint) error
	ListCategories(ownerID, storeID uint) ([]model.Category, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	storeRepo    repository.StoreRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository, storeRepo repository.StoreRepository) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		storeRepo:    storeRepo,
	}
}

// checkStoreOwner verifies that a store exists and belongs to the caller.
func checkStoreOwner(storeRepo repository.StoreRepository, ownerID, storeID uint) (*model.Store, error) {
	store, err := storeRepo.FindByID(storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}
	if store.OwnerID != ownerID {
		return nil, ErrStoreAccessDenied
	}
	return store, nil
}

func (s *categoryService) CreateCategory(ownerID, storeID uint, input CategoryInput) (*model.Category, error) {
	if _, err := checkStoreOwner(s.storeRepo, ownerID, storeID); err != nil {
		return nil, err
	}

	category := &model.Category{
		StoreID:   storeID,
		Name:      input.Name,
		SortOrder: input.SortOrder,
		IsActive:  true,
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}

	logger.Info("Category created", map[string]interface{}{
		"category_id": category.ID,
		"store_id":    storeID,
	})
	return category, nil
}

func (s *categoryService) ownedCategory(ownerID, categoryID uint) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	if _, err := checkStoreOwner(s.storeRepo, ownerID, category.StoreID); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) UpdateCategory(ownerID, categoryID uint, input CategoryInput) (*model.Category, error) {
	category, err := s.ownedCategory(ownerID, categoryID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		category.Name = input.Name
	}
	category.SortOrder = input.SortOrder
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) DeleteCategory(ownerID, categoryID uint) error {
	if _, err := s.ownedCategory(ownerID, categoryID); err != nil {
		return err
	}
	if err := s.categoryRepo.Delete(categoryID); err != nil {
		return err
	}
	logger.Info("Category deleted", map[string]interface{}{
		"category_id": categoryID,
	})
	return nil
}

func (s *categoryService) ListCategories(ownerID, storeID uint) ([]model.Category, error) {
	if _, err := checkStoreOwner(s.storeRepo, ownerID, storeID); err != nil {
		return nil, err
	}
	return s.categoryRepo.FindByStoreID(storeID)
}
