package repository

import (
	"github.com/tabletap/tabletap-backend/internal/app/model"
	"github.com/tabletap/tabletap-backend/pkg/logger"
	"gorm.io/gorm"
)

type StoreRepository interface {
	Create(store *model.Store) error
	FindByID(id uint) (*model.Store, error)
	FindBySlug(slug string) (*model.Store, error)
	FindByOwnerID(ownerID uint) ([]model.Store, error)
	FindAllActive() ([]model.Store, error)
	Update(store *model.Store) error
	Delete(id uint) error

	ReplaceHours(storeID uint, hours []model.StoreHour) error
	AddClosure(closure *model.StoreClosure) error
	FindClosureByID(id uint) (*model.StoreClosure, error)
	DeleteClosure(id uint) error
}

type storeRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) Create(store *model.Store) error {
	logger.Debug("Creating store in database", map[string]interface{}{
		"name":     store.Name,
		"owner_id": store.OwnerID,
	})

	if err := r.db.Create(store).Error; err != nil {
		logger.Error("Failed to create store in database", err, map[string]interface{}{
			"name": store.Name,
		})
		return err
	}
	return nil
}

func (r *storeRepository) FindByID(id uint) (*model.Store, error) {
	var store model.Store
	err := r.db.Preload("Hours").Preload("Closures").First(&store, id).Error
	if err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) FindBySlug(slug string) (*model.Store, error) {
	var store model.Store
	err := r.db.Preload("Hours").Preload("Closures").
		Where("slug = ?", slug).First(&store).Error
	if err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) FindByOwnerID(ownerID uint) ([]model.Store, error) {
	var stores []model.Store
	err := r.db.Preload("Hours").Preload("Closures").
		Where("owner_id = ?", ownerID).Find(&stores).Error
	if err != nil {
		logger.Error("Failed to find stores by owner in database", err, map[string]interface{}{
			"owner_id": ownerID,
		})
		return nil, err
	}
	return stores, nil
}

func (r *storeRepository) FindAllActive() ([]model.Store, error) {
	var stores []model.Store
	err := r.db.Preload("Hours").Preload("Closures").
		Where("is_active = ?", true).
		Order("name asc").
		Find(&stores).Error
	if err != nil {
		logger.Error("Failed to list active stores in database", err)
		return nil, err
	}
	return stores, nil
}

func (r *storeRepository) Update(store *model.Store) error {
	if err := r.db.Save(store).Error; err != nil {
		logger.Error("Failed to update store in database", err, map[string]interface{}{
			"store_id": store.ID,
		})
		return err
	}
	return nil
}

func (r *storeRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Store{}, id).Error; err != nil {
		logger.Error("Failed to delete store from database", err, map[string]interface{}{
			"store_id": id,
		})
		return err
	}
	return nil
}

// ReplaceHours swaps a store's weekly hour rows atomically.
func (r *storeRepository) ReplaceHours(storeID uint, hours []model.StoreHour) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("store_id = ?", storeID).Delete(&model.StoreHour{}).Error; err != nil {
			return err
		}
		if len(hours) == 0 {
			return nil
		}
		for i := range hours {
			hours[i].ID = 0
			hours[i].StoreID = storeID
		}
		return tx.Create(&hours).Error
	})
}

func (r *storeRepository) AddClosure(closure *model.StoreClosure) error {
	if err := r.db.Create(closure).Error; err != nil {
		logger.Error("Failed to create store closure in database", err, map[string]interface{}{
			"store_id": closure.StoreID,
		})
		return err
	}
	return nil
}

func (r *storeRepository) FindClosureByID(id uint) (*model.StoreClosure, error) {
	var closure model.StoreClosure
	if err := r.db.First(&closure, id).Error; err != nil {
		return nil, err
	}
	return &closure, nil
}

func (r *storeRepository) DeleteClosure(id uint) error {
	if err := r.db.Delete(&model.StoreClosure{}, id).Error; err != nil {
		logger.Error("Failed to delete store closure from database", err, map[string]interface{}{
			"closure_id": id,
		})
		return err
	}
	return nil
}
