package repository

import (
	"github.com/tabletap/tabletap-backend/internal/app/model"
	"github.com/tabletap/tabletap-backend/pkg/logger"
	"gorm.io/gorm"
)

type ServicePointRepository interface {
	Create(point *model.ServicePoint) error
	FindByID(id uint) (*model.ServicePoint, error)
	FindByCode(code string) (*model.ServicePoint, error)
	FindByStoreID(storeID uint) ([]model.ServicePoint, error)
	Update(point *model.ServicePoint) error
	Delete(id uint) error
}

type servicePointRepository struct {
	db *gorm.DB
}

func NewServicePointRepository(db *gorm.DB) ServicePointRepository {
	return &servicePointRepository{db: db}
}

func (r *servicePointRepository) Create(point *model.ServicePoint) error {
	if err := r.db.Create(point).Error; err != nil {
		logger.Error("Failed to create service point in database", err, map[string]interface{}{
			"store_id": point.StoreID,
			"name":     point.Name,
		})
		return err
	}
	return nil
}

func (r *servicePointRepository) FindByID(id uint) (*model.ServicePoint, error) {
	var point model.ServicePoint
	if err := r.db.First(&point, id).Error; err != nil {
		return nil, err
	}
	return &point, nil
}

func (r *servicePointRepository) FindByCode(code string) (*model.ServicePoint, error) {
	var point model.ServicePoint
	if err := r.db.Where("code = ?", code).First(&point).Error; err != nil {
		return nil, err
	}
	return &point, nil
}

func (r *servicePointRepository) FindByStoreID(storeID uint) ([]model.ServicePoint, error) {
	var points []model.ServicePoint
	err := r.db.Where("store_id = ?", storeID).Order("name asc").Find(&points).Error
	if err != nil {
		logger.Error("Failed to find service points by store in database", err, map[string]interface{}{
			"store_id": storeID,
		})
		return nil, err
	}
	return points, nil
}

func (r *servicePointRepository) Update(point *model.ServicePoint) error {
	if err := r.db.Save(point).Error; err != nil {
		logger.Error("Failed to update service point in database", err, map[string]interface{}{
			"service_point_id": point.ID,
		})
		return err
	}
	return nil
}

func (r *servicePointRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.ServicePoint{}, id).Error; err != nil {
		logger.Error("Failed to delete service point from database", err, map[string]interface{}{
			"service_point_id": id,
		})
		return err
	}
	return nil
}
