package service

import (
	"errors"

	"github.com/tabletap/tabletap-backend/internal/app/model"
	"github.com/tabletap/tabletap-backend/internal/app/repository"
	"github.com/tabletap/tabletap-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrServicePointNotFound = errors.New("service point not found")

type ServicePointInput struct {
	Name     string
	IsActive *bool
}

type ServicePointService interface {
	CreateServicePoint(ownerID, storeID uint, input ServicePointInput) (*model.ServicePoint, error)
	UpdateServicePoint(ownerID, pointID uint, input ServicePointInput) (*model.ServicePoint, error)
	DeleteServicePoint(ownerID, pointID uint) error
	ListServicePoints(ownerID, storeID uint) ([]model.ServicePoint, error)
}

type servicePointService struct {
	pointRepo repository.ServicePointRepository
	storeRepo repository.StoreRepository
}

func NewServicePointService(pointRepo repository.ServicePointRepository, storeRepo repository.StoreRepository) ServicePointService {
	return &servicePointService{
		pointRepo: pointRepo,
		storeRepo: storeRepo,
	}
}

func (s *servicePointService) CreateServicePoint(ownerID, storeID uint, input ServicePointInput) (*model.ServicePoint, error) {
	if _, err := checkStoreOwner(s.storeRepo, ownerID, storeID); err != nil {
		return nil, err
	}

	point := &model.ServicePoint{
		StoreID:  storeID,
		Name:     input.Name,
		IsActive: true,
	}
	if input.IsActive != nil {
		point.IsActive = *input.IsActive
	}

	if err := s.pointRepo.Create(point); err != nil {
		return nil, err
	}

	logger.Info("Service point created", map[string]interface{}{
		"service_point_id": point.ID,
		"store_id":         storeID,
		"code":             point.Code,
	})
	return point, nil
}

func (s *servicePointService) ownedPoint(ownerID, pointID uint) (*model.ServicePoint, error) {
	point, err := s.pointRepo.FindByID(pointID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServicePointNotFound
		}
		return nil, err
	}
	if _, err := checkStoreOwner(s.storeRepo, ownerID, point.StoreID); err != nil {
		return nil, err
	}
	return point, nil
}

func (s *servicePointService) UpdateServicePoint(ownerID, pointID uint, input ServicePointInput) (*model.ServicePoint, error) {
	point, err := s.ownedPoint(ownerID, pointID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		point.Name = input.Name
	}
	if input.IsActive != nil {
		point.IsActive = *input.IsActive
	}

	if err := s.pointRepo.Update(point); err != nil {
		return nil, err
	}
	return point, nil
}

func (s *servicePointService) DeleteServicePoint(ownerID, pointID uint) error {
	if _, err := s.ownedPoint(ownerID, pointID); err != nil {
		return err
	}
	return s.pointRepo.Delete(pointID)
}

func (s *servicePointService) ListServicePoints(ownerID, storeID uint) ([]model.ServicePoint, error) {
	if _, err := checkStoreOwner(s.storeRepo, ownerID, storeID); err != nil {
		return nil, err
	}
	return s.pointRepo.FindByStoreID(storeID)
}
