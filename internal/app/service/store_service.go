package service

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tabletap/tabletap-backend/internal/app/model"
	"github.com/tabletap/tabletap-backend/internal/app/repository"
	"github.com/tabletap/tabletap-backend/internal/schedule"
	"github.com/tabletap/tabletap-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrStoreNotFound     = errors.New("store not found")
	ErrStoreAccessDenied = errors.New("store access denied")
	ErrInvalidHours      = errors.New("invalid store hours")
	ErrInvalidClosure    = errors.New("invalid closure window")
)

// openStatusKey is the Redis hash holding the cron-refreshed open flag
// per store slug.
const openStatusKey = "store:open"

var (
	timePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

type CreateStoreInput struct {
	Name        string
	Description string
	Address     string
	PhoneNumber string
	ImageURL    string
	Timezone    string
	Currency    string
}

type UpdateStoreInput struct {
	Name        *string
	Description *string
	Address     *string
	PhoneNumber *string
	ImageURL    *string
	Timezone    *string
	Currency    *string
	IsActive    *bool
}

type HourInput struct {
	DayOfWeek int
	OpenTime  string
	CloseTime string
}

type ClosureInput struct {
	StartDate string
	EndDate   string
	Reason    string
}

// StoreStatus is the storefront view of a store: the record plus its
// computed open/closed flag.
type StoreStatus struct {
	model.Store
	IsOpen bool `json:"is_open"`
}

type StoreService interface {
	CreateStore(ownerID uint, input CreateStoreInput) (*model.Store, error)
	UpdateStore(ownerID, storeID uint, input UpdateStoreInput) (*model.Store, error)
	DeleteStore(ownerID, storeID uint) error
	ListOwnedStores(ownerID uint) ([]model.Store, error)
	GetOwnedStore(ownerID, storeID uint) (*model.Store, error)

	SetHours(ownerID, storeID uint, hours []HourInput) (*model.Store, error)
	AddClosure(ownerID, storeID uint, input ClosureInput) (*model.StoreClosure, error)
	RemoveClosure(ownerID, storeID, closureID uint) error

	ListActiveStores(ctx context.Context) ([]StoreStatus, error)
	GetStoreBySlug(slug string) (*StoreStatus, error)
	RefreshOpenStatus(ctx context.Context) error
}

type storeService struct {
	storeRepo repository.StoreRepository
	redis     *redis.Client
	now       func() time.Time
}

func NewStoreService(storeRepo repository.StoreRepository, redisClient *redis.Client) StoreService {
	return &storeService{
		storeRepo: storeRepo,
		redis:     redisClient,
		now:       time.Now,
	}
}

func (s *storeService) CreateStore(ownerID uint, input CreateStoreInput) (*model.Store, error) {
	logger.Info("Creating store", map[string]interface{}{
		"owner_id": ownerID,
		"name":     input.Name,
	})

	store := &model.Store{
		OwnerID:     ownerID,
		Name:        input.Name,
		Description: input.Description,
		Address:     input.Address,
		PhoneNumber: input.PhoneNumber,
		ImageURL:    input.ImageURL,
		Timezone:    input.Timezone,
		Currency:    input.Currency,
		IsActive:    true,
	}
	if store.Timezone == "" {
		store.Timezone = "UTC"
	}
	if store.Currency == "" {
		store.Currency = "USD"
	}
	if _, err := time.LoadLocation(store.Timezone); err != nil {
		logger.Warn("Unknown timezone on store create, falling back to UTC", map[string]interface{}{
			"timezone": store.Timezone,
		})
		store.Timezone = "UTC"
	}

	if err := s.storeRepo.Create(store); err != nil {
		return nil, err
	}

	logger.Info("Store created", map[string]interface{}{
		"store_id": store.ID,
		"slug":     store.Slug,
	})
	return store, nil
}

// ownedStore fetches a store and enforces ownership.
func (s *storeService) ownedStore(ownerID, storeID uint) (*model.Store, error) {
	store, err := s.storeRepo.FindByID(storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}
	if store.OwnerID != ownerID {
		logger.Warn("Store access denied: ownership mismatch", map[string]interface{}{
			"store_id": storeID,
			"owner_id": store.OwnerID,
			"user_id":  ownerID,
		})
		return nil, ErrStoreAccessDenied
	}
	return store, nil
}

func (s *storeService) UpdateStore(ownerID, storeID uint, input UpdateStoreInput) (*model.Store, error) {
	store, err := s.ownedStore(ownerID, storeID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		store.Name = *input.Name
	}
	if input.Description != nil {
		store.Description = *input.Description
	}
	if input.Address != nil {
		store.Address = *input.Address
	}
	if input.PhoneNumber != nil {
		store.PhoneNumber = *input.PhoneNumber
	}
	if input.ImageURL != nil {
		store.ImageURL = *input.ImageURL
	}
	if input.Timezone != nil {
		if _, err := time.LoadLocation(*input.Timezone); err != nil {
			return nil, ErrInvalidHours
		}
		store.Timezone = *input.Timezone
	}
	if input.Currency != nil {
		store.Currency = *input.Currency
	}
	if input.IsActive != nil {
		store.IsActive = *input.IsActive
	}

	if err := s.storeRepo.Update(store); err != nil {
		return nil, err
	}

	logger.Info("Store updated", map[string]interface{}{
		"store_id": store.ID,
	})
	return store, nil
}

func (s *storeService) DeleteStore(ownerID, storeID uint) error {
	if _, err := s.ownedStore(ownerID, storeID); err != nil {
		return err
	}
	if err := s.storeRepo.Delete(storeID); err != nil {
		return err
	}
	logger.Info("Store deleted", map[string]interface{}{
		"store_id": storeID,
	})
	return nil
}

func (s *storeService) ListOwnedStores(ownerID uint) ([]model.Store, error) {
	return s.storeRepo.FindByOwnerID(ownerID)
}

func (s *storeService) GetOwnedStore(ownerID, storeID uint) (*model.Store, error) {
	return s.ownedStore(ownerID, storeID)
}

func (s *storeService) SetHours(ownerID, storeID uint, hours []HourInput) (*model.Store, error) {
	if _, err := s.ownedStore(ownerID, storeID); err != nil {
		return nil, err
	}

	rows := make([]model.StoreHour, 0, len(hours))
	for _, h := range hours {
		if h.DayOfWeek < 0 || h.DayOfWeek > 6 {
			return nil, ErrInvalidHours
		}
		if !timePattern.MatchString(h.OpenTime) || !timePattern.MatchString(h.CloseTime) {
			return nil, ErrInvalidHours
		}
		rows = append(rows, model.StoreHour{
			StoreID:   storeID,
			DayOfWeek: h.DayOfWeek,
			OpenTime:  h.OpenTime,
			CloseTime: h.CloseTime,
		})
	}

	if err := s.storeRepo.ReplaceHours(storeID, rows); err != nil {
		return nil, err
	}

	logger.Info("Store hours replaced", map[string]interface{}{
		"store_id": storeID,
		"periods":  len(rows),
	})
	return s.storeRepo.FindByID(storeID)
}

func (s *storeService) AddClosure(ownerID, storeID uint, input ClosureInput) (*model.StoreClosure, error) {
	if _, err := s.ownedStore(ownerID, storeID); err != nil {
		return nil, err
	}

	if !datePattern.MatchString(input.StartDate) || !datePattern.MatchString(input.EndDate) {
		return nil, ErrInvalidClosure
	}
	if input.EndDate < input.StartDate {
		return nil, ErrInvalidClosure
	}

	closure := &model.StoreClosure{
		StoreID:   storeID,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Reason:    input.Reason,
	}
	if err := s.storeRepo.AddClosure(closure); err != nil {
		return nil, err
	}

	logger.Info("Store closure added", map[string]interface{}{
		"store_id":   storeID,
		"start_date": input.StartDate,
		"end_date":   input.EndDate,
	})
	return closure, nil
}

func (s *storeService) RemoveClosure(ownerID, storeID, closureID uint) error {
	if _, err := s.ownedStore(ownerID, storeID); err != nil {
		return err
	}

	closure, err := s.storeRepo.FindClosureByID(closureID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStoreNotFound
		}
		return err
	}
	if closure.StoreID != storeID {
		return ErrStoreAccessDenied
	}
	return s.storeRepo.DeleteClosure(closureID)
}

func (s *storeService) ListActiveStores(ctx context.Context) ([]StoreStatus, error) {
	stores, err := s.storeRepo.FindAllActive()
	if err != nil {
		return nil, err
	}

	// Prefer the cron-refreshed flags; fall back to a live computation
	// when the cache has no answer.
	var cached map[string]string
	if s.redis != nil {
		cached, err = s.redis.HGetAll(ctx, openStatusKey).Result()
		if err != nil {
			logger.Warn("Open-status cache unavailable, computing live", map[string]interface{}{
				"error": err.Error(),
			})
			cached = nil
		}
	}

	result := make([]StoreStatus, 0, len(stores))
	for _, store := range stores {
		open := false
		if flag, ok := cached[store.Slug]; ok {
			open = flag == "1"
		} else {
			open = schedule.IsOpen(store.Hours, store.Closures, store.Timezone, s.now())
		}
		result = append(result, StoreStatus{Store: store, IsOpen: open})
	}
	return result, nil
}

func (s *storeService) GetStoreBySlug(slug string) (*StoreStatus, error) {
	store, err := s.storeRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}
	if !store.IsActive {
		return nil, ErrStoreNotFound
	}

	return &StoreStatus{
		Store:  *store,
		IsOpen: schedule.IsOpen(store.Hours, store.Closures, store.Timezone, s.now()),
	}, nil
}

// RefreshOpenStatus recomputes every active store's open flag and
// writes the result to the shared cache. Called by the scheduler.
func (s *storeService) RefreshOpenStatus(ctx context.Context) error {
	if s.redis == nil {
		return nil
	}

	stores, err := s.storeRepo.FindAllActive()
	if err != nil {
		return err
	}

	flags := make(map[string]interface{}, len(stores))
	for _, store := range stores {
		flag := "0"
		if schedule.IsOpen(store.Hours, store.Closures, store.Timezone, s.now()) {
			flag = "1"
		}
		flags[store.Slug] = flag
	}

	if len(flags) == 0 {
		return s.redis.Del(ctx, openStatusKey).Err()
	}
	if err := s.redis.HSet(ctx, openStatusKey, flags).Err(); err != nil {
		return err
	}

	logger.Debug("Open-status cache refreshed", map[string]interface{}{
		"stores": len(flags),
	})
	return nil
}
