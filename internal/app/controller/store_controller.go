package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tabletap/tabletap-backend/internal/app/service"
	apperrors "github.com/tabletap/tabletap-backend/internal/errors"
	"github.com/tabletap/tabletap-backend/internal/middleware"
)

type StoreController struct {
	storeService service.StoreService
	menuService  service.MenuService
}

func NewStoreController(storeService service.StoreService, menuService service.MenuService) *StoreController {
	return &StoreController{
		storeService: storeService,
		menuService:  menuService,
	}
}

// parseIDParam reads a numeric path parameter, responding with a
// validation error when it is not a positive integer.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// requireUserID pulls the authenticated merchant from context.
func requireUserID(c *gin.Context) (uint, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
	}
	return userID, ok
}

type CreateStoreRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
	ImageURL    string `json:"image_url"`
	Timezone    string `json:"timezone"`
	Currency    string `json:"currency"`
}

type UpdateStoreRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	PhoneNumber *string `json:"phone_number"`
	ImageURL    *string `json:"image_url"`
	Timezone    *string `json:"timezone"`
	Currency    *string `json:"currency"`
	IsActive    *bool   `json:"is_active"`
}

type HourRequest struct {
	DayOfWeek int    `json:"day_of_week" binding:"min=0,max=6"`
	OpenTime  string `json:"open_time" binding:"required"`
	CloseTime string `json:"close_time" binding:"required"`
}

type SetHoursRequest struct {
	Hours []HourRequest `json:"hours" binding:"required"`
}

type ClosureRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason"`
}

// respondStoreError maps the shared store service errors.
func respondStoreError(c *gin.Context, err error) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrStoreNotFound):
		apperrors.NotFound(c, apperrors.StoreNotFound, "Store not found")
	case errors.Is(err, service.ErrStoreAccessDenied):
		apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzOwnerOnly, "You do not own this store")
	case errors.Is(err, service.ErrInvalidHours):
		apperrors.BadRequest(c, apperrors.StoreInvalidHour, "Invalid opening hours")
	case errors.Is(err, service.ErrInvalidClosure):
		apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Invalid closure period")
	default:
		log.Error("Store operation failed", err, nil)
		apperrors.InternalError(c, "")
	}
}

// CreateStore opens a new store for the merchant
// POST /api/v1/console/stores
func (ctrl *StoreController) CreateStore(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid store data")
		return
	}

	store, err := ctrl.storeService.CreateStore(userID, service.CreateStoreInput{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		ImageURL:    req.ImageURL,
		Timezone:    req.Timezone,
		Currency:    req.Currency,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}

	middleware.GetLoggerFromContext(c).Info("Store created", map[string]interface{}{
		"store_id": store.ID,
		"slug":     store.Slug,
		"owner_id": userID,
	})

	c.JSON(http.StatusCreated, gin.H{"store": store})
}

// ListStores lists the merchant's stores
// GET /api/v1/console/stores
func (ctrl *StoreController) ListStores(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	stores, err := ctrl.storeService.ListOwnedStores(userID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stores": stores})
}

// GetStore returns one of the merchant's stores with hours and closures
// GET /api/v1/console/stores/:id
func (ctrl *StoreController) GetStore(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	storeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	store, err := ctrl.storeService.GetOwnedStore(userID, storeID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"store": store})
}

// UpdateStore applies a partial update
// PATCH /api/v1/console/stores/:id
func (ctrl *StoreController) UpdateStore(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	storeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid store data")
		return
	}

	store, err := ctrl.storeService.UpdateStore(userID, storeID, service.UpdateStoreInput{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		ImageURL:    req.ImageURL,
		Timezone:    req.Timezone,
		Currency:    req.Currency,
		IsActive:    req.IsActive,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"store": store})
}

// DeleteStore removes a store
// DELETE /api/v1/console/stores/:id
func (ctrl *StoreController) DeleteStore(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	storeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.storeService.DeleteStore(userID, storeID); err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Store deleted"})
}

// SetHours replaces the store's weekly schedule
// PUT /api/v1/console/stores/:id/hours
func (ctrl *StoreController) SetHours(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	storeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req SetHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid hours data")
		return
	}

	hours := make([]service.HourInput, 0, len(req.Hours))
	for _, h := range req.Hours {
		hours = append(hours, service.HourInput{
			DayOfWeek: h.DayOfWeek,
			OpenTime:  h.OpenTime,
			CloseTime: h.CloseTime,
		})
	}

	store, err := ctrl.storeService.SetHours(userID, storeID, hours)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"store": store})
}

// AddClosure schedules a temporary closure
// POST /api/v1/console/stores/:id/closures
func (ctrl *StoreController) AddClosure(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	storeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ClosureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid closure data")
		return
	}

	closure, err := ctrl.storeService.AddClosure(userID, storeID, service.ClosureInput{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Reason:    req.Reason,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"closure": closure})
}

// RemoveClosure cancels a scheduled closure
// DELETE /api/v1/console/stores/:id/closures/:closureId
func (ctrl *StoreController) RemoveClosure(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	storeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	closureID, ok := parseIDParam(c, "closureId")
	if !ok {
		return
	}

	if err := ctrl.storeService.RemoveClosure(userID, storeID, closureID); err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Closure removed"})
}

// ListActiveStores is the public store directory
// GET /api/v1/stores
func (ctrl *StoreController) ListActiveStores(c *gin.Context) {
	stores, err := ctrl.storeService.ListActiveStores(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stores": stores})
}

// GetStoreBySlug is the public store detail with a live open flag
// GET /api/v1/stores/:slug
func (ctrl *StoreController) GetStoreBySlug(c *gin.Context) {
	store, err := ctrl.storeService.GetStoreBySlug(c.Param("slug"))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"store": store})
}

// GetStoreMenu is the public menu tree
// GET /api/v1/stores/:slug/menu
func (ctrl *StoreController) GetStoreMenu(c *gin.Context) {
	menu, err := ctrl.menuService.GetStoreMenu(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			apperrors.NotFound(c, apperrors.StoreNotFound, "Store not found")
			return
		}
		middleware.GetLoggerFromContext(c).Error("Menu lookup failed", err, map[string]interface{}{
			"slug": c.Param("slug"),
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"menu": menu})
}
