package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tabletap/tabletap-backend/internal/app/service"
	apperrors "github.com/tabletap/tabletap-backend/internal/errors"
	"github.com/tabletap/tabletap-backend/internal/middleware"
)

type ServicePointController struct {
	pointService service.ServicePointService
}

func NewServicePointController(pointService service.ServicePointService) *ServicePointController {
	return &ServicePointController{
		pointService: pointService,
	}
}

type ServicePointRequest struct {
	Name     string `json:"name" binding:"required"`
	IsActive *bool  `json:"is_active"`
}

func respondServicePointError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrServicePointNotFound):
		apperrors.NotFound(c, apperrors.ServicePointNotFound, "Service point not found")
	case errors.Is(err, service.ErrStoreNotFound):
		apperrors.NotFound(c, apperrors.StoreNotFound, "Store not found")
	case errors.Is(err, service.ErrStoreAccessDenied):
		apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzOwnerOnly, "You do not own this store")
	default:
		middleware.GetLoggerFromContext(c).Error("Service point operation failed", err, nil)
		apperrors.InternalError(c, "")
	}
}

// CreateServicePoint registers a table or pickup counter
// POST /api/v1/console/stores/:id/service-points
func (ctrl *ServicePointController) CreateServicePoint(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	storeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ServicePointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid service point data")
		return
	}

	point, err := ctrl.pointService.CreateServicePoint(userID, storeID, service.ServicePointInput{
		Name:     req.Name,
		IsActive: req.IsActive,
	})
	if err != nil {
		respondServicePointError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"service_point": point})
}

// ListServicePoints lists a store's service points
// GET /api/v1/console/stores/:id/service-points
func (ctrl *ServicePointController) ListServicePoints(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	storeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	points, err := ctrl.pointService.ListServicePoints(userID, storeID)
	if err != nil {
		respondServicePointError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"service_points": points})
}

// UpdateServicePoint renames or toggles a service point
// PATCH /api/v1/console/service-points/:id
func (ctrl *ServicePointController) UpdateServicePoint(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	pointID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ServicePointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid service point data")
		return
	}

	point, err := ctrl.pointService.UpdateServicePoint(userID, pointID, service.ServicePointInput{
		Name:     req.Name,
		IsActive: req.IsActive,
	})
	if err != nil {
		respondServicePointError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"service_point": point})
}

// DeleteServicePoint removes a service point
// DELETE /api/v1/console/service-points/:id
func (ctrl *ServicePointController) DeleteServicePoint(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	pointID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.pointService.DeleteServicePoint(userID, pointID); err != nil {
		respondServicePointError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service point deleted"})
}
