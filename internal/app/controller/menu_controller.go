package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tabletap/tabletap-backend/internal/app/service"
	apperrors "github.com/tabletap/tabletap-backend/internal/errors"
	"github.com/tabletap/tabletap-backend/internal/middleware"
)

type MenuController struct {
	menuService service.MenuService
}

func NewMenuController(menuService service.MenuService) *MenuController {
	return &MenuController{
		menuService: menuService,
	}
}

type MenuItemRequest struct {
	CategoryID  uint   `json:"category_id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	BasePrice   int64  `json:"base_price" binding:"min=0"`
	ImageURL    string `json:"image_url"`
	IsAvailable *bool  `json:"is_available"`
	SortOrder   int    `json:"sort_order"`
}

func respondMenuError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMenuItemNotFound):
		apperrors.NotFound(c, apperrors.MenuItemNotFound, "Menu item not found")
	case errors.Is(err, service.ErrCategoryNotFound):
		apperrors.NotFound(c, apperrors.CategoryNotFound, "Category not found")
	case errors.Is(err, service.ErrStoreNotFound):
		apperrors.NotFound(c, apperrors.StoreNotFound, "Store not found")
	case errors.Is(err, service.ErrStoreAccessDenied):
		apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzOwnerOnly, "You do not own this store")
	case errors.Is(err, service.ErrInvalidPrice):
		apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Price must not be negative")
	default:
		middleware.GetLoggerFromContext(c).Error("Menu operation failed", err, nil)
		apperrors.InternalError(c, "")
	}
}

func (req MenuItemRequest) toInput() service.MenuItemInput {
	return service.MenuItemInput{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		BasePrice:   req.BasePrice,
		ImageURL:    req.ImageURL,
		IsAvailable: req.IsAvailable,
		SortOrder:   req.SortOrder,
	}
}

// CreateMenuItem adds a dish to a store's menu
// POST /api/v1/console/stores/:id/menu-items
func (ctrl *MenuController) CreateMenuItem(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	storeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid menu item data")
		return
	}

	item, err := ctrl.menuService.CreateMenuItem(userID, storeID, req.toInput())
	if err != nil {
		respondMenuError(c, err)
		return
	}

	middleware.GetLoggerFromContext(c).Info("Menu item created", map[string]interface{}{
		"menu_item_id": item.ID,
		"store_id":     storeID,
	})

	c.JSON(http.StatusCreated, gin.H{"menu_item": item})
}

// ListMenuItems lists a store's menu items with their option groups
// GET /api/v1/console/stores/:id/menu-items
func (ctrl *MenuController) ListMenuItems(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	storeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	items, err := ctrl.menuService.ListMenuItems(userID, storeID)
	if err != nil {
		respondMenuError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"menu_items": items})
}

// UpdateMenuItem updates a dish
// PATCH /api/v1/console/menu-items/:id
func (ctrl *MenuController) UpdateMenuItem(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid menu item data")
		return
	}

	item, err := ctrl.menuService.UpdateMenuItem(userID, itemID, req.toInput())
	if err != nil {
		respondMenuError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"menu_item": item})
}

// DeleteMenuItem removes a dish
// DELETE /api/v1/console/menu-items/:id
func (ctrl *MenuController) DeleteMenuItem(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.menuService.DeleteMenuItem(userID, itemID); err != nil {
		respondMenuError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
}

// GetMenuItem returns one dish with its option groups, public
// GET /api/v1/menu-items/:id
func (ctrl *MenuController) GetMenuItem(c *gin.Context) {
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := ctrl.menuService.GetMenuItem(itemID)
	if err != nil {
		respondMenuError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"menu_item": item})
}
