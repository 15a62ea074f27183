package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tabletap/tabletap-backend/internal/app/service"
	apperrors "github.com/tabletap/tabletap-backend/internal/errors"
	"github.com/tabletap/tabletap-backend/internal/middleware"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

type UpdateCartQuantityRequest struct {
	Quantity int `json:"quantity" binding:"min=0"`
}

type SetCartStoreRequest struct {
	Slug string `json:"slug" binding:"required"`
}

func requireSessionID(c *gin.Context) (string, bool) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		apperrors.BadRequest(c, apperrors.CartSessionMissing, "Cart session missing")
	}
	return sessionID, ok
}

func respondCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMenuItemNotFound):
		apperrors.NotFound(c, apperrors.MenuItemNotFound, "Menu item not found")
	case errors.Is(err, service.ErrMenuItemUnavailable):
		apperrors.RespondWithError(c, http.StatusConflict, apperrors.MenuItemUnavailable, "Menu item is not available")
	case errors.Is(err, service.ErrInvalidSelection):
		apperrors.BadRequest(c, apperrors.CartInvalidSelection, "Option selection is not valid for this item")
	case errors.Is(err, service.ErrStoreNotFound):
		apperrors.NotFound(c, apperrors.StoreNotFound, "Store not found")
	default:
		middleware.GetLoggerFromContext(c).Error("Cart operation failed", err, nil)
		apperrors.InternalError(c, "")
	}
}

// GetCart returns the session's cart
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	sessionID, ok := requireSessionID(c)
	if !ok {
		return
	}

	view, err := ctrl.cartService.GetCart(c.Request.Context(), sessionID)
	if err != nil {
		respondCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart": view})
}

// AddItem adds a configured menu item to the cart
// POST /api/v1/cart/items
func (ctrl *CartController) AddItem(c *gin.Context) {
	sessionID, ok := requireSessionID(c)
	if !ok {
		return
	}

	var req service.AddItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid cart item data")
		return
	}

	view, err := ctrl.cartService.AddItem(c.Request.Context(), sessionID, req)
	if err != nil {
		respondCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart": view})
}

// UpdateQuantity sets a cart line's quantity; zero removes it
// PATCH /api/v1/cart/items/:id
func (ctrl *CartController) UpdateQuantity(c *gin.Context) {
	sessionID, ok := requireSessionID(c)
	if !ok {
		return
	}

	var req UpdateCartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid quantity")
		return
	}

	view, err := ctrl.cartService.UpdateQuantity(c.Request.Context(), sessionID, c.Param("id"), req.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart": view})
}

// RemoveItem deletes a cart line
// DELETE /api/v1/cart/items/:id
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	sessionID, ok := requireSessionID(c)
	if !ok {
		return
	}

	view, err := ctrl.cartService.RemoveItem(c.Request.Context(), sessionID, c.Param("id"))
	if err != nil {
		respondCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart": view})
}

// ClearCart empties the cart
// DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	sessionID, ok := requireSessionID(c)
	if !ok {
		return
	}

	view, err := ctrl.cartService.ClearCart(c.Request.Context(), sessionID)
	if err != nil {
		respondCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart": view})
}

// SetStore binds the cart to a store, clearing it on a switch
// PUT /api/v1/cart/store
func (ctrl *CartController) SetStore(c *gin.Context) {
	sessionID, ok := requireSessionID(c)
	if !ok {
		return
	}

	var req SetCartStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid store slug")
		return
	}

	cleared, view, err := ctrl.cartService.SetStore(c.Request.Context(), sessionID, req.Slug)
	if err != nil {
		respondCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart":    view,
		"cleared": cleared,
	})
}

// QuoteItem prices a configuration without adding it to the cart
// POST /api/v1/cart/quote
func (ctrl *CartController) QuoteItem(c *gin.Context) {
	var req service.AddItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid quote request")
		return
	}

	quote, err := ctrl.cartService.QuoteItem(req)
	if err != nil {
		respondCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"quote": quote})
}
