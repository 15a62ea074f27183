package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tabletap/tabletap-backend/internal/app/model"
	"github.com/tabletap/tabletap-backend/internal/app/service"
	apperrors "github.com/tabletap/tabletap-backend/internal/errors"
	"github.com/tabletap/tabletap-backend/internal/middleware"
)

type OptionController struct {
	optionService service.OptionService
}

func NewOptionController(optionService service.OptionService) *OptionController {
	return &OptionController{
		optionService: optionService,
	}
}

type OptionGroupRequest struct {
	Name                 string `json:"name" binding:"required"`
	Type                 string `json:"type" binding:"required,oneof=single_select multi_select quantity_select"`
	IsRequired           bool   `json:"is_required"`
	MinSelections        int    `json:"min_selections" binding:"min=0"`
	MaxSelections        *int   `json:"max_selections"`
	NumFreeOptions       int    `json:"num_free_options" binding:"min=0"`
	AggregateMinQuantity *int   `json:"aggregate_min_quantity"`
	AggregateMaxQuantity *int   `json:"aggregate_max_quantity"`
	SortOrder            int    `json:"sort_order"`
}

type ChoiceRequest struct {
	Name          string `json:"name" binding:"required"`
	PriceModifier int64  `json:"price_modifier"`
	IsDefault     bool   `json:"is_default"`
	IsAvailable   *bool  `json:"is_available"`
	MinQuantity   int    `json:"min_quantity" binding:"min=0"`
	MaxQuantity   *int   `json:"max_quantity"`
	SortOrder     int    `json:"sort_order"`
}

func respondOptionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOptionGroupNotFound):
		apperrors.NotFound(c, apperrors.OptionGroupNotFound, "Option group not found")
	case errors.Is(err, service.ErrChoiceNotFound):
		apperrors.NotFound(c, apperrors.ChoiceNotFound, "Choice not found")
	case errors.Is(err, service.ErrMenuItemNotFound):
		apperrors.NotFound(c, apperrors.MenuItemNotFound, "Menu item not found")
	case errors.Is(err, service.ErrStoreNotFound):
		apperrors.NotFound(c, apperrors.StoreNotFound, "Store not found")
	case errors.Is(err, service.ErrStoreAccessDenied):
		apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzOwnerOnly, "You do not own this store")
	case errors.Is(err, service.ErrInvalidOptionBounds):
		apperrors.BadRequest(c, apperrors.OptionInvalidBounds, "Selection bounds are inconsistent")
	default:
		middleware.GetLoggerFromContext(c).Error("Option operation failed", err, nil)
		apperrors.InternalError(c, "")
	}
}

func (req OptionGroupRequest) toInput() service.OptionGroupInput {
	return service.OptionGroupInput{
		Name:                 req.Name,
		Type:                 model.OptionGroupType(req.Type),
		IsRequired:           req.IsRequired,
		MinSelections:        req.MinSelections,
		MaxSelections:        req.MaxSelections,
		NumFreeOptions:       req.NumFreeOptions,
		AggregateMinQuantity: req.AggregateMinQuantity,
		AggregateMaxQuantity: req.AggregateMaxQuantity,
		SortOrder:            req.SortOrder,
	}
}

func (req ChoiceRequest) toInput() service.ChoiceInput {
	return service.ChoiceInput{
		Name:          req.Name,
		PriceModifier: req.PriceModifier,
		IsDefault:     req.IsDefault,
		IsAvailable:   req.IsAvailable,
		MinQuantity:   req.MinQuantity,
		MaxQuantity:   req.MaxQuantity,
		SortOrder:     req.SortOrder,
	}
}

// CreateGroup attaches an option group to a menu item
// POST /api/v1/console/menu-items/:id/option-groups
func (ctrl *OptionController) CreateGroup(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req OptionGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid option group data")
		return
	}

	group, err := ctrl.optionService.CreateGroup(userID, itemID, req.toInput())
	if err != nil {
		respondOptionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"option_group": group})
}

// ListGroups lists a menu item's option groups with choices
// GET /api/v1/console/menu-items/:id/option-groups
func (ctrl *OptionController) ListGroups(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	groups, err := ctrl.optionService.ListGroups(userID, itemID)
	if err != nil {
		respondOptionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"option_groups": groups})
}

// UpdateGroup updates an option group
// PATCH /api/v1/console/option-groups/:id
func (ctrl *OptionController) UpdateGroup(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	groupID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req OptionGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid option group data")
		return
	}

	group, err := ctrl.optionService.UpdateGroup(userID, groupID, req.toInput())
	if err != nil {
		respondOptionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"option_group": group})
}

// DeleteGroup removes an option group and its choices
// DELETE /api/v1/console/option-groups/:id
func (ctrl *OptionController) DeleteGroup(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	groupID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.optionService.DeleteGroup(userID, groupID); err != nil {
		respondOptionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Option group deleted"})
}

// CreateChoice adds a choice to an option group
// POST /api/v1/console/option-groups/:id/choices
func (ctrl *OptionController) CreateChoice(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	groupID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ChoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid choice data")
		return
	}

	choice, err := ctrl.optionService.CreateChoice(userID, groupID, req.toInput())
	if err != nil {
		respondOptionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"choice": choice})
}

// UpdateChoice updates a choice
// PATCH /api/v1/console/choices/:id
func (ctrl *OptionController) UpdateChoice(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	choiceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ChoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid choice data")
		return
	}

	choice, err := ctrl.optionService.UpdateChoice(userID, choiceID, req.toInput())
	if err != nil {
		respondOptionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"choice": choice})
}

// DeleteChoice removes a choice
// DELETE /api/v1/console/choices/:id
func (ctrl *OptionController) DeleteChoice(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	choiceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.optionService.DeleteChoice(userID, choiceID); err != nil {
		respondOptionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Choice deleted"})
}
