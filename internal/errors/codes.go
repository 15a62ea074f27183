package errors

// Error code constants returned in API responses.
// Format: CATEGORY_SPECIFIC_DETAIL. Clients map these to display text.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"
	AuthzOwnerOnly    = "AUTHZ_OWNER_ONLY"
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"
	ValidationInvalidRange = "VALIDATION_INVALID_RANGE"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"

	// ==================== Stores (STORE_) ====================
	StoreNotFound    = "STORE_NOT_FOUND"
	StoreInactive    = "STORE_INACTIVE"
	StoreInvalidHour = "STORE_INVALID_HOUR"

	// ==================== Menu (MENU_) ====================
	CategoryNotFound    = "MENU_CATEGORY_NOT_FOUND"
	MenuItemNotFound    = "MENU_ITEM_NOT_FOUND"
	MenuItemUnavailable = "MENU_ITEM_UNAVAILABLE"
	OptionGroupNotFound = "MENU_OPTION_GROUP_NOT_FOUND"
	ChoiceNotFound      = "MENU_CHOICE_NOT_FOUND"
	OptionInvalidBounds = "MENU_OPTION_INVALID_BOUNDS"

	// ==================== Service points (SERVICE_POINT_) ====================
	ServicePointNotFound = "SERVICE_POINT_NOT_FOUND"

	// ==================== Cart (CART_) ====================
	CartItemNotFound     = "CART_ITEM_NOT_FOUND"
	CartInvalidSelection = "CART_INVALID_SELECTION"
	CartStoreMismatch    = "CART_STORE_MISMATCH"
	CartSessionMissing   = "CART_SESSION_MISSING"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
)
