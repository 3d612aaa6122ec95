package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeMissingField       = "MISSING_FIELD"
	ErrCodeTaxIDTaken         = "TAX_ID_TAKEN"
	ErrCodeEmailTaken         = "EMAIL_TAKEN"
	ErrCodeTenantNotFound     = "TENANT_NOT_FOUND"
	ErrCodeCategoryNotFound   = "CATEGORY_NOT_FOUND"
	ErrCodeCategoryInUse      = "CATEGORY_IN_USE"
	ErrCodeProductNotFound    = "PRODUCT_NOT_FOUND"
	ErrCodeAddonNotFound      = "ADDON_NOT_FOUND"
	ErrCodeImageNotFound      = "IMAGE_NOT_FOUND"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeInvalidSignature   = "INVALID_SIGNATURE"
	ErrCodeShopClosed         = "SHOP_CLOSED"
	ErrCodeNoSubscription     = "NO_SUBSCRIPTION"
	ErrCodeUnauthorised       = "UNAUTHORIZED"
	ErrCodeUpstream           = "UPSTREAM_ERROR"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// DomainError is a business-logic error with a stable machine code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrTaxIDTaken         = NewDomainError(ErrCodeTaxIDTaken, "A restaurant is already registered with this tax identifier")
	ErrEmailTaken         = NewDomainError(ErrCodeEmailTaken, "An account already exists for this email")
	ErrTenantNotFound     = NewDomainError(ErrCodeTenantNotFound, "Restaurant not found")
	ErrCategoryNotFound   = NewDomainError(ErrCodeCategoryNotFound, "Category not found")
	ErrCategoryInUse      = NewDomainError(ErrCodeCategoryInUse, "Category still has products assigned to it")
	ErrProductNotFound    = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrAddonNotFound      = NewDomainError(ErrCodeAddonNotFound, "One or more add-ons not found")
	ErrImageNotFound      = NewDomainError(ErrCodeImageNotFound, "Image not found")
	ErrInvalidCredentials = NewDomainError(ErrCodeInvalidCredentials, "Invalid email or password")
	ErrInvalidSignature   = NewDomainError(ErrCodeInvalidSignature, "Webhook signature verification failed")
	ErrShopClosed         = NewDomainError(ErrCodeShopClosed, "The restaurant is currently closed")
	ErrNoSubscription     = NewDomainError(ErrCodeNoSubscription, "No billing subscription on record")
)
