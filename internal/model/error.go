package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	Redirect      string `json:"redirect,omitempty"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeMissingField       = "MISSING_FIELD"
	ErrCodeInvalidValue       = "INVALID_VALUE"
	ErrCodeProductNotFound    = "PRODUCT_NOT_FOUND"
	ErrCodeProductUnavailable = "PRODUCT_UNAVAILABLE"
	ErrCodeOrderNotFound      = "ORDER_NOT_FOUND"
	ErrCodeEmptyCart          = "EMPTY_CART"
	ErrCodeAuthRequired       = "AUTH_REQUIRED"
	ErrCodeCheckoutInProgress = "CHECKOUT_IN_PROGRESS"
	ErrCodeIllegalTransition  = "ILLEGAL_TRANSITION"
	ErrCodeRejectNotArmed     = "REJECT_NOT_ARMED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeBackendUnavailable = "BACKEND_UNAVAILABLE"
	ErrCodeBackendRejected    = "BACKEND_REJECTED"
	ErrCodeUnauthorised       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is matches domain errors by code so wrapped copies compare equal.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// ValidationError reports a missing or malformed field.
func ValidationError(field, message string) *DomainError {
	return NewDomainError(ErrCodeMissingField, field+": "+message)
}

// Common domain errors
var (
	ErrProductNotFound    = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrProductUnavailable = NewDomainError(ErrCodeProductUnavailable, "Product is not available")
	ErrOrderNotFound      = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrEmptyCart          = NewDomainError(ErrCodeEmptyCart, "Cart is empty")
	ErrAuthRequired       = NewDomainError(ErrCodeAuthRequired, "Login required before checkout")
	ErrCheckoutInProgress = NewDomainError(ErrCodeCheckoutInProgress, "An order is already being submitted")
	ErrIllegalTransition  = NewDomainError(ErrCodeIllegalTransition, "Transition not allowed from the current status")
	ErrRejectNotArmed     = NewDomainError(ErrCodeRejectNotArmed, "Rejection must be armed before it is confirmed")
	ErrInvalidCredentials = NewDomainError(ErrCodeInvalidCredentials, "Invalid credentials")
	ErrStaffAuthRequired  = NewDomainError(ErrCodeUnauthorised, "Staff login required")
)
