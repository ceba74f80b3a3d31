package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON         = "INVALID_JSON"
	ErrCodeValidation          = "VALIDATION_ERROR"
	ErrCodeOrderNotFound       = "ORDER_NOT_FOUND"
	ErrCodeProductNotFound     = "PRODUCT_NOT_FOUND"
	ErrCodeOrderCreation       = "ORDER_CREATION_FAILED"
	ErrCodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	ErrCodeInvalidStatus       = "INVALID_STATUS"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

// DomainError is a business error with a stable code.
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
	ErrOrderNotFound             = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrProductNotFound           = NewDomainError(ErrCodeProductNotFound, "One or more products not found")
	ErrOrderCreation             = NewDomainError(ErrCodeOrderCreation, "Products not found")
	ErrProductServiceUnavailable = NewDomainError(ErrCodeUpstreamUnavailable, "Product service unavailable")
	ErrInvalidStatus             = NewDomainError(ErrCodeInvalidStatus, "Invalid order status")
)
