package model

// ErrorResponse represents a standardised error response.
// Detail is either a message or a list of field errors.
type ErrorResponse struct {
	Detail any `json:"detail"`
}

// Standard error codes for domain errors
const (
	ErrCodeProductNotFound = "PRODUCT_NOT_FOUND"
)

// Domain errors for business logic
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
	ErrProductNotFound = NewDomainError(ErrCodeProductNotFound, "Product not found")
)
