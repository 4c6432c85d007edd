package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
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
	ErrNotFound           = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists      = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidArgument    = NewDomainError("INVALID_ARGUMENT", "Invalid argument provided")
	ErrInvalidTransition  = NewDomainError("INVALID_TRANSITION", "Status transition not permitted")
	ErrInvalidState       = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrMissingField       = NewDomainError("MISSING_FIELD", "Required field is missing")
	ErrInsufficientStock  = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
	ErrOutOfStock         = NewDomainError("OUT_OF_STOCK", "One or more lines exceed available stock")
	ErrOrderLocked        = NewDomainError("ORDER_LOCKED", "Order is received and locked against changes")
	ErrConfigurationError = NewDomainError("CONFIGURATION_ERROR", "Required configuration is missing")
	ErrUnauthorized       = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden          = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrConcurrency        = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
)
