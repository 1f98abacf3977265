package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message,omitempty"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON         = "INVALID_JSON"
	ErrCodeMissingField        = "MISSING_FIELD"
	ErrCodeOrderNotFound       = "ORDER_NOT_FOUND"
	ErrCodeProductNotFound     = "PRODUCT_NOT_FOUND"
	ErrCodeUserNotFound        = "USER_NOT_FOUND"
	ErrCodeInvalidQuantity     = "INVALID_QUANTITY"
	ErrCodeSignatureInvalid    = "SIGNATURE_INVALID"
	ErrCodeTransitionForbidden = "TRANSITION_FORBIDDEN"
	ErrCodeNotCancellable      = "ORDER_NOT_CANCELLABLE"
	ErrCodeDuplicateOrder      = "DUPLICATE_ORDER_NUMBER"
	ErrCodeInvalidOTP          = "INVALID_OTP"
	ErrCodeExpiredOTP          = "EXPIRED_OTP"
	ErrCodeGatewayFailure      = "GATEWAY_FAILURE"
	ErrCodeUnauthorised        = "UNAUTHORIZED"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

// DomainError carries a machine-readable code alongside the message so the
// HTTP layer can map business failures to status codes without string matching.
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
	ErrOrderNotFound        = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrProductNotFound      = NewDomainError(ErrCodeProductNotFound, "One or more products not found")
	ErrUserNotFound         = NewDomainError(ErrCodeUserNotFound, "User not found")
	ErrInvalidQuantity      = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrSignatureInvalid     = NewDomainError(ErrCodeSignatureInvalid, "Payment verification failed")
	ErrTransitionForbidden  = NewDomainError(ErrCodeTransitionForbidden, "Order status cannot be changed from its current state")
	ErrOrderNotCancellable  = NewDomainError(ErrCodeNotCancellable, "Order cannot be cancelled")
	ErrDuplicateOrderNumber = NewDomainError(ErrCodeDuplicateOrder, "Order number already exists")
	ErrInvalidOTP           = NewDomainError(ErrCodeInvalidOTP, "Invalid OTP")
	ErrExpiredOTP           = NewDomainError(ErrCodeExpiredOTP, "OTP expired")
	ErrGatewayFailure       = NewDomainError(ErrCodeGatewayFailure, "Payment gateway request failed")
)
