package apperrors

// ErrorCode is the machine-readable error identifier
type ErrorCode string

const (
	// System and unknown errors
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError        ErrorCode = "DATABASE_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"

	// Generic business-logic codes
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeInvalidRequest   ErrorCode = "INVALID_REQUEST"
	CodeInvalidStatus    ErrorCode = "INVALID_STATUS"

	// Auth (identity itself lives in an external provider)
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeInvalidToken ErrorCode = "INVALID_TOKEN"
	CodeTokenExpired ErrorCode = "TOKEN_EXPIRED"

	// Payment flow
	CodeWalletUnavailable     ErrorCode = "WALLET_UNAVAILABLE"
	CodeInvoiceCreationFailed ErrorCode = "INVOICE_CREATION_FAILED"
)
