// Package i18n provides internationalization support for the POS service.
package i18n

// Error message translation keys.
const (
	// ErrKeyInvalidRequest indicates an invalid request.
	ErrKeyInvalidRequest = "error.invalid_request"
	// ErrKeyInvalidRequestBody indicates an invalid request body.
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	// ErrKeyInternalError indicates an internal server error.
	ErrKeyInternalError = "error.internal_error"
	// ErrKeyUnauthorized indicates missing or invalid authentication.
	ErrKeyUnauthorized = "error.unauthorized"
	// ErrKeyInvalidCredentials indicates invalid login credentials (user not registered or wrong password).
	ErrKeyInvalidCredentials = "error.invalid_credentials"
	// ErrKeyAPIKeyRequired indicates that an API key is required.
	ErrKeyAPIKeyRequired = "error.api_key_required"
	// ErrKeyInvalidAPIKey indicates an invalid API key.
	ErrKeyInvalidAPIKey = "error.invalid_api_key"
	// ErrKeyForbidden indicates insufficient permissions.
	ErrKeyForbidden = "error.forbidden"
	// ErrKeyNotFound indicates a resource was not found.
	ErrKeyNotFound = "error.not_found"
	// ErrKeyRateLimitExceeded indicates rate limit exceeded.
	ErrKeyRateLimitExceeded = "error.rate_limit_exceeded"
	// ErrKeyConflict indicates a conflict with current state.
	ErrKeyConflict = "error.conflict"
	// ErrKeyInvalidToken indicates an invalid or expired JWT token.
	ErrKeyInvalidToken = "error.invalid_token"
	// ErrKeyTokenRequired indicates that a JWT token is required.
	ErrKeyTokenRequired = "error.token_required"
	// ErrKeyTimeout indicates a request timeout.
	ErrKeyTimeout = "error.timeout"
	// ErrKeyInsufficientStock indicates a sale exceeding available stock.
	ErrKeyInsufficientStock = "error.insufficient_stock"
	// ErrKeyDuplicateCode indicates a barcode already in use.
	ErrKeyDuplicateCode = "error.duplicate_code"
	// ErrKeyCategoryInUse indicates a category still referenced by products.
	ErrKeyCategoryInUse = "error.category_in_use"
	// ErrKeyUnknownPayment indicates a payment method or type outside the fixed tables.
	ErrKeyUnknownPayment = "error.unknown_payment"
)

// Success message translation keys.
const (
	// SuccessKeySaleCompleted indicates a successful sale finalization.
	SuccessKeySaleCompleted = "success.sale_completed"
	// SuccessKeyCartSaved indicates a successfully persisted cart.
	SuccessKeyCartSaved = "success.cart_saved"
)
