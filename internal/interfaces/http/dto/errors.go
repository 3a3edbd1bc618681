package dto

// Error code constants used by the facade
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeValidation is used when request binding fails
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeConflict is used for state conflicts, e.g. a checkout already
	// in flight
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeUnauthorized is used when the backend rejects the session
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeBackend is used for backend-reported failures
	ErrCodeBackend = "ERR_BACKEND"
	// ErrCodeBackendUnavailable is used when the backend cannot be reached
	ErrCodeBackendUnavailable = "ERR_BACKEND_UNAVAILABLE"
	// ErrCodeInternal is used for internal facade errors
	ErrCodeInternal = "ERR_INTERNAL"
)
