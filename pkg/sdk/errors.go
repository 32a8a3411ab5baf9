package passpredict

import "github.com/kailas-cloud/passpredict/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrMissingField = domain.ErrMissingField
	ErrInvalidInput = domain.ErrInvalidInput
)

// MissingFieldError names the absent input field. Use errors.As() to extract it.
type MissingFieldError = domain.MissingFieldError
