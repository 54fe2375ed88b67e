package ping

import "errors"

// Store failure sentinels. Storage implementations wrap these so callers
// can classify failures without knowing the backing engine.
var (
	// ErrStoreUnavailable indicates the backing store could not be reached.
	ErrStoreUnavailable = errors.New("ping store unavailable")
	// ErrStoreRead indicates a query against the store failed.
	ErrStoreRead = errors.New("ping store read failed")
	// ErrStoreWrite indicates an append to the store failed.
	ErrStoreWrite = errors.New("ping store write failed")
)

// ValidationKind discriminates client-caused ingest rejections.
type ValidationKind string

const (
	ValidationMissingBody  ValidationKind = "missing_body"
	ValidationMissingField ValidationKind = "missing_field"
	ValidationInvalidType  ValidationKind = "invalid_type"
	ValidationTooLong      ValidationKind = "too_long"
)

// ValidationError rejects an ingest payload. Message is safe to return to
// the client verbatim.
type ValidationError struct {
	Kind    ValidationKind
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// AsValidation unwraps err into a ValidationError, or nil.
func AsValidation(err error) *ValidationError {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr
	}
	return nil
}
