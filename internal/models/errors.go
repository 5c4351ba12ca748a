package models

import "errors"

// Error categories. Wrap with fmt.Errorf("...: %w", ErrX) and test with
// errors.Is at the boundary. Quota excess is a business outcome, not an
// error, and is reported through QuotaExcess values instead.
var (
	// ErrValidation covers malformed submission input (phone, name, empty
	// area selection). Raised before any store mutation.
	ErrValidation = errors.New("validation error")

	// ErrConfiguration covers missing credentials, spreadsheet settings, or
	// a configuration sheet without the required columns.
	ErrConfiguration = errors.New("configuration error")

	// ErrPersistence covers row-store read/write failures and append
	// acknowledgements that do not expose the inserted row position.
	ErrPersistence = errors.New("persistence error")
)
