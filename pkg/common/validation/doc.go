// Package validation provides common validation utilities for configuration
// parameters across the gridflow library.
//
// Every helper returns a *errors.ValidationError, so callers can match the
// result with errors.Is(err, errors.ErrInvalidConfiguration).
package validation
