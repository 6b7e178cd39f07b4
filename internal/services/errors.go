package services

import (
	"errors"
	"fmt"

	"github.com/ledgerline/contracts/internal/validation"
)

var (
	// ErrNotFound is returned when a contract (or a record it references)
	// does not exist.
	ErrNotFound = errors.New("contract_not_found")

	// ErrBadTransition is returned for lifecycle moves the state machine
	// does not allow (submit twice, cancel a draft, edit after cancel).
	ErrBadTransition = errors.New("invalid_lifecycle_transition")
)

// ValidationError blocks a save and carries per-field violations back to
// the caller.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", map[string]string(e.Violations))
}

// AsValidation unwraps err into a *ValidationError when it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
