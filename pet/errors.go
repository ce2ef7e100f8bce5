package pet

import (
	"errors"
	"fmt"
)

var (
	// ErrLookup is matched by every LookupError.
	ErrLookup = errors.New("pet: lookup failed")
	// ErrRenderResourceMissing is returned by engines when an image key has no loaded frame.
	ErrRenderResourceMissing = errors.New("pet: render resource missing")
	// ErrInvalidChain reports a malformed evolution chain.
	ErrInvalidChain = errors.New("pet: invalid evolution chain")
	// ErrBusy is returned by Play while a feed or evolution owns the body animation.
	ErrBusy = errors.New("pet: busy")
)

// LookupError reports a species id or animation name missing from the static data.
type LookupError struct {
	Kind string
	Name string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("pet: %s %q not found", e.Kind, e.Name)
}

func (e *LookupError) Is(target error) bool {
	return target == ErrLookup
}
