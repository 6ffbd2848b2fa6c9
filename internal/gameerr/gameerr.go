// Package gameerr defines the typed error kinds every reducer returns.
// The source system returns bare strings; this package keeps the same
// client-visible text contract while giving the HTTP layer something to
// switch on for status codes.
package gameerr

import "fmt"

type Kind string

const (
	NotFound             Kind = "NotFound"
	NotOwned             Kind = "NotOwned"
	InvalidSlot          Kind = "InvalidSlot"
	Occupied             Kind = "Occupied"
	NotStackable         Kind = "NotStackable"
	CannotMerge          Kind = "CannotMerge"
	InsufficientResources Kind = "InsufficientResources"
	InventoryFull        Kind = "InventoryFull"
	TooFar               Kind = "TooFar"
	AlreadyHarvested     Kind = "AlreadyHarvested"
	Destroyed            Kind = "Destroyed"
	Cooldown             Kind = "Cooldown"
	Internal             Kind = "Internal"
)

// GameError is the concrete error type every reducer returns on failure.
// Its Error() string is exactly what a client sees, matching the source's
// "verbatim error string" propagation policy.
type GameError struct {
	Kind    Kind
	Message string
}

func (e *GameError) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func New(kind Kind, format string, args ...interface{}) *GameError {
	return &GameError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the Kind from an error, defaulting to Internal for any
// error that did not originate as a *GameError (a bug, not a validation
// failure, per §7's propagation policy).
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	if ge, ok := err.(*GameError); ok {
		return ge.Kind
	}
	return Internal
}
