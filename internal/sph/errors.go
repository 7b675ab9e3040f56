package sph

import "errors"

// Domain errors for body and dynamics construction.
var (
	// ErrMaterialCapability indicates a dynamics kernel asked a body's
	// material for a capability it does not implement.
	ErrMaterialCapability = errors.New("sph: material lacks required capability")

	// ErrEmptyBody indicates an operation that needs particles was given a
	// body with none.
	ErrEmptyBody = errors.New("sph: body has no particles")

	// ErrStructureChanged indicates the particle store was resized in the
	// middle of an interaction pass. Structural changes are only legal
	// between passes.
	ErrStructureChanged = errors.New("sph: particle store changed during interaction pass")
)
