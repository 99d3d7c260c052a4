package entitlement

import "errors"

var (
	// ErrUnknownFeature means the caller referenced a feature the catalog
	// does not define. It is a configuration fault, never a user error.
	ErrUnknownFeature = errors.New("unknown feature")

	ErrUnknownPlan = errors.New("unknown plan")

	ErrNegativeCost = errors.New("token cost must not be negative")
)
