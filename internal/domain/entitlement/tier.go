package entitlement

import "fmt"

// AccessTier is the three-way answer for a (feature, plan) pair. The zero
// value is AccessDenied so a missing matrix cell can never grant access.
type AccessTier int

const (
	AccessDenied AccessTier = iota
	AccessLimited
	AccessFull
)

func (t AccessTier) String() string {
	switch t {
	case AccessFull:
		return "FULL"
	case AccessLimited:
		return "LIMITED"
	default:
		return "DENIED"
	}
}

// Allowed reports whether the tier permits the action at all.
func (t AccessTier) Allowed() bool {
	return t == AccessFull || t == AccessLimited
}

func (t AccessTier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *AccessTier) UnmarshalText(b []byte) error {
	switch string(b) {
	case "FULL":
		*t = AccessFull
	case "LIMITED":
		*t = AccessLimited
	case "DENIED":
		*t = AccessDenied
	default:
		return fmt.Errorf("unknown access tier %q", string(b))
	}
	return nil
}
