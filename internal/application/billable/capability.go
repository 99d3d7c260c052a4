package billable

import (
	"context"

	"github.com/creatorhub/creatorhub/internal/domain/entitlement"
)

// Invocation is what a capability learns about the caller. Tier is FULL or
// LIMITED; denied callers never reach a capability.
type Invocation struct {
	UserID string
	Tier   entitlement.AccessTier
}

// Result is a capability's output. Data goes to the client; Title and Body
// are stored in the content library when Persist is set.
type Result struct {
	Title    string
	Body     string
	Data     any
	Metadata map[string]any
	Persist  bool
}

// Capability performs the upstream work of one feature. Implementations
// validate their input when constructed, so Run only fails upstream.
type Capability interface {
	Run(ctx context.Context, inv Invocation) (*Result, error)
}

type CapabilityFunc func(ctx context.Context, inv Invocation) (*Result, error)

func (f CapabilityFunc) Run(ctx context.Context, inv Invocation) (*Result, error) {
	return f(ctx, inv)
}
