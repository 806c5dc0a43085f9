package ports

import "context"

// Authorizer decides whether a principal may use a capability. It returns
// nil when allowed, domain.ErrAuthFailure for anonymous callers and
// domain.ErrPermissionDenied otherwise.
type Authorizer interface {
	Authorize(ctx context.Context, principal uint, capability string) error
}
