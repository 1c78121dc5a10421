// Package delivery defines the contract every transport entrypoint satisfies.
package delivery

import "context"

// Delivery is a long-running transport (the client API, the stub backend).
// Serve blocks until the transport stops or fails.
type Delivery interface {
	Serve(ctx context.Context) error
}
