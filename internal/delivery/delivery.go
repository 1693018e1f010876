// Package delivery defines the contract every front end of the application
// implements.
package delivery

import "context"

// Delivery is a runnable front end over the stores.
type Delivery interface {
	// Serve runs the front end until it finishes or ctx is canceled.
	Serve(ctx context.Context) error
}
