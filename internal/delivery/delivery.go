// Package delivery defines the contract every long-lived transport server
// satisfies so the application can start them uniformly.
package delivery

import "context"

// Delivery is a serving surface (HTTP today) started by the application.
type Delivery interface {
	// Serve blocks until the server stops or fails.
	Serve(ctx context.Context) error
}
