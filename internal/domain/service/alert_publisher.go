// Package service defines domain-level service contracts implemented by the
// infrastructure layer.
package service

import "storefront/internal/domain/entity"

// AlertPublisher defines the fire-and-forget channel for transient
// success/error/warning/info messages consumed by a banner view.
// Publishing must never block the caller.
type AlertPublisher interface {
	// Success publishes a success banner message.
	Success(message string)

	// Danger publishes an error banner message.
	Danger(message string)

	// Warning publishes a warning banner message.
	Warning(message string)

	// Info publishes an informational banner message.
	Info(message string)

	// Subscribe registers a consumer and returns its receive channel together
	// with a cancel function that unregisters it.
	Subscribe() (<-chan entity.Alert, func())

	// Close releases the channel; further publishes are dropped.
	Close() error
}
