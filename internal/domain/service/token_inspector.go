package service

import "time"

// TokenInspector extracts client-relevant facts from a bearer credential
// without verifying it: verification is the backend's job, the client only
// schedules its own auto-logout from the expiry.
type TokenInspector interface {
	// Expiry returns the remaining lifetime of the token. ok is false when
	// the token carries no readable expiry.
	Expiry(token string, now time.Time) (remaining time.Duration, ok bool)
}
