package store

import (
	"context"

	"storefront/internal/domain/entity"
)

// LoginInput defines the credentials required to log in.
type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// SignupInput defines the data required to create an account.
type SignupInput struct {
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
	Email     string `validate:"required,email"`
	Password  string `validate:"required"`
}

// AuthStore holds the current session and performs the auth operations.
// The session snapshot is persisted to durable local storage and rehydrated
// at construction; corrupt or absent data degrades to logged-out, never an
// error.
type AuthStore interface {
	// Login authenticates and, on success, persists the session and
	// navigates to the product listing. A login intent issued while another
	// is in flight is dropped (exhaust policy).
	Login(ctx context.Context, input LoginInput) error

	// Signup creates an account; same post-success shape as Login.
	Signup(ctx context.Context, input SignupInput) error

	// ChangePassword rotates the credential. The session stays valid:
	// a password change does not log the user out client-side.
	ChangePassword(ctx context.Context, password string) error

	// Logout synchronously clears the in-memory session, purges the
	// persisted session and catalog cache, and navigates to the auth view.
	Logout()

	// ForceLogout is the authorization-failure path: it surfaces a session
	// expired alert and then logs out. Invoked from the transport boundary.
	ForceLogout()

	// Derived, null-safe projections of the session.
	IsAuthenticated() bool
	UserEmail() string
	UserDisplayName() string
	UserID() string

	// Token returns the current bearer credential, empty when logged out.
	Token() string

	// Busy reports whether an auth operation is in flight.
	Busy() bool

	// ConsumeError returns the recorded error message and clears it.
	ConsumeError() string

	// Opt-in remember-me credential pair, persisted independently of the
	// session snapshot.
	RememberCredentials(email, password string) error
	RememberedCredentials() (entity.RememberedCredentials, bool)
	ForgetCredentials() error
}
