package impl

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/fx"

	"storefront/internal/domain/constants"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/gateway"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/store"
)

// authStore implements the AuthStore interface. The session snapshot lives
// in memory behind a mutex and is mirrored to durable storage; rehydration
// happens once at construction and never fails, a corrupt or expired
// snapshot simply degrades to logged-out.
type authStore struct {
	authGateway gateway.AuthGateway
	storage     service.SnapshotStorage
	alerts      service.AlertPublisher
	navigator   service.Navigator
	tokens      service.TokenInspector
	validate    *validator.Validate
	logger      *slog.Logger
	now         func() time.Time

	// inFlight implements the exhaust policy: a login or signup intent
	// issued while another is pending is dropped, not queued.
	inFlight atomic.Bool

	mu          sync.RWMutex
	session     *entity.Session
	errMsg      string
	logoutTimer *time.Timer
}

// AuthStoreParams holds dependencies for the auth store, injected by Fx.
type AuthStoreParams struct {
	fx.In

	Lc          fx.Lifecycle `optional:"true"`
	AuthGateway gateway.AuthGateway
	Storage     service.SnapshotStorage
	Alerts      service.AlertPublisher
	Navigator   service.Navigator
	Tokens      service.TokenInspector
	Logger      *slog.Logger
}

// NewAuthStore is the constructor for authStore. It rehydrates the persisted
// session before returning, so the store is immediately usable.
func NewAuthStore(params AuthStoreParams) store.AuthStore {
	srv := &authStore{
		authGateway: params.AuthGateway,
		storage:     params.Storage,
		alerts:      params.Alerts,
		navigator:   params.Navigator,
		tokens:      params.Tokens,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		logger:      params.Logger,
		now:         time.Now,
	}

	srv.restore()

	if params.Lc != nil {
		params.Lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				srv.stopLogoutTimer()

				return nil
			},
		})
	}

	return srv
}

// restore rehydrates the persisted session snapshot. Absent, unreadable,
// incomplete, or already-expired data leaves the store logged-out.
func (srv *authStore) restore() {
	var session entity.Session
	if err := srv.storage.Load(constants.StorageKeySession, &session); err != nil {
		if !errors.Is(err, service.ErrKeyNotFound) {
			srv.logger.Warn("Discarding unreadable session snapshot", slog.Any("error", err))
		}

		return
	}

	if !session.Valid() {
		srv.logger.Warn("Discarding incomplete session snapshot")

		return
	}

	remaining, ok := srv.tokens.Expiry(session.AccessToken, srv.now())
	if ok && remaining <= 0 {
		srv.logger.Info("Persisted session expired, starting logged out")
		if err := srv.storage.Delete(constants.StorageKeySession); err != nil {
			srv.logger.Warn("Failed to purge expired session", slog.Any("error", err))
		}

		return
	}

	srv.session = &session
	if ok {
		srv.armLogoutTimer(remaining)
	}
	srv.logger.Debug("Session rehydrated", slog.String("email", session.User.Email))
}

// Login authenticates and, on success, persists the session and navigates to
// the product listing.
func (srv *authStore) Login(ctx context.Context, input store.LoginInput) error {
	if !srv.inFlight.CompareAndSwap(false, true) {
		srv.logger.Debug("Login already in flight, dropping intent")

		return nil
	}
	defer srv.inFlight.Store(false)

	if err := srv.validate.Struct(input); err != nil {
		srv.recordFailure(domainerrors.ErrValidationFailed, "Please fill in all required fields")

		return errors.Wrap(domainerrors.ErrValidationFailed, "invalid login input")
	}

	srv.logger.Info("Logging in", slog.String("email", input.Email))

	session, err := srv.authGateway.Login(ctx, input.Email, input.Password)
	if err != nil {
		srv.recordFailure(err, "Login failed. Please try again.")
		srv.logger.Warn("Login failed", slog.String("email", input.Email), slog.Any("error", err))

		return errors.Wrap(err, "login failed")
	}

	srv.adoptSession(session)
	srv.logger.Info("Logged in", slog.String("email", session.User.Email))
	srv.navigator.Navigate(service.RouteProducts)

	return nil
}

// Signup creates an account. The backend logs the new account in, so the
// post-success path is identical to Login.
func (srv *authStore) Signup(ctx context.Context, input store.SignupInput) error {
	if !srv.inFlight.CompareAndSwap(false, true) {
		srv.logger.Debug("Signup already in flight, dropping intent")

		return nil
	}
	defer srv.inFlight.Store(false)

	if err := srv.validate.Struct(input); err != nil {
		srv.recordFailure(domainerrors.ErrValidationFailed, "Please fill in all required fields")

		return errors.Wrap(domainerrors.ErrValidationFailed, "invalid signup input")
	}

	srv.logger.Info("Signing up", slog.String("email", input.Email))

	session, err := srv.authGateway.Register(ctx, gateway.RegisterRequest{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  input.Password,
	})
	if err != nil {
		srv.recordFailure(err, "Signup failed. Please try again.")
		srv.logger.Warn("Signup failed", slog.String("email", input.Email), slog.Any("error", err))

		return errors.Wrap(err, "signup failed")
	}

	srv.adoptSession(session)
	srv.logger.Info("Signed up", slog.String("email", session.User.Email))
	srv.navigator.Navigate(service.RouteProducts)

	return nil
}

// ChangePassword rotates the credential. The session stays valid: the
// backend keeps the current token honored, so no logout happens here.
func (srv *authStore) ChangePassword(ctx context.Context, password string) error {
	if !srv.IsAuthenticated() {
		srv.recordFailure(domainerrors.ErrNotAuthenticated, "Kindly login to continue")

		return errors.Wrap(domainerrors.ErrNotAuthenticated, "change password requires a session")
	}

	if err := srv.validate.Var(password, "required,min=6"); err != nil {
		srv.recordFailure(domainerrors.ErrValidationFailed, "Please fill in all required fields")

		return errors.Wrap(domainerrors.ErrValidationFailed, "invalid password input")
	}

	srv.logger.Info("Changing password")

	user, err := srv.authGateway.ChangePassword(ctx, password)
	if err != nil {
		srv.recordFailure(err, "Failed to change password")
		srv.logger.Warn("Password change failed", slog.Any("error", err))

		return errors.Wrap(err, "failed to change password")
	}

	if user != nil {
		srv.mergeUser(user)
	}
	srv.logger.Info("Password changed")

	return nil
}

// Logout synchronously clears the session, purges the persisted session and
// catalog cache, and navigates to the auth view. It never touches the
// network: a dangling server-side session is acceptable.
func (srv *authStore) Logout() {
	srv.mu.Lock()
	if srv.logoutTimer != nil {
		srv.logoutTimer.Stop()
		srv.logoutTimer = nil
	}
	srv.session = nil
	srv.errMsg = ""
	srv.mu.Unlock()

	if err := srv.storage.Delete(constants.StorageKeySession); err != nil {
		srv.logger.Warn("Failed to purge session snapshot", slog.Any("error", err))
	}
	if err := srv.storage.Delete(constants.StorageKeyCatalog); err != nil {
		srv.logger.Warn("Failed to purge catalog cache", slog.Any("error", err))
	}

	srv.logger.Info("Logged out")
	srv.navigator.Navigate(service.RouteAuth)
}

// ForceLogout is invoked from the transport boundary when the backend
// rejects the current credential. Already logged-out callers are a no-op, so
// concurrent 401s collapse into a single logout.
func (srv *authStore) ForceLogout() {
	srv.mu.RLock()
	authenticated := srv.session.Valid()
	srv.mu.RUnlock()

	if !authenticated {
		return
	}

	srv.logger.Warn("Credential rejected by backend, forcing logout")
	srv.alerts.Danger("Session Expired kindly login")
	srv.Logout()
}

func (srv *authStore) IsAuthenticated() bool {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	return srv.session.Valid()
}

func (srv *authStore) UserEmail() string {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	if !srv.session.Valid() {
		return ""
	}

	return srv.session.User.Email
}

func (srv *authStore) UserDisplayName() string {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	if !srv.session.Valid() {
		return ""
	}

	return srv.session.User.DisplayName()
}

func (srv *authStore) UserID() string {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	if !srv.session.Valid() {
		return ""
	}

	return srv.session.User.ID
}

// Token returns the current bearer credential, empty when logged out. It
// satisfies the transport layer's token source contract.
func (srv *authStore) Token() string {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	if srv.session == nil {
		return ""
	}

	return srv.session.AccessToken
}

func (srv *authStore) Busy() bool {
	return srv.inFlight.Load()
}

func (srv *authStore) ConsumeError() string {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	msg := srv.errMsg
	srv.errMsg = ""

	return msg
}

// RememberCredentials persists the opt-in credential pair.
func (srv *authStore) RememberCredentials(email, password string) error {
	creds := entity.RememberedCredentials{Email: email, Password: password}
	if err := srv.storage.Save(constants.StorageKeyRememberedUser, creds); err != nil {
		return errors.Wrap(err, "failed to persist remembered credentials")
	}

	return nil
}

// RememberedCredentials loads the persisted credential pair, reporting false
// when none is stored.
func (srv *authStore) RememberedCredentials() (entity.RememberedCredentials, bool) {
	var creds entity.RememberedCredentials
	if err := srv.storage.Load(constants.StorageKeyRememberedUser, &creds); err != nil {
		if !errors.Is(err, service.ErrKeyNotFound) {
			srv.logger.Warn("Discarding unreadable remembered credentials", slog.Any("error", err))
		}

		return entity.RememberedCredentials{}, false
	}

	return creds, creds.Email != ""
}

func (srv *authStore) ForgetCredentials() error {
	if err := srv.storage.Delete(constants.StorageKeyRememberedUser); err != nil {
		return errors.Wrap(err, "failed to forget remembered credentials")
	}

	return nil
}

// adoptSession installs a fresh session: memory first, then the durable
// mirror, then the auto-logout timer.
func (srv *authStore) adoptSession(session *entity.Session) {
	srv.mu.Lock()
	srv.session = session
	srv.errMsg = ""
	srv.mu.Unlock()

	if err := srv.storage.Save(constants.StorageKeySession, session); err != nil {
		// A failed mirror only costs rehydration on the next start.
		srv.logger.Warn("Failed to persist session snapshot", slog.Any("error", err))
	}

	if remaining, ok := srv.sessionLifetime(session); ok {
		srv.armLogoutTimer(remaining)
	}
}

// sessionLifetime derives the auto-logout delay: the backend-reported
// lifetime when present, else the token's own expiry claim.
func (srv *authStore) sessionLifetime(session *entity.Session) (time.Duration, bool) {
	if session.ExpiresIn > 0 {
		return time.Duration(session.ExpiresIn) * time.Second, true
	}

	remaining, ok := srv.tokens.Expiry(session.AccessToken, srv.now())
	if !ok || remaining <= 0 {
		return 0, false
	}

	return remaining, true
}

// armLogoutTimer schedules a one-shot deferred logout, replacing any timer
// armed for a previous session.
func (srv *authStore) armLogoutTimer(d time.Duration) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if srv.logoutTimer != nil {
		srv.logoutTimer.Stop()
	}
	srv.logoutTimer = time.AfterFunc(d, func() {
		srv.logger.Info("Session lifetime elapsed, logging out")
		srv.Logout()
	})
}

func (srv *authStore) stopLogoutTimer() {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if srv.logoutTimer != nil {
		srv.logoutTimer.Stop()
		srv.logoutTimer = nil
	}
}

// mergeUser folds the backend's partial user refresh into the session,
// keeping fields the response omitted.
func (srv *authStore) mergeUser(user *entity.User) {
	srv.mu.Lock()
	if srv.session != nil {
		if user.ID != "" {
			srv.session.User.ID = user.ID
		}
		if user.Email != "" {
			srv.session.User.Email = user.Email
		}
		if user.FirstName != "" {
			srv.session.User.FirstName = user.FirstName
		}
		if user.LastName != "" {
			srv.session.User.LastName = user.LastName
		}
	}
	session := srv.session
	srv.mu.Unlock()

	if session != nil {
		if err := srv.storage.Save(constants.StorageKeySession, session); err != nil {
			srv.logger.Warn("Failed to persist session snapshot", slog.Any("error", err))
		}
	}
}

// recordFailure stores the presentable message and publishes it as an error
// banner.
func (srv *authStore) recordFailure(err error, fallback string) {
	msg := userMessage(err, fallback)

	srv.mu.Lock()
	srv.errMsg = msg
	srv.mu.Unlock()

	srv.alerts.Danger(msg)
}
