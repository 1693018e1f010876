package entity

// User is the authenticated account as returned by the auth endpoints.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// DisplayName returns the user's full name for presentation.
func (u User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}

// Session is the client-side authentication snapshot: the bearer credential
// plus the user it belongs to. It is persisted verbatim to durable local
// storage and rehydrated at store construction.
type Session struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`

	// ExpiresIn is the token lifetime in seconds when the backend reports
	// one. Zero means the lifetime must be derived from the token itself.
	ExpiresIn int64 `json:"expiresIn,omitempty"`
}

// Valid reports whether the session carries both a token and a user,
// the definition of "authenticated".
func (s *Session) Valid() bool {
	return s != nil && s.AccessToken != "" && s.User.ID != ""
}

// RememberedCredentials is the opt-in "remember me" pair persisted under its
// own storage key, independent of the session snapshot.
type RememberedCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
