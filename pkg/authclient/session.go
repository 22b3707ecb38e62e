package authclient

import (
	"context"
	"errors"
	"sync"
	"time"
)

// State is the session lifecycle position.
type State int

const (
	// StateIdle is the state before the first Rehydrate.
	StateIdle State = iota
	// StateLoading covers the initial rehydration and in-flight login or
	// register calls, and nothing else.
	StateLoading
	// StateAuthenticated means user and token are set, together.
	StateAuthenticated
	// StateUnauthenticated means user and token are cleared, together.
	StateUnauthenticated
	// StateFailed is Unauthenticated plus a recorded error message from the
	// last login or register attempt. For gating purposes it is identical to
	// StateUnauthenticated.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ValidationError reports a client-side input guard failure. No request has
// been sent when one is returned.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

var ErrSelfDelete = errors.New("cannot delete your own account")
var ErrSelfRoleChange = errors.New("cannot change your own role")

// Snapshot is a point-in-time view of the session.
type Snapshot struct {
	State           State
	User            *User
	Token           string
	IsAuthenticated bool
	Loading         bool
	Err             string
}

const defaultStoreTTL = 7 * 24 * time.Hour

// Session owns the client-side authentication state. All mutation goes
// through its methods; operations are serialized so concurrent login attempts
// cannot leave a token without an identity or the reverse.
type Session struct {
	client   *Client
	store    TokenStore
	storeTTL time.Duration

	// ops serializes Rehydrate, Login, Register and Logout.
	ops sync.Mutex
	// mu guards the state fields below.
	mu    sync.RWMutex
	state State
	user  *User
	token string
	err   string
}

// NewSession wires a Session to the client's 401 event: any unauthorized
// response from any request forces this session back to unauthenticated.
func NewSession(client *Client, store TokenStore) *Session {
	s := &Session{
		client:   client,
		store:    store,
		storeTTL: defaultStoreTTL,
		state:    StateIdle,
	}
	client.OnUnauthorized(s.forceUnauthenticated)
	return s
}

// SetTokenTTL overrides how long a freshly issued token is persisted.
func (s *Session) SetTokenTTL(ttl time.Duration) {
	if ttl > 0 {
		s.storeTTL = ttl
	}
}

// Snapshot returns the current session state. IsAuthenticated is derived:
// true iff a user is held.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var user *User
	if s.user != nil {
		u := *s.user
		user = &u
	}
	return Snapshot{
		State:           s.state,
		User:            user,
		Token:           s.token,
		IsAuthenticated: s.user != nil,
		Loading:         s.state == StateLoading,
		Err:             s.err,
	}
}

// CurrentUser returns the cached identity, or nil.
func (s *Session) CurrentUser() *User {
	return s.Snapshot().User
}

// Rehydrate rebuilds identity from the persisted token. With no token it
// resolves to unauthenticated immediately; with one it asks the server who
// the token belongs to, and purges the token if the server rejects it.
func (s *Session) Rehydrate(ctx context.Context) error {
	s.ops.Lock()
	defer s.ops.Unlock()
	return s.rehydrate(ctx)
}

func (s *Session) rehydrate(ctx context.Context) error {
	token, ok := s.store.Get()
	if !ok {
		s.set(StateUnauthenticated, nil, "", "")
		return nil
	}

	s.set(StateLoading, nil, "", "")
	user, err := s.client.Me(ctx)
	if err != nil {
		// Expired or invalid token. The transport has already cleared the
		// store on 401; clear again to cover transport-level failures.
		_ = s.store.Clear()
		s.set(StateUnauthenticated, nil, "", "")
		return nil
	}

	s.set(StateAuthenticated, user, token, "")
	return nil
}

// Login exchanges credentials for a token, persists it and rehydrates the
// identity. The token store is untouched on failure.
func (s *Session) Login(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		err := ValidationError("email and password are required")
		s.setError(err.Error())
		return err
	}

	s.ops.Lock()
	defer s.ops.Unlock()

	s.set(StateLoading, nil, "", "")
	token, err := s.client.Login(ctx, email, password)
	if err != nil {
		s.setError(errorMessage(err, "login failed"))
		return err
	}

	return s.adopt(ctx, token)
}

// Register creates an account and signs in as it. Role defaults to user; the
// server decides whether the caller may request anything higher.
func (s *Session) Register(ctx context.Context, name, email, password, role string) error {
	if name == "" || email == "" || password == "" {
		err := ValidationError("name, email and password are required")
		s.setError(err.Error())
		return err
	}
	if role == "" {
		role = RoleUser
	}

	s.ops.Lock()
	defer s.ops.Unlock()

	s.set(StateLoading, nil, "", "")
	token, err := s.client.Register(ctx, name, email, password, role)
	if err != nil {
		s.setError(errorMessage(err, "registration failed"))
		return err
	}

	return s.adopt(ctx, token)
}

// adopt persists a freshly issued token and loads the identity behind it.
func (s *Session) adopt(ctx context.Context, token string) error {
	if err := s.store.Set(token, s.storeTTL); err != nil {
		s.setError("could not persist session token")
		return err
	}

	user, err := s.client.Me(ctx)
	if err != nil {
		_ = s.store.Clear()
		s.setError(errorMessage(err, "could not load user"))
		return err
	}

	s.set(StateAuthenticated, user, token, "")
	return nil
}

// Logout clears the persisted token and the in-memory identity. No server
// call: token invalidation is the server's concern.
func (s *Session) Logout() {
	s.ops.Lock()
	defer s.ops.Unlock()
	_ = s.store.Clear()
	s.set(StateUnauthenticated, nil, "", "")
}

// LogoutServer additionally asks the server to revoke the token before
// clearing local state. Local state is cleared even when revocation fails.
func (s *Session) LogoutServer(ctx context.Context) error {
	s.ops.Lock()
	defer s.ops.Unlock()
	err := s.client.Logout(ctx)
	_ = s.store.Clear()
	s.set(StateUnauthenticated, nil, "", "")
	return err
}

// ClearError drops the recorded error message.
func (s *Session) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
	if s.state == StateFailed {
		s.state = StateUnauthenticated
	}
}

// ListUsers returns all accounts. Admin only; the server enforces the role.
func (s *Session) ListUsers(ctx context.Context) ([]User, error) {
	return s.client.ListUsers(ctx)
}

// UpdateUser applies patch to a user, refusing a role change on the caller's
// own account before any request is sent. The server enforces the same rule.
func (s *Session) UpdateUser(ctx context.Context, id string, patch UserPatch) (*User, error) {
	if cur := s.CurrentUser(); cur != nil && cur.ID == id && patch.Role != nil && *patch.Role != cur.Role {
		return nil, ErrSelfRoleChange
	}
	return s.client.UpdateUser(ctx, id, patch)
}

// DeleteUser removes a user, refusing the caller's own account before any
// request is sent. The server enforces the same rule.
func (s *Session) DeleteUser(ctx context.Context, id string) error {
	if cur := s.CurrentUser(); cur != nil && cur.ID == id {
		return ErrSelfDelete
	}
	return s.client.DeleteUser(ctx, id)
}

// forceUnauthenticated is the 401 event subscriber: the transport has cleared
// the store, so drop the in-memory pair too.
func (s *Session) forceUnauthenticated() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateUnauthenticated
	s.user = nil
	s.token = ""
}

func (s *Session) set(state State, user *User, token, errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.user = user
	s.token = token
	s.err = errMsg
}

func (s *Session) setError(msg string) {
	s.set(StateFailed, nil, "", msg)
}

func errorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return fallback
}
