package auth

import (
	"context"
	"time"

	"github.com/mrlokans/plotpoint/internal/entities"
)

// Session is the authenticated state of one interactive login. It is created
// by Service.Login and lives until Logout or process exit.
type Session struct {
	UserID   uint
	Username string
	IsAdmin  bool
	JoinedAt time.Time

	loggedOut bool
}

func newSession(user *entities.User) *Session {
	return &Session{
		UserID:   user.ID,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
		JoinedAt: user.JoinedAt,
	}
}

// Active reports whether the session is still logged in. A nil session is
// anonymous.
func (s *Session) Active() bool {
	return s != nil && !s.loggedOut
}

// Logout ends the session. Further calls are no-ops.
func (s *Session) Logout() {
	if s != nil {
		s.loggedOut = true
	}
}

type sessionKey struct{}

// WithSession returns a context carrying the session.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the active session stored in ctx. A logged out
// session is reported as absent.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*Session)
	if !ok || !s.Active() {
		return nil, false
	}
	return s, true
}
