// Package auth provides account registration, login and the interactive
// session for the terminal application.
//
// # Configuration
//
//	AUTH_BCRYPT_COST=12            # bcrypt cost factor
//	MIN_PASSWORD_LENGTH=3          # characters; bcrypt caps input at 72 bytes
//	AUTH_MAX_LOGIN_ATTEMPTS=5      # failed logins before a username is locked
//	AUTH_LOCKOUT_DURATION=5m       # how long the lock lasts
//	DEFAULT_SHELVES=Read,Reading,Want to Read
//
// # Sessions
//
// Login returns a *Session. The menus carry it in a context.Context:
//
//	session, err := authService.Login(username, password)
//	ctx = auth.WithSession(ctx, session)
//	...
//	if s, ok := auth.SessionFromContext(ctx); ok && s.IsAdmin { ... }
//
// Logout marks the session inactive; SessionFromContext stops returning it.
package auth
