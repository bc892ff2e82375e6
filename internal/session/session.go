// Package session models the caller's authentication state as an explicit
// value instead of a loose logged-in flag. The validated token is the source
// of truth; a Session is only a derived view of it.
package session

import "github.com/google/uuid"

type Session struct {
	loggedIn bool
	userID   uuid.UUID
	email    string
	role     string
}

func LoggedOut() Session {
	return Session{}
}

func LoggedIn(userID uuid.UUID, email, role string) Session {
	return Session{loggedIn: true, userID: userID, email: email, role: role}
}

func (s Session) LoggedIn() bool { return s.loggedIn }

func (s Session) IsAdmin() bool { return s.loggedIn && s.role == "admin" }

// UserID is only meaningful when LoggedIn reports true.
func (s Session) UserID() uuid.UUID { return s.userID }

func (s Session) Email() string { return s.email }

func (s Session) Role() string { return s.role }
