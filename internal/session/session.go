// Package session holds the authenticated identity (bearer token plus user
// record) and its persistent store. The token and user are a unit: they are
// saved together, cleared together, and never exist one without the other.
package session

// User is the identity record returned by the auth service on login.
type User struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Session is the authenticated identity held by the client. The zero value
// is the absent (logged out) session.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Present reports whether this session carries a token.
func (s Session) Present() bool {
	return s.Token != ""
}

// Store is the injectable session store. Implementations persist the
// session across process restarts and notify subscribers synchronously on
// every change, so dependent views can follow the session without polling.
//
// A Store does not distinguish "not yet loaded" from "definitely absent":
// storage is read once, synchronously, when the store is created.
type Store interface {
	// Save persists the session, replacing any prior one.
	Save(s Session) error
	// Clear removes the persisted session.
	Clear() error
	// Current returns the last saved session, or the zero Session when none
	// exists or the persisted data is unreadable.
	Current() Session
	// Subscribe registers fn to be invoked synchronously after every Save
	// and Clear with the new current session.
	Subscribe(fn func(Session))
}
