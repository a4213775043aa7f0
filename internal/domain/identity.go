package domain

import "github.com/google/uuid"

// Identity is the caller as seen by audit trails. UserID is nil when the token
// carried only a username that could not be resolved.
type Identity struct {
	UserID   *uuid.UUID
	Username string
}

func (i Identity) UserIDString() string {
	if i.UserID == nil {
		return ""
	}
	return i.UserID.String()
}

// UsernamePtr returns nil for an anonymous identity.
func (i Identity) UsernamePtr() *string {
	if i.Username == "" {
		return nil
	}
	v := i.Username
	return &v
}
