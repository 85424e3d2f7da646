package models

// Session identifies the caller of a service method. It is built by the auth
// middleware and passed explicitly; services never read ambient state.
type Session struct {
	UserID string
	Role   Role
}

func (s Session) Authenticated() bool { return s.UserID != "" }

func (s Session) IsHost() bool { return s.Role == RoleHost }
