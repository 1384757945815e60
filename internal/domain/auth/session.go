package auth

// Roles carried in a session. The admin is a configured account, not a
// roster entry, so its UserID is the fixed admin id.
const (
	RoleAdmin     = "admin"
	RoleTherapist = "therapist"
)

// AdminUserID identifies the configured admin account in sessions.
const AdminUserID = "admin"

// Session is the signed-in identity. With remember-me it is persisted and
// restored across restarts; otherwise it lives only in the cookie store.
type Session struct {
	UserID string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// IsAdmin reports whether the session carries admin rights.
func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }
