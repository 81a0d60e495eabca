package domain

// SessionUser is the payload stored in the session store. It is a projection
// of User taken at login time, not a live copy: the active flag and role are
// re-checked against the user store on every authenticated request, so the
// payload itself is never invalidated by account changes.
type SessionUser struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
