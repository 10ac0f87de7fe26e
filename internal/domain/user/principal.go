package user

const RoleAdmin = "admin"

// Principal is the authenticated caller attached to a request.
type Principal struct {
	UserID string
	Role   string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
