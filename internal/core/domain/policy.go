package domain

// RequireRole returns nil when u holds role. A nil principal is reported as
// ErrUnauthenticated so callers can tell "nobody" from "wrong somebody".
func RequireRole(u *User, role string) error {
	if u == nil {
		return ErrUnauthenticated
	}
	if u.Role != role {
		return ErrForbidden
	}
	return nil
}

// RequireOwner returns nil only when u created the resource owned by ownerID.
// There is no delegation: admins are not owners of other users' listings.
func RequireOwner(u *User, ownerID int64) error {
	if u == nil {
		return ErrUnauthenticated
	}
	if u.ID != ownerID {
		return ErrForbidden
	}
	return nil
}
