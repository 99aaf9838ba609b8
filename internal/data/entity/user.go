package entity

type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	Base
	Username  string `db:"username"`
	Email     string `db:"email"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Bio       string `db:"bio"`
	Role      Role   `db:"role"`
	// IsActive flips to true on the first successful token exchange.
	IsActive bool `db:"is_active"`
	// CodeSalt is mixed into the confirmation-code HMAC and rotated when
	// a code is consumed, so a code is single-use without being stored.
	CodeSalt string `db:"code_salt"`
}

func (u *User) IsModerator() bool {
	return u.Role == RoleModerator
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
