package models

// Principal is the authenticated caller as resolved from the store.
type Principal struct {
	ID       int64  `json:"id"`
	UserName string `json:"username"`
	Role     Role   `json:"role"`
}

// User is the public view of a users row.
type User = Principal

// Credentials is a users row together with its password digest.
// It never leaves the sign-in path.
type Credentials struct {
	User
	PasswordDigest string
}
