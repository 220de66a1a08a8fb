package models

// User is an administrator credential. Usernames are unique within the stored
// list; the password is kept as a bcrypt hash.
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
}
