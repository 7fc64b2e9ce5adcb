package domain

// User is a registered account. PasswordHash is never rendered to clients.
type User struct {
	Username     string
	PasswordHash string
	FirstName    string
	LastName     string
	Email        string
	IsAdmin      bool
	Jobs         []int
}
