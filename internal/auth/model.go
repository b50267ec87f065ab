package auth

// User is the domain entity. Username lives in the profiles table and Role in
// user_roles; both ride along here because login and registration need them.
type User struct {
	ID       string
	Email    string
	Password string
	Username string
	Role     string
}
