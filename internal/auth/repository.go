package auth

// UserRepository defines the data-access contract.
// Service depends ONLY on this interface.
type UserRepository interface {
	// Save persists the user together with its profile and role rows.
	Save(user *User) error
	ExistsByEmail(email string) (bool, error)
	ExistsByUsername(username string) (bool, error)
	FindByEmail(email string) (*User, error)
}
