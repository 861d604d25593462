package user

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

// MinPasswordLength is enforced on account creation.
const MinPasswordLength = 8
