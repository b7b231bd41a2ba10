package user

const (
	DefaultTable   = "Funcionarios"
	EmailColumn    = "email"
	PasswordColumn = "password"
)

// Credentials identify an employee row.
type Credentials struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Options configure how logins are resolved.
type Options struct {
	// Table holding employees, "Funcionarios" when empty.
	Table string
	// HiddenFields are removed from the record returned on success.
	HiddenFields []string
	// HashedPasswords means the password column stores bcrypt hashes.
	HashedPasswords bool
}
