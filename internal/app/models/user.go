package models

// User is an account row. Password holds the bcrypt hash, never plaintext.
type User struct {
	UserID   int64  `json:"user_id"`
	UserName string `json:"user_name"`
	Password string `json:"-"`
	RoleID   int    `json:"role_id"`
}

// StudentRegistration carries the fields needed to create a student account
// with its detail record.
type StudentRegistration struct {
	UserName  string
	Name      string
	DID       int64
	Email     string
	ContactNo string
	Address   string
	Status    string
}

// ManagerRegistration carries the fields needed to create a manager account
// with its detail record.
type ManagerRegistration struct {
	UserName  string
	Name      string
	Email     string
	ContactNo string
	Address   string
	Status    string
}
