package dto

// RegisterStudentRequest represents a student registration request.
// The initial password is generated server-side and delivered out of band.
type RegisterStudentRequest struct {
	UserName  string `json:"user_name" binding:"required"`
	Name      string `json:"name" binding:"required"`
	DID       int64  `json:"d_id" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	ContactNo string `json:"contact_no" binding:"required"`
	Address   string `json:"address" binding:"required"`
	Status    string `json:"status" binding:"required"`
}

// RegisterManagerRequest represents a manager registration request
type RegisterManagerRequest struct {
	UserName  string `json:"user_name" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	ContactNo string `json:"contact_no" binding:"required"`
	Address   string `json:"address" binding:"required"`
	Status    string `json:"status" binding:"required"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	UserName string `json:"user_name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the signed session token and where the client
// should navigate next for the holder's role.
type LoginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType" example:"Bearer"`
	ExpiresIn int    `json:"expiresIn"`
	Redirect  string `json:"redirect"`
}
