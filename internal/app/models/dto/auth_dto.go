package dto

// RegisterRequest carries a new account registration
type RegisterRequest struct {
	StudentID string `json:"studentId" binding:"required" example:"s1024"`
	FullName  string `json:"fullName" binding:"required" example:"Ada Lovelace"`
	Email     string `json:"email" binding:"required,email" example:"ada@example.edu"`
	Password  string `json:"password" binding:"required,min=4" example:"hunter2"`
}

// LoginRequest carries login credentials
type LoginRequest struct {
	StudentID string `json:"studentId" binding:"required" example:"s1024"`
	Password  string `json:"password" binding:"required" example:"hunter2"`
}

// TokenResponse is returned on successful login. The token is the session
// handle: it is presented as a Bearer token on every authenticated call.
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int    `json:"expiresIn" example:"43200"`
	FullName    string `json:"fullName" example:"Ada Lovelace"`
}

// RegisterResponse confirms a created account
type RegisterResponse struct {
	StudentID string `json:"studentId"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
}
