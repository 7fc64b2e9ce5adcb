package dto

import "github.com/ijpettengill/jobly/internal/service"

// TokenRequest payload for POST /auth/token.
type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks required credentials.
func (r *TokenRequest) Validate() error {
	v := violations{}
	v.length("username", r.Username, 1, 25)
	v.length("password", r.Password, 1, 20)
	return v.err()
}

// RegisterRequest payload for POST /auth/register.
type RegisterRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// Validate checks field lengths and the email format.
func (r *RegisterRequest) Validate() error {
	trim(&r.Username)
	trim(&r.FirstName)
	trim(&r.LastName)
	trim(&r.Email)

	v := violations{}
	v.length("username", r.Username, 1, 25)
	v.length("password", r.Password, 5, 20)
	v.length("firstName", r.FirstName, 1, 30)
	v.length("lastName", r.LastName, 1, 30)
	v.length("email", r.Email, 6, 60)
	v.email("email", r.Email)
	return v.err()
}

// Input converts the request into service input.
func (r *RegisterRequest) Input() service.RegisterInput {
	return service.RegisterInput{
		Username:  r.Username,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
	}
}

// TokenResponse wraps an issued token.
type TokenResponse struct {
	Token string `json:"token"`
}
