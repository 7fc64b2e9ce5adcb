package dto

import (
	"github.com/ijpettengill/jobly/internal/domain"
	"github.com/ijpettengill/jobly/pkg/util/sqlutil"
)

// CreateUserRequest payload for POST /users. Only admins reach it and may grant admin rights.
type CreateUserRequest struct {
	RegisterRequest
	IsAdmin bool `json:"isAdmin"`
}

// UpdateUserRequest payload for PATCH /users/:username.
type UpdateUserRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Password  *string `json:"password"`
	Email     *string `json:"email"`
}

// Validate checks the supplied fields.
func (r *UpdateUserRequest) Validate() error {
	trim(r.FirstName)
	trim(r.LastName)
	trim(r.Email)

	v := violations{}
	v.optionalLength("firstName", r.FirstName, 1, 30)
	v.optionalLength("lastName", r.LastName, 1, 30)
	v.optionalLength("password", r.Password, 5, 20)
	if r.Email != nil {
		v.length("email", *r.Email, 6, 60)
		v.email("email", *r.Email)
	}
	return v.err()
}

// Fields lists the supplied fields in declaration order.
func (r *UpdateUserRequest) Fields() []sqlutil.Field {
	var fields []sqlutil.Field
	if r.FirstName != nil {
		fields = append(fields, sqlutil.Field{Name: "firstName", Value: *r.FirstName})
	}
	if r.LastName != nil {
		fields = append(fields, sqlutil.Field{Name: "lastName", Value: *r.LastName})
	}
	if r.Password != nil {
		fields = append(fields, sqlutil.Field{Name: "password", Value: *r.Password})
	}
	if r.Email != nil {
		fields = append(fields, sqlutil.Field{Name: "email", Value: *r.Email})
	}
	return fields
}

// UserResponse is the public user shape. Password hashes never leave the service.
type UserResponse struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"isAdmin"`
	Jobs      []int  `json:"jobs"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(u *domain.User) UserResponse {
	jobs := u.Jobs
	if jobs == nil {
		jobs = []int{}
	}
	return UserResponse{
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		Jobs:      jobs,
	}
}
