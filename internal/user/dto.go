package user

import (
	errors "github.com/frahmantamala/commerce-management/internal"
	"github.com/frahmantamala/commerce-management/internal/core/common/validation"
)

var allowedRoles = []string{"user", "manager", "admin"}

type CreateUserDTO struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	Department string `json:"department"`
	Position   string `json:"position"`
}

func (d CreateUserDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(255)
	v.Field("email", d.Email).Required().Email()
	v.Field("password", d.Password).Required().MinLength(8).MaxLength(72)
	v.Field("role", d.Role).OneOf(allowedRoles, errors.ErrCodeInvalidRole)
	return v.Validate()
}

// UpdateUserDTO carries a partial update; only non-nil fields are written.
type UpdateUserDTO struct {
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Role       *string `json:"role,omitempty"`
	Department *string `json:"department,omitempty"`
	Position   *string `json:"position,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`
}

func (d UpdateUserDTO) IsEmpty() bool {
	return d.Name == nil && d.Email == nil && d.Role == nil &&
		d.Department == nil && d.Position == nil && d.IsActive == nil
}

func (d UpdateUserDTO) Validate() *errors.AppError {
	if d.IsEmpty() {
		return errors.ErrNothingToUpdate
	}

	v := validation.NewValidator()
	if d.Name != nil {
		v.Field("name", *d.Name).Required().MaxLength(255)
	}
	if d.Email != nil {
		v.Field("email", *d.Email).Required().Email()
	}
	if d.Role != nil {
		v.Field("role", *d.Role).Required().OneOf(allowedRoles, errors.ErrCodeInvalidRole)
	}
	return v.Validate()
}

// Fields maps the supplied values onto column names; unknown keys can never
// appear because the mapping is explicit.
func (d UpdateUserDTO) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if d.Name != nil {
		fields["name"] = *d.Name
	}
	if d.Email != nil {
		fields["email"] = *d.Email
	}
	if d.Role != nil {
		fields["role"] = *d.Role
	}
	if d.Department != nil {
		fields["department"] = *d.Department
	}
	if d.Position != nil {
		fields["position"] = *d.Position
	}
	if d.IsActive != nil {
		fields["is_active"] = *d.IsActive
	}
	return fields
}

type ListUsersQuery struct {
	Page   int
	Limit  int
	Search string
}

func (q *ListUsersQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 20
	}
}

func (q ListUsersQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}
