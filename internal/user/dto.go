package user

import (
	errors "github.com/frahmantamala/asset-inventory/internal"
	"github.com/frahmantamala/asset-inventory/internal/core/common/validation"
	userDatamodel "github.com/frahmantamala/asset-inventory/internal/core/datamodel/user"
)

type CreateUserDTO struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (dto CreateUserDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("username", dto.Username).Required().MaxLength(255)
	v.Field("name", dto.Name).Required().MaxLength(255)
	v.Field("email", dto.Email).Required().Email().MaxLength(255)
	v.Field("password", dto.Password).Required().MinLength(8)
	v.Field("role", dto.Role).Required().OneOf(userDatamodel.Roles()...)
	return v.Validate()
}

// UpdateUserDTO edits an account. An empty password keeps the current hash.
type UpdateUserDTO struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (dto UpdateUserDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("username", dto.Username).Required().MaxLength(255)
	v.Field("name", dto.Name).Required().MaxLength(255)
	v.Field("email", dto.Email).Required().Email().MaxLength(255)
	if dto.Password != "" {
		v.Field("password", dto.Password).MinLength(8)
	}
	v.Field("role", dto.Role).Required().OneOf(userDatamodel.Roles()...)
	return v.Validate()
}

type ListFilters struct {
	Search string
	Role   string
}

type PageInfo struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
}

type ListResponse struct {
	Users    []*User  `json:"users"`
	PageInfo PageInfo `json:"page_info"`
}
