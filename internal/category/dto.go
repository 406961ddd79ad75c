package category

import (
	errors "github.com/frahmantamala/asset-inventory/internal"
	"github.com/frahmantamala/asset-inventory/internal/core/common/validation"
)

type CategoryDTO struct {
	Name string `json:"name"`
}

func (dto CategoryDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(255)
	return v.Validate()
}

type ListFilters struct {
	Search string
}

type PageInfo struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
}

type ListResponse struct {
	Categories []*Category `json:"categories"`
	PageInfo   PageInfo    `json:"page_info"`
}
