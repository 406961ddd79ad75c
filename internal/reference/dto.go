package reference

import (
	errors "github.com/frahmantamala/asset-inventory/internal"
	"github.com/frahmantamala/asset-inventory/internal/core/common/validation"
)

type ReferenceDTO struct {
	Name    string  `json:"name"`
	Address *string `json:"address,omitempty"`
}

func (dto ReferenceDTO) Validate(kind Kind) *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(255)
	if kind == KindSite && dto.Address != nil {
		v.Field("address", *dto.Address).MaxLength(255)
	}
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
	References []*Reference `json:"references"`
	PageInfo   PageInfo     `json:"page_info"`
}
