package asset

import (
	"time"

	errors "github.com/frahmantamala/asset-inventory/internal"
	"github.com/frahmantamala/asset-inventory/internal/core/common/validation"
	assetDatamodel "github.com/frahmantamala/asset-inventory/internal/core/datamodel/asset"
)

// CreateAssetDTO is the full payload an administrator submits when
// registering a device.
type CreateAssetDTO struct {
	AssetNumber     string     `json:"asset_number"`
	CategoryID      int64      `json:"category_id"`
	Name            string     `json:"name"`
	SerialNumber    string     `json:"serial_number"`
	OperatingSystem *string    `json:"operating_system,omitempty"`
	Condition       string     `json:"condition"`
	SiteID          int64      `json:"site_id"`
	AreaID          int64      `json:"area_id"`
	UserID          *int64     `json:"user_id,omitempty"`
	DepartmentID    int64      `json:"department_id"`
	PositionID      int64      `json:"position_id"`
	Status          string     `json:"status"`
	HandoverDate    *time.Time `json:"handover_date,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
}

func (dto CreateAssetDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("asset_number", dto.AssetNumber).Required().MaxLength(255)
	v.Field("category_id", dto.CategoryID).Required()
	v.Field("name", dto.Name).Required().MaxLength(255)
	v.Field("serial_number", dto.SerialNumber).Required().MaxLength(255)
	v.Field("condition", dto.Condition).Required().OneOf(assetDatamodel.Conditions()...)
	v.Field("site_id", dto.SiteID).Required()
	v.Field("area_id", dto.AreaID).Required()
	v.Field("department_id", dto.DepartmentID).Required()
	v.Field("position_id", dto.PositionID).Required()
	v.Field("status", dto.Status).Required().OneOf(assetDatamodel.Statuses()...)
	return v.Validate()
}

// UpdateAssetDTO carries a partial payload; nil pointers mean "field not
// submitted". A submitted user_id of 0 clears the assignment.
type UpdateAssetDTO struct {
	AssetNumber     *string    `json:"asset_number,omitempty"`
	CategoryID      *int64     `json:"category_id,omitempty"`
	Name            *string    `json:"name,omitempty"`
	SerialNumber    *string    `json:"serial_number,omitempty"`
	OperatingSystem *string    `json:"operating_system,omitempty"`
	Condition       *string    `json:"condition,omitempty"`
	SiteID          *int64     `json:"site_id,omitempty"`
	AreaID          *int64     `json:"area_id,omitempty"`
	UserID          *int64     `json:"user_id,omitempty"`
	DepartmentID    *int64     `json:"department_id,omitempty"`
	PositionID      *int64     `json:"position_id,omitempty"`
	Status          *string    `json:"status,omitempty"`
	HandoverDate    *time.Time `json:"handover_date,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
}

// FilterTo drops every field not in the allow-list. A nil allow-list keeps
// the payload intact. Discarded fields produce no error: forbidden values
// submitted by a limited editor are silently ignored.
func (dto UpdateAssetDTO) FilterTo(allowed map[string]bool) UpdateAssetDTO {
	if allowed == nil {
		return dto
	}
	filtered := UpdateAssetDTO{}
	if allowed["asset_number"] {
		filtered.AssetNumber = dto.AssetNumber
	}
	if allowed["category_id"] {
		filtered.CategoryID = dto.CategoryID
	}
	if allowed["name"] {
		filtered.Name = dto.Name
	}
	if allowed["serial_number"] {
		filtered.SerialNumber = dto.SerialNumber
	}
	if allowed["operating_system"] {
		filtered.OperatingSystem = dto.OperatingSystem
	}
	if allowed["condition"] {
		filtered.Condition = dto.Condition
	}
	if allowed["site_id"] {
		filtered.SiteID = dto.SiteID
	}
	if allowed["area_id"] {
		filtered.AreaID = dto.AreaID
	}
	if allowed["user_id"] {
		filtered.UserID = dto.UserID
	}
	if allowed["department_id"] {
		filtered.DepartmentID = dto.DepartmentID
	}
	if allowed["position_id"] {
		filtered.PositionID = dto.PositionID
	}
	if allowed["status"] {
		filtered.Status = dto.Status
	}
	if allowed["handover_date"] {
		filtered.HandoverDate = dto.HandoverDate
	}
	if allowed["notes"] {
		filtered.Notes = dto.Notes
	}
	return filtered
}

// Validate checks only the fields present in the payload. Required columns
// may not be blanked out by an update.
func (dto UpdateAssetDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	if dto.AssetNumber != nil {
		v.Field("asset_number", *dto.AssetNumber).Required().MaxLength(255)
	}
	if dto.Name != nil {
		v.Field("name", *dto.Name).Required().MaxLength(255)
	}
	if dto.SerialNumber != nil {
		v.Field("serial_number", *dto.SerialNumber).Required().MaxLength(255)
	}
	if dto.Condition != nil {
		v.Field("condition", *dto.Condition).Required().OneOf(assetDatamodel.Conditions()...)
	}
	if dto.Status != nil {
		v.Field("status", *dto.Status).Required().OneOf(assetDatamodel.Statuses()...)
	}
	if dto.CategoryID != nil {
		v.Field("category_id", *dto.CategoryID).Required()
	}
	if dto.SiteID != nil {
		v.Field("site_id", *dto.SiteID).Required()
	}
	if dto.AreaID != nil {
		v.Field("area_id", *dto.AreaID).Required()
	}
	if dto.DepartmentID != nil {
		v.Field("department_id", *dto.DepartmentID).Required()
	}
	if dto.PositionID != nil {
		v.Field("position_id", *dto.PositionID).Required()
	}
	return v.Validate()
}

// ApplyTo writes the submitted fields onto the asset.
func (dto UpdateAssetDTO) ApplyTo(a *Asset) {
	if dto.AssetNumber != nil {
		a.AssetNumber = *dto.AssetNumber
	}
	if dto.CategoryID != nil {
		a.CategoryID = *dto.CategoryID
	}
	if dto.Name != nil {
		a.Name = *dto.Name
	}
	if dto.SerialNumber != nil {
		a.SerialNumber = *dto.SerialNumber
	}
	if dto.OperatingSystem != nil {
		a.OperatingSystem = dto.OperatingSystem
	}
	if dto.Condition != nil {
		a.Condition = *dto.Condition
	}
	if dto.SiteID != nil {
		a.SiteID = *dto.SiteID
	}
	if dto.AreaID != nil {
		a.AreaID = *dto.AreaID
	}
	if dto.UserID != nil {
		if *dto.UserID == 0 {
			a.UserID = nil
		} else {
			a.UserID = dto.UserID
		}
	}
	if dto.DepartmentID != nil {
		a.DepartmentID = *dto.DepartmentID
	}
	if dto.PositionID != nil {
		a.PositionID = *dto.PositionID
	}
	if dto.Status != nil {
		a.Status = *dto.Status
	}
	if dto.HandoverDate != nil {
		a.HandoverDate = dto.HandoverDate
	}
	if dto.Notes != nil {
		a.Notes = dto.Notes
	}
}

// ListFilters narrows an asset listing. Zero values mean "no filter".
type ListFilters struct {
	CategoryID int64  `json:"category_id,omitempty"`
	Condition  string `json:"condition,omitempty"`
	SiteID     int64  `json:"site_id,omitempty"`
	AreaID     int64  `json:"area_id,omitempty"`
	Status     string `json:"status,omitempty"`
	Search     string `json:"search,omitempty"`
}

// PageInfo describes a page of a listing.
type PageInfo struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
}

type ListResponse struct {
	Assets []*Asset `json:"assets"`
	PageInfo
}
