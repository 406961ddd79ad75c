package asset

import (
	"time"

	assetDatamodel "github.com/frahmantamala/asset-inventory/internal/core/datamodel/asset"
)

// Asset is the domain view of a tracked device, carrying the joined reference
// names the presentation layer renders alongside the raw foreign keys.
type Asset struct {
	ID              int64      `json:"id"`
	AssetNumber     string     `json:"asset_number"`
	CategoryID      int64      `json:"category_id"`
	CategoryName    string     `json:"category_name,omitempty"`
	Name            string     `json:"name"`
	SerialNumber    string     `json:"serial_number"`
	OperatingSystem *string    `json:"operating_system,omitempty"`
	Condition       string     `json:"condition"`
	SiteID          int64      `json:"site_id"`
	SiteName        string     `json:"site_name,omitempty"`
	AreaID          int64      `json:"area_id"`
	AreaName        string     `json:"area_name,omitempty"`
	UserID          *int64     `json:"user_id,omitempty"`
	UserName        *string    `json:"user_name,omitempty"`
	DepartmentID    int64      `json:"department_id"`
	DepartmentName  string     `json:"department_name,omitempty"`
	PositionID      int64      `json:"position_id"`
	PositionName    string     `json:"position_name,omitempty"`
	Status          string     `json:"status"`
	HandoverDate    *time.Time `json:"handover_date,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// IsAssignedTo reports whether the asset is assigned to the given user.
func (a *Asset) IsAssignedTo(userID int64) bool {
	return a.UserID != nil && *a.UserID == userID
}

func ToDataModel(a *Asset) *assetDatamodel.Asset {
	return &assetDatamodel.Asset{
		ID:              a.ID,
		AssetNumber:     a.AssetNumber,
		CategoryID:      a.CategoryID,
		Name:            a.Name,
		SerialNumber:    a.SerialNumber,
		OperatingSystem: a.OperatingSystem,
		Condition:       a.Condition,
		SiteID:          a.SiteID,
		AreaID:          a.AreaID,
		UserID:          a.UserID,
		DepartmentID:    a.DepartmentID,
		PositionID:      a.PositionID,
		Status:          a.Status,
		HandoverDate:    a.HandoverDate,
		Notes:           a.Notes,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func FromDataModel(m *assetDatamodel.Asset) *Asset {
	return &Asset{
		ID:              m.ID,
		AssetNumber:     m.AssetNumber,
		CategoryID:      m.CategoryID,
		Name:            m.Name,
		SerialNumber:    m.SerialNumber,
		OperatingSystem: m.OperatingSystem,
		Condition:       m.Condition,
		SiteID:          m.SiteID,
		AreaID:          m.AreaID,
		UserID:          m.UserID,
		DepartmentID:    m.DepartmentID,
		PositionID:      m.PositionID,
		Status:          m.Status,
		HandoverDate:    m.HandoverDate,
		Notes:           m.Notes,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
