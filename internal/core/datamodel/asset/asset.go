package asset

import "time"

// Condition is the binary health state of a device.
const (
	ConditionGood    = "Good"
	ConditionDamaged = "Damaged"
)

// Status is the usage state of a device.
const (
	StatusInUse   = "InUse"
	StatusStandby = "Standby"
	StatusLoaned  = "Loaned"
)

func Conditions() []string {
	return []string{ConditionGood, ConditionDamaged}
}

func Statuses() []string {
	return []string{StatusInUse, StatusStandby, StatusLoaned}
}

// DeleteRule names the on-delete semantics of a foreign association.
type DeleteRule string

const (
	DeleteRestrict DeleteRule = "RESTRICT"
	DeleteSetNull  DeleteRule = "SET NULL"
)

// DeleteRules makes the cascade behavior of every asset association explicit
// instead of leaving it buried in store annotations. Reference tables are
// restrict-on-delete while assets point at them; deleting a user clears the
// assignment on its assets.
var DeleteRules = map[string]DeleteRule{
	"category":   DeleteRestrict,
	"site":       DeleteRestrict,
	"area":       DeleteRestrict,
	"department": DeleteRestrict,
	"position":   DeleteRestrict,
	"user":       DeleteSetNull,
}

type Asset struct {
	ID              int64      `gorm:"primaryKey"`
	AssetNumber     string     `gorm:"column:asset_number;uniqueIndex;not null"`
	CategoryID      int64      `gorm:"column:category_id;not null;constraint:OnDelete:RESTRICT"`
	Name            string     `gorm:"column:name;not null"`
	SerialNumber    string     `gorm:"column:serial_number;uniqueIndex;not null"`
	OperatingSystem *string    `gorm:"column:operating_system"`
	Condition       string     `gorm:"column:condition;not null;default:Good"`
	SiteID          int64      `gorm:"column:site_id;not null;constraint:OnDelete:RESTRICT"`
	AreaID          int64      `gorm:"column:area_id;not null;constraint:OnDelete:RESTRICT"`
	UserID          *int64     `gorm:"column:user_id;constraint:OnDelete:SET NULL"`
	DepartmentID    int64      `gorm:"column:department_id;not null;constraint:OnDelete:RESTRICT"`
	PositionID      int64      `gorm:"column:position_id;not null;constraint:OnDelete:RESTRICT"`
	Status          string     `gorm:"column:status;not null;default:Standby"`
	HandoverDate    *time.Time `gorm:"column:handover_date;type:date"`
	Notes           *string    `gorm:"column:notes;type:text"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Asset) TableName() string {
	return "assets"
}
