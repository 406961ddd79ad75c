package category

import "time"

// Category carries a denormalized item_count: the number of assets currently
// referencing it. The counter is maintained with store-level increments, never
// read-modify-write in application code.
type Category struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;uniqueIndex;not null"`
	ItemCount int64     `gorm:"column:item_count;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Category) TableName() string {
	return "categories"
}
