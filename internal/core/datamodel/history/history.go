package history

import "time"

// HistoryUpdate is an append-only audit row. Rows are written after a mutation
// commits and are never updated or deleted.
type HistoryUpdate struct {
	ID          int64     `gorm:"primaryKey"`
	OccurredAt  time.Time `gorm:"column:occurred_at;not null"`
	UserID      int64     `gorm:"column:user_id;not null"`
	Description string    `gorm:"column:description;type:text;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (HistoryUpdate) TableName() string {
	return "history_updates"
}
