package postgres

import (
	"time"

	historyDatamodel "github.com/frahmantamala/asset-inventory/internal/core/datamodel/history"
	"github.com/frahmantamala/asset-inventory/internal/history"
	"gorm.io/gorm"
)

type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) history.Repository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Insert(occurredAt time.Time, userID int64, description string) error {
	return r.db.Create(&historyDatamodel.HistoryUpdate{
		OccurredAt:  occurredAt,
		UserID:      userID,
		Description: description,
	}).Error
}

func (r *HistoryRepository) List(page, perPage int) ([]*history.Entry, int64, error) {
	var total int64
	if err := r.db.Model(&historyDatamodel.HistoryUpdate{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []*history.Entry
	err := r.db.Table("history_updates").
		Select("history_updates.id, history_updates.occurred_at, history_updates.user_id, users.name AS user_name, history_updates.description").
		Joins("LEFT JOIN users ON users.id = history_updates.user_id").
		Order("history_updates.occurred_at DESC").
		Order("history_updates.id DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
