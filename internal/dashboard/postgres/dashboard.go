package postgres

import (
	assetDatamodel "github.com/frahmantamala/asset-inventory/internal/core/datamodel/asset"
	categoryDatamodel "github.com/frahmantamala/asset-inventory/internal/core/datamodel/category"
	referenceDatamodel "github.com/frahmantamala/asset-inventory/internal/core/datamodel/reference"
	userDatamodel "github.com/frahmantamala/asset-inventory/internal/core/datamodel/user"
	"github.com/frahmantamala/asset-inventory/internal/dashboard"
	"gorm.io/gorm"
)

type DashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) dashboard.Repository {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) visible(visibleUserID *int64) *gorm.DB {
	db := r.db.Model(&assetDatamodel.Asset{})
	if visibleUserID != nil {
		db = db.Where("assets.user_id = ?", *visibleUserID)
	}
	return db
}

type groupCount struct {
	Key   string
	Count int64
}

func (r *DashboardRepository) AssetTotals(visibleUserID *int64) (int64, map[string]int64, map[string]int64, error) {
	var total int64
	if err := r.visible(visibleUserID).Count(&total).Error; err != nil {
		return 0, nil, nil, err
	}

	byStatus, err := r.groupBy(visibleUserID, "status")
	if err != nil {
		return 0, nil, nil, err
	}
	byCondition, err := r.groupBy(visibleUserID, "condition")
	if err != nil {
		return 0, nil, nil, err
	}

	return total, byStatus, byCondition, nil
}

func (r *DashboardRepository) groupBy(visibleUserID *int64, column string) (map[string]int64, error) {
	var rows []groupCount
	err := r.visible(visibleUserID).
		Select(column + " AS key, COUNT(*) AS count").
		Group(column).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Key] = row.Count
	}
	return counts, nil
}

func (r *DashboardRepository) CategoryCount() (int64, error) {
	var count int64
	err := r.db.Model(&categoryDatamodel.Category{}).Count(&count).Error
	return count, err
}

func (r *DashboardRepository) SiteCount() (int64, error) {
	var count int64
	err := r.db.Model(&referenceDatamodel.Site{}).Count(&count).Error
	return count, err
}

func (r *DashboardRepository) UserCount() (int64, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).Count(&count).Error
	return count, err
}

func (r *DashboardRepository) RecentAssets(visibleUserID *int64, limit int) ([]dashboard.RecentAsset, error) {
	query := r.db.Table("assets").
		Select("assets.id, assets.asset_number, assets.name, categories.name AS category_name, assets.status, assets.condition, assets.created_at").
		Joins("JOIN categories ON categories.id = assets.category_id").
		Order("assets.created_at DESC").
		Order("assets.id DESC").
		Limit(limit)
	if visibleUserID != nil {
		query = query.Where("assets.user_id = ?", *visibleUserID)
	}

	var recent []dashboard.RecentAsset
	if err := query.Find(&recent).Error; err != nil {
		return nil, err
	}
	return recent, nil
}

// TopCategories ranks by a live count over asset rows rather than the
// denormalized item_count column.
func (r *DashboardRepository) TopCategories(visibleUserID *int64, limit int) ([]dashboard.CategoryCount, error) {
	query := r.db.Table("assets").
		Select("assets.category_id, categories.name, COUNT(*) AS asset_count").
		Joins("JOIN categories ON categories.id = assets.category_id").
		Group("assets.category_id, categories.name").
		Order("asset_count DESC").
		Order("categories.name ASC").
		Limit(limit)
	if visibleUserID != nil {
		query = query.Where("assets.user_id = ?", *visibleUserID)
	}

	var top []dashboard.CategoryCount
	if err := query.Find(&top).Error; err != nil {
		return nil, err
	}
	return top, nil
}
