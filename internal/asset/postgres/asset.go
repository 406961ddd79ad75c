package postgres

import (
	"strings"

	errors "github.com/frahmantamala/asset-inventory/internal"
	"github.com/frahmantamala/asset-inventory/internal/asset"
	assetDatamodel "github.com/frahmantamala/asset-inventory/internal/core/datamodel/asset"
	categoryDatamodel "github.com/frahmantamala/asset-inventory/internal/core/datamodel/category"
	referenceDatamodel "github.com/frahmantamala/asset-inventory/internal/core/datamodel/reference"
	userDatamodel "github.com/frahmantamala/asset-inventory/internal/core/datamodel/user"
	"gorm.io/gorm"
)

// AssetRepository implements asset.Repository using GORM. Counter moves on
// categories always run inside the same transaction as the asset row change,
// and always as store-level arithmetic so concurrent updates cannot lose an
// increment.
type AssetRepository struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) asset.Repository {
	return &AssetRepository{db: db}
}

const selectWithNames = `assets.*,
	categories.name AS category_name,
	sites.name AS site_name,
	areas.name AS area_name,
	users.name AS user_name,
	departments.name AS department_name,
	positions.name AS position_name`

func (r *AssetRepository) withNames() *gorm.DB {
	return r.db.Table("assets").
		Select(selectWithNames).
		Joins("JOIN categories ON categories.id = assets.category_id").
		Joins("JOIN sites ON sites.id = assets.site_id").
		Joins("JOIN areas ON areas.id = assets.area_id").
		Joins("LEFT JOIN users ON users.id = assets.user_id").
		Joins("JOIN departments ON departments.id = assets.department_id").
		Joins("JOIN positions ON positions.id = assets.position_id")
}

func (r *AssetRepository) GetByID(id int64) (*asset.Asset, error) {
	var a asset.Asset
	err := r.withNames().Where("assets.id = ?", id).Take(&a).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrAssetNotFound
		}
		return nil, err
	}
	return &a, nil
}

// List applies row-level visibility first, then the optional filters, newest
// first, paged. The total count runs over the same conditions.
func (r *AssetRepository) List(filters asset.ListFilters, visibleUserID *int64, page, perPage int) ([]*asset.Asset, int64, error) {
	var total int64
	countQuery := applyFilters(r.db.Model(&assetDatamodel.Asset{}), filters, visibleUserID)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var assets []*asset.Asset
	query := applyFilters(r.withNames(), filters, visibleUserID).
		Order("assets.created_at DESC").
		Order("assets.id DESC").
		Limit(perPage).
		Offset((page - 1) * perPage)
	if err := query.Find(&assets).Error; err != nil {
		return nil, 0, err
	}

	return assets, total, nil
}

func applyFilters(db *gorm.DB, filters asset.ListFilters, visibleUserID *int64) *gorm.DB {
	if visibleUserID != nil {
		db = db.Where("assets.user_id = ?", *visibleUserID)
	}
	if filters.CategoryID != 0 {
		db = db.Where("assets.category_id = ?", filters.CategoryID)
	}
	if filters.Condition != "" {
		db = db.Where("assets.condition = ?", filters.Condition)
	}
	if filters.SiteID != 0 {
		db = db.Where("assets.site_id = ?", filters.SiteID)
	}
	if filters.AreaID != 0 {
		db = db.Where("assets.area_id = ?", filters.AreaID)
	}
	if filters.Status != "" {
		db = db.Where("assets.status = ?", filters.Status)
	}
	if filters.Search != "" {
		pattern := "%" + strings.ToLower(filters.Search) + "%"
		db = db.Where(
			"(LOWER(assets.asset_number) LIKE ? OR LOWER(assets.name) LIKE ? OR LOWER(assets.serial_number) LIKE ?)",
			pattern, pattern, pattern,
		)
	}
	return db
}

// Create inserts the asset and increments its category counter in one
// transaction.
func (r *AssetRepository) Create(a *asset.Asset) error {
	m := asset.ToDataModel(a)
	m.ID = 0

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		return adjustItemCount(tx, m.CategoryID, +1)
	})
	if err != nil {
		return err
	}

	a.ID = m.ID
	a.CreatedAt = m.CreatedAt
	a.UpdatedAt = m.UpdatedAt
	return nil
}

// Update saves the asset row. When the category changed, the old counter is
// decremented and the new one incremented in the same transaction, so a crash
// never leaves one applied without the other.
func (r *AssetRepository) Update(a *asset.Asset, oldCategoryID int64) error {
	m := asset.ToDataModel(a)

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(m).Error; err != nil {
			return err
		}
		if m.CategoryID != oldCategoryID {
			// Decrement is a no-op when the old category is already gone.
			if err := adjustItemCount(tx, oldCategoryID, -1); err != nil {
				return err
			}
			if err := adjustItemCount(tx, m.CategoryID, +1); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes the asset and decrements its category counter together.
func (r *AssetRepository) Delete(id, categoryID int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&assetDatamodel.Asset{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errors.ErrAssetNotFound
		}
		return adjustItemCount(tx, categoryID, -1)
	})
}

// adjustItemCount moves a category counter with store-level arithmetic.
// A missing category row affects zero rows and is not an error.
func adjustItemCount(tx *gorm.DB, categoryID, delta int64) error {
	return tx.Model(&categoryDatamodel.Category{}).
		Where("id = ?", categoryID).
		UpdateColumn("item_count", gorm.Expr("item_count + ?", delta)).Error
}

func (r *AssetRepository) AssetNumberExists(assetNumber string, excludeID int64) (bool, error) {
	var count int64
	err := r.db.Model(&assetDatamodel.Asset{}).
		Where("asset_number = ? AND id <> ?", assetNumber, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *AssetRepository) SerialNumberExists(serialNumber string, excludeID int64) (bool, error) {
	var count int64
	err := r.db.Model(&assetDatamodel.Asset{}).
		Where("serial_number = ? AND id <> ?", serialNumber, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *AssetRepository) CategoryExists(id int64) (bool, error) {
	return r.rowExists(&categoryDatamodel.Category{}, id)
}

func (r *AssetRepository) SiteExists(id int64) (bool, error) {
	return r.rowExists(&referenceDatamodel.Site{}, id)
}

func (r *AssetRepository) AreaExists(id int64) (bool, error) {
	return r.rowExists(&referenceDatamodel.Area{}, id)
}

func (r *AssetRepository) DepartmentExists(id int64) (bool, error) {
	return r.rowExists(&referenceDatamodel.Department{}, id)
}

func (r *AssetRepository) PositionExists(id int64) (bool, error) {
	return r.rowExists(&referenceDatamodel.Position{}, id)
}

func (r *AssetRepository) UserExists(id int64) (bool, error) {
	return r.rowExists(&userDatamodel.User{}, id)
}

func (r *AssetRepository) rowExists(model interface{}, id int64) (bool, error) {
	var count int64
	err := r.db.Model(model).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
