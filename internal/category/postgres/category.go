package postgres

import (
	"strings"

	errors "github.com/frahmantamala/asset-inventory/internal"
	"github.com/frahmantamala/asset-inventory/internal/category"
	assetDatamodel "github.com/frahmantamala/asset-inventory/internal/core/datamodel/asset"
	categoryDatamodel "github.com/frahmantamala/asset-inventory/internal/core/datamodel/category"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) category.Repository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) GetByID(id int64) (*category.Category, error) {
	var m categoryDatamodel.Category
	if err := r.db.Where("id = ?", id).Take(&m).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrCategoryNotFound
		}
		return nil, err
	}
	return category.FromDataModel(&m), nil
}

func (r *CategoryRepository) List(filters category.ListFilters, page, perPage int) ([]*category.Category, int64, error) {
	query := r.db.Model(&categoryDatamodel.Category{})
	if filters.Search != "" {
		pattern := "%" + strings.ToLower(filters.Search) + "%"
		query = query.Where("LOWER(name) LIKE ?", pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []*categoryDatamodel.Category
	err := query.Order("name ASC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	categories := make([]*category.Category, 0, len(models))
	for _, m := range models {
		categories = append(categories, category.FromDataModel(m))
	}
	return categories, total, nil
}

func (r *CategoryRepository) ListAll() ([]*category.Category, error) {
	var models []*categoryDatamodel.Category
	if err := r.db.Order("name ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	categories := make([]*category.Category, 0, len(models))
	for _, m := range models {
		categories = append(categories, category.FromDataModel(m))
	}
	return categories, nil
}

func (r *CategoryRepository) Create(c *category.Category) error {
	m := &categoryDatamodel.Category{Name: c.Name}
	if err := r.db.Create(m).Error; err != nil {
		return err
	}
	*c = *category.FromDataModel(m)
	return nil
}

func (r *CategoryRepository) Update(c *category.Category) error {
	return r.db.Model(&categoryDatamodel.Category{}).
		Where("id = ?", c.ID).
		Update("name", c.Name).Error
}

func (r *CategoryRepository) Delete(id int64) error {
	result := r.db.Where("id = ?", id).Delete(&categoryDatamodel.Category{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepository) NameExists(name string, excludeID int64) (bool, error) {
	var count int64
	err := r.db.Model(&categoryDatamodel.Category{}).
		Where("LOWER(name) = ? AND id <> ?", strings.ToLower(name), excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *CategoryRepository) AssetCount(categoryID int64) (int64, error) {
	var count int64
	err := r.db.Model(&assetDatamodel.Asset{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}

// Recount rewrites every item_count from the live asset rows in a single
// statement, so a concurrent asset mutation cannot interleave between a read
// and a write.
func (r *CategoryRepository) Recount() (int64, error) {
	result := r.db.Exec(`
		UPDATE categories
		SET item_count = (
			SELECT COUNT(*) FROM assets WHERE assets.category_id = categories.id
		)`)
	return result.RowsAffected, result.Error
}
