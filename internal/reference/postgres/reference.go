package postgres

import (
	"fmt"
	"strings"
	"time"

	errors "github.com/frahmantamala/asset-inventory/internal"
	assetDatamodel "github.com/frahmantamala/asset-inventory/internal/core/datamodel/asset"
	"github.com/frahmantamala/asset-inventory/internal/reference"
	"gorm.io/gorm"
)

// row is the scan target shared by all four lookup tables. Address comes back
// empty for the tables that have no such column.
type row struct {
	ID        int64
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type tableSpec struct {
	table      string
	fkColumn   string
	hasAddress bool
}

var tables = map[reference.Kind]tableSpec{
	reference.KindSite:       {table: "sites", fkColumn: "site_id", hasAddress: true},
	reference.KindArea:       {table: "areas", fkColumn: "area_id"},
	reference.KindDepartment: {table: "departments", fkColumn: "department_id"},
	reference.KindPosition:   {table: "positions", fkColumn: "position_id"},
}

type ReferenceRepository struct {
	db *gorm.DB
}

func NewReferenceRepository(db *gorm.DB) reference.Repository {
	return &ReferenceRepository{db: db}
}

func (r *ReferenceRepository) spec(kind reference.Kind) (tableSpec, error) {
	s, ok := tables[kind]
	if !ok {
		return tableSpec{}, fmt.Errorf("unknown reference kind %q", kind)
	}
	return s, nil
}

func (s tableSpec) columns() string {
	if s.hasAddress {
		return "id, name, address, created_at, updated_at"
	}
	return "id, name, created_at, updated_at"
}

func (s tableSpec) toDomain(m row) *reference.Reference {
	ref := &reference.Reference{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if s.hasAddress {
		addr := m.Address
		ref.Address = &addr
	}
	return ref
}

func (r *ReferenceRepository) GetByID(kind reference.Kind, id int64) (*reference.Reference, error) {
	s, err := r.spec(kind)
	if err != nil {
		return nil, err
	}

	var m row
	err = r.db.Table(s.table).Select(s.columns()).Where("id = ?", id).Take(&m).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrReferenceNotFound
		}
		return nil, err
	}
	return s.toDomain(m), nil
}

func (r *ReferenceRepository) List(kind reference.Kind, filters reference.ListFilters, page, perPage int) ([]*reference.Reference, int64, error) {
	s, err := r.spec(kind)
	if err != nil {
		return nil, 0, err
	}

	query := r.db.Table(s.table)
	if filters.Search != "" {
		pattern := "%" + strings.ToLower(filters.Search) + "%"
		query = query.Where("LOWER(name) LIKE ?", pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []row
	err = query.Select(s.columns()).
		Order("name ASC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	refs := make([]*reference.Reference, 0, len(models))
	for _, m := range models {
		refs = append(refs, s.toDomain(m))
	}
	return refs, total, nil
}

func (r *ReferenceRepository) ListAll(kind reference.Kind) ([]*reference.Reference, error) {
	s, err := r.spec(kind)
	if err != nil {
		return nil, err
	}

	var models []row
	err = r.db.Table(s.table).Select(s.columns()).Order("name ASC").Find(&models).Error
	if err != nil {
		return nil, err
	}

	refs := make([]*reference.Reference, 0, len(models))
	for _, m := range models {
		refs = append(refs, s.toDomain(m))
	}
	return refs, nil
}

func (r *ReferenceRepository) Create(kind reference.Kind, ref *reference.Reference) error {
	s, err := r.spec(kind)
	if err != nil {
		return err
	}

	values := map[string]interface{}{
		"name":       ref.Name,
		"created_at": time.Now(),
		"updated_at": time.Now(),
	}
	if s.hasAddress && ref.Address != nil {
		values["address"] = *ref.Address
	}
	if err := r.db.Table(s.table).Create(values).Error; err != nil {
		return err
	}

	// Map-based creates do not report the generated key, so read it back.
	var m row
	err = r.db.Table(s.table).Select(s.columns()).
		Where("name = ?", ref.Name).
		Order("id DESC").
		Take(&m).Error
	if err != nil {
		return err
	}
	*ref = *s.toDomain(m)
	return nil
}

func (r *ReferenceRepository) Update(kind reference.Kind, ref *reference.Reference) error {
	s, err := r.spec(kind)
	if err != nil {
		return err
	}

	values := map[string]interface{}{
		"name":       ref.Name,
		"updated_at": time.Now(),
	}
	if s.hasAddress {
		if ref.Address != nil {
			values["address"] = *ref.Address
		} else {
			values["address"] = ""
		}
	}
	return r.db.Table(s.table).Where("id = ?", ref.ID).Updates(values).Error
}

func (r *ReferenceRepository) Delete(kind reference.Kind, id int64) error {
	s, err := r.spec(kind)
	if err != nil {
		return err
	}

	result := r.db.Exec("DELETE FROM "+s.table+" WHERE id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.ErrReferenceNotFound
	}
	return nil
}

func (r *ReferenceRepository) NameExists(kind reference.Kind, name string, excludeID int64) (bool, error) {
	s, err := r.spec(kind)
	if err != nil {
		return false, err
	}

	var count int64
	err = r.db.Table(s.table).
		Where("LOWER(name) = ? AND id <> ?", strings.ToLower(name), excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *ReferenceRepository) AssetCount(kind reference.Kind, id int64) (int64, error) {
	s, err := r.spec(kind)
	if err != nil {
		return 0, err
	}

	var count int64
	err = r.db.Model(&assetDatamodel.Asset{}).
		Where(s.fkColumn+" = ?", id).
		Count(&count).Error
	return count, err
}
