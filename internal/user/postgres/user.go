package postgres

import (
	"strings"

	errors "github.com/frahmantamala/asset-inventory/internal"
	assetDatamodel "github.com/frahmantamala/asset-inventory/internal/core/datamodel/asset"
	userDatamodel "github.com/frahmantamala/asset-inventory/internal/core/datamodel/user"
	"github.com/frahmantamala/asset-inventory/internal/user"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(id int64) (*user.User, error) {
	var m userDatamodel.User
	if err := r.db.Where("id = ?", id).Take(&m).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	return user.FromDataModel(&m), nil
}

func (r *UserRepository) List(filters user.ListFilters, page, perPage int) ([]*user.User, int64, error) {
	query := r.db.Model(&userDatamodel.User{})
	if filters.Search != "" {
		pattern := "%" + strings.ToLower(filters.Search) + "%"
		query = query.Where(
			"(LOWER(name) LIKE ? OR LOWER(username) LIKE ? OR LOWER(email) LIKE ?)",
			pattern, pattern, pattern,
		)
	}
	if filters.Role != "" {
		query = query.Where("role = ?", filters.Role)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []*userDatamodel.User
	err := query.Order("name ASC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	users := make([]*user.User, 0, len(models))
	for _, m := range models {
		users = append(users, user.FromDataModel(m))
	}
	return users, total, nil
}

func (r *UserRepository) ListAll() ([]*user.User, error) {
	var models []*userDatamodel.User
	if err := r.db.Order("name ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	users := make([]*user.User, 0, len(models))
	for _, m := range models {
		users = append(users, user.FromDataModel(m))
	}
	return users, nil
}

func (r *UserRepository) Create(u *user.User, passwordHash string) error {
	m := &userDatamodel.User{
		Username:     u.Username,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: passwordHash,
		Role:         u.Role,
	}
	if err := r.db.Create(m).Error; err != nil {
		return err
	}
	*u = *user.FromDataModel(m)
	return nil
}

// Update writes the profile columns. The hash column only changes when a new
// one is provided.
func (r *UserRepository) Update(u *user.User, passwordHash string) error {
	values := map[string]interface{}{
		"username": u.Username,
		"name":     u.Name,
		"email":    u.Email,
		"role":     u.Role,
	}
	if passwordHash != "" {
		values["password_hash"] = passwordHash
	}
	return r.db.Model(&userDatamodel.User{}).Where("id = ?", u.ID).Updates(values).Error
}

func (r *UserRepository) Delete(id int64) error {
	result := r.db.Where("id = ?", id).Delete(&userDatamodel.User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UsernameExists(username string, excludeID int64) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).
		Where("LOWER(username) = ? AND id <> ?", strings.ToLower(username), excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) EmailExists(email string, excludeID int64) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).
		Where("LOWER(email) = ? AND id <> ?", strings.ToLower(email), excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) AssignedAssetCount(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&assetDatamodel.Asset{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
