package category

import (
	"fmt"
	"log/slog"

	errors "github.com/frahmantamala/asset-inventory/internal"
	"github.com/frahmantamala/asset-inventory/internal/auth"
)

const DefaultPerPage = 15

type Repository interface {
	GetByID(id int64) (*Category, error)
	List(filters ListFilters, page, perPage int) ([]*Category, int64, error)
	ListAll() ([]*Category, error)
	Create(c *Category) error
	Update(c *Category) error
	Delete(id int64) error
	NameExists(name string, excludeID int64) (bool, error)
	AssetCount(categoryID int64) (int64, error)
	Recount() (int64, error)
}

type HistoryRecorder interface {
	Record(userID int64, description string)
}

// Service manages categories. Reads are open to any authenticated user;
// mutations and the counter repair are admin only.
type Service struct {
	repo    Repository
	policy  *auth.Policy
	history HistoryRecorder
	logger  *slog.Logger
}

func NewService(repo Repository, policy *auth.Policy, history HistoryRecorder, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		policy:  policy,
		history: history,
		logger:  logger,
	}
}

func (s *Service) ListCategories(filters ListFilters, page int) (*ListResponse, error) {
	if page < 1 {
		page = 1
	}

	categories, total, err := s.repo.List(filters, page, DefaultPerPage)
	if err != nil {
		s.logger.Error("failed to list categories", "error", err)
		return nil, err
	}

	totalPages := int((total + DefaultPerPage - 1) / DefaultPerPage)

	return &ListResponse{
		Categories: categories,
		PageInfo: PageInfo{
			Page:       page,
			PerPage:    DefaultPerPage,
			TotalCount: total,
			TotalPages: totalPages,
		},
	}, nil
}

// ListAllCategories returns every category unpaged for selection dropdowns.
func (s *Service) ListAllCategories() ([]*Category, error) {
	return s.repo.ListAll()
}

func (s *Service) GetCategory(id int64) (*Category, error) {
	return s.repo.GetByID(id)
}

func (s *Service) CreateCategory(dto CategoryDTO, actor *auth.User) (*Category, error) {
	if !s.policy.CanManageReferences(actor.Role) {
		return nil, errors.ErrAdminRequired
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkNameUnique(dto.Name, 0); err != nil {
		return nil, err
	}

	c := &Category{Name: dto.Name}
	if err := s.repo.Create(c); err != nil {
		s.logger.Error("failed to create category", "error", err, "actor_id", actor.ID)
		return nil, err
	}

	s.history.Record(actor.ID, fmt.Sprintf("created category %s", c.Name))
	s.logger.Info("category created", "category_id", c.ID, "actor_id", actor.ID)
	return c, nil
}

func (s *Service) UpdateCategory(id int64, dto CategoryDTO, actor *auth.User) (*Category, error) {
	if !s.policy.CanManageReferences(actor.Role) {
		return nil, errors.ErrAdminRequired
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.checkNameUnique(dto.Name, id); err != nil {
		return nil, err
	}

	existing.Name = dto.Name
	if err := s.repo.Update(existing); err != nil {
		s.logger.Error("failed to update category", "error", err, "category_id", id, "actor_id", actor.ID)
		return nil, err
	}

	s.history.Record(actor.ID, fmt.Sprintf("updated category %s", existing.Name))
	return existing, nil
}

// DeleteCategory refuses to remove a category that still has assets, keeping
// the foreign key restriction an explainable error instead of a driver one.
func (s *Service) DeleteCategory(id int64, actor *auth.User) error {
	if !s.policy.CanManageReferences(actor.Role) {
		return errors.ErrAdminRequired
	}

	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	inUse, err := s.repo.AssetCount(id)
	if err != nil {
		s.logger.Error("failed to count category assets", "error", err, "category_id", id)
		return err
	}
	if inUse > 0 {
		return errors.ErrReferenceInUse
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete category", "error", err, "category_id", id, "actor_id", actor.ID)
		return err
	}

	s.history.Record(actor.ID, fmt.Sprintf("deleted category %s", existing.Name))
	return nil
}

// RecountCategories rewrites every item_count from the live asset rows. It is
// the repair path for counters that drifted through out-of-band writes.
func (s *Service) RecountCategories(actor *auth.User) (int64, error) {
	if !s.policy.CanManageReferences(actor.Role) {
		return 0, errors.ErrAdminRequired
	}

	updated, err := s.repo.Recount()
	if err != nil {
		s.logger.Error("failed to recount categories", "error", err, "actor_id", actor.ID)
		return 0, err
	}

	s.history.Record(actor.ID, fmt.Sprintf("recounted %d categories", updated))
	s.logger.Info("categories recounted", "updated", updated, "actor_id", actor.ID)
	return updated, nil
}

func (s *Service) checkNameUnique(name string, excludeID int64) error {
	exists, err := s.repo.NameExists(name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return errors.NewValidationError("Validation failed", errors.ErrCodeDuplicateValue).
			WithDetails(errors.ValidationErrors{Errors: []errors.ValidationError{{
				Field:   "name",
				Message: "This category name is already in use.",
				Code:    string(errors.ErrCodeDuplicateValue),
			}}})
	}
	return nil
}
