package reference

import (
	"fmt"
	"log/slog"

	errors "github.com/frahmantamala/asset-inventory/internal"
	"github.com/frahmantamala/asset-inventory/internal/auth"
	assetDatamodel "github.com/frahmantamala/asset-inventory/internal/core/datamodel/asset"
)

const DefaultPerPage = 15

type Repository interface {
	GetByID(kind Kind, id int64) (*Reference, error)
	List(kind Kind, filters ListFilters, page, perPage int) ([]*Reference, int64, error)
	ListAll(kind Kind) ([]*Reference, error)
	Create(kind Kind, ref *Reference) error
	Update(kind Kind, ref *Reference) error
	Delete(kind Kind, id int64) error
	NameExists(kind Kind, name string, excludeID int64) (bool, error)
	AssetCount(kind Kind, id int64) (int64, error)
}

type HistoryRecorder interface {
	Record(userID int64, description string)
}

// Service manages the lookup tables behind sites, areas, departments and
// positions. All four share one shape, so one service covers them, keyed by
// Kind.
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

func (s *Service) ListReferences(kind Kind, filters ListFilters, page int) (*ListResponse, error) {
	if page < 1 {
		page = 1
	}

	refs, total, err := s.repo.List(kind, filters, page, DefaultPerPage)
	if err != nil {
		s.logger.Error("failed to list references", "kind", kind, "error", err)
		return nil, err
	}

	totalPages := int((total + DefaultPerPage - 1) / DefaultPerPage)

	return &ListResponse{
		References: refs,
		PageInfo: PageInfo{
			Page:       page,
			PerPage:    DefaultPerPage,
			TotalCount: total,
			TotalPages: totalPages,
		},
	}, nil
}

func (s *Service) ListAllReferences(kind Kind) ([]*Reference, error) {
	return s.repo.ListAll(kind)
}

func (s *Service) GetReference(kind Kind, id int64) (*Reference, error) {
	return s.repo.GetByID(kind, id)
}

func (s *Service) CreateReference(kind Kind, dto ReferenceDTO, actor *auth.User) (*Reference, error) {
	if !s.policy.CanManageReferences(actor.Role) {
		return nil, errors.ErrAdminRequired
	}
	if err := dto.Validate(kind); err != nil {
		return nil, err
	}
	if err := s.checkNameUnique(kind, dto.Name, 0); err != nil {
		return nil, err
	}

	ref := &Reference{Name: dto.Name}
	if kind == KindSite {
		ref.Address = dto.Address
	}
	if err := s.repo.Create(kind, ref); err != nil {
		s.logger.Error("failed to create reference", "kind", kind, "error", err, "actor_id", actor.ID)
		return nil, err
	}

	s.history.Record(actor.ID, fmt.Sprintf("created %s %s", kind, ref.Name))
	return ref, nil
}

func (s *Service) UpdateReference(kind Kind, id int64, dto ReferenceDTO, actor *auth.User) (*Reference, error) {
	if !s.policy.CanManageReferences(actor.Role) {
		return nil, errors.ErrAdminRequired
	}
	if err := dto.Validate(kind); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(kind, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkNameUnique(kind, dto.Name, id); err != nil {
		return nil, err
	}

	existing.Name = dto.Name
	if kind == KindSite {
		existing.Address = dto.Address
	}
	if err := s.repo.Update(kind, existing); err != nil {
		s.logger.Error("failed to update reference", "kind", kind, "error", err, "id", id, "actor_id", actor.ID)
		return nil, err
	}

	s.history.Record(actor.ID, fmt.Sprintf("updated %s %s", kind, existing.Name))
	return existing, nil
}

// DeleteReference refuses to remove a row that assets still point at, per the
// restrict rule the asset datamodel declares for every lookup association.
func (s *Service) DeleteReference(kind Kind, id int64, actor *auth.User) error {
	if !s.policy.CanManageReferences(actor.Role) {
		return errors.ErrAdminRequired
	}

	existing, err := s.repo.GetByID(kind, id)
	if err != nil {
		return err
	}

	if assetDatamodel.DeleteRules[string(kind)] == assetDatamodel.DeleteRestrict {
		inUse, err := s.repo.AssetCount(kind, id)
		if err != nil {
			s.logger.Error("failed to count reference assets", "kind", kind, "error", err, "id", id)
			return err
		}
		if inUse > 0 {
			return errors.ErrReferenceInUse
		}
	}

	if err := s.repo.Delete(kind, id); err != nil {
		s.logger.Error("failed to delete reference", "kind", kind, "error", err, "id", id, "actor_id", actor.ID)
		return err
	}

	s.history.Record(actor.ID, fmt.Sprintf("deleted %s %s", kind, existing.Name))
	return nil
}

func (s *Service) checkNameUnique(kind Kind, name string, excludeID int64) error {
	exists, err := s.repo.NameExists(kind, name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return errors.NewValidationError("Validation failed", errors.ErrCodeDuplicateValue).
			WithDetails(errors.ValidationErrors{Errors: []errors.ValidationError{{
				Field:   "name",
				Message: fmt.Sprintf("This %s name is already in use.", kind),
				Code:    string(errors.ErrCodeDuplicateValue),
			}}})
	}
	return nil
}
