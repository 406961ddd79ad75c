package history

import (
	"log/slog"
	"time"

	errors "github.com/frahmantamala/asset-inventory/internal"
	"github.com/frahmantamala/asset-inventory/internal/auth"
)

const DefaultPerPage = 15

type Repository interface {
	Insert(occurredAt time.Time, userID int64, description string) error
	List(page, perPage int) ([]*Entry, int64, error)
}

// Service appends and lists audit rows. Record is best effort: a failed audit
// write is logged, never surfaced, so it cannot roll back the mutation it
// describes.
type Service struct {
	repo   Repository
	policy *auth.Policy
	logger *slog.Logger
}

func NewService(repo Repository, policy *auth.Policy, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		policy: policy,
		logger: logger,
	}
}

func (s *Service) Record(userID int64, description string) {
	if err := s.repo.Insert(time.Now(), userID, description); err != nil {
		s.logger.Error("failed to record history entry", "error", err, "user_id", userID, "description", description)
	}
}

func (s *Service) ListHistory(page int, actor *auth.User) (*ListResponse, error) {
	if !s.policy.CanManageUsers(actor.Role) {
		return nil, errors.ErrAdminRequired
	}
	if page < 1 {
		page = 1
	}

	entries, total, err := s.repo.List(page, DefaultPerPage)
	if err != nil {
		s.logger.Error("failed to list history", "error", err)
		return nil, err
	}

	totalPages := int((total + DefaultPerPage - 1) / DefaultPerPage)

	return &ListResponse{
		Entries: entries,
		PageInfo: PageInfo{
			Page:       page,
			PerPage:    DefaultPerPage,
			TotalCount: total,
			TotalPages: totalPages,
		},
	}, nil
}
