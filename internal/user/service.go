package user

import (
	"fmt"
	"log/slog"

	errors "github.com/frahmantamala/asset-inventory/internal"
	"github.com/frahmantamala/asset-inventory/internal/auth"
)

const DefaultPerPage = 15

type Repository interface {
	GetByID(id int64) (*User, error)
	List(filters ListFilters, page, perPage int) ([]*User, int64, error)
	ListAll() ([]*User, error)
	Create(u *User, passwordHash string) error
	Update(u *User, passwordHash string) error
	Delete(id int64) error
	UsernameExists(username string, excludeID int64) (bool, error)
	EmailExists(email string, excludeID int64) (bool, error)
	AssignedAssetCount(userID int64) (int64, error)
}

type HistoryRecorder interface {
	Record(userID int64, description string)
}

// Service manages accounts. Every operation here is admin only; regular
// users never reach these paths.
type Service struct {
	repo       Repository
	policy     *auth.Policy
	history    HistoryRecorder
	logger     *slog.Logger
	bcryptCost int
}

func NewService(repo Repository, policy *auth.Policy, history HistoryRecorder, logger *slog.Logger, bcryptCost int) *Service {
	return &Service{
		repo:       repo,
		policy:     policy,
		history:    history,
		logger:     logger,
		bcryptCost: bcryptCost,
	}
}

func (s *Service) ListUsers(filters ListFilters, page int, actor *auth.User) (*ListResponse, error) {
	if !s.policy.CanManageUsers(actor.Role) {
		return nil, errors.ErrAdminRequired
	}
	if page < 1 {
		page = 1
	}

	users, total, err := s.repo.List(filters, page, DefaultPerPage)
	if err != nil {
		s.logger.Error("failed to list users", "error", err, "actor_id", actor.ID)
		return nil, err
	}

	totalPages := int((total + DefaultPerPage - 1) / DefaultPerPage)

	return &ListResponse{
		Users: users,
		PageInfo: PageInfo{
			Page:       page,
			PerPage:    DefaultPerPage,
			TotalCount: total,
			TotalPages: totalPages,
		},
	}, nil
}

// ListAllUsers backs the assignee dropdown on the asset forms. Any
// authenticated admin path may call it.
func (s *Service) ListAllUsers(actor *auth.User) ([]*User, error) {
	if !s.policy.CanManageUsers(actor.Role) {
		return nil, errors.ErrAdminRequired
	}
	return s.repo.ListAll()
}

func (s *Service) GetUser(id int64, actor *auth.User) (*User, error) {
	if !s.policy.CanManageUsers(actor.Role) {
		return nil, errors.ErrAdminRequired
	}
	return s.repo.GetByID(id)
}

func (s *Service) CreateUser(dto CreateUserDTO, actor *auth.User) (*User, error) {
	if !s.policy.CanManageUsers(actor.Role) {
		return nil, errors.ErrAdminRequired
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkUniqueness(dto.Username, dto.Email, 0); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, err
	}

	u := &User{
		Username: dto.Username,
		Name:     dto.Name,
		Email:    dto.Email,
		Role:     dto.Role,
	}
	if err := s.repo.Create(u, hash); err != nil {
		s.logger.Error("failed to create user", "error", err, "actor_id", actor.ID)
		return nil, err
	}

	s.history.Record(actor.ID, fmt.Sprintf("created user %s", u.Username))
	s.logger.Info("user created", "user_id", u.ID, "username", u.Username, "actor_id", actor.ID)
	return u, nil
}

// UpdateUser edits an account. An empty password in the payload keeps the
// current hash untouched.
func (s *Service) UpdateUser(id int64, dto UpdateUserDTO, actor *auth.User) (*User, error) {
	if !s.policy.CanManageUsers(actor.Role) {
		return nil, errors.ErrAdminRequired
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.checkUniqueness(dto.Username, dto.Email, id); err != nil {
		return nil, err
	}

	var hash string
	if dto.Password != "" {
		hash, err = auth.HashPassword(dto.Password, s.bcryptCost)
		if err != nil {
			s.logger.Error("failed to hash password", "error", err)
			return nil, err
		}
	}

	existing.Username = dto.Username
	existing.Name = dto.Name
	existing.Email = dto.Email
	existing.Role = dto.Role
	if err := s.repo.Update(existing, hash); err != nil {
		s.logger.Error("failed to update user", "error", err, "user_id", id, "actor_id", actor.ID)
		return nil, err
	}

	s.history.Record(actor.ID, fmt.Sprintf("updated user %s", existing.Username))
	return existing, nil
}

// DeleteUser removes an account. Admins may not delete themselves, and an
// account still holding assets must be unassigned first.
func (s *Service) DeleteUser(id int64, actor *auth.User) error {
	if !s.policy.CanManageUsers(actor.Role) {
		return errors.ErrAdminRequired
	}
	if id == actor.ID {
		return errors.ErrSelfDelete
	}

	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	assigned, err := s.repo.AssignedAssetCount(id)
	if err != nil {
		s.logger.Error("failed to count assigned assets", "error", err, "user_id", id)
		return err
	}
	if assigned > 0 {
		return errors.ErrUserHasAssets
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete user", "error", err, "user_id", id, "actor_id", actor.ID)
		return err
	}

	s.history.Record(actor.ID, fmt.Sprintf("deleted user %s", existing.Username))
	s.logger.Info("user deleted", "user_id", id, "actor_id", actor.ID)
	return nil
}

func (s *Service) checkUniqueness(username, email string, excludeID int64) error {
	var fieldErrors []errors.ValidationError

	taken, err := s.repo.UsernameExists(username, excludeID)
	if err != nil {
		return err
	}
	if taken {
		fieldErrors = append(fieldErrors, errors.ValidationError{
			Field:   "username",
			Message: "This username is already in use.",
			Code:    string(errors.ErrCodeDuplicateValue),
		})
	}

	taken, err = s.repo.EmailExists(email, excludeID)
	if err != nil {
		return err
	}
	if taken {
		fieldErrors = append(fieldErrors, errors.ValidationError{
			Field:   "email",
			Message: "This email is already in use.",
			Code:    string(errors.ErrCodeDuplicateValue),
		})
	}

	if len(fieldErrors) > 0 {
		return errors.NewValidationError("Validation failed", errors.ErrCodeDuplicateValue).
			WithDetails(errors.ValidationErrors{Errors: fieldErrors})
	}
	return nil
}
