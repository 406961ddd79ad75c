package asset

import (
	"fmt"
	"log/slog"

	errors "github.com/frahmantamala/asset-inventory/internal"
	"github.com/frahmantamala/asset-inventory/internal/auth"
)

const DefaultPerPage = 15

// Repository defines the data access methods for assets. Mutating methods
// that touch a category counter run the row change and the counter change in
// one transaction.
type Repository interface {
	GetByID(id int64) (*Asset, error)
	List(filters ListFilters, visibleUserID *int64, page, perPage int) ([]*Asset, int64, error)
	Create(a *Asset) error
	Update(a *Asset, oldCategoryID int64) error
	Delete(id, categoryID int64) error

	AssetNumberExists(assetNumber string, excludeID int64) (bool, error)
	SerialNumberExists(serialNumber string, excludeID int64) (bool, error)
	CategoryExists(id int64) (bool, error)
	SiteExists(id int64) (bool, error)
	AreaExists(id int64) (bool, error)
	DepartmentExists(id int64) (bool, error)
	PositionExists(id int64) (bool, error)
	UserExists(id int64) (bool, error)
}

// HistoryRecorder appends audit rows after a mutation commits.
type HistoryRecorder interface {
	Record(userID int64, description string)
}

// Service enforces the access policy and orchestrates asset mutations,
// including category counter maintenance.
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

// ListAssets returns a page of assets visible to the actor. Regular users
// only ever see assets assigned to them, regardless of filters.
func (s *Service) ListAssets(filters ListFilters, page int, actor *auth.User) (*ListResponse, error) {
	if page < 1 {
		page = 1
	}

	var visibleUserID *int64
	if !actor.IsAdmin() {
		visibleUserID = &actor.ID
	}

	assets, total, err := s.repo.List(filters, visibleUserID, page, DefaultPerPage)
	if err != nil {
		s.logger.Error("failed to list assets", "error", err, "actor_id", actor.ID)
		return nil, err
	}

	totalPages := int((total + DefaultPerPage - 1) / DefaultPerPage)

	return &ListResponse{
		Assets: assets,
		PageInfo: PageInfo{
			Page:       page,
			PerPage:    DefaultPerPage,
			TotalCount: total,
			TotalPages: totalPages,
		},
	}, nil
}

// GetAsset retrieves a single asset with access control. NotFound and
// Forbidden stay distinct outcomes for the caller.
func (s *Service) GetAsset(id int64, actor *auth.User) (*Asset, error) {
	a, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if !s.policy.CanViewAsset(actor.Role, a.UserID, actor.ID) {
		s.logger.Warn("asset access denied", "asset_id", id, "actor_id", actor.ID)
		return nil, errors.ErrAssetForbidden
	}

	return a, nil
}

// CreateAsset registers a device (admin only) and increments the category
// counter in the same transaction as the insert.
func (s *Service) CreateAsset(dto CreateAssetDTO, actor *auth.User) (*Asset, error) {
	if !s.policy.CanCreateAsset(actor.Role) {
		s.logger.Warn("create asset denied", "actor_id", actor.ID, "role", actor.Role)
		return nil, errors.ErrAdminRequired
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkReferences(refCheck{
		categoryID:   &dto.CategoryID,
		siteID:       &dto.SiteID,
		areaID:       &dto.AreaID,
		departmentID: &dto.DepartmentID,
		positionID:   &dto.PositionID,
		userID:       dto.UserID,
	}); err != nil {
		return nil, err
	}
	if err := s.checkUniqueness(dto.AssetNumber, dto.SerialNumber, 0); err != nil {
		return nil, err
	}

	a := &Asset{
		AssetNumber:     dto.AssetNumber,
		CategoryID:      dto.CategoryID,
		Name:            dto.Name,
		SerialNumber:    dto.SerialNumber,
		OperatingSystem: dto.OperatingSystem,
		Condition:       dto.Condition,
		SiteID:          dto.SiteID,
		AreaID:          dto.AreaID,
		UserID:          dto.UserID,
		DepartmentID:    dto.DepartmentID,
		PositionID:      dto.PositionID,
		Status:          dto.Status,
		HandoverDate:    dto.HandoverDate,
		Notes:           dto.Notes,
	}
	if a.UserID != nil && *a.UserID == 0 {
		a.UserID = nil
	}

	if err := s.repo.Create(a); err != nil {
		s.logger.Error("failed to create asset", "error", err, "actor_id", actor.ID)
		return nil, err
	}

	s.history.Record(actor.ID, fmt.Sprintf("created asset %s (%s)", a.AssetNumber, a.Name))
	s.logger.Info("asset created", "asset_id", a.ID, "asset_number", a.AssetNumber, "actor_id", actor.ID)

	return s.repo.GetByID(a.ID)
}

// UpdateAsset applies a payload according to the edit policy. Regular users
// editing their own asset are limited to condition and status; all other
// submitted fields are discarded without error. An admin category change
// moves the counters of both categories atomically.
func (s *Service) UpdateAsset(id int64, dto UpdateAssetDTO, actor *auth.User) (*Asset, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	mode := s.policy.EditModeFor(actor.Role, existing.UserID, actor.ID)
	if mode == auth.EditNone {
		s.logger.Warn("asset update denied", "asset_id", id, "actor_id", actor.ID)
		return nil, errors.ErrAssetForbidden
	}

	dto = dto.FilterTo(s.policy.AllowedFields(mode))

	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkReferences(refCheck{
		categoryID:   dto.CategoryID,
		siteID:       dto.SiteID,
		areaID:       dto.AreaID,
		departmentID: dto.DepartmentID,
		positionID:   dto.PositionID,
		userID:       dto.UserID,
	}); err != nil {
		return nil, err
	}

	newAssetNumber := existing.AssetNumber
	if dto.AssetNumber != nil {
		newAssetNumber = *dto.AssetNumber
	}
	newSerialNumber := existing.SerialNumber
	if dto.SerialNumber != nil {
		newSerialNumber = *dto.SerialNumber
	}
	if err := s.checkUniqueness(newAssetNumber, newSerialNumber, id); err != nil {
		return nil, err
	}

	oldCategoryID := existing.CategoryID
	dto.ApplyTo(existing)

	if err := s.repo.Update(existing, oldCategoryID); err != nil {
		s.logger.Error("failed to update asset", "error", err, "asset_id", id, "actor_id", actor.ID)
		return nil, err
	}

	s.history.Record(actor.ID, fmt.Sprintf("updated asset %s", existing.AssetNumber))
	s.logger.Info("asset updated",
		"asset_id", id,
		"actor_id", actor.ID,
		"category_changed", existing.CategoryID != oldCategoryID)

	return s.repo.GetByID(id)
}

// DeleteAsset removes a device (admin only), decrementing its category
// counter alongside the delete.
func (s *Service) DeleteAsset(id int64, actor *auth.User) error {
	if !s.policy.CanDeleteAsset(actor.Role) {
		s.logger.Warn("delete asset denied", "actor_id", actor.ID, "role", actor.Role)
		return errors.ErrAdminRequired
	}

	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(id, existing.CategoryID); err != nil {
		s.logger.Error("failed to delete asset", "error", err, "asset_id", id, "actor_id", actor.ID)
		return err
	}

	s.history.Record(actor.ID, fmt.Sprintf("deleted asset %s (%s)", existing.AssetNumber, existing.Name))
	s.logger.Info("asset deleted", "asset_id", id, "actor_id", actor.ID)
	return nil
}

type refCheck struct {
	categoryID   *int64
	siteID       *int64
	areaID       *int64
	departmentID *int64
	positionID   *int64
	userID       *int64
}

// checkReferences rejects payloads pointing at nonexistent rows with
// field-level errors before any mutation happens.
func (s *Service) checkReferences(refs refCheck) *errors.AppError {
	var fieldErrors []errors.ValidationError

	check := func(field string, id *int64, exists func(int64) (bool, error)) {
		if id == nil || *id == 0 {
			return
		}
		ok, err := exists(*id)
		if err != nil {
			s.logger.Error("reference lookup failed", "field", field, "error", err)
			fieldErrors = append(fieldErrors, errors.ValidationError{
				Field:   field,
				Message: fmt.Sprintf("could not verify %s", field),
				Code:    string(errors.ErrCodeReferenceMissing),
			})
			return
		}
		if !ok {
			fieldErrors = append(fieldErrors, errors.ValidationError{
				Field:   field,
				Message: fmt.Sprintf("the selected %s does not exist", field),
				Code:    string(errors.ErrCodeReferenceMissing),
			})
		}
	}

	check("category_id", refs.categoryID, s.repo.CategoryExists)
	check("site_id", refs.siteID, s.repo.SiteExists)
	check("area_id", refs.areaID, s.repo.AreaExists)
	check("department_id", refs.departmentID, s.repo.DepartmentExists)
	check("position_id", refs.positionID, s.repo.PositionExists)
	check("user_id", refs.userID, s.repo.UserExists)

	if len(fieldErrors) > 0 {
		return errors.NewValidationError("Validation failed", errors.ErrCodeValidationFailed).
			WithDetails(errors.ValidationErrors{Errors: fieldErrors})
	}
	return nil
}

func (s *Service) checkUniqueness(assetNumber, serialNumber string, excludeID int64) *errors.AppError {
	var fieldErrors []errors.ValidationError

	if taken, err := s.repo.AssetNumberExists(assetNumber, excludeID); err != nil {
		return errors.NewInternalError("failed to check asset number uniqueness", err)
	} else if taken {
		fieldErrors = append(fieldErrors, errors.ValidationError{
			Field:   "asset_number",
			Message: "This asset number is already in use.",
			Code:    string(errors.ErrCodeDuplicateValue),
		})
	}

	if taken, err := s.repo.SerialNumberExists(serialNumber, excludeID); err != nil {
		return errors.NewInternalError("failed to check serial number uniqueness", err)
	} else if taken {
		fieldErrors = append(fieldErrors, errors.ValidationError{
			Field:   "serial_number",
			Message: "This serial number is already in use.",
			Code:    string(errors.ErrCodeDuplicateValue),
		})
	}

	if len(fieldErrors) > 0 {
		return errors.NewValidationError("Validation failed", errors.ErrCodeValidationFailed).
			WithDetails(errors.ValidationErrors{Errors: fieldErrors})
	}
	return nil
}
