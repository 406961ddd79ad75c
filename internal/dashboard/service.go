package dashboard

import (
	"log/slog"

	"github.com/frahmantamala/asset-inventory/internal/auth"
)

const (
	recentAssetLimit = 5
	topCategoryLimit = 5
)

type Repository interface {
	AssetTotals(visibleUserID *int64) (total int64, byStatus, byCondition map[string]int64, err error)
	CategoryCount() (int64, error)
	SiteCount() (int64, error)
	UserCount() (int64, error)
	RecentAssets(visibleUserID *int64, limit int) ([]RecentAsset, error)
	TopCategories(visibleUserID *int64, limit int) ([]CategoryCount, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// GetStats assembles the landing page figures. Regular users only see their
// own slice of the inventory.
func (s *Service) GetStats(actor *auth.User) (*Stats, error) {
	var visibleUserID *int64
	if !actor.IsAdmin() {
		visibleUserID = &actor.ID
	}

	total, byStatus, byCondition, err := s.repo.AssetTotals(visibleUserID)
	if err != nil {
		s.logger.Error("failed to load asset totals", "error", err, "actor_id", actor.ID)
		return nil, err
	}

	categories, err := s.repo.CategoryCount()
	if err != nil {
		return nil, err
	}
	sites, err := s.repo.SiteCount()
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalAssets:     total,
		ByStatus:        byStatus,
		ByCondition:     byCondition,
		TotalCategories: categories,
		TotalSites:      sites,
	}

	if actor.IsAdmin() {
		users, err := s.repo.UserCount()
		if err != nil {
			return nil, err
		}
		stats.TotalUsers = users
	}

	stats.RecentAssets, err = s.repo.RecentAssets(visibleUserID, recentAssetLimit)
	if err != nil {
		s.logger.Error("failed to load recent assets", "error", err, "actor_id", actor.ID)
		return nil, err
	}

	stats.TopCategories, err = s.repo.TopCategories(visibleUserID, topCategoryLimit)
	if err != nil {
		s.logger.Error("failed to load top categories", "error", err, "actor_id", actor.ID)
		return nil, err
	}

	return stats, nil
}
