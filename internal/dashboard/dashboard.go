package dashboard

import "time"

// Stats is the landing page summary. For regular users every figure is
// scoped to the assets assigned to them; admins see the whole inventory plus
// the account total.
type Stats struct {
	TotalAssets     int64            `json:"total_assets"`
	ByStatus        map[string]int64 `json:"by_status"`
	ByCondition     map[string]int64 `json:"by_condition"`
	TotalCategories int64            `json:"total_categories"`
	TotalSites      int64            `json:"total_sites"`
	TotalUsers      int64            `json:"total_users,omitempty"`
	RecentAssets    []RecentAsset    `json:"recent_assets"`
	TopCategories   []CategoryCount  `json:"top_categories"`
}

// RecentAsset is the slim row the dashboard renders for latest additions.
type RecentAsset struct {
	ID           int64     `json:"id"`
	AssetNumber  string    `json:"asset_number"`
	Name         string    `json:"name"`
	CategoryName string    `json:"category_name"`
	Status       string    `json:"status"`
	Condition    string    `json:"condition"`
	CreatedAt    time.Time `json:"created_at"`
}

// CategoryCount ranks a category by its live asset count, not the
// denormalized counter, so the dashboard stays honest even if the counter
// drifts.
type CategoryCount struct {
	CategoryID int64  `json:"category_id"`
	Name       string `json:"name"`
	AssetCount int64  `json:"asset_count"`
}
