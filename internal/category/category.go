package category

import (
	"time"

	categoryDatamodel "github.com/frahmantamala/asset-inventory/internal/core/datamodel/category"
)

// Category is the domain view of an asset category. ItemCount is the
// denormalized number of assets in the category, maintained by the asset
// store and repairable through Recount.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	ItemCount int64     `json:"item_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromDataModel(m *categoryDatamodel.Category) *Category {
	return &Category{
		ID:        m.ID,
		Name:      m.Name,
		ItemCount: m.ItemCount,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
