package history

import "time"

// Entry is one audit row, joined with the acting user's name for display.
type Entry struct {
	ID          int64     `json:"id"`
	OccurredAt  time.Time `json:"occurred_at"`
	UserID      int64     `json:"user_id"`
	UserName    string    `json:"user_name"`
	Description string    `json:"description"`
}

type PageInfo struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
}

type ListResponse struct {
	Entries  []*Entry `json:"entries"`
	PageInfo PageInfo `json:"page_info"`
}
