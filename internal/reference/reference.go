package reference

import "time"

// Kind names one of the lookup tables assets point at.
type Kind string

const (
	KindSite       Kind = "site"
	KindArea       Kind = "area"
	KindDepartment Kind = "department"
	KindPosition   Kind = "position"
)

// Kinds returns every lookup kind, in route order.
func Kinds() []Kind {
	return []Kind{KindSite, KindArea, KindDepartment, KindPosition}
}

func (k Kind) Valid() bool {
	switch k {
	case KindSite, KindArea, KindDepartment, KindPosition:
		return true
	}
	return false
}

// Reference is the domain view of one lookup row. Address is only set for
// sites.
type Reference struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   *string   `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
