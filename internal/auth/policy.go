package auth

import userDatamodel "github.com/frahmantamala/asset-inventory/internal/core/datamodel/user"

// EditMode is the outcome of the asset edit policy.
type EditMode int

const (
	// EditNone means the actor may not touch the asset at all.
	EditNone EditMode = iota
	// EditLimited means a regular user editing their own asset: only the
	// condition and status fields are applied, everything else in the payload
	// is silently discarded.
	EditLimited
	// EditFull means every field of the payload is applied.
	EditFull
)

// Policy maps (role, ownership) to what an actor may do with assets and
// users. It is a pure allow-list: handlers and services never re-derive
// permissions with ad-hoc role checks.
type Policy struct{}

func NewPolicy() *Policy {
	return &Policy{}
}

func (Policy) CanCreateAsset(role string) bool {
	return role == userDatamodel.RoleAdmin
}

func (Policy) CanDeleteAsset(role string) bool {
	return role == userDatamodel.RoleAdmin
}

func (Policy) CanManageUsers(role string) bool {
	return role == userDatamodel.RoleAdmin
}

// CanManageReferences covers categories, sites, areas, departments and
// positions. Reads stay open to every authenticated user for the dropdowns.
func (Policy) CanManageReferences(role string) bool {
	return role == userDatamodel.RoleAdmin
}

// CanViewAsset: admins see everything; regular users only assets assigned to
// them. ownerID is nil for unassigned assets.
func (Policy) CanViewAsset(role string, ownerID *int64, requesterID int64) bool {
	if role == userDatamodel.RoleAdmin {
		return true
	}
	return ownerID != nil && *ownerID == requesterID
}

// EditModeFor decides how much of an update payload applies.
func (Policy) EditModeFor(role string, ownerID *int64, requesterID int64) EditMode {
	if role == userDatamodel.RoleAdmin {
		return EditFull
	}
	if ownerID != nil && *ownerID == requesterID {
		return EditLimited
	}
	return EditNone
}

// limitedFields is the exact field set a regular user may change on their own
// asset.
var limitedFields = map[string]bool{
	"condition": true,
	"status":    true,
}

// AllowedFields returns the allow-list of payload field names for a mode.
// A nil map means every field is permitted.
func (Policy) AllowedFields(mode EditMode) map[string]bool {
	switch mode {
	case EditFull:
		return nil
	case EditLimited:
		fields := make(map[string]bool, len(limitedFields))
		for f := range limitedFields {
			fields[f] = true
		}
		return fields
	default:
		return map[string]bool{}
	}
}
