package asset_test

import (
	"fmt"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	errors "github.com/frahmantamala/asset-inventory/internal"
	"github.com/frahmantamala/asset-inventory/internal/asset"
	"github.com/frahmantamala/asset-inventory/internal/auth"
)

func TestAsset(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Asset Suite")
}

type mockAssetRepository struct {
	assets map[int64]*asset.Asset
	nextID int64

	categories  map[int64]bool
	sites       map[int64]bool
	areas       map[int64]bool
	departments map[int64]bool
	positions   map[int64]bool
	users       map[int64]bool

	lastVisibleUserID  *int64
	lastOldCategoryID  int64
	lastDeleteCategory int64
	updateCalled       bool
	deleteCalled       bool
}

func newMockAssetRepository() *mockAssetRepository {
	return &mockAssetRepository{
		assets:      make(map[int64]*asset.Asset),
		nextID:      1,
		categories:  map[int64]bool{1: true, 2: true},
		sites:       map[int64]bool{1: true},
		areas:       map[int64]bool{1: true},
		departments: map[int64]bool{1: true},
		positions:   map[int64]bool{1: true},
		users:       map[int64]bool{7: true, 8: true},
	}
}

func (m *mockAssetRepository) GetByID(id int64) (*asset.Asset, error) {
	a, ok := m.assets[id]
	if !ok {
		return nil, errors.ErrAssetNotFound
	}
	copied := *a
	return &copied, nil
}

func (m *mockAssetRepository) List(filters asset.ListFilters, visibleUserID *int64, page, perPage int) ([]*asset.Asset, int64, error) {
	m.lastVisibleUserID = visibleUserID
	var out []*asset.Asset
	for _, a := range m.assets {
		if visibleUserID != nil && (a.UserID == nil || *a.UserID != *visibleUserID) {
			continue
		}
		out = append(out, a)
	}
	return out, int64(len(out)), nil
}

func (m *mockAssetRepository) Create(a *asset.Asset) error {
	a.ID = m.nextID
	m.nextID++
	copied := *a
	m.assets[a.ID] = &copied
	return nil
}

func (m *mockAssetRepository) Update(a *asset.Asset, oldCategoryID int64) error {
	m.updateCalled = true
	m.lastOldCategoryID = oldCategoryID
	copied := *a
	m.assets[a.ID] = &copied
	return nil
}

func (m *mockAssetRepository) Delete(id, categoryID int64) error {
	m.deleteCalled = true
	m.lastDeleteCategory = categoryID
	delete(m.assets, id)
	return nil
}

func (m *mockAssetRepository) AssetNumberExists(assetNumber string, excludeID int64) (bool, error) {
	for _, a := range m.assets {
		if a.AssetNumber == assetNumber && a.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockAssetRepository) SerialNumberExists(serialNumber string, excludeID int64) (bool, error) {
	for _, a := range m.assets {
		if a.SerialNumber == serialNumber && a.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockAssetRepository) CategoryExists(id int64) (bool, error)   { return m.categories[id], nil }
func (m *mockAssetRepository) SiteExists(id int64) (bool, error)       { return m.sites[id], nil }
func (m *mockAssetRepository) AreaExists(id int64) (bool, error)       { return m.areas[id], nil }
func (m *mockAssetRepository) DepartmentExists(id int64) (bool, error) { return m.departments[id], nil }
func (m *mockAssetRepository) PositionExists(id int64) (bool, error)   { return m.positions[id], nil }
func (m *mockAssetRepository) UserExists(id int64) (bool, error)       { return m.users[id], nil }

type mockHistory struct {
	entries []string
}

func (m *mockHistory) Record(userID int64, description string) {
	m.entries = append(m.entries, fmt.Sprintf("%d: %s", userID, description))
}

func ptrInt64(v int64) *int64    { return &v }
func ptrString(v string) *string { return &v }

var _ = Describe("Asset Service", func() {
	var (
		repo    *mockAssetRepository
		hist    *mockHistory
		service *asset.Service

		admin *auth.User
		budi  *auth.User
		citra *auth.User
	)

	validCreate := func() asset.CreateAssetDTO {
		return asset.CreateAssetDTO{
			AssetNumber:  "AST-001",
			CategoryID:   1,
			Name:         "ThinkPad X1",
			SerialNumber: "SN-123",
			Condition:    "Good",
			SiteID:       1,
			AreaID:       1,
			DepartmentID: 1,
			PositionID:   1,
			Status:       "Standby",
		}
	}

	BeforeEach(func() {
		repo = newMockAssetRepository()
		hist = &mockHistory{}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		service = asset.NewService(repo, auth.NewPolicy(), hist, logger)

		admin = &auth.User{ID: 1, Role: "admin"}
		budi = &auth.User{ID: 7, Role: "user"}
		citra = &auth.User{ID: 8, Role: "user"}
	})

	Describe("CreateAsset", func() {
		It("rejects non-admins", func() {
			_, err := service.CreateAsset(validCreate(), budi)
			Expect(err).To(Equal(errors.ErrAdminRequired))
		})

		It("creates an asset and records history", func() {
			created, err := service.CreateAsset(validCreate(), admin)
			Expect(err).NotTo(HaveOccurred())
			Expect(created.ID).To(BeNumerically(">", 0))
			Expect(hist.entries).To(HaveLen(1))
			Expect(hist.entries[0]).To(ContainSubstring("AST-001"))
		})

		It("rejects an unknown condition", func() {
			dto := validCreate()
			dto.Condition = "Broken"
			_, err := service.CreateAsset(dto, admin)
			appErr, ok := errors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(errors.ErrorTypeValidation))
		})

		It("rejects a missing category", func() {
			dto := validCreate()
			dto.CategoryID = 99
			_, err := service.CreateAsset(dto, admin)
			appErr, ok := errors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(errors.ErrorTypeValidation))
		})

		It("rejects a duplicate asset number", func() {
			_, err := service.CreateAsset(validCreate(), admin)
			Expect(err).NotTo(HaveOccurred())

			dto := validCreate()
			dto.SerialNumber = "SN-456"
			_, err = service.CreateAsset(dto, admin)
			appErr, ok := errors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(errors.ErrorTypeValidation))
		})

		It("treats a submitted user_id of 0 as unassigned", func() {
			dto := validCreate()
			dto.UserID = ptrInt64(0)
			created, err := service.CreateAsset(dto, admin)
			Expect(err).NotTo(HaveOccurred())
			Expect(created.UserID).To(BeNil())
		})
	})

	Describe("ListAssets", func() {
		It("does not scope the query for admins", func() {
			_, err := service.ListAssets(asset.ListFilters{}, 1, admin)
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.lastVisibleUserID).To(BeNil())
		})

		It("scopes the query to the actor for regular users", func() {
			_, err := service.ListAssets(asset.ListFilters{}, 1, budi)
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.lastVisibleUserID).NotTo(BeNil())
			Expect(*repo.lastVisibleUserID).To(Equal(budi.ID))
		})
	})

	Describe("GetAsset", func() {
		var assigned *asset.Asset

		BeforeEach(func() {
			dto := validCreate()
			dto.UserID = ptrInt64(budi.ID)
			var err error
			assigned, err = service.CreateAsset(dto, admin)
			Expect(err).NotTo(HaveOccurred())
		})

		It("lets the assignee read it", func() {
			got, err := service.GetAsset(assigned.ID, budi)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.ID).To(Equal(assigned.ID))
		})

		It("forbids other regular users", func() {
			_, err := service.GetAsset(assigned.ID, citra)
			Expect(err).To(Equal(errors.ErrAssetForbidden))
		})

		It("returns not found for unknown ids", func() {
			_, err := service.GetAsset(12345, admin)
			Expect(err).To(Equal(errors.ErrAssetNotFound))
		})
	})

	Describe("UpdateAsset", func() {
		var assigned *asset.Asset

		BeforeEach(func() {
			dto := validCreate()
			dto.UserID = ptrInt64(budi.ID)
			var err error
			assigned, err = service.CreateAsset(dto, admin)
			Expect(err).NotTo(HaveOccurred())
		})

		It("applies only condition and status for the assignee and discards the rest", func() {
			updated, err := service.UpdateAsset(assigned.ID, asset.UpdateAssetDTO{
				Name:      ptrString("Hacked Name"),
				UserID:    ptrInt64(citra.ID),
				Condition: ptrString("Damaged"),
				Status:    ptrString("Standby"),
			}, budi)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Condition).To(Equal("Damaged"))
			Expect(updated.Status).To(Equal("Standby"))
			Expect(updated.Name).To(Equal("ThinkPad X1"))
			Expect(updated.UserID).NotTo(BeNil())
			Expect(*updated.UserID).To(Equal(budi.ID))
		})

		It("forbids regular users touching assets not assigned to them", func() {
			_, err := service.UpdateAsset(assigned.ID, asset.UpdateAssetDTO{
				Condition: ptrString("Damaged"),
			}, citra)
			Expect(err).To(Equal(errors.ErrAssetForbidden))
		})

		It("lets admins change every field", func() {
			updated, err := service.UpdateAsset(assigned.ID, asset.UpdateAssetDTO{
				Name:   ptrString("ThinkPad T14"),
				UserID: ptrInt64(citra.ID),
			}, admin)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Name).To(Equal("ThinkPad T14"))
			Expect(*updated.UserID).To(Equal(citra.ID))
		})

		It("clears the assignment when user_id is 0", func() {
			updated, err := service.UpdateAsset(assigned.ID, asset.UpdateAssetDTO{
				UserID: ptrInt64(0),
			}, admin)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.UserID).To(BeNil())
		})

		It("passes the previous category to the store on a category change", func() {
			_, err := service.UpdateAsset(assigned.ID, asset.UpdateAssetDTO{
				CategoryID: ptrInt64(2),
			}, admin)
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.updateCalled).To(BeTrue())
			Expect(repo.lastOldCategoryID).To(Equal(int64(1)))
		})

		It("rejects an invalid status even from the assignee", func() {
			_, err := service.UpdateAsset(assigned.ID, asset.UpdateAssetDTO{
				Status: ptrString("Lost"),
			}, budi)
			appErr, ok := errors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(errors.ErrorTypeValidation))
		})
	})

	Describe("DeleteAsset", func() {
		var created *asset.Asset

		BeforeEach(func() {
			var err error
			created, err = service.CreateAsset(validCreate(), admin)
			Expect(err).NotTo(HaveOccurred())
		})

		It("rejects non-admins, even the assignee", func() {
			err := service.DeleteAsset(created.ID, budi)
			Expect(err).To(Equal(errors.ErrAdminRequired))
		})

		It("deletes and hands the category to the store for the counter", func() {
			err := service.DeleteAsset(created.ID, admin)
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.deleteCalled).To(BeTrue())
			Expect(repo.lastDeleteCategory).To(Equal(int64(1)))
		})
	})
})
