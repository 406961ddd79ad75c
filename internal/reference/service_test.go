package reference_test

import (
	"fmt"
	"log/slog"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	errors "github.com/frahmantamala/asset-inventory/internal"
	"github.com/frahmantamala/asset-inventory/internal/auth"
	"github.com/frahmantamala/asset-inventory/internal/reference"
)

func TestReference(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Reference Suite")
}

type kindedID struct {
	kind reference.Kind
	id   int64
}

type mockReferenceRepository struct {
	rows        map[kindedID]*reference.Reference
	assetCounts map[kindedID]int64
	nextID      int64
}

func newMockReferenceRepository() *mockReferenceRepository {
	return &mockReferenceRepository{
		rows:        make(map[kindedID]*reference.Reference),
		assetCounts: make(map[kindedID]int64),
		nextID:      1,
	}
}

func (m *mockReferenceRepository) GetByID(kind reference.Kind, id int64) (*reference.Reference, error) {
	ref, ok := m.rows[kindedID{kind, id}]
	if !ok {
		return nil, errors.ErrReferenceNotFound
	}
	copied := *ref
	return &copied, nil
}

func (m *mockReferenceRepository) List(kind reference.Kind, filters reference.ListFilters, page, perPage int) ([]*reference.Reference, int64, error) {
	refs, err := m.ListAll(kind)
	return refs, int64(len(refs)), err
}

func (m *mockReferenceRepository) ListAll(kind reference.Kind) ([]*reference.Reference, error) {
	var refs []*reference.Reference
	for key, ref := range m.rows {
		if key.kind == kind {
			refs = append(refs, ref)
		}
	}
	return refs, nil
}

func (m *mockReferenceRepository) Create(kind reference.Kind, ref *reference.Reference) error {
	ref.ID = m.nextID
	m.nextID++
	m.rows[kindedID{kind, ref.ID}] = ref
	return nil
}

func (m *mockReferenceRepository) Update(kind reference.Kind, ref *reference.Reference) error {
	m.rows[kindedID{kind, ref.ID}] = ref
	return nil
}

func (m *mockReferenceRepository) Delete(kind reference.Kind, id int64) error {
	delete(m.rows, kindedID{kind, id})
	return nil
}

func (m *mockReferenceRepository) NameExists(kind reference.Kind, name string, excludeID int64) (bool, error) {
	for key, ref := range m.rows {
		if key.kind == kind && ref.Name == name && ref.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockReferenceRepository) AssetCount(kind reference.Kind, id int64) (int64, error) {
	return m.assetCounts[kindedID{kind, id}], nil
}

type mockHistory struct {
	entries []string
}

func (m *mockHistory) Record(userID int64, description string) {
	m.entries = append(m.entries, fmt.Sprintf("%d: %s", userID, description))
}

var _ = Describe("Reference Service", func() {
	var (
		repo    *mockReferenceRepository
		history *mockHistory
		service *reference.Service

		admin   *auth.User
		regular *auth.User
	)

	BeforeEach(func() {
		repo = newMockReferenceRepository()
		history = &mockHistory{}
		service = reference.NewService(repo, auth.NewPolicy(), history, slog.Default())

		admin = &auth.User{ID: 1, Role: "admin"}
		regular = &auth.User{ID: 7, Role: "user"}
	})

	Describe("CreateReference", func() {
		It("rejects non-admin actors", func() {
			_, err := service.CreateReference(reference.KindArea, reference.ReferenceDTO{Name: "Floor 2"}, regular)
			Expect(err).To(Equal(errors.ErrAdminRequired))
		})

		It("keeps the address for sites", func() {
			addr := "Jl. Sudirman 12"
			ref, err := service.CreateReference(reference.KindSite, reference.ReferenceDTO{Name: "Head Office", Address: &addr}, admin)
			Expect(err).NotTo(HaveOccurred())
			Expect(ref.Address).NotTo(BeNil())
			Expect(*ref.Address).To(Equal(addr))
			Expect(history.entries).To(ContainElement(ContainSubstring("created site Head Office")))
		})

		It("drops the address for non-site kinds", func() {
			addr := "should not stick"
			ref, err := service.CreateReference(reference.KindDepartment, reference.ReferenceDTO{Name: "Finance", Address: &addr}, admin)
			Expect(err).NotTo(HaveOccurred())
			Expect(ref.Address).To(BeNil())
		})

		It("rejects a duplicate name within the same kind", func() {
			_, err := service.CreateReference(reference.KindArea, reference.ReferenceDTO{Name: "Floor 2"}, admin)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.CreateReference(reference.KindArea, reference.ReferenceDTO{Name: "Floor 2"}, admin)
			appErr, ok := errors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(errors.ErrCodeDuplicateValue))
		})

		It("allows the same name across kinds", func() {
			_, err := service.CreateReference(reference.KindArea, reference.ReferenceDTO{Name: "Warehouse"}, admin)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.CreateReference(reference.KindDepartment, reference.ReferenceDTO{Name: "Warehouse"}, admin)
			Expect(err).NotTo(HaveOccurred())
		})

		It("rejects a blank name", func() {
			_, err := service.CreateReference(reference.KindPosition, reference.ReferenceDTO{}, admin)
			appErr, ok := errors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(errors.ErrorTypeValidation))
		})
	})

	Describe("UpdateReference", func() {
		var siteID int64

		BeforeEach(func() {
			ref, err := service.CreateReference(reference.KindSite, reference.ReferenceDTO{Name: "Head Office"}, admin)
			Expect(err).NotTo(HaveOccurred())
			siteID = ref.ID
		})

		It("renames and updates the address", func() {
			addr := "Jl. Thamrin 5"
			updated, err := service.UpdateReference(reference.KindSite, siteID, reference.ReferenceDTO{Name: "Branch Office", Address: &addr}, admin)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Name).To(Equal("Branch Office"))
			Expect(*updated.Address).To(Equal(addr))
		})

		It("reports unknown ids", func() {
			_, err := service.UpdateReference(reference.KindSite, 99, reference.ReferenceDTO{Name: "Nowhere"}, admin)
			Expect(err).To(Equal(errors.ErrReferenceNotFound))
		})

		It("rejects non-admin actors", func() {
			_, err := service.UpdateReference(reference.KindSite, siteID, reference.ReferenceDTO{Name: "Branch Office"}, regular)
			Expect(err).To(Equal(errors.ErrAdminRequired))
		})
	})

	Describe("DeleteReference", func() {
		var areaID int64

		BeforeEach(func() {
			ref, err := service.CreateReference(reference.KindArea, reference.ReferenceDTO{Name: "Floor 2"}, admin)
			Expect(err).NotTo(HaveOccurred())
			areaID = ref.ID
		})

		It("refuses while assets still point at the row", func() {
			repo.assetCounts[kindedID{reference.KindArea, areaID}] = 2
			err := service.DeleteReference(reference.KindArea, areaID, admin)
			Expect(err).To(Equal(errors.ErrReferenceInUse))
			Expect(repo.rows).To(HaveKey(kindedID{reference.KindArea, areaID}))
		})

		It("deletes an unused row and records history", func() {
			err := service.DeleteReference(reference.KindArea, areaID, admin)
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.rows).NotTo(HaveKey(kindedID{reference.KindArea, areaID}))
			Expect(history.entries).To(ContainElement(ContainSubstring("deleted area Floor 2")))
		})

		It("rejects non-admin actors", func() {
			err := service.DeleteReference(reference.KindArea, areaID, regular)
			Expect(err).To(Equal(errors.ErrAdminRequired))
		})
	})
})
