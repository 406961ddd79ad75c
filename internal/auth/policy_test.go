package auth_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/asset-inventory/internal/auth"
)

func TestAuth(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Suite")
}

var _ = Describe("Policy", func() {
	var policy *auth.Policy

	ownerID := int64(7)
	otherID := int64(8)

	BeforeEach(func() {
		policy = auth.NewPolicy()
	})

	Describe("CanViewAsset", func() {
		It("lets admins view any asset", func() {
			Expect(policy.CanViewAsset("admin", nil, otherID)).To(BeTrue())
			Expect(policy.CanViewAsset("admin", &ownerID, otherID)).To(BeTrue())
		})

		It("lets a user view only assets assigned to them", func() {
			Expect(policy.CanViewAsset("user", &ownerID, ownerID)).To(BeTrue())
			Expect(policy.CanViewAsset("user", &ownerID, otherID)).To(BeFalse())
		})

		It("hides unassigned assets from regular users", func() {
			Expect(policy.CanViewAsset("user", nil, ownerID)).To(BeFalse())
		})
	})

	Describe("EditModeFor", func() {
		It("grants admins full edit on any asset", func() {
			Expect(policy.EditModeFor("admin", nil, otherID)).To(Equal(auth.EditFull))
			Expect(policy.EditModeFor("admin", &ownerID, otherID)).To(Equal(auth.EditFull))
		})

		It("grants limited edit to the assignee", func() {
			Expect(policy.EditModeFor("user", &ownerID, ownerID)).To(Equal(auth.EditLimited))
		})

		It("grants nothing to everyone else", func() {
			Expect(policy.EditModeFor("user", &ownerID, otherID)).To(Equal(auth.EditNone))
			Expect(policy.EditModeFor("user", nil, otherID)).To(Equal(auth.EditNone))
		})
	})

	Describe("AllowedFields", func() {
		It("permits everything in full mode", func() {
			Expect(policy.AllowedFields(auth.EditFull)).To(BeNil())
		})

		It("permits exactly condition and status in limited mode", func() {
			fields := policy.AllowedFields(auth.EditLimited)
			Expect(fields).To(HaveLen(2))
			Expect(fields).To(HaveKey("condition"))
			Expect(fields).To(HaveKey("status"))
		})

		It("permits nothing in none mode", func() {
			Expect(policy.AllowedFields(auth.EditNone)).To(BeEmpty())
		})
	})

	Describe("administrative abilities", func() {
		It("reserves create, delete and management for admins", func() {
			Expect(policy.CanCreateAsset("admin")).To(BeTrue())
			Expect(policy.CanCreateAsset("user")).To(BeFalse())
			Expect(policy.CanDeleteAsset("user")).To(BeFalse())
			Expect(policy.CanManageUsers("user")).To(BeFalse())
			Expect(policy.CanManageReferences("user")).To(BeFalse())
			Expect(policy.CanManageReferences("admin")).To(BeTrue())
		})
	})
})
