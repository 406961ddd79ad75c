package postgres_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	errors "github.com/frahmantamala/asset-inventory/internal"
	"github.com/frahmantamala/asset-inventory/internal/asset"
	assetPostgres "github.com/frahmantamala/asset-inventory/internal/asset/postgres"
	assetDatamodel "github.com/frahmantamala/asset-inventory/internal/core/datamodel/asset"
	categoryDatamodel "github.com/frahmantamala/asset-inventory/internal/core/datamodel/category"
	referenceDatamodel "github.com/frahmantamala/asset-inventory/internal/core/datamodel/reference"
	userDatamodel "github.com/frahmantamala/asset-inventory/internal/core/datamodel/user"
)

func TestAssetPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Asset Postgres Suite")
}

var _ = Describe("Asset Repository", func() {
	var (
		db   *gorm.DB
		repo asset.Repository
	)

	itemCount := func(categoryID int64) int64 {
		var c categoryDatamodel.Category
		Expect(db.Take(&c, categoryID).Error).NotTo(HaveOccurred())
		return c.ItemCount
	}

	newAsset := func(assetNumber, serialNumber string) *asset.Asset {
		return &asset.Asset{
			AssetNumber:  assetNumber,
			CategoryID:   1,
			Name:         "ThinkPad X1",
			SerialNumber: serialNumber,
			Condition:    assetDatamodel.ConditionGood,
			SiteID:       1,
			AreaID:       1,
			DepartmentID: 1,
			PositionID:   1,
			Status:       assetDatamodel.StatusStandby,
		}
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(
			&categoryDatamodel.Category{},
			&referenceDatamodel.Site{},
			&referenceDatamodel.Area{},
			&referenceDatamodel.Department{},
			&referenceDatamodel.Position{},
			&userDatamodel.User{},
			&assetDatamodel.Asset{},
		)
		Expect(err).NotTo(HaveOccurred())

		Expect(db.Create(&categoryDatamodel.Category{Name: "Laptop"}).Error).NotTo(HaveOccurred())
		Expect(db.Create(&categoryDatamodel.Category{Name: "Monitor"}).Error).NotTo(HaveOccurred())
		Expect(db.Create(&referenceDatamodel.Site{Name: "Head Office"}).Error).NotTo(HaveOccurred())
		Expect(db.Create(&referenceDatamodel.Area{Name: "Floor 1"}).Error).NotTo(HaveOccurred())
		Expect(db.Create(&referenceDatamodel.Department{Name: "Engineering"}).Error).NotTo(HaveOccurred())
		Expect(db.Create(&referenceDatamodel.Position{Name: "Staff"}).Error).NotTo(HaveOccurred())
		Expect(db.Create(&userDatamodel.User{
			Username: "budi", Name: "Budi", Email: "budi@mail.com", PasswordHash: "x", Role: "user",
		}).Error).NotTo(HaveOccurred())

		repo = assetPostgres.NewAssetRepository(db)
	})

	Describe("Create", func() {
		It("inserts the row and increments the category counter", func() {
			a := newAsset("AST-001", "SN-001")
			Expect(repo.Create(a)).To(Succeed())
			Expect(a.ID).To(BeNumerically(">", 0))
			Expect(itemCount(1)).To(Equal(int64(1)))
		})

		It("rejects a duplicate asset number", func() {
			Expect(repo.Create(newAsset("AST-001", "SN-001"))).To(Succeed())
			err := repo.Create(newAsset("AST-001", "SN-002"))
			Expect(err).To(HaveOccurred())
			// The failed insert must not move the counter.
			Expect(itemCount(1)).To(Equal(int64(1)))
		})
	})

	Describe("GetByID", func() {
		It("returns the asset with joined reference names", func() {
			a := newAsset("AST-001", "SN-001")
			userID := int64(1)
			a.UserID = &userID
			Expect(repo.Create(a)).To(Succeed())

			got, err := repo.GetByID(a.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.CategoryName).To(Equal("Laptop"))
			Expect(got.SiteName).To(Equal("Head Office"))
			Expect(got.AreaName).To(Equal("Floor 1"))
			Expect(got.DepartmentName).To(Equal("Engineering"))
			Expect(got.PositionName).To(Equal("Staff"))
			Expect(got.UserName).NotTo(BeNil())
			Expect(*got.UserName).To(Equal("Budi"))
		})

		It("keeps the user name empty for unassigned assets", func() {
			a := newAsset("AST-001", "SN-001")
			Expect(repo.Create(a)).To(Succeed())

			got, err := repo.GetByID(a.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.UserID).To(BeNil())
		})

		It("reports unknown ids", func() {
			_, err := repo.GetByID(999)
			Expect(err).To(Equal(errors.ErrAssetNotFound))
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			a1 := newAsset("AST-001", "SN-001")
			userID := int64(1)
			a1.UserID = &userID
			Expect(repo.Create(a1)).To(Succeed())

			a2 := newAsset("AST-002", "SN-002")
			a2.Name = "Dell UltraSharp"
			a2.CategoryID = 2
			a2.Status = assetDatamodel.StatusInUse
			Expect(repo.Create(a2)).To(Succeed())
		})

		It("returns everything without a visibility filter", func() {
			assets, total, err := repo.List(asset.ListFilters{}, nil, 1, 15)
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(2)))
			Expect(assets).To(HaveLen(2))
		})

		It("restricts rows to the visible user", func() {
			userID := int64(1)
			assets, total, err := repo.List(asset.ListFilters{}, &userID, 1, 15)
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(1)))
			Expect(assets[0].AssetNumber).To(Equal("AST-001"))
		})

		It("matches the search term case-insensitively across number, name and serial", func() {
			assets, total, err := repo.List(asset.ListFilters{Search: "ultrasharp"}, nil, 1, 15)
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(1)))
			Expect(assets[0].Name).To(Equal("Dell UltraSharp"))

			_, total, err = repo.List(asset.ListFilters{Search: "sn-00"}, nil, 1, 15)
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(2)))
		})

		It("filters by status and category", func() {
			_, total, err := repo.List(asset.ListFilters{Status: assetDatamodel.StatusInUse}, nil, 1, 15)
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(1)))

			_, total, err = repo.List(asset.ListFilters{CategoryID: 2}, nil, 1, 15)
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(1)))
		})

		It("returns newest rows first", func() {
			assets, _, err := repo.List(asset.ListFilters{}, nil, 1, 15)
			Expect(err).NotTo(HaveOccurred())
			Expect(assets[0].AssetNumber).To(Equal("AST-002"))
		})

		It("pages results", func() {
			assets, total, err := repo.List(asset.ListFilters{}, nil, 2, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(2)))
			Expect(assets).To(HaveLen(1))
			Expect(assets[0].AssetNumber).To(Equal("AST-001"))
		})
	})

	Describe("Update", func() {
		var created *asset.Asset

		BeforeEach(func() {
			created = newAsset("AST-001", "SN-001")
			Expect(repo.Create(created)).To(Succeed())
		})

		It("keeps counters still on a same-category update", func() {
			loaded, err := repo.GetByID(created.ID)
			Expect(err).NotTo(HaveOccurred())
			loaded.Name = "Renamed"
			Expect(repo.Update(loaded, loaded.CategoryID)).To(Succeed())
			Expect(itemCount(1)).To(Equal(int64(1)))
			Expect(itemCount(2)).To(Equal(int64(0)))
		})

		It("moves both counters on a category change", func() {
			loaded, err := repo.GetByID(created.ID)
			Expect(err).NotTo(HaveOccurred())
			oldCategoryID := loaded.CategoryID
			loaded.CategoryID = 2
			Expect(repo.Update(loaded, oldCategoryID)).To(Succeed())
			Expect(itemCount(1)).To(Equal(int64(0)))
			Expect(itemCount(2)).To(Equal(int64(1)))
		})

		It("tolerates a vanished old category on a category change", func() {
			Expect(db.Exec("DELETE FROM categories WHERE id = 1").Error).NotTo(HaveOccurred())

			loaded, err := repo.GetByID(created.ID)
			// The join row is gone, so load the bare record instead.
			Expect(err).To(HaveOccurred())
			_ = loaded

			var m assetDatamodel.Asset
			Expect(db.Take(&m, created.ID).Error).NotTo(HaveOccurred())
			domain := &asset.Asset{
				ID: m.ID, AssetNumber: m.AssetNumber, CategoryID: 2, Name: m.Name,
				SerialNumber: m.SerialNumber, Condition: m.Condition, SiteID: m.SiteID,
				AreaID: m.AreaID, DepartmentID: m.DepartmentID, PositionID: m.PositionID,
				Status: m.Status, CreatedAt: m.CreatedAt,
			}
			Expect(repo.Update(domain, 1)).To(Succeed())
			Expect(itemCount(2)).To(Equal(int64(1)))
		})
	})

	Describe("Delete", func() {
		It("removes the row and decrements the counter", func() {
			a := newAsset("AST-001", "SN-001")
			Expect(repo.Create(a)).To(Succeed())
			Expect(itemCount(1)).To(Equal(int64(1)))

			Expect(repo.Delete(a.ID, a.CategoryID)).To(Succeed())
			Expect(itemCount(1)).To(Equal(int64(0)))

			_, err := repo.GetByID(a.ID)
			Expect(err).To(Equal(errors.ErrAssetNotFound))
		})

		It("reports unknown ids without touching counters", func() {
			err := repo.Delete(999, 1)
			Expect(err).To(Equal(errors.ErrAssetNotFound))
			Expect(itemCount(1)).To(Equal(int64(0)))
		})
	})

	Describe("uniqueness probes", func() {
		BeforeEach(func() {
			Expect(repo.Create(newAsset("AST-001", "SN-001"))).To(Succeed())
		})

		It("finds clashes excluding the row itself", func() {
			taken, err := repo.AssetNumberExists("AST-001", 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(taken).To(BeTrue())

			taken, err = repo.AssetNumberExists("AST-001", 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(taken).To(BeFalse())

			taken, err = repo.SerialNumberExists("SN-999", 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(taken).To(BeFalse())
		})
	})
})
