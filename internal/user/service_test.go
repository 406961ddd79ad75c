package user_test

import (
	"fmt"
	"log/slog"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	errors "github.com/frahmantamala/asset-inventory/internal"
	"github.com/frahmantamala/asset-inventory/internal/auth"
	"github.com/frahmantamala/asset-inventory/internal/user"
)

func TestUser(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Suite")
}

type mockUserRepository struct {
	users          map[int64]*user.User
	assignedCounts map[int64]int64
	nextID         int64

	lastCreateHash string
	lastUpdateHash string
	deletedID      int64
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users:          make(map[int64]*user.User),
		assignedCounts: make(map[int64]int64),
		nextID:         1,
	}
}

func (m *mockUserRepository) GetByID(id int64) (*user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, errors.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *mockUserRepository) List(filters user.ListFilters, page, perPage int) ([]*user.User, int64, error) {
	users := make([]*user.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	return users, int64(len(users)), nil
}

func (m *mockUserRepository) ListAll() ([]*user.User, error) {
	users, _, err := m.List(user.ListFilters{}, 1, 100)
	return users, err
}

func (m *mockUserRepository) Create(u *user.User, passwordHash string) error {
	u.ID = m.nextID
	m.nextID++
	m.users[u.ID] = u
	m.lastCreateHash = passwordHash
	return nil
}

func (m *mockUserRepository) Update(u *user.User, passwordHash string) error {
	m.users[u.ID] = u
	m.lastUpdateHash = passwordHash
	return nil
}

func (m *mockUserRepository) Delete(id int64) error {
	delete(m.users, id)
	m.deletedID = id
	return nil
}

func (m *mockUserRepository) UsernameExists(username string, excludeID int64) (bool, error) {
	for _, u := range m.users {
		if u.Username == username && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepository) EmailExists(email string, excludeID int64) (bool, error) {
	for _, u := range m.users {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepository) AssignedAssetCount(userID int64) (int64, error) {
	return m.assignedCounts[userID], nil
}

type mockHistory struct {
	entries []string
}

func (m *mockHistory) Record(userID int64, description string) {
	m.entries = append(m.entries, fmt.Sprintf("%d: %s", userID, description))
}

var _ = Describe("User Service", func() {
	var (
		repo    *mockUserRepository
		history *mockHistory
		service *user.Service

		admin   *auth.User
		regular *auth.User
	)

	BeforeEach(func() {
		repo = newMockUserRepository()
		history = &mockHistory{}
		service = user.NewService(repo, auth.NewPolicy(), history, slog.Default(), bcrypt.MinCost)

		admin = &auth.User{ID: 1, Role: "admin"}
		regular = &auth.User{ID: 7, Role: "user"}

		repo.users[1] = &user.User{ID: 1, Username: "admin", Name: "Admin", Email: "admin@mail.com", Role: "admin"}
		repo.users[7] = &user.User{ID: 7, Username: "budi", Name: "Budi", Email: "budi@mail.com", Role: "user"}
		repo.nextID = 8
	})

	Describe("CreateUser", func() {
		validDTO := user.CreateUserDTO{
			Username: "citra",
			Name:     "Citra",
			Email:    "citra@mail.com",
			Password: "supersecret",
			Role:     "user",
		}

		It("rejects non-admin actors", func() {
			_, err := service.CreateUser(validDTO, regular)
			Expect(err).To(Equal(errors.ErrAdminRequired))
		})

		It("stores a bcrypt hash, never the raw password", func() {
			created, err := service.CreateUser(validDTO, admin)
			Expect(err).NotTo(HaveOccurred())
			Expect(created.ID).To(Equal(int64(8)))

			Expect(repo.lastCreateHash).NotTo(Equal("supersecret"))
			Expect(bcrypt.CompareHashAndPassword([]byte(repo.lastCreateHash), []byte("supersecret"))).To(Succeed())
			Expect(history.entries).To(ContainElement(ContainSubstring("created user citra")))
		})

		It("rejects a taken username", func() {
			dto := validDTO
			dto.Username = "budi"
			_, err := service.CreateUser(dto, admin)

			appErr, ok := errors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(errors.ErrCodeDuplicateValue))
		})

		It("rejects a short password", func() {
			dto := validDTO
			dto.Password = "short"
			_, err := service.CreateUser(dto, admin)
			Expect(err).To(HaveOccurred())

			appErr, ok := errors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(errors.ErrorTypeValidation))
		})
	})

	Describe("UpdateUser", func() {
		validDTO := user.UpdateUserDTO{
			Username: "budi",
			Name:     "Budi Santoso",
			Email:    "budi@mail.com",
			Role:     "user",
		}

		It("keeps the stored hash when the password is left blank", func() {
			updated, err := service.UpdateUser(7, validDTO, admin)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Name).To(Equal("Budi Santoso"))
			Expect(repo.lastUpdateHash).To(BeEmpty())
		})

		It("rehashes when a new password is supplied", func() {
			dto := validDTO
			dto.Password = "anothersecret"
			_, err := service.UpdateUser(7, dto, admin)
			Expect(err).NotTo(HaveOccurred())
			Expect(bcrypt.CompareHashAndPassword([]byte(repo.lastUpdateHash), []byte("anothersecret"))).To(Succeed())
		})

		It("rejects an email already used by another account", func() {
			dto := validDTO
			dto.Email = "admin@mail.com"
			_, err := service.UpdateUser(7, dto, admin)

			appErr, ok := errors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(errors.ErrCodeDuplicateValue))
		})

		It("rejects non-admin actors", func() {
			_, err := service.UpdateUser(7, validDTO, regular)
			Expect(err).To(Equal(errors.ErrAdminRequired))
		})

		It("reports unknown ids", func() {
			_, err := service.UpdateUser(99, validDTO, admin)
			Expect(err).To(Equal(errors.ErrUserNotFound))
		})
	})

	Describe("DeleteUser", func() {
		It("refuses to delete the acting account", func() {
			err := service.DeleteUser(admin.ID, admin)
			Expect(err).To(Equal(errors.ErrSelfDelete))
		})

		It("refuses when assets are still assigned", func() {
			repo.assignedCounts[7] = 3
			err := service.DeleteUser(7, admin)
			Expect(err).To(Equal(errors.ErrUserHasAssets))
			Expect(repo.users).To(HaveKey(int64(7)))
		})

		It("deletes an unassigned account and records history", func() {
			err := service.DeleteUser(7, admin)
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.deletedID).To(Equal(int64(7)))
			Expect(history.entries).To(ContainElement(ContainSubstring("deleted user budi")))
		})

		It("rejects non-admin actors", func() {
			err := service.DeleteUser(1, regular)
			Expect(err).To(Equal(errors.ErrAdminRequired))
		})
	})

	Describe("ListUsers", func() {
		It("rejects non-admin actors", func() {
			_, err := service.ListUsers(user.ListFilters{}, 1, regular)
			Expect(err).To(Equal(errors.ErrAdminRequired))
		})

		It("pages for admins", func() {
			resp, err := service.ListUsers(user.ListFilters{}, 0, admin)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.PageInfo.Page).To(Equal(1))
			Expect(resp.PageInfo.TotalCount).To(Equal(int64(2)))
		})
	})
})
