package user_test

import (
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/commerce-management/internal"
	userDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/user"
	"github.com/frahmantamala/commerce-management/internal/user"
)

func TestUser(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Module Suite")
}

type mockUserRepository struct {
	users       map[int64]*userDatamodel.User
	listError   error
	getError    error
	createError error
	updateError error
	nextID      int64
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users:  make(map[int64]*userDatamodel.User),
		nextID: 1,
	}
}

func (m *mockUserRepository) addUser(email, name, role string) *userDatamodel.User {
	row := &userDatamodel.User{
		ID:       m.nextID,
		Email:    email,
		Name:     name,
		Role:     role,
		IsActive: true,
	}
	m.nextID++
	m.users[row.ID] = row
	return row
}

func (m *mockUserRepository) List(limit, offset int, search string) ([]*userDatamodel.User, int64, error) {
	if m.listError != nil {
		return nil, 0, m.listError
	}
	var rows []*userDatamodel.User
	for _, row := range m.users {
		if search != "" && !strings.Contains(row.Name, search) && !strings.Contains(row.Email, search) {
			continue
		}
		rows = append(rows, row)
	}
	total := int64(len(rows))
	if offset >= len(rows) {
		return []*userDatamodel.User{}, total, nil
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end], total, nil
}

func (m *mockUserRepository) GetByID(id int64) (*userDatamodel.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	return m.users[id], nil
}

func (m *mockUserRepository) GetByEmail(email string) (*userDatamodel.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	for _, row := range m.users {
		if row.Email == email {
			return row, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepository) Create(row *userDatamodel.User) error {
	if m.createError != nil {
		return m.createError
	}
	row.ID = m.nextID
	m.nextID++
	m.users[row.ID] = row
	return nil
}

func (m *mockUserRepository) UpdateFields(id int64, fields map[string]interface{}) error {
	if m.updateError != nil {
		return m.updateError
	}
	row, ok := m.users[id]
	if !ok {
		return nil
	}
	if v, ok := fields["name"]; ok {
		row.Name = v.(string)
	}
	if v, ok := fields["email"]; ok {
		row.Email = v.(string)
	}
	if v, ok := fields["role"]; ok {
		row.Role = v.(string)
	}
	if v, ok := fields["is_active"]; ok {
		row.IsActive = v.(bool)
	}
	return nil
}

var _ = Describe("UserService", func() {
	var (
		service  *user.Service
		mockRepo *mockUserRepository
	)

	BeforeEach(func() {
		mockRepo = newMockUserRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = user.NewService(mockRepo, bcrypt.MinCost, logger)
	})

	Describe("CreateUser", func() {
		It("should create a user with the given role", func() {
			dto := user.CreateUserDTO{
				Name:     "Maya Manager",
				Email:    "maya@example.com",
				Password: "supersecret",
				Role:     "manager",
			}

			result, err := service.CreateUser(dto)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Role).To(Equal("manager"))
			Expect(result.IsActive).To(BeTrue())
		})

		It("should default the role to user when omitted", func() {
			dto := user.CreateUserDTO{
				Name:     "Sari Staff",
				Email:    "sari@example.com",
				Password: "supersecret",
			}

			result, err := service.CreateUser(dto)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Role).To(Equal("user"))
		})

		It("should reject an unknown role", func() {
			dto := user.CreateUserDTO{
				Name:     "Weird Role",
				Email:    "weird@example.com",
				Password: "supersecret",
				Role:     "superuser",
			}

			_, err := service.CreateUser(dto)

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("role"))
		})

		It("should reject a duplicate email with a conflict", func() {
			mockRepo.addUser("taken@example.com", "Existing", "user")
			dto := user.CreateUserDTO{
				Name:     "Dup",
				Email:    "taken@example.com",
				Password: "supersecret",
			}

			_, err := service.CreateUser(dto)

			Expect(err).To(Equal(internal.ErrEmailTaken))
		})

		It("should reject an invalid email address", func() {
			dto := user.CreateUserDTO{
				Name:     "Bad Email",
				Email:    "not-an-email",
				Password: "supersecret",
			}

			_, err := service.CreateUser(dto)

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("email"))
		})
	})

	Describe("UpdateUser", func() {
		var existing *userDatamodel.User

		BeforeEach(func() {
			existing = mockRepo.addUser("user@example.com", "Original Name", "user")
		})

		It("should apply only the supplied fields", func() {
			newName := "Renamed"

			result, err := service.UpdateUser(existing.ID, user.UpdateUserDTO{Name: &newName})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Name).To(Equal("Renamed"))
			Expect(result.Email).To(Equal("user@example.com"))
		})

		It("should reject an empty update set", func() {
			_, err := service.UpdateUser(existing.ID, user.UpdateUserDTO{})

			Expect(err).To(Equal(internal.ErrNothingToUpdate))
		})

		It("should reject an email change to a taken address", func() {
			mockRepo.addUser("other@example.com", "Other", "user")
			taken := "other@example.com"

			_, err := service.UpdateUser(existing.ID, user.UpdateUserDTO{Email: &taken})

			Expect(err).To(Equal(internal.ErrEmailTaken))
		})

		It("should allow re-submitting the current email", func() {
			same := "user@example.com"
			newName := "Renamed"

			_, err := service.UpdateUser(existing.ID, user.UpdateUserDTO{Email: &same, Name: &newName})

			Expect(err).ToNot(HaveOccurred())
		})

		It("should return not found for an absent user", func() {
			newName := "Ghost"

			_, err := service.UpdateUser(999, user.UpdateUserDTO{Name: &newName})

			Expect(err).To(Equal(internal.ErrUserNotFound))
		})
	})

	Describe("DeactivateUser", func() {
		It("should flip is_active off without deleting the row", func() {
			target := mockRepo.addUser("target@example.com", "Target", "user")

			err := service.DeactivateUser(target.ID, 99)

			Expect(err).ToNot(HaveOccurred())
			Expect(mockRepo.users[target.ID]).ToNot(BeNil())
			Expect(mockRepo.users[target.ID].IsActive).To(BeFalse())
		})

		It("should refuse self-deactivation before touching the store", func() {
			mockRepo.getError = errors.New("store must not be called")

			err := service.DeactivateUser(7, 7)

			Expect(err).To(Equal(internal.ErrSelfDeactivation))
		})

		It("should return not found for an absent user", func() {
			err := service.DeactivateUser(999, 1)

			Expect(err).To(Equal(internal.ErrUserNotFound))
		})
	})

	Describe("ListUsers", func() {
		BeforeEach(func() {
			mockRepo.addUser("a@example.com", "Alpha", "user")
			mockRepo.addUser("b@example.com", "Beta", "manager")
		})

		It("should return the total alongside the page", func() {
			result, total, err := service.ListUsers(user.ListUsersQuery{Page: 1, Limit: 1})

			Expect(err).ToNot(HaveOccurred())
			Expect(total).To(Equal(int64(2)))
			Expect(result).To(HaveLen(1))
		})

		It("should filter by search term", func() {
			result, total, err := service.ListUsers(user.ListUsersQuery{Search: "Alpha"})

			Expect(err).ToNot(HaveOccurred())
			Expect(total).To(Equal(int64(1)))
			Expect(result[0].Name).To(Equal("Alpha"))
		})
	})
})
