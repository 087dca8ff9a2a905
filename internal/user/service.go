package user

import (
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/commerce-management/internal"
	userDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/user"
)

type RepositoryAPI interface {
	List(limit, offset int, search string) ([]*userDatamodel.User, int64, error)
	GetByID(id int64) (*userDatamodel.User, error)
	GetByEmail(email string) (*userDatamodel.User, error)
	Create(row *userDatamodel.User) error
	UpdateFields(id int64, fields map[string]interface{}) error
}

type Service struct {
	repo       RepositoryAPI
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *Service) ListUsers(query ListUsersQuery) ([]*User, int64, error) {
	query.Normalize()

	rows, total, err := s.repo.List(query.Limit, query.Offset(), query.Search)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, 0, internal.NewInternalError("failed to list users", err)
	}

	return FromDataModelSlice(rows), total, nil
}

func (s *Service) GetByID(id int64) (*User, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get user", "error", err, "user_id", id)
		return nil, internal.NewInternalError("failed to get user", err)
	}
	if row == nil {
		return nil, internal.ErrUserNotFound
	}
	return FromDataModel(row), nil
}

func (s *Service) CreateUser(dto CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByEmail(dto.Email)
	if err != nil {
		s.logger.Error("failed to check email uniqueness", "error", err)
		return nil, internal.NewInternalError("failed to create user", err)
	}
	if existing != nil {
		return nil, internal.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, internal.NewInternalError("failed to create user", err)
	}

	role := dto.Role
	if role == "" {
		role = "user"
	}

	row := &userDatamodel.User{
		Email:        dto.Email,
		Name:         dto.Name,
		PasswordHash: string(hash),
		Role:         role,
		Department:   dto.Department,
		Position:     dto.Position,
		IsActive:     true,
	}
	if err := s.repo.Create(row); err != nil {
		s.logger.Error("failed to create user", "error", err, "email", dto.Email)
		return nil, internal.NewInternalError("failed to create user", err)
	}

	s.logger.Info("user created", "user_id", row.ID, "email", row.Email, "role", row.Role)
	return FromDataModel(row), nil
}

func (s *Service) UpdateUser(id int64, dto UpdateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to load user for update", "error", err, "user_id", id)
		return nil, internal.NewInternalError("failed to update user", err)
	}
	if existing == nil {
		return nil, internal.ErrUserNotFound
	}

	if dto.Email != nil && *dto.Email != existing.Email {
		other, err := s.repo.GetByEmail(*dto.Email)
		if err != nil {
			s.logger.Error("failed to check email uniqueness", "error", err)
			return nil, internal.NewInternalError("failed to update user", err)
		}
		if other != nil {
			return nil, internal.ErrEmailTaken
		}
	}

	if err := s.repo.UpdateFields(id, dto.Fields()); err != nil {
		s.logger.Error("failed to update user", "error", err, "user_id", id)
		return nil, internal.NewInternalError("failed to update user", err)
	}

	updated, err := s.repo.GetByID(id)
	if err != nil || updated == nil {
		s.logger.Error("failed to reload user after update", "error", err, "user_id", id)
		return nil, internal.NewInternalError("failed to update user", err)
	}

	s.logger.Info("user updated", "user_id", id)
	return FromDataModel(updated), nil
}

// DeactivateUser flips is_active off; the row is never deleted. The acting
// principal may not deactivate themselves, checked before any store write.
func (s *Service) DeactivateUser(id, actingUserID int64) error {
	if id == actingUserID {
		return internal.ErrSelfDeactivation
	}

	existing, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to load user for deactivation", "error", err, "user_id", id)
		return internal.NewInternalError("failed to deactivate user", err)
	}
	if existing == nil {
		return internal.ErrUserNotFound
	}

	if err := s.repo.UpdateFields(id, map[string]interface{}{"is_active": false}); err != nil {
		s.logger.Error("failed to deactivate user", "error", err, "user_id", id)
		return internal.NewInternalError("failed to deactivate user", err)
	}

	s.logger.Info("user deactivated", "user_id", id, "deactivated_by", actingUserID)
	return nil
}
