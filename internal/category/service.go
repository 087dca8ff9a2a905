package category

import (
	"fmt"
	"log/slog"

	"github.com/frahmantamala/commerce-management/internal"
	categoryDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/category"
)

type RepositoryAPI interface {
	List(limit, offset int) ([]*categoryDatamodel.Category, int64, error)
	GetByID(id int64) (*categoryDatamodel.Category, error)
	GetByName(name string) (*categoryDatamodel.Category, error)
	Create(row *categoryDatamodel.Category) error
	UpdateFields(id int64, fields map[string]interface{}) error
	Delete(id int64) error
	CountProducts(id int64) (int64, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) ListCategories(query ListCategoriesQuery) ([]*Category, int64, error) {
	query.Normalize()

	rows, total, err := s.repo.List(query.Limit, query.Offset())
	if err != nil {
		s.logger.Error("failed to list categories", "error", err)
		return nil, 0, internal.NewInternalError("failed to list categories", err)
	}

	return FromDataModelSlice(rows), total, nil
}

func (s *Service) GetByID(id int64) (*Category, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get category", "error", err, "category_id", id)
		return nil, internal.NewInternalError("failed to get category", err)
	}
	if row == nil {
		return nil, internal.ErrCategoryNotFound
	}
	return FromDataModel(row), nil
}

func (s *Service) CreateCategory(dto CreateCategoryDTO) (*Category, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByName(dto.Name)
	if err != nil {
		s.logger.Error("failed to check category name", "error", err)
		return nil, internal.NewInternalError("failed to create category", err)
	}
	if existing != nil {
		return nil, internal.ErrCategoryNameTaken
	}

	row := &categoryDatamodel.Category{
		Name:        dto.Name,
		Description: dto.Description,
	}
	if err := s.repo.Create(row); err != nil {
		s.logger.Error("failed to create category", "error", err, "name", dto.Name)
		return nil, internal.NewInternalError("failed to create category", err)
	}

	s.logger.Info("category created", "category_id", row.ID, "name", row.Name)
	return FromDataModel(row), nil
}

func (s *Service) UpdateCategory(id int64, dto UpdateCategoryDTO) (*Category, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to load category for update", "error", err, "category_id", id)
		return nil, internal.NewInternalError("failed to update category", err)
	}
	if existing == nil {
		return nil, internal.ErrCategoryNotFound
	}

	if dto.Name != nil && *dto.Name != existing.Name {
		other, err := s.repo.GetByName(*dto.Name)
		if err != nil {
			s.logger.Error("failed to check category name", "error", err)
			return nil, internal.NewInternalError("failed to update category", err)
		}
		if other != nil {
			return nil, internal.ErrCategoryNameTaken
		}
	}

	if err := s.repo.UpdateFields(id, dto.Fields()); err != nil {
		s.logger.Error("failed to update category", "error", err, "category_id", id)
		return nil, internal.NewInternalError("failed to update category", err)
	}

	updated, err := s.repo.GetByID(id)
	if err != nil || updated == nil {
		s.logger.Error("failed to reload category after update", "error", err, "category_id", id)
		return nil, internal.NewInternalError("failed to update category", err)
	}

	s.logger.Info("category updated", "category_id", id)
	return FromDataModel(updated), nil
}

// DeleteCategory refuses to delete a category that products still reference.
// The reference count runs before the delete statement so the rejection
// carries a specific reason instead of a store-level constraint error.
func (s *Service) DeleteCategory(id int64) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to load category for deletion", "error", err, "category_id", id)
		return internal.NewInternalError("failed to delete category", err)
	}
	if existing == nil {
		return internal.ErrCategoryNotFound
	}

	count, err := s.repo.CountProducts(id)
	if err != nil {
		s.logger.Error("failed to count category products", "error", err, "category_id", id)
		return internal.NewInternalError("failed to delete category", err)
	}
	if count > 0 {
		return internal.NewConflictError(
			fmt.Sprintf("Category %q is referenced by %d product(s) and cannot be deleted", existing.Name, count),
			internal.ErrCodeCategoryInUse,
		)
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete category", "error", err, "category_id", id)
		return internal.NewInternalError("failed to delete category", err)
	}

	s.logger.Info("category deleted", "category_id", id, "name", existing.Name)
	return nil
}
