package product

import (
	"fmt"
	"log/slog"

	"github.com/frahmantamala/commerce-management/internal"
	productDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/product"
)

type RepositoryAPI interface {
	List(query ListProductsQuery) ([]*productDatamodel.Product, int64, error)
	GetByID(id int64) (*productDatamodel.Product, error)
	Create(row *productDatamodel.Product) error
	UpdateFields(id int64, fields map[string]interface{}) error
	Delete(id int64) error
	CategoryExists(id int64) (bool, error)
	CountOrderItems(id int64) (int64, error)
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

func (s *Service) ListProducts(query ListProductsQuery) ([]*Product, int64, error) {
	query.Normalize()

	rows, total, err := s.repo.List(query)
	if err != nil {
		s.logger.Error("failed to list products", "error", err)
		return nil, 0, internal.NewInternalError("failed to list products", err)
	}

	return FromDataModelSlice(rows), total, nil
}

func (s *Service) GetByID(id int64) (*Product, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get product", "error", err, "product_id", id)
		return nil, internal.NewInternalError("failed to get product", err)
	}
	if row == nil {
		return nil, internal.ErrProductNotFound
	}
	return FromDataModel(row), nil
}

func (s *Service) CreateProduct(dto CreateProductDTO) (*Product, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkCategory(dto.CategoryID); err != nil {
		return nil, err
	}

	row := &productDatamodel.Product{
		Name:        dto.Name,
		Description: dto.Description,
		Price:       dto.Price,
		ImageURL:    dto.ImageURL,
		CategoryID:  dto.CategoryID,
	}
	if dto.Stock != nil {
		row.Stock = *dto.Stock
	}

	if err := s.repo.Create(row); err != nil {
		s.logger.Error("failed to create product", "error", err, "name", dto.Name)
		return nil, internal.NewInternalError("failed to create product", err)
	}

	s.logger.Info("product created", "product_id", row.ID, "name", row.Name)
	return FromDataModel(row), nil
}

func (s *Service) UpdateProduct(id int64, dto UpdateProductDTO) (*Product, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to load product for update", "error", err, "product_id", id)
		return nil, internal.NewInternalError("failed to update product", err)
	}
	if existing == nil {
		return nil, internal.ErrProductNotFound
	}

	if err := s.checkCategory(dto.CategoryID); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateFields(id, dto.Fields()); err != nil {
		s.logger.Error("failed to update product", "error", err, "product_id", id)
		return nil, internal.NewInternalError("failed to update product", err)
	}

	updated, err := s.repo.GetByID(id)
	if err != nil || updated == nil {
		s.logger.Error("failed to reload product after update", "error", err, "product_id", id)
		return nil, internal.NewInternalError("failed to update product", err)
	}

	s.logger.Info("product updated", "product_id", id)
	return FromDataModel(updated), nil
}

// DeleteProduct refuses to remove a product while order line items still
// reference it, so past orders keep their joinable history.
func (s *Service) DeleteProduct(id int64) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to load product for deletion", "error", err, "product_id", id)
		return internal.NewInternalError("failed to delete product", err)
	}
	if existing == nil {
		return internal.ErrProductNotFound
	}

	count, err := s.repo.CountOrderItems(id)
	if err != nil {
		s.logger.Error("failed to count product order items", "error", err, "product_id", id)
		return internal.NewInternalError("failed to delete product", err)
	}
	if count > 0 {
		return internal.NewConflictError(
			fmt.Sprintf("Product %q is referenced by %d order item(s) and cannot be deleted", existing.Name, count),
			internal.ErrCodeProductInUse,
		)
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete product", "error", err, "product_id", id)
		return internal.NewInternalError("failed to delete product", err)
	}

	s.logger.Info("product deleted", "product_id", id, "name", existing.Name)
	return nil
}

func (s *Service) checkCategory(categoryID *int64) error {
	if categoryID == nil {
		return nil
	}
	exists, err := s.repo.CategoryExists(*categoryID)
	if err != nil {
		s.logger.Error("failed to check category", "error", err, "category_id", *categoryID)
		return internal.NewInternalError("failed to check category", err)
	}
	if !exists {
		return internal.NewValidationError(
			fmt.Sprintf("Category %d does not exist", *categoryID),
			internal.ErrCodeCategoryNotFound,
		)
	}
	return nil
}
