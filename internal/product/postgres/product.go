package postgres

import (
	"errors"

	"gorm.io/gorm"

	categoryDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/category"
	orderDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/order"
	productDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/product"
	"github.com/frahmantamala/commerce-management/internal/product"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) product.RepositoryAPI {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) List(query product.ListProductsQuery) ([]*productDatamodel.Product, int64, error) {
	var rows []*productDatamodel.Product
	var total int64

	tx := r.db.Model(&productDatamodel.Product{})
	if query.Search != "" {
		// LOWER on both sides keeps the match case-insensitive on every driver
		pattern := "%" + query.Search + "%"
		tx = tx.Where("LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern)
	}
	if query.CategoryID != nil {
		tx = tx.Where("category_id = ?", *query.CategoryID)
	}

	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := tx.Order("created_at DESC").
		Limit(query.Limit).
		Offset(query.Offset()).
		Find(&rows).Error
	return rows, total, err
}

func (r *ProductRepository) GetByID(id int64) (*productDatamodel.Product, error) {
	var row productDatamodel.Product
	err := r.db.Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *ProductRepository) Create(row *productDatamodel.Product) error {
	return r.db.Create(row).Error
}

func (r *ProductRepository) UpdateFields(id int64, fields map[string]interface{}) error {
	return r.db.Model(&productDatamodel.Product{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *ProductRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&productDatamodel.Product{}).Error
}

func (r *ProductRepository) CategoryExists(id int64) (bool, error) {
	var count int64
	err := r.db.Model(&categoryDatamodel.Category{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *ProductRepository) CountOrderItems(id int64) (int64, error) {
	var count int64
	err := r.db.Model(&orderDatamodel.OrderItem{}).
		Where("product_id = ?", id).
		Count(&count).Error
	return count, err
}
