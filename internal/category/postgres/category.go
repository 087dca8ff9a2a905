package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/frahmantamala/commerce-management/internal/category"
	categoryDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/category"
	productDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/product"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) category.RepositoryAPI {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) List(limit, offset int) ([]*categoryDatamodel.Category, int64, error) {
	var rows []*categoryDatamodel.Category
	var total int64

	if err := r.db.Model(&categoryDatamodel.Category{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	return rows, total, err
}

func (r *CategoryRepository) GetByID(id int64) (*categoryDatamodel.Category, error) {
	var row categoryDatamodel.Category
	err := r.db.Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *CategoryRepository) GetByName(name string) (*categoryDatamodel.Category, error) {
	var row categoryDatamodel.Category
	err := r.db.Where("name = ?", name).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *CategoryRepository) Create(row *categoryDatamodel.Category) error {
	return r.db.Create(row).Error
}

func (r *CategoryRepository) UpdateFields(id int64, fields map[string]interface{}) error {
	return r.db.Model(&categoryDatamodel.Category{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *CategoryRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&categoryDatamodel.Category{}).Error
}

func (r *CategoryRepository) CountProducts(id int64) (int64, error) {
	var count int64
	err := r.db.Model(&productDatamodel.Product{}).
		Where("category_id = ?", id).
		Count(&count).Error
	return count, err
}
