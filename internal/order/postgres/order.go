package postgres

import (
	"errors"

	"gorm.io/gorm"

	orderDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/order"
	productDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/product"
	"github.com/frahmantamala/commerce-management/internal/order"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) order.RepositoryAPI {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) List(query order.ListOrdersQuery) ([]*orderDatamodel.Order, int64, error) {
	var rows []*orderDatamodel.Order
	var total int64

	tx := r.db.Model(&orderDatamodel.Order{})
	if query.UserID != 0 {
		tx = tx.Where("user_id = ?", query.UserID)
	}
	if query.Status != "" {
		tx = tx.Where("status = ?", query.Status)
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

func (r *OrderRepository) GetByID(id int64) (*orderDatamodel.Order, error) {
	var row orderDatamodel.Order
	err := r.db.Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *OrderRepository) GetItems(orderID int64) ([]*orderDatamodel.OrderItem, error) {
	var items []*orderDatamodel.OrderItem
	err := r.db.Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

func (r *OrderRepository) Create(row *orderDatamodel.Order) error {
	return r.db.Create(row).Error
}

func (r *OrderRepository) CreateItems(items []*orderDatamodel.OrderItem) error {
	return r.db.Create(items).Error
}

func (r *OrderRepository) UpdateStatus(id int64, status string) error {
	return r.db.Model(&orderDatamodel.Order{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *OrderRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&orderDatamodel.Order{}).Error
}

func (r *OrderRepository) DeleteItems(orderID int64) error {
	return r.db.Where("order_id = ?", orderID).Delete(&orderDatamodel.OrderItem{}).Error
}

func (r *OrderRepository) ExistingProductIDs(ids []int64) ([]int64, error) {
	var found []int64
	err := r.db.Model(&productDatamodel.Product{}).
		Where("id IN ?", ids).
		Pluck("id", &found).Error
	return found, err
}
