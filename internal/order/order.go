package order

import (
	"time"

	"github.com/shopspring/decimal"

	orderDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/order"
)

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// Statuses is the closed set of order states. There are no transition
// constraints between them; any status can be set to any other.
var Statuses = []string{
	StatusPending,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

func ValidStatus(status string) bool {
	for _, s := range Statuses {
		if status == s {
			return true
		}
	}
	return false
}

type OrderItem struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type Order struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Items       []OrderItem     `json:"items,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func FromDataModel(row *orderDatamodel.Order, items []*orderDatamodel.OrderItem) *Order {
	o := &Order{
		ID:          row.ID,
		UserID:      row.UserID,
		Status:      row.Status,
		TotalAmount: row.TotalAmount,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	for _, item := range items {
		o.Items = append(o.Items, OrderItem{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return o
}

func FromDataModelSlice(rows []*orderDatamodel.Order) []*Order {
	result := make([]*Order, len(rows))
	for i, row := range rows {
		result[i] = FromDataModel(row, nil)
	}
	return result
}
