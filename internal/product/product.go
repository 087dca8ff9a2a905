package product

import (
	"time"

	"github.com/shopspring/decimal"

	productDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/product"
)

type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	ImageURL    *string         `json:"image_url,omitempty"`
	CategoryID  *int64          `json:"category_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func FromDataModel(row *productDatamodel.Product) *Product {
	return &Product{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Price:       row.Price,
		Stock:       row.Stock,
		ImageURL:    row.ImageURL,
		CategoryID:  row.CategoryID,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func FromDataModelSlice(rows []*productDatamodel.Product) []*Product {
	result := make([]*Product, len(rows))
	for i, row := range rows {
		result[i] = FromDataModel(row)
	}
	return result
}
