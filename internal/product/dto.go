package product

import (
	"github.com/shopspring/decimal"

	errors "github.com/frahmantamala/commerce-management/internal"
	"github.com/frahmantamala/commerce-management/internal/core/common/validation"
)

// CreateProductDTO decodes price through decimal.Decimal so client-supplied
// amounts are parsed exactly rather than as binary floats.
type CreateProductDTO struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       *int            `json:"stock,omitempty"`
	ImageURL    *string         `json:"image_url,omitempty"`
	CategoryID  *int64          `json:"category_id,omitempty"`
}

func (d CreateProductDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(255)
	v.Field("description", d.Description).MaxLength(2000)
	v.Field("price", d.Price).MinDecimal(decimal.Zero, errors.ErrCodeInvalidPrice)
	if d.Stock != nil {
		v.Field("stock", *d.Stock).MinInt(0, errors.ErrCodeInvalidStock)
	}
	return v.Validate()
}

type UpdateProductDTO struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Stock       *int             `json:"stock,omitempty"`
	ImageURL    *string          `json:"image_url,omitempty"`
	CategoryID  *int64           `json:"category_id,omitempty"`
}

func (d UpdateProductDTO) IsEmpty() bool {
	return d.Name == nil && d.Description == nil && d.Price == nil &&
		d.Stock == nil && d.ImageURL == nil && d.CategoryID == nil
}

func (d UpdateProductDTO) Validate() *errors.AppError {
	if d.IsEmpty() {
		return errors.ErrNothingToUpdate
	}

	v := validation.NewValidator()
	if d.Name != nil {
		v.Field("name", *d.Name).Required().MaxLength(255)
	}
	if d.Description != nil {
		v.Field("description", *d.Description).MaxLength(2000)
	}
	if d.Price != nil {
		v.Field("price", *d.Price).MinDecimal(decimal.Zero, errors.ErrCodeInvalidPrice)
	}
	if d.Stock != nil {
		v.Field("stock", *d.Stock).MinInt(0, errors.ErrCodeInvalidStock)
	}
	return v.Validate()
}

func (d UpdateProductDTO) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if d.Name != nil {
		fields["name"] = *d.Name
	}
	if d.Description != nil {
		fields["description"] = *d.Description
	}
	if d.Price != nil {
		fields["price"] = *d.Price
	}
	if d.Stock != nil {
		fields["stock"] = *d.Stock
	}
	if d.ImageURL != nil {
		fields["image_url"] = *d.ImageURL
	}
	if d.CategoryID != nil {
		fields["category_id"] = *d.CategoryID
	}
	return fields
}

type ListProductsQuery struct {
	Page       int
	Limit      int
	Search     string
	CategoryID *int64
}

func (q *ListProductsQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 20
	}
}

func (q ListProductsQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}
