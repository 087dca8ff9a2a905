package order

import (
	"fmt"

	"github.com/shopspring/decimal"

	errors "github.com/frahmantamala/commerce-management/internal"
)

// OrderItemDTO carries the price the client saw when building the order.
// The amount is stored as a snapshot on the line item, so later product
// price changes never rewrite order history.
type OrderItemDTO struct {
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type CreateOrderDTO struct {
	Items  []OrderItemDTO `json:"items"`
	Status string         `json:"status,omitempty"`
}

func (d CreateOrderDTO) Validate() *errors.AppError {
	if len(d.Items) == 0 {
		return errors.NewValidationError("Order must contain at least one item", errors.ErrCodeEmptyOrder)
	}

	var fieldErrors []errors.ValidationError
	for i, item := range d.Items {
		if item.ProductID <= 0 {
			fieldErrors = append(fieldErrors, errors.ValidationError{
				Field:   fmt.Sprintf("items[%d].product_id", i),
				Message: "product_id is required",
				Code:    string(errors.ErrCodeValidationFailed),
			})
		}
		if item.Quantity < 1 {
			fieldErrors = append(fieldErrors, errors.ValidationError{
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Message: "quantity must be at least 1",
				Code:    string(errors.ErrCodeInvalidQuantity),
			})
		}
		if item.Price.IsNegative() {
			fieldErrors = append(fieldErrors, errors.ValidationError{
				Field:   fmt.Sprintf("items[%d].price", i),
				Message: "price must not be negative",
				Code:    string(errors.ErrCodeInvalidPrice),
			})
		}
	}
	if d.Status != "" && !ValidStatus(d.Status) {
		fieldErrors = append(fieldErrors, errors.ValidationError{
			Field:   "status",
			Message: fmt.Sprintf("status must be one of %v", Statuses),
			Code:    string(errors.ErrCodeInvalidStatus),
		})
	}

	if len(fieldErrors) > 0 {
		return errors.NewValidationError("Validation failed", errors.ErrCodeValidationFailed).
			WithDetails(errors.ValidationErrors{Errors: fieldErrors})
	}
	return nil
}

// Total computes the order amount as the exact decimal sum of price times
// quantity over all line items.
func (d CreateOrderDTO) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range d.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

type UpdateOrderDTO struct {
	Status string `json:"status"`
}

func (d UpdateOrderDTO) Validate() *errors.AppError {
	if d.Status == "" {
		return errors.NewValidationError("status is required", errors.ErrCodeValidationFailed)
	}
	if !ValidStatus(d.Status) {
		return errors.NewValidationError(
			fmt.Sprintf("status must be one of %v", Statuses),
			errors.ErrCodeInvalidStatus,
		)
	}
	return nil
}

type ListOrdersQuery struct {
	Page   int
	Limit  int
	Status string

	// UserID scopes the listing to one owner; zero means no scoping
	// (admin view).
	UserID int64
}

func (q *ListOrdersQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 20
	}
}

func (q ListOrdersQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}
