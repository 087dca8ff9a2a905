package order

import (
	goerrors "errors"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/commerce-management/internal"
	"github.com/frahmantamala/commerce-management/internal/auth"
	orderDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/order"
)

type RepositoryAPI interface {
	List(query ListOrdersQuery) ([]*orderDatamodel.Order, int64, error)
	GetByID(id int64) (*orderDatamodel.Order, error)
	GetItems(orderID int64) ([]*orderDatamodel.OrderItem, error)
	Create(row *orderDatamodel.Order) error
	CreateItems(items []*orderDatamodel.OrderItem) error
	UpdateStatus(id int64, status string) error
	Delete(id int64) error
	DeleteItems(orderID int64) error
	ExistingProductIDs(ids []int64) ([]int64, error)
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

// CreateOrder validates the whole request before touching the store, then
// writes the order header and its line items as two inserts. The item
// insert can fail after the header is committed, so a failed item write
// triggers a compensating delete of the header. If the compensation itself
// fails, both errors are surfaced together; the caller must know the
// store may hold an orphaned order row.
func (s *Service) CreateOrder(userID int64, dto CreateOrderDTO) (*Order, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkProducts(dto.Items); err != nil {
		return nil, err
	}

	status := dto.Status
	if status == "" {
		status = StatusPending
	}

	row := &orderDatamodel.Order{
		UserID:      userID,
		Status:      status,
		TotalAmount: dto.Total(),
	}
	if err := s.repo.Create(row); err != nil {
		s.logger.Error("failed to create order", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to create order", err)
	}

	items := make([]*orderDatamodel.OrderItem, len(dto.Items))
	for i, item := range dto.Items {
		items[i] = &orderDatamodel.OrderItem{
			OrderID:   row.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	if err := s.repo.CreateItems(items); err != nil {
		s.logger.Error("failed to create order items, compensating",
			"error", err, "order_id", row.ID, "user_id", userID)

		if compErr := s.repo.Delete(row.ID); compErr != nil {
			s.logger.Error("compensating order delete failed, orphaned order row",
				"error", compErr, "order_id", row.ID)
			return nil, internal.NewInternalError(
				"failed to create order items and compensation failed",
				goerrors.Join(err, compErr),
			)
		}
		return nil, internal.NewInternalError("failed to create order items", err)
	}

	s.logger.Info("order created",
		"order_id", row.ID, "user_id", userID,
		"items", len(items), "total", row.TotalAmount.String())
	return FromDataModel(row, items), nil
}

// GetOrder returns the order with its items. Existence is checked before
// ownership so a non-owner probing for an order id gets forbidden only
// when the order actually exists.
func (s *Service) GetOrder(principal *auth.Principal, id int64) (*Order, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get order", "error", err, "order_id", id)
		return nil, internal.NewInternalError("failed to get order", err)
	}
	if row == nil {
		return nil, internal.ErrOrderNotFound
	}
	if !principal.CanAccess(row.UserID) {
		return nil, internal.ErrForbidden
	}

	items, err := s.repo.GetItems(id)
	if err != nil {
		s.logger.Error("failed to get order items", "error", err, "order_id", id)
		return nil, internal.NewInternalError("failed to get order", err)
	}

	return FromDataModel(row, items), nil
}

func (s *Service) ListOrders(principal *auth.Principal, query ListOrdersQuery) ([]*Order, int64, error) {
	query.Normalize()
	if !principal.HasRole(auth.RoleAdmin) {
		query.UserID = principal.ID
	}

	rows, total, err := s.repo.List(query)
	if err != nil {
		s.logger.Error("failed to list orders", "error", err, "user_id", principal.ID)
		return nil, 0, internal.NewInternalError("failed to list orders", err)
	}

	return FromDataModelSlice(rows), total, nil
}

func (s *Service) UpdateOrderStatus(id int64, dto UpdateOrderDTO) (*Order, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to load order for status update", "error", err, "order_id", id)
		return nil, internal.NewInternalError("failed to update order", err)
	}
	if row == nil {
		return nil, internal.ErrOrderNotFound
	}

	if err := s.repo.UpdateStatus(id, dto.Status); err != nil {
		s.logger.Error("failed to update order status", "error", err, "order_id", id)
		return nil, internal.NewInternalError("failed to update order", err)
	}

	updated, err := s.repo.GetByID(id)
	if err != nil || updated == nil {
		s.logger.Error("failed to reload order after status update", "error", err, "order_id", id)
		return nil, internal.NewInternalError("failed to update order", err)
	}
	items, err := s.repo.GetItems(id)
	if err != nil {
		s.logger.Error("failed to get order items", "error", err, "order_id", id)
		return nil, internal.NewInternalError("failed to update order", err)
	}

	s.logger.Info("order status updated", "order_id", id, "status", dto.Status)
	return FromDataModel(updated, items), nil
}

// DeleteOrder removes line items before the header so the item foreign key
// never dangles mid-delete.
func (s *Service) DeleteOrder(id int64) error {
	row, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to load order for deletion", "error", err, "order_id", id)
		return internal.NewInternalError("failed to delete order", err)
	}
	if row == nil {
		return internal.ErrOrderNotFound
	}

	if err := s.repo.DeleteItems(id); err != nil {
		s.logger.Error("failed to delete order items", "error", err, "order_id", id)
		return internal.NewInternalError("failed to delete order", err)
	}
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete order", "error", err, "order_id", id)
		return internal.NewInternalError("failed to delete order", err)
	}

	s.logger.Info("order deleted", "order_id", id, "user_id", row.UserID)
	return nil
}

func (s *Service) checkProducts(items []OrderItemDTO) error {
	ids := make([]int64, 0, len(items))
	seen := make(map[int64]bool, len(items))
	for _, item := range items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}

	existing, err := s.repo.ExistingProductIDs(ids)
	if err != nil {
		s.logger.Error("failed to check order products", "error", err)
		return internal.NewInternalError("failed to create order", err)
	}

	found := make(map[int64]bool, len(existing))
	for _, id := range existing {
		found[id] = true
	}
	for _, id := range ids {
		if !found[id] {
			return internal.NewValidationError(
				fmt.Sprintf("Product %d does not exist", id),
				internal.ErrCodeProductNotFound,
			)
		}
	}
	return nil
}
