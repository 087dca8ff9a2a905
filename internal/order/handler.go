package order

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/commerce-management/internal/auth"
	"github.com/frahmantamala/commerce-management/internal/transport"
	"github.com/frahmantamala/commerce-management/pkg/logger"
)

type ServiceAPI interface {
	CreateOrder(userID int64, dto CreateOrderDTO) (*Order, error)
	GetOrder(principal *auth.Principal, id int64) (*Order, error)
	ListOrders(principal *auth.Principal, query ListOrdersQuery) ([]*Order, int64, error)
	UpdateOrderStatus(id int64, dto UpdateOrderDTO) (*Order, error)
	DeleteOrder(id int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.HandleServiceError(w, auth.ErrPrincipalNotFound)
		return
	}

	var dto CreateOrderDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ord, err := h.Service.CreateOrder(principal.ID, dto)
	if err != nil {
		h.Logger.Error("CreateOrder: service error", "error", err, "user_id", principal.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, "order created", ord)
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.HandleServiceError(w, auth.ErrPrincipalNotFound)
		return
	}

	query := ListOrdersQuery{
		Status: r.URL.Query().Get("status"),
	}
	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		query.Page = page
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		query.Limit = limit
	}
	query.Normalize()

	orders, total, err := h.Service.ListOrders(principal, query)
	if err != nil {
		h.Logger.Error("ListOrders: service error", "error", err, "user_id", principal.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WritePaginated(w, "orders retrieved", orders, transport.NewPagination(query.Page, query.Limit, total))
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.HandleServiceError(w, auth.ErrPrincipalNotFound)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	ord, err := h.Service.GetOrder(principal, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, "order retrieved", ord)
}

func (h *Handler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	var dto UpdateOrderDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ord, err := h.Service.UpdateOrderStatus(id, dto)
	if err != nil {
		h.Logger.Error("UpdateOrder: service error", "error", err, "order_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, "order updated", ord)
}

func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	if err := h.Service.DeleteOrder(id); err != nil {
		h.Logger.Error("DeleteOrder: service error", "error", err, "order_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, "order deleted", nil)
}
