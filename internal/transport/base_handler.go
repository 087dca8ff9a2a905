package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/frahmantamala/commerce-management/internal"
	"github.com/frahmantamala/commerce-management/pkg/logger"
)

// Envelope is the uniform response shape for every endpoint.
type Envelope struct {
	Success   bool        `json:"success"`
	Status    int         `json:"status"`
	Message   string      `json:"message"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
	Errors    interface{} `json:"errors,omitempty"`
}

// Pagination describes the page window of a list payload.
type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
	HasNextPage  bool  `json:"hasNextPage"`
	HasPrevPage  bool  `json:"hasPrevPage"`
}

// PagedData wraps a list payload under data.items with its pagination block.
type PagedData struct {
	Items      interface{} `json:"items"`
	Pagination Pagination  `json:"pagination"`
}

func NewPagination(page, limit int, totalItems int64) Pagination {
	totalPages := int((totalItems + int64(limit) - 1) / int64(limit))
	return Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalItems:   totalItems,
		ItemsPerPage: limit,
		HasNextPage:  page < totalPages,
		HasPrevPage:  page > 1 && totalItems > 0,
	}
}

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
		if lg == nil {
			lg = slog.Default()
		}
	}
	return &BaseHandler{Logger: lg}
}

func (h *BaseHandler) writeEnvelope(w http.ResponseWriter, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(env.Status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteJSON writes a success envelope with the given payload.
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, message string, data interface{}) {
	h.writeEnvelope(w, Envelope{
		Success:   true,
		Status:    status,
		Message:   message,
		Timestamp: time.Now().UTC(),
		Data:      data,
	})
}

// WritePaginated writes a success envelope with data.items and data.pagination.
func (h *BaseHandler) WritePaginated(w http.ResponseWriter, message string, items interface{}, pagination Pagination) {
	h.WriteJSON(w, http.StatusOK, message, PagedData{Items: items, Pagination: pagination})
}

// WriteError writes an error envelope
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	h.Logger.Error("http error", "status", status, "message", message)
	h.writeEnvelope(w, Envelope{
		Success:   false,
		Status:    status,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}

// HandleServiceError translates a service-layer error into an error envelope,
// keeping the error kind's status and hiding internal causes from the client.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, err error) {
	if appErr, ok := internal.IsAppError(err); ok {
		env := Envelope{
			Success:   false,
			Status:    appErr.StatusCode,
			Message:   appErr.GetDetailedMessage(),
			Timestamp: time.Now().UTC(),
		}
		if details, ok := appErr.Details.(internal.ValidationErrors); ok {
			env.Errors = details.Errors
		}
		if appErr.StatusCode >= 500 {
			h.Logger.Error("internal error", "error", appErr.Error())
			env.Message = "Internal server error"
		}
		h.writeEnvelope(w, env)
		return
	}

	h.Logger.Error("unhandled service error", "error", err)
	h.WriteError(w, http.StatusInternalServerError, "Internal server error")
}

// ExtractTokenFromHeader extracts Bearer token from Authorization header
func (h *BaseHandler) ExtractTokenFromHeader(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ""
	}

	return authHeader[7:]
}
