package order_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/commerce-management/internal/auth"
	"github.com/frahmantamala/commerce-management/internal/order"
	orderPostgres "github.com/frahmantamala/commerce-management/internal/order/postgres"
	"github.com/frahmantamala/commerce-management/internal/transport"
)

// SQLite-compatible shadow models for the in-memory test database.
type sqliteOrder struct {
	ID          int64           `gorm:"primaryKey"`
	UserID      int64           `gorm:"column:user_id;not null"`
	Status      string          `gorm:"column:status;not null;default:pending"`
	TotalAmount decimal.Decimal `gorm:"column:total_amount;type:decimal(12,2)"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (sqliteOrder) TableName() string { return "orders" }

type sqliteOrderItem struct {
	ID        int64           `gorm:"primaryKey"`
	OrderID   int64           `gorm:"column:order_id;not null"`
	ProductID int64           `gorm:"column:product_id;not null"`
	Quantity  int             `gorm:"column:quantity;not null"`
	Price     decimal.Decimal `gorm:"column:price;type:decimal(12,2)"`
	CreatedAt time.Time       `gorm:"column:created_at"`
}

func (sqliteOrderItem) TableName() string { return "order_items" }

type sqliteProduct struct {
	ID        int64           `gorm:"primaryKey"`
	Name      string          `gorm:"column:name;not null"`
	Price     decimal.Decimal `gorm:"column:price;type:decimal(12,2)"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (sqliteProduct) TableName() string { return "products" }

var _ = Describe("Order Handler Integration", func() {
	var (
		db      *gorm.DB
		handler *order.Handler
		router  *chi.Mux
	)

	owner := &auth.Principal{ID: 7, Email: "owner@example.com", Role: auth.RoleUser, IsActive: true}
	admin := &auth.Principal{ID: 99, Email: "admin@example.com", Role: auth.RoleAdmin, IsActive: true}

	withPrincipal := func(req *http.Request, p *auth.Principal) *http.Request {
		return req.WithContext(auth.ContextWithUser(req.Context(), p))
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&sqliteOrder{}, &sqliteOrderItem{}, &sqliteProduct{})
		Expect(err).NotTo(HaveOccurred())

		Expect(db.Create(&sqliteProduct{Name: "Headphone", Price: decimal.RequireFromString("15.99")}).Error).To(Succeed())

		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service := order.NewService(orderPostgres.NewOrderRepository(db), slogger)
		handler = order.NewHandler(service)

		router = chi.NewRouter()
		router.Post("/orders", handler.CreateOrder)
		router.Get("/orders", handler.ListOrders)
		router.Get("/orders/{id}", handler.GetOrder)
	})

	It("should create an order and return the computed total in the envelope", func() {
		body := []byte(`{"items":[{"product_id":1,"quantity":2,"price":15.99},{"product_id":1,"quantity":1,"price":15.99}]}`)
		req := withPrincipal(httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body)), owner)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

		var env transport.Envelope
		Expect(json.NewDecoder(w.Body).Decode(&env)).To(Succeed())
		Expect(env.Success).To(BeTrue())

		data := env.Data.(map[string]interface{})
		Expect(data["total_amount"]).To(Equal("47.97"))
		Expect(data["user_id"]).To(BeNumerically("==", 7))
		Expect(data["status"]).To(Equal("pending"))
	})

	It("should return a validation envelope for an empty order", func() {
		req := withPrincipal(httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader([]byte(`{"items":[]}`))), owner)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))

		var env transport.Envelope
		Expect(json.NewDecoder(w.Body).Decode(&env)).To(Succeed())
		Expect(env.Success).To(BeFalse())
		Expect(env.Message).To(ContainSubstring("at least one item"))
	})

	It("should forbid reading another user's order", func() {
		createBody := []byte(`{"items":[{"product_id":1,"quantity":1,"price":15.99}]}`)
		req := withPrincipal(httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(createBody)), owner)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		Expect(w.Code).To(Equal(http.StatusCreated))

		stranger := &auth.Principal{ID: 8, Role: auth.RoleUser, IsActive: true}
		req = withPrincipal(httptest.NewRequest(http.MethodGet, "/orders/1", nil), stranger)
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusForbidden))
	})

	It("should let an admin read any order and list everything", func() {
		createBody := []byte(`{"items":[{"product_id":1,"quantity":1,"price":15.99}]}`)
		req := withPrincipal(httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(createBody)), owner)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		Expect(w.Code).To(Equal(http.StatusCreated))

		req = withPrincipal(httptest.NewRequest(http.MethodGet, "/orders/1", nil), admin)
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		Expect(w.Code).To(Equal(http.StatusOK))

		req = withPrincipal(httptest.NewRequest(http.MethodGet, "/orders", nil), admin)
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)

		var env transport.Envelope
		Expect(json.NewDecoder(w.Body).Decode(&env)).To(Succeed())
		data := env.Data.(map[string]interface{})
		pagination := data["pagination"].(map[string]interface{})
		Expect(pagination["totalItems"]).To(BeNumerically("==", 1))
		Expect(data["items"].([]interface{})).To(HaveLen(1))
	})

	It("should return 404 with an error envelope for an absent order", func() {
		req := withPrincipal(httptest.NewRequest(http.MethodGet, "/orders/999", nil), admin)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusNotFound))

		var env transport.Envelope
		Expect(json.NewDecoder(w.Body).Decode(&env)).To(Succeed())
		Expect(env.Success).To(BeFalse())
		Expect(env.Message).To(ContainSubstring("not found"))
	})
})
