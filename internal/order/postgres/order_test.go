package postgres_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	orderDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/order"
	"github.com/frahmantamala/commerce-management/internal/order"
	orderPostgres "github.com/frahmantamala/commerce-management/internal/order/postgres"
)

func TestOrderPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Order Postgres Suite")
}

// SQLite-compatible shadow models for the in-memory test database.
type SQLiteOrder struct {
	ID          int64           `gorm:"primaryKey"`
	UserID      int64           `gorm:"column:user_id;not null"`
	Status      string          `gorm:"column:status;not null;default:pending"`
	TotalAmount decimal.Decimal `gorm:"column:total_amount;type:decimal(12,2)"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (SQLiteOrder) TableName() string {
	return "orders"
}

type SQLiteOrderItem struct {
	ID        int64           `gorm:"primaryKey"`
	OrderID   int64           `gorm:"column:order_id;not null"`
	ProductID int64           `gorm:"column:product_id;not null"`
	Quantity  int             `gorm:"column:quantity;not null"`
	Price     decimal.Decimal `gorm:"column:price;type:decimal(12,2)"`
	CreatedAt time.Time       `gorm:"column:created_at"`
}

func (SQLiteOrderItem) TableName() string {
	return "order_items"
}

type SQLiteProduct struct {
	ID        int64           `gorm:"primaryKey"`
	Name      string          `gorm:"column:name;not null"`
	Price     decimal.Decimal `gorm:"column:price;type:decimal(12,2)"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (SQLiteProduct) TableName() string {
	return "products"
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var _ = Describe("Order Repository", func() {
	var (
		db   *gorm.DB
		repo order.RepositoryAPI
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteOrder{}, &SQLiteOrderItem{}, &SQLiteProduct{})
		Expect(err).NotTo(HaveOccurred())

		repo = orderPostgres.NewOrderRepository(db)
	})

	Describe("Create and GetByID", func() {
		It("should round-trip the decimal total exactly", func() {
			row := &orderDatamodel.Order{
				UserID:      7,
				Status:      "pending",
				TotalAmount: price("47.97"),
			}

			Expect(repo.Create(row)).To(Succeed())
			Expect(row.ID).To(BeNumerically(">", 0))

			loaded, err := repo.GetByID(row.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.TotalAmount.Equal(price("47.97"))).To(BeTrue())
			Expect(loaded.Status).To(Equal("pending"))
		})

		It("should return nil without error for an absent order", func() {
			loaded, err := repo.GetByID(999)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded).To(BeNil())
		})
	})

	Describe("CreateItems and GetItems", func() {
		It("should store and return line items in insertion order", func() {
			row := &orderDatamodel.Order{UserID: 7, Status: "pending", TotalAmount: price("30.00")}
			Expect(repo.Create(row)).To(Succeed())

			items := []*orderDatamodel.OrderItem{
				{OrderID: row.ID, ProductID: 1, Quantity: 2, Price: price("10.00")},
				{OrderID: row.ID, ProductID: 2, Quantity: 1, Price: price("10.00")},
			}
			Expect(repo.CreateItems(items)).To(Succeed())

			loaded, err := repo.GetItems(row.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded).To(HaveLen(2))
			Expect(loaded[0].ProductID).To(Equal(int64(1)))
			Expect(loaded[1].ProductID).To(Equal(int64(2)))
			Expect(loaded[0].Price.Equal(price("10.00"))).To(BeTrue())
		})

		It("should return no items for another order", func() {
			row := &orderDatamodel.Order{UserID: 7, Status: "pending", TotalAmount: price("10.00")}
			Expect(repo.Create(row)).To(Succeed())

			loaded, err := repo.GetItems(row.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded).To(BeEmpty())
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			orders := []*orderDatamodel.Order{
				{UserID: 7, Status: "pending", TotalAmount: price("10.00")},
				{UserID: 7, Status: "shipped", TotalAmount: price("20.00")},
				{UserID: 8, Status: "pending", TotalAmount: price("30.00")},
			}
			for _, row := range orders {
				Expect(repo.Create(row)).To(Succeed())
			}
		})

		It("should scope by user id when set", func() {
			rows, total, err := repo.List(order.ListOrdersQuery{Page: 1, Limit: 10, UserID: 7})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(2)))
			Expect(rows).To(HaveLen(2))
		})

		It("should return all orders when unscoped", func() {
			_, total, err := repo.List(order.ListOrdersQuery{Page: 1, Limit: 10})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(3)))
		})

		It("should filter by status", func() {
			rows, total, err := repo.List(order.ListOrdersQuery{Page: 1, Limit: 10, Status: "shipped"})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(1)))
			Expect(rows[0].UserID).To(Equal(int64(7)))
		})

		It("should page with a stable total", func() {
			rows, total, err := repo.List(order.ListOrdersQuery{Page: 2, Limit: 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(3)))
			Expect(rows).To(HaveLen(1))
		})
	})

	Describe("UpdateStatus", func() {
		It("should change only the status", func() {
			row := &orderDatamodel.Order{UserID: 7, Status: "pending", TotalAmount: price("10.00")}
			Expect(repo.Create(row)).To(Succeed())

			Expect(repo.UpdateStatus(row.ID, "delivered")).To(Succeed())

			loaded, err := repo.GetByID(row.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.Status).To(Equal("delivered"))
			Expect(loaded.TotalAmount.Equal(price("10.00"))).To(BeTrue())
		})
	})

	Describe("Delete and DeleteItems", func() {
		It("should remove the order and its items", func() {
			row := &orderDatamodel.Order{UserID: 7, Status: "pending", TotalAmount: price("10.00")}
			Expect(repo.Create(row)).To(Succeed())
			Expect(repo.CreateItems([]*orderDatamodel.OrderItem{
				{OrderID: row.ID, ProductID: 1, Quantity: 1, Price: price("10.00")},
			})).To(Succeed())

			Expect(repo.DeleteItems(row.ID)).To(Succeed())
			Expect(repo.Delete(row.ID)).To(Succeed())

			loaded, err := repo.GetByID(row.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded).To(BeNil())

			items, err := repo.GetItems(row.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(items).To(BeEmpty())
		})
	})

	Describe("ExistingProductIDs", func() {
		It("should return only the ids present in the products table", func() {
			Expect(db.Create(&SQLiteProduct{Name: "a", Price: price("1.00")}).Error).To(Succeed())
			Expect(db.Create(&SQLiteProduct{Name: "b", Price: price("2.00")}).Error).To(Succeed())

			found, err := repo.ExistingProductIDs([]int64{1, 2, 404})
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(ConsistOf(int64(1), int64(2)))
		})
	})
})
