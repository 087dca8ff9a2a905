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

	"github.com/frahmantamala/commerce-management/internal/category"
	categoryPostgres "github.com/frahmantamala/commerce-management/internal/category/postgres"
	categoryDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/category"
)

func TestCategoryPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Category Postgres Suite")
}

// SQLite-compatible shadow models for the in-memory test database.
type SQLiteCategory struct {
	ID          int64     `gorm:"primaryKey"`
	Name        string    `gorm:"column:name;uniqueIndex;not null"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (SQLiteCategory) TableName() string {
	return "categories"
}

type SQLiteProduct struct {
	ID         int64           `gorm:"primaryKey"`
	Name       string          `gorm:"column:name;not null"`
	Price      decimal.Decimal `gorm:"column:price;type:decimal(12,2)"`
	CategoryID *int64          `gorm:"column:category_id"`
	CreatedAt  time.Time       `gorm:"column:created_at"`
	UpdatedAt  time.Time       `gorm:"column:updated_at"`
}

func (SQLiteProduct) TableName() string {
	return "products"
}

var _ = Describe("Category Repository", func() {
	var (
		db   *gorm.DB
		repo category.RepositoryAPI
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteCategory{}, &SQLiteProduct{})
		Expect(err).NotTo(HaveOccurred())

		repo = categoryPostgres.NewCategoryRepository(db)
	})

	Describe("Create", func() {
		It("should create a new category", func() {
			cat := &categoryDatamodel.Category{
				Name:        "elektronik",
				Description: "gadget dan peralatan elektronik",
			}

			err := repo.Create(cat)
			Expect(err).NotTo(HaveOccurred())
			Expect(cat.ID).To(BeNumerically(">", 0))
			Expect(cat.CreatedAt).NotTo(BeZero())
		})

		It("should fail on a duplicate name", func() {
			Expect(repo.Create(&categoryDatamodel.Category{Name: "elektronik"})).To(Succeed())

			err := repo.Create(&categoryDatamodel.Category{Name: "elektronik"})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("GetByID and GetByName", func() {
		BeforeEach(func() {
			Expect(repo.Create(&categoryDatamodel.Category{Name: "elektronik", Description: "gadget"})).To(Succeed())
		})

		It("should retrieve by name", func() {
			result, err := repo.GetByName("elektronik")
			Expect(err).NotTo(HaveOccurred())
			Expect(result).NotTo(BeNil())
			Expect(result.Description).To(Equal("gadget"))
		})

		It("should return nil without error for an absent name", func() {
			result, err := repo.GetByName("nonexistent")
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(BeNil())
		})

		It("should return nil without error for an absent id", func() {
			result, err := repo.GetByID(999)
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(BeNil())
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			for _, name := range []string{"elektronik", "pakaian", "olahraga"} {
				Expect(repo.Create(&categoryDatamodel.Category{Name: name})).To(Succeed())
			}
		})

		It("should return the full count alongside a limited page", func() {
			rows, total, err := repo.List(2, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(3)))
			Expect(rows).To(HaveLen(2))
		})

		It("should return an empty page past the end", func() {
			rows, total, err := repo.List(10, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(3)))
			Expect(rows).To(BeEmpty())
		})
	})

	Describe("UpdateFields", func() {
		It("should apply only the given columns", func() {
			cat := &categoryDatamodel.Category{Name: "elektronik", Description: "old"}
			Expect(repo.Create(cat)).To(Succeed())

			err := repo.UpdateFields(cat.ID, map[string]interface{}{"description": "new"})
			Expect(err).NotTo(HaveOccurred())

			result, err := repo.GetByID(cat.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Name).To(Equal("elektronik"))
			Expect(result.Description).To(Equal("new"))
		})
	})

	Describe("CountProducts", func() {
		It("should count only products linked to the category", func() {
			cat := &categoryDatamodel.Category{Name: "elektronik"}
			Expect(repo.Create(cat)).To(Succeed())
			other := &categoryDatamodel.Category{Name: "pakaian"}
			Expect(repo.Create(other)).To(Succeed())

			price := decimal.RequireFromString("10.00")
			Expect(db.Create(&SQLiteProduct{Name: "a", Price: price, CategoryID: &cat.ID}).Error).To(Succeed())
			Expect(db.Create(&SQLiteProduct{Name: "b", Price: price, CategoryID: &cat.ID}).Error).To(Succeed())
			Expect(db.Create(&SQLiteProduct{Name: "c", Price: price, CategoryID: &other.ID}).Error).To(Succeed())

			count, err := repo.CountProducts(cat.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(2)))
		})

		It("should return zero for a category with no products", func() {
			cat := &categoryDatamodel.Category{Name: "kosong"}
			Expect(repo.Create(cat)).To(Succeed())

			count, err := repo.CountProducts(cat.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(BeZero())
		})
	})

	Describe("Delete", func() {
		It("should remove the row", func() {
			cat := &categoryDatamodel.Category{Name: "elektronik"}
			Expect(repo.Create(cat)).To(Succeed())

			Expect(repo.Delete(cat.ID)).To(Succeed())

			result, err := repo.GetByID(cat.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(BeNil())
		})
	})
})
