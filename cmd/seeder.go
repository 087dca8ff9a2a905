package cmd

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	categoryDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/category"
	productDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/product"
	userDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/user"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		pool, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		db, err := initGorm(pool)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			// reverse dependency order so foreign keys never block
			for _, table := range []string{"order_items", "orders", "products", "categories", "users"} {
				if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("failed to hash seed password: %v", err)
		}

		accounts := []userDatamodel.User{
			{Email: "admin@mail.com", Name: "Ardi Admin", Role: "admin", Department: "IT", Position: "Platform Admin"},
			{Email: "manager@mail.com", Name: "Maya Manager", Role: "manager", Department: "Operations", Position: "Store Manager"},
			{Email: "staff@mail.com", Name: "Sari Staff", Role: "user", Department: "Sales", Position: "Sales Associate"},
		}
		for _, account := range accounts {
			existing, err := findUser(db, account.Email)
			if err != nil {
				log.Fatalf("failed to check user %s: %v", account.Email, err)
			}
			if existing != nil {
				fmt.Printf("User %s already exists, skipping\n", account.Email)
				continue
			}

			account.PasswordHash = string(hash)
			account.IsActive = true
			if err := db.Create(&account).Error; err != nil {
				log.Fatalf("failed to insert user %s: %v", account.Email, err)
			}
			fmt.Printf("Seeded user: %s (%s)\n", account.Email, account.Role)
		}

		categories := []categoryDatamodel.Category{
			{Name: "elektronik", Description: "gadget dan peralatan elektronik"},
			{Name: "pakaian", Description: "pakaian pria dan wanita"},
			{Name: "rumah_tangga", Description: "perlengkapan rumah tangga"},
			{Name: "olahraga", Description: "peralatan olahraga dan outdoor"},
		}
		categoryIDs := map[string]int64{}
		for _, c := range categories {
			var existing categoryDatamodel.Category
			err := db.Where("name = ?", c.Name).First(&existing).Error
			if err == nil {
				categoryIDs[c.Name] = existing.ID
				continue
			}
			if err != gorm.ErrRecordNotFound {
				log.Fatalf("failed to check category %s: %v", c.Name, err)
			}
			if err := db.Create(&c).Error; err != nil {
				log.Fatalf("failed to insert category %s: %v", c.Name, err)
			}
			categoryIDs[c.Name] = c.ID
			fmt.Printf("Seeded category: %s\n", c.Name)
		}

		products := []struct {
			Name     string
			Price    string
			Stock    int
			Category string
		}{
			{"Headphone Nirkabel", "249000.00", 40, "elektronik"},
			{"Power Bank 10000mAh", "159000.00", 60, "elektronik"},
			{"Kaos Polos Katun", "59000.00", 120, "pakaian"},
			{"Botol Minum Stainless", "89000.00", 75, "rumah_tangga"},
			{"Matras Yoga", "139000.00", 30, "olahraga"},
		}
		for _, p := range products {
			var existing productDatamodel.Product
			err := db.Where("name = ?", p.Name).First(&existing).Error
			if err == nil {
				continue
			}
			if err != gorm.ErrRecordNotFound {
				log.Fatalf("failed to check product %s: %v", p.Name, err)
			}

			price, err := decimal.NewFromString(p.Price)
			if err != nil {
				log.Fatalf("invalid seed price for %s: %v", p.Name, err)
			}
			categoryID := categoryIDs[p.Category]
			row := productDatamodel.Product{
				Name:       p.Name,
				Price:      price,
				Stock:      p.Stock,
				CategoryID: &categoryID,
			}
			if err := db.Create(&row).Error; err != nil {
				log.Fatalf("failed to insert product %s: %v", p.Name, err)
			}
			fmt.Printf("Seeded product: %s\n", p.Name)
		}

		fmt.Println("Seeding finished")
	},
}

func findUser(db *gorm.DB, email string) (*userDatamodel.User, error) {
	var row userDatamodel.User
	err := db.Where("email = ?", email).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}
