package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"storefront-api/models"
)

// newTestDB opens an isolated in-memory database per test. A single pooled
// connection keeps the shared-cache database alive and serializes access the
// way the sqlite driver expects.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := models.NewUser("Test User", email, "not-a-real-hash", "1234567890", "12 Main Street")
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) *models.Product {
	t.Helper()
	product := models.NewProduct(name, price, "test product", []string{"https://img.example/1.png"}, "misc", "acme", stock)
	require.NoError(t, db.Create(product).Error)
	return product
}

func productStock(t *testing.T, db *gorm.DB, id string) int {
	t.Helper()
	var product models.Product
	require.NoError(t, db.First(&product, "id = ?", id).Error)
	return product.Stock
}

// assertCartConsistent checks the aggregate invariants every returned cart
// must satisfy: line totals derive from quantity and snapshot price, the cart
// total is the sum of line totals, and total_items counts lines.
func assertCartConsistent(t *testing.T, cart *models.Cart) {
	t.Helper()
	require.NotNil(t, cart)
	require.Equal(t, len(cart.Items), cart.TotalItems)

	sum := 0.0
	for _, item := range cart.Items {
		require.GreaterOrEqual(t, item.Quantity, 1)
		require.InDelta(t, item.UnitPrice*float64(item.Quantity), item.LineTotal, 1e-9)
		sum += item.LineTotal
	}
	require.InDelta(t, sum, cart.TotalPrice, 1e-9)
}
