package services

import (
	"fmt"
	"testing"
	"time"

	"lavapro-backend/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens an isolated in-memory database per test. The named
// shared-cache DSN keeps all pooled connections on the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.CustomerNote{},
		&models.Order{},
		&models.Payment{},
	))
	return db
}

func seedCustomer(t *testing.T, db *gorm.DB, name, phone string) *models.Customer {
	t.Helper()
	customer := models.Customer{Name: name, Phone: phone}
	require.NoError(t, db.Create(&customer).Error)
	return &customer
}

func seedOrder(t *testing.T, db *gorm.DB, customerID uint, services, total, status string, orderDate time.Time, dueDate *time.Time) *models.Order {
	t.Helper()
	order := models.Order{
		CustomerID: customerID,
		Services:   services,
		Total:      decimal.RequireFromString(total),
		Status:     status,
		OrderDate:  orderDate,
		DueDate:    dueDate,
	}
	require.NoError(t, db.Create(&order).Error)
	return &order
}

func dateptr(t time.Time) *time.Time { return &t }

func strptr(s string) *string { return &s }

func decptr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
