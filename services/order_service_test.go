package services

import (
	"testing"
	"time"

	"lavapro-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	customer := seedCustomer(t, db, "Maria", "111")

	created, err := svc.Create(CreateOrderInput{
		CustomerID: customer.ID,
		Services:   "Lavagem a seco",
		Total:      decptr("75.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, created.Status)
	assert.False(t, created.OrderDate.IsZero())
	assert.Nil(t, created.DueDate)

	view, err := svc.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, customer.ID, view.Order.CustomerID)
	assert.Equal(t, "Lavagem a seco", view.Order.Services)
	assert.True(t, view.Order.Total.Equal(*decptr("75.50")))
	assert.Equal(t, "Maria", view.CustomerName)
	assert.Nil(t, view.Order.DueDate)
	assert.Nil(t, view.DaysUntilDue)
	assert.False(t, view.PaymentRecorded)
}

func TestCreateOrderValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	customer := seedCustomer(t, db, "Maria", "111")

	_, err := svc.Create(CreateOrderInput{CustomerID: customer.ID})
	assert.True(t, IsValidation(err))

	_, err = svc.Create(CreateOrderInput{CustomerID: customer.ID, Services: "Lavagem", Total: decptr("-1.00")})
	assert.True(t, IsValidation(err))

	_, err = svc.Create(CreateOrderInput{CustomerID: 99, Services: "Lavagem", Total: decptr("10.00")})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Create(CreateOrderInput{
		CustomerID: customer.ID, Services: "Lavagem", Total: decptr("10.00"),
		DueDate: strptr("31/12/2026"),
	})
	assert.True(t, IsValidation(err))
}

func TestUpdateOrderInvalidStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	customer := seedCustomer(t, db, "Maria", "111")
	order := seedOrder(t, db, customer.ID, "Lavagem", "10.00", models.StatusPending, time.Now(), nil)

	_, err := svc.Update(order.ID, UpdateOrderInput{Status: strptr("finalizado")})
	assert.True(t, IsValidation(err))

	updated, err := svc.Update(order.ID, UpdateOrderInput{Status: strptr(models.StatusCancelled)})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, updated.Status)
}

func TestUpdateOrderClearsDueDate(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	customer := seedCustomer(t, db, "Maria", "111")
	order := seedOrder(t, db, customer.ID, "Lavagem", "10.00", models.StatusPending,
		time.Now(), dateptr(time.Now().AddDate(0, 0, 3)))

	updated, err := svc.Update(order.ID, UpdateOrderInput{DueDate: strptr("")})
	require.NoError(t, err)
	assert.Nil(t, updated.DueDate)
}

func TestGetOrderOverdueDaysAreNegative(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	customer := seedCustomer(t, db, "Maria", "111")
	order := seedOrder(t, db, customer.ID, "Lavagem", "10.00", models.StatusPending,
		time.Now().AddDate(0, 0, -5), dateptr(time.Now().AddDate(0, 0, -2)))

	view, err := svc.Get(order.ID)
	require.NoError(t, err)
	require.NotNil(t, view.DaysUntilDue)
	assert.Equal(t, -2, *view.DaysUntilDue)
}

func TestGetOrderDeliveredHasNoCountdown(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	customer := seedCustomer(t, db, "Maria", "111")
	order := seedOrder(t, db, customer.ID, "Lavagem", "10.00", models.StatusDelivered,
		time.Now(), dateptr(time.Now().AddDate(0, 0, 2)))

	view, err := svc.Get(order.ID)
	require.NoError(t, err)
	assert.Nil(t, view.DaysUntilDue)
}

func TestListOrdersFiltersAndSorts(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	maria := seedCustomer(t, db, "Maria", "111")
	joao := seedCustomer(t, db, "João", "222")

	seedOrder(t, db, maria.ID, "Lavagem", "10.00", models.StatusPending, time.Now().AddDate(0, 0, -2), nil)
	seedOrder(t, db, maria.ID, "Passadoria", "20.00", models.StatusPaid, time.Now(), nil)
	seedOrder(t, db, joao.ID, "Tinturaria", "30.00", models.StatusPending, time.Now().AddDate(0, 0, -1), nil)

	views, pagination, err := svc.List("", 0, 1, 10)
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, "Passadoria", views[0].Order.Services) // newest first
	assert.EqualValues(t, 3, pagination.TotalItems)

	views, _, err = svc.List(models.StatusPending, 0, 1, 10)
	require.NoError(t, err)
	assert.Len(t, views, 2)

	views, _, err = svc.List("", joao.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "João", views[0].CustomerName)
}

func TestDeleteOrderRemovesPayment(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	customer := seedCustomer(t, db, "Maria", "111")
	order := seedOrder(t, db, customer.ID, "Lavagem", "10.00", models.StatusPending, time.Now(), nil)

	_, err := NewPaymentService(db).Register(RegisterPaymentInput{
		OrderID: order.ID, Amount: decptr("10.00"), Method: "pix",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(order.ID))

	var orders, payments int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	require.NoError(t, db.Model(&models.Payment{}).Count(&payments).Error)
	assert.Zero(t, orders)
	assert.Zero(t, payments)
}

func TestDeadlinesWindowAndStatusFilter(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	customer := seedCustomer(t, db, "Maria", "111")

	tomorrow := time.Now().AddDate(0, 0, 1)
	inThree := time.Now().AddDate(0, 0, 3)
	tooFar := time.Now().AddDate(0, 0, 10)
	past := time.Now().AddDate(0, 0, -1)

	seedOrder(t, db, customer.ID, "Amanhã pendente", "10.00", models.StatusPending, time.Now(), dateptr(tomorrow))
	seedOrder(t, db, customer.ID, "Hoje pago", "10.00", models.StatusPaid, time.Now(), dateptr(time.Now()))
	seedOrder(t, db, customer.ID, "Em três dias", "10.00", models.StatusPending, time.Now(), dateptr(inThree))
	seedOrder(t, db, customer.ID, "Amanhã cancelado", "10.00", models.StatusCancelled, time.Now(), dateptr(tomorrow))
	seedOrder(t, db, customer.ID, "Longe demais", "10.00", models.StatusPending, time.Now(), dateptr(tooFar))
	seedOrder(t, db, customer.ID, "Atrasado", "10.00", models.StatusPending, time.Now(), dateptr(past))
	seedOrder(t, db, customer.ID, "Sem prazo", "10.00", models.StatusPending, time.Now(), nil)

	entries, err := svc.Deadlines(7)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "Hoje pago", entries[0].Order.Services)
	assert.Equal(t, "Amanhã pendente", entries[1].Order.Services)
	assert.Equal(t, "Em três dias", entries[2].Order.Services)

	assert.Equal(t, 0, entries[0].DaysRemaining)
	assert.Equal(t, 1, entries[1].DaysRemaining)
	assert.Equal(t, 3, entries[2].DaysRemaining)
}
