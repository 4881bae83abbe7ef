package services

import (
	"testing"
	"time"

	"lavapro-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCustomerRequiresNameAndPhone(t *testing.T) {
	svc := NewCustomerService(newTestDB(t))

	_, err := svc.Create(CreateCustomerInput{Name: "Maria"})
	assert.True(t, IsValidation(err))

	_, err = svc.Create(CreateCustomerInput{Phone: "11988887777"})
	assert.True(t, IsValidation(err))
}

func TestCreateCustomerDuplicatePhoneConflicts(t *testing.T) {
	db := newTestDB(t)
	svc := NewCustomerService(db)

	_, err := svc.Create(CreateCustomerInput{Name: "Maria", Phone: "11988887777"})
	require.NoError(t, err)

	_, err = svc.Create(CreateCustomerInput{Name: "Outra Maria", Phone: "11988887777"})
	assert.ErrorIs(t, err, ErrConflict)

	var count int64
	require.NoError(t, db.Model(&models.Customer{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateCustomerDuplicateEmailConflicts(t *testing.T) {
	svc := NewCustomerService(newTestDB(t))

	_, err := svc.Create(CreateCustomerInput{Name: "Maria", Phone: "111", Email: strptr("maria@example.com")})
	require.NoError(t, err)

	_, err = svc.Create(CreateCustomerInput{Name: "João", Phone: "222", Email: strptr("maria@example.com")})
	assert.ErrorIs(t, err, ErrConflict)

	// Absent emails never collide.
	_, err = svc.Create(CreateCustomerInput{Name: "Ana", Phone: "333"})
	require.NoError(t, err)
	_, err = svc.Create(CreateCustomerInput{Name: "Bia", Phone: "444"})
	require.NoError(t, err)
}

func TestListCustomersSearchMatchesAnyField(t *testing.T) {
	svc := NewCustomerService(newTestDB(t))

	_, err := svc.Create(CreateCustomerInput{Name: "Maria Silva", Phone: "11911112222", Email: strptr("maria@example.com")})
	require.NoError(t, err)
	_, err = svc.Create(CreateCustomerInput{Name: "João Souza", Phone: "11933334444"})
	require.NoError(t, err)

	customers, pagination, err := svc.List("MARIA", 1, 10)
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "Maria Silva", customers[0].Name)
	assert.EqualValues(t, 1, pagination.TotalItems)

	customers, _, err = svc.List("3333", 1, 10)
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "João Souza", customers[0].Name)

	customers, pagination, err = svc.List("", 1, 1)
	require.NoError(t, err)
	assert.Len(t, customers, 1)
	assert.Equal(t, 2, pagination.TotalPages)
	assert.EqualValues(t, 2, pagination.TotalItems)
}

func TestUpdateCustomerPartialKeepsOtherFields(t *testing.T) {
	svc := NewCustomerService(newTestDB(t))

	created, err := svc.Create(CreateCustomerInput{
		Name:        "Maria",
		Phone:       "11988887777",
		Email:       strptr("maria@example.com"),
		Preferences: strptr("sem amaciante"),
	})
	require.NoError(t, err)

	updated, err := svc.Update(created.ID, UpdateCustomerInput{Address: strptr("Rua Nova, 10")})
	require.NoError(t, err)

	assert.Equal(t, "Maria", updated.Name)
	assert.Equal(t, "11988887777", updated.Phone)
	require.NotNil(t, updated.Email)
	assert.Equal(t, "maria@example.com", *updated.Email)
	require.NotNil(t, updated.Preferences)
	assert.Equal(t, "sem amaciante", *updated.Preferences)
	require.NotNil(t, updated.Address)
	assert.Equal(t, "Rua Nova, 10", *updated.Address)
}

func TestUpdateCustomerPhoneConflict(t *testing.T) {
	svc := NewCustomerService(newTestDB(t))

	_, err := svc.Create(CreateCustomerInput{Name: "Maria", Phone: "111"})
	require.NoError(t, err)
	other, err := svc.Create(CreateCustomerInput{Name: "João", Phone: "222"})
	require.NoError(t, err)

	_, err = svc.Update(other.ID, UpdateCustomerInput{Phone: strptr("111")})
	assert.ErrorIs(t, err, ErrConflict)

	// Re-saving the customer's own phone is not a conflict.
	_, err = svc.Update(other.ID, UpdateCustomerInput{Phone: strptr("222")})
	assert.NoError(t, err)
}

func TestDeleteCustomerCascades(t *testing.T) {
	db := newTestDB(t)
	svc := NewCustomerService(db)

	customer := seedCustomer(t, db, "Maria", "111")
	_, err := svc.AddNote(customer.ID, "prefere entrega à tarde")
	require.NoError(t, err)
	order := seedOrder(t, db, customer.ID, "Lavagem a seco", "50.00", models.StatusPending, time.Now(), nil)

	payments := NewPaymentService(db)
	_, err = payments.Register(RegisterPaymentInput{OrderID: order.ID, Amount: decptr("50.00"), Method: "pix"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(customer.ID))

	var customers, notes, orders, pays int64
	require.NoError(t, db.Model(&models.Customer{}).Count(&customers).Error)
	require.NoError(t, db.Model(&models.CustomerNote{}).Count(&notes).Error)
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	require.NoError(t, db.Model(&models.Payment{}).Count(&pays).Error)
	assert.Zero(t, customers)
	assert.Zero(t, notes)
	assert.Zero(t, orders)
	assert.Zero(t, pays)
}

func TestGetCustomerOrdersAndNotesNewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewCustomerService(db)

	customer := seedCustomer(t, db, "Maria", "111")
	old := time.Now().AddDate(0, 0, -5)
	seedOrder(t, db, customer.ID, "Passadoria", "20.00", models.StatusPending, old, nil)
	seedOrder(t, db, customer.ID, "Lavagem", "30.00", models.StatusPaid, time.Now(), nil)

	detail, err := svc.Get(customer.ID)
	require.NoError(t, err)
	require.Len(t, detail.Orders, 2)
	assert.Equal(t, "Lavagem", detail.Orders[0].Services)
	assert.Equal(t, "Passadoria", detail.Orders[1].Services)
}

func TestCustomerNotFoundPaths(t *testing.T) {
	svc := NewCustomerService(newTestDB(t))

	_, err := svc.Get(99)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Update(99, UpdateCustomerInput{})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(99), ErrNotFound)
	_, err = svc.AddNote(99, "texto")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.DeleteNote(99, 1), ErrNotFound)
}

func TestDeleteNoteMustBelongToCustomer(t *testing.T) {
	db := newTestDB(t)
	svc := NewCustomerService(db)

	owner := seedCustomer(t, db, "Maria", "111")
	other := seedCustomer(t, db, "João", "222")

	note, err := svc.AddNote(owner.ID, "nota da Maria")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteNote(other.ID, note.ID), ErrNotFound)
	assert.NoError(t, svc.DeleteNote(owner.ID, note.ID))
}
