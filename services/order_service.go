package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"lavapro-backend/models"
	"lavapro-backend/utils"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const dueDateLayout = "2006-01-02"

type CreateOrderInput struct {
	CustomerID uint             `json:"cliente_id"`
	Services   string           `json:"servicos"`
	Total      *decimal.Decimal `json:"valor_total"`
	Status     string           `json:"status"`
	DueDate    *string          `json:"data_entrega"`
}

type UpdateOrderInput struct {
	CustomerID *uint            `json:"cliente_id"`
	Services   *string          `json:"servicos"`
	Total      *decimal.Decimal `json:"valor_total"`
	Status     *string          `json:"status"`
	DueDate    *string          `json:"data_entrega"`
}

// OrderView is an order annotated with the owning customer's name, the days
// left until delivery and whether a payment has been recorded.
type OrderView struct {
	Order           models.Order
	CustomerName    string
	DaysUntilDue    *int
	PaymentRecorded bool
}

// DeadlineEntry annotates an order returned by the deadline query.
type DeadlineEntry struct {
	Order         models.Order
	CustomerName  string
	DaysRemaining int
}

type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

func (s *OrderService) Create(input CreateOrderInput) (*models.Order, error) {
	if input.CustomerID == 0 || strings.TrimSpace(input.Services) == "" || input.Total == nil {
		return nil, validation("ID do cliente, serviços e valor total são obrigatórios.")
	}
	if input.Total.IsNegative() {
		return nil, validation("O valor total não pode ser negativo.")
	}

	var customer models.Customer
	if err := s.db.First(&customer, input.CustomerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Cliente não encontrado.")
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}

	status := input.Status
	if status == "" {
		status = models.StatusPending
	}
	if !models.ValidStatus(status) {
		return nil, validation("Status inválido. Use pendente, pago, entregue ou cancelado.")
	}

	dueDate, err := parseDueDate(input.DueDate)
	if err != nil {
		return nil, err
	}

	order := models.Order{
		CustomerID: input.CustomerID,
		Services:   input.Services,
		Total:      *input.Total,
		Status:     status,
		OrderDate:  time.Now(),
		DueDate:    dueDate,
	}
	if err := s.db.Create(&order).Error; err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return &order, nil
}

// List returns one page of orders, newest first, optionally filtered by
// status and/or customer.
func (s *OrderService) List(status string, customerID uint, page, perPage int) ([]OrderView, Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	query := s.db.Model(&models.Order{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if customerID != 0 {
		query = query.Where("cliente_id = ?", customerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, Pagination{}, fmt.Errorf("count orders: %w", err)
	}

	var orders []models.Order
	if err := query.Order("data_pedido DESC").
		Limit(perPage).Offset((page - 1) * perPage).
		Preload("Customer").Find(&orders).Error; err != nil {
		return nil, Pagination{}, fmt.Errorf("list orders: %w", err)
	}

	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, OrderView{
			Order:        order,
			CustomerName: customerName(order.Customer),
			DaysUntilDue: daysUntilDue(order),
		})
	}

	pages := int((total + int64(perPage) - 1) / int64(perPage))
	return views, Pagination{TotalPages: pages, CurrentPage: page, TotalItems: total}, nil
}

func (s *OrderService) Get(id uint) (*OrderView, error) {
	var order models.Order
	if err := s.db.Preload("Customer").Preload("Payment").
		First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Pedido não encontrado.")
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	return &OrderView{
		Order:           order,
		CustomerName:    customerName(order.Customer),
		DaysUntilDue:    daysUntilDue(order),
		PaymentRecorded: order.Payment != nil,
	}, nil
}

func (s *OrderService) Update(id uint, input UpdateOrderInput) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Pedido não encontrado.")
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	if input.CustomerID != nil {
		var customer models.Customer
		if err := s.db.First(&customer, *input.CustomerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, notFound("Cliente não encontrado.")
			}
			return nil, fmt.Errorf("get customer: %w", err)
		}
		order.CustomerID = *input.CustomerID
	}
	if input.Services != nil {
		order.Services = *input.Services
	}
	if input.Total != nil {
		if input.Total.IsNegative() {
			return nil, validation("O valor total não pode ser negativo.")
		}
		order.Total = *input.Total
	}
	if input.Status != nil {
		if !models.ValidStatus(*input.Status) {
			return nil, validation("Status inválido. Use pendente, pago, entregue ou cancelado.")
		}
		order.Status = *input.Status
	}
	if input.DueDate != nil {
		dueDate, err := parseDueDate(input.DueDate)
		if err != nil {
			return nil, err
		}
		order.DueDate = dueDate
	}

	if err := s.db.Save(&order).Error; err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}
	return &order, nil
}

// Delete removes the order and its payment, if any, in one transaction.
func (s *OrderService) Delete(id uint) error {
	var order models.Order
	if err := s.db.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("Pedido não encontrado.")
		}
		return fmt.Errorf("get order: %w", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pedido_id = ?", id).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
}

// Deadlines returns pending or paid orders due within the next days,
// soonest first. Orders due today are included.
func (s *OrderService) Deadlines(days int) ([]DeadlineEntry, error) {
	if days <= 0 {
		days = 7
	}
	today := utils.BeginningOfDay(time.Now())
	limit := today.AddDate(0, 0, days)

	var orders []models.Order
	if err := s.db.Where("data_entrega IS NOT NULL").
		Where("data_entrega >= ? AND data_entrega <= ?", today, limit).
		Where("status IN ?", []string{models.StatusPending, models.StatusPaid}).
		Order("data_entrega ASC").
		Preload("Customer").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("deadline query: %w", err)
	}

	entries := make([]DeadlineEntry, 0, len(orders))
	for _, order := range orders {
		entries = append(entries, DeadlineEntry{
			Order:         order,
			CustomerName:  customerName(order.Customer),
			DaysRemaining: utils.DaysBetween(today, *order.DueDate),
		})
	}
	return entries, nil
}

func parseDueDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dueDateLayout, *s, time.Local)
	if err != nil {
		return nil, validation("Formato de data de entrega inválido. Use YYYY-MM-DD.")
	}
	return &t, nil
}

func customerName(c *models.Customer) string {
	if c == nil {
		return "N/A"
	}
	return c.Name
}

// daysUntilDue is negative for overdue work, which is intentional. Nil when
// there is no due date or the order is already delivered.
func daysUntilDue(order models.Order) *int {
	if order.DueDate == nil || order.Status == models.StatusDelivered {
		return nil
	}
	days := utils.DaysBetween(time.Now(), *order.DueDate)
	return &days
}
