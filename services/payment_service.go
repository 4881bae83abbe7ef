package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"lavapro-backend/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RegisterPaymentInput struct {
	OrderID uint             `json:"pedido_id"`
	Amount  *decimal.Decimal `json:"valor_pago"`
	Method  string           `json:"forma_pagamento"`
}

// PaymentEntry is a payment joined with the paying customer's name.
type PaymentEntry struct {
	Payment      models.Payment
	CustomerName string
}

// HistoryFilter narrows the payment history. StartDate is inclusive,
// EndDate covers the whole named day (exclusive day-after bound). Both use
// the YYYY-MM-DD layout. Method matches as a case-insensitive substring.
type HistoryFilter struct {
	StartDate string
	EndDate   string
	Method    string
}

// Receipt is the structured bundle behind a payment; rendering it to any
// document format is out of scope.
type Receipt struct {
	PaymentID uint            `json:"id_pagamento"`
	Amount    decimal.Decimal `json:"valor_pago"`
	Method    string          `json:"forma_pagamento"`
	PaidAt    time.Time       `json:"data_pagamento"`
	Customer  string          `json:"cliente_nome"`
	Services  string          `json:"servico_descricao"`
}

type PaymentService struct {
	db *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{db: db}
}

// Register records a full payment for an order and flips its status to
// pago. The insert and the status change commit or roll back together.
func (s *PaymentService) Register(input RegisterPaymentInput) (*models.Payment, error) {
	if input.OrderID == 0 || input.Amount == nil || strings.TrimSpace(input.Method) == "" {
		return nil, validation("ID do pedido, valor pago e forma de pagamento são obrigatórios.")
	}

	var payment *models.Payment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, input.OrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("Pedido não encontrado.")
			}
			return fmt.Errorf("get order: %w", err)
		}

		if order.Status == models.StatusPaid {
			return conflict("Este pedido já foi pago.")
		}

		var existing int64
		if err := tx.Model(&models.Payment{}).
			Where("pedido_id = ?", order.ID).Count(&existing).Error; err != nil {
			return fmt.Errorf("check payment: %w", err)
		}
		if existing > 0 {
			return conflict("Este pedido já possui um pagamento registrado.")
		}

		if input.Amount.LessThan(order.Total) {
			return validation("O valor pago é menor que o valor total do pedido. Este módulo assume pagamentos completos.")
		}

		payment = &models.Payment{
			OrderID: order.ID,
			Amount:  *input.Amount,
			Method:  input.Method,
		}
		if err := tx.Create(payment).Error; err != nil {
			return fmt.Errorf("create payment: %w", err)
		}

		order.Status = models.StatusPaid
		return tx.Save(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// History lists payments matching the filter, newest first.
func (s *PaymentService) History(filter HistoryFilter) ([]PaymentEntry, error) {
	query := s.db.Model(&models.Payment{}).Order("data_pagamento DESC")

	if filter.StartDate != "" {
		start, err := time.ParseInLocation(dueDateLayout, filter.StartDate, time.Local)
		if err != nil {
			return nil, validation("Formato de data inicial inválido. Use YYYY-MM-DD.")
		}
		query = query.Where("data_pagamento >= ?", start)
	}
	if filter.EndDate != "" {
		end, err := time.ParseInLocation(dueDateLayout, filter.EndDate, time.Local)
		if err != nil {
			return nil, validation("Formato de data final inválido. Use YYYY-MM-DD.")
		}
		query = query.Where("data_pagamento < ?", end.AddDate(0, 0, 1))
	}
	if filter.Method != "" {
		query = query.Where("LOWER(forma_pagamento) LIKE ?", "%"+strings.ToLower(filter.Method)+"%")
	}

	var payments []models.Payment
	if err := query.Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("payment history: %w", err)
	}

	entries := make([]PaymentEntry, 0, len(payments))
	for _, payment := range payments {
		entries = append(entries, PaymentEntry{
			Payment:      payment,
			CustomerName: s.customerNameForOrder(payment.OrderID),
		})
	}
	return entries, nil
}

// Export writes the filtered history as UTF-8 CSV under dir and returns the
// file path.
func (s *PaymentService) Export(filter HistoryFilter, dir string) (string, error) {
	entries, err := s.History(filter)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, "historico_financeiro.csv")

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	header := []string{"ID Pagamento", "ID Pedido", "Nome Cliente", "Valor Pago", "Forma de Pagamento", "Data Pagamento"}
	if err := writer.Write(header); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}
	for _, entry := range entries {
		record := []string{
			strconv.FormatUint(uint64(entry.Payment.ID), 10),
			strconv.FormatUint(uint64(entry.Payment.OrderID), 10),
			entry.CustomerName,
			entry.Payment.Amount.StringFixed(2),
			entry.Payment.Method,
			entry.Payment.PaidAt.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("write record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("flush export: %w", err)
	}
	return path, nil
}

// GetReceipt resolves a payment back to its order and customer.
func (s *PaymentService) GetReceipt(paymentID uint) (*Receipt, error) {
	var payment models.Payment
	if err := s.db.First(&payment, paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Pagamento não encontrado.")
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}

	var order models.Order
	if err := s.db.First(&order, payment.OrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Pedido associado ao pagamento não encontrado.")
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	var customer models.Customer
	if err := s.db.First(&customer, order.CustomerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Cliente associado ao pedido não encontrado.")
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}

	return &Receipt{
		PaymentID: payment.ID,
		Amount:    payment.Amount,
		Method:    payment.Method,
		PaidAt:    payment.PaidAt,
		Customer:  customer.Name,
		Services:  order.Services,
	}, nil
}

func (s *PaymentService) customerNameForOrder(orderID uint) string {
	var order models.Order
	if err := s.db.Preload("Customer").First(&order, orderID).Error; err != nil {
		return "N/A"
	}
	return customerName(order.Customer)
}
