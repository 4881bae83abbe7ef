package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses as stored and exposed on the wire.
const (
	StatusPending   = "pendente"
	StatusPaid      = "pago"
	StatusDelivered = "entregue"
	StatusCancelled = "cancelado"
)

// ValidStatus reports whether s is one of the four order statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusPaid, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	CustomerID uint            `gorm:"column:cliente_id;index;not null" json:"cliente_id"`
	Services   string          `gorm:"column:servicos;type:text;not null" json:"servicos"`
	Total      decimal.Decimal `gorm:"column:valor_total;type:decimal(10,2);not null" json:"valor_total"`
	Status     string          `gorm:"column:status;size:50;default:'pendente';not null" json:"status"`
	OrderDate  time.Time       `gorm:"column:data_pedido;not null" json:"data_pedido"`
	DueDate    *time.Time      `gorm:"column:data_entrega" json:"data_entrega"`

	Customer *Customer `gorm:"foreignKey:CustomerID" json:"-"`
	Payment  *Payment  `gorm:"foreignKey:OrderID" json:"-"`
}

func (Order) TableName() string { return "pedidos" }
