package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is immutable after creation. The unique index on pedido_id
// enforces at most one payment per order.
type Payment struct {
	ID      uint            `gorm:"primaryKey" json:"id"`
	OrderID uint            `gorm:"column:pedido_id;uniqueIndex;not null" json:"pedido_id"`
	Amount  decimal.Decimal `gorm:"column:valor_pago;type:decimal(10,2);not null" json:"valor_pago"`
	Method  string          `gorm:"column:forma_pagamento;size:50;not null" json:"forma_pagamento"`
	PaidAt  time.Time       `gorm:"column:data_pagamento;autoCreateTime" json:"data_pagamento"`
}

func (Payment) TableName() string { return "pagamentos" }
