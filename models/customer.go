package models

import (
	"time"
)

type Customer struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"column:nome;size:100;not null" json:"nome"`
	Phone       string  `gorm:"column:telefone;size:20;uniqueIndex;not null" json:"telefone"`
	Email       *string `gorm:"column:email;size:120;uniqueIndex" json:"email"`
	Address     *string `gorm:"column:endereco;size:255" json:"endereco"`
	Preferences *string `gorm:"column:preferencias;type:text" json:"preferencias"`

	Orders []Order        `gorm:"foreignKey:CustomerID" json:"-"`
	Notes  []CustomerNote `gorm:"foreignKey:CustomerID" json:"-"`
}

func (Customer) TableName() string { return "clientes" }

// CustomerNote is immutable once created; only insert and delete exist.
type CustomerNote struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uint      `gorm:"column:cliente_id;index;not null" json:"cliente_id"`
	Text       string    `gorm:"column:texto;type:text;not null" json:"texto"`
	CreatedAt  time.Time `gorm:"column:data_criacao;autoCreateTime" json:"data_criacao"`
}

func (CustomerNote) TableName() string { return "anotacoes_cliente" }
