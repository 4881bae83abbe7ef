package models

import (
	"lavapro-backend/utils"

	"gorm.io/gorm"
)

type User struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Name         string  `gorm:"column:nome;size:100;not null" json:"nome"`
	Email        string  `gorm:"column:email;size:120;uniqueIndex;not null" json:"email"`
	PasswordHash string  `gorm:"column:senha_hash;size:255;not null" json:"-"`
	ReportEmail  *string `gorm:"column:report_email;size:120" json:"report_email"`
}

func (User) TableName() string { return "usuarios" }

// Hash the password before the row is written. Callers place the clear
// text in PasswordHash and it never reaches the database as given.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	hashed, err := utils.HashPassword(u.PasswordHash)
	if err != nil {
		return err
	}
	u.PasswordHash = hashed
	return
}

func (u *User) CheckPassword(password string) bool {
	return utils.CheckPasswordHash(password, u.PasswordHash)
}
