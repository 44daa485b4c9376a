package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey;column:id"`
	Login        string    `gorm:"column:login;type:varchar(60);unique;not null"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(60);not null"`
	Email        string    `gorm:"column:email;type:varchar(160);not null"`
	IsAdmin      bool      `gorm:"column:is_admin;not null;default:false"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Books []Book `gorm:"foreignKey:UserID"`
	Loans []Loan `gorm:"foreignKey:UserID"`
}
