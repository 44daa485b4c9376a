package models

import "time"

// Book.Quantity counts the copies available right now: it is decremented on
// loan issuance and incremented on return, and must never go negative.
type Book struct {
	ID          uint      `gorm:"primaryKey;column:id"`
	Title       string    `gorm:"column:title;type:varchar(120);unique;not null"`
	Description string    `gorm:"column:description;type:varchar(500)"`
	Genre       string    `gorm:"column:genre;type:varchar(120)"`
	Quantity    int       `gorm:"column:quantity;not null"`
	AuthorID    uint      `gorm:"column:author_id;not null"`
	UserID      uint      `gorm:"column:user_id;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`

	Author *Author `gorm:"foreignKey:AuthorID"`
	User   *User   `gorm:"foreignKey:UserID"`
	Loans  []Loan  `gorm:"foreignKey:BookID"`
}
