package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

const (
	LoanStatusTaken    = "taken"
	LoanStatusReturned = "returned"
)

// Loan is the historical record of one borrowing. It is immutable after
// creation except for Status, which moves taken -> returned exactly once.
// Loans are never deleted. ReturnDate holds the due date, computed at
// issuance.
type Loan struct {
	ID         uint      `gorm:"primaryKey;column:id"`
	BookID     uint      `gorm:"column:book_id;not null"`
	UserID     uint      `gorm:"column:user_id;not null"`
	LoanDate   time.Time `gorm:"column:loan_date;not null"`
	ReturnDate time.Time `gorm:"column:return_date"`
	Status     string    `gorm:"column:status;type:varchar(20);default:taken"`

	Book *Book `gorm:"foreignKey:BookID"`
	User *User `gorm:"foreignKey:UserID"`
}

func (l *Loan) BeforeSave(*gorm.DB) error {
	if l.Status != LoanStatusTaken && l.Status != LoanStatusReturned {
		return fmt.Errorf("invalid loan status: %q", l.Status)
	}
	return nil
}
