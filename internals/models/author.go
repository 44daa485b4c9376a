package models

import "time"

type Author struct {
	ID          uint      `gorm:"primaryKey;column:id"`
	Name        string    `gorm:"column:name;type:varchar(120);unique;not null"`
	Biography   string    `gorm:"column:biography;type:varchar(800)"`
	DateOfBirth time.Time `gorm:"column:date_of_birth;type:date"`

	Books []Book `gorm:"foreignKey:AuthorID"`
}
