package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"librarium/internals/models"
)

type BookFilter struct {
	ID     uint
	Title  string
	Limit  int
	Offset int
}

type BookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) *BookRepository {
	return &BookRepository{db: db}
}

func (r *BookRepository) Create(book *models.Book) error {
	return r.db.Create(book).Error
}

func (r *BookRepository) FindByID(id uint) (*models.Book, error) {
	var book models.Book
	if err := r.db.Preload("Author").First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// FindByIDForUpdate locks the book row for the duration of the surrounding
// transaction, so concurrent issuance cannot oversell the same copy. SQLite
// serializes writers on its own and rejects FOR UPDATE, so the clause is
// only added on other dialects.
func (r *BookRepository) FindByIDForUpdate(id uint) (*models.Book, error) {
	query := r.db
	if r.db.Dialector.Name() != "sqlite" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var book models.Book
	if err := query.First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *BookRepository) ExistsByTitle(title string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Book{}).Where("title = ?", title).Count(&count).Error
	return count > 0, err
}

func (r *BookRepository) Save(book *models.Book) error {
	return r.db.Save(book).Error
}

func (r *BookRepository) Delete(book *models.Book) error {
	return r.db.Delete(book).Error
}

func (r *BookRepository) Search(filter BookFilter) ([]models.Book, error) {
	query := r.db.Model(&models.Book{}).Preload("Author")
	if filter.ID != 0 {
		query = query.Where("id = ?", filter.ID)
	}
	if filter.Title != "" {
		query = query.Where("title = ?", filter.Title)
	}

	var books []models.Book
	err := query.Limit(filter.Limit).Offset(filter.Offset).Find(&books).Error
	return books, err
}
