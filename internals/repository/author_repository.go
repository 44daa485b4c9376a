package repository

import (
	"gorm.io/gorm"

	"librarium/internals/models"
)

type AuthorFilter struct {
	ID     uint
	Name   string
	Limit  int
	Offset int
}

type AuthorRepository struct {
	db *gorm.DB
}

func NewAuthorRepository(db *gorm.DB) *AuthorRepository {
	return &AuthorRepository{db: db}
}

func (r *AuthorRepository) Create(author *models.Author) error {
	return r.db.Create(author).Error
}

func (r *AuthorRepository) FindByID(id uint) (*models.Author, error) {
	var author models.Author
	if err := r.db.First(&author, id).Error; err != nil {
		return nil, err
	}
	return &author, nil
}

func (r *AuthorRepository) ExistsByName(name string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Author{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (r *AuthorRepository) Save(author *models.Author) error {
	return r.db.Save(author).Error
}

func (r *AuthorRepository) Delete(author *models.Author) error {
	return r.db.Delete(author).Error
}

func (r *AuthorRepository) Search(filter AuthorFilter) ([]models.Author, error) {
	query := r.db.Model(&models.Author{})
	if filter.ID != 0 {
		query = query.Where("id = ?", filter.ID)
	}
	if filter.Name != "" {
		query = query.Where("name = ?", filter.Name)
	}

	var authors []models.Author
	err := query.Limit(filter.Limit).Offset(filter.Offset).Find(&authors).Error
	return authors, err
}
