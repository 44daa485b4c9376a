package repository

import (
	"gorm.io/gorm"

	"librarium/internals/models"
)

// UserFilter narrows a user search; zero values mean "no filter".
type UserFilter struct {
	ID     uint
	Login  string
	Email  string
	Limit  int
	Offset int
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByLogin(login string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("login = ?", login).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ExistsByLogin(login string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("login = ?", login).Count(&count).Error
	return count > 0, err
}

// LoginInUse reports whether another user already owns the login.
func (r *UserRepository) LoginInUse(login string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("login = ? AND id <> ?", login, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) Save(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *UserRepository) Delete(user *models.User) error {
	return r.db.Delete(user).Error
}

func (r *UserRepository) Count() (int64, error) {
	var total int64
	err := r.db.Model(&models.User{}).Count(&total).Error
	return total, err
}

// Search applies the filter with pagination and preloads each user's owned
// books together with their authors for response assembly.
func (r *UserRepository) Search(filter UserFilter) ([]models.User, error) {
	query := r.db.Model(&models.User{}).Preload("Books").Preload("Books.Author")
	if filter.ID != 0 {
		query = query.Where("id = ?", filter.ID)
	}
	if filter.Login != "" {
		query = query.Where("login = ?", filter.Login)
	}
	if filter.Email != "" {
		query = query.Where("email = ?", filter.Email)
	}

	var users []models.User
	err := query.Limit(filter.Limit).Offset(filter.Offset).Find(&users).Error
	return users, err
}
