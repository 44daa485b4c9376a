package repository

import (
	"gorm.io/gorm"

	"librarium/internals/models"
)

type LoanRepository struct {
	db *gorm.DB
}

func NewLoanRepository(db *gorm.DB) *LoanRepository {
	return &LoanRepository{db: db}
}

func (r *LoanRepository) Create(loan *models.Loan) error {
	return r.db.Create(loan).Error
}

func (r *LoanRepository) Save(loan *models.Loan) error {
	return r.db.Save(loan).Error
}

// CountTakenByUser counts the loans a user currently has out.
func (r *LoanRepository) CountTakenByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Loan{}).
		Where("user_id = ? AND status = ?", userID, models.LoanStatusTaken).
		Count(&count).Error
	return count, err
}

// FindTakenByID finds a loan that is still out. A returned loan is not
// distinguishable from a missing one here.
func (r *LoanRepository) FindTakenByID(id uint) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.Where("id = ? AND status = ?", id, models.LoanStatusTaken).
		First(&loan).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// FindByUser returns the user's full loan history, any status.
func (r *LoanRepository) FindByUser(userID uint) ([]models.Loan, error) {
	var loans []models.Loan
	err := r.db.Where("user_id = ?", userID).Order("id").Find(&loans).Error
	return loans, err
}
