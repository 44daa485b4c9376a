package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"librarium/apperr"
	"librarium/internals/models"
	"librarium/internals/repository"
)

const (
	// maxTakenLoans is the borrowing limit per user.
	maxTakenLoans = 5
	// loanPeriod sets the due date relative to issuance.
	loanPeriod = 14 * 24 * time.Hour
)

// LendingService enforces the borrowing-limit and inventory invariants and
// manages the loan lifecycle. Issue and Return each run as one transaction,
// so a failure partway leaves no partial state.
type LendingService struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewLendingService(db *gorm.DB, log *logrus.Logger) *LendingService {
	return &LendingService{db: db, log: log}
}

// Issue lends a book to a user: it creates a taken loan and decrements the
// book's available quantity together. Fails with CapacityExceeded once the
// user has 5 loans out, and with NotAvailable when the book is missing or
// has no free copies.
func (s *LendingService) Issue(ctx context.Context, userID, bookID uint) (*models.Loan, error) {
	var loan *models.Loan

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		loans := repository.NewLoanRepository(tx)
		books := repository.NewBookRepository(tx)

		taken, err := loans.CountTakenByUser(userID)
		if err != nil {
			return err
		}
		if taken >= maxTakenLoans {
			return apperr.Newf(apperr.CapacityExceeded,
				"user has reached the limit of %d borrowed books", maxTakenLoans)
		}

		book, err := books.FindByIDForUpdate(bookID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.NotAvailable, "book not found or not available")
		}
		if err != nil {
			return err
		}
		if book.Quantity <= 0 {
			return apperr.New(apperr.NotAvailable, "book not found or not available")
		}

		now := time.Now()
		loan = &models.Loan{
			UserID:     userID,
			BookID:     bookID,
			LoanDate:   now,
			ReturnDate: now.Add(loanPeriod),
			Status:     models.LoanStatusTaken,
		}
		if err := loans.Create(loan); err != nil {
			return err
		}

		book.Quantity--
		return books.Save(book)
	})
	if err != nil {
		return nil, asAppError("issue book", err)
	}

	s.log.WithFields(logrus.Fields{
		"user_id": userID,
		"book_id": bookID,
		"loan_id": loan.ID,
	}).Info("book issued")
	return loan, nil
}

// Return marks a taken loan as returned and increments the book's available
// quantity in the same transaction. A loan that never existed and one that
// was already returned both fail with NotFound.
func (s *LendingService) Return(ctx context.Context, loanID uint) (*models.Loan, error) {
	var loan *models.Loan

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		loans := repository.NewLoanRepository(tx)
		books := repository.NewBookRepository(tx)

		var err error
		loan, err = loans.FindTakenByID(loanID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.NotFound, "loan not found or already returned")
		}
		if err != nil {
			return err
		}

		loan.Status = models.LoanStatusReturned
		if err := loans.Save(loan); err != nil {
			return err
		}

		book, err := books.FindByIDForUpdate(loan.BookID)
		if err != nil {
			return err
		}
		book.Quantity++
		return books.Save(book)
	})
	if err != nil {
		return nil, asAppError("return book", err)
	}

	s.log.WithField("loan_id", loanID).Info("book returned")
	return loan, nil
}

// LoansForUser returns the user's full loan history, taken and returned.
func (s *LendingService) LoansForUser(ctx context.Context, userID uint) ([]models.Loan, error) {
	loans, err := repository.NewLoanRepository(s.db.WithContext(ctx)).FindByUser(userID)
	if err != nil {
		return nil, asAppError("list loans", err)
	}
	return loans, nil
}
