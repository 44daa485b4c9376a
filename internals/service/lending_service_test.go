package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"librarium/apperr"
	"librarium/internals/models"
	"librarium/internals/service"
)

func countLoans(t *testing.T, db *gorm.DB, userID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.Loan{}).Where("user_id = ?", userID).Count(&count).Error)
	return count
}

func bookQuantity(t *testing.T, db *gorm.DB, bookID uint) int {
	t.Helper()
	var book models.Book
	require.NoError(t, db.First(&book, bookID).Error)
	return book.Quantity
}

func TestIssueCreatesLoanAndDecrementsQuantity(t *testing.T) {
	db := newTestDB(t)
	lending := service.NewLendingService(db, newTestLogger())

	reader := seedUser(t, db, "reader", false)
	author := seedAuthor(t, db, "Jane Austen")
	book := seedBook(t, db, "Emma", 3, author.ID, reader.ID)

	loan, err := lending.Issue(context.Background(), reader.ID, book.ID)
	require.NoError(t, err)

	assert.Equal(t, models.LoanStatusTaken, loan.Status)
	assert.Equal(t, reader.ID, loan.UserID)
	assert.Equal(t, book.ID, loan.BookID)
	assert.WithinDuration(t, loan.LoanDate.Add(14*24*time.Hour), loan.ReturnDate, time.Second)
	assert.Equal(t, 2, bookQuantity(t, db, book.ID))
}

func TestIssueFailsWhenBookUnavailable(t *testing.T) {
	db := newTestDB(t)
	lending := service.NewLendingService(db, newTestLogger())

	reader := seedUser(t, db, "reader", false)
	author := seedAuthor(t, db, "Jane Austen")
	book := seedBook(t, db, "Emma", 0, author.ID, reader.ID)

	_, err := lending.Issue(context.Background(), reader.ID, book.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.NotAvailable))

	assert.Zero(t, countLoans(t, db, reader.ID))
	assert.Equal(t, 0, bookQuantity(t, db, book.ID))
}

func TestIssueFailsForMissingBook(t *testing.T) {
	db := newTestDB(t)
	lending := service.NewLendingService(db, newTestLogger())

	reader := seedUser(t, db, "reader", false)

	_, err := lending.Issue(context.Background(), reader.ID, 12345)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.NotAvailable))
}

func TestIssueEnforcesBorrowingLimit(t *testing.T) {
	db := newTestDB(t)
	lending := service.NewLendingService(db, newTestLogger())

	reader := seedUser(t, db, "reader", false)
	author := seedAuthor(t, db, "Jane Austen")

	for i := 0; i < 5; i++ {
		book := seedBook(t, db, fmt.Sprintf("Volume %d", i+1), 1, author.ID, reader.ID)
		_, err := lending.Issue(context.Background(), reader.ID, book.ID)
		require.NoError(t, err)
	}

	sixth := seedBook(t, db, "Volume 6", 1, author.ID, reader.ID)
	_, err := lending.Issue(context.Background(), reader.ID, sixth.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.CapacityExceeded))

	assert.EqualValues(t, 5, countLoans(t, db, reader.ID))
	assert.Equal(t, 1, bookQuantity(t, db, sixth.ID))
}

func TestReturnRestoresQuantityExactlyOnce(t *testing.T) {
	db := newTestDB(t)
	lending := service.NewLendingService(db, newTestLogger())

	reader := seedUser(t, db, "reader", false)
	author := seedAuthor(t, db, "Jane Austen")
	book := seedBook(t, db, "Emma", 2, author.ID, reader.ID)

	loan, err := lending.Issue(context.Background(), reader.ID, book.ID)
	require.NoError(t, err)
	require.Equal(t, 1, bookQuantity(t, db, book.ID))

	returned, err := lending.Return(context.Background(), loan.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LoanStatusReturned, returned.Status)
	assert.Equal(t, 2, bookQuantity(t, db, book.ID))

	// a second return must fail and change nothing
	_, err = lending.Return(context.Background(), loan.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
	assert.Equal(t, 2, bookQuantity(t, db, book.ID))

	var persisted models.Loan
	require.NoError(t, db.First(&persisted, loan.ID).Error)
	assert.Equal(t, models.LoanStatusReturned, persisted.Status)
}

func TestReturnUnknownLoan(t *testing.T) {
	db := newTestDB(t)
	lending := service.NewLendingService(db, newTestLogger())

	_, err := lending.Return(context.Background(), 777)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}

func TestLoansForUserRoundTrip(t *testing.T) {
	db := newTestDB(t)
	lending := service.NewLendingService(db, newTestLogger())

	reader := seedUser(t, db, "reader", false)
	author := seedAuthor(t, db, "Jane Austen")
	book := seedBook(t, db, "Emma", 1, author.ID, reader.ID)

	loan, err := lending.Issue(context.Background(), reader.ID, book.ID)
	require.NoError(t, err)

	history, err := lending.LoansForUser(context.Background(), reader.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, loan.ID, history[0].ID)
	assert.Equal(t, models.LoanStatusTaken, history[0].Status)

	_, err = lending.Return(context.Background(), loan.ID)
	require.NoError(t, err)

	// history keeps returned loans; identity and dates stay untouched
	history, err = lending.LoansForUser(context.Background(), reader.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, loan.ID, history[0].ID)
	assert.Equal(t, models.LoanStatusReturned, history[0].Status)
	assert.WithinDuration(t, loan.LoanDate, history[0].LoanDate, time.Second)
	assert.WithinDuration(t, loan.ReturnDate, history[0].ReturnDate, time.Second)
}

func TestSingleCopyContention(t *testing.T) {
	db := newTestDB(t)
	lending := service.NewLendingService(db, newTestLogger())

	alice := seedUser(t, db, "alice", false)
	bob := seedUser(t, db, "bob", false)
	author := seedAuthor(t, db, "Jane Austen")
	book := seedBook(t, db, "Emma", 1, author.ID, alice.ID)

	loan, err := lending.Issue(context.Background(), alice.ID, book.ID)
	require.NoError(t, err)
	require.Equal(t, 0, bookQuantity(t, db, book.ID))

	_, err = lending.Issue(context.Background(), bob.ID, book.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.NotAvailable))

	_, err = lending.Return(context.Background(), loan.ID)
	require.NoError(t, err)
	require.Equal(t, 1, bookQuantity(t, db, book.ID))

	bobLoan, err := lending.Issue(context.Background(), bob.ID, book.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LoanStatusTaken, bobLoan.Status)
	assert.Equal(t, 0, bookQuantity(t, db, book.ID))
}

func TestQuantityAccounting(t *testing.T) {
	db := newTestDB(t)
	lending := service.NewLendingService(db, newTestLogger())

	author := seedAuthor(t, db, "Jane Austen")
	creator := seedUser(t, db, "creator", true)
	book := seedBook(t, db, "Emma", 4, author.ID, creator.ID)

	// quantity after N issuances and M returns equals initial - N + M
	var loanIDs []uint
	for i := 0; i < 3; i++ {
		reader := seedUser(t, db, fmt.Sprintf("reader%d", i), false)
		loan, err := lending.Issue(context.Background(), reader.ID, book.ID)
		require.NoError(t, err)
		loanIDs = append(loanIDs, loan.ID)
	}
	assert.Equal(t, 1, bookQuantity(t, db, book.ID))

	for _, id := range loanIDs[:2] {
		_, err := lending.Return(context.Background(), id)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, bookQuantity(t, db, book.ID))
}
