package controllers

import (
	"time"

	"github.com/samber/lo"

	"librarium/internals/models"
)

const dateLayout = "2006-01-02"

type AuthorResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Biography   string `json:"biography"`
	DateOfBirth string `json:"date_of_birth"`
}

// BookResponse serializes authors as a list even though a book holds a
// single author relation; that is the established wire format.
type BookResponse struct {
	ID          uint             `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	CreatorID   uint             `json:"creator_id"`
	Genre       string           `json:"genre"`
	Quantity    int              `json:"quantity"`
	Authors     []AuthorResponse `json:"authors"`
}

type UserResponse struct {
	ID        uint           `json:"id"`
	Login     string         `json:"login"`
	Email     string         `json:"email"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	IsAdmin   bool           `json:"is_admin"`
	Books     []BookResponse `json:"books"`
}

type PaginatedUsersResponse struct {
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Size  int            `json:"size"`
	Users []UserResponse `json:"users"`
}

type LoanResponse struct {
	ID         uint      `json:"id"`
	BookID     uint      `json:"book_id"`
	UserID     uint      `json:"user_id"`
	LoanDate   time.Time `json:"loan_date"`
	ReturnDate time.Time `json:"return_date"`
	Status     string    `json:"status"`
}

func convertAuthorToResponse(author *models.Author) AuthorResponse {
	return AuthorResponse{
		ID:          author.ID,
		Name:        author.Name,
		Biography:   author.Biography,
		DateOfBirth: author.DateOfBirth.Format(dateLayout),
	}
}

func convertBookToResponse(book *models.Book) BookResponse {
	response := BookResponse{
		ID:          book.ID,
		Title:       book.Title,
		Description: book.Description,
		CreatorID:   book.UserID,
		Genre:       book.Genre,
		Quantity:    book.Quantity,
		Authors:     []AuthorResponse{},
	}
	if book.Author != nil {
		response.Authors = append(response.Authors, convertAuthorToResponse(book.Author))
	}
	return response
}

func convertUserToResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Login:     user.Login,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
		IsAdmin:   user.IsAdmin,
		Books: lo.Map(user.Books, func(book models.Book, _ int) BookResponse {
			return convertBookToResponse(&book)
		}),
	}
}

func convertLoanToResponse(loan *models.Loan) LoanResponse {
	return LoanResponse{
		ID:         loan.ID,
		BookID:     loan.BookID,
		UserID:     loan.UserID,
		LoanDate:   loan.LoanDate,
		ReturnDate: loan.ReturnDate,
		Status:     loan.Status,
	}
}
