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

type AuthorInput struct {
	Name        string
	Biography   string
	DateOfBirth time.Time
}

type AuthorSearch struct {
	ID     uint
	Name   string
	Limit  int
	Offset int
}

type BookInput struct {
	Title       string
	Description string
	AuthorID    uint
	Genre       string
	Quantity    int
}

type BookSearch struct {
	ID     uint
	Title  string
	Limit  int
	Offset int
}

// CatalogService manages authors and books: CRUD, uniqueness of author name
// and book title, and search with pagination.
type CatalogService struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewCatalogService(db *gorm.DB, log *logrus.Logger) *CatalogService {
	return &CatalogService{db: db, log: log}
}

func (s *CatalogService) CreateAuthor(ctx context.Context, in AuthorInput) (*models.Author, error) {
	authors := repository.NewAuthorRepository(s.db.WithContext(ctx))

	exists, err := authors.ExistsByName(in.Name)
	if err != nil {
		return nil, asAppError("check author name", err)
	}
	if exists {
		return nil, apperr.New(apperr.Conflict, "author already exists")
	}

	author := &models.Author{
		Name:        in.Name,
		Biography:   in.Biography,
		DateOfBirth: in.DateOfBirth,
	}
	if err := authors.Create(author); err != nil {
		return nil, asAppError("create author", err)
	}

	s.log.WithField("author", author.Name).Info("author created")
	return author, nil
}

func (s *CatalogService) UpdateAuthor(ctx context.Context, id uint, in AuthorInput) (*models.Author, error) {
	authors := repository.NewAuthorRepository(s.db.WithContext(ctx))

	author, err := authors.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.NotFound, "author not found")
	}
	if err != nil {
		return nil, asAppError("find author", err)
	}

	author.Name = in.Name
	author.Biography = in.Biography
	author.DateOfBirth = in.DateOfBirth
	if err := authors.Save(author); err != nil {
		return nil, asAppError("update author", err)
	}
	return author, nil
}

func (s *CatalogService) DeleteAuthor(ctx context.Context, id uint) error {
	authors := repository.NewAuthorRepository(s.db.WithContext(ctx))

	author, err := authors.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.New(apperr.NotFound, "author not found")
	}
	if err != nil {
		return asAppError("find author", err)
	}
	if err := authors.Delete(author); err != nil {
		return asAppError("delete author", err)
	}
	return nil
}

func (s *CatalogService) ListAuthors(ctx context.Context, q AuthorSearch) ([]models.Author, error) {
	if q.Limit <= 0 {
		q.Limit = 10
	}
	if q.Offset < 0 {
		return nil, apperr.New(apperr.Validation, "offset must be non-negative")
	}

	found, err := repository.NewAuthorRepository(s.db.WithContext(ctx)).Search(repository.AuthorFilter{
		ID:     q.ID,
		Name:   q.Name,
		Limit:  q.Limit,
		Offset: q.Offset,
	})
	if err != nil {
		return nil, asAppError("search authors", err)
	}
	return found, nil
}

// CreateBook registers a book under the creating user. The title must be
// unique and the author must exist.
func (s *CatalogService) CreateBook(ctx context.Context, in BookInput, creatorID uint) (*models.Book, error) {
	db := s.db.WithContext(ctx)
	books := repository.NewBookRepository(db)
	authors := repository.NewAuthorRepository(db)

	exists, err := books.ExistsByTitle(in.Title)
	if err != nil {
		return nil, asAppError("check book title", err)
	}
	if exists {
		return nil, apperr.New(apperr.Conflict, "book already exists")
	}

	author, err := authors.FindByID(in.AuthorID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Newf(apperr.NotFound, "author with id %d does not exist", in.AuthorID)
	}
	if err != nil {
		return nil, asAppError("find author", err)
	}

	book := &models.Book{
		Title:       in.Title,
		Description: in.Description,
		Genre:       in.Genre,
		Quantity:    in.Quantity,
		AuthorID:    author.ID,
		UserID:      creatorID,
	}
	if err := books.Create(book); err != nil {
		return nil, asAppError("create book", err)
	}
	book.Author = author

	s.log.WithField("title", book.Title).Info("book created")
	return book, nil
}

func (s *CatalogService) UpdateBook(ctx context.Context, id uint, in BookInput) (*models.Book, error) {
	db := s.db.WithContext(ctx)
	books := repository.NewBookRepository(db)
	authors := repository.NewAuthorRepository(db)

	book, err := books.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.NotFound, "book not found")
	}
	if err != nil {
		return nil, asAppError("find book", err)
	}

	author, err := authors.FindByID(in.AuthorID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Newf(apperr.NotFound, "author with id %d does not exist", in.AuthorID)
	}
	if err != nil {
		return nil, asAppError("find author", err)
	}

	book.Title = in.Title
	book.Description = in.Description
	book.Genre = in.Genre
	book.Quantity = in.Quantity
	book.AuthorID = author.ID
	if err := books.Save(book); err != nil {
		return nil, asAppError("update book", err)
	}
	book.Author = author
	return book, nil
}

func (s *CatalogService) DeleteBook(ctx context.Context, id uint) error {
	books := repository.NewBookRepository(s.db.WithContext(ctx))

	book, err := books.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.New(apperr.NotFound, "book not found")
	}
	if err != nil {
		return asAppError("find book", err)
	}
	if err := books.Delete(book); err != nil {
		return asAppError("delete book", err)
	}
	return nil
}

// ListBooks searches the catalog; the author association is resolved on
// every returned book.
func (s *CatalogService) ListBooks(ctx context.Context, q BookSearch) ([]models.Book, error) {
	if q.Limit <= 0 {
		q.Limit = 10
	}
	if q.Offset < 0 {
		return nil, apperr.New(apperr.Validation, "offset must be non-negative")
	}

	found, err := repository.NewBookRepository(s.db.WithContext(ctx)).Search(repository.BookFilter{
		ID:     q.ID,
		Title:  q.Title,
		Limit:  q.Limit,
		Offset: q.Offset,
	})
	if err != nil {
		return nil, asAppError("search books", err)
	}
	return found, nil
}
