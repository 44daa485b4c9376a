package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"librarium/internals/middleware"
	"librarium/internals/models"
	"librarium/internals/service"
)

type BookRequest struct {
	Title       string `json:"title" binding:"required,max=120"`
	Description string `json:"description" binding:"max=500"`
	AuthorID    uint   `json:"author_id" binding:"required"`
	Genre       string `json:"genre" binding:"max=120"`
	Quantity    *int   `json:"quantity" binding:"required,gte=0"`
}

type BookController struct {
	catalog *service.CatalogService
	log     *logrus.Logger
}

func NewBookController(catalog *service.CatalogService, log *logrus.Logger) *BookController {
	return &BookController{catalog: catalog, log: log}
}

func (req *BookRequest) toInput() service.BookInput {
	return service.BookInput{
		Title:       req.Title,
		Description: req.Description,
		AuthorID:    req.AuthorID,
		Genre:       req.Genre,
		Quantity:    *req.Quantity,
	}
}

// Create handles POST /api/book (admin); the authenticated admin becomes the
// book's creator.
func (ctl *BookController) Create(c *gin.Context) {
	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request format"})
		return
	}

	creator := middleware.CurrentUser(c)
	book, err := ctl.catalog.CreateBook(c.Request.Context(), req.toInput(), creator.ID)
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusOK, convertBookToResponse(book))
}

// Update handles PUT /api/book/:id (admin).
func (ctl *BookController) Update(c *gin.Context) {
	id, ok := pathID(c, "id", "book")
	if !ok {
		return
	}
	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request format"})
		return
	}

	book, err := ctl.catalog.UpdateBook(c.Request.Context(), id, req.toInput())
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusOK, convertBookToResponse(book))
}

// Delete handles DELETE /api/book/:id (admin).
func (ctl *BookController) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", "book")
	if !ok {
		return
	}
	if err := ctl.catalog.DeleteBook(c.Request.Context(), id); err != nil {
		respondError(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"details": "book deleted"})
}

// List handles GET /api/book/list (public).
func (ctl *BookController) List(c *gin.Context) {
	id, ok := queryUint(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "id must be a non-negative integer"})
		return
	}
	limit, ok := queryInt(c, "limit", 10)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "limit must be an integer"})
		return
	}
	offset, ok := queryInt(c, "offset", 0)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "offset must be an integer"})
		return
	}

	books, err := ctl.catalog.ListBooks(c.Request.Context(), service.BookSearch{
		ID:     id,
		Title:  c.Query("title"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}

	c.JSON(http.StatusOK, lo.Map(books, func(book models.Book, _ int) BookResponse {
		return convertBookToResponse(&book)
	}))
}
