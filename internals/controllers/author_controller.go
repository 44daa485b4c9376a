package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"librarium/internals/models"
	"librarium/internals/service"
)

type AuthorRequest struct {
	Name        string `json:"name" binding:"required,max=120"`
	Biography   string `json:"biography" binding:"max=800"`
	DateOfBirth string `json:"date_of_birth" binding:"required"`
}

type AuthorController struct {
	catalog *service.CatalogService
	log     *logrus.Logger
}

func NewAuthorController(catalog *service.CatalogService, log *logrus.Logger) *AuthorController {
	return &AuthorController{catalog: catalog, log: log}
}

func (req *AuthorRequest) toInput() (service.AuthorInput, error) {
	born, err := time.Parse(dateLayout, req.DateOfBirth)
	if err != nil {
		return service.AuthorInput{}, err
	}
	return service.AuthorInput{
		Name:        req.Name,
		Biography:   req.Biography,
		DateOfBirth: born,
	}, nil
}

// Create handles POST /api/author (admin).
func (ctl *AuthorController) Create(c *gin.Context) {
	var req AuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request format"})
		return
	}
	input, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "date_of_birth must use the YYYY-MM-DD format"})
		return
	}

	author, err := ctl.catalog.CreateAuthor(c.Request.Context(), input)
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusOK, convertAuthorToResponse(author))
}

// Update handles PUT /api/author/:id (admin).
func (ctl *AuthorController) Update(c *gin.Context) {
	id, ok := pathID(c, "id", "author")
	if !ok {
		return
	}
	var req AuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request format"})
		return
	}
	input, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "date_of_birth must use the YYYY-MM-DD format"})
		return
	}

	author, err := ctl.catalog.UpdateAuthor(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusOK, convertAuthorToResponse(author))
}

// Delete handles DELETE /api/author/:id (admin).
func (ctl *AuthorController) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", "author")
	if !ok {
		return
	}
	if err := ctl.catalog.DeleteAuthor(c.Request.Context(), id); err != nil {
		respondError(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"details": "author deleted"})
}

// List handles GET /api/author/list (public).
func (ctl *AuthorController) List(c *gin.Context) {
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

	authors, err := ctl.catalog.ListAuthors(c.Request.Context(), service.AuthorSearch{
		ID:     id,
		Name:   c.Query("name"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}

	c.JSON(http.StatusOK, lo.Map(authors, func(author models.Author, _ int) AuthorResponse {
		return convertAuthorToResponse(&author)
	}))
}
