package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"librarium/internals/middleware"
	"librarium/internals/service"
)

type CreateUserRequest struct {
	Login    string `json:"login" binding:"required,max=60"`
	Password string `json:"password" binding:"required,max=60"`
	Email    string `json:"email" binding:"required,max=160"`
	IsAdmin  bool   `json:"is_admin"`
}

type UpdateUserRequest struct {
	Login    string `json:"login" binding:"required,max=60"`
	Password string `json:"password" binding:"omitempty,max=60"`
	Email    string `json:"email" binding:"required,max=160"`
	IsAdmin  *bool  `json:"is_admin"`
}

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AccountSummaryResponse struct {
	ID      uint   `json:"id"`
	Login   string `json:"login"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	Token   string `json:"token"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type UserController struct {
	accounts *service.AccountService
	log      *logrus.Logger
}

func NewUserController(accounts *service.AccountService, log *logrus.Logger) *UserController {
	return &UserController{accounts: accounts, log: log}
}

// Register handles POST /api/user: create an account and return its summary
// together with a bearer token.
func (ctl *UserController) Register(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request format"})
		return
	}

	user, token, err := ctl.accounts.Register(c.Request.Context(), service.RegisterInput{
		Login:    req.Login,
		Password: req.Password,
		Email:    req.Email,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}

	c.JSON(http.StatusOK, AccountSummaryResponse{
		ID:      user.ID,
		Login:   user.Login,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
		Token:   token,
	})
}

// Login handles POST /api/user/login: a bearer token, or 400 on mismatch.
func (ctl *UserController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request format"})
		return
	}

	token, err := ctl.accounts.Login(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusOK, TokenResponse{Token: token})
}

// Validate handles GET /api/validate: echoes the authenticated account.
func (ctl *UserController) Validate(c *gin.Context) {
	user := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{"message": "you are authorized as " + user.Login})
}

// UpdateByID handles PUT /api/user/:id. The literal id "me" updates the
// authenticated user; numeric ids are an admin operation. The two share one
// route because the router does not allow a static segment next to :id.
func (ctl *UserController) UpdateByID(c *gin.Context) {
	if c.Param("id") == "me" {
		ctl.updateMe(c)
		return
	}
	current := middleware.CurrentUser(c)
	if current == nil || !current.IsAdmin {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "not authorized to access this resource"})
		return
	}
	ctl.update(c)
}

func (ctl *UserController) updateMe(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request format"})
		return
	}

	current := middleware.CurrentUser(c)
	user, err := ctl.accounts.UpdateSelf(c.Request.Context(), current.ID, service.UpdateUserInput{
		Login:    req.Login,
		Password: req.Password,
		Email:    req.Email,
	})
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusOK, convertUserToResponse(user))
}

func (ctl *UserController) update(c *gin.Context) {
	id, ok := pathID(c, "id", "user")
	if !ok {
		return
	}
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request format"})
		return
	}

	user, err := ctl.accounts.Update(c.Request.Context(), id, service.UpdateUserInput{
		Login:    req.Login,
		Password: req.Password,
		Email:    req.Email,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusOK, convertUserToResponse(user))
}

// Delete handles DELETE /api/user/:id (admin).
func (ctl *UserController) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", "user")
	if !ok {
		return
	}
	if err := ctl.accounts.Delete(c.Request.Context(), id); err != nil {
		respondError(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"details": "user deleted"})
}

// List handles GET /api/user/list (admin, paginated).
func (ctl *UserController) List(c *gin.Context) {
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

	page, err := ctl.accounts.List(c.Request.Context(), service.UserSearch{
		ID:     id,
		Login:  c.Query("login"),
		Email:  c.Query("email"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}

	response := PaginatedUsersResponse{
		Total: page.Total,
		Page:  page.Page,
		Size:  page.Size,
		Users: make([]UserResponse, 0, len(page.Users)),
	}
	for i := range page.Users {
		response.Users = append(response.Users, convertUserToResponse(&page.Users[i]))
	}
	c.JSON(http.StatusOK, response)
}
