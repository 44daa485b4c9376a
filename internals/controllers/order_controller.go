package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"librarium/internals/models"
	"librarium/internals/service"
)

type IssueRequest struct {
	UserID uint `json:"user_id" binding:"required"`
	BookID uint `json:"book_id" binding:"required"`
}

type ReturnRequest struct {
	LoanID uint `json:"loan_id" binding:"required"`
}

// OrderController exposes the lending engine: issuing a book, returning it
// and listing a user's loans. All routes are admin-only.
type OrderController struct {
	lending *service.LendingService
	log     *logrus.Logger
}

func NewOrderController(lending *service.LendingService, log *logrus.Logger) *OrderController {
	return &OrderController{lending: lending, log: log}
}

// Issue handles POST /api/order.
func (ctl *OrderController) Issue(c *gin.Context) {
	var req IssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request format"})
		return
	}

	loan, err := ctl.lending.Issue(c.Request.Context(), req.UserID, req.BookID)
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusOK, convertLoanToResponse(loan))
}

// Return handles POST /api/order/return.
func (ctl *OrderController) Return(c *gin.Context) {
	var req ReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request format"})
		return
	}

	loan, err := ctl.lending.Return(c.Request.Context(), req.LoanID)
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusOK, convertLoanToResponse(loan))
}

// ListForUser handles GET /api/order/:userId/users: the user's full loan
// history.
func (ctl *OrderController) ListForUser(c *gin.Context) {
	userID, ok := pathID(c, "userId", "user")
	if !ok {
		return
	}

	loans, err := ctl.lending.LoansForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}

	c.JSON(http.StatusOK, lo.Map(loans, func(loan models.Loan, _ int) LoanResponse {
		return convertLoanToResponse(&loan)
	}))
}
