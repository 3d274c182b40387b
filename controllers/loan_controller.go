package controllers

import (
	"net/http"

	"Gin_excel_redis_asset_tool/app"
	"Gin_excel_redis_asset_tool/db"

	"github.com/gin-gonic/gin"
)

type LoanController struct{ *Srv }

func NewLoanController(s *Srv) *LoanController { return &LoanController{Srv: s} }

// Borrow opens a loan for an available machine.
func (lc *LoanController) Borrow(c *gin.Context) {
	var in db.Borrower
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	loan, err := lc.Repo.OpenLoan(c.Param("num"), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, loan)
}

// Return closes the newest open loan of the machine.
func (lc *LoanController) Return(c *gin.Context) {
	loan, err := lc.Repo.CloseLoan(c.Param("num"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, loan)
}

// ListLoans returns loan history, optionally scoped to one machine and
// filtered by ?status=open|returned.
func (lc *LoanController) ListLoans(c *gin.Context) {
	loans, err := lc.Repo.ListLoans(c.Query("propertyNumber"), c.Query("status"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"items": loans})
}
