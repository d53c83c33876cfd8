package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cuotacontrol/cuotacontrol-api/middleware"
	"github.com/cuotacontrol/cuotacontrol-api/models"
	"github.com/cuotacontrol/cuotacontrol-api/services"
)

type ExpensesHandler struct {
	DB     *sql.DB
	Budget *services.BudgetService
	WS     *WSHandler
}

func (h *ExpensesHandler) List(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	expenses, err := h.Budget.ListExpenses(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch expenses"})
		return
	}

	c.JSON(http.StatusOK, expenses)
}

func (h *ExpensesHandler) Create(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	var req models.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var expense models.Expense
	err := h.DB.QueryRow(`
		INSERT INTO expenses (owner_id, description, amount, card_id)
		VALUES ($1, $2, $3, NULLIF($4, '')::uuid)
		RETURNING id, created_at, updated_at
	`, ownerID, req.Description, req.Amount, req.CardID).Scan(&expense.ID, &expense.CreatedAt, &expense.UpdatedAt)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create expense"})
		return
	}

	expense.OwnerID = ownerID
	expense.Description = req.Description
	expense.Amount = req.Amount
	expense.CardID = req.CardID

	h.WS.NotifyChange(ownerID, "expenses", "created")
	c.JSON(http.StatusCreated, expense)
}

func (h *ExpensesHandler) Update(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	expenseID := c.Param("id")

	var req models.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.DB.Exec(`
		UPDATE expenses
		SET description = $1, amount = $2, card_id = NULLIF($3, '')::uuid, updated_at = NOW()
		WHERE id = $4 AND owner_id = $5
	`, req.Description, req.Amount, req.CardID, expenseID, ownerID)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update expense"})
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		return
	}

	h.WS.NotifyChange(ownerID, "expenses", "updated")
	c.JSON(http.StatusOK, gin.H{"message": "Expense updated"})
}

func (h *ExpensesHandler) Delete(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	expenseID := c.Param("id")

	result, err := h.DB.Exec(`
		DELETE FROM expenses WHERE id = $1 AND owner_id = $2
	`, expenseID, ownerID)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete expense"})
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		return
	}

	h.WS.NotifyChange(ownerID, "expenses", "deleted")
	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted"})
}
