package handlers

import (
	"database/sql"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"

	"github.com/cuotacontrol/cuotacontrol-api/middleware"
	"github.com/cuotacontrol/cuotacontrol-api/models"
	"github.com/cuotacontrol/cuotacontrol-api/services"
)

type IncomeHandler struct {
	DB     *sql.DB
	Budget *services.BudgetService
	WS     *WSHandler
}

var monthRegex = regexp.MustCompile(`^\d{4}-\d{2}$`)

// Get devuelve el ingreso declarado para un mes; 404 si no existe.
func (h *IncomeHandler) Get(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	month := c.Param("month")

	if !monthRegex.MatchString(month) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Month must be YYYY-MM"})
		return
	}

	income, err := h.Budget.GetIncomeForMonth(c.Request.Context(), ownerID, month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch income"})
		return
	}
	if income == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No income recorded for " + month})
		return
	}

	c.JSON(http.StatusOK, income)
}

// Upsert guarda el ingreso del mes con semántica merge: hay a lo más un
// registro por (owner, month) y escribir de nuevo lo actualiza.
func (h *IncomeHandler) Upsert(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	var req models.IncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var income models.MonthlyIncome
	err := h.DB.QueryRow(`
		INSERT INTO monthly_income (owner_id, month, amount, description)
		VALUES ($1, $2, $3, NULLIF($4, ''))
		ON CONFLICT (owner_id, month)
		DO UPDATE SET amount = EXCLUDED.amount,
		              description = COALESCE(EXCLUDED.description, monthly_income.description),
		              updated_at = NOW()
		RETURNING id, created_at, updated_at
	`, ownerID, req.Month, req.Amount, req.Description).Scan(&income.ID, &income.CreatedAt, &income.UpdatedAt)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save income"})
		return
	}

	income.OwnerID = ownerID
	income.Month = req.Month
	income.Amount = req.Amount
	income.Description = req.Description

	h.WS.NotifyChange(ownerID, "income", "updated")
	c.JSON(http.StatusOK, income)
}
