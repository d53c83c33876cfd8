package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cuotacontrol/cuotacontrol-api/middleware"
	"github.com/cuotacontrol/cuotacontrol-api/services"
)

type DashboardHandler struct {
	Budget *services.BudgetService
}

// Summary calcula el resumen del mes en curso sobre el snapshot actual.
// Acepta `person` para limitar las compras a una sola persona.
func (h *DashboardHandler) Summary(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	ctx := c.Request.Context()
	now := time.Now()

	purchases, err := h.Budget.ListPurchases(ctx, ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch purchases"})
		return
	}
	purchases = services.FilterByPerson(purchases, c.Query("person"))

	expenses, err := h.Budget.ListExpenses(ctx, ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch expenses"})
		return
	}

	income, err := h.Budget.GetIncomeForMonth(ctx, ownerID, now.Format("2006-01"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch income"})
		return
	}

	summary := services.ComputeSummary(purchases, expenses, income, now)
	c.JSON(http.StatusOK, summary)
}

// CardBreakdown entrega la deuda pendiente por tarjeta para el gráfico de
// distribución.
func (h *DashboardHandler) CardBreakdown(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	ctx := c.Request.Context()

	cards, err := h.Budget.ListCards(ctx, ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cards"})
		return
	}

	purchases, err := h.Budget.ListPurchases(ctx, ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch purchases"})
		return
	}
	purchases = services.FilterByPerson(purchases, c.Query("person"))

	c.JSON(http.StatusOK, services.OutstandingByCard(cards, purchases))
}
