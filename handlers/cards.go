package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cuotacontrol/cuotacontrol-api/middleware"
	"github.com/cuotacontrol/cuotacontrol-api/models"
	"github.com/cuotacontrol/cuotacontrol-api/services"
)

type CardsHandler struct {
	DB     *sql.DB
	Budget *services.BudgetService
	WS     *WSHandler
}

func (h *CardsHandler) List(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	cards, err := h.Budget.ListCards(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cards"})
		return
	}

	c.JSON(http.StatusOK, cards)
}

func (h *CardsHandler) Create(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	var req models.CardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var card models.Card
	err := h.DB.QueryRow(`
		INSERT INTO cards (owner_id, name, color)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, ownerID, req.Name, req.Color).Scan(&card.ID, &card.CreatedAt, &card.UpdatedAt)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create card"})
		return
	}

	card.OwnerID = ownerID
	card.Name = req.Name
	card.Color = req.Color

	h.WS.NotifyChange(ownerID, "cards", "created")
	c.JSON(http.StatusCreated, card)
}

func (h *CardsHandler) Update(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	cardID := c.Param("id")

	var req models.CardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.DB.Exec(`
		UPDATE cards SET name = $1, color = $2, updated_at = NOW()
		WHERE id = $3 AND owner_id = $4
	`, req.Name, req.Color, cardID, ownerID)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update card"})
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
		return
	}

	h.WS.NotifyChange(ownerID, "cards", "updated")
	c.JSON(http.StatusOK, gin.H{"message": "Card updated"})
}

func (h *CardsHandler) Delete(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	cardID := c.Param("id")

	result, err := h.DB.Exec(`
		DELETE FROM cards WHERE id = $1 AND owner_id = $2
	`, cardID, ownerID)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete card"})
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
		return
	}

	h.WS.NotifyChange(ownerID, "cards", "deleted")
	c.JSON(http.StatusOK, gin.H{"message": "Card deleted"})
}
