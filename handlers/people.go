package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cuotacontrol/cuotacontrol-api/middleware"
	"github.com/cuotacontrol/cuotacontrol-api/models"
	"github.com/cuotacontrol/cuotacontrol-api/services"
)

type PeopleHandler struct {
	DB     *sql.DB
	Budget *services.BudgetService
	WS     *WSHandler
}

func (h *PeopleHandler) List(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	people, err := h.Budget.ListPeople(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch people"})
		return
	}

	c.JSON(http.StatusOK, people)
}

func (h *PeopleHandler) Create(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	var req models.PersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var person models.Person
	err := h.DB.QueryRow(`
		INSERT INTO people (owner_id, name, email, avatar)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''))
		RETURNING id, created_at, updated_at
	`, ownerID, req.Name, req.Email, req.Avatar).Scan(&person.ID, &person.CreatedAt, &person.UpdatedAt)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create person"})
		return
	}

	person.OwnerID = ownerID
	person.Name = req.Name
	person.Email = req.Email
	person.Avatar = req.Avatar

	h.WS.NotifyChange(ownerID, "people", "created")
	c.JSON(http.StatusCreated, person)
}

func (h *PeopleHandler) Update(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	personID := c.Param("id")

	var req models.PersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.DB.Exec(`
		UPDATE people
		SET name = $1, email = NULLIF($2, ''), avatar = NULLIF($3, ''), updated_at = NOW()
		WHERE id = $4 AND owner_id = $5
	`, req.Name, req.Email, req.Avatar, personID, ownerID)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update person"})
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Person not found"})
		return
	}

	h.WS.NotifyChange(ownerID, "people", "updated")
	c.JSON(http.StatusOK, gin.H{"message": "Person updated"})
}

func (h *PeopleHandler) Delete(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	personID := c.Param("id")

	result, err := h.DB.Exec(`
		DELETE FROM people WHERE id = $1 AND owner_id = $2
	`, personID, ownerID)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete person"})
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Person not found"})
		return
	}

	// Las compras que la referencian quedan con FK colgante y se muestran
	// como "N/A", igual que en el cliente original
	h.WS.NotifyChange(ownerID, "people", "deleted")
	c.JSON(http.StatusOK, gin.H{"message": "Person deleted"})
}
