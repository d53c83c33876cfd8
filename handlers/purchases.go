package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cuotacontrol/cuotacontrol-api/middleware"
	"github.com/cuotacontrol/cuotacontrol-api/models"
	"github.com/cuotacontrol/cuotacontrol-api/services"
	"github.com/cuotacontrol/cuotacontrol-api/utils"
)

type PurchasesHandler struct {
	DB     *sql.DB
	Budget *services.BudgetService
	WS     *WSHandler
}

// List devuelve las compras del owner, filtradas por persona/tarjeta y
// ordenadas según los query params `sort` y `dir`.
func (h *PurchasesHandler) List(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	purchases, err := h.Budget.ListPurchases(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch purchases"})
		return
	}

	filter := services.PurchaseFilter{
		PersonID: c.Query("person"),
		CardID:   c.Query("card"),
	}
	purchases = services.FilterPurchases(purchases, filter)

	if sortParam := c.Query("sort"); sortParam != "" {
		key, ok := services.ParseSortKey(sortParam)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown sort key: " + sortParam})
			return
		}

		cards, err := h.Budget.ListCards(c.Request.Context(), ownerID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cards"})
			return
		}
		people, err := h.Budget.ListPeople(c.Request.Context(), ownerID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch people"})
			return
		}

		state := services.SortState{Key: key, Descending: c.Query("dir") == "desc"}
		purchases = services.SortPurchases(purchases, cards, people, state)
	}

	c.JSON(http.StatusOK, purchases)
}

func (h *PurchasesHandler) Create(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	var req models.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.PaidInstallments > req.TotalInstallments {
		c.JSON(http.StatusBadRequest, gin.H{"error": "paid_installments cannot exceed total_installments"})
		return
	}

	var purchase models.PurchaseInstallment
	purchase.ID = uuid.New().String()
	err := h.DB.QueryRow(`
		INSERT INTO purchase_installments
			(id, owner_id, description, card_id, person_id, installment_amount,
			 paid_installments, total_installments, payment_deadline, last_payment)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''))
		RETURNING created_at, updated_at
	`, purchase.ID, ownerID, req.Description, req.CardID, req.PersonID, req.InstallmentAmount,
		req.PaidInstallments, req.TotalInstallments, req.PaymentDeadline, req.LastPayment).
		Scan(&purchase.CreatedAt, &purchase.UpdatedAt)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create purchase"})
		return
	}

	purchase.OwnerID = ownerID
	purchase.Description = req.Description
	purchase.CardID = req.CardID
	purchase.PersonID = req.PersonID
	purchase.InstallmentAmount = req.InstallmentAmount
	purchase.PaidInstallments = req.PaidInstallments
	purchase.TotalInstallments = req.TotalInstallments
	purchase.PaymentDeadline = req.PaymentDeadline
	purchase.LastPayment = req.LastPayment

	utils.SafeLog("🛒 Purchase created: %s (%s)", purchase.Description, utils.MaskAmount(purchase.InstallmentAmount))
	h.WS.NotifyChange(ownerID, "purchases", "created")
	c.JSON(http.StatusCreated, purchase)
}

func (h *PurchasesHandler) Update(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	purchaseID := c.Param("id")

	var req models.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.PaidInstallments > req.TotalInstallments {
		c.JSON(http.StatusBadRequest, gin.H{"error": "paid_installments cannot exceed total_installments"})
		return
	}

	result, err := h.DB.Exec(`
		UPDATE purchase_installments
		SET description = $1, card_id = $2, person_id = $3, installment_amount = $4,
		    paid_installments = $5, total_installments = $6, payment_deadline = $7,
		    last_payment = NULLIF($8, ''), updated_at = NOW()
		WHERE id = $9 AND owner_id = $10
	`, req.Description, req.CardID, req.PersonID, req.InstallmentAmount,
		req.PaidInstallments, req.TotalInstallments, req.PaymentDeadline,
		req.LastPayment, purchaseID, ownerID)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update purchase"})
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Purchase not found"})
		return
	}

	h.WS.NotifyChange(ownerID, "purchases", "updated")
	c.JSON(http.StatusOK, gin.H{"message": "Purchase updated"})
}

func (h *PurchasesHandler) Delete(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	purchaseID := c.Param("id")

	result, err := h.DB.Exec(`
		DELETE FROM purchase_installments WHERE id = $1 AND owner_id = $2
	`, purchaseID, ownerID)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete purchase"})
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Purchase not found"})
		return
	}

	h.WS.NotifyChange(ownerID, "purchases", "deleted")
	c.JSON(http.StatusOK, gin.H{"message": "Purchase deleted"})
}

// Progress sube o baja el contador de cuotas pagadas en uno. Un pedido fuera
// de rango (bajar en 0, subir en el total) no se aplica y devuelve la compra
// sin cambios.
func (h *PurchasesHandler) Progress(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	purchaseID := c.Param("id")

	var req models.ProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var paid, total int
	err := h.DB.QueryRow(`
		SELECT paid_installments, total_installments
		FROM purchase_installments
		WHERE id = $1 AND owner_id = $2
	`, purchaseID, ownerID).Scan(&paid, &total)

	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Purchase not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	newPaid := paid
	if req.Direction == "up" && paid < total {
		newPaid = paid + 1
	} else if req.Direction == "down" && paid > 0 {
		newPaid = paid - 1
	}

	if newPaid != paid {
		_, err = h.DB.Exec(`
			UPDATE purchase_installments
			SET paid_installments = $1, updated_at = NOW()
			WHERE id = $2 AND owner_id = $3
		`, newPaid, purchaseID, ownerID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update progress"})
			return
		}
		h.WS.NotifyChange(ownerID, "purchases", "updated")
	}

	c.JSON(http.StatusOK, gin.H{
		"paid_installments":  newPaid,
		"total_installments": total,
		"changed":            newPaid != paid,
	})
}

// Export arma el reporte de texto agrupado por tarjeta sobre la lista
// filtrada. El cliente lo copia al portapapeles.
func (h *PurchasesHandler) Export(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	purchases, err := h.Budget.ListPurchases(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch purchases"})
		return
	}

	filter := services.PurchaseFilter{
		PersonID: c.Query("person"),
		CardID:   c.Query("card"),
	}
	filtered := services.FilterPurchases(purchases, filter)

	cards, err := h.Budget.ListCards(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cards"})
		return
	}

	report, err := services.BuildReport(filtered, cards)
	if errors.Is(err, services.ErrNothingToExport) {
		c.JSON(http.StatusConflict, gin.H{"error": "No hay compras para exportar con los filtros actuales"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, report)
}
