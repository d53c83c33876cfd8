package models

import "time"

// Expense es un gasto fijo mensual (arriendo, plan del celular...). No lleva
// fecha: se asume recurrente todos los meses.
type Expense struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Description string    `json:"description"`
	Amount      int64     `json:"amount"` // CLP, sin decimales
	CardID      string    `json:"card_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ExpenseRequest struct {
	Description string `json:"description" binding:"required"`
	Amount      int64  `json:"amount" binding:"required,gt=0"`
	CardID      string `json:"card_id"`
}
