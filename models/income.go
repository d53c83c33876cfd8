package models

import "time"

// MonthlyIncome es el ingreso declarado para un mes calendario. Hay a lo más
// un registro por (owner, month); se escribe con upsert.
type MonthlyIncome struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Month       string    `json:"month"` // YYYY-MM
	Amount      int64     `json:"amount"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type IncomeRequest struct {
	Month       string `json:"month" binding:"required,datetime=2006-01"`
	Amount      int64  `json:"amount" binding:"gte=0"`
	Description string `json:"description"`
}
