package models

import "time"

// PurchaseInstallment es una compra en cuotas: un monto fijo que se paga
// totalInstallments veces. El invariante paid <= total se valida al escribir,
// nunca se recalcula hacia atrás.
type PurchaseInstallment struct {
	ID                string    `json:"id"`
	OwnerID           string    `json:"owner_id"`
	Description       string    `json:"description"`
	CardID            string    `json:"card_id"`
	PersonID          string    `json:"person_id"`
	InstallmentAmount int64     `json:"installment_amount"` // CLP, sin decimales
	PaidInstallments  int       `json:"paid_installments"`
	TotalInstallments int       `json:"total_installments"`
	PaymentDeadline   string    `json:"payment_deadline"` // YYYY-MM-DD
	LastPayment       string    `json:"last_payment,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// RemainingInstallments nunca es negativo gracias al invariante de escritura.
func (p PurchaseInstallment) RemainingInstallments() int {
	return p.TotalInstallments - p.PaidInstallments
}

// RemainingAmount es lo que falta por pagar de la compra.
func (p PurchaseInstallment) RemainingAmount() int64 {
	return int64(p.RemainingInstallments()) * p.InstallmentAmount
}

// Progress es la fracción pagada, 0 si la compra no tiene cuotas.
func (p PurchaseInstallment) Progress() float64 {
	if p.TotalInstallments == 0 {
		return 0
	}
	return float64(p.PaidInstallments) / float64(p.TotalInstallments)
}

type PurchaseRequest struct {
	Description       string `json:"description" binding:"required"`
	CardID            string `json:"card_id" binding:"required"`
	PersonID          string `json:"person_id" binding:"required"`
	InstallmentAmount int64  `json:"installment_amount" binding:"required,gt=0"`
	PaidInstallments  int    `json:"paid_installments" binding:"gte=0"`
	TotalInstallments int    `json:"total_installments" binding:"required,gt=0"`
	PaymentDeadline   string `json:"payment_deadline" binding:"required,datetime=2006-01-02"`
	LastPayment       string `json:"last_payment"`
}

type ProgressRequest struct {
	Direction string `json:"direction" binding:"required,oneof=up down"`
}
