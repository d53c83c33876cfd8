package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/cuotacontrol/cuotacontrol-api/models"
)

// BudgetService es la interfaz de lectura sobre las colecciones de un owner.
// Los cálculos de presupuesto son funciones puras sobre el snapshot leído;
// el servicio sólo trae los datos.
type BudgetService struct {
	db *sql.DB
}

func NewBudgetService(db *sql.DB) *BudgetService {
	return &BudgetService{db: db}
}

// Summary es el resumen financiero del mes en curso.
type Summary struct {
	TotalOutstanding          int64   `json:"total_outstanding"`
	TotalMonthlyFixedExpenses int64   `json:"total_monthly_fixed_expenses"`
	CurrentMonthInstallments  int64   `json:"current_month_installments"`
	TotalMonthlyCommitments   int64   `json:"total_monthly_commitments"`
	RemainingBudget           int64   `json:"remaining_budget"`
	DailyBudget               float64 `json:"daily_budget"`
	WeeklyBudget              float64 `json:"weekly_budget"`
	RemainingDays             int     `json:"remaining_days"`
}

// CardOutstanding es la deuda pendiente acumulada en una tarjeta, para el
// gráfico de distribución del dashboard.
type CardOutstanding struct {
	CardID      string `json:"card_id"`
	CardName    string `json:"card_name"`
	Color       string `json:"color"`
	Outstanding int64  `json:"outstanding"`
}

// ComputeSummary deriva el resumen mensual de un snapshot ya filtrado.
//
// La cuota mensual es una aproximación: se asume que toda compra abierta debe
// exactamente una cuota este mes, sin mirar su calendario real de vencimiento.
func ComputeSummary(purchases []models.PurchaseInstallment, expenses []models.Expense, income *models.MonthlyIncome, now time.Time) Summary {
	var s Summary

	for _, p := range purchases {
		s.TotalOutstanding += p.RemainingAmount()
		if p.RemainingInstallments() > 0 {
			s.CurrentMonthInstallments += p.InstallmentAmount
		}
	}

	for _, e := range expenses {
		s.TotalMonthlyFixedExpenses += e.Amount
	}

	s.TotalMonthlyCommitments = s.TotalMonthlyFixedExpenses + s.CurrentMonthInstallments

	var monthlyIncome int64
	if income != nil {
		monthlyIncome = income.Amount
	}
	s.RemainingBudget = monthlyIncome - s.TotalMonthlyCommitments

	s.RemainingDays = remainingDaysInMonth(now)
	if s.RemainingBudget > 0 && s.RemainingDays > 0 {
		s.DailyBudget = float64(s.RemainingBudget) / float64(s.RemainingDays)
	}
	s.WeeklyBudget = s.DailyBudget * 7

	return s
}

// remainingDaysInMonth cuenta los días que quedan del mes, incluyendo hoy.
func remainingDaysInMonth(now time.Time) int {
	daysInMonth := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location()).Day()
	return daysInMonth - now.Day() + 1
}

// OutstandingByCard reparte la deuda pendiente entre las tarjetas.
func OutstandingByCard(cards []models.Card, purchases []models.PurchaseInstallment) []CardOutstanding {
	result := make([]CardOutstanding, 0, len(cards))
	for _, card := range cards {
		var total int64
		for _, p := range purchases {
			if p.CardID == card.ID {
				total += p.RemainingAmount()
			}
		}
		result = append(result, CardOutstanding{
			CardID:      card.ID,
			CardName:    card.Name,
			Color:       card.Color,
			Outstanding: total,
		})
	}
	return result
}

// FilterByPerson deja sólo las compras de una persona; personID vacío pasa todo.
func FilterByPerson(purchases []models.PurchaseInstallment, personID string) []models.PurchaseInstallment {
	if personID == "" {
		return purchases
	}
	filtered := make([]models.PurchaseInstallment, 0, len(purchases))
	for _, p := range purchases {
		if p.PersonID == personID {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// ListPurchases trae todas las compras en cuotas del owner.
func (s *BudgetService) ListPurchases(ctx context.Context, ownerID string) ([]models.PurchaseInstallment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner_id, description, COALESCE(card_id::text, ''), COALESCE(person_id::text, ''),
		       installment_amount, paid_installments, total_installments,
		       to_char(payment_deadline, 'YYYY-MM-DD'), COALESCE(last_payment, ''),
		       created_at, updated_at
		FROM purchase_installments
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	purchases := []models.PurchaseInstallment{}
	for rows.Next() {
		var p models.PurchaseInstallment
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Description, &p.CardID, &p.PersonID,
			&p.InstallmentAmount, &p.PaidInstallments, &p.TotalInstallments,
			&p.PaymentDeadline, &p.LastPayment, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		purchases = append(purchases, p)
	}
	return purchases, rows.Err()
}

// ListExpenses trae los gastos fijos del owner.
func (s *BudgetService) ListExpenses(ctx context.Context, ownerID string) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner_id, description, amount, COALESCE(card_id::text, ''), created_at, updated_at
		FROM expenses
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.Description, &e.Amount, &e.CardID, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// GetIncomeForMonth devuelve el ingreso del mes, nil si no está declarado.
func (s *BudgetService) GetIncomeForMonth(ctx context.Context, ownerID, month string) (*models.MonthlyIncome, error) {
	var income models.MonthlyIncome
	err := s.db.QueryRowContext(ctx, `
		SELECT id, owner_id, month, amount, COALESCE(description, ''), created_at, updated_at
		FROM monthly_income
		WHERE owner_id = $1 AND month = $2
	`, ownerID, month).Scan(&income.ID, &income.OwnerID, &income.Month, &income.Amount,
		&income.Description, &income.CreatedAt, &income.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &income, nil
}

// ListCards trae las tarjetas del owner.
func (s *BudgetService) ListCards(ctx context.Context, ownerID string) ([]models.Card, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner_id, name, color, created_at, updated_at
		FROM cards
		WHERE owner_id = $1
		ORDER BY created_at
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cards := []models.Card{}
	for rows.Next() {
		var c models.Card
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Color, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// ListPeople trae las personas del owner.
func (s *BudgetService) ListPeople(ctx context.Context, ownerID string) ([]models.Person, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner_id, name, COALESCE(email, ''), COALESCE(avatar, ''), created_at, updated_at
		FROM people
		WHERE owner_id = $1
		ORDER BY created_at
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	people := []models.Person{}
	for rows.Next() {
		var p models.Person
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Email, &p.Avatar, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		people = append(people, p)
	}
	return people, rows.Err()
}
