package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuotacontrol/cuotacontrol-api/models"
)

func openPurchase(installment int64, paid, total int) models.PurchaseInstallment {
	return models.PurchaseInstallment{
		InstallmentAmount: installment,
		PaidInstallments:  paid,
		TotalInstallments: total,
	}
}

func TestComputeSummary(t *testing.T) {
	// 12 de julio: julio tiene 31 días, quedan 20 contando hoy
	now := time.Date(2024, time.July, 12, 10, 0, 0, 0, time.UTC)

	purchases := []models.PurchaseInstallment{
		openPurchase(100_000, 2, 10),
		openPurchase(100_000, 5, 12),
	}
	expenses := []models.Expense{
		{Description: "internet", Amount: 20_000},
		{Description: "plan celular", Amount: 30_000},
	}
	income := &models.MonthlyIncome{Month: "2024-07", Amount: 1_000_000}

	s := ComputeSummary(purchases, expenses, income, now)

	assert.Equal(t, int64(8*100_000+7*100_000), s.TotalOutstanding)
	assert.Equal(t, int64(50_000), s.TotalMonthlyFixedExpenses)
	assert.Equal(t, int64(200_000), s.CurrentMonthInstallments)
	assert.Equal(t, int64(250_000), s.TotalMonthlyCommitments)
	assert.Equal(t, int64(750_000), s.RemainingBudget)
	assert.Equal(t, 20, s.RemainingDays)
	assert.Equal(t, 37_500.0, s.DailyBudget)
	assert.Equal(t, 262_500.0, s.WeeklyBudget)
}

func TestComputeSummaryWithoutIncome(t *testing.T) {
	now := time.Date(2024, time.July, 12, 0, 0, 0, 0, time.UTC)
	purchases := []models.PurchaseInstallment{openPurchase(100_000, 0, 6)}

	s := ComputeSummary(purchases, nil, nil, now)

	// Sin ingreso declarado el presupuesto queda negativo y los límites en cero
	assert.Equal(t, int64(-100_000), s.RemainingBudget)
	assert.Zero(t, s.DailyBudget)
	assert.Zero(t, s.WeeklyBudget)
}

func TestComputeSummaryIgnoresClosedPurchases(t *testing.T) {
	now := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	purchases := []models.PurchaseInstallment{
		openPurchase(80_000, 12, 12), // pagada completa
		openPurchase(50_000, 3, 6),
	}
	income := &models.MonthlyIncome{Month: "2024-03", Amount: 500_000}

	s := ComputeSummary(purchases, nil, income, now)

	assert.Equal(t, int64(150_000), s.TotalOutstanding)
	assert.Equal(t, int64(50_000), s.CurrentMonthInstallments, "la compra cerrada no debe cuota este mes")
}

func TestComputeSummaryWeeklyIsSevenTimesDaily(t *testing.T) {
	for day := 1; day <= 28; day++ {
		now := time.Date(2024, time.February, day, 0, 0, 0, 0, time.UTC)
		income := &models.MonthlyIncome{Month: "2024-02", Amount: 777_777}

		s := ComputeSummary(nil, nil, income, now)
		assert.Equal(t, s.DailyBudget*7, s.WeeklyBudget)
	}
}

func TestComputeSummaryLastDayOfMonth(t *testing.T) {
	now := time.Date(2024, time.January, 31, 23, 0, 0, 0, time.UTC)
	income := &models.MonthlyIncome{Month: "2024-01", Amount: 100_000}

	s := ComputeSummary(nil, nil, income, now)

	require.Equal(t, 1, s.RemainingDays)
	assert.Equal(t, 100_000.0, s.DailyBudget)
}

func TestRemainingAmountNeverNegative(t *testing.T) {
	p := openPurchase(150_000, 5, 12)
	assert.Equal(t, int64(1_050_000), p.RemainingAmount())

	p.PaidInstallments = 6
	assert.Equal(t, int64(900_000), p.RemainingAmount())

	p.PaidInstallments = 12
	assert.Zero(t, p.RemainingAmount())
}

func TestOutstandingByCard(t *testing.T) {
	cards := []models.Card{
		{ID: "c1", Name: "Visa", Color: "#1e40af"},
		{ID: "c2", Name: "Falabella", Color: "#16a34a"},
		{ID: "c3", Name: "Sin uso", Color: "#888888"},
	}
	purchases := []models.PurchaseInstallment{
		{CardID: "c1", InstallmentAmount: 10_000, PaidInstallments: 0, TotalInstallments: 3},
		{CardID: "c1", InstallmentAmount: 5_000, PaidInstallments: 1, TotalInstallments: 2},
		{CardID: "c2", InstallmentAmount: 20_000, PaidInstallments: 4, TotalInstallments: 6},
	}

	breakdown := OutstandingByCard(cards, purchases)
	require.Len(t, breakdown, 3)

	assert.Equal(t, int64(35_000), breakdown[0].Outstanding)
	assert.Equal(t, int64(40_000), breakdown[1].Outstanding)
	assert.Zero(t, breakdown[2].Outstanding)
	assert.Equal(t, "#1e40af", breakdown[0].Color)
}

func TestFilterByPerson(t *testing.T) {
	purchases := []models.PurchaseInstallment{
		{ID: "a", PersonID: "p1"},
		{ID: "b", PersonID: "p2"},
		{ID: "c", PersonID: "p1"},
	}

	assert.Len(t, FilterByPerson(purchases, ""), 3)

	filtered := FilterByPerson(purchases, "p1")
	require.Len(t, filtered, 2)
	assert.Equal(t, "a", filtered[0].ID)
	assert.Equal(t, "c", filtered[1].ID)

	assert.Empty(t, FilterByPerson(purchases, "nadie"))
}
