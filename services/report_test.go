package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuotacontrol/cuotacontrol-api/models"
)

var (
	testCards = []models.Card{
		{ID: "visa", Name: "Visa"},
		{ID: "fala", Name: "Falabella"},
	}
	testPeople = []models.Person{
		{ID: "p1", Name: "Ana"},
		{ID: "p2", Name: "Beto"},
	}
)

func TestFilterPurchasesCombinesWithAnd(t *testing.T) {
	purchases := []models.PurchaseInstallment{
		{ID: "a", PersonID: "p1", CardID: "visa"},
		{ID: "b", PersonID: "p1", CardID: "fala"},
		{ID: "c", PersonID: "p2", CardID: "visa"},
	}

	tests := []struct {
		name   string
		filter PurchaseFilter
		want   []string
	}{
		{"sin filtros pasa todo", PurchaseFilter{}, []string{"a", "b", "c"}},
		{"solo persona", PurchaseFilter{PersonID: "p1"}, []string{"a", "b"}},
		{"solo tarjeta", PurchaseFilter{CardID: "visa"}, []string{"a", "c"}},
		{"persona y tarjeta", PurchaseFilter{PersonID: "p1", CardID: "visa"}, []string{"a"}},
		{"sin coincidencias", PurchaseFilter{PersonID: "p2", CardID: "fala"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterPurchases(purchases, tt.filter)
			ids := make([]string, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestSortStateToggle(t *testing.T) {
	var s SortState

	s.Select(SortByProgress)
	assert.Equal(t, SortByProgress, s.Key)
	assert.False(t, s.Descending)

	s.Select(SortByProgress)
	assert.True(t, s.Descending, "repetir la columna invierte la dirección")

	s.Select(SortByProgress)
	assert.False(t, s.Descending, "el tercer click vuelve a ascendente")

	s.Select(SortByCardName)
	assert.Equal(t, SortByCardName, s.Key)
	assert.False(t, s.Descending, "cambiar de columna resetea a ascendente")
}

func TestSortPurchasesByProgress(t *testing.T) {
	purchases := []models.PurchaseInstallment{
		{ID: "a", PaidInstallments: 6, TotalInstallments: 12}, // 0.5
		{ID: "b", PaidInstallments: 1, TotalInstallments: 10}, // 0.1
		{ID: "c", PaidInstallments: 9, TotalInstallments: 9},  // 1.0
	}

	asc := SortPurchases(purchases, testCards, testPeople, SortState{Key: SortByProgress})
	assert.Equal(t, []string{"b", "a", "c"}, idsOf(asc))

	desc := SortPurchases(purchases, testCards, testPeople, SortState{Key: SortByProgress, Descending: true})
	assert.Equal(t, []string{"c", "a", "b"}, idsOf(desc))

	// El original no se toca
	assert.Equal(t, []string{"a", "b", "c"}, idsOf(purchases))
}

func TestSortPurchasesStableOnTies(t *testing.T) {
	purchases := []models.PurchaseInstallment{
		{ID: "x", InstallmentAmount: 100},
		{ID: "y", InstallmentAmount: 100},
		{ID: "z", InstallmentAmount: 50},
	}

	sorted := SortPurchases(purchases, testCards, testPeople, SortState{Key: SortByInstallmentAmount})
	assert.Equal(t, []string{"z", "x", "y"}, idsOf(sorted), "los empates conservan el orden recibido")
}

func TestSortPurchasesUnresolvedReferences(t *testing.T) {
	purchases := []models.PurchaseInstallment{
		{ID: "known", CardID: "visa"},
		{ID: "ghost", CardID: "tarjeta-borrada"},
	}

	sorted := SortPurchases(purchases, testCards, testPeople, SortState{Key: SortByCardName})
	// La referencia rota ordena como string vacío, o sea primero en ascendente
	assert.Equal(t, []string{"ghost", "known"}, idsOf(sorted))
}

func TestSortPurchasesByDeadline(t *testing.T) {
	purchases := []models.PurchaseInstallment{
		{ID: "late", PaymentDeadline: "2025-12-05"},
		{ID: "soon", PaymentDeadline: "2025-01-20"},
		{ID: "mid", PaymentDeadline: "2025-06-15"},
	}

	sorted := SortPurchases(purchases, testCards, testPeople, SortState{Key: SortByPaymentDeadline})
	assert.Equal(t, []string{"soon", "mid", "late"}, idsOf(sorted))
}

func TestBuildReportGroupsByCard(t *testing.T) {
	purchases := []models.PurchaseInstallment{
		{Description: "tele", CardID: "visa", InstallmentAmount: 450_000, PaidInstallments: 5, TotalInstallments: 12},
		{Description: "zapatillas", CardID: "fala", InstallmentAmount: 30_000, PaidInstallments: 0, TotalInstallments: 6},
		{Description: "cafetera", CardID: "visa", InstallmentAmount: 25_000, PaidInstallments: 0, TotalInstallments: 3},
	}

	report, err := BuildReport(purchases, testCards)
	require.NoError(t, err)

	expected := "Visa:\n" +
		"$450.000 --> tele --> 5/12\n" +
		"compra cafetera no salio, 0/3\n" +
		"\n" +
		"Falabella:\n" +
		"compra zapatillas no salio, 0/6\n" +
		"\n" +
		"1 compras en curso, total $450.000\n"
	assert.Equal(t, expected, report.Text)
	assert.Equal(t, 1, report.InProgressCount)
	assert.Equal(t, int64(450_000), report.InProgressTotal)
}

func TestBuildReportUnknownCardRendersNA(t *testing.T) {
	purchases := []models.PurchaseInstallment{
		{Description: "algo", CardID: "borrada", InstallmentAmount: 10_000, PaidInstallments: 1, TotalInstallments: 2},
	}

	report, err := BuildReport(purchases, testCards)
	require.NoError(t, err)
	assert.Contains(t, report.Text, "N/A:\n")
}

func TestBuildReportEmptyList(t *testing.T) {
	_, err := BuildReport(nil, testCards)
	assert.ErrorIs(t, err, ErrNothingToExport)

	_, err = BuildReport([]models.PurchaseInstallment{}, testCards)
	assert.ErrorIs(t, err, ErrNothingToExport)
}

func TestParseSortKey(t *testing.T) {
	for _, valid := range []string{"cardName", "description", "personName",
		"installmentAmount", "remainingAmount", "progress", "paymentDeadline", "lastPayment"} {
		key, ok := ParseSortKey(valid)
		assert.True(t, ok, valid)
		assert.Equal(t, SortKey(valid), key)
	}

	_, ok := ParseSortKey("precio")
	assert.False(t, ok)
}

func idsOf(purchases []models.PurchaseInstallment) []string {
	ids := make([]string, 0, len(purchases))
	for _, p := range purchases {
		ids = append(ids, p.ID)
	}
	return ids
}
