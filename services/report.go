package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cuotacontrol/cuotacontrol-api/models"
	"github.com/cuotacontrol/cuotacontrol-api/utils"
)

// ErrNothingToExport se devuelve cuando la lista filtrada quedó vacía; el
// cliente lo muestra como advertencia, no como error.
var ErrNothingToExport = errors.New("no purchases match the current filters")

// SortKey es la columna por la que se ordena la lista de compras.
type SortKey string

const (
	SortByCardName          SortKey = "cardName"
	SortByDescription       SortKey = "description"
	SortByPersonName        SortKey = "personName"
	SortByInstallmentAmount SortKey = "installmentAmount"
	SortByRemainingAmount   SortKey = "remainingAmount"
	SortByProgress          SortKey = "progress"
	SortByPaymentDeadline   SortKey = "paymentDeadline"
	SortByLastPayment       SortKey = "lastPayment"
)

// ParseSortKey valida una clave venida del query string.
func ParseSortKey(s string) (SortKey, bool) {
	switch SortKey(s) {
	case SortByCardName, SortByDescription, SortByPersonName,
		SortByInstallmentAmount, SortByRemainingAmount, SortByProgress,
		SortByPaymentDeadline, SortByLastPayment:
		return SortKey(s), true
	}
	return "", false
}

// SortState guarda la columna activa y la dirección. Seleccionar la misma
// columna invierte la dirección; cambiar de columna vuelve a ascendente.
type SortState struct {
	Key        SortKey
	Descending bool
}

func (s *SortState) Select(key SortKey) {
	if s.Key == key {
		s.Descending = !s.Descending
		return
	}
	s.Key = key
	s.Descending = false
}

// PurchaseFilter combina con AND; el string vacío es pasada libre.
type PurchaseFilter struct {
	PersonID string
	CardID   string
}

// FilterPurchases aplica los filtros de persona y tarjeta.
func FilterPurchases(purchases []models.PurchaseInstallment, f PurchaseFilter) []models.PurchaseInstallment {
	filtered := make([]models.PurchaseInstallment, 0, len(purchases))
	for _, p := range purchases {
		if f.PersonID != "" && p.PersonID != f.PersonID {
			continue
		}
		if f.CardID != "" && p.CardID != f.CardID {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

func cardName(cards []models.Card, id string) string {
	for _, c := range cards {
		if c.ID == id {
			return c.Name
		}
	}
	return ""
}

func personName(people []models.Person, id string) string {
	for _, p := range people {
		if p.ID == id {
			return p.Name
		}
	}
	return ""
}

func deadlineUnix(p models.PurchaseInstallment) int64 {
	t, err := time.Parse("2006-01-02", p.PaymentDeadline)
	if err != nil {
		return 0
	}
	return t.Unix()
}

// SortPurchases ordena una copia de la lista de forma estable, sin clave
// secundaria: los empates conservan el orden recibido. Las referencias rotas
// a tarjeta/persona ordenan como string vacío.
func SortPurchases(purchases []models.PurchaseInstallment, cards []models.Card, people []models.Person, state SortState) []models.PurchaseInstallment {
	sorted := make([]models.PurchaseInstallment, len(purchases))
	copy(sorted, purchases)

	less := func(a, b models.PurchaseInstallment) bool {
		switch state.Key {
		case SortByCardName:
			return cardName(cards, a.CardID) < cardName(cards, b.CardID)
		case SortByDescription:
			return a.Description < b.Description
		case SortByPersonName:
			return personName(people, a.PersonID) < personName(people, b.PersonID)
		case SortByInstallmentAmount:
			return a.InstallmentAmount < b.InstallmentAmount
		case SortByRemainingAmount:
			return a.RemainingAmount() < b.RemainingAmount()
		case SortByProgress:
			return a.Progress() < b.Progress()
		case SortByPaymentDeadline:
			return deadlineUnix(a) < deadlineUnix(b)
		case SortByLastPayment:
			return a.LastPayment < b.LastPayment
		default:
			return false
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if state.Descending {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})

	return sorted
}

// Report es el texto compartible más los totales que resume.
type Report struct {
	Text            string `json:"text"`
	InProgressCount int    `json:"in_progress_count"`
	InProgressTotal int64  `json:"in_progress_total"`
}

// BuildReport arma el reporte de compras agrupado por tarjeta. Dentro de cada
// grupo van primero las compras en curso (alguna cuota pagada) y después las
// que no han partido. La lista llega ya filtrada; el orden de los grupos es el
// de primera aparición de cada tarjeta.
func BuildReport(purchases []models.PurchaseInstallment, cards []models.Card) (Report, error) {
	if len(purchases) == 0 {
		return Report{}, ErrNothingToExport
	}

	groupOrder := []string{}
	groups := map[string][]models.PurchaseInstallment{}
	for _, p := range purchases {
		if _, seen := groups[p.CardID]; !seen {
			groupOrder = append(groupOrder, p.CardID)
		}
		groups[p.CardID] = append(groups[p.CardID], p)
	}

	var b strings.Builder
	var inProgressCount int
	var inProgressTotal int64

	for i, cardID := range groupOrder {
		if i > 0 {
			b.WriteString("\n")
		}

		name := cardName(cards, cardID)
		if name == "" {
			name = "N/A"
		}
		fmt.Fprintf(&b, "%s:\n", name)

		group := groups[cardID]
		for _, p := range group {
			if p.PaidInstallments > 0 {
				fmt.Fprintf(&b, "%s --> %s --> %d/%d\n",
					utils.FormatCLP(p.InstallmentAmount), p.Description,
					p.PaidInstallments, p.TotalInstallments)
			}
		}
		for _, p := range group {
			if p.PaidInstallments == 0 {
				fmt.Fprintf(&b, "compra %s no salio, %d/%d\n",
					p.Description, p.PaidInstallments, p.TotalInstallments)
			}
		}
	}

	for _, p := range purchases {
		if p.PaidInstallments > 0 {
			inProgressCount++
			inProgressTotal += p.InstallmentAmount
		}
	}

	fmt.Fprintf(&b, "\n%d compras en curso, total %s\n",
		inProgressCount, utils.FormatCLP(inProgressTotal))

	return Report{
		Text:            b.String(),
		InProgressCount: inProgressCount,
		InProgressTotal: inProgressTotal,
	}, nil
}
