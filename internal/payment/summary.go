package payment

import (
	"sort"
	"time"

	"odeme-takip-backend/internal/models"

	"github.com/shopspring/decimal"
)

// GroupTotal: Tek bir grubun toplamı (özette banka bazında kullanılır)
type GroupTotal struct {
	Key    string  `json:"bank"`
	Amount float64 `json:"amount"`
}

// GroupTotals: Ödemeleri keyFn sonucuna göre bölümleyip grup toplamlarını
// azalan toplam sırasıyla döndürür; eşit toplamlar karşılaşma sırasını korur.
// Toplamlar decimal ile hesaplanır, grup toplamlarının toplamı girdinin
// toplamına birebir eşittir.
func GroupTotals(payments []models.Payment, keyFn func(models.Payment) string) []GroupTotal {
	sums := make(map[string]decimal.Decimal)
	order := make([]string, 0)

	for _, p := range payments {
		key := keyFn(p)
		if _, seen := sums[key]; !seen {
			order = append(order, key)
		}
		sums[key] = sums[key].Add(decimal.NewFromFloat(p.Amount))
	}

	totals := make([]GroupTotal, 0, len(order))
	for _, key := range order {
		amount, _ := sums[key].Float64()
		totals = append(totals, GroupTotal{Key: key, Amount: amount})
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Amount > totals[j].Amount
	})
	return totals
}

// SumAmounts: decimal toplamayla tutarların toplamı
func SumAmounts(payments []models.Payment) float64 {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(decimal.NewFromFloat(p.Amount))
	}
	v, _ := total.Float64()
	return v
}

type SummaryBlock struct {
	Total float64      `json:"total"`
	Banks []GroupTotal `json:"banks"`
}

type MonthBlock struct {
	Total     float64      `json:"total"`
	Paid      float64      `json:"paid"`
	Remaining float64      `json:"remaining"`
	Banks     []GroupTotal `json:"banks"`
}

type Summary struct {
	Count        int          `json:"count"`
	All          SummaryBlock `json:"all"`
	Paid         SummaryBlock `json:"paid"`
	Remaining    SummaryBlock `json:"remaining"`
	CurrentMonth MonthBlock   `json:"current_month"`
}

func byBank(p models.Payment) string { return p.Bank }

func withStatus(payments []models.Payment, status models.PaymentStatus) []models.Payment {
	out := make([]models.Payment, 0, len(payments))
	for _, p := range payments {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out
}

func inMonth(payments []models.Payment, year int, month time.Month) []models.Payment {
	out := make([]models.Payment, 0, len(payments))
	for _, p := range payments {
		if p.DueDate.Year() == year && p.DueDate.Month() == month {
			out = append(out, p)
		}
	}
	return out
}

// BuildSummary: Özet kartlarının verisi: genel, ödenen, kalan ve içinde
// bulunulan ay blokları, her biri banka bazında gruplanmış.
func BuildSummary(payments []models.Payment, now time.Time) Summary {
	paid := withStatus(payments, models.PaymentStatusPaid)
	pending := withStatus(payments, models.PaymentStatusPending)
	currentMonth := inMonth(payments, now.Year(), now.Month())
	currentMonthPaid := withStatus(currentMonth, models.PaymentStatusPaid)

	monthTotal := SumAmounts(currentMonth)
	monthPaid := SumAmounts(currentMonthPaid)

	return Summary{
		Count: len(payments),
		All: SummaryBlock{
			Total: SumAmounts(payments),
			Banks: GroupTotals(payments, byBank),
		},
		Paid: SummaryBlock{
			Total: SumAmounts(paid),
			Banks: GroupTotals(paid, byBank),
		},
		Remaining: SummaryBlock{
			Total: SumAmounts(pending),
			Banks: GroupTotals(pending, byBank),
		},
		CurrentMonth: MonthBlock{
			Total:     monthTotal,
			Paid:      monthPaid,
			Remaining: monthTotal - monthPaid,
			Banks:     GroupTotals(currentMonth, byBank),
		},
	}
}
