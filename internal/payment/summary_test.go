package payment

import (
	"testing"
	"time"

	"odeme-takip-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupTotals_SumsPerGroup(t *testing.T) {
	payments := []models.Payment{
		{Bank: "Halk Bankası", Amount: 100},
		{Bank: "Ziraat Bankası", Amount: 500},
		{Bank: "Halk Bankası", Amount: 250},
	}

	totals := GroupTotals(payments, byBank)
	require.Len(t, totals, 2)
	assert.Equal(t, GroupTotal{Key: "Ziraat Bankası", Amount: 500}, totals[0])
	assert.Equal(t, GroupTotal{Key: "Halk Bankası", Amount: 350}, totals[1])
}

func TestGroupTotals_DescendingWithStableTies(t *testing.T) {
	payments := []models.Payment{
		{Bank: "A", Amount: 100},
		{Bank: "B", Amount: 100},
		{Bank: "C", Amount: 300},
	}

	totals := GroupTotals(payments, byBank)
	require.Len(t, totals, 3)
	assert.Equal(t, "C", totals[0].Key)
	// Eşit toplamda karşılaşma sırası korunur
	assert.Equal(t, "A", totals[1].Key)
	assert.Equal(t, "B", totals[2].Key)
}

func TestGroupTotals_SumEqualsTotal(t *testing.T) {
	// 0.1'li tutarlarda float toplama sapar, decimal toplamada grup
	// toplamlarının toplamı genel toplama birebir eşittir
	payments := []models.Payment{
		{Bank: "A", Amount: 0.1},
		{Bank: "A", Amount: 0.2},
		{Bank: "B", Amount: 0.3},
		{Bank: "B", Amount: 0.1},
		{Bank: "C", Amount: 0.1},
	}

	totals := GroupTotals(payments, byBank)
	groupSum := 0.0
	for _, g := range totals {
		groupSum += g.Amount
	}
	assert.Equal(t, 0.8, SumAmounts(payments))
	assert.Equal(t, GroupTotal{Key: "B", Amount: 0.4}, totals[0])
	assert.Equal(t, GroupTotal{Key: "A", Amount: 0.3}, totals[1])
	assert.InDelta(t, 0.8, groupSum, 1e-12)
}

func TestGroupTotals_Empty(t *testing.T) {
	totals := GroupTotals(nil, byBank)
	assert.Empty(t, totals)
}

func TestSumAmounts(t *testing.T) {
	assert.Equal(t, 0.0, SumAmounts(nil))
	assert.Equal(t, 0.3, SumAmounts([]models.Payment{{Amount: 0.1}, {Amount: 0.2}}))
}

func TestBuildSummary(t *testing.T) {
	now := time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC)
	payments := []models.Payment{
		{Bank: "Halk Bankası", Amount: 1000, Status: models.PaymentStatusPending, DueDate: date(2024, 3, 15)},
		{Bank: "Halk Bankası", Amount: 500, Status: models.PaymentStatusPaid, DueDate: date(2024, 3, 20)},
		{Bank: "Ziraat Bankası", Amount: 2000, Status: models.PaymentStatusPending, DueDate: date(2024, 4, 1)},
	}

	s := BuildSummary(payments, now)

	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 3500.0, s.All.Total)
	assert.Equal(t, 500.0, s.Paid.Total)
	assert.Equal(t, 3000.0, s.Remaining.Total)

	assert.Equal(t, 1500.0, s.CurrentMonth.Total)
	assert.Equal(t, 500.0, s.CurrentMonth.Paid)
	assert.Equal(t, 1000.0, s.CurrentMonth.Remaining)

	require.Len(t, s.CurrentMonth.Banks, 1)
	assert.Equal(t, "Halk Bankası", s.CurrentMonth.Banks[0].Key)
	assert.Equal(t, 1500.0, s.CurrentMonth.Banks[0].Amount)

	require.Len(t, s.All.Banks, 2)
	assert.Equal(t, "Ziraat Bankası", s.All.Banks[0].Key)
}

func TestBuildSummary_Empty(t *testing.T) {
	s := BuildSummary(nil, time.Now())
	assert.Equal(t, 0, s.Count)
	assert.Equal(t, 0.0, s.All.Total)
	assert.Empty(t, s.All.Banks)
	assert.Equal(t, 0.0, s.CurrentMonth.Remaining)
}
