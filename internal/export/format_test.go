package export

import (
	"testing"

	"odeme-takip-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestFormatTurkishAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{100, "100"},
		{1234.5, "1.234,5"},
		{1234.56, "1.234,56"},
		{1000000, "1.000.000"},
		{0.25, "0,25"},
		{0, "0"},
		{-2500.75, "-2.500,75"},
		{999, "999"},
		{1000, "1.000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatTurkishAmount(tt.in), "in=%v", tt.in)
	}
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Ödendi", StatusLabel(models.PaymentStatusPaid))
	assert.Equal(t, "Ödenmedi", StatusLabel(models.PaymentStatusPending))
}

func TestTransliterateTurkish(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Halk Bankası", "Halk Bankasi"},
		{"İş Grubu", "Is Grubu"},
		{"ÖDEME TAKİP ÇİZELGESİ", "ODEME TAKIP CIZELGESI"},
		{"şçğüöı ŞÇĞÜÖİ", "scguoi SCGUOI"},
		{"plain ascii", "plain ascii"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TransliterateTurkish(tt.in))
	}
}
