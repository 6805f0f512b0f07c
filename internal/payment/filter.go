package payment

import (
	"strconv"
	"strings"
	"time"

	"odeme-takip-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Filter: Ödeme listesi üzerindeki görünüm kriterleri. Boş kriter kısıt
// getirmez; dolu kriterler VE ile birleşir.
type Filter struct {
	Month          string // "2006-01" biçiminde yıl+ay
	CheckNumber    string // alt dize, büyük/küçük harf duyarsız
	Banks          []string
	Companies      []string
	BusinessGroups []string
	Description    string // alt dize, büyük/küçük harf duyarsız
	Amount         string // tutarın ondalık yazımında alt dize araması
	Status         models.PaymentStatus
	IncludePaid    bool // false ise paid kayıtlar diğer kriterlerden önce elenir
}

// FilterFromQuery: Query parametrelerinden filtre kurar. Çoklu seçim alanları
// virgülle ayrılır (bank=Halk Bankası,Ziraat Bankası).
func FilterFromQuery(c *fiber.Ctx) Filter {
	return Filter{
		Month:          strings.TrimSpace(c.Query("month")),
		CheckNumber:    strings.TrimSpace(c.Query("check_number")),
		Banks:          splitCSV(c.Query("bank")),
		Companies:      splitCSV(c.Query("company")),
		BusinessGroups: splitCSV(c.Query("business_group")),
		Description:    strings.TrimSpace(c.Query("description")),
		Amount:         strings.TrimSpace(c.Query("amount")),
		Status:         models.PaymentStatus(strings.TrimSpace(c.Query("status"))),
		IncludePaid:    c.Query("include_paid", "true") != "false",
	}
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Apply: Filtreyi uygular, giriş sırası korunur. Kriterler bağımsızdır,
// uygulama sırası sonucu değiştirmez.
func (f Filter) Apply(payments []models.Payment) []models.Payment {
	var monthFilter *time.Time
	if f.Month != "" {
		if t, err := time.Parse("2006-01", f.Month); err == nil {
			monthFilter = &t
		}
	}

	out := make([]models.Payment, 0, len(payments))
	for _, p := range payments {
		if !f.IncludePaid && p.Status == models.PaymentStatusPaid {
			continue
		}
		if monthFilter != nil &&
			(p.DueDate.Year() != monthFilter.Year() || p.DueDate.Month() != monthFilter.Month()) {
			continue
		}
		if f.CheckNumber != "" && !containsFold(p.CheckNumber, f.CheckNumber) {
			continue
		}
		if len(f.Banks) > 0 && !containsString(f.Banks, p.Bank) {
			continue
		}
		if len(f.Companies) > 0 && !containsString(f.Companies, p.Company) {
			continue
		}
		if len(f.BusinessGroups) > 0 && !containsString(f.BusinessGroups, p.BusinessGroup) {
			continue
		}
		if f.Description != "" && !containsFold(p.Description, f.Description) {
			continue
		}
		if f.Amount != "" && !strings.Contains(amountString(p.Amount), f.Amount) {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		out = append(out, p)
	}
	return out
}

// amountString: Tutarın alt dize aramasında kullanılan ondalık yazımı
// (100 -> "100", 100.5 -> "100.5").
func amountString(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func containsString(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
