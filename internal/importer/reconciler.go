package importer

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"odeme-takip-backend/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Excel içe aktarma için beklenen sütun sırası
var expectedColumns = []string{
	"Vade Tarihi",
	"Çek No",
	"Banka",
	"Firma",
	"İş Grubu",
	"Açıklama",
	"Tutar",
}

var (
	ErrEmptyDataset = errors.New("Excel dosyasında veri bulunamadı")
	ErrNoValidRows  = errors.New("Geçerli ödeme verisi bulunamadı")
)

// SchemaMismatchError: Başlık satırı beklenen sütun sırasıyla eşleşmiyor
type SchemaMismatchError struct {
	Headers []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("Excel dosyası beklenen sütun sırasına sahip olmalıdır: %s",
		strings.Join(expectedColumns, ", "))
}

// Draft: Henüz id atanmamış, pending durumundaki ödeme taslağı
type Draft struct {
	DueDate       time.Time `json:"dueDate"`
	CheckNumber   string    `json:"checkNumber"`
	Bank          string    `json:"bank"`
	Company       string    `json:"company"`
	BusinessGroup string    `json:"businessGroup"`
	Description   string    `json:"description"`
	Amount        float64   `json:"amount"`
}

// ImportResult: Kabul edilen taslaklar ve vadesi geçmiş satır bilgisi.
// PastDueIndices, Drafts dizisine göre indekslidir.
type ImportResult struct {
	Drafts         []Draft
	PastDueIndices []int
	PastDueTotal   float64
	TotalAmount    float64
}

// ParseTabularImport: Ham hücre satırlarını doğrulanmış ödeme taslaklarına çevirir.
// İlk satır başlıktır ve sütun sırası büyük/küçük harf duyarsız olarak birebir
// eşleşmek zorundadır. Çek no, banka, firma veya iş grubu boş olan ya da tutarı
// pozitif olmayan satırlar sessizce atlanır. Vadesi today'den (gün bazında)
// önce olan satırlar vadesi geçmiş olarak işaretlenir.
func ParseTabularImport(rows [][]string, today time.Time) (*ImportResult, error) {
	if len(rows) < 2 {
		return nil, ErrEmptyDataset
	}

	headers := rows[0]
	for i, col := range expectedColumns {
		if i >= len(headers) || !strings.EqualFold(strings.TrimSpace(headers[i]), col) {
			return nil, &SchemaMismatchError{Headers: headers}
		}
	}

	// Hücre tarihleri UTC üretilir; karşılaştırma gün bazında doğru olsun
	// diye today de UTC gün başlangıcına çekilir.
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	result := &ImportResult{}
	pastDueTotal := decimal.Zero
	total := decimal.Zero

	for _, row := range rows[1:] {
		if len(row) < len(expectedColumns) {
			continue
		}

		draft := Draft{
			DueDate:       parseCellDate(row[0], today),
			CheckNumber:   strings.TrimSpace(row[1]),
			Bank:          strings.TrimSpace(row[2]),
			Company:       strings.TrimSpace(row[3]),
			BusinessGroup: strings.TrimSpace(row[4]),
			Description:   strings.TrimSpace(row[5]),
			Amount:        parseCellAmount(row[6]),
		}

		if draft.CheckNumber == "" || draft.Bank == "" || draft.Company == "" ||
			draft.BusinessGroup == "" || draft.Amount <= 0 {
			continue
		}

		amount := decimal.NewFromFloat(draft.Amount)
		if draft.DueDate.Before(today) {
			result.PastDueIndices = append(result.PastDueIndices, len(result.Drafts))
			pastDueTotal = pastDueTotal.Add(amount)
		}
		total = total.Add(amount)

		result.Drafts = append(result.Drafts, draft)
	}

	if len(result.Drafts) == 0 {
		return nil, ErrNoValidRows
	}

	result.PastDueTotal, _ = pastDueTotal.Float64()
	result.TotalAmount, _ = total.Float64()
	return result, nil
}

// ReconcilePastDue: Her taslağa yeni bir id atar. autoMarkPaid true ise vadesi
// geçmiş indekslerdeki kayıtlar paid, diğerleri pending olur. Saf dönüşümdür,
// store'a ekleme çağırana aittir.
func ReconcilePastDue(drafts []Draft, pastDueIndices []int, autoMarkPaid bool) []models.Payment {
	pastDue := make(map[int]bool, len(pastDueIndices))
	for _, idx := range pastDueIndices {
		pastDue[idx] = true
	}

	payments := make([]models.Payment, 0, len(drafts))
	for i, d := range drafts {
		status := models.PaymentStatusPending
		if autoMarkPaid && pastDue[i] {
			status = models.PaymentStatusPaid
		}
		payments = append(payments, models.Payment{
			ID:            uuid.NewString(),
			DueDate:       d.DueDate,
			CheckNumber:   d.CheckNumber,
			Bank:          d.Bank,
			Company:       d.Company,
			BusinessGroup: d.BusinessGroup,
			Description:   d.Description,
			Amount:        d.Amount,
			Status:        status,
		})
	}
	return payments
}

// Elektronik tablo seri tarihlerinin sıfır noktası
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

var dateLayouts = []string{
	"02.01.2006", // gün.ay.yıl
	"2006-01-02", // yıl-ay-gün
	"01/02/2006", // ay/gün/yıl
}

// parseCellDate: Tarih hücresini sırayla bilinen metin biçimleri ve sayısal
// seri tarih olarak dener; hiçbiri tutmazsa fallback döner. Çözümlenemeyen
// tarihin satırı düşürmek yerine bugüne çekilmesi bilinçli bir esneklik.
func parseCellDate(raw string, fallback time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return startOfDay(t)
		}
	}

	// Seri tarih: 1899-12-30'dan itibaren gün sayısı
	if serial, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64); err == nil && serial >= 1 {
		return excelEpoch.AddDate(0, 0, int(serial))
	}

	return fallback
}

var amountJunkRe = regexp.MustCompile(`[^0-9,.\-]`)

// parseCellAmount: Tutar hücresini ondalık sayıya çevirir. Rakam, nokta, virgül
// ve eksi dışındaki karakterler atılır; virgül içeren değerler Türkçe sayı
// biçimi (binlik nokta, ondalık virgül) kabul edilir. Çevrilemeyen değer 0
// döner ve satır eleme kuralına takılır.
func parseCellAmount(raw string) float64 {
	s := amountJunkRe.ReplaceAllString(strings.TrimSpace(raw), "")
	if s == "" {
		return 0
	}

	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	v, _ := d.Float64()
	return v
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
