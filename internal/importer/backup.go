package importer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"odeme-takip-backend/internal/models"

	"github.com/shopspring/decimal"
)

var ErrNotAnArray = errors.New("Geçersiz yedek dosyası formatı")

// FieldProblem: Yedek dosyasındaki tek bir alan hatası
type FieldProblem struct {
	Index  int    `json:"index"` // kayıt sırası (0 tabanlı)
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// RecordValidationError: Yedek kayıtlarındaki tüm alan hatalarını birden taşır;
// ilk hatada durmak yerine hepsi raporlanır.
type RecordValidationError struct {
	Problems []FieldProblem
}

func (e *RecordValidationError) Error() string {
	parts := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		parts = append(parts, fmt.Sprintf("kayıt %d: %s %s", p.Index+1, p.Field, p.Reason))
	}
	return "Yedek dosyası eksik veya hatalı veri içeriyor: " + strings.Join(parts, "; ")
}

var backupDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02",
}

// ParseBackupSnapshot: Yedek dosyasının içeriğini doğrulayıp ödeme kayıtlarına
// çevirir. En üst seviye bir dizi olmak zorundadır; her kayıtta id, dueDate,
// checkNumber, bank, company, businessGroup dolu, amount sayısal ve status
// paid|pending olmalıdır. id'ler olduğu gibi korunur, birebir geri yükleme
// bu sayede mümkün olur.
func ParseBackupSnapshot(raw []byte) ([]models.Payment, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var top any
	if err := dec.Decode(&top); err != nil {
		return nil, ErrNotAnArray
	}

	arr, ok := top.([]any)
	if !ok {
		return nil, ErrNotAnArray
	}

	var problems []FieldProblem
	payments := make([]models.Payment, 0, len(arr))

	for i, el := range arr {
		record, ok := el.(map[string]any)
		if !ok {
			problems = append(problems, FieldProblem{Index: i, Field: "kayıt", Reason: "nesne değil"})
			continue
		}

		p := models.Payment{}

		p.ID = requireString(record, "id", i, &problems)
		p.CheckNumber = requireString(record, "checkNumber", i, &problems)
		p.Bank = requireString(record, "bank", i, &problems)
		p.Company = requireString(record, "company", i, &problems)
		p.BusinessGroup = requireString(record, "businessGroup", i, &problems)

		// description zorunlu değil, varsa olduğu gibi geçer
		if desc, ok := record["description"].(string); ok {
			p.Description = desc
		}

		if rawDate := requireString(record, "dueDate", i, &problems); rawDate != "" {
			parsed := false
			for _, layout := range backupDateLayouts {
				if t, err := time.Parse(layout, rawDate); err == nil {
					p.DueDate = t
					parsed = true
					break
				}
			}
			if !parsed {
				problems = append(problems, FieldProblem{Index: i, Field: "dueDate", Reason: "tarih çözümlenemedi"})
			}
		}

		switch num := record["amount"].(type) {
		case json.Number:
			d, err := decimal.NewFromString(num.String())
			if err != nil {
				problems = append(problems, FieldProblem{Index: i, Field: "amount", Reason: "sayı olmalı"})
			} else {
				p.Amount, _ = d.Float64()
			}
		default:
			problems = append(problems, FieldProblem{Index: i, Field: "amount", Reason: "sayı olmalı"})
		}

		status, _ := record["status"].(string)
		switch models.PaymentStatus(status) {
		case models.PaymentStatusPaid, models.PaymentStatusPending:
			p.Status = models.PaymentStatus(status)
		default:
			problems = append(problems, FieldProblem{Index: i, Field: "status", Reason: "paid veya pending olmalı"})
		}

		payments = append(payments, p)
	}

	if len(problems) > 0 {
		return nil, &RecordValidationError{Problems: problems}
	}
	return payments, nil
}

func requireString(record map[string]any, field string, index int, problems *[]FieldProblem) string {
	v, ok := record[field]
	if !ok || v == nil {
		*problems = append(*problems, FieldProblem{Index: index, Field: field, Reason: "eksik"})
		return ""
	}
	s, ok := v.(string)
	if !ok || s == "" {
		*problems = append(*problems, FieldProblem{Index: index, Field: field, Reason: "boş olamaz"})
		return ""
	}
	return s
}

// EncodeBackupSnapshot: Ödeme listesini yedek dosyası biçimine çevirir.
// ParseBackupSnapshot bunun sol tersidir.
func EncodeBackupSnapshot(payments []models.Payment) ([]byte, error) {
	return json.MarshalIndent(payments, "", "  ")
}
