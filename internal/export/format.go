package export

import (
	"strconv"
	"strings"

	"odeme-takip-backend/internal/models"
)

// FormatTurkishAmount: Tutarı Türkçe sayı biçiminde yazar: binlik ayırıcı
// nokta, ondalık ayırıcı virgül, sondaki sıfırlar atılır
// (1234.5 -> "1.234,5", 100 -> "100").
func FormatTurkishAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	parts := strings.SplitN(s, ".", 2)
	intPart := parts[0]
	frac := strings.TrimRight(parts[1], "0")

	var grouped strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(r)
	}

	out := grouped.String()
	if frac != "" {
		out += "," + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}

// StatusLabel: Durumun ekran karşılığı
func StatusLabel(status models.PaymentStatus) string {
	if status == models.PaymentStatusPaid {
		return "Ödendi"
	}
	return "Ödenmedi"
}

var turkishASCII = map[rune]string{
	'ç': "c", 'Ç': "C",
	'ğ': "g", 'Ğ': "G",
	'ı': "i", 'İ': "I",
	'ö': "o", 'Ö': "O",
	'ş': "s", 'Ş': "S",
	'ü': "u", 'Ü': "U",
}

// TransliterateTurkish: Türkçe karakterleri ASCII karşılıklarına çevirir.
// PDF çıktısında temel fontlar Türkçe glifleri içermediği için kullanılır.
func TransliterateTurkish(s string) string {
	var result strings.Builder
	for _, r := range s {
		if replacement, ok := turkishASCII[r]; ok {
			result.WriteString(replacement)
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}
