package models

import "time"

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending" // ödenmedi
	PaymentStatusPaid    PaymentStatus = "paid"    // ödendi
)

// Payment: Takip edilen çek/ödeme kaydı
type Payment struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`
	// Ekleniş sırasını korumak için; listeler bu alana göre sıralanır.
	Seq           int64         `gorm:"autoIncrement;uniqueIndex" json:"-"`
	DueDate       time.Time     `gorm:"index;not null" json:"dueDate"` // vade tarihi (saat bilgisi anlamsız)
	CheckNumber   string        `gorm:"size:50;not null" json:"checkNumber"`
	Bank          string        `gorm:"size:100;not null" json:"bank"`
	Company       string        `gorm:"size:100;not null" json:"company"`
	BusinessGroup string        `gorm:"size:100;not null" json:"businessGroup"`
	Description   string        `gorm:"size:255" json:"description"`
	Amount        float64       `gorm:"not null" json:"amount"`
	Status        PaymentStatus `gorm:"size:10;not null;default:pending" json:"status"`
	CreatedAt     time.Time     `json:"-"`
	UpdatedAt     time.Time     `json:"-"`
}
