package receipts

import (
	"time"

	"github.com/google/uuid"
)

type ReceiptStatus string

const (
	ReceiptStatusPending  ReceiptStatus = "PENDING"
	ReceiptStatusApproved ReceiptStatus = "APPROVED"
	ReceiptStatusRejected ReceiptStatus = "REJECTED"
)

func (s ReceiptStatus) IsValid() bool {
	switch s {
	case ReceiptStatusPending, ReceiptStatusApproved, ReceiptStatusRejected:
		return true
	default:
		return false
	}
}

type Receipt struct {
	ID           uuid.UUID     `json:"id"           gorm:"column:id"`
	BusinessID   uuid.UUID     `json:"businessId"   gorm:"column:business_id"`
	CollectionID *uuid.UUID    `json:"collectionId" gorm:"column:collection_id"`
	Merchant     string        `json:"merchant"     gorm:"column:merchant"`
	AmountCents  int64         `json:"amountCents"  gorm:"column:amount_cents"`
	Currency     string        `json:"currency"     gorm:"column:currency"`
	ReceiptDate  time.Time     `json:"receiptDate"  gorm:"column:receipt_date"`
	Status       ReceiptStatus `json:"status"       gorm:"column:status"`
	Notes        string        `json:"notes"        gorm:"column:notes"`
	CreatedBy    uuid.UUID     `json:"createdBy"    gorm:"column:created_by"`
	CreatedAt    time.Time     `json:"createdAt"    gorm:"column:created_at"`
	UpdatedAt    time.Time     `json:"updatedAt"    gorm:"column:updated_at"`
}

func (Receipt) TableName() string {
	return "receipts"
}

func (r *Receipt) Snapshot() map[string]any {
	snapshot := map[string]any{
		"merchant":    r.Merchant,
		"amountCents": r.AmountCents,
		"currency":    r.Currency,
		"receiptDate": r.ReceiptDate.Format(time.RFC3339),
		"status":      string(r.Status),
		"notes":       r.Notes,
	}

	if r.CollectionID != nil {
		snapshot["collectionId"] = r.CollectionID.String()
	}

	return snapshot
}
