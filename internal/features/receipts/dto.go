package receipts

import (
	"time"

	"github.com/google/uuid"
)

type CreateReceiptRequestDTO struct {
	CollectionID *uuid.UUID `json:"collectionId"`
	Merchant     string     `json:"merchant"    binding:"required,min=1,max=300"`
	AmountCents  int64      `json:"amountCents" binding:"required,gt=0"`
	Currency     string     `json:"currency"    binding:"required,len=3"`
	ReceiptDate  time.Time  `json:"receiptDate" binding:"required"`
	Notes        string     `json:"notes"       binding:"max=5000"`
}

type UpdateReceiptRequestDTO struct {
	CollectionID *uuid.UUID `json:"collectionId"`
	Merchant     string     `json:"merchant"    binding:"required,min=1,max=300"`
	AmountCents  int64      `json:"amountCents" binding:"required,gt=0"`
	Currency     string     `json:"currency"    binding:"required,len=3"`
	ReceiptDate  time.Time  `json:"receiptDate" binding:"required"`
	Notes        string     `json:"notes"       binding:"max=5000"`
}

type ChangeReceiptStatusRequestDTO struct {
	Status ReceiptStatus `json:"status" binding:"required"`
}

type ListReceiptsRequestDTO struct {
	CollectionID *uuid.UUID `form:"collectionId"`
	Limit        int        `form:"limit"`
	Offset       int        `form:"offset"`
}

type ListReceiptsResponseDTO struct {
	Receipts []*Receipt `json:"receipts"`
	Limit    int        `json:"limit"`
	Offset   int        `json:"offset"`
}
