package receipts

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_ReceiptStatus_Validity(t *testing.T) {
	assert.True(t, ReceiptStatusPending.IsValid())
	assert.True(t, ReceiptStatusApproved.IsValid())
	assert.True(t, ReceiptStatusRejected.IsValid())
	assert.False(t, ReceiptStatus("DRAFT").IsValid())
	assert.False(t, ReceiptStatus("approved").IsValid())
}

func Test_Receipt_Snapshot_IncludesCollectionOnlyWhenSet(t *testing.T) {
	receipt := &Receipt{
		Merchant:    "Cafe Milano",
		AmountCents: 1250,
		Currency:    "EUR",
		ReceiptDate: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Status:      ReceiptStatusPending,
	}

	snapshot := receipt.Snapshot()
	assert.Equal(t, "Cafe Milano", snapshot["merchant"])
	assert.Equal(t, int64(1250), snapshot["amountCents"])
	assert.NotContains(t, snapshot, "collectionId")

	collectionID := uuid.New()
	receipt.CollectionID = &collectionID
	assert.Equal(t, collectionID.String(), receipt.Snapshot()["collectionId"])
}
