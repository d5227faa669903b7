package receipts

import (
	"receipthub/internal/storage"

	"github.com/google/uuid"
)

type ReceiptRepository struct{}

func (r *ReceiptRepository) Create(receipt *Receipt) error {
	if receipt.ID == uuid.Nil {
		receipt.ID = uuid.New()
	}

	return storage.GetDb().Create(receipt).Error
}

func (r *ReceiptRepository) GetByID(receiptID uuid.UUID) (*Receipt, error) {
	var receipt Receipt

	err := storage.GetDb().Where("id = ?", receiptID).First(&receipt).Error
	if err != nil {
		return nil, err
	}

	return &receipt, nil
}

func (r *ReceiptRepository) GetByBusiness(
	businessID uuid.UUID,
	collectionID *uuid.UUID,
	limit, offset int,
) ([]*Receipt, error) {
	var businessReceipts = make([]*Receipt, 0)

	query := storage.GetDb().Where("business_id = ?", businessID)

	if collectionID != nil {
		query = query.Where("collection_id = ?", *collectionID)
	}

	err := query.
		Order("receipt_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&businessReceipts).Error

	return businessReceipts, err
}

func (r *ReceiptRepository) Update(receipt *Receipt) error {
	return storage.GetDb().Save(receipt).Error
}

func (r *ReceiptRepository) Delete(receiptID uuid.UUID) error {
	return storage.GetDb().Where("id = ?", receiptID).Delete(&Receipt{}).Error
}
