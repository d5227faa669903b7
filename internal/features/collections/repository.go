package collections

import (
	"receipthub/internal/storage"

	"github.com/google/uuid"
)

type CollectionRepository struct{}

func (r *CollectionRepository) Create(collection *Collection) error {
	if collection.ID == uuid.Nil {
		collection.ID = uuid.New()
	}

	return storage.GetDb().Create(collection).Error
}

func (r *CollectionRepository) GetByID(collectionID uuid.UUID) (*Collection, error) {
	var collection Collection

	err := storage.GetDb().Where("id = ?", collectionID).First(&collection).Error
	if err != nil {
		return nil, err
	}

	return &collection, nil
}

func (r *CollectionRepository) GetByBusiness(businessID uuid.UUID) ([]*Collection, error) {
	var businessCollections = make([]*Collection, 0)

	err := storage.GetDb().
		Where("business_id = ?", businessID).
		Order("created_at DESC").
		Find(&businessCollections).Error

	return businessCollections, err
}

func (r *CollectionRepository) Update(collection *Collection) error {
	return storage.GetDb().Save(collection).Error
}

func (r *CollectionRepository) Delete(collectionID uuid.UUID) error {
	return storage.GetDb().Where("id = ?", collectionID).Delete(&Collection{}).Error
}
