package businesses_repositories

import (
	"time"

	businesses_models "receipthub/internal/features/businesses/models"
	"receipthub/internal/storage"

	"github.com/google/uuid"
)

type BusinessRepository struct{}

func (r *BusinessRepository) CreateBusiness(business *businesses_models.Business) error {
	if business.ID == uuid.Nil {
		business.ID = uuid.New()
	}
	if business.CreatedAt.IsZero() {
		business.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(business).Error
}

func (r *BusinessRepository) GetBusinessByID(businessID uuid.UUID) (*businesses_models.Business, error) {
	var business businesses_models.Business

	if err := storage.GetDb().Where("id = ?", businessID).First(&business).Error; err != nil {
		return nil, err
	}

	return &business, nil
}

func (r *BusinessRepository) UpdateBusiness(business *businesses_models.Business) error {
	return storage.GetDb().Save(business).Error
}

func (r *BusinessRepository) DeleteBusiness(businessID uuid.UUID) error {
	return storage.GetDb().Delete(&businesses_models.Business{}, businessID).Error
}

func (r *BusinessRepository) GetAllBusinesses() ([]*businesses_models.Business, error) {
	var businesses []*businesses_models.Business

	err := storage.GetDb().Order("created_at DESC").Find(&businesses).Error

	return businesses, err
}
