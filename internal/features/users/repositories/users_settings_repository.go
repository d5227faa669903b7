package users_repositories

import (
	users_models "receipthub/internal/features/users/models"
	"receipthub/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UsersSettingsRepository struct{}

func (r *UsersSettingsRepository) GetSettings() (*users_models.UsersSettings, error) {
	var settings users_models.UsersSettings

	err := storage.GetDb().First(&settings).Error
	if err == nil {
		return &settings, nil
	}

	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	settings = users_models.UsersSettings{
		ID:                                uuid.New(),
		IsAllowExternalRegistrations:      true,
		IsAllowMemberInvitations:          false,
		IsMemberAllowedToCreateBusinesses: true,
	}

	if err := storage.GetDb().Create(&settings).Error; err != nil {
		return nil, err
	}

	return &settings, nil
}

func (r *UsersSettingsRepository) UpdateSettings(settings *users_models.UsersSettings) error {
	return storage.GetDb().Save(settings).Error
}
