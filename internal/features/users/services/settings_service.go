package users_services

import (
	"errors"

	users_interfaces "receipthub/internal/features/users/interfaces"
	users_models "receipthub/internal/features/users/models"
	users_repositories "receipthub/internal/features/users/repositories"
)

type SettingsService struct {
	settingsRepository *users_repositories.UsersSettingsRepository
	auditLogWriter     users_interfaces.AuditLogWriter
}

func NewSettingsService(settingsRepository *users_repositories.UsersSettingsRepository) *SettingsService {
	return &SettingsService{settingsRepository: settingsRepository}
}

func (s *SettingsService) SetAuditLogWriter(writer users_interfaces.AuditLogWriter) {
	s.auditLogWriter = writer
}

func (s *SettingsService) GetSettings() (*users_models.UsersSettings, error) {
	return s.settingsRepository.GetSettings()
}

func (s *SettingsService) UpdateSettings(
	user *users_models.User,
	settings *users_models.UsersSettings,
	clientIP string,
) error {
	if !user.CanUpdateSettings() {
		return errors.New("only administrators can update settings")
	}

	current, err := s.settingsRepository.GetSettings()
	if err != nil {
		return err
	}

	settings.ID = current.ID

	if err := s.settingsRepository.UpdateSettings(settings); err != nil {
		return err
	}

	s.auditLogWriter.WriteAuditLog(&users_interfaces.AuditEvent{
		Action:       "update_user_settings",
		ResourceType: "users_settings",
		ResourceID:   settings.ID.String(),
		Status:       users_interfaces.AuditStatusSuccess,
		ActorUserID:  &user.ID,
		ActorRole:    string(user.Role),
		IPAddress:    clientIP,
		Before: map[string]any{
			"isAllowExternalRegistrations":      current.IsAllowExternalRegistrations,
			"isAllowMemberInvitations":          current.IsAllowMemberInvitations,
			"isMemberAllowedToCreateBusinesses": current.IsMemberAllowedToCreateBusinesses,
		},
		After: map[string]any{
			"isAllowExternalRegistrations":      settings.IsAllowExternalRegistrations,
			"isAllowMemberInvitations":          settings.IsAllowMemberInvitations,
			"isMemberAllowedToCreateBusinesses": settings.IsMemberAllowedToCreateBusinesses,
		},
	})

	return nil
}
