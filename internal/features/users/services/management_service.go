package users_services

import (
	"errors"
	"fmt"

	users_dto "receipthub/internal/features/users/dto"
	users_enums "receipthub/internal/features/users/enums"
	users_interfaces "receipthub/internal/features/users/interfaces"
	users_models "receipthub/internal/features/users/models"
	users_repositories "receipthub/internal/features/users/repositories"

	"github.com/google/uuid"
)

type ManagementService struct {
	userRepository *users_repositories.UserRepository
	auditLogWriter users_interfaces.AuditLogWriter
}

func NewManagementService(userRepository *users_repositories.UserRepository) *ManagementService {
	return &ManagementService{userRepository: userRepository}
}

func (s *ManagementService) SetAuditLogWriter(writer users_interfaces.AuditLogWriter) {
	s.auditLogWriter = writer
}

func (s *ManagementService) ListUsers(
	user *users_models.User,
	request *users_dto.ListUsersRequestDTO,
) (*users_dto.ListUsersResponseDTO, error) {
	if !user.CanManageUsers() {
		return nil, errors.New("only administrators can list users")
	}

	limit := request.Limit
	if limit <= 0 || limit > 1000 {
		limit = 100
	}

	offset := max(request.Offset, 0)

	users, total, err := s.userRepository.GetUsers(limit, offset, request.BeforeDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	profiles := make([]users_dto.UserProfileResponseDTO, 0, len(users))
	for _, item := range users {
		profiles = append(profiles, users_dto.UserProfileResponseDTO{
			ID:          item.ID,
			Email:       item.Email,
			DisplayName: item.DisplayName,
			Role:        item.Role,
			IsActive:    item.IsActiveUser(),
			CreatedAt:   item.CreatedAt,
		})
	}

	return &users_dto.ListUsersResponseDTO{
		Users: profiles,
		Total: total,
	}, nil
}

func (s *ManagementService) ChangeUserRole(
	actor *users_models.User,
	targetUserID uuid.UUID,
	role users_enums.UserRole,
	clientIP string,
) error {
	if !actor.CanManageUsers() {
		return errors.New("only administrators can change user roles")
	}

	if !role.IsValid() {
		return errors.New("invalid user role")
	}

	target, err := s.userRepository.GetUserByID(targetUserID)
	if err != nil {
		return fmt.Errorf("failed to get target user: %w", err)
	}

	if err := s.userRepository.UpdateUserRole(targetUserID, role); err != nil {
		return fmt.Errorf("failed to update user role: %w", err)
	}

	s.auditLogWriter.WriteAuditLog(&users_interfaces.AuditEvent{
		Action:       "change_user_role",
		ResourceType: "user",
		ResourceID:   targetUserID.String(),
		Status:       users_interfaces.AuditStatusSuccess,
		ActorUserID:  &actor.ID,
		ActorRole:    string(actor.Role),
		IPAddress:    clientIP,
		Before:       map[string]any{"role": string(target.Role)},
		After:        map[string]any{"role": string(role)},
	})

	return nil
}

func (s *ManagementService) ChangeUserStatus(
	actor *users_models.User,
	targetUserID uuid.UUID,
	status users_enums.UserStatus,
	clientIP string,
) error {
	if !actor.CanManageUsers() {
		return errors.New("only administrators can change user status")
	}

	if actor.ID == targetUserID && status != users_enums.UserStatusActive {
		return errors.New("administrators cannot deactivate themselves")
	}

	target, err := s.userRepository.GetUserByID(targetUserID)
	if err != nil {
		return fmt.Errorf("failed to get target user: %w", err)
	}

	if err := s.userRepository.UpdateUserStatus(targetUserID, status); err != nil {
		return fmt.Errorf("failed to update user status: %w", err)
	}

	s.auditLogWriter.WriteAuditLog(&users_interfaces.AuditEvent{
		Action:       "change_user_status",
		ResourceType: "user",
		ResourceID:   targetUserID.String(),
		Status:       users_interfaces.AuditStatusSuccess,
		ActorUserID:  &actor.ID,
		ActorRole:    string(actor.Role),
		IPAddress:    clientIP,
		Before:       map[string]any{"status": string(target.Status)},
		After:        map[string]any{"status": string(status)},
	})

	return nil
}
