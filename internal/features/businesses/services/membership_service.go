package businesses_services

import (
	"errors"
	"fmt"
	"time"

	audit_logs "receipthub/internal/features/audit_logs"
	businesses_dto "receipthub/internal/features/businesses/dto"
	businesses_models "receipthub/internal/features/businesses/models"
	businesses_repositories "receipthub/internal/features/businesses/repositories"
	users_enums "receipthub/internal/features/users/enums"
	users_interfaces "receipthub/internal/features/users/interfaces"
	users_models "receipthub/internal/features/users/models"
	users_repositories "receipthub/internal/features/users/repositories"

	"github.com/google/uuid"
)

type MembershipService struct {
	membershipRepository *businesses_repositories.MembershipRepository
	userRepository       *users_repositories.UserRepository
	businessService      *BusinessService
	auditLogService      *audit_logs.AuditLogService
}

func (s *MembershipService) GetMembers(
	businessID uuid.UUID,
	user *users_models.User,
) (*businesses_dto.GetMembersResponseDTO, error) {
	canAccess, _, err := s.businessService.CanUserAccessBusiness(businessID, user)
	if err != nil {
		return nil, err
	}
	if !canAccess {
		return nil, errors.New("insufficient permissions to view business members")
	}

	members, err := s.membershipRepository.GetBusinessMembers(businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to get business members: %w", err)
	}

	membersList := make([]businesses_dto.BusinessMemberResponseDTO, len(members))
	for i, member := range members {
		membersList[i] = *member
	}

	return &businesses_dto.GetMembersResponseDTO{
		Members: membersList,
	}, nil
}

func (s *MembershipService) AddMember(
	businessID uuid.UUID,
	request *businesses_dto.AddMemberRequestDTO,
	addedBy *users_models.User,
	clientIP string,
) error {
	if err := s.validateCanManageMembership(businessID, addedBy, request.Role); err != nil {
		return err
	}

	targetUser, err := s.userRepository.GetUserByEmail(request.Email)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if targetUser == nil {
		return errors.New("user with this email does not exist")
	}

	existingRole, err := s.membershipRepository.GetUserBusinessRole(businessID, targetUser.ID)
	if err != nil {
		return err
	}
	if existingRole != nil {
		return errors.New("user is already a member of this business")
	}

	membership := &businesses_models.BusinessMembership{
		UserID:     targetUser.ID,
		BusinessID: businessID,
		Role:       request.Role,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.membershipRepository.CreateMembership(membership); err != nil {
		return fmt.Errorf("failed to create membership: %w", err)
	}

	s.auditLogService.WriteAuditLog(&users_interfaces.AuditEvent{
		Action:       "add_business_member",
		ResourceType: "business_membership",
		ResourceID:   membership.ID.String(),
		Status:       users_interfaces.AuditStatusSuccess,
		ActorUserID:  &addedBy.ID,
		ActorRole:    string(addedBy.Role),
		BusinessID:   &businessID,
		IPAddress:    clientIP,
		After:        map[string]any{"email": request.Email, "role": string(request.Role)},
	})

	return nil
}

func (s *MembershipService) ChangeMemberRole(
	businessID uuid.UUID,
	targetUserID uuid.UUID,
	newRole users_enums.BusinessRole,
	changedBy *users_models.User,
	clientIP string,
) error {
	if err := s.validateCanManageMembership(businessID, changedBy, newRole); err != nil {
		return err
	}

	currentRole, err := s.membershipRepository.GetUserBusinessRole(businessID, targetUserID)
	if err != nil {
		return err
	}
	if currentRole == nil {
		return errors.New("user is not a member of this business")
	}

	if *currentRole == users_enums.BusinessRoleOwner {
		return errors.New("cannot change the role of the business owner")
	}

	if err := s.membershipRepository.UpdateMemberRole(targetUserID, businessID, newRole); err != nil {
		return fmt.Errorf("failed to update member role: %w", err)
	}

	s.auditLogService.WriteAuditLog(&users_interfaces.AuditEvent{
		Action:       "change_member_role",
		ResourceType: "business_membership",
		ResourceID:   targetUserID.String(),
		Status:       users_interfaces.AuditStatusSuccess,
		ActorUserID:  &changedBy.ID,
		ActorRole:    string(changedBy.Role),
		BusinessID:   &businessID,
		IPAddress:    clientIP,
		Before:       map[string]any{"role": string(*currentRole)},
		After:        map[string]any{"role": string(newRole)},
	})

	return nil
}

func (s *MembershipService) RemoveMember(
	businessID uuid.UUID,
	targetUserID uuid.UUID,
	removedBy *users_models.User,
	clientIP string,
) error {
	canManage, err := s.businessService.CanUserManageBusiness(businessID, removedBy)
	if err != nil {
		return err
	}
	if !canManage {
		return errors.New("insufficient permissions to manage business members")
	}

	currentRole, err := s.membershipRepository.GetUserBusinessRole(businessID, targetUserID)
	if err != nil {
		return err
	}
	if currentRole == nil {
		return errors.New("user is not a member of this business")
	}

	if *currentRole == users_enums.BusinessRoleOwner {
		return errors.New("cannot remove the business owner")
	}

	if err := s.membershipRepository.RemoveMember(targetUserID, businessID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	s.auditLogService.WriteAuditLog(&users_interfaces.AuditEvent{
		Action:       "remove_business_member",
		ResourceType: "business_membership",
		ResourceID:   targetUserID.String(),
		Status:       users_interfaces.AuditStatusSuccess,
		ActorUserID:  &removedBy.ID,
		ActorRole:    string(removedBy.Role),
		BusinessID:   &businessID,
		IPAddress:    clientIP,
		Before:       map[string]any{"role": string(*currentRole)},
	})

	return nil
}

func (s *MembershipService) validateCanManageMembership(
	businessID uuid.UUID,
	actor *users_models.User,
	targetRole users_enums.BusinessRole,
) error {
	if !targetRole.IsValid() {
		return errors.New("invalid business role")
	}

	if targetRole == users_enums.BusinessRoleOwner {
		return errors.New("ownership cannot be granted through membership management")
	}

	canManage, err := s.businessService.CanUserManageBusiness(businessID, actor)
	if err != nil {
		return err
	}
	if !canManage {
		return errors.New("insufficient permissions to manage business members")
	}

	return nil
}
