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
	users_services "receipthub/internal/features/users/services"
	cache_utils "receipthub/internal/util/cache"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

type BusinessService struct {
	businessRepository   *businesses_repositories.BusinessRepository
	membershipRepository *businesses_repositories.MembershipRepository
	settingsService      *users_services.SettingsService
	auditLogService      *audit_logs.AuditLogService

	businessCacheUtil *cache_utils.CacheUtil[businesses_models.Business]
	singleflight      singleflight.Group // Prevents thundering herd on DB calls
}

func (s *BusinessService) CreateBusiness(
	request *businesses_dto.CreateBusinessRequestDTO,
	creator *users_models.User,
	clientIP string,
) (*businesses_dto.BusinessResponseDTO, error) {
	settings, err := s.settingsService.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	if !creator.CanCreateBusinesses(settings) {
		return nil, errors.New("insufficient permissions to create businesses")
	}

	currency := request.Currency
	if currency == "" {
		currency = "USD"
	}

	business := &businesses_models.Business{
		ID:                   uuid.New(),
		Name:                 request.Name,
		Currency:             currency,
		EventsPerSecondLimit: 100,
		MaxEventsPerBatch:    100,
		CreatedAt:            time.Now().UTC(),
	}

	if err := s.businessRepository.CreateBusiness(business); err != nil {
		return nil, fmt.Errorf("failed to create business: %w", err)
	}

	// Pre-warm cache with new business for immediate availability
	s.businessCacheUtil.Set(business.ID.String(), business)

	membership := &businesses_models.BusinessMembership{
		UserID:     creator.ID,
		BusinessID: business.ID,
		Role:       users_enums.BusinessRoleOwner,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.membershipRepository.CreateMembership(membership); err != nil {
		return nil, fmt.Errorf("failed to create business membership: %w", err)
	}

	s.auditLogService.WriteAuditLog(&users_interfaces.AuditEvent{
		Action:       "create_business",
		ResourceType: "business",
		ResourceID:   business.ID.String(),
		Status:       users_interfaces.AuditStatusSuccess,
		ActorUserID:  &creator.ID,
		ActorRole:    string(creator.Role),
		BusinessID:   &business.ID,
		IPAddress:    clientIP,
		After:        map[string]any{"name": business.Name, "currency": business.Currency},
	})

	ownerRole := users_enums.BusinessRoleOwner
	return &businesses_dto.BusinessResponseDTO{
		ID:        business.ID,
		Name:      business.Name,
		Currency:  business.Currency,
		CreatedAt: business.CreatedAt,
		UserRole:  &ownerRole,
	}, nil
}

func (s *BusinessService) GetBusiness(
	businessID uuid.UUID,
	user *users_models.User,
) (*businesses_models.Business, error) {
	canAccess, _, err := s.CanUserAccessBusiness(businessID, user)
	if err != nil {
		return nil, err
	}
	if !canAccess {
		return nil, errors.New("insufficient permissions to view business")
	}

	return s.businessRepository.GetBusinessByID(businessID)
}

// GetBusinessByIDCached serves the hot path of client-event ingestion,
// where every batch needs the business limits without hitting Postgres.
func (s *BusinessService) GetBusinessByIDCached(businessID uuid.UUID) (*businesses_models.Business, error) {
	cached := s.businessCacheUtil.Get(businessID.String())
	if cached != nil {
		return cached, nil
	}

	result, err, _ := s.singleflight.Do(businessID.String(), func() (any, error) {
		business, err := s.businessRepository.GetBusinessByID(businessID)
		if err != nil {
			return nil, err
		}

		s.businessCacheUtil.Set(businessID.String(), business)
		return business, nil
	})

	if err != nil {
		return nil, err
	}

	return result.(*businesses_models.Business), nil
}

func (s *BusinessService) GetUserBusinesses(
	user *users_models.User,
) (*businesses_dto.ListBusinessesResponseDTO, error) {
	businesses, err := s.membershipRepository.GetBusinessesWithRolesByUserID(user.Role, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user businesses: %w", err)
	}

	return &businesses_dto.ListBusinessesResponseDTO{
		Businesses: businesses,
	}, nil
}

func (s *BusinessService) UpdateBusiness(
	businessID uuid.UUID,
	business *businesses_models.Business,
	user *users_models.User,
	clientIP string,
) (*businesses_models.Business, error) {
	canManage, err := s.CanUserManageBusiness(businessID, user)
	if err != nil {
		return nil, err
	}
	if !canManage {
		return nil, errors.New("insufficient permissions to update business")
	}

	existingBusiness, err := s.businessRepository.GetBusinessByID(businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to get business: %w", err)
	}

	business.ID = businessID
	business.CreatedAt = existingBusiness.CreatedAt

	if err := s.businessRepository.UpdateBusiness(business); err != nil {
		return nil, fmt.Errorf("failed to update business: %w", err)
	}

	s.businessCacheUtil.Invalidate(businessID.String())

	s.auditLogService.WriteAuditLog(&users_interfaces.AuditEvent{
		Action:       "update_business",
		ResourceType: "business",
		ResourceID:   businessID.String(),
		Status:       users_interfaces.AuditStatusSuccess,
		ActorUserID:  &user.ID,
		ActorRole:    string(user.Role),
		BusinessID:   &businessID,
		IPAddress:    clientIP,
		Before:       map[string]any{"name": existingBusiness.Name, "currency": existingBusiness.Currency},
		After:        map[string]any{"name": business.Name, "currency": business.Currency},
	})

	return business, nil
}

func (s *BusinessService) DeleteBusiness(
	businessID uuid.UUID,
	user *users_models.User,
	clientIP string,
) error {
	role, err := s.membershipRepository.GetUserBusinessRole(businessID, user.ID)
	if err != nil {
		return err
	}

	isOwner := role != nil && *role == users_enums.BusinessRoleOwner
	if user.Role != users_enums.UserRoleAdmin && !isOwner {
		return errors.New("insufficient permissions to delete business")
	}

	existingBusiness, err := s.businessRepository.GetBusinessByID(businessID)
	if err != nil {
		return fmt.Errorf("failed to get business: %w", err)
	}

	if err := s.businessRepository.DeleteBusiness(businessID); err != nil {
		return fmt.Errorf("failed to delete business: %w", err)
	}

	s.businessCacheUtil.Invalidate(businessID.String())

	s.auditLogService.WriteAuditLog(&users_interfaces.AuditEvent{
		Action:       "delete_business",
		ResourceType: "business",
		ResourceID:   businessID.String(),
		Status:       users_interfaces.AuditStatusSuccess,
		ActorUserID:  &user.ID,
		ActorRole:    string(user.Role),
		BusinessID:   &businessID,
		IPAddress:    clientIP,
		Before:       map[string]any{"name": existingBusiness.Name},
	})

	return nil
}

// CanUserAccessBusiness reports read access and, for members, their role.
func (s *BusinessService) CanUserAccessBusiness(
	businessID uuid.UUID,
	user *users_models.User,
) (bool, *users_enums.BusinessRole, error) {
	if user.Role == users_enums.UserRoleAdmin {
		return true, nil, nil
	}

	role, err := s.membershipRepository.GetUserBusinessRole(businessID, user.ID)
	if err != nil {
		return false, nil, fmt.Errorf("failed to get business role: %w", err)
	}

	return role != nil, role, nil
}

func (s *BusinessService) CanUserManageBusiness(
	businessID uuid.UUID,
	user *users_models.User,
) (bool, error) {
	if user.Role == users_enums.UserRoleAdmin {
		return true, nil
	}

	role, err := s.membershipRepository.GetUserBusinessRole(businessID, user.ID)
	if err != nil {
		return false, fmt.Errorf("failed to get business role: %w", err)
	}

	return role != nil && role.CanManageMembers(), nil
}
