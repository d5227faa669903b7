package businesses_repositories

import (
	"errors"
	"time"

	businesses_dto "receipthub/internal/features/businesses/dto"
	businesses_models "receipthub/internal/features/businesses/models"
	users_enums "receipthub/internal/features/users/enums"
	"receipthub/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MembershipRepository struct{}

func (r *MembershipRepository) CreateMembership(membership *businesses_models.BusinessMembership) error {
	if membership.ID == uuid.Nil {
		membership.ID = uuid.New()
	}

	if membership.CreatedAt.IsZero() {
		membership.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(membership).Error
}

func (r *MembershipRepository) GetBusinessMembers(
	businessID uuid.UUID,
) ([]*businesses_dto.BusinessMemberResponseDTO, error) {
	var members []*businesses_dto.BusinessMemberResponseDTO

	err := storage.GetDb().
		Table("business_memberships bm").
		Select("bm.id, bm.user_id, u.email, u.display_name, bm.role, bm.created_at").
		Joins("JOIN users u ON bm.user_id = u.id").
		Where("bm.business_id = ?", businessID).
		Order("bm.created_at ASC").
		Scan(&members).Error

	return members, err
}

func (r *MembershipRepository) UpdateMemberRole(userID, businessID uuid.UUID, role users_enums.BusinessRole) error {
	return storage.GetDb().
		Model(&businesses_models.BusinessMembership{}).
		Where("user_id = ? AND business_id = ?", userID, businessID).
		Update("role", role).Error
}

func (r *MembershipRepository) RemoveMember(userID, businessID uuid.UUID) error {
	return storage.GetDb().
		Where("user_id = ? AND business_id = ?", userID, businessID).
		Delete(&businesses_models.BusinessMembership{}).Error
}

// GetUserBusinessRole returns nil when the user is not a member.
func (r *MembershipRepository) GetUserBusinessRole(
	businessID, userID uuid.UUID,
) (*users_enums.BusinessRole, error) {
	var membership businesses_models.BusinessMembership

	err := storage.GetDb().
		Where("business_id = ? AND user_id = ?", businessID, userID).
		First(&membership).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &membership.Role, nil
}

func (r *MembershipRepository) GetBusinessesWithRolesByUserID(
	userRole users_enums.UserRole,
	userID uuid.UUID,
) ([]*businesses_dto.BusinessResponseDTO, error) {
	var businesses []*businesses_dto.BusinessResponseDTO

	// Global admins see every business, members only the ones they belong to
	if userRole == users_enums.UserRoleAdmin {
		err := storage.GetDb().
			Table("businesses b").
			Select("b.id, b.name, b.currency, b.created_at, bm.role as user_role").
			Joins("LEFT JOIN business_memberships bm ON b.id = bm.business_id AND bm.user_id = ?", userID).
			Order("b.created_at DESC").
			Scan(&businesses).Error

		return businesses, err
	}

	err := storage.GetDb().
		Table("businesses b").
		Select("b.id, b.name, b.currency, b.created_at, bm.role as user_role").
		Joins("JOIN business_memberships bm ON b.id = bm.business_id").
		Where("bm.user_id = ?", userID).
		Order("b.created_at DESC").
		Scan(&businesses).Error

	return businesses, err
}
