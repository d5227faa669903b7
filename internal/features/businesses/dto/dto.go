package businesses_dto

import (
	"time"

	users_enums "receipthub/internal/features/users/enums"

	"github.com/google/uuid"
)

type CreateBusinessRequestDTO struct {
	Name     string `json:"name"     binding:"required"`
	Currency string `json:"currency"`
}

type BusinessResponseDTO struct {
	ID        uuid.UUID                 `json:"id"`
	Name      string                    `json:"name"`
	Currency  string                    `json:"currency"`
	CreatedAt time.Time                 `json:"createdAt"`
	UserRole  *users_enums.BusinessRole `json:"userRole,omitempty"`
}

type ListBusinessesResponseDTO struct {
	Businesses []*BusinessResponseDTO `json:"businesses"`
}

type BusinessMemberResponseDTO struct {
	ID          uuid.UUID                `json:"id"          gorm:"column:id"`
	UserID      uuid.UUID                `json:"userId"      gorm:"column:user_id"`
	Email       string                   `json:"email"       gorm:"column:email"`
	DisplayName string                   `json:"displayName" gorm:"column:display_name"`
	Role        users_enums.BusinessRole `json:"role"        gorm:"column:role"`
	CreatedAt   time.Time                `json:"createdAt"   gorm:"column:created_at"`
}

type GetMembersResponseDTO struct {
	Members []BusinessMemberResponseDTO `json:"members"`
}

type AddMemberRequestDTO struct {
	Email string                   `json:"email" binding:"required,email"`
	Role  users_enums.BusinessRole `json:"role"  binding:"required"`
}

type ChangeMemberRoleRequestDTO struct {
	Role users_enums.BusinessRole `json:"role" binding:"required"`
}
