package businesses_models

import (
	"time"

	users_enums "receipthub/internal/features/users/enums"

	"github.com/google/uuid"
)

type BusinessMembership struct {
	ID         uuid.UUID                `json:"id"         gorm:"column:id"`
	UserID     uuid.UUID                `json:"userId"     gorm:"column:user_id"`
	BusinessID uuid.UUID                `json:"businessId" gorm:"column:business_id"`
	Role       users_enums.BusinessRole `json:"role"       gorm:"column:role"`
	CreatedAt  time.Time                `json:"createdAt"  gorm:"column:created_at"`
}

func (BusinessMembership) TableName() string {
	return "business_memberships"
}
