package users_dto

import (
	"time"

	users_enums "receipthub/internal/features/users/enums"

	"github.com/google/uuid"
)

type SignUpRequestDTO struct {
	Email       string `json:"email"       binding:"required"`
	DisplayName string `json:"displayName" binding:"required"`
	Password    string `json:"password"    binding:"required,min=8"`
}

type SignInRequestDTO struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SignInResponseDTO struct {
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
	Token  string    `json:"token"`
}

type ChangePasswordRequestDTO struct {
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

type UserProfileResponseDTO struct {
	ID          uuid.UUID            `json:"id"`
	Email       string               `json:"email"`
	DisplayName string               `json:"displayName"`
	Role        users_enums.UserRole `json:"role"`
	IsActive    bool                 `json:"isActive"`
	CreatedAt   time.Time            `json:"createdAt"`
}

type ListUsersRequestDTO struct {
	Limit      int        `form:"limit"      json:"limit"`
	Offset     int        `form:"offset"     json:"offset"`
	BeforeDate *time.Time `form:"beforeDate" json:"beforeDate"`
}

type ListUsersResponseDTO struct {
	Users []UserProfileResponseDTO `json:"users"`
	Total int64                    `json:"total"`
}

type ChangeUserRoleRequestDTO struct {
	Role users_enums.UserRole `json:"role" binding:"required"`
}

type ChangeUserStatusRequestDTO struct {
	Status users_enums.UserStatus `json:"status" binding:"required"`
}
