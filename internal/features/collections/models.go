package collections

import (
	"time"

	"github.com/google/uuid"
)

// Collection groups receipts inside a business (for example "Q3 travel" or
// "Office supplies 2026").
type Collection struct {
	ID          uuid.UUID `json:"id"          gorm:"column:id"`
	BusinessID  uuid.UUID `json:"businessId"  gorm:"column:business_id"`
	Name        string    `json:"name"        gorm:"column:name"`
	Description string    `json:"description" gorm:"column:description"`
	CreatedBy   uuid.UUID `json:"createdBy"   gorm:"column:created_by"`
	CreatedAt   time.Time `json:"createdAt"   gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updatedAt"   gorm:"column:updated_at"`
}

func (Collection) TableName() string {
	return "collections"
}

func (c *Collection) Snapshot() map[string]any {
	return map[string]any{
		"name":        c.Name,
		"description": c.Description,
	}
}
