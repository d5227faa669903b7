package businesses_models

import (
	"time"

	"github.com/google/uuid"
)

type Business struct {
	ID        uuid.UUID `json:"id"        gorm:"column:id"`
	Name      string    `json:"name"      gorm:"column:name"`
	Currency  string    `json:"currency"  gorm:"column:currency"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`

	// Client-event ingestion limits
	EventsPerSecondLimit int `json:"eventsPerSecondLimit" gorm:"column:events_per_second_limit"`
	MaxEventsPerBatch    int `json:"maxEventsPerBatch"    gorm:"column:max_events_per_batch"`
}

func (Business) TableName() string {
	return "businesses"
}
