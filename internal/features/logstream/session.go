package logstream

import (
	"time"

	"github.com/google/uuid"
)

// ViewerSession binds one StreamController to the user who opened it. The
// session object carries the whole lifecycle explicitly: created on open,
// torn down on close or idle expiry, never process-global.
type ViewerSession struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Kind         RecordKind
	Controller   *StreamController
	CreatedAt    time.Time
	LastAccessAt time.Time
}

func (s *ViewerSession) touch() {
	s.LastAccessAt = time.Now().UTC()
}
