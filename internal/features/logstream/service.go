package logstream

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"receipthub/internal/config"
	users_models "receipthub/internal/features/users/models"

	"github.com/google/uuid"
)

const (
	sessionIdleTimeout = 30 * time.Minute
	sessionSweepEvery  = 1 * time.Minute
	maxSessionsPerUser = 4
)

// LogStreamService is the registry of viewer sessions. One session per user
// per record kind; opening a second session of the same kind replaces the
// first. Admin-gated: log streams expose cross-tenant data.
type LogStreamService struct {
	sourceFactory func(RecordKind) LogSource
	resolver      ProfileResolver
	logger        *slog.Logger

	mu       sync.Mutex
	sessions map[uuid.UUID]*ViewerSession

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewLogStreamService(
	sourceFactory func(RecordKind) LogSource,
	resolver ProfileResolver,
	logger *slog.Logger,
) *LogStreamService {
	return &LogStreamService{
		sourceFactory: sourceFactory,
		resolver:      resolver,
		logger:        logger,
		sessions:      make(map[uuid.UUID]*ViewerSession),
	}
}

// OpenSession creates a session, loads the initial snapshot and starts the
// live subscription. The load is all-or-nothing: a failed fetch returns the
// error and registers nothing.
func (s *LogStreamService) OpenSession(user *users_models.User, kind RecordKind) (*ViewerSession, error) {
	if !user.CanViewSystemLogs() {
		return nil, errors.New("insufficient permissions to view log streams")
	}

	if !kind.IsValid() {
		return nil, errors.New("invalid log stream kind")
	}

	controller := NewStreamController(kind, s.sourceFactory(kind), s.resolver, s.logger)

	if err := controller.Initialize(); err != nil {
		return nil, err
	}

	if err := controller.StartLive(); err != nil {
		return nil, err
	}

	session := &ViewerSession{
		ID:           uuid.New(),
		UserID:       user.ID,
		Kind:         kind,
		Controller:   controller,
		CreatedAt:    time.Now().UTC(),
		LastAccessAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.replaceExistingLocked(user.ID, kind)
	s.enforceSessionCapLocked(user.ID)
	s.sessions[session.ID] = session
	s.mu.Unlock()

	s.logger.Info("Log stream session opened",
		slog.String("sessionId", session.ID.String()),
		slog.String("userId", user.ID.String()),
		slog.String("kind", string(kind)))

	return session, nil
}

// GetSession returns the session when it exists and belongs to the user.
func (s *LogStreamService) GetSession(sessionID uuid.UUID, user *users_models.User) (*ViewerSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, isFound := s.sessions[sessionID]
	if !isFound {
		return nil, errors.New("log stream session not found")
	}

	if session.UserID != user.ID {
		return nil, errors.New("log stream session belongs to another user")
	}

	session.touch()

	return session, nil
}

func (s *LogStreamService) CloseSession(sessionID uuid.UUID, user *users_models.User) error {
	s.mu.Lock()

	session, isFound := s.sessions[sessionID]
	if !isFound {
		s.mu.Unlock()
		return errors.New("log stream session not found")
	}
	if session.UserID != user.ID {
		s.mu.Unlock()
		return errors.New("log stream session belongs to another user")
	}

	delete(s.sessions, sessionID)
	s.mu.Unlock()

	session.Controller.Close()

	s.logger.Info("Log stream session closed",
		slog.String("sessionId", sessionID.String()))

	return nil
}

// CloseUserSessions tears down every session of one user, used on sign-out.
func (s *LogStreamService) CloseUserSessions(userID uuid.UUID) {
	s.mu.Lock()
	var toClose []*ViewerSession
	for sessionID, session := range s.sessions {
		if session.UserID == userID {
			toClose = append(toClose, session)
			delete(s.sessions, sessionID)
		}
	}
	s.mu.Unlock()

	for _, session := range toClose {
		session.Controller.Close()
	}
}

// replaceExistingLocked drops a previous session of the same user and kind.
func (s *LogStreamService) replaceExistingLocked(userID uuid.UUID, kind RecordKind) {
	for sessionID, session := range s.sessions {
		if session.UserID == userID && session.Kind == kind {
			delete(s.sessions, sessionID)
			go session.Controller.Close()
		}
	}
}

func (s *LogStreamService) enforceSessionCapLocked(userID uuid.UUID) {
	var userSessions []*ViewerSession
	for _, session := range s.sessions {
		if session.UserID == userID {
			userSessions = append(userSessions, session)
		}
	}

	if len(userSessions) < maxSessionsPerUser {
		return
	}

	oldest := userSessions[0]
	for _, session := range userSessions[1:] {
		if session.LastAccessAt.Before(oldest.LastAccessAt) {
			oldest = session
		}
	}

	delete(s.sessions, oldest.ID)
	go oldest.Controller.Close()
}

// StartWorkers launches the idle-session sweeper.
func (s *LogStreamService) StartWorkers() {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.wg.Add(1)
	go s.idleSweepWorker()
}

func (s *LogStreamService) idleSweepWorker() {
	defer s.wg.Done()

	ticker := time.NewTicker(sessionSweepEvery)
	defer ticker.Stop()

	for {
		if config.IsShouldShutdown() {
			s.logger.Info("Log stream sweeper shutting down due to shutdown signal")
			s.closeAllSessions()
			return
		}

		select {
		case <-s.ctx.Done():
			s.logger.Info("Log stream sweeper shutting down")
			s.closeAllSessions()
			return

		case <-ticker.C:
			s.sweepIdleSessions()
		}
	}
}

func (s *LogStreamService) sweepIdleSessions() {
	cutoff := time.Now().UTC().Add(-sessionIdleTimeout)

	s.mu.Lock()
	var expired []*ViewerSession
	for sessionID, session := range s.sessions {
		if session.LastAccessAt.Before(cutoff) {
			expired = append(expired, session)
			delete(s.sessions, sessionID)
		}
	}
	s.mu.Unlock()

	for _, session := range expired {
		session.Controller.Close()
		s.logger.Info("Idle log stream session expired",
			slog.String("sessionId", session.ID.String()))
	}
}

func (s *LogStreamService) closeAllSessions() {
	s.mu.Lock()
	var all []*ViewerSession
	for sessionID, session := range s.sessions {
		all = append(all, session)
		delete(s.sessions, sessionID)
	}
	s.mu.Unlock()

	for _, session := range all {
		session.Controller.Close()
	}
}
