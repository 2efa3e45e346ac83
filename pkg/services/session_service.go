package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/hackett-digital/transform-engine/pkg/models"
	"github.com/hackett-digital/transform-engine/pkg/repositories"
)

const sessionActivityTTL = 24 * time.Hour

// SessionService tracks user working sessions. Last-activity timestamps are
// mirrored to Redis when a client is configured; the database row remains
// the source of truth.
type SessionService interface {
	Start(ctx context.Context, userID uuid.UUID, companyID *uuid.UUID, data []byte) (*models.UserSession, error)
	Touch(ctx context.Context, sessionID uuid.UUID) error
	End(ctx context.Context, sessionID uuid.UUID) error
}

type sessionService struct {
	sessions repositories.SessionRepository
	redis    *redis.Client
	logger   *zap.Logger
}

func NewSessionService(sessions repositories.SessionRepository, redisClient *redis.Client, logger *zap.Logger) SessionService {
	return &sessionService{
		sessions: sessions,
		redis:    redisClient,
		logger:   logger.Named("session-service"),
	}
}

var _ SessionService = (*sessionService)(nil)

func (s *sessionService) Start(ctx context.Context, userID uuid.UUID, companyID *uuid.UUID, data []byte) (*models.UserSession, error) {
	session := &models.UserSession{
		UserID:      userID,
		CompanyID:   companyID,
		SessionData: data,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		s.logger.Error("Failed to start session",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, err
	}

	s.mirrorActivity(ctx, session.ID, session.LastActivity)
	return session, nil
}

func (s *sessionService) Touch(ctx context.Context, sessionID uuid.UUID) error {
	now := time.Now().UTC()
	if err := s.sessions.Touch(ctx, sessionID, now); err != nil {
		return err
	}
	s.mirrorActivity(ctx, sessionID, now)
	return nil
}

func (s *sessionService) End(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.sessions.End(ctx, sessionID, time.Now().UTC()); err != nil {
		return err
	}
	if s.redis != nil {
		if err := s.redis.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
			s.logger.Warn("Failed to clear session activity key", zap.Error(err))
		}
	}
	return nil
}

// mirrorActivity is best effort: Redis being down never fails the request.
func (s *sessionService) mirrorActivity(ctx context.Context, sessionID uuid.UUID, at time.Time) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Set(ctx, sessionKey(sessionID), at.Format(time.RFC3339), sessionActivityTTL).Err(); err != nil {
		s.logger.Warn("Failed to mirror session activity",
			zap.String("session_id", sessionID.String()),
			zap.Error(err))
	}
}

func sessionKey(sessionID uuid.UUID) string {
	return fmt.Sprintf("session:activity:%s", sessionID)
}
