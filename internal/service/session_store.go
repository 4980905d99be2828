package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"roadmap-checkup/internal/cache"
	"roadmap-checkup/internal/domain"
	"roadmap-checkup/internal/logger"
	"time"

	"go.uber.org/zap"
)

// SessionStore persists quiz sessions between requests.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*domain.QuizSession, error)
	Save(ctx context.Context, session *domain.QuizSession) error
	// AcquireSubmitLock reports false when a submission already holds the lock.
	AcquireSubmitLock(ctx context.Context, sessionID string) (bool, error)
	ReleaseSubmitLock(ctx context.Context, sessionID string) error
}

// cacheSessionStore keeps sessions as JSON in a domain.Cache. Every save
// extends the session TTL.
type cacheSessionStore struct {
	cache   domain.Cache
	ttl     time.Duration
	lockTTL time.Duration
}

// NewSessionStore creates a session store on top of the given cache.
func NewSessionStore(c domain.Cache, ttl, lockTTL time.Duration) SessionStore {
	return &cacheSessionStore{
		cache:   c,
		ttl:     ttl,
		lockTTL: lockTTL,
	}
}

func (s *cacheSessionStore) Get(ctx context.Context, sessionID string) (*domain.QuizSession, error) {
	key := cache.SessionKey(sessionID)
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Debug("Quiz session not found", zap.String("key", key))
			return nil, domain.NewSessionNotFoundError(sessionID)
		}
		logger.Get().Error("Failed to get quiz session from cache", zap.Error(err), zap.String("key", key))
		return nil, domain.NewInternalError(fmt.Sprintf("failed to get quiz session for key %s", key), err)
	}

	var session domain.QuizSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		logger.Get().Error("Failed to unmarshal quiz session", zap.Error(err), zap.String("key", key))
		return nil, domain.NewInternalError(fmt.Sprintf("failed to unmarshal quiz session for key %s", key), err)
	}
	return &session, nil
}

func (s *cacheSessionStore) Save(ctx context.Context, session *domain.QuizSession) error {
	if session == nil {
		return domain.NewInvalidInputError("cannot save nil session")
	}

	key := cache.SessionKey(session.ID)
	data, err := json.Marshal(session)
	if err != nil {
		return domain.NewInternalError("failed to marshal quiz session", err)
	}
	if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
		logger.Get().Error("Failed to save quiz session", zap.Error(err), zap.String("key", key))
		return domain.NewInternalError(fmt.Sprintf("failed to save quiz session for key %s", key), err)
	}
	return nil
}

func (s *cacheSessionStore) AcquireSubmitLock(ctx context.Context, sessionID string) (bool, error) {
	ok, err := s.cache.SetNX(ctx, cache.SubmitLockKey(sessionID), "1", s.lockTTL)
	if err != nil {
		return false, domain.NewInternalError("failed to acquire submit lock", err)
	}
	return ok, nil
}

func (s *cacheSessionStore) ReleaseSubmitLock(ctx context.Context, sessionID string) error {
	if err := s.cache.Delete(ctx, cache.SubmitLockKey(sessionID)); err != nil {
		return domain.NewInternalError("failed to release submit lock", err)
	}
	return nil
}
