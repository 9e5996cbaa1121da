package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"preorder/internal/model"
)

// SessionCache handles Redis operations for respondent sessions: session
// metadata plus the live answer set the engine re-evaluates on every change.
type SessionCache interface {
	// Session metadata
	SetSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, sessionID string) (*model.Session, error)

	// Live answers, one hash entry per answered field
	SetAnswer(ctx context.Context, sessionID, fieldID string, value model.Value) error
	ClearAnswer(ctx context.Context, sessionID, fieldID string) error
	GetAnswers(ctx context.Context, sessionID string) (model.AnswerSet, error)
	ClearAnswers(ctx context.Context, sessionID string) error
}

type sessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionCache creates a new session cache
func NewSessionCache(client *redis.Client) SessionCache {
	return &sessionCache{
		client: client,
		ttl:    24 * time.Hour,
	}
}

func (c *sessionCache) sessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s:meta", sessionID)
}

func (c *sessionCache) answersKey(sessionID string) string {
	return fmt.Sprintf("session:%s:answers", sessionID)
}

func (c *sessionCache) SetSession(ctx context.Context, session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.sessionKey(session.ID), data, c.ttl).Err()
}

func (c *sessionCache) GetSession(ctx context.Context, sessionID string) (*model.Session, error) {
	data, err := c.client.Get(ctx, c.sessionKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session model.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *sessionCache) SetAnswer(ctx context.Context, sessionID, fieldID string, value model.Value) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	key := c.answersKey(sessionID)
	if err := c.client.HSet(ctx, key, fieldID, data).Err(); err != nil {
		return err
	}
	return c.client.Expire(ctx, key, c.ttl).Err()
}

func (c *sessionCache) ClearAnswer(ctx context.Context, sessionID, fieldID string) error {
	return c.client.HDel(ctx, c.answersKey(sessionID), fieldID).Err()
}

func (c *sessionCache) GetAnswers(ctx context.Context, sessionID string) (model.AnswerSet, error) {
	data, err := c.client.HGetAll(ctx, c.answersKey(sessionID)).Result()
	if err != nil {
		return nil, err
	}
	answers := make(model.AnswerSet, len(data))
	for fieldID, jsonStr := range data {
		var v model.Value
		if err := json.Unmarshal([]byte(jsonStr), &v); err != nil {
			continue
		}
		answers[fieldID] = v
	}
	return answers, nil
}

func (c *sessionCache) ClearAnswers(ctx context.Context, sessionID string) error {
	return c.client.Del(ctx, c.answersKey(sessionID)).Err()
}
