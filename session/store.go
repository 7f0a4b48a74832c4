// Package session keeps refresh sessions in Redis. Deleting the session
// record is the only way a refresh token is ever revoked.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

type Session struct {
	UserID    string `json:"uid"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

func key(id string) string         { return fmt.Sprintf("crm:sess:%s", id) }
func userSetKey(uid string) string { return fmt.Sprintf("crm:user_sessions:%s", uid) }

func (s *Store) Create(ctx context.Context, id, userID string) error {
	now := time.Now()
	b, _ := json.Marshal(Session{
		UserID:    userID,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.ttl).Unix(),
	})
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, key(id), b, s.ttl)
	pipe.SAdd(ctx, userSetKey(userID), id)
	pipe.Expire(ctx, userSetKey(userID), s.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	b, err := s.rdb.Get(ctx, key(id)).Bytes()
	if err != nil {
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	sess, _ := s.Get(ctx, id)
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, key(id))
	if sess != nil {
		pipe.SRem(ctx, userSetKey(sess.UserID), id)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// RevokeAllForUser kills every session of a user, used when a member is
// removed from their team.
func (s *Store) RevokeAllForUser(ctx context.Context, userID string) error {
	ids, err := s.rdb.SMembers(ctx, userSetKey(userID)).Result()
	if err != nil && err != redis.Nil {
		return err
	}

	pipe := s.rdb.TxPipeline()
	for _, sid := range ids {
		pipe.Del(ctx, key(sid))
	}
	pipe.Del(ctx, userSetKey(userID))
	_, err = pipe.Exec(ctx)
	return err
}
