package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	pkgerrors "github.com/pediloya/storefront-backend/pkg/errors"
	"github.com/pediloya/storefront-backend/pkg/redis"
)

// Store persists cart snapshots keyed by tenant and cart session.
type Store interface {
	Load(ctx context.Context, tenantID, sessionID string) (*Cart, error)
	Save(ctx context.Context, tenantID, sessionID string, c *Cart) error
	Drop(ctx context.Context, tenantID, sessionID string) error
}

type snapshotKV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(tenantID, sessionID string) string
}

type redisStore struct {
	kv  snapshotKV
	ttl time.Duration
}

// NewRedisStore builds a Store backed by the shared redis client.
func NewRedisStore(kv snapshotKV, ttl time.Duration) (Store, error) {
	if kv == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &redisStore{kv: kv, ttl: ttl}, nil
}

// Load returns the stored cart, or an empty one when no snapshot
// exists yet.
func (s *redisStore) Load(ctx context.Context, tenantID, sessionID string) (*Cart, error) {
	raw, err := s.kv.Get(ctx, s.kv.CartKey(tenantID, sessionID))
	if err != nil {
		if redis.IsNil(err) {
			return New(), nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart snapshot")
	}

	var snapshot Snapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode cart snapshot")
	}
	restored, err := Restore(snapshot)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "restore cart snapshot")
	}
	return restored, nil
}

func (s *redisStore) Save(ctx context.Context, tenantID, sessionID string, c *Cart) error {
	payload, err := json.Marshal(c.Snapshot())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart snapshot")
	}
	if err := s.kv.Set(ctx, s.kv.CartKey(tenantID, sessionID), string(payload), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart snapshot")
	}
	return nil
}

func (s *redisStore) Drop(ctx context.Context, tenantID, sessionID string) error {
	if err := s.kv.Del(ctx, s.kv.CartKey(tenantID, sessionID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "drop cart snapshot")
	}
	return nil
}
