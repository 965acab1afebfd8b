package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	pkgerrors "github.com/pediloya/storefront-backend/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
)

func TestRedisStoreLoadEmptyWhenMissing(t *testing.T) {
	t.Parallel()

	store, err := NewRedisStore(newStubKV(), time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := store.Load(context.Background(), "la-esquina", "sess-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.Len() != 0 {
		t.Fatalf("expected empty cart for missing snapshot")
	}
}

func TestRedisStoreSaveLoadDrop(t *testing.T) {
	t.Parallel()

	kv := newStubKV()
	store, _ := NewRedisStore(kv, time.Hour)
	ctx := context.Background()

	c := New()
	c.Add(burger(), 2, selExtras("item-1"))
	if err := store.Save(ctx, "la-esquina", "sess-1", c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := store.Load(ctx, "la-esquina", "sess-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.ItemCount() != 2 {
		t.Fatalf("expected restored quantity 2, got %d", loaded.ItemCount())
	}

	if err := store.Drop(ctx, "la-esquina", "sess-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	loaded, err = store.Load(ctx, "la-esquina", "sess-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.Len() != 0 {
		t.Fatalf("expected empty cart after drop")
	}
}

func TestRedisStoreSurfacesBackendFailure(t *testing.T) {
	t.Parallel()

	kv := newStubKV()
	kv.err = errors.New("connection refused")
	store, _ := NewRedisStore(kv, time.Hour)

	_, err := store.Load(context.Background(), "la-esquina", "sess-1")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestRedisStoreRejectsCorruptSnapshot(t *testing.T) {
	t.Parallel()

	kv := newStubKV()
	kv.values[kv.CartKey("la-esquina", "sess-1")] = "{broken"
	store, _ := NewRedisStore(kv, time.Hour)

	_, err := store.Load(context.Background(), "la-esquina", "sess-1")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
}

type stubKV struct {
	values map[string]string
	err    error
}

func newStubKV() *stubKV {
	return &stubKV{values: map[string]string{}}
}

func (s *stubKV) Get(ctx context.Context, key string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	value, ok := s.values[key]
	if !ok {
		return "", goredis.Nil
	}
	return value, nil
}

func (s *stubKV) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if s.err != nil {
		return s.err
	}
	payload, _ := value.(string)
	s.values[key] = payload
	return nil
}

func (s *stubKV) Del(ctx context.Context, keys ...string) error {
	if s.err != nil {
		return s.err
	}
	for _, key := range keys {
		delete(s.values, key)
	}
	return nil
}

func (s *stubKV) CartKey(tenantID, sessionID string) string {
	return "cart:" + tenantID + ":" + sessionID
}
