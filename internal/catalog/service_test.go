package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestServiceMenuCachesFetches(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{menu: &Menu{Commerce: CommerceInfo{Name: "La Esquina", IsOpen: true}}}
	cache := newStubCache()
	svc, err := NewService(fetcher, cache, time.Minute, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 3; i++ {
		menu, err := svc.Menu(context.Background(), "la-esquina")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if menu.Commerce.Name != "La Esquina" {
			t.Fatalf("unexpected menu: %+v", menu)
		}
	}

	if fetcher.calls != 1 {
		t.Fatalf("expected a single upstream fetch, got %d", fetcher.calls)
	}
}

func TestServiceMenuSurvivesBrokenCache(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{menu: &Menu{Commerce: CommerceInfo{Name: "La Esquina"}}}
	cache := newStubCache()
	cache.getErr = errors.New("connection refused")
	cache.setErr = errors.New("connection refused")
	svc, err := NewService(fetcher, cache, time.Minute, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Menu(context.Background(), "la-esquina"); err != nil {
		t.Fatalf("cache failure should not surface: %v", err)
	}
}

func TestServiceMenuIgnoresCorruptCacheEntry(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{menu: &Menu{Commerce: CommerceInfo{Name: "La Esquina"}}}
	cache := newStubCache()
	cache.values[cache.MenuKey("la-esquina")] = "{broken"
	svc, err := NewService(fetcher, cache, time.Minute, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Menu(context.Background(), "la-esquina"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fetcher.calls != 1 {
		t.Fatalf("expected upstream fetch after corrupt entry, got %d", fetcher.calls)
	}
}

func TestServiceMenuPropagatesFetchFailure(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{err: errors.New("catalog down")}
	svc, err := NewService(fetcher, nil, time.Minute, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Menu(context.Background(), "la-esquina"); err == nil {
		t.Fatalf("expected fetch failure to propagate")
	}
}

type stubFetcher struct {
	menu  *Menu
	err   error
	calls int
}

func (s *stubFetcher) FetchMenu(ctx context.Context, tenantID string) (*Menu, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.menu, nil
}

type stubCache struct {
	values map[string]string
	getErr error
	setErr error
}

func newStubCache() *stubCache {
	return &stubCache{values: map[string]string{}}
}

func (s *stubCache) Get(ctx context.Context, key string) (string, error) {
	if s.getErr != nil {
		return "", s.getErr
	}
	value, ok := s.values[key]
	if !ok {
		return "", errMissingKey
	}
	return value, nil
}

func (s *stubCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if s.setErr != nil {
		return s.setErr
	}
	payload, ok := value.(string)
	if !ok {
		raw, err := json.Marshal(value)
		if err != nil {
			return err
		}
		payload = string(raw)
	}
	s.values[key] = payload
	return nil
}

func (s *stubCache) MenuKey(tenantID string) string {
	return "menu:" + tenantID
}

var errMissingKey = errors.New("missing key")
