package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/mediscribe/platform/internal/analysis"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client, 30*time.Minute), mr
}

func TestRedisStoreLifecycle(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	s, err := store.Create(ctx)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	s.ApplyAnalysis(&analysis.Result{
		Summary:    "Elevated LDL cholesterol.",
		Specialist: "Cardiologist",
	}, "Hyderabad")
	if err := store.Save(ctx, s); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Get(ctx, s.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.State != StateAnalyzed {
		t.Errorf("unexpected state %q", got.State)
	}
	if got.Analysis == nil || got.Analysis.Specialist != "Cardiologist" {
		t.Errorf("analysis not round-tripped: %+v", got.Analysis)
	}
}

func TestRedisStoreNotFound(t *testing.T) {
	store, _ := newRedisStore(t)

	if _, err := store.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	if _, err := store.Get(context.Background(), ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("empty id: got %v, want ErrNotFound", err)
	}
}

func TestRedisStoreExpiry(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	s, err := store.Create(ctx)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if ttl := mr.TTL(sessionKey(s.ID)); ttl != 30*time.Minute {
		t.Errorf("unexpected ttl %s", ttl)
	}

	mr.FastForward(31 * time.Minute)
	if _, err := store.Get(ctx, s.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expired session: got %v, want ErrNotFound", err)
	}
}

func TestRedisStoreSaveRefreshesTTL(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	s, err := store.Create(ctx)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	mr.FastForward(20 * time.Minute)
	if err := store.Save(ctx, s); err != nil {
		t.Fatalf("save: %v", err)
	}
	if ttl := mr.TTL(sessionKey(s.ID)); ttl != 30*time.Minute {
		t.Errorf("save should refresh the ttl, got %s", ttl)
	}
}
