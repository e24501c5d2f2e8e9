package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lifelink/bloodlink/donor-community-service/internal/adapters/session"
	"github.com/lifelink/bloodlink/donor-community-service/internal/core/domain"
	"github.com/lifelink/bloodlink/donor-community-service/test/mocks"
)

func testUser() *domain.User {
	return &domain.User{
		ID:        "user-1",
		Name:      "Jane Doe",
		Email:     "jane@example.com",
		Roles:     []domain.Role{domain.RoleUser, domain.RoleDonor},
		CreatedAt: time.Now().Truncate(time.Second),
	}
}

func TestRedisStore_PersistAndLoad(t *testing.T) {
	redisMock := mocks.NewMockRedisClient()
	store := session.NewRedisStore(redisMock, time.Hour)
	ctx := context.Background()

	if err := store.Persist(ctx, "sess-1", testUser()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := store.Load(ctx, "sess-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected a session record")
	}
	if loaded.Email != "jane@example.com" || len(loaded.Roles) != 2 {
		t.Errorf("loaded snapshot mismatch: %+v", loaded)
	}
}

func TestRedisStore_MissingSessionIsAnonymous(t *testing.T) {
	store := session.NewRedisStore(mocks.NewMockRedisClient(), time.Hour)

	loaded, err := store.Load(context.Background(), "nope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded != nil {
		t.Error("missing session must be anonymous")
	}
}

func TestRedisStore_CorruptRecordSelfHeals(t *testing.T) {
	redisMock := mocks.NewMockRedisClient()
	store := session.NewRedisStore(redisMock, time.Hour)

	redisMock.SetKey("session:bad", "{this is not json", 0)

	loaded, err := store.Load(context.Background(), "bad")
	if err != nil {
		t.Fatalf("corruption must not surface as an error, got %v", err)
	}
	if loaded != nil {
		t.Error("corrupt session must be anonymous")
	}
	if _, ok := redisMock.GetKey("session:bad"); ok {
		t.Error("corrupt record must be deleted")
	}
}

func TestRedisStore_ClearIsIdempotent(t *testing.T) {
	redisMock := mocks.NewMockRedisClient()
	store := session.NewRedisStore(redisMock, time.Hour)
	ctx := context.Background()

	if err := store.Persist(ctx, "sess-1", testUser()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Clear(ctx, "sess-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Clearing an already-clear session still succeeds.
	if err := store.Clear(ctx, "sess-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if loaded, _ := store.Load(ctx, "sess-1"); loaded != nil {
		t.Error("cleared session must be anonymous")
	}
}

func TestRedisStore_Update(t *testing.T) {
	redisMock := mocks.NewMockRedisClient()
	store := session.NewRedisStore(redisMock, time.Hour)
	ctx := context.Background()

	if _, err := store.Update(ctx, "anon", func(u *domain.User) error { return nil }); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated for an anonymous session, got %v", err)
	}

	if err := store.Persist(ctx, "sess-1", testUser()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := store.Update(ctx, "sess-1", func(u *domain.User) error {
		u.Name = "Renamed"
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != "Renamed" {
		t.Errorf("apply result not returned: %+v", updated)
	}

	loaded, _ := store.Load(ctx, "sess-1")
	if loaded == nil || loaded.Name != "Renamed" {
		t.Error("update was not persisted")
	}

	// A failing apply leaves the record untouched.
	boom := errors.New("boom")
	if _, err := store.Update(ctx, "sess-1", func(u *domain.User) error {
		u.Name = "Should not stick"
		return boom
	}); !errors.Is(err, boom) {
		t.Fatalf("expected the apply error, got %v", err)
	}
	loaded, _ = store.Load(ctx, "sess-1")
	if loaded.Name != "Renamed" {
		t.Error("failed update must not persist changes")
	}
}
