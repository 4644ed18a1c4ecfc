package session

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"aura/models"
)

func TestManager_LifecycleFromEmptyStore(t *testing.T) {
	m := NewManager(NewMemoryStore(), zap.NewNop())
	if m.State() != StateUninitialized {
		t.Fatalf("initial state = %s, want uninitialized", m.State())
	}

	if err := m.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.State() != StateAnonymous {
		t.Fatalf("state after empty load = %s, want anonymous", m.State())
	}
	if _, ok := m.Current(); ok {
		t.Fatal("anonymous session must have no account")
	}
}

func TestManager_EstablishAndRehydrate(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store, zap.NewNop())

	err := m.Establish(context.Background(), &models.LoginResponse{
		Token:        "access-1",
		RefreshToken: "refresh-1",
		UserID:       42,
		Email:        "ana@example.com",
		FirstName:    "Ana",
		LastName:     "Quispe",
		Role:         "ROLE_TECHNICIAN",
	})
	if err != nil {
		t.Fatalf("Establish: %v", err)
	}
	if m.State() != StateAuthenticated {
		t.Fatalf("state = %s, want authenticated", m.State())
	}
	account, ok := m.Current()
	if !ok || account.ID != 42 {
		t.Fatalf("account = %+v", account)
	}
	if !account.Role.IsTechnician() {
		t.Fatalf("ROLE_ prefix not normalized, role = %s", account.Role)
	}

	// A second manager over the same store picks the session back up.
	m2 := NewManager(store, zap.NewNop())
	if err := m2.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m2.State() != StateAuthenticated {
		t.Fatalf("rehydrated state = %s, want authenticated", m2.State())
	}
	access, refresh := m2.Tokens()
	if access != "access-1" || refresh != "refresh-1" {
		t.Fatalf("tokens = %q/%q", access, refresh)
	}
}

func TestManager_EstablishRejectsUnknownRole(t *testing.T) {
	m := NewManager(NewMemoryStore(), zap.NewNop())
	err := m.Establish(context.Background(), &models.LoginResponse{Role: "WIZARD"})
	if err == nil {
		t.Fatal("unknown role must be rejected")
	}
	if m.State() == StateAuthenticated {
		t.Fatal("failed establish must not authenticate")
	}
}

func TestManager_UpdatePersistsRotation(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store, zap.NewNop())
	if err := m.Establish(context.Background(), &models.LoginResponse{
		Token: "a1", RefreshToken: "r1", UserID: 1, Email: "x@y.z", Role: "USER",
	}); err != nil {
		t.Fatalf("Establish: %v", err)
	}

	m.Update("a2", "r2")
	snap, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap.AccessToken != "a2" || snap.RefreshToken != "r2" {
		t.Fatalf("rotation not persisted: %+v", snap)
	}

	// A rotation without a new refresh token keeps the old one.
	m.Update("a3", "")
	if _, refresh := m.Tokens(); refresh != "r2" {
		t.Fatalf("refresh token dropped, got %q", refresh)
	}
}

func TestManager_ClearDropsToAnonymous(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store, zap.NewNop())
	if err := m.Establish(context.Background(), &models.LoginResponse{
		Token: "a1", UserID: 1, Email: "x@y.z", Role: "USER",
	}); err != nil {
		t.Fatalf("Establish: %v", err)
	}

	m.Clear()
	if m.State() != StateAnonymous {
		t.Fatalf("state = %s, want anonymous", m.State())
	}
	if access, _ := m.Tokens(); access != "" {
		t.Fatal("tokens must be wiped")
	}
	if _, err := store.Load(context.Background()); err != ErrNoSession {
		t.Fatalf("store must be emptied, got %v", err)
	}
}
