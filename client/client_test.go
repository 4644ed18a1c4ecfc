package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"go.uber.org/zap"

	"aura/models"
)

type memTokens struct {
	mu              sync.Mutex
	access, refresh string
	cleared         bool
}

func (m *memTokens) Tokens() (string, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.access, m.refresh
}

func (m *memTokens) Update(access, refresh string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access, m.refresh = access, refresh
}

func (m *memTokens) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access, m.refresh = "", ""
	m.cleared = true
}

func newTestClient(t *testing.T, handler http.Handler, ts TokenSource) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	opts := []Option{WithRateLimit(1000, 1000)}
	if ts != nil {
		opts = append(opts, WithTokenSource(ts))
	}
	return New(srv.URL, zap.NewNop(), opts...), srv
}

func TestMyReservations_EnvelopeResponse(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/reservations/my", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("page"); got != "2" {
			t.Errorf("page = %q, want 2", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"content":       []map[string]any{{"id": 7, "status": "PENDING"}},
			"totalElements": 31,
			"totalPages":    4,
			"size":          10,
			"number":        2,
		})
	})
	c, _ := newTestClient(t, mux, nil)

	page, err := c.MyReservations(context.Background(), 2, 10)
	if err != nil {
		t.Fatalf("MyReservations: %v", err)
	}
	if len(page.Content) != 1 || page.Content[0].ID != 7 {
		t.Fatalf("unexpected content: %+v", page.Content)
	}
	if page.TotalElements != 31 || page.Number != 2 {
		t.Fatalf("envelope fields lost: %+v", page)
	}
}

func TestMyReviews_BareArrayNormalized(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/reviews/my", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": 1, "rating": 5, "comment": "Great job"},
			{"id": 2, "rating": 4, "comment": "ok"},
		})
	})
	c, _ := newTestClient(t, mux, nil)

	page, err := c.MyReviews(context.Background(), 0, 10)
	if err != nil {
		t.Fatalf("MyReviews: %v", err)
	}
	if len(page.Content) != 2 {
		t.Fatalf("content length = %d, want 2", len(page.Content))
	}
	if page.TotalElements != 2 || page.TotalPages != 1 || page.Number != 0 {
		t.Fatalf("bare array not normalized to a single page: %+v", page)
	}
}

func TestDo_RefreshOnce(t *testing.T) {
	var refreshCalls, dataCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls++
		var body models.RefreshRequest
		json.NewDecoder(r.Body).Decode(&body)
		if body.RefreshToken != "refresh-1" {
			t.Errorf("refresh token = %q", body.RefreshToken)
		}
		json.NewEncoder(w).Encode(models.LoginResponse{Token: "access-2", RefreshToken: "refresh-2"})
	})
	mux.HandleFunc("/reservations/my", func(w http.ResponseWriter, r *http.Request) {
		dataCalls++
		if r.Header.Get("Authorization") == "Bearer access-2" {
			json.NewEncoder(w).Encode(map[string]any{"content": []any{}})
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	})

	tokens := &memTokens{access: "access-1", refresh: "refresh-1"}
	c, _ := newTestClient(t, mux, tokens)

	if _, err := c.MyReservations(context.Background(), 0, 10); err != nil {
		t.Fatalf("expected refreshed retry to succeed: %v", err)
	}
	if refreshCalls != 1 {
		t.Fatalf("refresh calls = %d, want 1", refreshCalls)
	}
	if dataCalls != 2 {
		t.Fatalf("data calls = %d, want original + one retry", dataCalls)
	}
	if access, _ := tokens.Tokens(); access != "access-2" {
		t.Fatalf("token not rotated, got %q", access)
	}
}

func TestDo_SecondUnauthorizedClearsSession(t *testing.T) {
	var refreshCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls++
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/reservations/my", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	tokens := &memTokens{access: "stale", refresh: "stale-refresh"}
	c, _ := newTestClient(t, mux, tokens)

	_, err := c.MyReservations(context.Background(), 0, 10)
	if !IsUnauthorized(err) {
		t.Fatalf("want session-expired error, got %v", err)
	}
	if refreshCalls != 1 {
		t.Fatalf("refresh calls = %d, want exactly 1 (no retry loop)", refreshCalls)
	}
	if !tokens.cleared {
		t.Fatal("session tokens must be cleared after a failed refresh")
	}
}

func TestDo_NoRefreshWithoutRefreshToken(t *testing.T) {
	var refreshCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) { refreshCalls++ })
	mux.HandleFunc("/reservations/my", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	tokens := &memTokens{access: "stale"}
	c, _ := newTestClient(t, mux, tokens)

	_, err := c.MyReservations(context.Background(), 0, 10)
	if !IsUnauthorized(err) {
		t.Fatalf("want session-expired error, got %v", err)
	}
	if refreshCalls != 0 {
		t.Fatal("refresh endpoint must not be hit without a refresh token")
	}
	if !tokens.cleared {
		t.Fatal("session must be cleared")
	}
}

func TestLogin_BadCredentialsSurfaceBackendMessage(t *testing.T) {
	var refreshCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) { refreshCalls++ })
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"status":  401,
			"message": "Invalid email or password",
		})
	})

	// A fresh session: no tokens yet, exactly the state a login runs in.
	tokens := &memTokens{}
	c, _ := newTestClient(t, mux, tokens)

	_, err := c.Login(context.Background(), models.LoginRequest{Email: "a@b.c", Password: "wrong"})
	if !IsUnauthorized(err) {
		t.Fatalf("want unauthorized, got %v", err)
	}
	if Message(err) != "Invalid email or password" {
		t.Fatalf("credential message not surfaced verbatim: %q", Message(err))
	}
	if refreshCalls != 0 {
		t.Fatal("a login failure must never trigger a token refresh")
	}
	if tokens.cleared {
		t.Fatal("a login failure must not clear the token source")
	}
}

func TestDo_ConflictSurfacesBackendMessage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/reservations/9/cancel", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]any{
			"status":  409,
			"message": "Reservation was already rejected by the technician",
		})
	})
	c, _ := newTestClient(t, mux, nil)

	_, err := c.CancelReservation(context.Background(), 9, "changed my mind")
	if !IsConflict(err) {
		t.Fatalf("want conflict, got %v", err)
	}
	if Message(err) != "Reservation was already rejected by the technician" {
		t.Fatalf("backend message not surfaced verbatim: %q", Message(err))
	}
}

func TestCreateReservation_ValidationBlocksNetwork(t *testing.T) {
	hits := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) { hits++ })
	c, _ := newTestClient(t, mux, nil)

	_, err := c.CreateReservation(context.Background(), models.CreateReservationRequest{
		TechnicianID: 1,
		ServiceID:    2,
		// missing date, time, address
	})
	if err == nil {
		t.Fatal("invalid booking must fail client-side")
	}
	if hits != 0 {
		t.Fatal("invalid booking must never reach the network")
	}
}
