package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"recircle/internal/config"
	"recircle/internal/db"
)

const testJWTSecret = "0123456789abcdef0123456789abcdef"

func newTestServer(t *testing.T) *Server {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("db.Open() error = %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	cfg := &config.Config{}
	cfg.Server.Name = "Recircle API"
	cfg.Auth.JWTSecret = testJWTSecret
	cfg.Auth.TokenTTL = time.Hour

	return NewServer(cfg, database, db.NewUserRepository(database), db.NewEventRepository(database))
}

func doRequest(t *testing.T, srv *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json.Marshal() error = %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)
	return rr
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), dst); err != nil {
		t.Fatalf("json.Unmarshal() error = %v, body=%q", err, rr.Body.String())
	}
}

func registerTestUser(t *testing.T, srv *Server, username, email string) AuthResponse {
	t.Helper()

	rr := doRequest(t, srv, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"email":    email,
		"password": "secret1",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("register status = %d, want %d, body=%q", rr.Code, http.StatusCreated, rr.Body.String())
	}

	var resp AuthResponse
	decodeResponse(t, rr, &resp)
	return resp
}

func createTestEvent(t *testing.T, srv *Server, token, title string) string {
	t.Helper()

	rr := doRequest(t, srv, http.MethodPost, "/api/events", token, map[string]string{
		"title":     title,
		"caption":   "Beach cleanup",
		"eventDate": "2025-06-01",
		"location":  "Pier",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create event status = %d, want %d, body=%q", rr.Code, http.StatusCreated, rr.Body.String())
	}

	var event struct {
		ID string `json:"id"`
	}
	decodeResponse(t, rr, &event)
	return event.ID
}
