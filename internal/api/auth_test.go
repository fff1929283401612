package api

import (
	"net/http"
	"testing"
)

func TestRegisterReturnsTokenAndPublicUser(t *testing.T) {
	srv := newTestServer(t)

	resp := registerTestUser(t, srv, "alice", "alice@example.com")

	if resp.Token == "" {
		t.Fatal("register returned empty token")
	}
	if resp.User == nil || resp.User.Username != "alice" || resp.User.Email != "alice@example.com" {
		t.Fatalf("register user = %+v, want alice", resp.User)
	}
	if resp.User.ProfileImage == "" {
		t.Fatal("register did not assign a default avatar")
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	srv := newTestServer(t)

	rr := doRequest(t, srv, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "short",
	})

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d, body=%q", rr.Code, http.StatusBadRequest, rr.Body.String())
	}
}

func TestRegisterRejectsShortUsername(t *testing.T) {
	srv := newTestServer(t)

	rr := doRequest(t, srv, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "al",
		"email":    "alice@example.com",
		"password": "secret1",
	})

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d, body=%q", rr.Code, http.StatusBadRequest, rr.Body.String())
	}
}

func TestRegisterDuplicateEmailConflictsRegardlessOfUsername(t *testing.T) {
	srv := newTestServer(t)
	registerTestUser(t, srv, "alice", "alice@example.com")

	rr := doRequest(t, srv, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "different",
		"email":    "alice@example.com",
		"password": "secret1",
	})

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d, body=%q", rr.Code, http.StatusBadRequest, rr.Body.String())
	}

	var resp ErrorResponse
	decodeResponse(t, rr, &resp)
	if resp.Error.Code != ErrCodeConflict {
		t.Fatalf("error.code = %q, want %q", resp.Error.Code, ErrCodeConflict)
	}
}

func TestRegisterDuplicateUsernameConflicts(t *testing.T) {
	srv := newTestServer(t)
	registerTestUser(t, srv, "alice", "alice@example.com")

	rr := doRequest(t, srv, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice",
		"email":    "other@example.com",
		"password": "secret1",
	})

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d, body=%q", rr.Code, http.StatusBadRequest, rr.Body.String())
	}

	var resp ErrorResponse
	decodeResponse(t, rr, &resp)
	if resp.Error.Code != ErrCodeConflict {
		t.Fatalf("error.code = %q, want %q", resp.Error.Code, ErrCodeConflict)
	}
}

func TestLoginTokenResolvesToSameUser(t *testing.T) {
	srv := newTestServer(t)
	registered := registerTestUser(t, srv, "alice", "alice@example.com")

	rr := doRequest(t, srv, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "secret1",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("login status = %d, want %d, body=%q", rr.Code, http.StatusOK, rr.Body.String())
	}

	var login AuthResponse
	decodeResponse(t, rr, &login)

	rr = doRequest(t, srv, http.MethodGet, "/api/auth/validate", login.Token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("validate status = %d, want %d, body=%q", rr.Code, http.StatusOK, rr.Body.String())
	}

	var validated ValidateResponse
	decodeResponse(t, rr, &validated)
	if !validated.Valid {
		t.Fatal("validate returned valid=false for a fresh token")
	}
	if validated.User.ID != registered.User.ID {
		t.Fatalf("validated user id = %q, want %q", validated.User.ID, registered.User.ID)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	srv := newTestServer(t)

	rr := doRequest(t, srv, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "secret1",
	})

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d, body=%q", rr.Code, http.StatusBadRequest, rr.Body.String())
	}
}

func TestLoginWrongPassword(t *testing.T) {
	srv := newTestServer(t)
	registerTestUser(t, srv, "alice", "alice@example.com")

	rr := doRequest(t, srv, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "wrongpass",
	})

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d, body=%q", rr.Code, http.StatusBadRequest, rr.Body.String())
	}
}

func TestRegisterResponseOmitsPassword(t *testing.T) {
	srv := newTestServer(t)

	rr := doRequest(t, srv, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "secret1",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, body=%q", rr.Code, rr.Body.String())
	}

	var raw map[string]any
	decodeResponse(t, rr, &raw)
	user, ok := raw["user"].(map[string]any)
	if !ok {
		t.Fatalf("response missing user object: %q", rr.Body.String())
	}
	for _, key := range []string{"password", "passwordHash"} {
		if _, present := user[key]; present {
			t.Fatalf("response leaked %q: %q", key, rr.Body.String())
		}
	}
}
