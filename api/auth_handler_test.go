package api

import (
	"net/http"
	"testing"
)

func TestRegisterAndLogin(t *testing.T) {
	s := newTestServer(t, nil)

	token, _ := s.registerUser(t, "Ann", "ann@x.com", "secret1")
	if token == "" {
		t.Fatal("register should return a token")
	}

	rec := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "ann@x.com",
		"password": "secret1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login: status %d body %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["token"] == "" || body["token"] == nil {
		t.Fatal("login should return a token")
	}

	user, _ := body["user"].(map[string]any)
	if user["name"] != "Ann" || user["role"] != "reader" {
		t.Fatalf("unexpected user payload: %v", user)
	}
	if _, leaked := user["password"]; leaked {
		t.Fatal("password hash must never be serialized")
	}
}

func TestRegister_Validation(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing name", map[string]any{"email": "a@x.com", "password": "pw"}},
		{"missing email", map[string]any{"name": "A", "password": "pw"}},
		{"missing password", map[string]any{"name": "A", "email": "a@x.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/api/auth/register", "", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	s := newTestServer(t, nil)
	s.registerUser(t, "Ann", "ann@x.com", "secret1")

	rec := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     "Another Ann",
		"email":    "ann@x.com",
		"password": "other",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if decodeBody(t, rec)["message"] != "Email already registered" {
		t.Fatalf("unexpected message: %s", rec.Body.String())
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	s := newTestServer(t, nil)
	s.registerUser(t, "Ann", "ann@x.com", "secret1")

	tests := []struct {
		name string
		body map[string]any
	}{
		{"wrong password", map[string]any{"email": "ann@x.com", "password": "nope"}},
		{"unknown email", map[string]any{"email": "ghost@x.com", "password": "secret1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/api/auth/login", "", tt.body)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestProfile_RequiresToken(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/api/auth/profile", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token: status = %d, want 401", rec.Code)
	}

	rec = s.do(t, http.MethodGet, "/api/auth/profile", "garbage-token", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: status = %d, want 401", rec.Code)
	}
}

func TestUpdateProfile(t *testing.T) {
	s := newTestServer(t, nil)
	token, _ := s.registerUser(t, "Ann", "ann@x.com", "secret1")

	rec := s.do(t, http.MethodPut, "/api/auth/profile", token, map[string]any{
		"name": "Ann B.",
		"bio":  "I write about Go.",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update profile: status %d body %s", rec.Code, rec.Body.String())
	}

	rec = s.do(t, http.MethodGet, "/api/auth/profile", token, nil)
	user, _ := decodeBody(t, rec)["user"].(map[string]any)
	if user["name"] != "Ann B." || user["bio"] != "I write about Go." {
		t.Fatalf("profile not updated: %v", user)
	}
}

func TestChangePassword(t *testing.T) {
	s := newTestServer(t, nil)
	token, _ := s.registerUser(t, "Ann", "ann@x.com", "secret1")

	// Wrong current password is rejected
	rec := s.do(t, http.MethodPut, "/api/auth/change-password", token, map[string]any{
		"oldPassword": "wrong",
		"newPassword": "secret2",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong old password: status = %d, want 401", rec.Code)
	}

	rec = s.do(t, http.MethodPut, "/api/auth/change-password", token, map[string]any{
		"oldPassword": "secret1",
		"newPassword": "secret2",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("change password: status %d body %s", rec.Code, rec.Body.String())
	}

	// The old password no longer works, the new one does
	rec = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "ann@x.com", "password": "secret1",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("old password still accepted: status = %d", rec.Code)
	}
	rec = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "ann@x.com", "password": "secret2",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("new password rejected: status = %d", rec.Code)
	}
}
