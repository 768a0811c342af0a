package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLoginTokenSpellings(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"token key", `{"token": "tok-1", "user": {"id": "1", "role": "admin"}}`},
		{"access_token key", `{"access_token": "tok-1", "user": {"id": "1", "role": "admin"}}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
					t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				}
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			sess, err := NewClient(srv.URL, "").Login(context.Background(), "jane", "pw")
			if err != nil {
				t.Fatal(err)
			}
			if sess.Token != "tok-1" {
				t.Errorf("token = %q", sess.Token)
			}
			if sess.User.Role != "admin" {
				t.Errorf("role = %q", sess.User.Role)
			}
		})
	}
}

func TestLoginExpiry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token": "tok", "expires_in": 3600}`))
	}))
	defer srv.Close()

	sess, err := NewClient(srv.URL, "").Login(context.Background(), "jane", "pw")
	if err != nil {
		t.Fatal(err)
	}
	until := time.Until(sess.ExpiresAt)
	if until < 59*time.Minute || until > 61*time.Minute {
		t.Errorf("expiry %v not ~1h out", until)
	}
}

func TestLoginWithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"user": {"id": "1"}}`))
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL, "").Login(context.Background(), "jane", "pw"); err == nil {
		t.Fatal("expected error when the response carries no token")
	}
}

func TestClearAuditLogsRoleGate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("gated clear must not reach the backend")
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok")
	c.Role = "editor"
	if err := c.ClearAuditLogs(context.Background()); !errors.Is(err, ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}
}
