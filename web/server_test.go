package web

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/dhunt84971/cslogix/config"
)

func testConfig(t *testing.T, users []config.WebUser) *config.WebConfig {
	t.Helper()
	return &config.WebConfig{
		Enabled: true,
		Host:    "127.0.0.1",
		API:     config.WebAPIConfig{Enabled: true},
		UI: config.WebUIConfig{
			Enabled:       true,
			SessionSecret: "dGVzdHNlY3JldHRlc3RzZWNyZXR0ZXN0c2VjcmV0dGVzdA==",
			Users:         users,
		},
	}
}

func adminUser(t *testing.T) config.WebUser {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return config.WebUser{Username: "admin", PasswordHash: string(hash), Role: config.RoleAdmin}
}

func findUserIn(users []config.WebUser) func(string) *config.WebUser {
	return func(username string) *config.WebUser {
		for i := range users {
			if users[i].Username == username {
				return &users[i]
			}
		}
		return nil
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	users := []config.WebUser{adminUser(t)}
	s := NewServer(testConfig(t, users), NewPLCRegistry(), findUserIn(users))
	srv := httptest.NewServer(s)
	defer srv.Close()

	resp, err := srv.Client().Post(srv.URL+"/login", "application/json", bytes.NewBufferString(`{"username":"admin","password":"wrong"}`))
	if err != nil {
		t.Fatalf("POST /login: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestLoginSucceedsAndGatesTags(t *testing.T) {
	users := []config.WebUser{adminUser(t)}
	s := NewServer(testConfig(t, users), NewPLCRegistry(), findUserIn(users))
	srv := httptest.NewServer(s)
	defer srv.Close()

	client := srv.Client()

	// Unauthenticated tag list request is rejected.
	resp, err := client.Get(srv.URL + "/api/plcs/Line1/tags/")
	if err != nil {
		t.Fatalf("GET tags: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 before login, got %d", resp.StatusCode)
	}

	resp, err = client.Post(srv.URL+"/login", "application/json", bytes.NewBufferString(`{"username":"admin","password":"admin"}`))
	if err != nil {
		t.Fatalf("POST /login: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on login, got %d", resp.StatusCode)
	}

	// Authenticated but unknown PLC name.
	resp, err = client.Get(srv.URL + "/api/plcs/Line1/tags/")
	if err != nil {
		t.Fatalf("GET tags after login: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown PLC, got %d", resp.StatusCode)
	}
}

func TestPLCRegistry(t *testing.T) {
	r := NewPLCRegistry()
	if r.Get("Line1") != nil {
		t.Fatal("expected nil for unregistered PLC")
	}
	r.Put("Line1", nil)
	r.Remove("Line1")
	if r.Get("Line1") != nil {
		t.Fatal("expected nil after remove")
	}
}
