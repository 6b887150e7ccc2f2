//go:build integration
// +build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"
)

type registeredUser struct {
	ID          int64
	Username    string
	Email       string
	AccessToken string
}

func envOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func baseURL() string {
	return envOrDefault("INTEGRATION_BASE_URL", "http://localhost:8080")
}

func uniqueSuffix() string {
	return fmt.Sprint(time.Now().UnixNano())
}

func doRequest(t *testing.T, method, url, token string, payload interface{}) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("create request failed: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
}

func expectStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected status %d, got %d: %s", want, resp.StatusCode, raw)
	}
}

func registerAndLogin(t *testing.T, password string) registeredUser {
	t.Helper()

	suffix := uniqueSuffix()
	user := registeredUser{
		Username: "player-" + suffix,
		Email:    fmt.Sprintf("player-%s@example.com", suffix),
	}

	resp := doRequest(t, http.MethodPost, baseURL()+"/register", "", map[string]string{
		"username": user.Username,
		"password": password,
		"email":    user.Email,
	})
	expectStatus(t, resp, http.StatusCreated)
	resp.Body.Close()

	resp = doRequest(t, http.MethodPost, baseURL()+"/login", "", map[string]string{
		"email":    user.Email,
		"password": password,
	})
	defer resp.Body.Close()
	expectStatus(t, resp, http.StatusOK)

	var out struct {
		UserID      int64  `json:"user_id"`
		AccessToken string `json:"access_token"`
	}
	decodeBody(t, resp, &out)
	user.ID = out.UserID
	user.AccessToken = out.AccessToken
	return user
}

func createStory(t *testing.T, description, difficulty, storyType string) int64 {
	t.Helper()

	resp := doRequest(t, http.MethodPost, baseURL()+"/story", "", map[string]string{
		"description": description,
		"difficulty":  difficulty,
		"type":        storyType,
	})
	defer resp.Body.Close()
	expectStatus(t, resp, http.StatusCreated)

	var out struct {
		StoryID int64 `json:"story_id"`
	}
	decodeBody(t, resp, &out)
	if out.StoryID <= 0 {
		t.Fatalf("unexpected story id %d", out.StoryID)
	}
	return out.StoryID
}
