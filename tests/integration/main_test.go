//go:build integration
// +build integration

package integration

import (
	"net/http"
	"strings"
	"testing"
)

func TestHealthz(t *testing.T) {
	resp := doRequest(t, http.MethodGet, baseURL()+"/healthz", "", nil)
	defer resp.Body.Close()
	expectStatus(t, resp, http.StatusOK)
}

func TestReadyz(t *testing.T) {
	resp := doRequest(t, http.MethodGet, baseURL()+"/readyz", "", nil)
	defer resp.Body.Close()
	expectStatus(t, resp, http.StatusOK)
}

func TestMetricsExposed(t *testing.T) {
	resp := doRequest(t, http.MethodGet, baseURL()+"/metrics", "", nil)
	defer resp.Body.Close()
	expectStatus(t, resp, http.StatusOK)

	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("unexpected metrics content type %q", ct)
	}
}
