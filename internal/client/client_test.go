package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/finshare/finx/internal/model"
)

func TestSubmitCandidate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/expenses" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("unexpected auth header %q", got)
		}

		var req map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req["description"] != "Cafe Mocha" {
			t.Errorf("unexpected description %v", req["description"])
		}
		if req["amount"] != 1234.50 {
			t.Errorf("unexpected amount %v", req["amount"])
		}
		if req["category"] != "FOOD" {
			t.Errorf("unexpected category %v", req["category"])
		}

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"expense": map[string]interface{}{"id": "exp-42"},
			"message": "Expense created successfully",
		})
	}))
	defer server.Close()

	c := New(model.BackendConfig{
		BaseURL:  server.URL,
		APIToken: "test-token",
		Timeout:  5 * time.Second,
	})

	id, err := c.SubmitCandidate(context.Background(), &model.TransactionCandidate{
		Merchant: "Cafe Mocha",
		Amount:   1234.50,
		Category: "FOOD",
	}, "")
	if err != nil {
		t.Fatalf("SubmitCandidate: %v", err)
	}
	if id != "exp-42" {
		t.Errorf("expected expense id exp-42, got %q", id)
	}
}

func TestSubmitCandidate_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Not authenticated"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	c := New(model.BackendConfig{BaseURL: server.URL, Timeout: 5 * time.Second})

	_, err := c.SubmitCandidate(context.Background(), &model.TransactionCandidate{Merchant: "X", Amount: 1}, "")
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
}

func TestHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/health" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := New(model.BackendConfig{BaseURL: server.URL, Timeout: 5 * time.Second})
	if err := c.Health(context.Background()); err != nil {
		t.Errorf("Health: %v", err)
	}

	server.Close()
	if err := c.Health(context.Background()); err == nil {
		t.Error("expected health error after server close")
	}
}
