package loractl

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lorad/pkg/types"
)

func TestClientLoad(t *testing.T) {
	var got types.LoadAdapterRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/adapters" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(types.LoadAdapterResponse{ID: 7, Name: "sql-lora", OpID: "op-1", Outcome: "loaded"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	resp, err := c.Load(context.Background(), types.LoadAdapterRequest{Name: "sql-lora", ID: 7, Path: "/adapters/sql-lora"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if resp.ID != 7 || resp.Outcome != "loaded" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if got.Name != "sql-lora" || got.ID != 7 || got.Path != "/adapters/sql-lora" {
		t.Fatalf("server saw wrong payload: %+v", got)
	}
}

func TestClientLoadServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: "adapter id must be >= 1", Code: 400})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	_, err := c.Load(context.Background(), types.LoadAdapterRequest{Name: "x", ID: 0})
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.Message != "adapter id must be >= 1" {
		t.Fatalf("unexpected APIError: %+v", apiErr)
	}
}

func TestClientUnload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/adapters/3" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	if err := c.Unload(context.Background(), 3); err != nil {
		t.Fatalf("Unload: %v", err)
	}
}

func TestClientUnloadNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: "adapter 42 not loaded", Code: 404})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	err := c.Unload(context.Background(), 42)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusNotFound {
		t.Fatalf("expected 404 APIError, got %v", err)
	}
}

func TestClientListAndStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/adapters":
			_ = json.NewEncoder(w).Encode(types.AdaptersResponse{Adapters: []types.AdapterStatus{
				{ID: 1, Name: "a", State: "ready"},
			}})
		case "/status":
			_ = json.NewEncoder(w).Encode(types.StatusResponse{BudgetMB: 8192, UsedMB: 100})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	list, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list.Adapters) != 1 || list.Adapters[0].Name != "a" {
		t.Fatalf("unexpected list: %+v", list)
	}
	st, err := c.Status(context.Background())
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if st.BudgetMB != 8192 || st.UsedMB != 100 {
		t.Fatalf("unexpected status: %+v", st)
	}
}
