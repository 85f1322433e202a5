package confluence

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonbondani/PMO-MCP/internal/config"
	"github.com/jonbondani/PMO-MCP/internal/domain"
	"github.com/rs/zerolog"
)

func testClient(baseURL string) *Client {
	cfg := config.Config{
		ConfluenceBaseURL:  baseURL,
		ConfluenceUsername: "user@example.com",
		ConfluenceAPIToken: "token",
		HTTPTimeout:        5 * time.Second,
	}
	return NewClient(cfg, zerolog.Nop())
}

func TestPage_ParsesTitleAndVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/api/content/12345" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if _, _, ok := r.BasicAuth(); !ok { t.Error("expected basic auth") }
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "12345",
			"title":   "Sprint Report",
			"version": map[string]any{"number": float64(4)},
		})
	}))
	defer srv.Close()

	p, err := testClient(srv.URL).Page(context.Background(), "12345")
	if err != nil { t.Fatalf("Page failed: %v", err) }
	if p.Title != "Sprint Report" { t.Errorf("title = %q", p.Title) }
	if p.Version != 4 { t.Errorf("version = %d, want 4", p.Version) }
}

func TestPage_NonOKStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such page", http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).Page(context.Background(), "12345"); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestUpdatePage_SendsStoragePayload(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut { t.Errorf("method = %s, want PUT", r.Method) }
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("bad body: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{"id": "12345"})
	}))
	defer srv.Close()

	err := testClient(srv.URL).UpdatePage(context.Background(), "12345", domain.PageUpdate{
		Title:   "Sprint Report",
		Version: 5,
		Body:    "<h1>Sprint Insights</h1>",
	})
	if err != nil { t.Fatalf("UpdatePage failed: %v", err) }

	if captured["type"] != "page" { t.Errorf("type = %v", captured["type"]) }
	if captured["title"] != "Sprint Report" { t.Errorf("title = %v", captured["title"]) }
	version, _ := captured["version"].(map[string]any)
	if version["number"] != float64(5) { t.Errorf("version = %v, want 5", version["number"]) }
	body, _ := captured["body"].(map[string]any)
	storage, _ := body["storage"].(map[string]any)
	if storage["representation"] != "storage" { t.Errorf("representation = %v", storage["representation"]) }
	if storage["value"] != "<h1>Sprint Insights</h1>" { t.Errorf("value = %v", storage["value"]) }
}

func TestUpdatePage_NonOKStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "version conflict", http.StatusConflict)
	}))
	defer srv.Close()

	err := testClient(srv.URL).UpdatePage(context.Background(), "12345", domain.PageUpdate{Version: 5})
	if err == nil { t.Fatal("expected error for conflict response") }
}
