package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"terreins-inventory-api/internal/cache"
	"terreins-inventory-api/internal/handler"
	"terreins-inventory-api/internal/model"
	"terreins-inventory-api/internal/repository"
	"terreins-inventory-api/internal/router"
	"terreins-inventory-api/internal/service"
)

// newTestServer wires the full router against an in-memory backend, the
// same way cmd/api does.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	repo := repository.NewMemoryPartRepository()
	inventory := service.NewInventoryService(repo)
	reports := service.NewReportService(inventory, cache.NewMemoryCache(), time.Minute)

	r := router.New(router.Config{
		Handler:       handler.New("terreins-inventory-api", "test"),
		PartHandler:   handler.NewPartHandler(inventory),
		ReportHandler: handler.NewReportHandler(reports),
		AIHandler:     handler.NewAIHandler(nil),
		AdminHandler:  handler.NewAdminHandler(repo, inventory, "memory", "memory"),
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func doJSON(t *testing.T, method, url string, body interface{}) (int, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	var env envelope
	if resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
	}
	return resp.StatusCode, env
}

func TestPartLifecycle(t *testing.T) {
	srv := newTestServer(t)

	draft := model.PartDraft{
		Name:        "Performance Spark Plug",
		SKU:         "SPK-4815",
		Category:    model.CategoryEngine,
		Stock:       50,
		Price:       12.99,
		Description: "Iridium-tipped spark plug",
	}

	// Create
	status, env := doJSON(t, http.MethodPost, srv.URL+"/api/v1/parts", draft)
	if status != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", status)
	}
	var created model.Part
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("Failed to decode created part: %v", err)
	}
	if created.ID == "" {
		t.Fatal("Expected a generated id")
	}
	if len(created.StockHistory) != 1 {
		t.Errorf("Expected seeded stock history, got %+v", created.StockHistory)
	}

	// Get
	status, env = doJSON(t, http.MethodGet, srv.URL+"/api/v1/parts/"+created.ID, nil)
	if status != http.StatusOK {
		t.Fatalf("Expected 200, got %d", status)
	}

	// Update with a new stock level
	created.Stock = 60
	status, env = doJSON(t, http.MethodPut, srv.URL+"/api/v1/parts/"+created.ID, created)
	if status != http.StatusOK {
		t.Fatalf("Expected 200, got %d", status)
	}
	var updated model.Part
	if err := json.Unmarshal(env.Data, &updated); err != nil {
		t.Fatalf("Failed to decode updated part: %v", err)
	}
	if updated.Stock != 60 {
		t.Errorf("Expected stock 60, got %d", updated.Stock)
	}
	if len(updated.StockHistory) != 2 {
		t.Errorf("Expected history appended on stock change, got %d entries", len(updated.StockHistory))
	}

	// Delete, then delete again: both succeed
	status, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/v1/parts/"+created.ID, nil)
	if status != http.StatusNoContent {
		t.Fatalf("Expected 204, got %d", status)
	}
	status, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/v1/parts/"+created.ID, nil)
	if status != http.StatusNoContent {
		t.Fatalf("Expected 204 on repeat delete, got %d", status)
	}

	// Gone
	status, env = doJSON(t, http.MethodGet, srv.URL+"/api/v1/parts/"+created.ID, nil)
	if status != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", status)
	}
	if env.Error == nil || env.Error.Code != "NOT_FOUND" {
		t.Errorf("Expected NOT_FOUND error, got %+v", env.Error)
	}
}

func TestCreatePartRejectsInvalidDraft(t *testing.T) {
	srv := newTestServer(t)

	status, env := doJSON(t, http.MethodPost, srv.URL+"/api/v1/parts", model.PartDraft{
		Name: "No SKU", Category: "Bogus", Stock: -1,
	})
	if status != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", status)
	}
	if env.Error == nil || env.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("Expected VALIDATION_ERROR, got %+v", env.Error)
	}
}

func TestListPartsFiltering(t *testing.T) {
	srv := newTestServer(t)

	drafts := []model.PartDraft{
		{Name: "Brake Pad Set", SKU: "BRK-1", Category: model.CategoryBrakes, Stock: 5, Price: 1, Description: "pads"},
		{Name: "LED Headlight", SKU: "LED-1", Category: model.CategoryLighting, Stock: 5, Price: 1, Description: "lamp"},
	}
	for _, d := range drafts {
		if status, _ := doJSON(t, http.MethodPost, srv.URL+"/api/v1/parts", d); status != http.StatusCreated {
			t.Fatalf("Seed create failed with %d", status)
		}
	}

	status, env := doJSON(t, http.MethodGet, srv.URL+"/api/v1/parts?q=brake", nil)
	if status != http.StatusOK {
		t.Fatalf("Expected 200, got %d", status)
	}
	var parts []model.Part
	if err := json.Unmarshal(env.Data, &parts); err != nil {
		t.Fatalf("Failed to decode parts: %v", err)
	}
	if len(parts) != 1 || parts[0].Name != "Brake Pad Set" {
		t.Errorf("Expected only the brake pad set, got %+v", parts)
	}

	status, env = doJSON(t, http.MethodGet, srv.URL+"/api/v1/parts?category=Lighting", nil)
	if status != http.StatusOK {
		t.Fatalf("Expected 200, got %d", status)
	}
	if err := json.Unmarshal(env.Data, &parts); err != nil {
		t.Fatalf("Failed to decode parts: %v", err)
	}
	if len(parts) != 1 || parts[0].Category != model.CategoryLighting {
		t.Errorf("Expected only the lighting part, got %+v", parts)
	}
}

func TestRecordSaleEndpoint(t *testing.T) {
	srv := newTestServer(t)

	status, env := doJSON(t, http.MethodPost, srv.URL+"/api/v1/parts", model.PartDraft{
		Name: "Chain Kit", SKU: "CHN-1", Category: model.CategoryEngine,
		Stock: 10, Price: 25, Description: "chain and sprockets",
	})
	if status != http.StatusCreated {
		t.Fatalf("Create failed with %d", status)
	}
	var part model.Part
	if err := json.Unmarshal(env.Data, &part); err != nil {
		t.Fatalf("Failed to decode part: %v", err)
	}

	status, env = doJSON(t, http.MethodPost,
		fmt.Sprintf("%s/api/v1/parts/%s/sales", srv.URL, part.ID),
		map[string]interface{}{"quantity": 4})
	if status != http.StatusOK {
		t.Fatalf("Expected 200, got %d", status)
	}
	if err := json.Unmarshal(env.Data, &part); err != nil {
		t.Fatalf("Failed to decode part: %v", err)
	}
	if part.Stock != 6 {
		t.Errorf("Expected stock 6 after sale, got %d", part.Stock)
	}
	if len(part.SalesLog) != 1 || part.SalesLog[0].Quantity != 4 {
		t.Errorf("Expected sale logged, got %+v", part.SalesLog)
	}

	// Unknown part
	status, env = doJSON(t, http.MethodPost,
		srv.URL+"/api/v1/parts/missing/sales",
		map[string]interface{}{"quantity": 1})
	if status != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", status)
	}

	// Invalid quantity
	status, env = doJSON(t, http.MethodPost,
		fmt.Sprintf("%s/api/v1/parts/%s/sales", srv.URL, part.ID),
		map[string]interface{}{"quantity": 0})
	if status != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", status)
	}
}

func TestReportEndpoints(t *testing.T) {
	srv := newTestServer(t)

	status, _ := doJSON(t, http.MethodGet, srv.URL+"/api/v1/reports/dashboard", nil)
	if status != http.StatusOK {
		t.Fatalf("Expected 200 from dashboard, got %d", status)
	}

	status, env := doJSON(t, http.MethodGet, srv.URL+"/api/v1/reports/summary", nil)
	if status != http.StatusOK {
		t.Fatalf("Expected 200 from summary, got %d", status)
	}
	var summary model.DispatchSummary
	if err := json.Unmarshal(env.Data, &summary); err != nil {
		t.Fatalf("Failed to decode summary: %v", err)
	}
	if summary.Period != model.PeriodWeekly {
		t.Errorf("Expected weekly default, got %s", summary.Period)
	}
	if summary.BestSellingCategory != model.NoBestSeller {
		t.Errorf("Expected %q with no sales, got %s", model.NoBestSeller, summary.BestSellingCategory)
	}

	status, env = doJSON(t, http.MethodGet, srv.URL+"/api/v1/reports/summary?period=monthly", nil)
	if status != http.StatusBadRequest {
		t.Fatalf("Expected 400 for unknown period, got %d", status)
	}

	status, _ = doJSON(t, http.MethodGet, srv.URL+"/api/v1/reports/eod", nil)
	if status != http.StatusOK {
		t.Fatalf("Expected 200 from eod, got %d", status)
	}
}

func TestCategoriesEndpoint(t *testing.T) {
	srv := newTestServer(t)

	status, env := doJSON(t, http.MethodGet, srv.URL+"/api/v1/categories", nil)
	if status != http.StatusOK {
		t.Fatalf("Expected 200, got %d", status)
	}
	var categories []model.PartCategory
	if err := json.Unmarshal(env.Data, &categories); err != nil {
		t.Fatalf("Failed to decode categories: %v", err)
	}
	if len(categories) != 7 || categories[0] != model.CategoryEngine {
		t.Errorf("Expected the full category set in order, got %+v", categories)
	}
}

func TestAIEndpointsWithoutKey(t *testing.T) {
	srv := newTestServer(t)

	status, env := doJSON(t, http.MethodPost, srv.URL+"/api/v1/ai/description",
		map[string]interface{}{"name": "Chain Kit", "category": "Engine"})
	if status != http.StatusServiceUnavailable {
		t.Fatalf("Expected 503 without an API key, got %d", status)
	}
	if env.Error == nil || env.Error.Code != "SERVICE_UNAVAILABLE" {
		t.Errorf("Expected SERVICE_UNAVAILABLE, got %+v", env.Error)
	}

	status, _ = doJSON(t, http.MethodPost, srv.URL+"/api/v1/ai/reorder-suggestion",
		map[string]interface{}{"name": "Chain Kit", "category": "Engine", "current_stock": 2})
	if status != http.StatusServiceUnavailable {
		t.Fatalf("Expected 503 without an API key, got %d", status)
	}
}

func TestHealthAndStatus(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/api/v1/health", "/api/v1/ready", "/api/status", "/api/v1/admin/stats"} {
		status, env := doJSON(t, http.MethodGet, srv.URL+path, nil)
		if status != http.StatusOK {
			t.Errorf("Expected 200 from %s, got %d", path, status)
		}
		if !env.Success {
			t.Errorf("Expected success envelope from %s", path)
		}
	}
}
