package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ecommerce-dashboard/internal/config"
	"ecommerce-dashboard/internal/dataset"
	"ecommerce-dashboard/internal/models"
	"ecommerce-dashboard/internal/server"
	"ecommerce-dashboard/internal/services"
)

func newTestDashboard() *services.Dashboard {
	newOrder := func(id, customerID, status string, year, month int) models.Order {
		purchased := time.Date(year, time.Month(month), 12, 8, 0, 0, 0, time.UTC)
		return models.Order{
			ID:          id,
			CustomerID:  customerID,
			Status:      status,
			PurchasedAt: models.Time(purchased),
			DeliveredAt: models.Time(purchased.AddDate(0, 0, 3)),
			Year:        year,
			Month:       month,
			Quarter:     (month-1)/3 + 1,
		}
	}
	newItem := func(orderID, productID string, price float64) models.OrderItem {
		return models.OrderItem{
			OrderID:      orderID,
			ProductID:    productID,
			Price:        models.Float(price),
			FreightValue: models.Float(5),
			TotalValue:   models.Float(price + 5),
		}
	}

	tables := dataset.NewTables(
		[]models.Order{
			newOrder("o1", "c1", "delivered", 2023, 2),
			newOrder("o2", "c2", "delivered", 2023, 8),
			newOrder("o3", "c1", "delivered", 2022, 6),
		},
		[]models.OrderItem{
			newItem("o1", "p1", 120),
			newItem("o2", "p2", 45),
			newItem("o3", "p1", 90),
		},
		[]models.Product{
			{ID: "p1", CategoryName: "electronics"},
			{ID: "p2", CategoryName: "housewares"},
		},
		[]models.Customer{
			{ID: "c1", State: "SP"},
			{ID: "c2", State: "MG"},
		},
		[]models.Review{
			{ID: "r1", OrderID: "o1", Score: models.Float(5)},
			{ID: "r2", OrderID: "o2", Score: models.Float(4)},
		},
		nil,
	)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return services.NewDashboard(tables, logger)
}

func newTestServer() *server.Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		Data: config.DataConfig{DefaultYear: 2023, ComparisonYear: 2022},
	}
	dashboard := newTestDashboard()
	templateHandlers := &server.TemplateHandlers{
		Dashboard: dashboardPageHandler(dashboard, cfg, logger),
	}
	return server.NewServer(dashboard, cfg.Data, logger, templateHandlers)
}

func TestServer_Routes(t *testing.T) {
	srv := newTestServer()

	tests := []struct {
		path           string
		expectedStatus int
		contentType    string
	}{
		{"/", http.StatusOK, "text/html"},
		{"/health", http.StatusOK, "application/json"},
		{"/admin/stats", http.StatusOK, "application/json"},
		{"/api/overview", http.StatusOK, "application/json"},
		{"/api/monthly-trend", http.StatusOK, "application/json"},
		{"/api/categories", http.StatusOK, "application/json"},
		{"/api/states", http.StatusOK, "application/json"},
		{"/api/satisfaction", http.StatusOK, "application/json"},
		{"/api/status-distribution", http.StatusOK, "application/json"},
		{"/api/summary", http.StatusOK, "application/json"},
		{"/api/years", http.StatusOK, "application/json"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest("GET", tt.path, nil)

			srv.ServeHTTP(w, r)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}

			ct := w.Header().Get("Content-Type")
			if !strings.Contains(ct, tt.contentType) {
				t.Errorf("content-type = %q, want %q", ct, tt.contentType)
			}

			if tt.contentType == "application/json" {
				var result any
				if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
					t.Errorf("invalid json: %v", err)
				}
			}
		})
	}
}

func TestServer_OverviewResponse(t *testing.T) {
	srv := newTestServer()

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/api/overview", nil)
	srv.ServeHTTP(w, r)

	var response map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}

	if success, ok := response["success"].(bool); !ok || !success {
		t.Error("expected success=true in response")
	}

	data, ok := response["data"].(map[string]interface{})
	if !ok {
		t.Fatal("expected overview object in response")
	}

	revenue, ok := data["revenue"].(map[string]interface{})
	if !ok {
		t.Fatal("expected revenue block in overview")
	}
	if got := revenue["current_revenue"].(float64); got != 165 {
		t.Errorf("2023 revenue = %v, want 165", got)
	}
	if got := revenue["comparison_revenue"].(float64); got != 90 {
		t.Errorf("2022 revenue = %v, want 90", got)
	}

	orders, ok := data["orders"].(map[string]interface{})
	if !ok {
		t.Fatal("expected orders block in overview")
	}
	if got := orders["current_orders"].(float64); got != 2 {
		t.Errorf("2023 orders = %v, want 2", got)
	}
}

func TestServer_SSERoutes(t *testing.T) {
	srv := newTestServer()

	sseRoutes := []string{
		"/sse/overview",
		"/sse/charts",
		"/sse/refresh-all",
	}

	for _, route := range sseRoutes {
		t.Run(route, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest("GET", route, nil)

			srv.ServeHTTP(w, r)

			if w.Code != http.StatusOK {
				t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
			}
			if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/event-stream") {
				t.Errorf("content-type = %q, should contain 'text/event-stream'", ct)
			}
			if cc := w.Header().Get("Cache-Control"); cc != "no-cache" {
				t.Errorf("cache-control = %q, want 'no-cache'", cc)
			}
		})
	}
}

func TestServer_HandleHealth(t *testing.T) {
	srv := newTestServer()

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/health", nil)

	srv.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var response map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode health JSON: %v", err)
	}

	healthData, ok := response["data"].(map[string]interface{})
	if !ok {
		t.Fatal("expected health data in response")
	}
	if status, ok := healthData["status"].(string); !ok || status != "healthy" {
		t.Errorf("health status = %v, want 'healthy'", healthData["status"])
	}
	if _, ok := healthData["timestamp"]; !ok {
		t.Error("health response should include timestamp")
	}
}

func TestServer_MethodNotAllowed(t *testing.T) {
	srv := newTestServer()

	tests := []struct {
		method string
		path   string
	}{
		{"POST", "/api/overview"},
		{"PUT", "/api/years"},
		{"DELETE", "/health"},
		{"PATCH", "/api/categories"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(tt.method, tt.path, nil)

			srv.ServeHTTP(w, r)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("status = %d, want %d", w.Code, http.StatusMethodNotAllowed)
			}
		})
	}
}

func TestDashboardPage(t *testing.T) {
	srv := newTestServer()

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)

	srv.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	body := w.Body.String()
	if !strings.Contains(body, "E-commerce Business Dashboard") {
		t.Error("dashboard should contain the page title")
	}

	expectedComponents := []string{
		"kpi-cards",
		"category-content",
		"satisfaction-content",
		"trend-chart",
		"states-chart",
		"status-chart",
		`data-bind-year`,
		`data-bind-comparison`,
	}
	for _, component := range expectedComponents {
		if !strings.Contains(body, component) {
			t.Errorf("dashboard should contain %q", component)
		}
	}

	// year selectors list the available data years
	if !strings.Contains(body, ">2023<") || !strings.Contains(body, ">2022<") {
		t.Error("dashboard should offer the dataset years in the selectors")
	}
}
