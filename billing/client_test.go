package billing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	client := NewClient(Config{BaseURL: srv.URL}, StaticToken("test-token"))
	return client, srv
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	if _, err := client.ListPlans(context.Background()); err != nil {
		t.Fatal(err)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization = %q, expected %q", gotAuth, "Bearer test-token")
	}
}

func TestLoginSkipsAuthHeader(t *testing.T) {
	var gotAuth string
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"token":"abc123"}`))
	}))
	defer srv.Close()

	token, err := client.Login(context.Background(), "admin", "secret")
	if err != nil {
		t.Fatal(err)
	}
	if token != "abc123" {
		t.Errorf("token = %q", token)
	}
	if gotAuth != "" {
		t.Errorf("login sent Authorization header %q", gotAuth)
	}
}

func TestErrorNormalization(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected string
	}{
		{"message field", 400, `{"message":"plan not found"}`, "plan not found"},
		{"error field", 422, `{"error":"invalid phone"}`, "invalid phone"},
		{"unparseable body", 500, `<html>boom</html>`, "an error occurred"},
		{"empty json", 500, `{}`, "an error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := client.ListPlans(context.Background())
			if err == nil {
				t.Fatal("expected error")
			}
			apiErr, ok := err.(*APIError)
			if !ok {
				t.Fatalf("expected *APIError, got %T: %v", err, err)
			}
			if apiErr.Message != tt.expected {
				t.Errorf("message = %q, expected %q", apiErr.Message, tt.expected)
			}
			if apiErr.StatusCode != tt.status {
				t.Errorf("status = %d, expected %d", apiErr.StatusCode, tt.status)
			}
		})
	}
}

func TestRouterStatusDecode(t *testing.T) {
	// Optional fields absent: defaults, not errors.
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"cpu_percent": 42.5,
			"memory_percent": 61.0,
			"interfaces": [{"name":"ether1","rx_mbps":12.5}]
		}`))
	}))
	defer srv.Close()

	status, err := client.RouterStatus(context.Background(), 7)
	if err != nil {
		t.Fatal(err)
	}
	if status.CpuPercent != 42.5 || status.MemoryPercent != 61.0 {
		t.Errorf("cpu/mem = %v/%v", status.CpuPercent, status.MemoryPercent)
	}
	if status.StoragePercent != 0 || status.ActiveSessions != 0 || status.Uptime != "" {
		t.Errorf("optional fields not defaulted: %+v", status)
	}
	if len(status.Interfaces) != 1 {
		t.Fatalf("interfaces = %d", len(status.Interfaces))
	}
	iface := status.Interfaces[0]
	if iface.Name != "ether1" || iface.RxMbps != 12.5 || iface.TxMbps != 0 || iface.Running {
		t.Errorf("interface = %+v", iface)
	}
}

func TestRouterStatusRejectsMissingRequiredFields(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"uptime":"3d"}`))
	}))
	defer srv.Close()

	if _, err := client.RouterStatus(context.Background(), 7); err == nil {
		t.Fatal("expected error for telemetry payload missing cpu/memory")
	}
}

func TestAnalyticsQueryEncoding(t *testing.T) {
	tests := []struct {
		name     string
		params   AnalyticsParams
		expected map[string]string
		absent   []string
	}{
		{
			name:     "preset",
			params:   AnalyticsParams{Filter: DateFilter{Kind: FilterPreset, Preset: PresetThisMonth}},
			expected: map[string]string{"period": "this_month"},
			absent:   []string{"days", "start_date", "router_id"},
		},
		{
			name:     "rolling window",
			params:   AnalyticsParams{Filter: DateFilter{Kind: FilterRolling, Days: 7}, RouterId: 3},
			expected: map[string]string{"days": "7", "router_id": "3"},
			absent:   []string{"period", "start_date"},
		},
		{
			name:     "explicit range",
			params:   AnalyticsParams{Filter: DateFilter{Kind: FilterRange, StartDate: "2024-01-01", EndDate: "2024-01-31"}},
			expected: map[string]string{"start_date": "2024-01-01", "end_date": "2024-01-31"},
			absent:   []string{"period", "days"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotQuery map[string][]string
			client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotQuery = r.URL.Query()
				w.Write([]byte(`{"days":[]}`))
			}))
			defer srv.Close()

			if _, err := client.GetAnalytics(context.Background(), tt.params); err != nil {
				t.Fatal(err)
			}
			for key, val := range tt.expected {
				if got := gotQuery[key]; len(got) != 1 || got[0] != val {
					t.Errorf("query %s = %v, expected %q", key, got, val)
				}
			}
			for _, key := range tt.absent {
				if _, ok := gotQuery[key]; ok {
					t.Errorf("query should not carry %s", key)
				}
			}
		})
	}
}

func TestListTransactionsEnvelope(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"data": [{"id":1,"phone":"254700000001","amount":500,"status":"completed","mpesa_receipt":"QAB12XYZ","created_at":"2024-01-01T00:00:00Z"}],
			"page": 2, "per_page": 20, "total": 45
		}`))
	}))
	defer srv.Close()

	txs, pg, err := client.ListTransactions(context.Background(), TransactionParams{Page: 2, PerPage: 20})
	if err != nil {
		t.Fatal(err)
	}
	if len(txs) != 1 {
		t.Fatalf("transactions = %d", len(txs))
	}
	if txs[0].Receipt != "QAB12XYZ" {
		t.Errorf("receipt = %q, snake_case remap failed", txs[0].Receipt)
	}
	if txs[0].CreatedAtText != "2024-01-01, 03:00 AM" {
		t.Errorf("createdAtText = %q", txs[0].CreatedAtText)
	}
	if pg.Page != 2 || pg.PerPage != 20 || pg.Total != 45 {
		t.Errorf("pagination = %+v", pg)
	}
}

func TestDiffAd(t *testing.T) {
	orig := Ad{Id: 9, Title: "Old title", Price: 1500, Badge: "hot", Active: true}

	edited := orig
	edited.Title = "New title"

	fields := DiffAd(orig, edited)
	if len(fields) != 1 {
		t.Fatalf("diff carried %d fields: %v", len(fields), fields)
	}
	if fields["title"] != "New title" {
		t.Errorf("title = %v", fields["title"])
	}
	if _, ok := fields["price"]; ok {
		t.Error("unchanged price must not appear in the diff")
	}

	if fields := DiffAd(orig, orig); len(fields) != 0 {
		t.Errorf("identical ads produced a diff: %v", fields)
	}
}

func TestDateFilterValidAndKey(t *testing.T) {
	tests := []struct {
		name   string
		filter DateFilter
		valid  bool
		key    string
	}{
		{"today preset", DateFilter{Kind: FilterPreset, Preset: PresetToday}, true, "preset:today"},
		{"unknown preset", DateFilter{Kind: FilterPreset, Preset: "yesterday"}, false, "preset:yesterday"},
		{"rolling", DateFilter{Kind: FilterRolling, Days: 30}, true, "rolling:30"},
		{"rolling zero days", DateFilter{Kind: FilterRolling}, false, "rolling:0"},
		{"range", DateFilter{Kind: FilterRange, StartDate: "2024-01-01", EndDate: "2024-02-01"}, true, "range:2024-01-01:2024-02-01"},
		{"range missing end", DateFilter{Kind: FilterRange, StartDate: "2024-01-01"}, false, ""},
		{"no kind", DateFilter{}, false, "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Valid(); got != tt.valid {
				t.Errorf("Valid() = %v, expected %v", got, tt.valid)
			}
			if tt.key != "" {
				if got := tt.filter.Key(); got != tt.key {
					t.Errorf("Key() = %q, expected %q", got, tt.key)
				}
			}
		})
	}
}
