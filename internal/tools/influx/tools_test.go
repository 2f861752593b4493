package influx

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/mcp-influxdb/internal/influx"
	"github.com/giantswarm/mcp-influxdb/internal/server"
)

// TestLogger implements server.Logger for testing
type TestLogger struct{}

func (l *TestLogger) Debug(msg string, args ...interface{}) {}
func (l *TestLogger) Info(msg string, args ...interface{})  {}
func (l *TestLogger) Warn(msg string, args ...interface{})  {}
func (l *TestLogger) Error(msg string, args ...interface{}) {}

// mockGateway implements Gateway with canned results. When failIfCalled is
// set, any gateway call fails the test: handlers must reject invalid
// arguments before delegating.
type mockGateway struct {
	t            *testing.T
	failIfCalled bool

	status       influx.ConnectionStatus
	buckets      []influx.Bucket
	measurements []string
	rows         []influx.Row
	info         influx.ServerInfo
	err          error
}

func (m *mockGateway) called(op string) {
	if m.failIfCalled {
		m.t.Errorf("Gateway.%s called for a request that should have been rejected", op)
	}
}

func (m *mockGateway) TestConnection(ctx context.Context) influx.ConnectionStatus {
	m.called("TestConnection")
	return m.status
}

func (m *mockGateway) ListBuckets(ctx context.Context) ([]influx.Bucket, error) {
	m.called("ListBuckets")
	return m.buckets, m.err
}

func (m *mockGateway) ListMeasurements(ctx context.Context, bucket string) ([]string, error) {
	m.called("ListMeasurements")
	return m.measurements, m.err
}

func (m *mockGateway) ExecuteQuery(ctx context.Context, flux string) ([]influx.Row, error) {
	m.called("ExecuteQuery")
	return m.rows, m.err
}

func (m *mockGateway) ServerInfo() influx.ServerInfo {
	m.called("ServerInfo")
	return m.info
}

func newTestServerContext(t *testing.T) *server.ServerContext {
	t.Helper()
	sc, err := server.NewServerContext(context.Background(),
		server.WithInfluxConfig(server.InfluxConfig{
			Host: "localhost",
			Port: 8086,
			Org:  "myorg",
		}),
		server.WithLogger(&TestLogger{}),
	)
	if err != nil {
		t.Fatalf("Failed to create server context: %v", err)
	}
	t.Cleanup(func() { sc.Shutdown() })
	return sc
}

func toolRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) != 1 {
		t.Fatalf("Expected one content item, got %d", len(result.Content))
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("Expected text content, got %T", result.Content[0])
	}
	return text.Text
}

func TestRegisterInfluxTools(t *testing.T) {
	s := mcpserver.NewMCPServer("test", "1.0.0")
	sc := newTestServerContext(t)

	err := RegisterInfluxTools(s, sc, &mockGateway{t: t})
	if err != nil {
		t.Fatalf("Failed to register tools: %v", err)
	}
}

func TestHandleTestConnection(t *testing.T) {
	sc := newTestServerContext(t)
	gateway := &mockGateway{
		t: t,
		status: influx.ConnectionStatus{
			Status:  "connected",
			Message: "Connection successful",
			Version: "2.7.10",
		},
	}

	result, err := handleTestConnection(context.Background(), toolRequest("test_connection", nil), gateway, sc)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if result.IsError {
		t.Fatalf("Expected success, got error: %v", result.Content)
	}

	var status influx.ConnectionStatus
	if err := json.Unmarshal([]byte(resultText(t, result)), &status); err != nil {
		t.Fatalf("Expected JSON result: %v", err)
	}
	if status.Status != "connected" {
		t.Errorf("Expected connected status, got %q", status.Status)
	}
}

func TestHandleListBuckets(t *testing.T) {
	sc := newTestServerContext(t)
	gateway := &mockGateway{
		t: t,
		buckets: []influx.Bucket{
			{Name: "metrics", ID: "bucket-1"},
			{Name: "telemetry", ID: "bucket-2"},
		},
	}

	result, err := handleListBuckets(context.Background(), toolRequest("list_buckets", nil), gateway, sc)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if result.IsError {
		t.Fatalf("Expected success, got error: %v", result.Content)
	}

	var payload struct {
		Buckets []influx.Bucket `json:"buckets"`
		Count   int             `json:"count"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &payload); err != nil {
		t.Fatalf("Expected JSON result: %v", err)
	}
	if payload.Count != 2 || payload.Buckets[0].Name != "metrics" {
		t.Errorf("Unexpected payload: %+v", payload)
	}
}

func TestHandleListBucketsUpstreamError(t *testing.T) {
	sc := newTestServerContext(t)
	gateway := &mockGateway{
		t:   t,
		err: &influx.Error{Kind: influx.KindUpstream, Err: context.DeadlineExceeded},
	}

	result, err := handleListBuckets(context.Background(), toolRequest("list_buckets", nil), gateway, sc)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !result.IsError {
		t.Fatal("Expected an error result")
	}
	if !strings.Contains(resultText(t, result), "deadline exceeded") {
		t.Errorf("Expected the upstream message in the result, got %q", resultText(t, result))
	}
}

func TestHandleListMeasurements(t *testing.T) {
	sc := newTestServerContext(t)
	gateway := &mockGateway{
		t:            t,
		measurements: []string{"cpu", "mem"},
	}

	result, err := handleListMeasurements(context.Background(),
		toolRequest("list_measurements", map[string]interface{}{"bucket": "metrics"}), gateway, sc)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if result.IsError {
		t.Fatalf("Expected success, got error: %v", result.Content)
	}

	var payload struct {
		Bucket       string   `json:"bucket"`
		Measurements []string `json:"measurements"`
		Count        int      `json:"count"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &payload); err != nil {
		t.Fatalf("Expected JSON result: %v", err)
	}
	if payload.Bucket != "metrics" || payload.Count != 2 {
		t.Errorf("Unexpected payload: %+v", payload)
	}
}

func TestHandleListMeasurementsValidation(t *testing.T) {
	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{name: "missing bucket", args: map[string]interface{}{}},
		{name: "empty bucket", args: map[string]interface{}{"bucket": ""}},
		{name: "non-string bucket", args: map[string]interface{}{"bucket": 42}},
		{name: "nil arguments", args: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := newTestServerContext(t)
			gateway := &mockGateway{t: t, failIfCalled: true}

			result, err := handleListMeasurements(context.Background(),
				toolRequest("list_measurements", tt.args), gateway, sc)
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			if !result.IsError {
				t.Error("Expected a validation error result")
			}
		})
	}
}

func TestHandleExecuteFluxQuery(t *testing.T) {
	sc := newTestServerContext(t)
	gateway := &mockGateway{
		t: t,
		rows: []influx.Row{
			{"_time": "2024-05-01T00:00:00Z", "_value": 1.5, "_measurement": "cpu"},
			{"_time": "2024-05-01T00:01:00Z", "_value": nil, "_measurement": "cpu"},
		},
	}

	result, err := handleExecuteFluxQuery(context.Background(),
		toolRequest("execute_flux_query", map[string]interface{}{
			"query": `from(bucket: "metrics") |> range(start: -1h)`,
		}), gateway, sc)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if result.IsError {
		t.Fatalf("Expected success, got error: %v", result.Content)
	}

	var payload struct {
		Rows  []map[string]interface{} `json:"rows"`
		Count int                      `json:"count"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &payload); err != nil {
		t.Fatalf("Expected JSON result: %v", err)
	}
	if payload.Count != 2 {
		t.Fatalf("Expected 2 rows, got %d", payload.Count)
	}
	if payload.Rows[1]["_value"] != nil {
		t.Errorf("Expected sanitized null value to survive serialization, got %v", payload.Rows[1]["_value"])
	}
}

func TestHandleExecuteFluxQueryValidation(t *testing.T) {
	sc := newTestServerContext(t)
	gateway := &mockGateway{t: t, failIfCalled: true}

	result, err := handleExecuteFluxQuery(context.Background(),
		toolRequest("execute_flux_query", map[string]interface{}{}), gateway, sc)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !result.IsError {
		t.Error("Expected an error for a missing query parameter")
	}
}

func TestHandleGetServerInfo(t *testing.T) {
	sc := newTestServerContext(t)
	gateway := &mockGateway{
		t: t,
		info: influx.ServerInfo{
			Organization: "myorg",
			Host:         "localhost",
			Port:         8086,
			SSLEnabled:   false,
		},
	}

	result, err := handleGetServerInfo(context.Background(), toolRequest("get_server_info", nil), gateway, sc)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if result.IsError {
		t.Fatalf("Expected success, got error: %v", result.Content)
	}

	text := resultText(t, result)
	var info influx.ServerInfo
	if err := json.Unmarshal([]byte(text), &info); err != nil {
		t.Fatalf("Expected JSON result: %v", err)
	}
	if info.Organization != "myorg" || info.Port != 8086 {
		t.Errorf("Unexpected server info: %+v", info)
	}
	if strings.Contains(text, "token") {
		t.Error("Server info result must not mention the token")
	}
}
