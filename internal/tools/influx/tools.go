package influx

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/mcp-influxdb/internal/influx"
	"github.com/giantswarm/mcp-influxdb/internal/server"
)

// Gateway is the query gateway surface the tools delegate to. It is satisfied
// by *influx.Client and by mocks in tests.
type Gateway interface {
	TestConnection(ctx context.Context) influx.ConnectionStatus
	ListBuckets(ctx context.Context) ([]influx.Bucket, error)
	ListMeasurements(ctx context.Context, bucket string) ([]string, error)
	ExecuteQuery(ctx context.Context, flux string) ([]influx.Row, error)
	ServerInfo() influx.ServerInfo
}

// RegisterInfluxTools registers the fixed InfluxDB tool catalog with the MCP
// server. The catalog is built once at startup and never changes.
func RegisterInfluxTools(s *mcpserver.MCPServer, sc *server.ServerContext, gateway Gateway) error {
	// test_connection tool
	testConnectionTool := mcp.NewTool("test_connection",
		mcp.WithDescription("Test the connection to InfluxDB and return status information"),
	)

	s.AddTool(testConnectionTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleTestConnection(ctx, request, gateway, sc)
	})

	// list_buckets tool
	listBucketsTool := mcp.NewTool("list_buckets",
		mcp.WithDescription("List all buckets accessible to the configured organization"),
	)

	s.AddTool(listBucketsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleListBuckets(ctx, request, gateway, sc)
	})

	// list_measurements tool
	listMeasurementsTool := mcp.NewTool("list_measurements",
		mcp.WithDescription("List the measurements present in a bucket"),
		mcp.WithString("bucket",
			mcp.Required(),
			mcp.Description("Name of the bucket to inspect"),
		),
	)

	s.AddTool(listMeasurementsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleListMeasurements(ctx, request, gateway, sc)
	})

	// execute_flux_query tool
	executeFluxQueryTool := mcp.NewTool("execute_flux_query",
		mcp.WithDescription("Execute a read-only Flux query against InfluxDB. The query is passed through verbatim."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Flux query string"),
		),
	)

	s.AddTool(executeFluxQueryTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleExecuteFluxQuery(ctx, request, gateway, sc)
	})

	// get_server_info tool
	getServerInfoTool := mcp.NewTool("get_server_info",
		mcp.WithDescription("Get the non-secret InfluxDB connection settings (organization, host, port, SSL)"),
	)

	s.AddTool(getServerInfoTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleGetServerInfo(ctx, request, gateway, sc)
	})

	return nil
}

// stringArg extracts a required non-empty string argument from the request.
func stringArg(request mcp.CallToolRequest, name string) (string, bool) {
	argsMap, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return "", false
	}
	value, ok := argsMap[name].(string)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// errorResult builds a tool-level error result. Tool errors never terminate
// the process; they are reported to the caller and the server keeps serving.
func errorResult(format string, args ...interface{}) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: fmt.Sprintf(format, args...),
			},
		},
	}
}

// jsonResult marshals a value into an indented JSON tool result. Gateway
// results are sanitized before they get here, so marshaling cannot encounter
// non-finite floats.
func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding result: %v", err), nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: string(data),
			},
		},
	}, nil
}

// handleTestConnection handles the test_connection tool
func handleTestConnection(ctx context.Context, _ mcp.CallToolRequest, gateway Gateway, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	sc.Logger().Debug("Testing InfluxDB connection")

	status := gateway.TestConnection(ctx)
	return jsonResult(status)
}

// handleListBuckets handles the list_buckets tool
func handleListBuckets(ctx context.Context, _ mcp.CallToolRequest, gateway Gateway, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	sc.Logger().Debug("Listing buckets")

	buckets, err := gateway.ListBuckets(ctx)
	if err != nil {
		sc.Logger().Error("Failed to list buckets", "error", err)
		return errorResult("Error listing buckets: %v", err), nil
	}

	return jsonResult(map[string]interface{}{
		"buckets": buckets,
		"count":   len(buckets),
	})
}

// handleListMeasurements handles the list_measurements tool
func handleListMeasurements(ctx context.Context, request mcp.CallToolRequest, gateway Gateway, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	bucket, ok := stringArg(request, "bucket")
	if !ok {
		return errorResult("Error: bucket parameter is required and must be a non-empty string"), nil
	}

	sc.Logger().Debug("Listing measurements", "bucket", bucket)

	measurements, err := gateway.ListMeasurements(ctx, bucket)
	if err != nil {
		sc.Logger().Error("Failed to list measurements", "error", err, "bucket", bucket)
		return errorResult("Error listing measurements for bucket '%s': %v", bucket, err), nil
	}

	return jsonResult(map[string]interface{}{
		"bucket":       bucket,
		"measurements": measurements,
		"count":        len(measurements),
	})
}

// handleExecuteFluxQuery handles the execute_flux_query tool
func handleExecuteFluxQuery(ctx context.Context, request mcp.CallToolRequest, gateway Gateway, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	query, ok := stringArg(request, "query")
	if !ok {
		return errorResult("Error: query parameter is required and must be a non-empty string"), nil
	}

	sc.Logger().Debug("Executing Flux query", "query", query)

	rows, err := gateway.ExecuteQuery(ctx, query)
	if err != nil {
		sc.Logger().Error("Failed to execute query", "error", err)
		return errorResult("Error executing query: %v", err), nil
	}

	return jsonResult(map[string]interface{}{
		"rows":  rows,
		"count": len(rows),
	})
}

// handleGetServerInfo handles the get_server_info tool
func handleGetServerInfo(_ context.Context, _ mcp.CallToolRequest, gateway Gateway, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	sc.Logger().Debug("Getting server info")

	return jsonResult(gateway.ServerInfo())
}
