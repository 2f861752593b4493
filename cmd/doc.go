// Package cmd provides the command-line interface for the MCP InfluxDB server.
//
// The CLI is a single entry point with no subcommands: running the binary
// starts the server, and all behavior is configured through the environment.
// Startup fails before any listener opens when the configuration is invalid
// (missing token or organization, unparsable numeric settings).
//
// Environment Variables:
//   - INFLUXDB_HOST: InfluxDB host (default: localhost)
//   - INFLUXDB_PORT: InfluxDB port (default: 8086)
//   - INFLUXDB_TOKEN: Required API token
//   - INFLUXDB_ORG: Required organization name
//   - INFLUXDB_USE_SSL: Use HTTPS (default: false)
//   - INFLUXDB_VERIFY_SSL: Verify TLS certificates (default: true)
//   - INFLUXDB_TIMEOUT: Store call timeout in milliseconds (default: 10000)
//   - INFLUXDB_SCHEMA_WINDOW: Measurement discovery window (default: 720h)
//   - MCP_TRANSPORT: stdio, sse, or streamable-http (default: streamable-http)
//   - MCP_LISTEN_HOST: Listen host for HTTP transports and the health endpoint
//   - MCP_LISTEN_PORT: Listen port (default: 8080)
//
// Example usage:
//
//	INFLUXDB_TOKEN=... INFLUXDB_ORG=myorg mcp-influxdb
//	MCP_TRANSPORT=stdio INFLUXDB_TOKEN=... INFLUXDB_ORG=myorg mcp-influxdb
package cmd
