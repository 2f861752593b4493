package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mcp-influxdb",
	Short: "MCP server for read-only InfluxDB v2 access",
	Long: `mcp-influxdb is a Model Context Protocol (MCP) server that provides
read-only access to an InfluxDB v2 database through standardized MCP
interfaces.

This allows AI assistants to test connectivity, discover buckets and
measurements, and execute Flux queries against your InfluxDB instance.
All operations are read-only.

The server has no subcommands; all behavior is configured through
environment variables:

  INFLUXDB_HOST           - InfluxDB host (default: localhost)
  INFLUXDB_PORT           - InfluxDB port (default: 8086)
  INFLUXDB_TOKEN          - Required: API token
  INFLUXDB_ORG            - Required: organization name
  INFLUXDB_USE_SSL        - Use HTTPS (default: false)
  INFLUXDB_VERIFY_SSL     - Verify TLS certificates (default: true)
  INFLUXDB_TIMEOUT        - Store call timeout in milliseconds (default: 10000)
  INFLUXDB_SCHEMA_WINDOW  - Measurement discovery window (default: 720h)
  MCP_TRANSPORT           - stdio, sse, or streamable-http (default: streamable-http)
  MCP_LISTEN_HOST         - Listen host for HTTP transports and the health endpoint
  MCP_LISTEN_PORT         - Listen port (default: 8080)`,
	SilenceUsage: true,
}

var debugMode bool

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// SetVersion sets the version for the root command
func SetVersion(version string) {
	rootCmd.Version = version
}

func init() {
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runServe(debugMode)
	}
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging (default: false)")
}
