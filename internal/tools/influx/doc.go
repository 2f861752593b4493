// Package influx provides MCP tools for read-only access to InfluxDB v2.
//
// This package implements the following MCP tools:
//
// Query Tools:
//   - execute_flux_query: Execute a Flux query, passed through verbatim
//
// Discovery Tools:
//   - list_buckets: List buckets accessible to the configured organization
//   - list_measurements: List measurements present in a bucket
//
// Status Tools:
//   - test_connection: Probe store connectivity
//   - get_server_info: Report non-secret connection settings
//
// Handlers validate their arguments before delegating to the query gateway;
// malformed arguments produce a tool-level error result and never reach the
// store. Successful results are JSON; non-finite numeric values are
// sanitized by the gateway before serialization.
//
// Example tool usage:
//
//	execute_flux_query: {"query": "from(bucket: \"metrics\") |> range(start: -1h)"}
//	list_buckets: {}
//	list_measurements: {"bucket": "metrics"}
//	test_connection: {}
//	get_server_info: {}
package influx
