// Package server provides the core server infrastructure for the MCP InfluxDB server.
//
// This package contains:
// - ServerContext: Configuration and shared resources management
// - Logger interface: Structured logging abstraction
// - InfluxConfig / ListenConfig: Environment-resolved configuration
//
// Configuration is resolved exactly once at startup via ResolveInfluxConfig
// and ResolveListenConfig and is immutable afterwards. A missing token or
// organization is a ConfigError and must abort startup before any listener
// is opened.
//
// Example usage:
//
//	cfg, err := server.ResolveInfluxConfig()
//	if err != nil {
//	    // fatal: refuse to serve
//	}
//	serverContext, err := server.NewServerContext(ctx,
//	    server.WithInfluxConfig(cfg),
//	    server.WithLogger(logger),
//	)
package server
