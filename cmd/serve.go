package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/giantswarm/mcp-influxdb/internal/health"
	"github.com/giantswarm/mcp-influxdb/internal/influx"
	"github.com/giantswarm/mcp-influxdb/internal/resources"
	"github.com/giantswarm/mcp-influxdb/internal/server"
	influxtools "github.com/giantswarm/mcp-influxdb/internal/tools/influx"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// simpleLogger provides basic logging for the server
type simpleLogger struct{}

func (l *simpleLogger) Debug(msg string, args ...interface{}) {
	log.Printf("[DEBUG] %s %v", msg, args)
}

func (l *simpleLogger) Info(msg string, args ...interface{}) {
	log.Printf("[INFO] %s %v", msg, args)
}

func (l *simpleLogger) Warn(msg string, args ...interface{}) {
	log.Printf("[WARN] %s %v", msg, args)
}

func (l *simpleLogger) Error(msg string, args ...interface{}) {
	log.Printf("[ERROR] %s %v", msg, args)
}

// runServe contains the main server logic. Configuration is resolved from the
// environment before anything listens; a configuration error aborts startup.
func runServe(debugMode bool) error {
	// Resolve configuration first and fail fast. The health endpoint must
	// never become reachable with an invalid configuration.
	influxConfig, err := server.ResolveInfluxConfig()
	if err != nil {
		return err
	}
	listenConfig, err := server.ResolveListenConfig()
	if err != nil {
		return err
	}

	// Setup graceful shutdown - listen for both SIGINT and SIGTERM
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Create server context
	serverContext, err := server.NewServerContext(shutdownCtx,
		server.WithDebugMode(debugMode),
		server.WithLogger(&simpleLogger{}),
		server.WithInfluxConfig(influxConfig),
	)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}
	defer func() {
		if err := serverContext.Shutdown(); err != nil {
			log.Printf("Error during server context shutdown: %v", err)
		}
	}()

	// Log configuration (never the token)
	fmt.Printf("InfluxDB configuration:\n")
	fmt.Printf("  Server URL: %s\n", influxConfig.URL())
	fmt.Printf("  Organization: %s\n", influxConfig.Org)
	fmt.Printf("  TLS verification: %t\n", influxConfig.VerifySSL)
	fmt.Printf("  Timeout: %s\n", influxConfig.Timeout)

	// Create the query gateway
	gateway := influx.NewClient(influxConfig, serverContext.Logger())
	defer gateway.Close()

	// Startup connectivity probe. A failing probe does not abort startup;
	// the store may come up later and the health endpoint reports it.
	probe := gateway.TestConnection(shutdownCtx)
	if probe.Status == "connected" {
		serverContext.Logger().Info("InfluxDB connection successful", "version", probe.Version)
	} else {
		serverContext.Logger().Warn("InfluxDB connection failed; queries will fail until the store is reachable",
			"message", probe.Message)
	}

	// Create MCP server
	mcpSrv := mcpserver.NewMCPServer("mcp-influxdb", rootCmd.Version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, false),
	)

	// Register the tool catalog and the query template resources
	if err := influxtools.RegisterInfluxTools(mcpSrv, serverContext, gateway); err != nil {
		return fmt.Errorf("failed to register InfluxDB tools: %w", err)
	}
	resources.RegisterQueryResources(mcpSrv)

	healthHandler := health.NewHandler(gateway, serverContext.Logger())

	fmt.Printf("Starting MCP InfluxDB server with %s transport...\n", listenConfig.Transport)

	// Start the appropriate server based on transport type
	switch listenConfig.Transport {
	case "stdio":
		return runStdioServer(mcpSrv, healthHandler, listenConfig.Addr(), shutdownCtx)
	case "sse":
		return runSSEServer(mcpSrv, healthHandler, listenConfig.Addr(), shutdownCtx)
	case "streamable-http":
		return runStreamableHTTPServer(mcpSrv, healthHandler, listenConfig.Addr(), shutdownCtx)
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, sse, streamable-http)", listenConfig.Transport)
	}
}

// runStdioServer runs the MCP server over STDIO. The health endpoint still
// needs plain HTTP, so it gets its own listener on the configured address.
func runStdioServer(mcpSrv *mcpserver.MCPServer, healthHandler http.Handler, addr string, ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("/health", healthHandler)
	httpServer := &http.Server{Addr: addr, Handler: mux}

	healthDone := make(chan error, 1)
	go func() {
		defer close(healthDone)
		fmt.Printf("Health endpoint listening on %s/health\n", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			healthDone <- err
		}
	}()

	// Start the server in a goroutine so we can handle shutdown signals
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	select {
	case <-ctx.Done():
		fmt.Println("Shutdown signal received, stopping server...")
	case err := <-serverDone:
		if err != nil {
			shutdownHTTPServer(httpServer)
			return fmt.Errorf("server stopped with error: %w", err)
		}
		fmt.Println("Server stopped normally")
	case err := <-healthDone:
		if err != nil {
			return fmt.Errorf("health endpoint stopped with error: %w", err)
		}
	}

	shutdownHTTPServer(httpServer)
	fmt.Println("Server gracefully stopped")
	return nil
}

// runSSEServer runs the server with SSE transport, sharing one HTTP listener
// with the health endpoint.
func runSSEServer(mcpSrv *mcpserver.MCPServer, healthHandler http.Handler, addr string, ctx context.Context) error {
	sseServer := mcpserver.NewSSEServer(mcpSrv,
		mcpserver.WithSSEEndpoint("/sse"),
		mcpserver.WithMessageEndpoint("/message"),
	)

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())
	mux.Handle("/health", healthHandler)

	fmt.Printf("SSE server starting on %s\n", addr)
	fmt.Printf("  SSE endpoint: /sse\n")
	fmt.Printf("  Message endpoint: /message\n")
	fmt.Printf("  Health endpoint: /health\n")

	return serveHTTP(&http.Server{Addr: addr, Handler: mux}, ctx)
}

// runStreamableHTTPServer runs the server with Streamable HTTP transport,
// sharing one HTTP listener with the health endpoint.
func runStreamableHTTPServer(mcpSrv *mcpserver.MCPServer, healthHandler http.Handler, addr string, ctx context.Context) error {
	httpTransport := mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithEndpointPath("/mcp"),
	)

	mux := http.NewServeMux()
	mux.Handle("/mcp", httpTransport)
	mux.Handle("/health", healthHandler)

	fmt.Printf("Streamable HTTP server starting on %s\n", addr)
	fmt.Printf("  HTTP endpoint: /mcp\n")
	fmt.Printf("  Health endpoint: /health\n")

	return serveHTTP(&http.Server{Addr: addr, Handler: mux}, ctx)
}

// serveHTTP runs an HTTP server until it fails or the context is cancelled,
// then drains it gracefully.
func serveHTTP(httpServer *http.Server, ctx context.Context) error {
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverDone <- err
		}
	}()

	select {
	case <-ctx.Done():
		fmt.Println("Shutdown signal received, stopping HTTP server...")
		shutdownHTTPServer(httpServer)
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("HTTP server stopped with error: %w", err)
		}
		fmt.Println("HTTP server stopped normally")
	}

	fmt.Println("HTTP server gracefully stopped")
	return nil
}

func shutdownHTTPServer(httpServer *http.Server) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down HTTP server: %v", err)
	}
}
