package influx

import (
	"context"
	"crypto/tls"
	"fmt"
	"math"
	"sort"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/domain"

	"github.com/giantswarm/mcp-influxdb/internal/server"
)

// Client is the read-only query gateway to InfluxDB. It owns the sole
// connection to the store; all store access passes through it. The client is
// stateless per call and safe for concurrent use.
type Client struct {
	client  influxdb2.Client
	query   api.QueryAPI
	buckets api.BucketsAPI
	config  server.InfluxConfig
	logger  server.Logger
}

// NewClient creates a new gateway using the official InfluxDB v2 client
// library. The connection is established lazily by the underlying client on
// first use and reused for the process lifetime.
func NewClient(config server.InfluxConfig, logger server.Logger) *Client {
	logger.Debug("Creating new InfluxDB client", "url", config.URL(), "org", config.Org)

	options := influxdb2.DefaultOptions().
		SetHTTPRequestTimeout(uint(config.Timeout.Seconds()))
	if config.UseSSL && !config.VerifySSL {
		options = options.SetTLSConfig(&tls.Config{InsecureSkipVerify: true})
		logger.Warn("TLS certificate verification disabled")
	}

	client := influxdb2.NewClientWithOptions(config.URL(), config.Token, options)

	return &Client{
		client:  client,
		query:   client.QueryAPI(config.Org),
		buckets: client.BucketsAPI(),
		config:  config,
		logger:  logger,
	}
}

// Close releases the underlying HTTP connections.
func (c *Client) Close() {
	c.client.Close()
}

// ConnectionStatus is the result of a connectivity probe.
type ConnectionStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Version string `json:"version,omitempty"`
	URL     string `json:"url"`
	Org     string `json:"org"`
}

// TestConnection issues a lightweight health call against the store. It never
// returns an error; failures are reported in the returned status instead.
func (c *Client) TestConnection(ctx context.Context) ConnectionStatus {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	status := ConnectionStatus{
		URL: c.config.URL(),
		Org: c.config.Org,
	}

	health, err := c.client.Health(ctx)
	if err != nil {
		status.Status = "error"
		status.Message = err.Error()
		return status
	}
	if health.Status != domain.HealthCheckStatusPass {
		status.Status = "error"
		status.Message = fmt.Sprintf("health check reported %s", health.Status)
		if health.Message != nil {
			status.Message = *health.Message
		}
		return status
	}

	status.Status = "connected"
	status.Message = "Connection successful"
	if health.Message != nil {
		status.Message = *health.Message
	}
	if health.Version != nil {
		status.Version = *health.Version
	}
	return status
}

// Bucket identifies an accessible bucket.
type Bucket struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// ListBuckets lists the buckets accessible to the configured organization,
// in the order the store returns them.
func (c *Client) ListBuckets(ctx context.Context) ([]Bucket, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	found, err := c.buckets.FindBucketsByOrgName(ctx, c.config.Org)
	if err != nil {
		return nil, upstreamErr("listing buckets for organization %q: %w", c.config.Org, err)
	}

	buckets := make([]Bucket, 0, len(*found))
	for _, b := range *found {
		bucket := Bucket{Name: b.Name}
		if b.Id != nil {
			bucket.ID = *b.Id
		}
		buckets = append(buckets, bucket)
	}
	return buckets, nil
}

// ListMeasurements discovers the measurements present in a bucket over the
// configured schema window. A nonexistent bucket is a not-found error,
// distinct from upstream query failures.
func (c *Client) ListMeasurements(ctx context.Context, bucket string) ([]string, error) {
	// An unreachable store must surface as an upstream error, not as a
	// missing bucket, so existence is checked through the bucket listing.
	buckets, err := c.ListBuckets(ctx)
	if err != nil {
		return nil, err
	}
	exists := false
	for _, b := range buckets {
		if b.Name == bucket {
			exists = true
			break
		}
	}
	if !exists {
		return nil, notFoundErr("bucket %q does not exist", bucket)
	}

	// Bounded discovery window; an unbounded scan over a large bucket is
	// unreasonably expensive.
	flux := fmt.Sprintf(`import "influxdata/influxdb/schema"

schema.measurements(bucket: %q, start: -%s)`, bucket, c.config.SchemaWindow)

	rows, err := c.ExecuteQuery(ctx, flux)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var measurements []string
	for _, row := range rows {
		if name, ok := row["_value"].(string); ok && name != "" && !seen[name] {
			seen[name] = true
			measurements = append(measurements, name)
		}
	}
	sort.Strings(measurements)
	return measurements, nil
}

// Row is a single query result record, mapping column name to a sanitized,
// JSON-serializable scalar value.
type Row map[string]interface{}

// ExecuteQuery passes a Flux query verbatim to the store's query engine and
// assembles the streamed result into rows. The query is neither parsed nor
// validated here; the store reports malformed queries and those surface as
// upstream errors with the store's message attached.
func (c *Client) ExecuteQuery(ctx context.Context, flux string) ([]Row, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	c.logger.Debug("Executing Flux query", "query", flux)

	result, err := c.query.Query(ctx, flux)
	if err != nil {
		return nil, upstreamErr("executing query: %w", err)
	}

	rows := []Row{}
	for result.Next() {
		values := result.Record().Values()
		row := make(Row, len(values))
		for key, value := range values {
			// result/table are stream bookkeeping columns, not data.
			if key == "result" || key == "table" {
				continue
			}
			row[key] = sanitizeValue(value)
		}
		rows = append(rows, row)
	}
	if err := result.Err(); err != nil {
		return nil, upstreamErr("reading query result: %w", err)
	}

	c.logger.Debug("Query completed", "rows", len(rows))
	return rows, nil
}

// ServerInfo holds the resolved non-secret configuration fields.
type ServerInfo struct {
	Organization string `json:"organization"`
	Host         string `json:"host"`
	Port         int    `json:"port"`
	SSLEnabled   bool   `json:"ssl_enabled"`
}

// ServerInfo returns the non-secret connection settings. The authentication
// token is never included.
func (c *Client) ServerInfo() ServerInfo {
	return ServerInfo{
		Organization: c.config.Org,
		Host:         c.config.Host,
		Port:         c.config.Port,
		SSLEnabled:   c.config.UseSSL,
	}
}

// sanitizeValue normalizes values that JSON cannot represent. Non-finite
// floats become nil; everything else passes through unchanged.
func sanitizeValue(v interface{}) interface{} {
	switch f := v.(type) {
	case float64:
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
	case float32:
		if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
			return nil
		}
	}
	return v
}
