// Package influx implements the read-only query gateway to InfluxDB v2.
//
// The gateway wraps the official influxdb-client-go v2 library and exposes a
// minimal, stable surface:
//
//   - TestConnection: connectivity probe, never fails
//   - ListBuckets: buckets accessible to the configured organization
//   - ListMeasurements: schema discovery over a bounded recent window
//   - ExecuteQuery: verbatim Flux passthrough with row assembly
//   - ServerInfo: non-secret connection settings
//
// The gateway does zero query planning: Flux text is handed to the store
// unmodified and the store is solely responsible for rejecting malformed
// queries. Its added value is consistent error shaping (see Error and Kind)
// and JSON-safe result rows: non-finite floats are normalized to nil before
// anything is serialized.
//
// All store calls are bounded by the configured timeout. There is no retry,
// backoff, or reconnect logic beyond what the underlying client provides.
package influx
