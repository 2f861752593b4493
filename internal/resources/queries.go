package resources

// queryTemplate is one static Flux query template exposed as an MCP resource.
// Templates are documentation artifacts: they are returned verbatim and never
// parameterized or executed. Placeholders like {bucket} mark the spots a
// caller substitutes before running the query via execute_flux_query.
type queryTemplate struct {
	Slug        string
	Title       string
	Description string
	Flux        string
}

// queryTemplates is the fixed catalog of nine Flux query templates served
// under flux://queries/<slug>.
var queryTemplates = []queryTemplate{
	{
		Slug:        "list-buckets",
		Title:       "List buckets",
		Description: "List every bucket visible to the current token.",
		Flux: `buckets()
    |> keep(columns: ["name", "id", "retentionPolicy"])`,
	},
	{
		Slug:        "show-measurements",
		Title:       "Show measurements",
		Description: "Discover the measurements present in a bucket.",
		Flux: `import "influxdata/influxdb/schema"

schema.measurements(bucket: "{bucket}")`,
	},
	{
		Slug:        "show-field-keys",
		Title:       "Show field keys",
		Description: "List the field keys of a measurement.",
		Flux: `import "influxdata/influxdb/schema"

schema.fieldKeys(
    bucket: "{bucket}",
    predicate: (r) => r._measurement == "{measurement}",
)`,
	},
	{
		Slug:        "show-tag-keys",
		Title:       "Show tag keys",
		Description: "List the tag keys of a measurement.",
		Flux: `import "influxdata/influxdb/schema"

schema.tagKeys(
    bucket: "{bucket}",
    predicate: (r) => r._measurement == "{measurement}",
)`,
	},
	{
		Slug:        "show-tag-values",
		Title:       "Show tag values",
		Description: "List the values of one tag key within a measurement.",
		Flux: `import "influxdata/influxdb/schema"

schema.tagValues(
    bucket: "{bucket}",
    tag: "{tag}",
    predicate: (r) => r._measurement == "{measurement}",
)`,
	},
	{
		Slug:        "recent-data",
		Title:       "Recent data",
		Description: "Fetch the most recent records of a measurement, newest first.",
		Flux: `from(bucket: "{bucket}")
    |> range(start: -1h)
    |> filter(fn: (r) => r._measurement == "{measurement}")
    |> sort(columns: ["_time"], desc: true)
    |> limit(n: 100)`,
	},
	{
		Slug:        "aggregate-window",
		Title:       "Aggregate window",
		Description: "Downsample a field into fixed windows using a mean aggregate.",
		Flux: `from(bucket: "{bucket}")
    |> range(start: -24h)
    |> filter(fn: (r) => r._measurement == "{measurement}" and r._field == "{field}")
    |> aggregateWindow(every: 5m, fn: mean, createEmpty: false)`,
	},
	{
		Slug:        "last-value",
		Title:       "Last value",
		Description: "Read the latest value of each field of a measurement.",
		Flux: `from(bucket: "{bucket}")
    |> range(start: -24h)
    |> filter(fn: (r) => r._measurement == "{measurement}")
    |> last()`,
	},
	{
		Slug:        "count-records",
		Title:       "Count records",
		Description: "Count the records per field of a measurement over a time range.",
		Flux: `from(bucket: "{bucket}")
    |> range(start: -24h)
    |> filter(fn: (r) => r._measurement == "{measurement}")
    |> group(columns: ["_field"])
    |> count()`,
	},
}
