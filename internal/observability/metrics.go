package observability

import (
	otelmetric "go.opentelemetry.io/otel/metric"
)

// Metrics holds the metric instruments shared by the authorizer, the table
// handler, and the local gateway. Instruments are created once at startup.
type Metrics struct {
	// Authorization gate
	AuthDecisions   otelmetric.Int64Counter
	AuthErrors      otelmetric.Int64Counter
	KeyFetchLatency otelmetric.Float64Histogram
	KeysFetched     otelmetric.Int64Histogram

	// Table handler
	TableListLatency otelmetric.Float64Histogram
	TableListErrors  otelmetric.Int64Counter
	TablesListed     otelmetric.Int64Histogram

	// Local gateway HTTP surface
	HTTPRequestDuration otelmetric.Float64Histogram
	HTTPRequestTotal    otelmetric.Int64Counter
	HTTPRequestErrors   otelmetric.Int64Counter
	HTTPThrottled       otelmetric.Int64Counter
}

// NewMetrics creates all metric instruments from the given Meter.
func NewMetrics(meter otelmetric.Meter) (*Metrics, error) {
	var m Metrics
	var err error

	m.AuthDecisions, err = meter.Int64Counter(
		"auth.decisions",
		otelmetric.WithDescription("Authorization decisions by effect"),
	)
	if err != nil {
		return nil, err
	}

	m.AuthErrors, err = meter.Int64Counter(
		"auth.errors",
		otelmetric.WithDescription("Authorization requests that produced no decision"),
	)
	if err != nil {
		return nil, err
	}

	m.KeyFetchLatency, err = meter.Float64Histogram(
		"auth.key_fetch.latency",
		otelmetric.WithUnit("ms"),
		otelmetric.WithDescription("API key list fetch latency in milliseconds"),
	)
	if err != nil {
		return nil, err
	}

	m.KeysFetched, err = meter.Int64Histogram(
		"auth.keys.fetched",
		otelmetric.WithDescription("Number of API keys fetched per decision"),
	)
	if err != nil {
		return nil, err
	}

	m.TableListLatency, err = meter.Float64Histogram(
		"tables.list.latency",
		otelmetric.WithUnit("ms"),
		otelmetric.WithDescription("Table list latency in milliseconds"),
	)
	if err != nil {
		return nil, err
	}

	m.TableListErrors, err = meter.Int64Counter(
		"tables.list.errors",
		otelmetric.WithDescription("Failed table list calls"),
	)
	if err != nil {
		return nil, err
	}

	m.TablesListed, err = meter.Int64Histogram(
		"tables.listed",
		otelmetric.WithDescription("Number of tables returned per request"),
	)
	if err != nil {
		return nil, err
	}

	m.HTTPRequestDuration, err = meter.Float64Histogram(
		"http.request.duration",
		otelmetric.WithUnit("ms"),
		otelmetric.WithDescription("HTTP request duration in milliseconds"),
	)
	if err != nil {
		return nil, err
	}

	m.HTTPRequestTotal, err = meter.Int64Counter(
		"http.request.total",
		otelmetric.WithDescription("Total HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	m.HTTPRequestErrors, err = meter.Int64Counter(
		"http.request.errors",
		otelmetric.WithDescription("HTTP request errors (4xx and 5xx)"),
	)
	if err != nil {
		return nil, err
	}

	m.HTTPThrottled, err = meter.Int64Counter(
		"http.request.throttled",
		otelmetric.WithDescription("HTTP requests rejected by stage throttling"),
	)
	if err != nil {
		return nil, err
	}

	return &m, nil
}
