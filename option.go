package versionary

import (
	"github.com/viant/versionary/model/versioned"
	"github.com/viant/versionary/service/dao"
	"github.com/viant/versionary/service/event"
	"github.com/viant/versionary/service/messaging"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option configures a Service
type Option[P any] func(s *Service[P])

// WithConfig replaces the whole configuration
func WithConfig[P any](config *Config) Option[P] {
	return func(s *Service[P]) {
		if config != nil {
			s.config = config
		}
	}
}

// WithRepository sets the repository, overriding config.Store
func WithRepository[P any](repository dao.Repository[*versioned.Record[P]]) Option[P] {
	return func(s *Service[P]) {
		s.repository = repository
	}
}

// WithTracing enables OpenTelemetry tracing with the stdout exporter. If
// outputFile is empty spans are written to os.Stdout.
func WithTracing[P any](serviceName, serviceVersion, outputFile string) Option[P] {
	return func(s *Service[P]) {
		s.config.Tracing = TracingConfig{
			Enabled:        true,
			ServiceName:    serviceName,
			ServiceVersion: serviceVersion,
			OutputFile:     outputFile,
		}
	}
}

// WithTracingExporter enables tracing with a custom SpanExporter (OTLP,
// Jaeger, Zipkin, in-memory).
func WithTracingExporter[P any](serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option[P] {
	return func(s *Service[P]) {
		s.config.Tracing.Enabled = true
		s.config.Tracing.ServiceName = serviceName
		s.config.Tracing.ServiceVersion = serviceVersion
		s.exporter = exporter
	}
}

// WithChangeQueue publishes every committed transition to queue
func WithChangeQueue[P any](queue messaging.Queue[event.Change]) Option[P] {
	return func(s *Service[P]) {
		s.changes = queue
	}
}
