package tracing

// Config defines configuration options for the global tracer.
type Config struct {
	// Disable turns tracing into a no-op; spans are created but never exported.
	Disable bool `yaml:"disable"`

	// ServiceName is reported as the service.name resource attribute.
	ServiceName string `yaml:"service_name" default:"iconreg"`

	// ServiceVersion is reported as the service.version resource attribute.
	ServiceVersion string `yaml:"service_version" default:"unknown"`

	// ExporterHost is the OTLP gRPC collector host.
	ExporterHost string `yaml:"exporter_host" default:"localhost"`

	// ExporterPort is the OTLP gRPC collector port.
	ExporterPort int `yaml:"exporter_port" default:"4317"`

	// SampleRate controls the trace sampling fraction in [0, 1].
	SampleRate float64 `yaml:"sample_rate" default:"1.0"`

	// Tags are added as resource attributes to every span.
	Tags map[string]string `yaml:"tags"`
}
