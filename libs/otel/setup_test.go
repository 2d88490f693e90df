package otelx

import "testing"

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_SAMPLING_RATIO", "")

	cfg := ConfigFromEnv("calculator-service")
	if cfg.Enabled || cfg.OTLPEndpoint != "localhost:4317" || cfg.SampleRatio != 1 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}

	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "jaeger:4317")
	t.Setenv("OTEL_SAMPLING_RATIO", "0.1")

	cfg = ConfigFromEnv("calculator-service")
	if !cfg.Enabled || cfg.OTLPEndpoint != "jaeger:4317" || cfg.SampleRatio != 0.1 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.ServiceName != "calculator-service" {
		t.Fatalf("unexpected service name %q", cfg.ServiceName)
	}
}
