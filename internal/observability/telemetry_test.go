package observability

import (
	"context"
	"testing"

	"github.com/NachoSamo/SamoScore/internal/config"
	"github.com/NachoSamo/SamoScore/internal/domain/match"
	"github.com/NachoSamo/SamoScore/internal/platform/logging"
)

func TestStartTelemetry_AllDisabled(t *testing.T) {
	t.Parallel()

	cfg := config.Config{
		ServiceName:           "samoscore-api",
		ServiceVersion:        "dev",
		AppEnv:                config.EnvDev,
		MatchGroupingStrategy: match.StrategyDisplay,
	}

	tel, err := StartTelemetry(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("start telemetry: %v", err)
	}
	if tel.tracing || tel.profiler != nil || tel.pprof != nil {
		t.Fatalf("expected nothing started, got %+v", tel)
	}
	if err := tel.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if err := tel.Shutdown(context.Background()); err != nil {
		t.Fatalf("second shutdown: %v", err)
	}
}

func TestStartTelemetry_UptraceEnabledWithoutDSNStaysOff(t *testing.T) {
	t.Parallel()

	cfg := config.Config{UptraceEnabled: true, ServiceName: "samoscore-api", AppEnv: config.EnvDev}

	tel, err := StartTelemetry(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("start telemetry: %v", err)
	}
	if tel.tracing {
		t.Fatalf("expected tracing off without a dsn")
	}
}

func TestStartTelemetry_PprofServesIndex(t *testing.T) {
	t.Parallel()

	cfg := config.Config{PprofEnabled: true, PprofAddr: "127.0.0.1:0", AppEnv: config.EnvDev}

	tel, err := StartTelemetry(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("start telemetry: %v", err)
	}
	if tel.pprof == nil {
		t.Fatalf("expected pprof server")
	}
	if err := tel.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestResourceAttributes(t *testing.T) {
	t.Parallel()

	attrs := resourceAttributes(config.Config{MatchGroupingStrategy: match.StrategyUnified, SessionStore: config.SessionStoreRedis})
	got := map[string]string{}
	for _, kv := range attrs {
		got[string(kv.Key)] = kv.Value.AsString()
	}
	if got["samoscore.grouping_strategy"] != "unified" || got["samoscore.session_store"] != "redis" {
		t.Fatalf("unexpected attributes %v", got)
	}
}
