package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/league-stats/internal/config"
	"github.com/riskibarqy/league-stats/internal/platform/logging"
)

func TestStart_AllDisabled(t *testing.T) {
	for _, role := range []string{RoleAPI, RoleWorker} {
		t.Run(role, func(t *testing.T) {
			cfg := config.Config{ServiceName: "league-stats", AppEnv: config.EnvDev}

			telemetry, err := Start(cfg, role, logging.NewNop())
			if err != nil {
				t.Fatalf("start telemetry: %v", err)
			}
			if err := telemetry.Shutdown(context.Background()); err != nil {
				t.Fatalf("shutdown telemetry: %v", err)
			}
			if err := telemetry.Shutdown(context.Background()); err != nil {
				t.Fatalf("second shutdown: %v", err)
			}
		})
	}
}

func TestInitUptrace_EmptyDSNStaysDisabled(t *testing.T) {
	cfg := config.Config{UptraceEnabled: true, ServiceName: "league-stats"}

	shutdown, err := InitUptrace(cfg, RoleWorker, logging.NewNop())
	if err != nil {
		t.Fatalf("init uptrace: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown uptrace: %v", err)
	}
}

func TestTelemetryShutdown_ReverseOrderJoinsErrors(t *testing.T) {
	var order []string
	boom := errors.New("flush timed out")
	telemetry := &Telemetry{
		logger: logging.NewNop(),
		stops: []namedStop{
			{name: "uptrace", fn: func(context.Context) error { order = append(order, "uptrace"); return boom }},
			{name: "pyroscope", fn: func(context.Context) error { order = append(order, "pyroscope"); return nil }},
		},
	}

	err := telemetry.Shutdown(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined flush error, got %v", err)
	}
	if len(order) != 2 || order[0] != "pyroscope" || order[1] != "uptrace" {
		t.Fatalf("unexpected shutdown order: %v", order)
	}
}

func TestServiceNameFor(t *testing.T) {
	cfg := config.Config{ServiceName: "league-stats"}
	if got := serviceNameFor(cfg, RoleAPI); got != "league-stats" {
		t.Fatalf("api service name = %q", got)
	}
	if got := serviceNameFor(cfg, RoleWorker); got != "league-stats-worker" {
		t.Fatalf("worker service name = %q", got)
	}
}

func TestStopPprofServer_NilServer(t *testing.T) {
	if err := StopPprofServer(context.Background(), nil, nil); err != nil {
		t.Fatalf("stop nil server: %v", err)
	}
}
