package observability

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/league-stats/internal/config"
	"github.com/riskibarqy/league-stats/internal/platform/logging"
)

const (
	RoleAPI    = "api"
	RoleWorker = "worker"
)

// Telemetry owns the tracing and profiling hooks of one process.
type Telemetry struct {
	logger *logging.Logger
	stops  []namedStop
}

type namedStop struct {
	name string
	fn   func(context.Context) error
}

// Start enables whatever cfg turns on for role. Only the api role serves pprof.
// On error, hooks that already started are shut down before returning.
func Start(cfg config.Config, role string, logger *logging.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = logging.Default()
	}
	t := &Telemetry{logger: logger}

	shutdownTracing, err := InitUptrace(cfg, role, logger)
	if err != nil {
		return nil, fmt.Errorf("init uptrace: %w", err)
	}
	t.stops = append(t.stops, namedStop{name: "uptrace", fn: shutdownTracing})

	stopProfiler, err := InitPyroscope(cfg, role, logger)
	if err != nil {
		_ = t.Shutdown(context.Background())
		return nil, fmt.Errorf("init pyroscope: %w", err)
	}
	t.stops = append(t.stops, namedStop{name: "pyroscope", fn: func(context.Context) error { return stopProfiler() }})

	if role == RoleAPI {
		srv, err := StartPprofServer(cfg, logger)
		if err != nil {
			_ = t.Shutdown(context.Background())
			return nil, fmt.Errorf("start pprof: %w", err)
		}
		t.stops = append(t.stops, namedStop{name: "pprof", fn: func(ctx context.Context) error {
			return StopPprofServer(ctx, srv, logger)
		}})
	}
	return t, nil
}

// Shutdown stops hooks in reverse start order and joins their errors.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}
	var errs []error
	for i := len(t.stops) - 1; i >= 0; i-- {
		stop := t.stops[i]
		if err := stop.fn(ctx); err != nil {
			t.logger.Warn("telemetry shutdown failed", "hook", stop.name, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", stop.name, err))
		}
	}
	t.stops = nil
	return errors.Join(errs...)
}

// serviceNameFor keeps the api on the bare service name and suffixes other roles.
func serviceNameFor(cfg config.Config, role string) string {
	if role == "" || role == RoleAPI {
		return cfg.ServiceName
	}
	return cfg.ServiceName + "-" + role
}
