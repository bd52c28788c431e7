package observability

import (
	"context"

	"github.com/grafana/pyroscope-go"
	"github.com/riskibarqy/roster-wayback/internal/config"
	"github.com/riskibarqy/roster-wayback/internal/platform/logging"
)

var profileTypes = []pyroscope.ProfileType{
	pyroscope.ProfileCPU,
	pyroscope.ProfileAllocSpace,
	pyroscope.ProfileInuseSpace,
	pyroscope.ProfileGoroutines,
	pyroscope.ProfileMutexDuration,
	pyroscope.ProfileBlockDuration,
}

func pyroscopeTags(cfg config.Config, component string) map[string]string {
	tags := map[string]string{
		"env":     cfg.AppEnv,
		"service": cfg.ServiceName,
		"storage": cfg.StorageDriver,
	}
	if component != "" {
		tags["component"] = component
	}
	return tags
}

// InitPyroscope starts continuous profiling for one binary. component is
// attached as a tag so api and scrape profiles can be told apart.
func InitPyroscope(cfg config.Config, component string, logger *logging.Logger) (func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	if !cfg.PyroscopeEnabled {
		logger.Info("pyroscope disabled", "reason", "PYROSCOPE_ENABLED=false")
		return func() error { return nil }, nil
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName:   cfg.PyroscopeAppName,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopeBasicAuthPassword,
		UploadRate:        cfg.PyroscopeUploadRate,
		Tags:              pyroscopeTags(cfg, component),
		ProfileTypes:      profileTypes,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("pyroscope enabled",
		"server_address", cfg.PyroscopeServerAddress,
		"application", cfg.PyroscopeAppName,
		"component", component,
	)

	return profiler.Stop, nil
}

// ProfileRun runs fn under a pyroscope "job" label. Without a started
// profiler the label is set but nothing is uploaded.
func ProfileRun(ctx context.Context, job string, fn func(context.Context)) {
	pyroscope.TagWrapper(ctx, pyroscope.Labels("job", job), fn)
}
