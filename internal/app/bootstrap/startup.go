// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/chroniclehq/chronicle/internal/app/system/auth"
	"github.com/chroniclehq/chronicle/internal/app/system/timeouts"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	secure := coreCfg.Env == "prod"
	if err := auth.InitSessionStore(appCfg.SessionKey, appCfg.SessionDomain, secure, logger); err != nil {
		return err
	}

	timeouts.Configure(timeouts.Config{
		Short:  parseDuration(appCfg.TimeoutShort),
		Medium: parseDuration(appCfg.TimeoutMedium),
		Long:   parseDuration(appCfg.TimeoutLong),
		Batch:  parseDuration(appCfg.TimeoutBatch),
	})

	return nil
}

// parseDuration returns zero for blank or malformed values, which
// timeouts.Configure treats as "keep the default".
func parseDuration(s string) time.Duration {
	if s == "" {
		return 0
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}
	return d
}
