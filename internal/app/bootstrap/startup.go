// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/makanenak/makanenak/internal/app/resources"
	donationstore "github.com/makanenak/makanenak/internal/app/store/donations"
	"github.com/makanenak/makanenak/internal/app/system/timeouts"
)

// expirySweepInterval controls how often available donations past their
// expiry date are flipped to expired.
const expirySweepInterval = time.Hour

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. It is the
// place to load shared resources (like templates), warm caches, or perform
// any app-wide setup that depends on config and backends.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	go runExpirySweep(deps, logger)

	return nil
}

// runExpirySweep periodically marks donations past their expiry date as
// expired so stale listings drop off the map. Runs once immediately, then
// on a fixed interval for the life of the process.
func runExpirySweep(deps DBDeps, logger *zap.Logger) {
	store := donationstore.New(deps.MongoDatabase)

	sweep := func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeouts.Long())
		defer cancel()

		n, err := store.ExpirePast(ctx, time.Now().UTC())
		if err != nil {
			logger.Warn("donation expiry sweep failed", zap.Error(err))
			return
		}
		if n > 0 {
			logger.Info("expired stale donations", zap.Int64("count", n))
		}
	}

	sweep()
	for range time.Tick(expirySweepInterval) {
		sweep()
	}
}
