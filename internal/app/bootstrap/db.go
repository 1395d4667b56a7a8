// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	donationstore "github.com/makanenak/makanenak/internal/app/store/donations"
	identitystore "github.com/makanenak/makanenak/internal/app/store/identities"
	notificationstore "github.com/makanenak/makanenak/internal/app/store/notifications"
	"github.com/makanenak/makanenak/internal/app/store/oauthstate"
	requeststore "github.com/makanenak/makanenak/internal/app/store/requests"
	userstore "github.com/makanenak/makanenak/internal/app/store/users"
)

// EnsureSchema creates the indexes each collection needs. It runs once at
// startup, after ConnectDB and before the HTTP handler is built.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.MongoDatabase

	if err := identitystore.New(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensure identity indexes: %w", err)
	}
	if err := userstore.New(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensure user indexes: %w", err)
	}
	if err := donationstore.New(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensure donation indexes: %w", err)
	}
	if err := requeststore.New(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensure request indexes: %w", err)
	}
	if err := notificationstore.New(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensure notification indexes: %w", err)
	}
	if err := oauthstate.New(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensure oauth state indexes: %w", err)
	}

	logger.Info("database schema ensured")
	return nil
}
