// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	aboutfeature "github.com/makanenak/makanenak/internal/app/features/about"
	authgooglefeature "github.com/makanenak/makanenak/internal/app/features/authgoogle"
	contactfeature "github.com/makanenak/makanenak/internal/app/features/contact"
	dashboardfeature "github.com/makanenak/makanenak/internal/app/features/dashboard"
	donationsfeature "github.com/makanenak/makanenak/internal/app/features/donations"
	errorsfeature "github.com/makanenak/makanenak/internal/app/features/errors"
	healthfeature "github.com/makanenak/makanenak/internal/app/features/health"
	homefeature "github.com/makanenak/makanenak/internal/app/features/home"
	loginfeature "github.com/makanenak/makanenak/internal/app/features/login"
	logoutfeature "github.com/makanenak/makanenak/internal/app/features/logout"
	profilefeature "github.com/makanenak/makanenak/internal/app/features/profile"
	registerfeature "github.com/makanenak/makanenak/internal/app/features/register"
	requestsfeature "github.com/makanenak/makanenak/internal/app/features/requests"
	termsfeature "github.com/makanenak/makanenak/internal/app/features/terms"
	userstore "github.com/makanenak/makanenak/internal/app/store/users"
	"github.com/makanenak/makanenak/internal/app/system/auth"
	"github.com/makanenak/makanenak/internal/app/system/geocode"
	"github.com/makanenak/makanenak/internal/app/system/imagestore"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// MakanEnak initializes the template engine, applies session middleware,
// and mounts feature routers for the map of available donations, account
// registration and sign-in, donor listings, recipient requests, and the
// role-based dashboards.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Set up the UserFetcher so LoadSessionUser fetches fresh user data on each request.
	// This ensures role changes and profile updates take effect immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(deps.MongoDatabase))

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	// Create error logger for handlers.
	errLog := errorsfeature.NewErrorLogger(logger)

	// Donation photos go to S3 in production deployments and to a local
	// directory during development; ValidateConfig guarantees one of the
	// two is fully configured.
	images, err := buildImageStore(context.Background(), appCfg)
	if err != nil {
		logger.Error("image store init failed", zap.Error(err))
		return nil, err
	}

	geocoder := geocode.New(appCfg.GeocodeBaseURL, logger)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Locally stored donation photos are served straight from disk.
	if appCfg.StorageType == "local" {
		r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))
	}

	// Public map of available donations
	homeHandler := homefeature.NewHandler(deps.MongoDatabase, errLog, logger)
	r.Mount("/", homefeature.Routes(homeHandler))
	r.Mount("/api/donations", homefeature.APIRoutes(homeHandler))

	aboutHandler := aboutfeature.NewHandler(logger)
	r.Mount("/about", aboutfeature.Routes(aboutHandler))

	contactHandler := contactfeature.NewHandler(logger)
	r.Mount("/contact", contactfeature.Routes(contactHandler))

	termsHandler := termsfeature.NewHandler(logger)
	r.Mount("/terms", termsfeature.Routes(termsHandler))

	// Authentication
	googleEnabled := appCfg.GoogleClientID != "" && appCfg.GoogleClientSecret != ""
	loginHandler := loginfeature.NewHandler(deps.MongoDatabase, sessionMgr, errLog, googleEnabled, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	registerHandler := registerfeature.NewHandler(deps.MongoDatabase, errLog, logger)
	r.Mount("/register", registerfeature.Routes(registerHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	googleHandler := authgooglefeature.NewHandler(
		deps.MongoDatabase,
		sessionMgr,
		errLog,
		appCfg.GoogleClientID,
		appCfg.GoogleClientSecret,
		appCfg.BaseURL,
		logger,
	)
	r.Mount("/auth/google", authgooglefeature.Routes(googleHandler))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	// Profile editing for any signed-in user
	profileHandler := profilefeature.NewHandler(deps.MongoDatabase, errLog, logger)
	r.Mount("/profile", profilefeature.Routes(profileHandler, sessionMgr))

	// Role-based dashboards
	dashboardHandler := dashboardfeature.NewHandler(deps.MongoDatabase, errLog, logger)
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, sessionMgr))

	// Donor listings, plus the request-create route that acts on one
	// donation (owned by the requests feature).
	requestsHandler := requestsfeature.NewHandler(deps.MongoDatabase, errLog, logger)
	donationsHandler := donationsfeature.NewHandler(deps.MongoDatabase, errLog, images, geocoder, logger)
	r.Mount("/donations", donationsfeature.Routes(donationsHandler, sessionMgr, requestsHandler.HandleCreate))
	r.Mount("/api/my-donations", donationsfeature.APIRoutes(donationsHandler, sessionMgr))
	r.With(sessionMgr.RequireSignedIn).Get("/api/geocode/reverse", donationsHandler.ServeReverseGeocode)

	// Request history (role-dispatched: donors see incoming, recipients
	// see their own)
	r.Mount("/requests", requestsfeature.Routes(requestsHandler, sessionMgr))

	return r, nil
}

func buildImageStore(ctx context.Context, appCfg AppConfig) (imagestore.Store, error) {
	if appCfg.StorageType == "s3" {
		return imagestore.NewS3(ctx, appCfg.StorageS3Bucket, appCfg.StorageS3Region)
	}
	return imagestore.NewLocal(appCfg.StorageLocalPath, appCfg.StorageLocalURL), nil
}
