// Package cli implements the interactive confsync console used by venue
// staff: it drives syncs, inspects cached data and shows engine status.
package cli

import (
	"bufio"
	"context"
	"os"
	"time"

	"github.com/dmitrijs2005/confsync/internal/assets"
	"github.com/dmitrijs2005/confsync/internal/cache"
	"github.com/dmitrijs2005/confsync/internal/config"
	"github.com/dmitrijs2005/confsync/internal/logging"
	"github.com/dmitrijs2005/confsync/internal/remote"
	"github.com/dmitrijs2005/confsync/internal/services"

	_ "modernc.org/sqlite"
)

type App struct {
	config    *config.Config
	remote    *remote.Client
	status    *services.StatusTracker
	orch      *services.Orchestrator
	reader    *services.Reader
	runlog    *cache.RunLog
	assets    *assets.Cache
	scheduler *services.Scheduler
	log       logging.Logger
	in        *bufio.Scanner
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := cache.Open(ctx, cfg.CacheDSN)
	if err != nil {
		log.Error(ctx, "error initializing cache database", "error", err)
		return nil, err
	}

	store := cache.NewStore(db)
	monitor := cache.NewMonitor(store, log)
	runlog := cache.NewRunLog(db)

	apiClient := remote.NewClient(cfg.RemoteEndpointAddr, cfg.RemoteAccessToken, log)

	status := services.NewStatusTracker()
	orch := services.NewOrchestrator(apiClient, store, runlog, status, log)
	reader := services.NewReader(store, monitor, orch, log)
	scheduler := services.NewScheduler(orch, apiClient, status, log, cfg.SyncInterval, cfg.OnlineCheckInterval)

	app := &App{
		config:    cfg,
		remote:    apiClient,
		status:    status,
		orch:      orch,
		reader:    reader,
		runlog:    runlog,
		scheduler: scheduler,
		log:       log,
		in:        bufio.NewScanner(os.Stdin),
	}

	if cfg.AssetsBucket != "" {
		ac, err := assets.New(ctx, assets.Config{
			Region:    cfg.AssetsRegion,
			Endpoint:  cfg.AssetsEndpoint,
			AccessKey: cfg.AssetsAccessKey,
			SecretKey: cfg.AssetsSecretKey,
			Bucket:    cfg.AssetsBucket,
			Dir:       cfg.AssetsDir,
		}, log)
		if err != nil {
			// Assets are progressive enhancement; keep going without them.
			log.Warn(ctx, "asset cache disabled", "error", err)
		} else {
			app.assets = ac
		}
	}

	return app, nil
}

func (a *App) Run(ctx context.Context) {
	go a.scheduler.Run(ctx)

	if a.remote.TokenExpiresSoon(24 * time.Hour) {
		a.log.Warn(ctx, "access token expires within a day, use 'login' to replace it")
	}

	a.Root(ctx)
}
