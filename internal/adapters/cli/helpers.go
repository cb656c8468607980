package cli

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/andrescamacho/recipe-randomiser/internal/adapters/csvdata"
	"github.com/andrescamacho/recipe-randomiser/internal/adapters/logging"
	"github.com/andrescamacho/recipe-randomiser/internal/adapters/metrics"
	"github.com/andrescamacho/recipe-randomiser/internal/adapters/persistence"
	"github.com/andrescamacho/recipe-randomiser/internal/application/common"
	"github.com/andrescamacho/recipe-randomiser/internal/application/progression"
	"github.com/andrescamacho/recipe-randomiser/internal/application/randomiser"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/catalogue"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/result"
	"github.com/andrescamacho/recipe-randomiser/internal/infrastructure/config"
	"github.com/andrescamacho/recipe-randomiser/internal/infrastructure/database"
	"github.com/andrescamacho/recipe-randomiser/internal/infrastructure/pidfile"
)

// app bundles everything a command needs. close must be called when the
// command is done.
type app struct {
	cfg         *config.Config
	mediator    common.Mediator
	repo        result.ArtifactRepository
	source      *csvdata.FileSource
	checkpoints []progression.Checkpoint
	collector   *metrics.Collector
	logger      *logging.StreamLogger

	db       *gorm.DB
	lock     *pidfile.PIDFile
	closeLog func() error
}

// setupApp loads configuration and wires the data files, the artifact store,
// metrics and the mediator. The returned context carries the logger.
func setupApp(ctx context.Context) (*app, context.Context, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, ctx, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, closeLog, err := logging.NewFromConfig(cfg.Logging)
	if err != nil {
		return nil, ctx, fmt.Errorf("failed to set up logging: %w", err)
	}
	ctx = common.WithLogger(ctx, logger)

	taxonomy := catalogue.DefaultTaxonomy().WithCraftable(cfg.Randomiser.ExtraCategories...)
	checkpoints, warnings := checkpointsFromConfig(cfg.Randomiser.Checkpoints, taxonomy)
	for _, w := range warnings {
		logger.Log(common.LevelWarning, w.Error(), map[string]interface{}{
			"setting": "randomiser.checkpoints",
		})
	}

	a := &app{
		cfg:         cfg,
		logger:      logger,
		closeLog:    closeLog,
		checkpoints: checkpoints,
	}

	if cfg.Database.FileBacked() {
		lock := pidfile.ForStore(cfg.Database.Path)
		if err := lock.Acquire(); err != nil {
			_ = a.close()
			return nil, ctx, fmt.Errorf("artifact store busy: %w", err)
		}
		a.lock = lock
	}

	db, err := database.Open(&cfg.Database)
	if err != nil {
		_ = a.close()
		return nil, ctx, fmt.Errorf("failed to connect to database: %w", err)
	}
	a.db = db
	a.repo = persistence.NewGormArtifactRepository(db)

	var (
		passMetrics randomiser.PassMetrics
		middlewares []common.Middleware
	)
	if cfg.Metrics.Enabled {
		collector, err := metrics.NewCollector(cfg.Metrics.Namespace)
		if err != nil {
			_ = a.close()
			return nil, ctx, fmt.Errorf("failed to register metrics: %w", err)
		}
		a.collector = collector
		passMetrics = collector.Pass
		middlewares = append(middlewares, metrics.PrometheusMiddleware(collector.Requests))
	}

	a.source = csvdata.NewFileSource(
		cfg.Data.Catalogue,
		cfg.Data.Wrecks,
		cfg.Data.Regions,
		taxonomy,
		progression.NodeBounds(a.checkpoints),
	)

	m, err := randomiser.NewMediator(a.source, a.repo, passMetrics, nil, middlewares...)
	if err != nil {
		_ = a.close()
		return nil, ctx, err
	}
	a.mediator = m

	return a, ctx, nil
}

// close flushes metrics and releases the database, its lock and the log file
func (a *app) close() error {
	var errs []string
	if a.collector != nil && a.cfg.Metrics.Textfile != "" {
		if err := a.collector.WriteToTextfile(a.cfg.Metrics.Textfile); err != nil {
			errs = append(errs, fmt.Sprintf("metrics: %v", err))
		}
	}
	if a.db != nil {
		if err := database.Close(a.db); err != nil {
			errs = append(errs, fmt.Sprintf("database: %v", err))
		}
	}
	if a.lock != nil {
		if err := a.lock.Release(); err != nil {
			errs = append(errs, fmt.Sprintf("lock: %v", err))
		}
	}
	if a.closeLog != nil {
		if err := a.closeLog(); err != nil {
			errs = append(errs, fmt.Sprintf("log file: %v", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("cleanup failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// randomiseCommand builds a randomise request from configuration
func (a *app) randomiseCommand() randomiser.RandomiseCommand {
	r := a.cfg.Randomiser
	return randomiser.RandomiseCommand{
		Seed:             r.Seed,
		SpawnChoice:      r.SpawnPoint,
		UseFish:          r.UseFish,
		UseSeeds:         r.UseSeeds,
		ShuffleDataboxes: r.Databoxes == "shuffle",
		Checkpoints:      a.checkpoints,
		MaxIterations:    r.MaxIterations,
		Persist:          true,
	}
}

// loadResult decodes the artifact with the given id, or the latest one
func (a *app) loadResult(ctx context.Context, id string) (*result.Artifact, *result.Result, error) {
	var (
		artifact *result.Artifact
		err      error
	)
	if id == "" {
		artifact, err = a.repo.Latest(ctx)
	} else {
		artifact, err = a.repo.FindByID(ctx, id)
	}
	if err != nil {
		return nil, nil, err
	}
	if artifact == nil {
		if id == "" {
			return nil, nil, fmt.Errorf("no stored artifacts: run 'randomiser randomise' first")
		}
		return nil, nil, fmt.Errorf("artifact %s not found", id)
	}

	resp, err := a.mediator.Send(ctx, &randomiser.DecodeArtifactQuery{Encoded: artifact.Encoded})
	if err != nil {
		return nil, nil, err
	}
	decoded, ok := resp.(*randomiser.DecodeArtifactResponse)
	if !ok {
		return nil, nil, fmt.Errorf("unexpected response type %T", resp)
	}
	return artifact, decoded.Result, nil
}

// checkpointsFromConfig converts configured checkpoints. No configured
// checkpoints selects the built-in progression. Unknown unlock tags are
// dropped and returned as warnings.
func checkpointsFromConfig(configured []config.CheckpointConfig, taxonomy *catalogue.Taxonomy) ([]progression.Checkpoint, []error) {
	if len(configured) == 0 {
		return progression.DefaultCheckpoints(), nil
	}

	var warnings []error
	out := make([]progression.Checkpoint, 0, len(configured))
	for _, c := range configured {
		cp := progression.Checkpoint{Name: c.Name, MaxDepth: c.MaxDepth}
		if c.Unbounded {
			cp.MaxDepth = progression.Unbounded
		}
		for _, tag := range c.Unlocks {
			category, err := taxonomy.Parse(tag)
			if err != nil {
				warnings = append(warnings, err)
				continue
			}
			cp.Unlocks = append(cp.Unlocks, category)
		}
		out = append(out, cp)
	}
	return out, warnings
}

// maskPassword hides the password of a connection URL for display
func maskPassword(url string) string {
	scheme := strings.Index(url, "://")
	at := strings.LastIndex(url, "@")
	if scheme < 0 || at < scheme {
		return url
	}
	credentials := url[scheme+3 : at]
	user, _, hasPassword := strings.Cut(credentials, ":")
	if !hasPassword {
		return url
	}
	return url[:scheme+3] + user + ":****" + url[at:]
}
