package cmd

import (
	"fmt"

	"country-api/core/config"
	"country-api/core/database"
	"country-api/core/logger"
	"country-api/core/reconcile"
	"country-api/core/sources"
	"country-api/core/storage"
	"country-api/feature/countries"
	"country-api/feature/snapshot"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime is the wired object graph shared by the commands.
type runtime struct {
	cfg      *config.Config
	logger   *zap.Logger
	db       *gorm.DB
	store    *countries.Store
	reporter *snapshot.Reporter
	engine   *reconcile.Engine
}

// bootstrap loads configuration, connects the database and builds the
// refresh pipeline. The caller must call close.
func bootstrap() (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database connection required: %w", err)
	}
	if err := countries.Migrate(db); err != nil {
		_ = database.Close(db)
		return nil, err
	}
	logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	store := countries.NewStore(db)
	reporter := snapshot.NewReporter(store, client, cfg.Storage.Bucket, cfg.Snapshot, logg)

	httpClient := sources.NewClient(cfg.Sources, logg)
	countrySource, rateSource := sources.New(cfg.Sources, httpClient)

	engine := reconcile.NewEngine(countrySource, rateSource, store,
		reconcile.WithReporter(reporter),
		reconcile.WithLogger(logg),
	)

	return &runtime{
		cfg:      cfg,
		logger:   logg,
		db:       db,
		store:    store,
		reporter: reporter,
		engine:   engine,
	}, nil
}

func (r *runtime) close() {
	if err := database.Close(r.db); err != nil {
		r.logger.Warn("Failed to close database", zap.Error(err))
	}
	_ = r.logger.Sync()
}
