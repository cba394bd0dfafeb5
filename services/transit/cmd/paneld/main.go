package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	"github.com/japandatascience/timeline-mapping/lib/stream"
	"github.com/japandatascience/timeline-mapping/services/transit/ingest"
	"github.com/japandatascience/timeline-mapping/services/transit/panel"
	"github.com/japandatascience/timeline-mapping/services/transit/routecache"
	_ "github.com/mattn/go-sqlite3" // Blank import for sql drivers is "standard"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	watchDirEnvVar      = "WATCH_DIR"
	dbPathEnvVar        = "DB_PATH"
	cacheBucketEnvVar   = "CACHE_BUCKET"
	cacheMaxAgeEnvVar   = "CACHE_MAX_AGE"
	pruneScheduleEnvVar = "PRUNE_SCHEDULE"
)

func logRoutes(logger *zap.Logger, sink *stream.Sink) {
	for msg := range sink.Messages() {
		logger.Info("route published",
			zap.String("route", msg.String()),
		)
	}
}

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	viper.SetEnvPrefix("NVS")
	viper.BindEnv(watchDirEnvVar)
	viper.BindEnv(dbPathEnvVar)
	viper.BindEnv(cacheBucketEnvVar)
	viper.BindEnv(cacheMaxAgeEnvVar)
	viper.BindEnv(pruneScheduleEnvVar)

	viper.SetDefault(dbPathEnvVar, "routecache.db")
	viper.SetDefault(cacheBucketEnvVar, "15m")
	viper.SetDefault(cacheMaxAgeEnvVar, "720h")
	viper.SetDefault(pruneScheduleEnvVar, "@daily")

	watchDir := viper.GetString(watchDirEnvVar)
	if len(watchDir) < 1 {
		logger.Fatal("watch dir must be set",
			zap.String("env_var", "NVS_"+watchDirEnvVar),
		)
	}

	sqldb, err := sql.Open("sqlite3", viper.GetString(dbPathEnvVar))
	if err != nil {
		logger.Fatal("unable to open db",
			zap.Error(err),
		)
	}
	defer sqldb.Close()

	persister, err := routecache.NewSQLPersister(logger, sqldb)
	if err != nil {
		logger.Fatal("unable to setup db",
			zap.Error(err),
		)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cache := routecache.NewCache(logger, persister)
	if err := cache.Load(ctx); err != nil {
		logger.Fatal("unable to load route cache",
			zap.Error(err),
		)
	}

	scheduler := cron.New()
	_, err = cache.SchedulePrune(scheduler, viper.GetString(pruneScheduleEnvVar), viper.GetDuration(cacheMaxAgeEnvVar))
	if err != nil {
		logger.Fatal("invalid prune schedule",
			zap.String("schedule", viper.GetString(pruneScheduleEnvVar)),
			zap.Error(err),
		)
	}
	scheduler.Start()
	defer scheduler.Stop()

	source := stream.NewSource(logger)
	sink := source.NewSink()
	defer sink.Close()
	go logRoutes(logger, sink)

	ingester := ingest.NewIngester(logger, panel.NewParser(logger), cache, source, viper.GetDuration(cacheBucketEnvVar))

	count, err := ingester.IngestDir(ctx, watchDir)
	if err != nil {
		logger.Fatal("unable to read watch dir",
			zap.String("dir", watchDir),
			zap.Error(err),
		)
	}
	logger.Info("ingested existing captures",
		zap.Int("count", count),
	)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		cancel()
	}()

	if err := ingester.Watch(ctx, watchDir); err != nil && err != context.Canceled {
		logger.Error("error watching captures",
			zap.Error(err),
		)
	}
}
