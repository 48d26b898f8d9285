package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Gobusters/ectoenv"
	"github.com/Gobusters/ectologger"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/lecturia/bookgraph/config"
	"github.com/lecturia/bookgraph/internal/platform/database"
	"github.com/lecturia/bookgraph/internal/platform/startup"
	"github.com/lecturia/bookgraph/internal/platform/tracing"
	"github.com/lecturia/bookgraph/internal/repositories/ingestlog"
	"github.com/lecturia/bookgraph/internal/server"
	"github.com/lecturia/bookgraph/pkg/events"
	"github.com/lecturia/bookgraph/pkg/graph"
	"github.com/lecturia/bookgraph/pkg/ingest"
	"github.com/lecturia/bookgraph/pkg/kafka"
	"github.com/lecturia/bookgraph/pkg/routes/health"
)

const version = "1.0.0"

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	var cfg config.Config
	if err := ectoenv.BindEnv(&cfg); err != nil {
		panic(err)
	}

	logger, flush := newLogger(cfg)
	defer flush()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx, cfg, logger); err != nil {
		logger.WithContext(ctx).WithError(err).Error("Service terminated")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger ectologger.Logger) error {
	provider, err := tracing.NewProvider(cfg.AppName)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = provider.Shutdown(shutdownCtx)
	}()

	graphClient, err := graph.NewClient(graph.Config{
		Host:     cfg.GraphDBHost,
		Port:     cfg.GraphDBPort,
		Username: cfg.GraphDBUser,
		Password: cfg.GraphDBPassword,
		Database: cfg.GraphDBName,
	}, logger)
	if err != nil {
		return err
	}

	upserts := graph.NewUpsertService(graphClient, logger)
	ingestor := ingest.NewIngestor(upserts, logger)

	var auditLog *ingestlog.Repository
	var auditDB *sqlx.DB
	if cfg.IngestLogEnabled {
		db, err := database.Connect(ctx, database.Config{
			Driver:          cfg.DatabaseDriver,
			Host:            cfg.DatabaseHost,
			Port:            cfg.DatabasePort,
			Username:        cfg.DatabaseUserName,
			Password:        cfg.DatabasePassword,
			Name:            cfg.DatabaseName,
			SSLMode:         cfg.DatabaseSSLMode,
			MaxOpenConns:    cfg.DatabaseMaxOpenConns,
			MaxIdleConns:    cfg.DatabaseMaxIdleConns,
			ConnMaxLifetime: cfg.DatabaseConnMaxLifetime,
		}, logger)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.Migrate(db, cfg.DatabaseMigrationFolderPath, logger); err != nil {
			return err
		}

		auditLog = ingestlog.NewRepository(db, logger)
		auditDB = db
	}

	var emitter *events.Emitter
	var producer *kafka.Producer
	if cfg.KafkaEventsEnabled {
		producer = kafka.NewProducer(kafka.ProducerConfig{
			Brokers:      cfg.KafkaBrokers,
			Topic:        cfg.KafkaOutputTopic,
			BatchSize:    cfg.KafkaBatchSize,
			BatchTimeout: time.Duration(cfg.KafkaBatchTimeout) * time.Millisecond,
			RequiredAcks: cfg.KafkaRequiredAcks,
			Compression:  cfg.KafkaCompression,
		}, logger)
		defer producer.Close()

		emitter = events.NewEmitter(producer, logger)
	}

	pipeline := newPipeline(ingestor, auditLog, emitter, logger)

	checker := health.NewChecker(graphClient, auditDB, version)

	srv := server.New(cfg, logger, server.Services{
		Entities:      graph.NewEntityService(graphClient, logger),
		Relationships: graph.NewRelationshipService(graphClient, logger),
		Queries:       graph.NewQueryService(graphClient, logger),
		Seed:          graph.NewSeedService(graphClient, cfg.SeedFieldTerminator, logger),
		Pipeline:      pipeline,
		AuditLog:      auditLog,
		Health:        checker,
	})

	boot := startup.NewStartup(logger, cfg.StartupMaxAttempts)
	boot.AddDependency(&graphDependency{client: graphClient})
	boot.AddDependency(srv)

	if cfg.KafkaConsumerEnabled {
		consumer := kafka.NewConsumer(cfg, logger, fileDropHandler(pipeline, logger))
		boot.AddDependency(&consumerDependency{consumer: consumer})
	}

	if err := boot.Start(ctx); err != nil {
		return err
	}
	checker.SetReady(true)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.WithContext(ctx).Info("Shutdown signal received")
	checker.SetReady(false)

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return boot.Stop(stopCtx)
}

func newLogger(cfg config.Config) (ectologger.Logger, func()) {
	var zlog *zap.Logger
	var err error
	if cfg.PrettyLogs {
		zlog, err = zap.NewDevelopment()
	} else {
		zlog, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}

	logger := ectologger.NewEctoLogger(func(msg ectologger.EctoLogMessage) {
		zlog.Info("log", zap.Any("entry", msg))
	})

	return logger, func() { _ = zlog.Sync() }
}

func newPipeline(ingestor *ingest.Ingestor, auditLog *ingestlog.Repository, emitter *events.Emitter, logger ectologger.Logger) *ingest.Pipeline {
	var audit ingest.AuditSink
	if auditLog != nil {
		audit = auditLog
	}
	var reporter ingest.Reporter
	if emitter != nil {
		reporter = emitter
	}
	return ingest.NewPipeline(ingestor, audit, reporter, logger)
}

// fileDropHandler feeds consumed file drops through the ingestion pipeline
func fileDropHandler(pipeline *ingest.Pipeline, logger ectologger.Logger) kafka.MessageHandler {
	return func(ctx context.Context, msg *kafka.IncomingMessage) error {
		files := msg.FileMap()
		if len(files) == 0 {
			logger.WithContext(ctx).WithField("batch_id", msg.GetBatchID()).Warn("File drop contained no files")
			return nil
		}

		report, err := pipeline.Process(ctx, files)
		if err != nil {
			return err
		}

		logger.WithContext(ctx).WithFields(map[string]any{
			"batch_id": report.BatchID,
			"summary":  report.Summary(),
		}).Info("File drop ingested")
		return nil
	}
}
