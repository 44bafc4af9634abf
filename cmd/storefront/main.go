package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/fekuna/storefront-service/config"
	"github.com/fekuna/storefront-service/internal/admin/dto"
	"github.com/fekuna/storefront-service/internal/app"
	"github.com/fekuna/storefront-service/internal/event"
	"github.com/fekuna/storefront-service/internal/server"
	"github.com/fekuna/storefront-service/migrations"
	"github.com/fekuna/storefront-service/pkg/broker"
	"github.com/fekuna/storefront-service/pkg/database/postgres"
	"github.com/fekuna/storefront-service/pkg/logger"
)

func main() {
	cliApp := &cli.App{
		Name:   "storefront",
		Usage:  "storefront catalog and order API",
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "start the HTTP API",
				Action: serve,
			},
			{
				Name:  "migrate",
				Usage: "apply the postgres schema",
				Subcommands: []*cli.Command{
					{Name: "up", Usage: "apply all pending migrations", Action: migrateAction(postgres.Up)},
					{Name: "down", Usage: "roll back all migrations", Action: migrateAction(postgres.Down)},
				},
			},
			{
				Name:  "admin",
				Usage: "manage admin accounts",
				Subcommands: []*cli.Command{
					{
						Name:  "create",
						Usage: "create an admin account",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "email", Required: true},
							&cli.StringFlag{Name: "password", Required: true},
							&cli.StringFlag{Name: "name"},
						},
						Action: createAdmin,
					},
				},
			},
			{
				Name:  "events",
				Usage: "inspect published domain events",
				Subcommands: []*cli.Command{
					{Name: "tail", Usage: "print events from the kafka topic as they arrive", Action: tailEvents},
				},
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup() (*config.Config, logger.ZapLogger, error) {
	cfg, err := config.LoadEnv()
	if err != nil {
		return nil, nil, err
	}

	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.IsDevelopment() {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
		logConfig.Level = cfg.Logger.Level
	}
	return cfg, logger.NewZapLogger(logConfig), nil
}

func serve(c *cli.Context) error {
	cfg, appLogger, err := setup()
	if err != nil {
		return err
	}
	defer appLogger.Sync()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Error("could not start storefront", zap.Error(err))
		return err
	}
	defer a.Close()

	return server.New(&cfg.Server, a.Router, appLogger).Run(ctx)
}

func migrateAction(direction postgres.Direction) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, appLogger, err := setup()
		if err != nil {
			return err
		}
		defer appLogger.Sync()

		if cfg.Database.Driver != config.DriverPostgres {
			return fmt.Errorf("migrations only apply to the postgres driver, DB_DRIVER is %q", cfg.Database.Driver)
		}

		version, err := postgres.Migrate(migrations.FS, migrations.PostgresDir, app.PostgresConfig(&cfg.Postgres), direction)
		if err != nil {
			return err
		}
		appLogger.Info("migrations applied", zap.Uint("version", version))
		return nil
	}
}

func createAdmin(c *cli.Context) error {
	cfg, appLogger, err := setup()
	if err != nil {
		return err
	}
	defer appLogger.Sync()

	a, err := app.New(c.Context, cfg, appLogger)
	if err != nil {
		return err
	}
	defer a.Close()

	admin, err := a.AdminUC.Register(c.Context, &dto.RegisterInput{
		Email:    c.String("email"),
		Password: c.String("password"),
		Name:     c.String("name"),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "created admin %s (%s)\n", admin.Email, admin.ID)
	return nil
}

func tailEvents(c *cli.Context) error {
	cfg, appLogger, err := setup()
	if err != nil {
		return err
	}
	defer appLogger.Sync()

	if !cfg.KafkaEnabled() {
		return errors.New("KAFKA_BROKERS is not set")
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer := broker.NewConsumer(&broker.ConsumerConfig{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	})
	defer consumer.Close()

	enc := json.NewEncoder(c.App.Writer)
	listener := event.NewListener(consumer, func(_ context.Context, rec event.Record) error {
		return enc.Encode(rec)
	}, appLogger)

	appLogger.Info("tailing events", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	listener.Start(ctx)
	return nil
}
