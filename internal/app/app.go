// Package app assembles the storefront from configuration: stores, optional
// cache, search and broker clients, use cases and the HTTP router.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/fekuna/storefront-service/config"
	"github.com/fekuna/storefront-service/internal/admin"
	adminH "github.com/fekuna/storefront-service/internal/admin/handler"
	adminRepoPkg "github.com/fekuna/storefront-service/internal/admin/repository"
	adminUCPkg "github.com/fekuna/storefront-service/internal/admin/usecase"
	"github.com/fekuna/storefront-service/internal/auth"
	"github.com/fekuna/storefront-service/internal/category"
	catH "github.com/fekuna/storefront-service/internal/category/handler"
	catRepoPkg "github.com/fekuna/storefront-service/internal/category/repository"
	catUCPkg "github.com/fekuna/storefront-service/internal/category/usecase"
	"github.com/fekuna/storefront-service/internal/event"
	"github.com/fekuna/storefront-service/internal/order"
	orderH "github.com/fekuna/storefront-service/internal/order/handler"
	orderRepoPkg "github.com/fekuna/storefront-service/internal/order/repository"
	orderUCPkg "github.com/fekuna/storefront-service/internal/order/usecase"
	"github.com/fekuna/storefront-service/internal/product"
	prodH "github.com/fekuna/storefront-service/internal/product/handler"
	prodRepoPkg "github.com/fekuna/storefront-service/internal/product/repository"
	prodUCPkg "github.com/fekuna/storefront-service/internal/product/usecase"
	"github.com/fekuna/storefront-service/internal/server"
	statsH "github.com/fekuna/storefront-service/internal/stats/handler"
	statsUCPkg "github.com/fekuna/storefront-service/internal/stats/usecase"
	"github.com/fekuna/storefront-service/internal/whatsapp"
	"github.com/fekuna/storefront-service/pkg/broker"
	"github.com/fekuna/storefront-service/pkg/cache"
	"github.com/fekuna/storefront-service/pkg/database/mongodb"
	"github.com/fekuna/storefront-service/pkg/database/postgres"
	"github.com/fekuna/storefront-service/pkg/logger"
	"github.com/fekuna/storefront-service/pkg/search"
)

type stores struct {
	admins     admin.Repository
	products   product.Repository
	categories category.Repository
	orders     order.Repository
}

type App struct {
	cfg     *config.Config
	logger  logger.ZapLogger
	closers []func() error

	Tokens  *auth.TokenManager
	AdminUC admin.UseCase
	Router  http.Handler
}

// New connects every configured backend. On error, anything already opened
// is closed before returning.
func New(ctx context.Context, cfg *config.Config, log logger.ZapLogger) (*App, error) {
	a := &App{cfg: cfg, logger: log}
	if err := a.build(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) build(ctx context.Context) error {
	cfg, log := a.cfg, a.logger

	st, err := a.openStores(ctx)
	if err != nil {
		return err
	}

	var listCache prodUCPkg.ListCache
	if cfg.RedisEnabled() {
		redisClient, err := cache.NewRedisClient(&cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		a.closers = append(a.closers, redisClient.Close)
		listCache = redisClient
		log.Info("connected to redis", zap.String("addr", cfg.Redis.Addr))
	}

	var index prodUCPkg.SearchIndex
	if cfg.ElasticEnabled() {
		esIndex, err := a.openSearchIndex(ctx)
		if err != nil {
			log.Warn("could not connect to elasticsearch, search falls back to the database", zap.Error(err))
		} else {
			index = esIndex
			log.Info("connected to elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
		}
	}

	var dispatcher event.Dispatcher = event.NopDispatcher{}
	if cfg.KafkaEnabled() {
		producer := broker.NewProducer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		}, func(err error, count int) {
			log.Error("failed to deliver events", zap.Int("count", count), zap.Error(err))
		})
		a.closers = append(a.closers, producer.Close)
		dispatcher = event.NewKafkaDispatcher(producer)
		log.Info("publishing events to kafka", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	a.Tokens = auth.NewTokenManager(cfg.JWT.SecretKey, cfg.JWT.TTL, auth.WithIssuer(cfg.JWT.Issuer))
	passwords := auth.NewBcryptPasswordManager(cfg.Auth.BcryptCost)

	a.AdminUC = adminUCPkg.NewAdminUseCase(st.admins, passwords, a.Tokens, log)
	prodUC := prodUCPkg.NewProductUseCase(st.products, listCache, index, dispatcher, cfg.Redis.ListTTL, log)
	catUC := catUCPkg.NewCategoryUseCase(st.categories, log)
	orderUC := orderUCPkg.NewOrderUseCase(st.orders, dispatcher, log)
	statsUC := statsUCPkg.NewStatsUseCase(st.products, st.orders, log)

	var linker orderH.OrderLinker
	if cfg.WhatsApp.Phone != "" {
		linker = whatsapp.NewLinkBuilder(cfg.WhatsApp.Phone)
	}

	a.Router = server.NewRouter(cfg.Server.CORSAllowedOrigins, a.Tokens, &server.Handlers{
		Admin:    adminH.NewAdminHandler(a.AdminUC, cfg.Auth.RegistrationEnabled, log),
		Product:  prodH.NewProductHandler(prodUC, log),
		Category: catH.NewCategoryHandler(catUC, log),
		Order:    orderH.NewOrderHandler(orderUC, linker, log),
		Stats:    statsH.NewStatsHandler(statsUC, log),
	}, log)

	return nil
}

func (a *App) openStores(ctx context.Context) (*stores, error) {
	switch a.cfg.Database.Driver {
	case config.DriverPostgres:
		db, err := postgres.NewPostgres(a.postgresConfig())
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		a.logger.Info("connected to postgres", zap.String("db_name", a.cfg.Postgres.DBName))
		return postgresStores(db), nil

	case config.DriverMongo:
		client, db, err := mongodb.NewMongo(ctx, &mongodb.Config{
			URI:            a.cfg.Mongo.URI,
			Database:       a.cfg.Mongo.Database,
			ConnectTimeout: a.cfg.Mongo.ConnectTimeout,
			MaxPoolSize:    a.cfg.Mongo.MaxPoolSize,
		})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return client.Disconnect(ctx)
		})
		a.logger.Info("connected to mongodb", zap.String("database", a.cfg.Mongo.Database))
		return mongoStores(ctx, db)

	case config.DriverMemory:
		a.logger.Warn("using in-memory stores, data is lost on exit")
		products := prodRepoPkg.NewMemoryRepository()
		return &stores{
			admins:     adminRepoPkg.NewMemoryRepository(),
			products:   products,
			categories: catRepoPkg.NewProductRepository(products),
			orders:     orderRepoPkg.NewMemoryRepository(),
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", a.cfg.Database.Driver)
	}
}

func postgresStores(db *sqlx.DB) *stores {
	return &stores{
		admins:     adminRepoPkg.NewPGRepository(db),
		products:   prodRepoPkg.NewPGRepository(db),
		categories: catRepoPkg.NewPGRepository(db),
		orders:     orderRepoPkg.NewPGRepository(db),
	}
}

func mongoStores(ctx context.Context, db *mongo.Database) (*stores, error) {
	admins := adminRepoPkg.NewMongoRepository(db)
	products := prodRepoPkg.NewMongoRepository(db)
	orders := orderRepoPkg.NewMongoRepository(db)

	for _, ensure := range []func(context.Context) error{
		admins.EnsureIndexes,
		products.EnsureIndexes,
		orders.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			return nil, err
		}
	}

	return &stores{
		admins:     admins,
		products:   products,
		categories: catRepoPkg.NewMongoRepository(db),
		orders:     orders,
	}, nil
}

func (a *App) openSearchIndex(ctx context.Context) (*prodRepoPkg.ESIndex, error) {
	client, err := search.NewClient(&search.Config{
		Addresses: a.cfg.Elastic.Addresses,
		Username:  a.cfg.Elastic.Username,
		Password:  a.cfg.Elastic.Password,
	})
	if err != nil {
		return nil, err
	}
	index := prodRepoPkg.NewESIndex(client)
	if err := index.EnsureIndex(ctx); err != nil {
		return nil, err
	}
	return index, nil
}

func (a *App) postgresConfig() *postgres.Config {
	return PostgresConfig(&a.cfg.Postgres)
}

// PostgresConfig converts the env section into the driver configuration.
func PostgresConfig(c *config.PostgresConfig) *postgres.Config {
	return &postgres.Config{
		Host:            c.Host,
		Port:            c.Port,
		User:            c.User,
		Password:        c.Password,
		DBName:          c.DBName,
		SSLMode:         c.SSLMode,
		MaxOpenConns:    c.MaxOpenConns,
		MaxIdleConns:    c.MaxIdleConns,
		ConnMaxLifetime: time.Duration(c.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(c.ConnMaxIdleTime) * time.Second,
	}
}

// Close releases backends in reverse order of opening, so pending events are
// flushed before the stores go away.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("failed to close resource", zap.Error(err))
		}
	}
	a.closers = nil
}
