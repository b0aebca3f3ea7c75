package container

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jaevor/go-nanoid"
	"github.com/quotagate/quotagate/internal/audit"
	auditstore "github.com/quotagate/quotagate/internal/audit/store"
	"github.com/quotagate/quotagate/internal/handlers"
	"github.com/quotagate/quotagate/internal/health"
	"github.com/quotagate/quotagate/internal/messaging"
	"github.com/quotagate/quotagate/internal/middleware"
	"github.com/quotagate/quotagate/internal/ratelimit"
	"github.com/quotagate/quotagate/internal/store"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
)

// Options configures the server and consumer binaries.
type Options struct {
	Port        int    `default:"8888"           help:"Port to listen on"                               short:"p"`
	RedisAddr   string `default:"localhost:6379" help:"Redis server address"                            short:"r"`
	PostgresURL string `default:""               help:"Postgres URL for persisting denial events"`
	LogFormat   string `default:"console"        help:"Log format: console or json"`
	MaxCounters int    `default:"10000"          help:"Max tracked rate limit counters, 0 for no cap"`
}

// LoggerPackage provides the zap logger.
func LoggerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*zap.Logger, error) {
		options := do.MustInvoke[*Options](i)

		if options.LogFormat == "json" {
			return zap.NewProduction()
		}

		return zap.NewDevelopment()
	})
}

// RedisPackage provides the shared Redis client backing the denial event
// stream.
func RedisPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*redis.Client, error) {
		options := do.MustInvoke[*Options](i)

		return redis.NewClient(&redis.Options{
			Addr: options.RedisAddr,
		}), nil
	})
}

// RateLimitPackage provides the policy registry, the counter store, the
// gate and the usage reporter.
func RateLimitPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*ratelimit.Registry, error) {
		return ratelimit.NewRegistry(), nil
	})

	do.Provide(injector, func(i *do.Injector) (ratelimit.Store, error) {
		options := do.MustInvoke[*Options](i)

		return store.NewWindowMemoryStore(store.WithMaxEntries(options.MaxCounters)), nil
	})

	do.Provide(injector, func(i *do.Injector) (*ratelimit.Gate, error) {
		return ratelimit.NewGate(
			do.MustInvoke[*ratelimit.Registry](i),
			do.MustInvoke[ratelimit.Store](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	do.Provide(injector, func(i *do.Injector) (*ratelimit.Reporter, error) {
		return ratelimit.NewReporter(
			do.MustInvoke[*ratelimit.Registry](i),
			do.MustInvoke[ratelimit.Store](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
}

// PublisherGroupPackage provides the Redis stream publisher and the typed
// publish function for denial events. Each process stamps its events with a
// generated instance tag.
func PublisherGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		client := do.MustInvoke[*redis.Client](i)

		publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
			Client: client,
		}, watermill.NewStdLogger(false, false))
		if err != nil {
			return nil, fmt.Errorf("create redis stream publisher: %w", err)
		}

		return messaging.NewPublisherGroup(publisher), nil
	})

	do.Provide(injector, func(i *do.Injector) (messaging.Publish[audit.RequestDeniedEvent], error) {
		group := do.MustInvoke[*messaging.PublisherGroup](i)

		tag, err := nanoid.Standard(8)
		if err != nil {
			return nil, fmt.Errorf("create instance tag generator: %w", err)
		}

		publish := messaging.NewPublishFunc[audit.RequestDeniedEvent](group.Publisher(), audit.TopicRequestDenied)

		return audit.NewDeniedPublishFunc(publish, tag()), nil
	})
}

// ConsumerGroupPackage provides the consumer group persisting denial
// events. Without a Postgres URL the events are only logged.
func ConsumerGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (audit.Store, error) {
		options := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		if options.PostgresURL == "" {
			logger.Info("no postgres url configured, denial events will only be logged")

			return auditstore.NewNoop(logger), nil
		}

		pool, err := pgxpool.New(context.Background(), options.PostgresURL)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}

		return auditstore.NewPostgres(pool), nil
	})

	do.Provide(injector, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		client := do.MustInvoke[*redis.Client](i)
		logger := do.MustInvoke[*zap.Logger](i)

		subscriber, err := redisstream.NewSubscriber(redisstream.SubscriberConfig{
			Client:        client,
			ConsumerGroup: "audit",
		}, watermill.NewStdLogger(false, false))
		if err != nil {
			return nil, fmt.Errorf("create redis stream subscriber: %w", err)
		}

		recorder := audit.NewRecorder(do.MustInvoke[audit.Store](i), logger)

		group := messaging.NewConsumerGroup(subscriber, logger)
		group.Add(messaging.NewConsumer(subscriber, audit.TopicRequestDenied, recorder.HandleRequestDenied, logger))

		return group, nil
	})
}

// HTTPPackage provides the router and the API with middleware and routes
// attached.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		router := do.MustInvoke[*chi.Mux](i)
		logger := do.MustInvoke[*zap.Logger](i)
		gate := do.MustInvoke[*ratelimit.Gate](i)
		reporter := do.MustInvoke[*ratelimit.Reporter](i)
		redisClient := do.MustInvoke[*redis.Client](i)
		publishDenied := do.MustInvoke[messaging.Publish[audit.RequestDeniedEvent]](i)

		api := humachi.New(router, huma.DefaultConfig("QuotaGate", "1.0.0"))
		api.UseMiddleware(
			middleware.RequestMeta(api),
			middleware.RateLimiter(api, gate, nil, publishDenied, logger),
		)

		handlers.RegisterRoutes(api, handlers.NewDemoHandler(), handlers.NewRateInfoHandler(reporter))
		health.RegisterRoutes(api, health.NewHandler(health.NewRedisChecker(redisClient)))

		return api, nil
	})
}
