// Package bootstrap assembles the application: configuration, infrastructure
// clients, stores, services and the HTTP router. Both the server binary and
// the CLI commands boot through here so they agree on wiring.
package bootstrap

import (
	"context"
	"time"

	"github.com/sedastudio/boutique/app/jobs"
	"github.com/sedastudio/boutique/app/mailers"
	"github.com/sedastudio/boutique/app/routes"
	"github.com/sedastudio/boutique/app/services"
	"github.com/sedastudio/boutique/app/store"
	"github.com/sedastudio/boutique/config"
	"github.com/sedastudio/boutique/pkg/cache"
	"github.com/sedastudio/boutique/pkg/database"
	"github.com/sedastudio/boutique/pkg/event"
	"github.com/sedastudio/boutique/pkg/logger"
	"github.com/sedastudio/boutique/pkg/metrics"
	"github.com/sedastudio/boutique/pkg/middleware"
	"github.com/sedastudio/boutique/pkg/notification"
	"github.com/sedastudio/boutique/pkg/payment"
	"github.com/sedastudio/boutique/pkg/queue"
	"github.com/sedastudio/boutique/pkg/reqid"
	"github.com/sedastudio/boutique/pkg/router"
	"github.com/sedastudio/boutique/pkg/schedule"
	"github.com/sedastudio/boutique/pkg/searchindex"
	"github.com/sedastudio/boutique/pkg/sidestore"
	"github.com/sedastudio/boutique/pkg/workerpool"
)

// catalogChanged is fired whenever stock moves; a background listener
// re-syncs the remote search index.
const catalogChanged = "catalog.changed"

// tokenCacheTTL bounds how long a side-store token lookup is reused before
// we revalidate against the external auth API.
const tokenCacheTTL = 5 * time.Minute

// App holds everything a binary needs after boot.
type App struct {
	Router   *router.Router
	Search   *services.SearchService
	Orders   *services.OrderService
	Products *services.ProductService
	Side     *sidestore.Store
	Pool     *workerpool.Pool

	closers []func()
}

// New boots the application. Infrastructure that is down (Redis, the
// side-store database, the payment provider) degrades with a warning
// instead of aborting: the storefront keeps serving the catalog from the
// in-process stores.
func New() (*App, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}

	app := &App{}

	if uri := config.LogMongoURI(); uri != "" {
		closeSink, err := logger.EnableMongoSink(uri, "boutique", "logs")
		if err != nil {
			logger.Warn("log sink unavailable, console only", "error", err)
		} else {
			app.closers = append(app.closers, closeSink)
		}
	}

	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, cache and queue fall back to memory", "error", err)
	}

	side := sidestore.New(nil)
	if err := database.Connect(); err != nil {
		logger.Warn("side-store database unavailable, orders are volatile", "error", err)
	} else {
		side = sidestore.New(database.DB)
	}
	app.Side = side

	jobs.RegisterAll()
	if cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}
	notification.SetSlackWebhook(config.SlackWebhookURL())

	// ─── stores ───

	inventory := store.NewInventory()
	inventory.Seed(store.CatalogSeed())
	users := store.NewUsers()
	codes := store.NewAuthCodes()
	orders := store.NewOrders()

	// ─── services ───

	mailer := mailers.NewQueueMailer()

	productSvc := services.NewProductService(inventory)
	userSvc := services.NewUserService(users)
	authSvc := services.NewAuthService(userSvc, codes, mailer)

	var remote searchindex.RemoteIndex
	if algolia, ok := searchindex.NewAlgolia(); ok {
		remote = algolia
	} else {
		logger.Warn("remote search index not configured, serving from local replica")
	}
	searchSvc := services.NewSearchService(inventory, remote)
	app.Search = searchSvc
	app.Products = productSvc

	var gateway payment.Gateway
	if mp, err := payment.NewMercadoPago(); err != nil {
		logger.Warn("payment gateway disabled", "error", err)
		gateway = payment.NewDisabled()
	} else {
		gateway = mp
	}

	// Stock changes fan out to the search index off the request path: the
	// event fires async and a small pool absorbs the Algolia round-trips.
	pool := workerpool.New(4)
	app.Pool = pool
	app.closers = append(app.closers, pool.Shutdown)

	event.Listen(catalogChanged, func(interface{}) {
		if err := pool.Submit(func() { syncIndex(searchSvc) }); err != nil {
			logger.Warn("index refresh dropped, pool full", "error", err)
		}
	})

	orderSvc := services.NewOrderService(
		orders,
		productSvc,
		userSvc,
		gateway,
		side,
		mailer,
		mailers.NewSlackNotifier(),
		func() { event.FireAsync(catalogChanged, nil) },
	)
	app.Orders = orderSvc

	schedule.Every(5).Minutes().Name("search.sync").WithoutOverlapping().Run(func() {
		syncIndex(searchSvc)
	})

	// ─── router ───

	r := router.New()
	r.Use(
		metrics.Middleware(),
		reqid.Middleware(),
		middleware.Recovery,
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(120, time.Minute),
	)

	routes.RegisterAPI(r, routes.Deps{
		Auth:     authSvc,
		Users:    userSvc,
		Products: productSvc,
		Orders:   orderSvc,
		Search:   searchSvc,
		Gateway:  gateway,
		Side:     side,
		Resolve:  identityResolver(authSvc, userSvc, side),
	})
	app.Router = r

	return app, nil
}

// Close releases background resources in reverse boot order.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func syncIndex(search *services.SearchService) {
	if _, err := search.SyncInventory(); err != nil {
		logger.Warn("search index sync failed", "error", err)
	}
}

// identityResolver accepts our own session JWTs first, then falls back to
// side-store access tokens. Fallback lookups hit an external HTTP API, so
// successful resolutions are cached briefly.
func identityResolver(auth *services.AuthService, users *services.UserService, side *sidestore.Store) middleware.IdentityResolver {
	return func(ctx context.Context, token string) (middleware.Identity, error) {
		if claims, err := auth.VerifyToken(token); err == nil {
			return middleware.Identity{
				UserID:     claims.UserID,
				Email:      claims.Email,
				ExternalID: claims.ExternalID,
			}, nil
		}

		var external sidestore.ExternalUser
		cacheKey := "sidestore:token:" + token
		if !cache.Get(cacheKey, &external) {
			resolved, err := side.UserByAccessToken(ctx, token)
			if err != nil {
				return middleware.Identity{}, err
			}
			external = resolved
			_ = cache.Set(cacheKey, external, tokenCacheTTL)
		}

		user := users.Ensure(external.Email, external.ID)
		return middleware.Identity{
			UserID:     user.ID,
			Email:      user.Email,
			ExternalID: external.ID,
		}, nil
	}
}
