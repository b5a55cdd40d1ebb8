// Package server boots the application: configuration, store and cache
// connections, queue workers, the websocket hub, the optional gRPC ops
// server, and finally the HTTP server with graceful shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	grpcgo "google.golang.org/grpc"

	"github.com/aamirkhan2478/elite-market-backend/app/controllers"
	"github.com/aamirkhan2478/elite-market-backend/app/jobs"
	authmw "github.com/aamirkhan2478/elite-market-backend/app/middleware"
	"github.com/aamirkhan2478/elite-market-backend/app/repositories"
	"github.com/aamirkhan2478/elite-market-backend/app/routes"
	"github.com/aamirkhan2478/elite-market-backend/app/services"
	"github.com/aamirkhan2478/elite-market-backend/config"
	"github.com/aamirkhan2478/elite-market-backend/internal/database"
	"github.com/aamirkhan2478/elite-market-backend/pkg/cache"
	rpc "github.com/aamirkhan2478/elite-market-backend/pkg/grpc"
	"github.com/aamirkhan2478/elite-market-backend/pkg/logger"
	"github.com/aamirkhan2478/elite-market-backend/pkg/metrics"
	"github.com/aamirkhan2478/elite-market-backend/pkg/middleware"
	"github.com/aamirkhan2478/elite-market-backend/pkg/queue"
	"github.com/aamirkhan2478/elite-market-backend/pkg/reqid"
	"github.com/aamirkhan2478/elite-market-backend/pkg/router"
	"github.com/aamirkhan2478/elite-market-backend/pkg/storage"
	"github.com/aamirkhan2478/elite-market-backend/pkg/ws"
)

const (
	queueWorkers    = 4
	shutdownTimeout = 10 * time.Second
)

// Start runs the server until SIGINT/SIGTERM, then shuts everything down
// in reverse boot order.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := database.Connect(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = database.Disconnect(client) }()

	// Fan log records into Mongo alongside stdout once the store is up.
	mongoLog := logger.NewMongoHandler(db, "logs")
	logger.SetHandler(logger.Tee(logger.L.Handler(), mongoLog))
	defer mongoLog.Close()

	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, caching disabled", "error", err)
	}
	storage.Connect()

	jobs.Register()
	queue.UseDB(db)
	if cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}
	queue.StartWorkers(ctx, queueWorkers)

	hub := ws.NewHub()
	go hub.Run()

	var grpcSrv *grpcgo.Server
	if port := config.GRPCPort(); port != "" {
		grpcSrv, _, err = rpc.Start(port, database.Ping(client))
		if err != nil {
			return err
		}
		defer rpc.Stop(grpcSrv)
	}

	r, err := buildRouter(db, hub)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildRouter wires repositories, services, controllers, and the route
// table onto a fresh router with the full middleware chain.
func buildRouter(db *mongo.Database, hub *ws.Hub) (*router.Router, error) {
	users := repositories.NewUserRepository(db)
	categories := repositories.NewCategoryRepository(db)
	products := repositories.NewProductRepository(db)
	carts := repositories.NewCartRepository(db)
	orders := repositories.NewOrderRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := users.EnsureIndexes(ctx); err != nil {
		return nil, err
	}

	authSvc := services.NewAuthService(users)
	orderSvc := services.NewOrderService(orders, products, users)
	orderSvc.Events = hub

	gql, err := controllers.NewGraphQLController(products, categories)
	if err != nil {
		return nil, err
	}

	r := router.New()
	r.Use(
		metrics.Middleware(),
		reqid.Middleware(),
		middleware.Recovery,
		middleware.Logger,
		middleware.CORS(middleware.OptionsForOrigins(config.CORSOrigins())),
		middleware.RateLimit(300, time.Minute),
	)

	routes.Register(r, routes.Controllers{
		Users:      controllers.NewUserController(authSvc, users, carts),
		Categories: controllers.NewCategoryController(categories),
		Products:   controllers.NewProductController(products, categories),
		Carts:      controllers.NewCartController(carts, products),
		Orders:     controllers.NewOrderController(orderSvc, orders),
		GraphQL:    gql,
	}, users)

	r.HandleFunc("/metrics", metrics.Handler())

	// The order feed carries ids and totals; admins only.
	r.Get("/ws/orders", "ws.orders", func(w http.ResponseWriter, req *http.Request) {
		ws.Upgrade(w, req, hub)
	}, authmw.Auth(users), authmw.Admin)

	files := http.StripPrefix("/storage/", http.FileServer(http.Dir(storage.LocalRoot())))
	r.HandleFunc("/storage/*", files.ServeHTTP)

	return r, nil
}

// Routes builds the route table without starting anything, for route:list.
// The mongo client is created lazily by the driver, so no server needs to
// be reachable.
func Routes() ([]router.RouteInfo, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}

	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(config.MongoURI()))
	if err != nil {
		return nil, err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	db := client.Database(config.MongoDatabase())

	users := repositories.NewUserRepository(db)
	categories := repositories.NewCategoryRepository(db)
	products := repositories.NewProductRepository(db)
	carts := repositories.NewCartRepository(db)
	orders := repositories.NewOrderRepository(db)

	authSvc := services.NewAuthService(users)
	orderSvc := services.NewOrderService(orders, products, users)

	gql, err := controllers.NewGraphQLController(products, categories)
	if err != nil {
		return nil, err
	}

	r := router.New()
	routes.Register(r, routes.Controllers{
		Users:      controllers.NewUserController(authSvc, users, carts),
		Categories: controllers.NewCategoryController(categories),
		Products:   controllers.NewProductController(products, categories),
		Carts:      controllers.NewCartController(carts, products),
		Orders:     controllers.NewOrderController(orderSvc, orders),
		GraphQL:    gql,
	}, users)

	hub := ws.NewHub()
	r.Get("/ws/orders", "ws.orders", func(w http.ResponseWriter, req *http.Request) {
		ws.Upgrade(w, req, hub)
	}, authmw.Auth(users), authmw.Admin)

	return r.Routes(), nil
}
