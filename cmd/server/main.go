package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"order-service/internal/config"
	httpctrl "order-service/internal/controllers/http"
	mmysql "order-service/internal/infra/mysql"
	"order-service/internal/infra/rabbitmq"
	"order-service/internal/middlewares"
	"order-service/internal/repository"
	memoryrepo "order-service/internal/repository/memory"
	mysqlrepo "order-service/internal/repository/mysql"
	"order-service/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := config.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, err := newRepository(cfg)
	if err != nil {
		log.Fatalf("store: init: %v", err)
	}

	var publisher rabbitmq.PublisherInterface
	if cfg.RabbitMQURL != "" {
		pub, err := rabbitmq.NewPublisher(cfg.RabbitMQURL, cfg.OrderExchange)
		if err != nil {
			log.Fatalf("rabbitmq: init: %v", err)
		}
		defer pub.Close()
		publisher = pub
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("redis: ping: %v", err)
		}
		defer rdb.Close()
	}

	s := services.NewOrderService(repo, publisher)
	handler := httpctrl.NewHandler(s, rdb)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())
	r.Use(middlewares.PrometheusMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	handler.RegisterRoutes(r)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("starting %s on port %d (backend=%s)", config.ServiceName, cfg.Port, cfg.OrderBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func newRepository(cfg *config.Config) (repository.OrderRepository, error) {
	switch cfg.OrderBackend {
	case "mysql":
		db, err := mmysql.NewMySQL(cfg)
		if err != nil {
			return nil, err
		}
		return mysqlrepo.NewOrderRepository(db), nil
	default:
		return memoryrepo.NewOrderRepository(), nil
	}
}
