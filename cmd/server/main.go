package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/mshelkov/marketplace/internal/config"
	"github.com/mshelkov/marketplace/internal/es"
	"github.com/mshelkov/marketplace/internal/httpserver"
	"github.com/mshelkov/marketplace/internal/logging"
	"github.com/mshelkov/marketplace/internal/middleware/loggingmw"
	"github.com/mshelkov/marketplace/internal/mykafka"
	"github.com/mshelkov/marketplace/internal/repo"
	"github.com/mshelkov/marketplace/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LOG_LEVEL).With("service", "marketplace")
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := config.InitDB(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	var producer *mykafka.Producer
	if cfg.KAFKA_ADDRESS != "" {
		producer = mykafka.NewProducer(strings.Split(cfg.KAFKA_ADDRESS, ","))
	}

	esClient, err := es.NewClient(cfg)
	if err != nil {
		logger.Warn("elasticsearch unavailable, search disabled", "error", err)
		esClient = nil
	}

	r := repo.New(db)
	authSvc := &service.AuthService{
		Repo:          r,
		JWTSecret:     []byte(cfg.JWT_SECRET),
		RefreshSecret: []byte(cfg.REFRESH_SECRET),
		AdminSecret:   cfg.ADMIN_SECRET,
	}
	storeSvc := &service.StoreService{Repo: r}
	categorySvc := &service.CategoryService{Repo: r}
	brandSvc := &service.BrandService{Repo: r}
	productSvc := &service.ProductService{Repo: r}
	cartSvc := &service.CartService{Repo: r}
	favoriteSvc := &service.FavoriteService{Repo: r}

	e := echo.New()
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:     &httpserver.AuthHTTP{Svc: authSvc, Producer: producer},
		SellerHandler:   &httpserver.SellerHTTP{Auth: authSvc, Store: storeSvc, Producer: producer},
		CategoryHandler: &httpserver.CategoryHTTP{Svc: categorySvc},
		BrandHandler:    &httpserver.BrandHTTP{Svc: brandSvc},
		ProductHandler:  &httpserver.ProductHTTP{Svc: productSvc, Producer: producer, ES: esClient},
		FavoriteHandler: &httpserver.FavoriteHTTP{Svc: favoriteSvc},
		OrderHandler:    &httpserver.OrderHTTP{Svc: cartSvc, Producer: producer},
		AdminHandler:    &httpserver.AdminHTTP{Svc: authSvc},
		JWTSecret:       []byte(cfg.JWT_SECRET),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.PORT,
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("marketplace listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)

	if err := producer.Close(); err != nil {
		log.Printf("kafka close: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Println("marketplace stopped")
}
