package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"storefront/docs"
	"storefront/internal/auth"
	"storefront/internal/cache"
	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/handler"
	"storefront/internal/mq"
	"storefront/internal/repository"
	"storefront/internal/router"
	"storefront/internal/service"
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	if cfg.SessionSecret == "change-me" {
		log.Println("Warning: SESSION_SECRET is not set; using the development default")
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		return fmt.Errorf("database init: %w", err)
	}

	if cfg.ResetDB {
		log.Println("RESET_DB=true detected, dropping all tables...")
		if err := db.Reset(gormDB); err != nil {
			log.Printf("Warning: Failed to drop tables: %v", err)
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		return err
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	if err := cacheClient.Ping(ctx); err != nil {
		log.Printf("Warning: redis unreachable at %s: %v", cfg.RedisAddr, err)
	}

	events := mq.New(nil)
	if cfg.RabbitMQURL != "" {
		client, err := mq.NewRabbitMQClient(cfg.RabbitMQURL)
		if err != nil {
			log.Printf("Warning: order events disabled, rabbitmq: %v", err)
		} else {
			events = mq.New(client)
		}
	}
	defer events.Close()

	// Initialize repositories
	repos := repository.NewRepositories(gormDB)
	transactor := repository.NewTransactor(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.SessionSecret)
	sessionStore := auth.NewSessionStore(cacheClient)
	sessions := auth.NewManager(jwtService, sessionStore, cfg.SessionTTL, cfg.SessionRememberTTL)

	// Initialize services
	authService := service.NewAuthService(repos.Accounts, sessions)
	catalogService := service.NewCatalogService(repos.Products, cacheClient, cfg.CatalogCacheTTL)
	cartService := service.NewCartService(repos.Cart, repos.Products)
	var publisher service.EventPublisher
	if events.Enabled() {
		publisher = events
	}
	orderService := service.NewOrderService(transactor, repos.Orders, publisher, cfg.OrderEventsQueue)

	// Initialize handlers and routes
	e := echo.New()
	e.HideBanner = true
	router.Register(e, sessions, []byte("flash:"+cfg.SessionSecret), router.Handlers{
		Auth:     handler.NewAuthHandler(authService, handler.CookieConfig{Secure: cfg.CookieSecure}),
		Catalog:  handler.NewCatalogHandler(catalogService),
		Cart:     handler.NewCartHandler(cartService),
		Checkout: handler.NewCheckoutHandler(cartService, orderService),
	})

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "http://"), "https://")
	}
	log.Printf("Swagger documentation available at: %s", swaggerURL(cfg))

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.ServerPort
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server start: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
	return nil
}

func swaggerURL(cfg *config.Config) string {
	host := cfg.SwaggerHost
	if host == "" {
		host = "localhost:" + cfg.ServerPort
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return host + "/swagger/index.html"
}
