package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"civiconnect-be/auth"
	"civiconnect-be/chat"
	"civiconnect-be/config"
	"civiconnect-be/controllers"
	"civiconnect-be/middlewares"
	"civiconnect-be/ratelimit"
	"civiconnect-be/routes"
	"civiconnect-be/session"
	"civiconnect-be/store"
	"civiconnect-be/telegram"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

const chatSessionTTL = 24 * time.Hour

func openStore(cfg config.Config) store.Store {
	fixtures := store.DefaultFixtures()
	if cfg.FixturesPath != "" {
		f, err := store.LoadFixtures(cfg.FixturesPath)
		if err != nil {
			log.Fatalf("Failed to load fixtures: %v", err)
		}
		fixtures = f
	}

	if cfg.DataSource != config.SourceMongo {
		s, err := store.NewMemoryStore(fixtures)
		if err != nil {
			log.Fatalf("Failed to load fixtures: %v", err)
		}
		log.Printf("Serving %d fixture issues from memory", len(fixtures.Issues))
		return s
	}

	db, err := config.ConnectDB(cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	s := store.NewMongoStore(db)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}
	if err := s.SeedIfEmpty(ctx, fixtures); err != nil {
		log.Fatalf("Failed to seed MongoDB: %v", err)
	}
	return s
}

// openRedis returns nil when Redis is not configured or unreachable; the
// caller then keeps sessions, counters and chats in memory.
func openRedis(cfg config.Config) *redis.Client {
	if cfg.RedisAddress == "" {
		log.Println("REDIS_ADDRESS not set, using in-memory sessions and rate limits")
		return nil
	}
	client, err := config.ConnectRedis(cfg.RedisAddress, cfg.RedisPassword)
	if err != nil {
		log.Printf("%v; using in-memory sessions and rate limits", err)
		return nil
	}
	return client
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("Please define the JWT_SECRET environment variable")
	}
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	data := openStore(cfg)

	var (
		sessions session.Store     = session.NewMemoryStore()
		limiter  ratelimit.Limiter = ratelimit.NewMemoryLimiter()
		chats    chat.Store        = chat.NewMemoryStore()
	)
	if rdb := openRedis(cfg); rdb != nil {
		defer rdb.Close()
		sessions = session.NewRedisStore(rdb, cfg.RedisPrefix)
		limiter = ratelimit.NewRedisLimiter(rdb, cfg.RedisPrefix)
		chats = chat.NewRedisStore(rdb, cfg.RedisPrefix, chatSessionTTL)
	}

	provider := auth.NewLocalProvider(data, sessions, limiter, auth.LocalConfig{
		Secret:         cfg.JWTSecret,
		TokenTTL:       cfg.TokenTTL,
		AttemptLimit:   cfg.SignInAttemptLimit,
		SignUpDisabled: cfg.SignUpDisabled,
	})
	assistant := chat.NewService(chats, cfg.ChatReplyDelay)

	guards := routes.Guards{
		Auth:         middlewares.AuthMiddleware(cfg.JWTSecret, sessions),
		OptionalAuth: middlewares.OptionalAuth(cfg.JWTSecret, sessions),
		IssueLimit:   middlewares.IssueRateLimiter(limiter, "issues", cfg.IssueRateLimit),
		ChatLimit:    middlewares.ChatRateLimiter(limiter, cfg.ChatRateLimit),
	}

	r := gin.Default()
	r.Use(middlewares.Metrics())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.AuthRoutes(r, controllers.NewAuthController(auth.NewClient(provider), controllers.CookieConfig{
		Domain:     cfg.Domain,
		Production: cfg.Production(),
	}), guards)
	routes.IssueRoutes(r, controllers.NewIssueController(data, data), guards)
	routes.SuggestionRoutes(r, controllers.NewSuggestionController(data, data, data), guards)
	routes.UserRoutes(r, controllers.NewUserController(data), guards)
	routes.ChatRoutes(r, controllers.NewChatController(assistant), guards)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	telegramDone := make(chan struct{})
	if cfg.TelegramBotToken != "" {
		bot, api, err := telegram.New(cfg.TelegramBotToken, assistant)
		if err != nil {
			log.Printf("Telegram disabled: %v", err)
			close(telegramDone)
		} else {
			go func() {
				defer close(telegramDone)
				telegram.Run(ctx, bot, api)
			}()
		}
	} else {
		close(telegramDone)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("Listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
	select {
	case <-telegramDone:
	case <-shutdownCtx.Done():
		log.Println("Telegram poller still running at shutdown")
	}
	assistant.Close()
	log.Println("Server stopped")
}
