package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"receptari/internal/admin"
	"receptari/internal/chatbot"
	"receptari/internal/ingest"
	"receptari/internal/intent"
	"receptari/internal/recipe"
	"receptari/pkg/database"
	"receptari/pkg/random"
	"receptari/pkg/utils"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	cfg := utils.LoadServerConfig()
	dbCfg := database.DefaultConfig()
	db := database.MustOpen(dbCfg)
	defer db.Close()

	if err := database.Migrate(db, dbCfg); err != nil {
		logger.Fatal("db migrate failed", zap.Error(err))
	}

	repo := recipe.NewRepo(db)
	loader := ingest.NewLoader(logger)

	// Initial load happens before any request is served, and only when the
	// table is empty; restarts keep the previously loaded data.
	startCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	count, err := repo.Count(startCtx)
	if err != nil || count == 0 {
		if _, statErr := os.Stat(cfg.CSVPath); statErr == nil {
			n, loadErr := loader.Run(startCtx, db, cfg.CSVPath)
			if loadErr != nil {
				// serve with whatever data is there rather than crash
				logger.Error("initial csv load failed", zap.String("csv", cfg.CSVPath), zap.Error(loadErr))
			} else {
				logger.Info("initial csv load complete", zap.Int("rows", n))
			}
		} else {
			logger.Warn("no csv source found, serving existing data",
				zap.String("csv", cfg.CSVPath), zap.Int("rows", count))
		}
	}
	cancel()

	rnd := random.New()
	extractor := intent.NewExtractor()
	responder := chatbot.NewResponder(repo, extractor, logger, rnd)

	router := gin.Default()
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": dbCfg.Path})
	})

	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "not_ready",
				"db_error": err.Error(),
			})
			return
		}

		total, _ := repo.Count(ctx)
		c.JSON(http.StatusOK, gin.H{
			"status":  "ready",
			"db":      "ok",
			"recipes": total,
		})
	})

	api := router.Group("/api")
	recipe.NewHandler(repo, logger, rnd).RegisterRoutes(api)
	chatbot.NewHandler(responder).RegisterRoutes(api)

	router.GET("/ws/chat", chatbot.WSHandler(responder))

	adminCfg := utils.LoadAdminConfig()
	if adminCfg.Enabled() {
		tokens := admin.TokenService{
			Secret:   []byte(adminCfg.JWTSecret),
			Issuer:   adminCfg.JWTIssuer,
			Duration: adminCfg.JWTDuration,
		}
		reload := func(ctx context.Context) (int, error) {
			return loader.Run(ctx, db, cfg.CSVPath)
		}
		admin.NewHandler(tokens, adminCfg.PasswordHash, reload, logger).
			RegisterRoutes(router.Group("/admin"))
	} else {
		logger.Info("admin surface disabled (no password hash configured)")
	}

	// everything unmatched falls back to the static frontend
	router.NoRoute(func(c *gin.Context) {
		p := filepath.Join(cfg.StaticDir, filepath.Clean("/"+c.Request.URL.Path))
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			c.File(p)
			return
		}
		index := filepath.Join(cfg.StaticDir, "index.html")
		if _, err := os.Stat(index); err == nil {
			c.File(index)
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	httpSrv := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP API server listening", zap.String("addr", cfg.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}
