package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/dogvet-api/internal/audit"
	"github.com/BruksfildServices01/dogvet-api/internal/auth"
	"github.com/BruksfildServices01/dogvet-api/internal/config"
	dbpkg "github.com/BruksfildServices01/dogvet-api/internal/db"
	"github.com/BruksfildServices01/dogvet-api/internal/domain/record"
	"github.com/BruksfildServices01/dogvet-api/internal/infra/dogapi"
	"github.com/BruksfildServices01/dogvet-api/internal/infra/lock"
	infraRepo "github.com/BruksfildServices01/dogvet-api/internal/infra/repository"
	"github.com/BruksfildServices01/dogvet-api/internal/infra/repository/memory"
	"github.com/BruksfildServices01/dogvet-api/internal/logger"
	"github.com/BruksfildServices01/dogvet-api/internal/middleware"
	"github.com/BruksfildServices01/dogvet-api/internal/routes"
	"github.com/BruksfildServices01/dogvet-api/internal/timezone"
	"github.com/BruksfildServices01/dogvet-api/internal/validators"
)

const breedCacheBytes = 8 << 20

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {

	// ======================================================
	// ⚙️ CONFIG / LOG
	// ======================================================
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	timezone.Set(cfg.DefaultTimezone)

	if err := validators.RegisterWithGin(); err != nil {
		return err
	}

	if cfg.SecretMode == config.SecretModePlaintext {
		slog.Warn("credentials are stored in plaintext; set SECRET_MODE=bcrypt to hash them")
	}

	// ======================================================
	// 🗄️ STORE
	// ======================================================
	var repo record.Repository
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		repo = memory.New()
	default:
		db, err := dbpkg.NewDB(cfg)
		if err != nil {
			return err
		}
		repo = infraRepo.NewRecordGormRepository(db)
	}

	secrets := auth.NewSecretMatcher(cfg.SecretMode)

	if cfg.SeedDemo {
		seeded, err := dbpkg.Seed(context.Background(), repo, secrets)
		if err != nil {
			return err
		}
		if seeded {
			slog.Info("demo data seeded")
		}
	}

	// ======================================================
	// 🔒 LOCKS / CACHE (Redis quando configurado)
	// ======================================================
	var (
		locks lock.Locker
		cache dogapi.Cache
	)

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return err
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err = rdb.Ping(ctx).Err()
		cancel()
		if err != nil {
			return err
		}

		locks = lock.NewRedisLocker(rdb, 5*time.Second)
		cache = dogapi.NewRedisCache(rdb)
	} else {
		local, err := dogapi.NewLocalCache(breedCacheBytes)
		if err != nil {
			return err
		}
		defer local.Close()

		locks = lock.NewLocalLocker()
		cache = local
	}

	breeds, err := dogapi.New(dogapi.Config{
		BaseURL:  cfg.DogAPIURL,
		APIKey:   cfg.DogAPIKey,
		Timeout:  cfg.DogAPITimeout,
		CacheTTL: cfg.BreedCacheTTL,
	}, cache)
	if err != nil {
		return err
	}

	// ======================================================
	// 🔐 AUTH / AUDIT
	// ======================================================
	issuer, err := auth.NewIssuer(auth.IssuerConfig{
		Secret:   cfg.JWTSecret,
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		TTL:      cfg.JWTTTL,
	})
	if err != nil {
		return err
	}

	auditDispatcher := audit.NewDispatcher(audit.New(repo))
	defer auditDispatcher.Close()

	// ======================================================
	// 🌐 HTTP
	// ======================================================
	if cfg.AppEnv != config.EnvDevelopment {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestLogger(log),
		middleware.CORSMiddleware(cfg.CORSAllowedOrigins),
	)

	routes.RegisterRoutes(r, routes.Deps{
		Repo:     repo,
		Locks:    locks,
		Secrets:  secrets,
		Verifier: auth.NewVerifier(repo, secrets),
		Issuer:   issuer,
		Audit:    auditDispatcher,
		Breeds:   breeds,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server running", "addr", cfg.Addr(), "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		slog.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(ctx)
}
