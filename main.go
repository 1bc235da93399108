package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/globalsolutions/website/backend/handlers"
	"github.com/globalsolutions/website/backend/internal/assets"
	"github.com/globalsolutions/website/backend/internal/auth"
	"github.com/globalsolutions/website/backend/internal/backends"
	careershandler "github.com/globalsolutions/website/backend/internal/careers/handler"
	careersrepo "github.com/globalsolutions/website/backend/internal/careers/repository"
	careerssvc "github.com/globalsolutions/website/backend/internal/careers/service"
	"github.com/globalsolutions/website/backend/internal/config"
	contenthandler "github.com/globalsolutions/website/backend/internal/content/handler"
	"github.com/globalsolutions/website/backend/internal/content/sections"
	contentsvc "github.com/globalsolutions/website/backend/internal/content/service"
	"github.com/globalsolutions/website/backend/pkg/logger"
	"github.com/globalsolutions/website/backend/pkg/metrics"
	"github.com/globalsolutions/website/backend/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

var startTime = time.Now()

func main() {
	// LOG_LEVEL: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))
	defer logger.Sync()
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: content=%s sections=%v uploads=%s", cfg.Content.Backend, cfg.Content.SectionBackends, cfg.Uploads.Backend)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := gin.New()
	r.MaxMultipartMemory = 8 << 20

	// Lightweight CORS middleware: the admin UI and the public site call the API from the browser.
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length, Retry-After")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})
	r.Use(gin.Logger(), gin.Recovery())

	set := backends.New(cfg)
	defer set.Close()

	// Redis is optional for rate limiting; connect early so the limiter can use it
	var limiterRedis *redis.Client
	if cfg.RateLimit.UseRedis {
		if client, err := set.Redis(ctx); err == nil {
			limiterRedis = client
		} else {
			logger.Warnf("rate limiter: Redis unavailable, using in-memory buckets: %v", err)
		}
	}
	newLimiter := func() gin.HandlerFunc {
		if limiterRedis != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			return middleware.RedisRateLimitMiddleware(limiterRedis, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win)
		}
		return middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}
	if cfg.RateLimit.Enabled {
		logger.Infof("rate limiter enabled (rps=%.2f burst=%d redis=%v)", cfg.RateLimit.RPS, cfg.RateLimit.Burst, limiterRedis != nil)
		r.Use(newLimiter())
	}

	repo, err := set.Content(ctx)
	if err != nil {
		logger.Fatalf("content store: %v", err)
	}
	registry := sections.NewRegistry()
	gw := contentsvc.New(repo, registry)

	blobs, disk, err := set.Blobs()
	if err != nil {
		logger.Fatalf("upload store: %v", err)
	}
	if disk != nil {
		r.Static("/uploads", filepath.Join(disk.Root(), "uploads"))
	} else if cfg.MinIO.PublicURL != "" {
		base := strings.TrimRight(cfg.MinIO.PublicURL, "/")
		r.GET("/uploads/*path", func(c *gin.Context) {
			c.Redirect(http.StatusFound, base+"/uploads"+c.Param("path"))
		})
	}

	var verifier middleware.Verifier
	switch {
	case cfg.Auth.OIDCIssuer != "" && cfg.Auth.OIDCClientID != "":
		ver, err := auth.NewOIDCVerifier(ctx, cfg.Auth.OIDCIssuer, cfg.Auth.OIDCClientID)
		if err != nil {
			logger.Warnf("failed to initialize OIDC verifier: %v", err)
		} else {
			verifier = ver
		}
	case cfg.Auth.JWTSecret != "":
		ver, err := auth.NewHMACVerifier(cfg.Auth.JWTSecret)
		if err != nil {
			logger.Warnf("failed to initialize JWT verifier: %v", err)
		} else {
			verifier = ver
		}
	}
	if verifier == nil {
		logger.Warn("no token verifier configured: admin routes will answer 503")
	}
	admin := middleware.Admin(verifier, middleware.AdminPolicy{Emails: cfg.Auth.AdminEmails, Role: cfg.Auth.AdminRole})

	files := assets.NewService(blobs, registry, assets.Options{MaxBytes: cfg.Uploads.MaxBytes, MaxWidth: cfg.Uploads.MaxWidth})
	contenthandler.RegisterContentRoutes(r, gw, files, admin...)

	// careers live in the hosted database; without one they are kept in memory
	var jobs careersrepo.Repository
	if cfg.Postgres.URL != "" {
		db, err := set.Postgres(ctx)
		if err != nil {
			logger.Fatalf("careers store: %v", err)
		}
		jobs = careersrepo.NewPostgresRepo(db)
	} else {
		logger.Warn("POSTGRES_URL not set: careers data is kept in memory")
		jobs = careersrepo.NewMemoryRepo()
	}
	careershandler.RegisterCareersRoutes(r, careerssvc.New(jobs), careershandler.Routes{
		Admin:      admin,
		ApplyLimit: newLimiter(),
	})

	handlers.RegisterSwagger(r, gw.Sections())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness: every opened backend must answer a ping
	r.GET("/ready", func(c *gin.Context) {
		deps := set.Ready(c.Request.Context())
		deps["auth"] = verifier != nil
		ready := true
		for name, ok := range deps {
			if !ok && name != "auth" {
				ready = false
			}
		}
		uptime := time.Since(startTime).String()
		if !ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": uptime})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": uptime})
	})

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	logger.Infof("Starting site content service on %s (%d sections)", addr, len(gw.Sections()))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
}
