// container.go
package main

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/remora-hq/staffdesk/pkg/config"
	"github.com/remora-hq/staffdesk/pkg/hiring/candidate/candidateapi"
	"github.com/remora-hq/staffdesk/pkg/hiring/candidate/candidateinfra"
	"github.com/remora-hq/staffdesk/pkg/hiring/candidate/candidatesrv"
	"github.com/remora-hq/staffdesk/pkg/hiring/dashboard/dashboardapi"
	"github.com/remora-hq/staffdesk/pkg/hiring/dashboard/dashboardsrv"
	"github.com/remora-hq/staffdesk/pkg/hiring/position/positionapi"
	"github.com/remora-hq/staffdesk/pkg/hiring/position/positioninfra"
	"github.com/remora-hq/staffdesk/pkg/hiring/position/positionsrv"
	"github.com/remora-hq/staffdesk/pkg/iam/actor/actorapi"
	"github.com/remora-hq/staffdesk/pkg/iam/actor/actorinfra"
	"github.com/remora-hq/staffdesk/pkg/iam/actor/actorsrv"
	"github.com/remora-hq/staffdesk/pkg/iam/auth"
	"github.com/remora-hq/staffdesk/pkg/iam/auth/authapi"
	"github.com/remora-hq/staffdesk/pkg/iam/auth/authinfra"
	"github.com/remora-hq/staffdesk/pkg/logx"
	"github.com/remora-hq/staffdesk/pkg/notify"
	"github.com/remora-hq/staffdesk/pkg/notify/notifyinfra"
)

// Container holds all application dependencies
type Container struct {
	// Config
	Config *config.Config

	// Infrastructure
	DB    *sqlx.DB
	Redis *redis.Client

	// Core Services
	TokenService     auth.TokenService
	ActorService     *actorsrv.ActorService
	CandidateService *candidatesrv.CandidateService
	PositionService  *positionsrv.PositionService
	DashboardService *dashboardsrv.DashboardService

	// API Handlers
	AuthHandlers      *authapi.AuthHandlers
	ActorHandlers     *actorapi.ActorHandlers
	CandidateHandlers *candidateapi.CandidateHandlers
	PositionHandlers  *positionapi.PositionHandlers
	DashboardHandlers *dashboardapi.DashboardHandlers

	// Middleware
	Guard *auth.GuardMiddleware

	// Background Services
	ArchivalSweeper *positionsrv.ArchivalSweeper
}

// NewContainer initializes the dependency injection container
func NewContainer(cfg *config.Config) *Container {
	logx.Info("🔧 Initializing dependency container...")

	c := &Container{
		Config: cfg,
	}

	c.initInfrastructure()
	c.initServices()

	logx.Info("✅ Container initialized successfully")
	return c
}

func (c *Container) initInfrastructure() {
	logx.Info("🏗️ Initializing infrastructure...")

	// 1. Database Connection
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Config.Database.Host,
		c.Config.Database.Port,
		c.Config.Database.User,
		c.Config.Database.Password,
		c.Config.Database.Name,
		c.Config.Database.SSLMode,
	)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(c.Config.Database.MaxOpenConns)
	db.SetMaxIdleConns(c.Config.Database.MaxIdleConns)
	db.SetConnMaxLifetime(c.Config.Database.ConnMaxLifetime)
	c.DB = db
	logx.Info("✅ Database connected")

	// 2. Redis Connection (rate limiting + campaign signal)
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     c.Config.Redis.Address(),
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	})
	if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
		logx.Fatalf("Failed to connect to Redis: %v (Redis is required for the guard rate limiter)", err)
	} else {
		logx.Info("✅ Redis connected")
	}

	logx.Info("✅ Infrastructure initialized")
}

func (c *Container) initServices() {
	logx.Info("🗄️  Initializing repositories and services...")

	// --- Repositories ---
	actorRepo := actorinfra.NewPostgresActorRepository(c.DB)
	candidateRepo := candidateinfra.NewPostgresCandidateRepository(c.DB)
	positionRepo := positioninfra.NewPostgresPositionRepository(c.DB)

	// --- Infrastructure Services ---
	passwordSvc := authinfra.NewBcryptPasswordService(c.Config.Auth.Password.BcryptCost)
	rateLimiter := authinfra.NewRedisRateLimiter(c.Redis)
	c.TokenService = auth.NewJWTServiceFromConfig(&c.Config.Auth.JWT)

	// Campaign notifier: Redis pub/sub en producción, consola en desarrollo
	var notifier notify.CampaignNotifier
	if c.Config.IsDevelopment() {
		notifier = notify.NewConsoleNotifier()
		logx.Warn("⚠️  Using console campaign notifier (not recommended for production)")
	} else {
		notifier = notifyinfra.NewRedisCampaignPublisher(c.Redis, c.Config.Hiring.Campaign.Channel)
		logx.Infof("✅ Redis campaign publisher configured (channel: %s)", c.Config.Hiring.Campaign.Channel)
	}

	// --- Domain Services ---
	c.ActorService = actorsrv.NewActorService(actorRepo, passwordSvc)
	c.CandidateService = candidatesrv.NewCandidateService(candidateRepo)
	c.PositionService = positionsrv.NewPositionService(positionRepo, notifier)
	c.DashboardService = dashboardsrv.NewDashboardService(candidateRepo, positionRepo, actorRepo)

	// --- Middleware ---
	c.Guard = auth.NewGuardMiddleware(
		c.TokenService,
		rateLimiter,
		c.Config.Auth.RateLimit,
		c.Config.Auth.Cookie.AccessTokenName,
	)

	// --- API Handlers ---
	c.AuthHandlers = authapi.NewAuthHandlers(
		c.ActorService,
		c.TokenService,
		c.Config.Auth.Cookie,
		c.Config.Auth.JWT.AccessTokenTTL,
	)
	c.ActorHandlers = actorapi.NewActorHandlers(c.ActorService)
	c.CandidateHandlers = candidateapi.NewCandidateHandlers(c.CandidateService)
	c.PositionHandlers = positionapi.NewPositionHandlers(c.PositionService, c.Config.Hiring.Archival)
	c.DashboardHandlers = dashboardapi.NewDashboardHandlers(c.DashboardService)

	// --- Background Services ---
	c.ArchivalSweeper = positionsrv.NewArchivalSweeper(c.PositionService, c.Config.Hiring.Archival)

	logx.Info("✅ All services and handlers initialized")
}

// StartBackgroundServices starts background workers
func (c *Container) StartBackgroundServices(ctx context.Context) {
	logx.Info("🔄 Starting background services...")

	if c.Config.Hiring.Archival.SweepEnabled {
		go c.ArchivalSweeper.Start(ctx)
		logx.Infof("✅ Archival sweeper started (interval: %s, dwell: %s)",
			c.Config.Hiring.Archival.SweepInterval,
			c.Config.Hiring.Archival.DwellTime,
		)
	} else {
		logx.Warn("⚠️  Archival sweeper disabled")
	}
}

// Cleanup closes all connections and stops workers
func (c *Container) Cleanup() {
	logx.Info("🧹 Cleaning up resources...")

	// Close database connection
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logx.Errorf("Error closing database: %v", err)
		} else {
			logx.Info("✅ Database connection closed")
		}
	}

	// Close Redis connection
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logx.Errorf("Error closing Redis: %v", err)
		} else {
			logx.Info("✅ Redis connection closed")
		}
	}

	logx.Info("✅ Cleanup completed")
}
