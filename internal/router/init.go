package router

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/rentify/config"
	"github.com/oksasatya/rentify/internal/application"
	"github.com/oksasatya/rentify/internal/container"
	repo "github.com/oksasatya/rentify/internal/domain/repository"
	"github.com/oksasatya/rentify/internal/infrastructure/filestore"
	mongoinfra "github.com/oksasatya/rentify/internal/infrastructure/mongodb"
	pginfra "github.com/oksasatya/rentify/internal/infrastructure/postgres"
	"github.com/oksasatya/rentify/internal/infrastructure/redisstore"
	"github.com/oksasatya/rentify/internal/infrastructure/search"
	handlers "github.com/oksasatya/rentify/internal/interface/http"
	"github.com/oksasatya/rentify/internal/router/modules"
	"github.com/oksasatya/rentify/pkg/helpers"
)

// Stores bundles the repositories and side-effect sinks the services are built from.
type Stores struct {
	Users    repo.UserRepository
	Listings repo.ListingRepository
	Bookings repo.BookingRepository
	Files    repo.FileStore
	Locker   repo.Locker
	Revoked  repo.RevocationList
	Index    repo.ListingIndex // optional
	Audit    repo.AuditLog     // optional
	Notifier repo.Notifier     // optional
}

// Deps is everything InitModules needs.
type Deps struct {
	Cfg    *config.Config
	Logger *logrus.Logger
	Redis  *redis.Client
	JWT    *helpers.JWTManager
	Stores Stores
}

// BuildDeps wires stores from the container singletons, falling back to
// in-process implementations for backends that are not configured.
func BuildDeps() (Deps, error) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	db := container.GetMongo()
	rdb := container.GetRedis()

	s := Stores{
		Users:    mongoinfra.NewUserRepository(db),
		Listings: mongoinfra.NewListingRepository(db),
		Bookings: mongoinfra.NewBookingRepository(db),
	}

	if gcs := container.GetGCS(); gcs != nil && cfg.GCSBucket != "" {
		s.Files = filestore.NewGCS(gcs, cfg.GCSBucket, "uploads")
	} else {
		local, err := filestore.NewLocal(cfg.UploadsDir, cfg.PublicBaseURL)
		if err != nil {
			return Deps{}, err
		}
		s.Files = local
	}

	if rdb != nil {
		s.Locker = redisstore.NewLocker(rdb)
		s.Revoked = redisstore.NewRevocationList(rdb)
	} else {
		logger.Warn("redis disabled: booking lock and token revocation are process-local")
		s.Locker = redisstore.NewLocalLocker()
		s.Revoked = redisstore.NewLocalRevocationList()
	}

	if es := container.GetES(); es != nil {
		s.Index = search.NewListingIndex(es, cfg.ESListingsIndex)
	}
	if pool := container.GetPGPool(); pool != nil {
		s.Audit = pginfra.NewAuditRepository(pool)
	}
	if pub := container.GetRabbitPub(); pub != nil {
		s.Notifier = application.NewQueueNotifier(pub)
	}

	return Deps{Cfg: cfg, Logger: logger, Redis: rdb, JWT: container.GetJWT(), Stores: s}, nil
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry, d Deps) {
	s := d.Stores
	expose := d.Cfg.IsDevelopment()

	authSvc := application.NewAuthService(s.Users, s.Files, d.JWT, s.Revoked, s.Audit, s.Notifier, d.Logger)
	listingSvc := application.NewListingService(s.Listings, s.Users, s.Files, s.Index, d.Logger)
	bookingSvc := application.NewBookingService(s.Bookings, s.Listings, s.Users, s.Locker, s.Notifier, d.Logger, d.Cfg.BookingLockTTL)
	userSvc := application.NewUserService(s.Users, s.Listings, s.Bookings, d.Logger)

	cookies := helpers.NewCookie(d.Cfg.CookieDomain, d.Cfg.CookieSecure)

	uploadsDir := d.Cfg.UploadsDir
	if _, remote := s.Files.(*filestore.GCS); remote {
		uploadsDir = ""
	}

	r.Add(modules.NewSystemModule(uploadsDir, d.Cfg.MetricsEnabled))
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, d.Logger, cookies, expose), authSvc, d.Redis, d.Cfg.MaxUploadBytes()))
	r.Add(modules.NewListingModule(handlers.NewListingHandler(listingSvc, d.Logger, expose), authSvc, d.Cfg.MaxUploadBytes()))
	r.Add(modules.NewBookingModule(handlers.NewBookingHandler(bookingSvc, d.Logger, expose), authSvc, d.Redis))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, d.Logger, expose), authSvc))
}
