package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/noah-isme/eduspark-api/internal/repository"
	"github.com/noah-isme/eduspark-api/internal/service"
	"github.com/noah-isme/eduspark-api/pkg/cache"
	"github.com/noah-isme/eduspark-api/pkg/config"
	"github.com/noah-isme/eduspark-api/pkg/database"
	"github.com/noah-isme/eduspark-api/pkg/payment"
)

// App owns the external clients and the HTTP handler built on them.
type App struct {
	Handler http.Handler

	logger *zap.Logger
	store  *repository.Store
	cache  *repository.CacheRepository
	audit  *repository.AuditRepository
	writer *service.AuditService
}

// New connects to MongoDB and the optional Redis cache and Postgres audit
// sink, then assembles services and routes. Optional backends that cannot be
// reached are logged and skipped.
func New(ctx context.Context, cfg *config.Config, logr *zap.Logger) (*App, error) {
	if logr == nil {
		logr = zap.NewNop()
	}
	a := &App{logger: logr}

	client, err := database.NewMongo(ctx, cfg.Mongo)
	if err != nil {
		return nil, err
	}
	a.store = repository.NewStore(client, cfg.Mongo.Name)
	if err := a.store.EnsureIndexes(ctx); err != nil {
		_ = a.store.Close(context.Background())
		return nil, err
	}

	var cacheRepo service.CacheRepository
	if cfg.Reports.CacheEnabled {
		rdb, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("report cache disabled", zap.Error(err))
		} else {
			a.cache = repository.NewCacheRepository(rdb)
			cacheRepo = a.cache
		}
	}

	var audit auditRecorder
	if cfg.Audit.Enabled {
		if repo, err := openAudit(ctx, cfg.Audit); err != nil {
			logr.Warn("audit trail disabled", zap.Error(err))
		} else {
			a.audit = repo
			a.writer = service.NewAuditService(repo, logr)
			a.writer.Start()
			audit = a.writer
		}
	}

	svc := buildServices(a.store, cacheRepo, cfg, logr)
	a.Handler = NewRouter(svc, RouterOptions{
		Env:            cfg.Env,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Audit:          audit,
		DB:             a.store,
	}, logr)
	return a, nil
}

func openAudit(ctx context.Context, cfg config.AuditConfig) (*repository.AuditRepository, error) {
	db, err := database.NewPostgres(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect audit db: %w", err)
	}
	repo := repository.NewAuditRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		_ = repo.Close()
		return nil, err
	}
	return repo, nil
}

func buildServices(store *repository.Store, cacheRepo service.CacheRepository, cfg *config.Config, logr *zap.Logger) Services {
	db := store.DB()
	validate := validator.New()
	metrics := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Reports.CacheTTL, logr, cacheRepo != nil)

	users := repository.NewUserRepository(db)
	classes := repository.NewClassRepository(db)
	reports := service.NewReportService(repository.NewReportRepository(db), cacheSvc, metrics, cfg.Reports.CacheTTL, logr)

	return Services{
		Auth: service.NewAuthService(validate, logr, service.AuthConfig{
			AccessTokenSecret: cfg.JWT.Secret,
			AccessTokenExpiry: service.DefaultTokenExpiry,
		}),
		Users:           service.NewUserService(users, validate, logr),
		Classes:         service.NewClassService(classes, cacheSvc, validate, logr),
		TeacherRequests: service.NewTeacherRequestService(repository.NewTeacherRequestRepository(db), users, store, validate, logr),
		Enrollments:     service.NewEnrollmentService(repository.NewEnrollmentRepository(db), classes, store, cacheSvc, metrics, validate, logr),
		Assignments:     service.NewAssignmentService(repository.NewAssignmentRepository(db), classes, validate, logr),
		Feedback:        service.NewFeedbackService(repository.NewFeedbackRepository(db), validate, logr),
		Articles:        service.NewArticleService(repository.NewArticleRepository(db)),
		Reports:         reports,
		Exports:         service.NewExportService(reports, logr),
		Payments:        service.NewPaymentService(payment.NewStripe(cfg.Payment), validate, logr),
		Metrics:         metrics,
	}
}

// Close flushes pending audit entries and releases every client. Call it once
// after the server stops.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.writer != nil {
		if err := a.writer.Stop(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	if a.audit != nil {
		if err := a.audit.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close audit db: %w", err))
		}
	}
	if a.store != nil {
		if err := a.store.Close(ctx); err != nil && !errors.Is(err, mongo.ErrClientDisconnected) {
			errs = append(errs, fmt.Errorf("close mongo: %w", err))
		}
	}
	return errors.Join(errs...)
}
