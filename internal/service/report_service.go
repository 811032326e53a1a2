package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/noah-isme/eduspark-api/internal/dto"
	"github.com/noah-isme/eduspark-api/internal/models"
	appErrors "github.com/noah-isme/eduspark-api/pkg/errors"
)

type reportRepository interface {
	SiteTotals(ctx context.Context) (dto.SiteTotals, error)
	PopularClasses(ctx context.Context) ([]models.Class, error)
	SubmissionsBetween(ctx context.Context, classID string, start, end time.Time) (int64, error)
	ClassTotals(ctx context.Context, id primitive.ObjectID) (dto.ClassTotals, error)
}

// ReportService serves the read-only reporting views.
type ReportService struct {
	repo     reportRepository
	cache    *CacheService
	metrics  *MetricsService
	cacheTTL time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewReportService constructs a ReportService. cache and metrics may be nil.
func NewReportService(repo reportRepository, cache *CacheService, metrics *MetricsService, cacheTTL time.Duration, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{repo: repo, cache: cache, metrics: metrics, cacheTTL: cacheTTL, logger: logger, now: time.Now}
}

// SiteTotals returns platform counters and whether they came from the cache.
func (s *ReportService) SiteTotals(ctx context.Context) (dto.SiteTotals, bool, error) {
	var totals dto.SiteTotals
	if s.cache.Get(ctx, CacheKeySiteTotals, &totals) {
		return totals, true, nil
	}

	start := time.Now()
	totals, err := s.repo.SiteTotals(ctx)
	s.metrics.ObserveDBQuery("site_totals", time.Since(start))
	if err != nil {
		return dto.SiteTotals{}, false, appErrors.Internal(err, "failed to load site totals")
	}

	s.cache.Set(ctx, CacheKeySiteTotals, totals, s.cacheTTL)
	return totals, false, nil
}

// PopularClasses returns the most enrolled approved classes and whether they came from the cache.
func (s *ReportService) PopularClasses(ctx context.Context) ([]models.Class, bool, error) {
	var classes []models.Class
	if s.cache.Get(ctx, CacheKeyPopularClasses, &classes) {
		return classes, true, nil
	}

	start := time.Now()
	classes, err := s.repo.PopularClasses(ctx)
	s.metrics.ObserveDBQuery("popular_classes", time.Since(start))
	if err != nil {
		return nil, false, appErrors.Internal(err, "failed to load popular classes")
	}

	s.cache.Set(ctx, CacheKeyPopularClasses, classes, s.cacheTTL)
	return classes, false, nil
}

// SubmissionsToday counts today's submissions for the assignments of a class,
// using the server's local calendar day.
func (s *ReportService) SubmissionsToday(ctx context.Context, rawClassID string) (dto.SubmissionCount, error) {
	classID, err := parseID(rawClassID)
	if err != nil {
		return dto.SubmissionCount{}, err
	}

	dayStart, dayEnd := DayBounds(s.now())
	start := time.Now()
	n, err := s.repo.SubmissionsBetween(ctx, classID.Hex(), dayStart, dayEnd)
	s.metrics.ObserveDBQuery("per_day_submissions", time.Since(start))
	if err != nil {
		return dto.SubmissionCount{}, appErrors.Internal(err, "failed to count submissions")
	}
	return dto.SubmissionCount{Count: n}, nil
}

// ClassTotals returns the counters of one class.
func (s *ReportService) ClassTotals(ctx context.Context, rawClassID string) (dto.ClassTotals, error) {
	classID, err := parseID(rawClassID)
	if err != nil {
		return dto.ClassTotals{}, err
	}

	start := time.Now()
	totals, err := s.repo.ClassTotals(ctx, classID)
	s.metrics.ObserveDBQuery("class_totals", time.Since(start))
	if err != nil {
		if isNotFound(err) {
			return dto.ClassTotals{}, notFound("class not found")
		}
		return dto.ClassTotals{}, appErrors.Internal(err, "failed to load class totals")
	}
	return totals, nil
}

// DayBounds returns the first and last millisecond of the calendar day of t in t's location.
func DayBounds(t time.Time) (time.Time, time.Time) {
	y, m, d := t.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 0, 1).Add(-time.Millisecond)
	return start, end
}
