package app

import (
	"context"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/eduspark-api/internal/handler"
	"github.com/noah-isme/eduspark-api/internal/middleware"
	"github.com/noah-isme/eduspark-api/internal/models"
	"github.com/noah-isme/eduspark-api/internal/service"
	"github.com/noah-isme/eduspark-api/pkg/config"
	"github.com/noah-isme/eduspark-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/eduspark-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/eduspark-api/pkg/middleware/requestid"
)

type auditRecorder interface {
	Create(ctx context.Context, log *models.AuditLog) error
}

type pinger interface {
	Ping(ctx context.Context) error
}

// Services groups the use cases the HTTP layer is built from.
type Services struct {
	Auth            *service.AuthService
	Users           *service.UserService
	Classes         *service.ClassService
	TeacherRequests *service.TeacherRequestService
	Enrollments     *service.EnrollmentService
	Assignments     *service.AssignmentService
	Feedback        *service.FeedbackService
	Articles        *service.ArticleService
	Reports         *service.ReportService
	Exports         *service.ExportService
	Payments        *service.PaymentService
	Metrics         *service.MetricsService
}

// RouterOptions carries the non-service dependencies of the router. Audit may be nil.
type RouterOptions struct {
	Env            string
	AllowedOrigins []string
	Audit          auditRecorder
	DB             pinger
}

// NewRouter registers every route with its middleware chain.
func NewRouter(svc Services, opts RouterOptions, logr *zap.Logger) *gin.Engine {
	if logr == nil {
		logr = zap.NewNop()
	}
	if opts.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(opts.AllowedOrigins))
	r.Use(middleware.Metrics(svc.Metrics))

	metricsHandler := handler.NewMetricsHandler(svc.Metrics, opts.DB, logr)
	authHandler := handler.NewAuthHandler(svc.Auth)
	userHandler := handler.NewUserHandler(svc.Users)
	classHandler := handler.NewClassHandler(svc.Classes)
	teacherRequestHandler := handler.NewTeacherRequestHandler(svc.TeacherRequests)
	enrollmentHandler := handler.NewEnrollmentHandler(svc.Enrollments)
	assignmentHandler := handler.NewAssignmentHandler(svc.Assignments)
	feedbackHandler := handler.NewFeedbackHandler(svc.Feedback, svc.Articles)
	reportHandler := handler.NewReportHandler(svc.Reports, svc.Exports)
	paymentHandler := handler.NewPaymentHandler(svc.Payments)

	token := middleware.VerifyToken(svc.Auth)
	admin := middleware.VerifyAdmin(svc.Users, logr)
	teacher := middleware.VerifyTeacher(svc.Users, logr)
	self := middleware.SelfOnly("email")
	audit := func(action, resource, idParam string) gin.HandlerFunc {
		return middleware.Audit(opts.Audit, logr, action, resource, idParam)
	}

	r.GET("/", metricsHandler.Root)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)
	if opts.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.POST("/jwt", authHandler.IssueToken)

	r.GET("/users", token, admin, userHandler.List)
	r.GET("/users_count", token, admin, userHandler.Count)
	r.GET("/users/:email", token, self, userHandler.Get)
	r.GET("/users/role/:email", token, self, userHandler.Role)
	r.POST("/users", userHandler.Create)
	r.PATCH("/users/:email", token, admin, audit(models.AuditActionUserPromote, "users", "email"), userHandler.Promote)

	r.GET("/classes", token, admin, classHandler.List)
	r.GET("/classes_count", token, admin, classHandler.Count)
	r.POST("/classes", token, teacher, classHandler.Create)
	r.PATCH("/classes/:id", token, teacher, classHandler.Update)
	r.PATCH("/classes/status/:id", token, admin, audit(models.AuditActionClassStatus, "classes", "id"), classHandler.SetStatus)
	r.DELETE("/classes/:id", token, teacher, classHandler.Delete)
	r.GET("/approved_classes", classHandler.Approved)
	r.GET("/approved_classes_count", classHandler.ApprovedCount)
	r.GET("/teacher_classes/:email", token, teacher, self, classHandler.ByTeacher)
	r.GET("/single_class/:id", classHandler.Get)

	r.GET("/popular_classes", reportHandler.PopularClasses)
	r.GET("/site_totals", reportHandler.SiteTotals)
	r.GET("/total_classes_data/:id", token, teacher, reportHandler.ClassTotals)
	r.GET("/per_day_assignment_submissions/:id", token, teacher, reportHandler.SubmissionsToday)
	r.GET("/reports/popular_classes/export", token, admin, reportHandler.ExportPopularClasses)

	r.GET("/teacher_requests", token, admin, teacherRequestHandler.List)
	r.GET("/teacher_requests_count", token, admin, teacherRequestHandler.Count)
	r.POST("/teacher_requests", token, teacherRequestHandler.Submit)
	r.PATCH("/teacher_requests/:id", token, admin, audit(models.AuditActionTeacherReview, "teacher_requests", "id"), teacherRequestHandler.Review)

	r.GET("/assignments/:id", token, assignmentHandler.List)
	r.GET("/assignments_count/:id", token, assignmentHandler.Count)
	r.POST("/assignments", token, teacher, assignmentHandler.Create)
	r.PATCH("/assignments/:id", token, assignmentHandler.Submit)

	r.GET("/enrolled_classes", token, admin, enrollmentHandler.List)
	r.POST("/enrolled_classes", token, enrollmentHandler.Enroll)
	r.GET("/enrolled_classes_ids/:email", token, self, enrollmentHandler.ClassIDs)
	r.GET("/my_enrolled_classes/:email", token, self, enrollmentHandler.Classes)

	r.GET("/feedbacks", feedbackHandler.List)
	r.POST("/feedbacks", token, feedbackHandler.Create)
	r.GET("/feedback/:id", token, feedbackHandler.ByClass)
	r.GET("/articles", feedbackHandler.Articles)

	r.POST("/create-payment-intent", token, paymentHandler.CreateIntent)

	return r
}
