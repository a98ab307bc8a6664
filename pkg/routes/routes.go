package pkg

import (
	"context"
	"os"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"ExamSeatAllocator/internal/auth"
	"ExamSeatAllocator/internal/catalog"
	"ExamSeatAllocator/internal/config"
	"ExamSeatAllocator/internal/notification"
	"ExamSeatAllocator/internal/roster"
	"ExamSeatAllocator/internal/seating"
	"ExamSeatAllocator/pkg/middleware"
)

// EchoModules wires the full application graph: config, repositories,
// services, handlers and the HTTP server.
var EchoModules = fx.Module("echo",
	fx.Provide(
		config.NewLogger,
		config.NewMongoDBConfig,
		config.NewMongoDBClient,
		config.NewResendConfig,
		config.NewEmailService,

		auth.NewUserRepository,
		auth.NewUserService,
		auth.NewAuthHandler,

		catalog.NewCatalogRepository,
		catalog.NewCatalogService,
		catalog.NewCatalogHandler,

		roster.NewTeacherRepository,
		roster.NewRosterService,
		roster.NewRosterHandler,

		notification.NewNoticeRepository,
		notification.NewService,
		notification.NewScheduler,
		notification.NewHandler,
		// The seating service only sees the notifier interface.
		func(s *notification.Service) seating.DutyNotifier { return s },

		seating.NewPlanRepository,
		seating.NewSeatingService,
		seating.NewSeatingHandler,

		NewEchoServer,
	),
	fx.Invoke(config.EnsureIndexes),
	fx.Invoke((*notification.Scheduler).Start),
	fx.Invoke(RegisterRoutes),
)

// NewEchoServer builds the echo instance and ties its start and shutdown to
// the application lifecycle.
func NewEchoServer(lc fx.Lifecycle, logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = NewRequestValidator()
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:5173"},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("starting HTTP server", zap.String("addr", addr))
			go func() {
				if err := e.Start(addr); err != nil {
					logger.Warn("HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("shutting down HTTP server")
			return e.Shutdown(ctx)
		},
	})
	return e
}

// RegisterRoutes mounts every handler. Everything under /api requires a
// valid JWT; Casbin then decides per role, path and method.
func RegisterRoutes(
	e *echo.Echo,
	logger *zap.Logger,
	authHandler *auth.AuthHandler,
	catalogHandler *catalog.CatalogHandler,
	rosterHandler *roster.RosterHandler,
	seatingHandler *seating.SeatingHandler,
	noticeHandler *notification.Handler,
) {
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)

	api := e.Group("/api")
	api.Use(middleware.JWTMiddleware)
	api.Use(middleware.CasbinMiddleware(logger))

	api.GET("/profile", authHandler.Profile)

	// Room catalog (admin).
	api.POST("/admin/rooms", catalogHandler.CreateRoom)
	api.GET("/admin/rooms", catalogHandler.ListRooms)
	api.PUT("/admin/rooms/:id", catalogHandler.UpdateRoom)
	api.DELETE("/admin/rooms/:id", catalogHandler.DeleteRoom)

	// Student batches (admin).
	api.POST("/student-batches", catalogHandler.CreateBatch)
	api.GET("/student-batches", catalogHandler.ListBatches)
	api.PUT("/student-batches/:id", catalogHandler.UpdateBatch)
	api.DELETE("/student-batches/:id", catalogHandler.DeleteBatch)

	// Exam timetable.
	api.POST("/exams/upload-csv", catalogHandler.UploadExamTimetable)
	api.GET("/exams", catalogHandler.ListExams)
	api.GET("/exams/schedule/:date", catalogHandler.ScheduleByDate)

	// Teacher roster.
	api.GET("/teachers", rosterHandler.ListTeachers)
	api.POST("/teachers/upload", rosterHandler.UploadTimetable)

	// Seating plans.
	api.POST("/seating/generate", seatingHandler.GeneratePlan)
	api.GET("/seating/by-date/:examDate", seatingHandler.GetPlanByDate)
	api.PUT("/seating/:examDate/attendance", seatingHandler.MarkAttendance)
	api.GET("/export/seating-csv", seatingHandler.ExportCSV)

	// Student and teacher views.
	api.GET("/student/seating", seatingHandler.SearchStudentSeat)
	api.GET("/teacher/duties", seatingHandler.ListDuties)
	api.GET("/teacher/notices", noticeHandler.ListMyNotices)
}
