package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/config"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/request"
	"github.com/cmlabs-hris/hris-attendance-go/internal/fixtures"
	appHTTP "github.com/cmlabs-hris/hris-attendance-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/memory"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/hris-attendance-go/internal/service/attendance"
	requestService "github.com/cmlabs-hris/hris-attendance-go/internal/service/request"
	"github.com/cmlabs-hris/hris-attendance-go/internal/service/scope"
	"github.com/go-chi/httplog/v3"
)

type stores struct {
	punches  attendance.PunchRepository
	profiles employee.ProfileRepository
	requests request.RequestRepository
	close    func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	logger := newLogger(cfg.App)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg)
	if err != nil {
		log.Fatal("Error opening store: ", err)
	}
	defer st.close()

	if cfg.Store.ProfileSeedFile != "" {
		if err := seedProfiles(ctx, cfg.Store.ProfileSeedFile, st.profiles); err != nil {
			log.Fatal("Error seeding profiles: ", err)
		}
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	scopeResolver := scope.NewResolver(st.profiles)
	attendanceSvc := attendanceService.NewAttendanceService(st.punches, st.profiles, scopeResolver, cfg.AttendancePolicy())
	requestSvc := requestService.NewRequestService(st.requests)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	requestHandler := appHTTP.NewRequestHandler(requestSvc)

	router := appHTTP.NewRouter(
		logger,
		cfg.CORS.AllowedOrigins,
		JWTService,
		attendanceHandler,
		requestHandler,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "store", cfg.Store.Type)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}

func newLogger(app config.AppConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(app.LogLevel))); err != nil {
		level = slog.LevelInfo
	}

	logFormat := httplog.SchemaECS.Concise(app.Env != "production")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hris-attendance"),
		slog.String("version", "v1.0.0"),
		slog.String("env", app.Env),
	)
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.Store.Type {
	case config.StorePostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return nil, err
		}
		return &stores{
			punches:  postgresql.NewPunchRepository(db),
			profiles: postgresql.NewEmployeeProfileRepository(db),
			requests: postgresql.NewRequestRepository(db),
			close:    db.Close,
		}, nil
	case config.StoreMemory:
		slog.Warn("Using in-memory store; data is lost on restart")
		return &stores{
			punches:  memory.NewPunchRepository(),
			profiles: memory.NewProfileRepository(),
			requests: memory.NewRequestRepository(),
			close:    func() {},
		}, nil
	default:
		return nil, fmt.Errorf("unsupported store type: %s", cfg.Store.Type)
	}
}

func seedProfiles(ctx context.Context, path string, profiles employee.ProfileRepository) error {
	writer, ok := profiles.(employee.ProfileWriter)
	if !ok {
		return errors.New("profile store does not accept writes")
	}

	seed, err := fixtures.LoadProfiles(path)
	if err != nil {
		return err
	}
	if err := fixtures.SeedProfiles(ctx, writer, seed); err != nil {
		return err
	}

	slog.Info("Seeded employee profiles", "count", len(seed), "file", path)
	return nil
}
