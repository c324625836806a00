package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rentaline/timeclock-backend-go/internal/config"
	"github.com/rentaline/timeclock-backend-go/internal/domain/alert"
	"github.com/rentaline/timeclock-backend-go/internal/domain/employee"
	"github.com/rentaline/timeclock-backend-go/internal/domain/settings"
	"github.com/rentaline/timeclock-backend-go/internal/domain/timeclock"
	appHTTP "github.com/rentaline/timeclock-backend-go/internal/handler/http"
	"github.com/rentaline/timeclock-backend-go/internal/pkg/clock"
	"github.com/rentaline/timeclock-backend-go/internal/pkg/cron"
	"github.com/rentaline/timeclock-backend-go/internal/pkg/database"
	"github.com/rentaline/timeclock-backend-go/internal/pkg/jwt"
	"github.com/rentaline/timeclock-backend-go/internal/pkg/sse"
	"github.com/rentaline/timeclock-backend-go/internal/repository/memory"
	"github.com/rentaline/timeclock-backend-go/internal/repository/postgresql"
	alertService "github.com/rentaline/timeclock-backend-go/internal/service/alert"
	settingsService "github.com/rentaline/timeclock-backend-go/internal/service/settings"
	timeclockService "github.com/rentaline/timeclock-backend-go/internal/service/timeclock"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	var (
		entryRepo    timeclock.TimeEntryRepository
		employeeRepo employee.EmployeeRepository
		alertRepo    alert.AlertRepository
		settingsRepo settings.SettingsRepository
	)
	switch cfg.App.Storage {
	case "postgres":
		db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
		if err != nil {
			fmt.Println("Error connecting to database:", err)
			return
		}
		defer db.Close()

		entryRepo = postgresql.NewTimeEntryRepository(db)
		employeeRepo = postgresql.NewEmployeeRepository(db)
		alertRepo = postgresql.NewAlertRepository(db)
		settingsRepo = postgresql.NewSettingsRepository(db)
	case "memory":
		entryRepo = memory.NewTimeEntryRepository()
		employeeRepo = memory.NewEmployeeRepository()
		alertRepo = memory.NewAlertRepository()
		settingsRepo = memory.NewSettingsRepository()
	default:
		log.Fatal("Unsupported storage driver: ", cfg.App.Storage)
	}

	clk := clock.System()
	hub := sse.NewHub()
	jwtService := jwt.NewJWTService(cfg.Auth.JWTSecret)

	settingsSvc := settingsService.NewSettingsService(settingsRepo)
	timeclockSvc := timeclockService.NewTimeclockService(entryRepo, employeeRepo, settingsSvc, hub, clk)
	alertSvc := alertService.NewAlertService(alertRepo, clk)
	alertEngine := alertService.NewEngine(alertRepo, entryRepo, employeeRepo, settingsSvc, hub, clk)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("alert_rule_engine", cfg.Engine.AlertTickInterval, alertEngine.RunTick)
	timeclockJobs := cron.NewTimeclockJobs(timeclockSvc, entryRepo, employeeRepo, settingsSvc, clk)
	timeclockJobs.RegisterJobs(scheduler, cfg.Engine.AutoClockOutInterval)
	scheduler.Start()
	defer scheduler.Stop()

	timeclockHandler := appHTTP.NewTimeclockHandler(timeclockSvc, settingsSvc)
	alertHandler := appHTTP.NewAlertHandler(alertSvc)
	settingsHandler := appHTTP.NewSettingsHandler(settingsSvc)
	eventsHandler := appHTTP.NewEventsHandler(hub, jwtService)

	router := appHTTP.NewRouter(jwtService, timeclockHandler, alertHandler, settingsHandler, eventsHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error: ", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Println("Server shutdown error:", err)
	}
}
