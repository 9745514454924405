package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aljoud/shifts-backend/internal/metrics"
	"github.com/aljoud/shifts-backend/internal/scheduling/events"
	"github.com/aljoud/shifts-backend/internal/scheduling/handler"
	"github.com/aljoud/shifts-backend/internal/scheduling/repository"
	"github.com/aljoud/shifts-backend/internal/scheduling/service"
	"github.com/aljoud/shifts-backend/pkg/config"
	"github.com/aljoud/shifts-backend/pkg/database"
	"github.com/aljoud/shifts-backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadWithValidation("scheduler-service")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New("scheduler-service", cfg.Server.Environment)

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	bus := events.NewBus(log)

	branchRepo := repository.NewBranchRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	timeOffRepo := repository.NewTimeOffRepository(db)
	shiftRepo := repository.NewShiftRepository(db)

	branchSvc := service.NewBranchService(branchRepo, bus, log)
	employeeSvc := service.NewEmployeeService(employeeRepo, bus, log)
	templateSvc := service.NewTemplateService(templateRepo, bus, log)
	scheduler := service.NewScheduler(shiftRepo, timeOffRepo, bus, m, log)
	rosterSvc := service.NewRosterService(shiftRepo, bus, log)
	exportSvc := service.NewExportService(shiftRepo, branchRepo, employeeRepo, cfg.Export.Dir, m, log)

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := service.NewSeeder(branchRepo, templateRepo, log).Run(seedCtx); err != nil {
		seedCancel()
		log.Fatal().Err(err).Msg("failed to seed defaults")
	}
	seedCancel()

	router := handler.NewRouter(handler.Handlers{
		Branches:  handler.NewBranchHandler(branchSvc, employeeSvc, log),
		Employees: handler.NewEmployeeHandler(employeeSvc, log),
		Templates: handler.NewTemplateHandler(templateSvc, log),
		Shifts:    handler.NewShiftHandler(scheduler, timeOffRepo, log),
		Roster:    handler.NewRosterHandler(rosterSvc, log),
		Exports:   handler.NewExportHandler(exportSvc, log),
	}, db, registry, log)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("scheduler service listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	log.Info().Msg("server stopped")
}
