package main

import (
	"fmt"
	"net/http"

	"github.com/staffdeck/staffdeck-backend-go/internal/config"
	appHTTP "github.com/staffdeck/staffdeck-backend-go/internal/handler/http"
	"github.com/staffdeck/staffdeck-backend-go/internal/pkg/cron"
	"github.com/staffdeck/staffdeck-backend-go/internal/pkg/database"
	"github.com/staffdeck/staffdeck-backend-go/internal/pkg/events"
	"github.com/staffdeck/staffdeck-backend-go/internal/pkg/jwt"
	"github.com/staffdeck/staffdeck-backend-go/internal/pkg/session"
	"github.com/staffdeck/staffdeck-backend-go/internal/repository/memory"
	"github.com/staffdeck/staffdeck-backend-go/internal/repository/postgresql"
	attendanceService "github.com/staffdeck/staffdeck-backend-go/internal/service/attendance"
	authService "github.com/staffdeck/staffdeck-backend-go/internal/service/auth"
	employeeService "github.com/staffdeck/staffdeck-backend-go/internal/service/employee"
	payrollService "github.com/staffdeck/staffdeck-backend-go/internal/service/payroll"
	reconciliationService "github.com/staffdeck/staffdeck-backend-go/internal/service/reconciliation"
	settingsService "github.com/staffdeck/staffdeck-backend-go/internal/service/settings"
	ticketService "github.com/staffdeck/staffdeck-backend-go/internal/service/ticket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	ticketRepo := postgresql.NewTicketRepository(db)
	overrideStore := memory.NewOverrideStore()

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	sessions := session.NewStore(cfg.Session.InactivityTimeout, cfg.Session.PINGrace)
	bus := events.NewBus()

	authSvc := authService.NewAuthService(userRepo, refreshTokenRepo, jwtService, sessions, overrideStore)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo, bus)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, bus)
	settingsSvc := settingsService.NewSettingsService(settingsRepo, bus)
	reconciliationSvc := reconciliationService.NewReconciliationService(employeeRepo, attendanceRepo, settingsSvc, overrideStore)
	payrollSvc := payrollService.NewPayrollService(payrollRepo, employeeRepo, settingsRepo)
	ticketSvc := ticketService.NewTicketService(ticketRepo, employeeRepo)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceRepo, employeeRepo, settingsRepo, bus).RegisterJobs(scheduler)
	cron.NewSessionJobs(sessions, overrideStore).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(jwtService, sessions, appHTTP.Handlers{
		Auth:           appHTTP.NewAuthHandler(authSvc, jwtService),
		Employee:       appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance:     appHTTP.NewAttendanceHandler(attendanceSvc),
		Reconciliation: appHTTP.NewReconciliationHandler(reconciliationSvc),
		Settings:       appHTTP.NewSettingsHandler(settingsSvc),
		Payroll:        appHTTP.NewPayrollHandler(payrollSvc),
		Ticket:         appHTTP.NewTicketHandler(ticketSvc),
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Listening on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
