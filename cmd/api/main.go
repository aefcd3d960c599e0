package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/peoplecore/hrms-backend-go/internal/config"
	appHTTP "github.com/peoplecore/hrms-backend-go/internal/handler/http"
	"github.com/peoplecore/hrms-backend-go/internal/handler/http/middleware"
	"github.com/peoplecore/hrms-backend-go/internal/pkg/clock"
	"github.com/peoplecore/hrms-backend-go/internal/pkg/database"
	"github.com/peoplecore/hrms-backend-go/internal/pkg/email"
	"github.com/peoplecore/hrms-backend-go/internal/pkg/jwt"
	"github.com/peoplecore/hrms-backend-go/internal/pkg/storage"
	"github.com/peoplecore/hrms-backend-go/internal/repository/postgresql"
	attendanceService "github.com/peoplecore/hrms-backend-go/internal/service/attendance"
	authService "github.com/peoplecore/hrms-backend-go/internal/service/auth"
	employeeService "github.com/peoplecore/hrms-backend-go/internal/service/employee"
	"github.com/peoplecore/hrms-backend-go/internal/service/file"
	leaveService "github.com/peoplecore/hrms-backend-go/internal/service/leave"
	organizationService "github.com/peoplecore/hrms-backend-go/internal/service/organization"
	payrollService "github.com/peoplecore/hrms-backend-go/internal/service/payroll"
	userService "github.com/peoplecore/hrms-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	permissionRepo := postgresql.NewRolePermissionRepository(db)
	organizationRepo := postgresql.NewOrganizationRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	sessionRepo := postgresql.NewWorkSessionRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	balanceRepo := postgresql.NewLeaveBalanceRepository(db)
	payrunRepo := postgresql.NewPayrunRepository(db)
	payslipRepo := postgresql.NewPayslipRepository(db)
	componentRepo := postgresql.NewSalaryComponentRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	clk := clock.New()

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	fileService := file.NewFileService(fileStorage)
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	authSvc := authService.NewAuthService(userRepo, jwtService)
	userSvc := userService.NewUserService(userRepo, permissionRepo)
	organizationSvc := organizationService.NewOrganizationService(organizationRepo)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, organizationRepo, emailService, fileService, cfg.App.FrontendURL)
	attendanceSvc := attendanceService.NewAttendanceService(db, sessionRepo, employeeRepo, leaveRepo, clk)
	leaveSvc := leaveService.NewLeaveService(db, leaveRepo, balanceRepo, employeeRepo, clk)
	payrollSvc := payrollService.NewPayrollService(db, payrunRepo, payslipRepo, componentRepo, employeeRepo, attendanceSvc, clk)

	authHandler := appHTTP.NewAuthHandler(jwtService, authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	userHandler := appHTTP.NewUserHandler(userSvc)
	organizationHandler := appHTTP.NewOrganizationHandler(organizationSvc)
	profileHandler := appHTTP.NewProfileHandler(employeeSvc)

	permissionChecker := middleware.NewPermissionChecker(permissionRepo)

	router := appHTTP.NewRouter(
		jwtService,
		permissionChecker,
		authHandler,
		attendanceHandler,
		leaveHandler,
		payrollHandler,
		employeeHandler,
		userHandler,
		organizationHandler,
		profileHandler,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.App.Port, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
	slog.Info("Server exited")
}
