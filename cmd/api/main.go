package main

import (
	"fmt"
	"net/http"

	"github.com/silangan-hr/payroll-engine-go/internal/config"
	appHTTP "github.com/silangan-hr/payroll-engine-go/internal/handler/http"
	"github.com/silangan-hr/payroll-engine-go/internal/pkg/database"
	"github.com/silangan-hr/payroll-engine-go/internal/pkg/jwt"
	"github.com/silangan-hr/payroll-engine-go/internal/repository/postgresql"
	attendanceService "github.com/silangan-hr/payroll-engine-go/internal/service/attendance"
	compensationService "github.com/silangan-hr/payroll-engine-go/internal/service/compensation"
	leaveService "github.com/silangan-hr/payroll-engine-go/internal/service/leave"
	notificationService "github.com/silangan-hr/payroll-engine-go/internal/service/notification"
	payrollService "github.com/silangan-hr/payroll-engine-go/internal/service/payroll"
	"github.com/silangan-hr/payroll-engine-go/internal/service/payslip"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	payrollRepo := postgresql.NewPayrollRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	compensationRepo := postgresql.NewCompensationRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)

	notifier := notificationService.NewNotifier(notificationRepo)
	payrollSvc := payrollService.NewPayrollService(payrollRepo, attendanceRepo, compensationRepo, leaveRepo, notifier)
	leaveSvc := leaveService.NewLeaveService(db, leaveRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, payrollRepo)
	compensationSvc := compensationService.NewCompensationService(compensationRepo)
	notificationSvc := notificationService.NewNotificationService(notificationRepo)

	renderer := payslip.NewRenderer(cfg.App.OrganizationName)

	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc, renderer)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	compensationHandler := appHTTP.NewCompensationHandler(compensationSvc)
	notificationHandler := appHTTP.NewNotificationHandler(notificationSvc)

	router := appHTTP.NewRouter(
		JWTService,
		payrollHandler,
		leaveHandler,
		attendanceHandler,
		compensationHandler,
		notificationHandler,
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Listening on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
