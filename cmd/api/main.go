package main

import (
	"fmt"
	"net/http"

	"github.com/JAGC-siete/saas-rh-mvp-sub002/internal/config"
	appHTTP "github.com/JAGC-siete/saas-rh-mvp-sub002/internal/handler/http"
	"github.com/JAGC-siete/saas-rh-mvp-sub002/internal/pkg/clock"
	"github.com/JAGC-siete/saas-rh-mvp-sub002/internal/pkg/database"
	"github.com/JAGC-siete/saas-rh-mvp-sub002/internal/pkg/jwt"
	"github.com/JAGC-siete/saas-rh-mvp-sub002/internal/repository/postgresql"
	attendanceService "github.com/JAGC-siete/saas-rh-mvp-sub002/internal/service/attendance"
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

	employeeRepo := postgresql.NewEmployeeRepository(db)
	workScheduleRepo := postgresql.NewWorkScheduleRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)

	clk, err := clock.NewLocal(cfg.Attendance.Timezone)
	if err != nil {
		fmt.Println("Error loading timezone:", err)
		return
	}

	jwtService := jwt.NewVerifier(cfg.JWT.Secret)
	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		employeeRepo,
		workScheduleRepo,
		clk,
		cfg.Database.QueryTimeout,
	)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)

	router := appHTTP.NewRouter(cfg, jwtService, attendanceHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
