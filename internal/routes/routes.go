package routes

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"puantaj-backend/internal/config"
	"puantaj-backend/internal/handlers"
	"puantaj-backend/internal/ledger"
	"puantaj-backend/internal/middleware"
	"puantaj-backend/internal/resolve"
	"puantaj-backend/internal/riskscore"
)

func corsMiddleware(allowedOriginsRaw string) gin.HandlerFunc {
	allowed := map[string]bool{}
	for _, origin := range strings.Split(allowedOriginsRaw, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowed[origin] = true
		}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (len(allowed) == 0 || allowed[origin]) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

func Register(r *gin.Engine, db *gorm.DB, cfg config.Config, resolver *resolve.Service, led *ledger.Service, scorer *riskscore.Service) {
	r.Use(corsMiddleware(cfg.AllowedOriginsRaw))

	auth := handlers.NewAuthHandler(db, cfg)
	departments := handlers.NewDepartmentHandler(db)
	employees := handlers.NewEmployeeHandler(db)
	shifts := handlers.NewShiftHandler(db)
	rules := handlers.NewRuleHandler(db)
	events := handlers.NewEventHandler(db)
	overrides := handlers.NewOverrideHandler(db, resolver)
	timesheets := handlers.NewTimesheetHandler(db, resolver)
	ledgers := handlers.NewLedgerHandler(db, led, resolver)
	risk := handlers.NewRiskHandler(db, scorer)

	api := r.Group("/api")

	public := api.Group("/auth")
	{
		public.POST("/login", auth.Login)
		public.POST("/refresh", auth.Refresh)
		public.POST("/logout", auth.Logout)
		public.POST("/forgot-password", auth.ForgotPassword)
		public.POST("/reset-password", auth.ResetPassword)
	}

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(cfg.JwtSecret))
	{
		protected.GET("/auth/me", auth.Me)
		protected.POST("/auth/change-password", auth.ChangePassword)
		protected.POST("/auth/totp/setup", auth.SetupTOTP)
		protected.POST("/auth/totp/enable", auth.EnableTOTP)
		protected.POST("/auth/totp/disable", auth.DisableTOTP)

		protected.GET("/departments", departments.List)
		protected.GET("/employees", employees.List)
		protected.GET("/employees/:id", employees.Get)
		protected.GET("/shifts", shifts.List)
		protected.GET("/shift-assignments", shifts.ListAssignments)
		protected.GET("/weekly-rules", rules.ListWeekly)
		protected.GET("/work-rules", rules.ListWork)
		protected.GET("/flags", handlers.ListFlags)

		protected.GET("/timesheet/:employeeId/day/:date", timesheets.Day)
		protected.GET("/timesheet/:employeeId/month/:yyyymm", timesheets.Month)
		protected.GET("/overtime-ledger/:employeeId/:year", ledgers.Snapshot)
		protected.GET("/risk/:employeeId", risk.Score)
	}

	staff := api.Group("")
	staff.Use(middleware.AuthRequired(cfg.JwtSecret), middleware.RequireAnyRole("admin", "manager"))
	{
		staff.POST("/departments", departments.Create)
		staff.PUT("/departments/:id", departments.Update)
		staff.DELETE("/departments/:id", departments.Delete)

		staff.POST("/employees", employees.Create)
		staff.PUT("/employees/:id", employees.Update)
		staff.DELETE("/employees/:id", employees.Delete)

		staff.POST("/shifts", shifts.Create)
		staff.PUT("/shifts/:id", shifts.Update)
		staff.DELETE("/shifts/:id", shifts.Delete)
		staff.POST("/shift-assignments", shifts.Assign)
		staff.DELETE("/shift-assignments/:id", shifts.DeleteAssignment)

		staff.PUT("/weekly-rules", rules.UpsertWeekly)
		staff.DELETE("/weekly-rules/:id", rules.DeleteWeekly)
		staff.PUT("/work-rules", rules.UpsertWork)
		staff.DELETE("/work-rules/:id", rules.DeleteWork)

		staff.POST("/events", events.Create)
		staff.GET("/events", events.List)
		staff.DELETE("/events/:id", events.Delete)
		staff.POST("/events/:id/restore", events.Restore)

		staff.PUT("/overrides", overrides.Upsert)
		staff.GET("/overrides", overrides.List)
		staff.DELETE("/overrides/:employeeId/:date", overrides.Delete)
	}

	admin := api.Group("")
	admin.Use(middleware.AuthRequired(cfg.JwtSecret), middleware.RequireRole("admin"))
	{
		admin.POST("/events/:id/approve-second", events.ApproveSecond)
		admin.POST("/timesheet/resolve-month", timesheets.ResolveMonth)
		admin.POST("/overtime-ledger/:employeeId/:year/recompute", ledgers.Recompute)
		admin.GET("/risk", risk.ScoreAll)
		admin.GET("/settings/risk-weights", risk.Weights)
		admin.PUT("/settings/risk-weights", risk.SaveWeights)
	}
}
