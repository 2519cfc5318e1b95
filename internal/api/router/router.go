// Package router assembles the HTTP surface: middleware order, route
// groups and the public/protected split.
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"schoolsync/backend/config"
	"schoolsync/backend/internal/api/handler"
	"schoolsync/backend/internal/api/middleware"
	"schoolsync/backend/pkg/jwt"
	"schoolsync/backend/pkg/redis"
)

// New builds the gin engine with all routes registered.
func New(cfg *config.Config, h *handler.Handler, tokens *jwt.Manager, cache *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// The feed is consumed by calendar clients that cannot send bearer
	// tokens, so it stays outside the protected group.
	r.GET("/classes/feed.ics", h.Class.Feed)

	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimit(cache, 10, time.Minute, logger), h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
	}

	protected := v1.Group("")
	protected.Use(middleware.JWTAuth(tokens, cache, logger))
	{
		protected.POST("/auth/logout", h.Auth.Logout)

		calendarAuth := protected.Group("/auth/calendar")
		{
			calendarAuth.GET("/url", h.Auth.CalendarAuthURL)
			calendarAuth.POST("/login", h.Auth.CalendarLogin)
			calendarAuth.POST("/logout", h.Auth.CalendarLogout)
			calendarAuth.GET("/status", h.Auth.CalendarStatus)
		}

		students := protected.Group("/students")
		{
			students.POST("", h.Student.Create)
			students.GET("", h.Student.List)
			students.GET("/:id", h.Student.Get)
			students.PATCH("/:id", h.Student.Update)
			students.DELETE("/:id", h.Student.Delete)
			students.GET("/:id/classes", h.Reservation.StudentClasses)
		}

		teachers := protected.Group("/teachers")
		{
			teachers.POST("", h.Teacher.Create)
			teachers.GET("", h.Teacher.List)
			teachers.GET("/:id", h.Teacher.Get)
			teachers.PATCH("/:id", h.Teacher.Update)
			teachers.DELETE("/:id", h.Teacher.Delete)
			teachers.GET("/:id/classes", h.Teacher.Classes)
		}

		classes := protected.Group("/classes")
		{
			classes.POST("", h.Class.Create)
			classes.GET("", h.Class.List)
			classes.GET("/:id", h.Class.Get)
			classes.PATCH("/:id", h.Class.Update)
			classes.DELETE("/:id", h.Class.Delete)
			classes.GET("/:id/students", h.Reservation.Roster)
		}

		reservations := protected.Group("/reservations")
		{
			reservations.POST("", h.Reservation.Reserve)
			reservations.POST("/cancel", h.Reservation.Cancel)
		}

		workHours := protected.Group("/work-hours")
		{
			workHours.POST("", h.Billing.LogWorkHours)
			workHours.GET("", h.Billing.ListWorkHours)
		}

		paychecks := protected.Group("/paychecks")
		{
			paychecks.POST("", h.Billing.GeneratePaycheck)
			paychecks.POST("/preview", h.Billing.PayrollPreview)
			paychecks.GET("", h.Billing.ListPaychecks)
			paychecks.POST("/:id/pay", h.Billing.PayPaycheck)
		}

		invoices := protected.Group("/invoices")
		{
			invoices.GET("", h.Billing.ListInvoices)
			invoices.POST("/:id/pay", h.Billing.PayInvoice)
			invoices.GET("/:id/student", h.Billing.InvoiceStudent)
		}

		protected.GET("/exports/billing", h.Export.BillingReport)
	}

	return r
}
