package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mpcbarbosa/SeniorCare/config"
	"github.com/mpcbarbosa/SeniorCare/internal/api/handler"
	"github.com/mpcbarbosa/SeniorCare/internal/api/middleware"
	"github.com/mpcbarbosa/SeniorCare/internal/metrics"
	"github.com/mpcbarbosa/SeniorCare/internal/model"
	"github.com/mpcbarbosa/SeniorCare/pkg/jwt"
	"github.com/mpcbarbosa/SeniorCare/pkg/redis"
)

// Setup builds the gin engine. rdb and m may be nil.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, m *metrics.Metrics, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	// A nil *redis.Client must not end up in a non-nil interface.
	var (
		blacklist middleware.Blacklist
		limiter   middleware.WindowLimiter
	)
	if rdb != nil {
		blacklist = rdb
		limiter = rdb
	}

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	if cfg.Server.BodyLimit > 0 {
		r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))
	}
	if m != nil {
		r.Use(middleware.Metrics(m))
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authLimit := middleware.RateLimit(limiter, cfg.RateLimit.Requests, cfg.RateLimit.Window)

	v1 := r.Group("/api/v1")
	{
		// ── public ──
		v1.POST("/auth/register", authLimit, h.Auth.Register)
		v1.POST("/auth/login", authLimit, h.Auth.Login)
		v1.POST("/caregiver/register", authLimit, h.Auth.RegisterCaregiver)
		v1.POST("/caregiver/login", authLimit, h.Auth.LoginCaregiver)
		v1.GET("/health/types", h.Health.Types)

		authorized := v1.Group("")
		authorized.Use(middleware.Identity(jwtMgr, blacklist))

		// ── senior user ──
		user := authorized.Group("")
		user.Use(middleware.SubjectAuth(model.SubjectUser))
		{
			user.POST("/auth/logout", h.Auth.Logout)
			user.GET("/user/profile", h.User.Profile)
			user.POST("/user/activity", h.User.Heartbeat)
			user.POST("/caregivers/link", h.User.LinkCaregiver)

			meds := user.Group("/medications")
			{
				meds.GET("", h.Medication.List)
				meds.POST("", h.Medication.Create)
				meds.GET("/today", h.Medication.Today)
				meds.GET("/adherence/export", h.Export.Adherence)
				meds.GET("/:id", h.Medication.Get)
				meds.PUT("/:id", h.Medication.Update)
				meds.DELETE("/:id", h.Medication.Delete)
				meds.POST("/:id/take", h.Medication.Take)
			}

			user.GET("/calendar.ics", h.Export.Calendar)

			user.GET("/contacts", h.Routine.ListContacts)
			user.POST("/contacts", h.Routine.CreateContact)
			user.DELETE("/contacts/:id", h.Routine.DeleteContact)

			user.GET("/activities", h.Routine.TodayActivities)
			user.POST("/activities", h.Routine.CreateActivity)
			user.DELETE("/activities/:id", h.Routine.DeleteActivity)

			alerts := user.Group("/alerts")
			{
				alerts.POST("/emergency", h.Alert.Emergency)
				alerts.GET("", h.Alert.List)
				alerts.GET("/config", h.Alert.GetConfig)
				alerts.PUT("/config", h.Alert.UpdateConfig)
			}
			user.GET("/notifications/log", h.Alert.NotificationLog)

			user.POST("/mood", h.Companion.LogMood)
			user.GET("/mood/recent", h.Companion.RecentMood)
			user.GET("/chat/messages", h.Companion.ChatHistory)
			user.POST("/chat/send", h.Companion.SendChat)

			appts := user.Group("/appointments")
			{
				appts.GET("", h.Appointment.List)
				appts.POST("", h.Appointment.Create)
				appts.GET("/upcoming", h.Appointment.Upcoming)
				appts.PUT("/:id", h.Appointment.Update)
				appts.DELETE("/:id", h.Appointment.Delete)
			}

			readings := user.Group("/health/readings")
			{
				readings.GET("", h.Health.List)
				readings.POST("", h.Health.Create)
				readings.GET("/latest", h.Health.Latest)
				readings.GET("/summary", h.Health.Summary)
				readings.DELETE("/:id", h.Health.Delete)
			}
		}

		// ── caregiver ──
		caregiver := authorized.Group("/caregiver")
		caregiver.Use(middleware.SubjectAuth(model.SubjectCaregiver))
		{
			caregiver.GET("/users", h.Caregiver.ListUsers)
			caregiver.GET("/users/:id/summary", h.Caregiver.Summary)
			caregiver.GET("/users/:id/medications/today", h.Caregiver.MedicationsToday)
			caregiver.PUT("/alerts/:id/resolve", h.Caregiver.ResolveAlert)
			if h.Stream != nil {
				caregiver.GET("/ws", h.Stream.Alerts)
			}
		}
	}

	return r
}
