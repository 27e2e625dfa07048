package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"turfmania/internal/infra/config"
	"turfmania/internal/infra/obs"
)

type SlotHTTP interface {
	Generate(c *gin.Context)
	Available(c *gin.Context)
}

type BookingHTTP interface {
	Create(c *gin.Context)
	CompleteCash(c *gin.Context)
	CompleteStripe(c *gin.Context)
	Reject(c *gin.Context)
	ListByTurf(c *gin.Context)
	Mine(c *gin.Context)
	MonthlyEarnings(c *gin.Context)
	CurrentMonthEarnings(c *gin.Context)
}

type ReviewHTTP interface {
	Submit(c *gin.Context)
	List(c *gin.Context)
}

type Handlers struct {
	Slots          SlotHTTP
	Bookings       BookingHTTP
	Reviews        ReviewHTTP
	AuthMiddleware gin.HandlerFunc
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "Idempotency-Key"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))
	if h.AuthMiddleware != nil {
		router.Use(h.AuthMiddleware)
	}

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Slots != nil {
		api.POST("/timeslot/generate", h.Slots.Generate)
		api.GET("/timeslot/available/:turfId", h.Slots.Available)
	}
	if h.Bookings != nil {
		api.POST("/bookings", h.Bookings.Create)
		api.PUT("/bookings/:id/complete-cash", h.Bookings.CompleteCash)
		api.PUT("/bookings/:id/complete-stripe", h.Bookings.CompleteStripe)
		api.PUT("/bookings/:id/reject", h.Bookings.Reject)
		api.GET("/bookings/me", h.Bookings.Mine)
		api.GET("/bookings/turf/:turfId", h.Bookings.ListByTurf)
		api.GET("/bookings/turf/:turfId/monthly-earnings", h.Bookings.MonthlyEarnings)
		api.GET("/bookings/turf/:turfId/current-month-earnings", h.Bookings.CurrentMonthEarnings)
	}
	if h.Reviews != nil {
		api.POST("/turfs/:turfId/reviews", h.Reviews.Submit)
		api.GET("/turfs/:turfId/reviews", h.Reviews.List)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
