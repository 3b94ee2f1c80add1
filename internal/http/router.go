// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"voyager/internal/http/handlers"
	"voyager/internal/http/middleware"
)

// Routes builds the gin engine and wraps it in CORS handling.
func (s *Server) Routes() http.Handler {
	r := gin.New()
	r.Use(middleware.Recovery(s.log), middleware.Logging(s.log))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	if s.deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(s.deps.Metrics.Handler()))
	}

	api := r.Group("/api", middleware.MaxBody(s.deps.MaxBodyBytes))
	if s.deps.Verifier != nil {
		api.Use(middleware.Auth(s.deps.Verifier))
	}

	var recorder handlers.SessionRecorder
	if s.deps.Sessions != nil {
		recorder = s.deps.Sessions
		sessionHandler := handlers.NewSessionHandler(s.deps.Sessions, s.log)
		api.POST("/sessions", sessionHandler.Create)
		api.GET("/sessions/:id", sessionHandler.Get)
		api.POST("/sessions/:id/reset", sessionHandler.Reset)
		api.DELETE("/sessions/:id", sessionHandler.Delete)
	}

	travelHandler := handlers.NewTravelHandler(s.deps.Planner, recorder, s.log)
	limiter := middleware.NewRateLimiter(s.deps.RatePerMinute)
	api.POST("/travel", limiter.Limit(), travelHandler.Handle)

	if s.deps.Fixtures != nil {
		fixtureHandler := handlers.NewFixtureHandler(s.deps.Fixtures, s.log)
		api.GET("/itinerary", fixtureHandler.Itinerary)
		api.GET("/feedback", fixtureHandler.Feedback)
		api.GET("/booking", fixtureHandler.Booking)
	}

	api.GET("/geocode", handlers.NewGeocodeHandler(s.deps.Geocoder).Lookup)
	api.POST("/export/pdf", handlers.NewExportHandler(s.log).PDF)

	if s.deps.Usage != nil {
		api.GET("/usage", handlers.NewUsageHandler(s.deps.Usage, s.log).Summary)
	}

	return cors.New(cors.Options{
		AllowedOrigins:   s.deps.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
	}).Handler(r)
}
