package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/phrazzld/tili-api/internal/api"
	apiMiddleware "github.com/phrazzld/tili-api/internal/api/middleware"
)

// devFrontendOrigin is the Vite dev server used while building the Mini App.
const devFrontendOrigin = "http://localhost:5173"

// allowedOrigins returns the CORS origins for the configured frontend.
func (app *application) allowedOrigins() []string {
	origins := []string{devFrontendOrigin}
	if app.config.Server.FrontendURL != "" && app.config.Server.FrontendURL != devFrontendOrigin {
		origins = append(origins, app.config.Server.FrontendURL)
	}
	return origins
}

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.Trace(app.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.allowedOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{apiMiddleware.TraceIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.verifier)

	cardHandler := api.NewCardHandler(app.cardService, app.logger)
	translateHandler := api.NewTranslateHandler(app.translator, app.logger)
	practiceHandler := api.NewPracticeHandler(app.cardReviewService, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", api.Health)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/cards/translate", translateHandler.Translate)
			r.Post("/cards", cardHandler.CreateCard)
			r.Get("/cards", cardHandler.ListCards)
			r.Get("/cards/{id}", cardHandler.GetCard)
			r.Put("/cards/{id}", cardHandler.UpdateCard)
			r.Delete("/cards/{id}", cardHandler.DeleteCard)

			r.Get("/practice/due", practiceHandler.DueCards)
			r.Post("/practice/review", practiceHandler.SubmitReview)

			r.Get("/stats", cardHandler.GetStats)
		})
	})

	return r
}
