package routes

import (
	"github.com/Dosada05/competition-registry/handlers"
	"github.com/Dosada05/competition-registry/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRoutes собирает все маршруты приложения.
// Публичная часть — просмотр соревнований, форма регистрации, протокол
// и live-лента; всё администрирование закрыто JWT.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	competitionHandler *handlers.CompetitionHandler,
	raceHandler *handlers.RaceHandler,
	startHandler *handlers.StartHandler,
	categoryHandler *handlers.CategoryHandler,
	specialCategoryHandler *handlers.SpecialCategoryHandler,
	registrationHandler *handlers.RegistrationHandler,
	rosterHandler *handlers.RosterHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	router.Post("/auth/login", authHandler.Login)

	router.Route("/competitions", func(r chi.Router) {
		// Публичные маршруты
		r.Get("/", competitionHandler.GetAllCompetitions)
		r.Get("/{competitionID}", competitionHandler.GetCompetitionByID)
		r.Get("/{competitionID}/races", raceHandler.ListRacesByCompetition)
		r.Get("/{competitionID}/registration-form", competitionHandler.GetRegistrationForm)
		r.Get("/{competitionID}/roster", rosterHandler.GetCompetitionRoster)
		r.Post("/{competitionID}/participants", registrationHandler.RegisterParticipant)

		// Администрирование
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))

			r.Post("/", competitionHandler.CreateCompetition)
			r.Put("/{competitionID}", competitionHandler.UpdateCompetition)
			r.Delete("/{competitionID}", competitionHandler.DeleteCompetition)
			r.Post("/{competitionID}/announcement", competitionHandler.UploadAnnouncement)
			r.Post("/{competitionID}/races", raceHandler.CreateRace)
			r.Put("/{competitionID}/participants/{participantID}", registrationHandler.UpdateParticipant)
		})
	})

	router.Route("/races", func(r chi.Router) {
		r.Get("/{raceID}", raceHandler.GetRaceByID)
		r.Get("/{raceID}/starts", startHandler.ListStartsByRace)
		r.Get("/{raceID}/special-categories", specialCategoryHandler.ListSpecialCategoriesByRace)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))

			r.Put("/{raceID}", raceHandler.UpdateRace)
			r.Delete("/{raceID}", raceHandler.DeleteRace)
			r.Post("/{raceID}/starts", startHandler.CreateStart)
			r.Post("/{raceID}/special-categories", specialCategoryHandler.CreateSpecialCategory)
		})
	})

	router.Route("/starts", func(r chi.Router) {
		r.Get("/{startID}/categories", categoryHandler.ListCategoriesByStart)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))

			r.Put("/{startID}", startHandler.UpdateStart)
			r.Delete("/{startID}", startHandler.DeleteStart)
			r.Post("/{startID}/categories", categoryHandler.CreateCategory)
		})
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(jwtSecret))

		r.Post("/auth/users", authHandler.RegisterUser)

		r.Put("/categories/{categoryID}", categoryHandler.UpdateCategory)
		r.Delete("/categories/{categoryID}", categoryHandler.DeleteCategory)

		r.Put("/special-categories/{specialCategoryID}", specialCategoryHandler.UpdateSpecialCategory)
		r.Delete("/special-categories/{specialCategoryID}", specialCategoryHandler.DeleteSpecialCategory)

		r.Get("/participants/{participantID}", registrationHandler.GetParticipantByID)
		r.Delete("/participants/{participantID}", registrationHandler.DeleteParticipant)
	})

	router.Get("/ws/competitions/{competitionID}", webSocketHandler.ServeWs)
}
