package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"
	"github.com/rs/cors"
	_ "time/tzdata"

	"github.com/Rafium-MS/territorio-app/internal/app"
	"github.com/Rafium-MS/territorio-app/internal/config"
	"github.com/Rafium-MS/territorio-app/internal/constants"
	"github.com/Rafium-MS/territorio-app/internal/controllers"
	"github.com/Rafium-MS/territorio-app/internal/middleware"
	"github.com/Rafium-MS/territorio-app/internal/repositories"
	"github.com/Rafium-MS/territorio-app/internal/routes"
	"github.com/Rafium-MS/territorio-app/internal/services"
	"github.com/Rafium-MS/territorio-app/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()
	defer cfg.Close()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize territorio-app:", err)
	}
	defer application.Close()

	if err := application.InitSchema(context.Background()); err != nil {
		utils.Logger.Fatal("Failed to initialize database schema:", err)
	}

	// Repositories
	territoryRepo := repositories.NewTerritoryRepository(application.DB)
	streetRepo := repositories.NewStreetRepository(application.DB)
	propertyRepo := repositories.NewPropertyRepository(application.DB)
	outingRepo := repositories.NewOutingRepository(application.DB)
	assignmentRepo := repositories.NewAssignmentRepository(application.DB)
	visitRepo := repositories.NewVisitRecordRepository(application.DB)
	userRepo := repositories.NewUserRepository(application.DB)

	if cfg.SeedDemoData {
		if err := application.SeedDemoData(context.Background()); err != nil {
			utils.Logger.Fatal("Failed to seed demo data:", err)
		}
	}

	// Services
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	territoryService := services.NewTerritoryService(territoryRepo, streetRepo, propertyRepo)
	outingService := services.NewOutingService(outingRepo, assignmentRepo)
	assignmentService := services.NewAssignmentService(assignmentRepo, territoryRepo, outingRepo)
	visitService := services.NewVisitService(visitRepo, territoryRepo, streetRepo, propertyRepo)
	overdueDigest := services.NewOverdueDigestService(assignmentRepo, territoryRepo)

	// Controllers
	healthController := controllers.NewHealthController(application)
	authController := controllers.NewAuthController(authService)
	territoryController := controllers.NewTerritoryController(territoryService, visitService)
	outingController := controllers.NewOutingController(outingService)
	assignmentController := controllers.NewAssignmentController(assignmentService)
	visitController := controllers.NewVisitController(visitService)

	// Router setup
	router := mux.NewRouter()

	// Public routes
	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.AuthLogin, authController.LoginHandler).Methods(http.MethodPost)

	// Secured routes
	secured := router.NewRoute().Subrouter()
	secured.Use(middleware.AuthMiddleware(cfg.JWTSecret))

	secured.HandleFunc(routes.Territories, territoryController.CreateHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.Territories, territoryController.ListHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.TerritoryByID, territoryController.GetHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.TerritoryByID, territoryController.UpdateHandler).Methods(http.MethodPut)
	secured.HandleFunc(routes.TerritoryStreets, territoryController.AddStreetHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.TerritoryStreets, territoryController.ListStreetsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.TerritoryProperties, territoryController.AddPropertyHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.TerritoryProperties, territoryController.ListPropertiesHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.TerritoryProgress, territoryController.ProgressHandler).Methods(http.MethodGet)

	secured.HandleFunc(routes.Outings, outingController.CreateHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.Outings, outingController.ListHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.OutingsNext, outingController.NextHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.OutingCalendar, outingController.CalendarHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.OutingByID, outingController.GetHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.OutingByID, outingController.UpdateHandler).Methods(http.MethodPut)

	secured.HandleFunc(routes.Assignments, assignmentController.CreateHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.Assignments, assignmentController.ListHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.AssignmentsActive, assignmentController.ActiveListHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.AssignmentsToday, assignmentController.TodayHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.AssignmentsUpcoming, assignmentController.UpcomingHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.AssignmentsStats, assignmentController.StatsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.AssignmentsTerritory, assignmentController.ActiveForTerritoryHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.AssignmentByID, assignmentController.GetHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.AssignmentByID, assignmentController.UpdateHandler).Methods(http.MethodPut)
	secured.HandleFunc(routes.AssignmentComplete, assignmentController.CompleteHandler).Methods(http.MethodPut)

	secured.HandleFunc(routes.Visits, visitController.RecordHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.Visits, visitController.ListHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.VisitsStats, visitController.StatsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.VisitsProperty, visitController.LatestForPropertyHandler).Methods(http.MethodGet)

	// Admin-only routes
	admin := router.NewRoute().Subrouter()
	admin.Use(middleware.AuthMiddleware(cfg.JWTSecret), middleware.RequireAdmin)
	admin.HandleFunc(routes.AuthRegister, authController.RegisterHandler).Methods(http.MethodPost)
	admin.HandleFunc(routes.TerritoryByID, territoryController.DeleteHandler).Methods(http.MethodDelete)
	admin.HandleFunc(routes.OutingByID, outingController.DeleteHandler).Methods(http.MethodDelete)
	admin.HandleFunc(routes.AssignmentByID, assignmentController.DeleteHandler).Methods(http.MethodDelete)

	// Cron job setup
	c := cron.New(cron.WithLocation(time.UTC))
	_, err = c.AddFunc(constants.OverdueDigestCronSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), constants.OverdueDigestTimeout)
		defer cancel()
		if err := overdueDigest.RunDaily(ctx); err != nil {
			utils.Logger.WithError(err).Error("Overdue digest run failed")
		}
	})
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to schedule overdue digest cron")
	}
	c.Start()
	utils.Logger.Info("Scheduled overdue digest cron job")

	allowedOrigins := []string{cfg.AppUrl}
	if cfg.CORSAllowLocalhost {
		allowedOrigins = append(allowedOrigins, constants.CORSAllowedOriginLocalhost)
	}

	co := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("territorio-app failed to start:", err)
	}
}
