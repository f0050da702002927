package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	_ "time/tzdata"

	"github.com/lodgeline/rent-service/internal/app"
	"github.com/lodgeline/rent-service/internal/config"
	"github.com/lodgeline/rent-service/internal/controllers"
	"github.com/lodgeline/rent-service/internal/middleware"
	"github.com/lodgeline/rent-service/internal/repositories"
	"github.com/lodgeline/rent-service/internal/routes"
	"github.com/lodgeline/rent-service/internal/services"
	"github.com/lodgeline/rent-service/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize rent-service:", err)
	}
	defer application.Close()

	// Repositories
	propRepo := repositories.NewPropertyRepository(application.DB)
	tenantRepo := repositories.NewTenantRepository(application.DB)
	entryRepo := repositories.NewRentEntryRepository(application.DB)
	assignRepo := repositories.NewAssignmentRepository(application.DB)

	// Services
	scheduleService := services.NewRentScheduleService(tenantRepo, propRepo, entryRepo, time.Now)
	assignmentService := services.NewAssignmentService(propRepo, tenantRepo, assignRepo, scheduleService)
	propertyService := services.NewPropertyService(propRepo, tenantRepo, entryRepo)
	tenantService := services.NewTenantService(tenantRepo, propRepo, entryRepo)
	entryService := services.NewRentEntryService(entryRepo, propRepo, tenantRepo, scheduleService, time.Now)

	if cfg.SeedDbWithTestData {
		if err := app.SeedTestData(context.Background(), propRepo, tenantRepo, assignRepo, scheduleService.BuildSchedule); err != nil {
			utils.Logger.Fatal("Failed to seed test data:", err)
		}
	}

	// Controllers
	healthController := controllers.NewHealthController(application)
	propertyController := controllers.NewPropertyController(propertyService, assignmentService)
	tenantController := controllers.NewTenantController(tenantService, assignmentService)
	entryController := controllers.NewRentEntryController(entryService, assignmentService)

	// Router setup
	router := mux.NewRouter()

	// Public routes
	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)

	// Secured routes for landlords
	secured := router.NewRoute().Subrouter()
	secured.Use(middleware.AuthMiddleware(cfg.RSAPublicKey))

	secured.HandleFunc(routes.Properties, propertyController.ListPropertiesHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.Properties, propertyController.CreatePropertyHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.PropertyByID, propertyController.GetPropertyHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.PropertyByID, propertyController.UpdatePropertyHandler).Methods(http.MethodPut)
	secured.HandleFunc(routes.PropertyByID, propertyController.DeletePropertyHandler).Methods(http.MethodDelete)
	secured.HandleFunc(routes.PropertyAssignTenant, propertyController.AssignTenantHandler).Methods(http.MethodPost)

	secured.HandleFunc(routes.Tenants, tenantController.ListTenantsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.Tenants, tenantController.CreateTenantHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.TenantByID, tenantController.GetTenantHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.TenantByID, tenantController.UpdateTenantHandler).Methods(http.MethodPut)
	secured.HandleFunc(routes.TenantByID, tenantController.DeleteTenantHandler).Methods(http.MethodDelete)
	secured.HandleFunc(routes.TenantAssignProperty, tenantController.AssignPropertyHandler).Methods(http.MethodPost)

	secured.HandleFunc(routes.RentEntries, entryController.ListRentEntriesHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.RentEntries, entryController.CreateRentEntryHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.RentEntriesRegenerate, entryController.RegenerateHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.RentEntriesStatistics, entryController.StatisticsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.RentEntryByID, entryController.GetRentEntryHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.RentEntryByID, entryController.UpdateRentEntryHandler).Methods(http.MethodPut)
	secured.HandleFunc(routes.RentEntryByID, entryController.DeleteRentEntryHandler).Methods(http.MethodDelete)
	secured.HandleFunc(routes.RentEntryMarkPaid, entryController.MarkPaidHandler).Methods(http.MethodPatch)

	co := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AppUrl},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("rent-service failed to start:", err)
	}
}
