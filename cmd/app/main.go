package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"warehouse/cmd"
	warehousehttp "warehouse/internal/adapters/in/http"
	"warehouse/internal/adapters/out/postgres/accountrepo"
	"warehouse/internal/adapters/out/postgres/addressrepo"
	"warehouse/internal/adapters/out/postgres/itemrepo"
	"warehouse/internal/adapters/out/postgres/ledgerrepo"
	"warehouse/internal/adapters/out/postgres/notificationrepo"
	"warehouse/internal/adapters/out/postgres/parcelrepo"
	"warehouse/internal/adapters/out/postgres/shipgrouprepo"
	"warehouse/internal/jobs"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB, err := openDatabase(configs)
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Error building composition root: %v", err)
	}

	jobManager := jobs.NewJobManager(app.CreateSweepStorageCommandHandler(), logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:           goDotEnvVariable("HTTP_PORT"),
		DBHost:             goDotEnvVariable("DB_HOST"),
		DBPort:             goDotEnvVariable("DB_PORT"),
		DBUser:             goDotEnvVariable("DB_USER"),
		DBPassword:         goDotEnvVariable("DB_PASSWORD"),
		DBName:             goDotEnvVariable("DB_NAME"),
		DBSslMode:          goDotEnvVariable("DB_SSLMODE"),
		FedexAPIKey:        goDotEnvVariable("FEDEX_API_KEY"),
		FedexSecretKey:     goDotEnvVariable("FEDEX_SECRET_KEY"),
		FedexAccountNumber: goDotEnvVariable("FEDEX_ACCOUNT_NUMBER"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode,
	)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = gormDB.AutoMigrate(
		&parcelrepo.ParcelDTO{},
		&itemrepo.ItemDTO{},
		&accountrepo.AccountDTO{},
		&addressrepo.AddressDTO{},
		&shipgrouprepo.GroupDTO{},
		&ledgerrepo.EntryDTO{},
		&notificationrepo.NotificationDTO{},
	)
	if err != nil {
		return nil, err
	}

	return gormDB, nil
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	server := warehousehttp.NewServer(warehousehttp.Handlers{
		PayDomesticShipping:   app.CreatePayDomesticShippingCommandHandler(),
		PayStorage:            app.CreatePayStorageCommandHandler(),
		ConfigureOptions:      app.CreateConfigureOptionsCommandHandler(),
		RequestDisposal:       app.CreateRequestDisposalCommandHandler(),
		RequestShipping:       app.CreateRequestShippingCommandHandler(),
		CreateParcel:          app.CreateCreateParcelCommandHandler(),
		SetWeight:             app.CreateSetWeightCommandHandler(),
		CompleteConsolidation: app.CreateCompleteConsolidationCommandHandler(),
		Deconsolidate:         app.CreateDeconsolidateCommandHandler(),
		UploadPhotos:          app.CreateUploadPhotosCommandHandler(),
		CompleteReinforcement: app.CreateCompleteReinforcementCommandHandler(),
		MarkShipped:           app.CreateMarkShippedCommandHandler(),
		MarkDisposed:          app.CreateMarkDisposedCommandHandler(),
		DeclineDisposal:       app.CreateDeclineDisposalCommandHandler(),

		GetUserParcels:           app.CreateGetUserParcelsQueryHandler(),
		GetWarehouseParcels:      app.CreateGetWarehouseParcelsQueryHandler(),
		GetConsolidationRequests: app.CreateGetConsolidationRequestsQueryHandler(),
	})

	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
