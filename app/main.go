package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	"hajjapply/config"
	"hajjapply/imagehost"
	"hajjapply/services/hajj/delivery"
	"hajjapply/services/hajj/repository"
	"hajjapply/services/hajj/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var log *logrus.Logger
var wg sync.WaitGroup

const useCaseTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file found, relying on process environment")
	}

	log = config.GetLogrusInstance()

	startHTTP()
}

func startHTTP() {
	log.Info("Starting HTTP")
	app := fiber.New(config.GetFiberConfig())

	// CORS Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Delete-Password",
	}))

	db, err := config.BootDB()
	if err != nil {
		log.Fatalf("Failed to boot applicant store: %v", err)
		return
	}

	credentialsPool, err := config.BootCredentialsPool(context.Background())
	if err != nil {
		log.Fatalf("Failed to boot credentials store: %v", err)
		return
	}
	defer credentialsPool.Close()

	applicantRepo := repository.NewApplicantRepository(db)
	userRepo := repository.NewUserRepository(credentialsPool)
	authRepo := repository.NewAuthRepository(credentialsPool)

	applicantUC := usecase.NewApplicantUseCase(applicantRepo, useCaseTimeout)
	reportUC := usecase.NewReportUseCase(applicantRepo, useCaseTimeout)
	userUC := usecase.NewUserUseCase(userRepo, useCaseTimeout)
	authUC := usecase.NewAuthUseCase(authRepo, useCaseTimeout)

	uploader := imagehost.NewClient(&http.Client{Timeout: 60 * time.Second})

	delivery.NewAuthHandler(app, authUC)
	delivery.NewUserHandler(app, userUC)
	delivery.NewApplicantHandler(app, applicantUC, uploader)
	delivery.NewReportHandler(app, reportUC)

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Infof("Starting HTTP server on port %s", config.GetFiberHttpPort())
		if err := app.Listen(config.GetFiberListenAddress()); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, os.Kill)

	<-signalChan

	log.Info("Shutting down the server...")

	if err := app.Shutdown(); err != nil {
		log.Errorf("Error during server shutdown: %v", err)
	}

	wg.Wait()
	log.Info("Server shut down gracefully")
}
