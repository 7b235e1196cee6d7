// Package main starts the event admissions API server.
//
// @title Event Admissions API
// @version 1.0
// @description Registration, admission, and pricing for multi-session events.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"database/sql"
	"net/http"
	"os"

	_ "github.com/lib/pq"

	"eventadmissions/config"
	_ "eventadmissions/docs"
	adapterauth "eventadmissions/internal/adapters/auth"
	adapteremail "eventadmissions/internal/adapters/email"
	delivery "eventadmissions/internal/delivery/http"
	"eventadmissions/internal/delivery/http/controllers"
	"eventadmissions/internal/delivery/http/middleware"
	"eventadmissions/internal/repository/postgres"
	"eventadmissions/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to reach database", "err", err)
		os.Exit(1)
	}

	// Repositories
	eventRepo := postgres.NewEventRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	productRepo := postgres.NewProductRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	userRepo := postgres.NewUserRepository(db)
	roleRepo := postgres.NewRoleRepository(db)

	// Adapters
	hasher := adapterauth.NewBcryptHasher(cfg.BcryptCost)
	tokenIssuer := adapterauth.NewJWTIssuer(cfg.JWTSecret)
	tokenVerifier := adapterauth.NewJWTVerifier(cfg.JWTSecret)
	mailer, err := adapteremail.NewMailer(adapteremail.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: adapteremail.SESConfig{
			Region:             cfg.Email.SESRegion,
			AccessKeyID:        cfg.Email.SESAccessKeyID,
			SecretAccessKey:    cfg.Email.SESSecretAccessKey,
			InsecureSkipVerify: cfg.Email.SESInsecureSkipTLS,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}

	// Services
	emailSvc := services.NewEmailService(mailer, adapteremail.NewTemplateRenderer())
	authSvc := services.NewAuthService(userRepo, roleRepo, hasher, tokenIssuer, cfg.JWTExpiry)
	capacitySvc := services.NewCapacityService(sessionRepo, orderRepo)
	catalogSvc := services.NewCatalogService(eventRepo, sessionRepo, productRepo, capacitySvc)
	registrationSvc := services.NewRegistrationService(eventRepo, sessionRepo, productRepo, orderRepo, userRepo, emailSvc)

	// Controllers
	authController := controllers.NewAuthController(logger, authSvc)
	catalogController := controllers.NewCatalogController(logger, catalogSvc)
	registrationController := controllers.NewRegistrationController(logger, registrationSvc)
	orderController := controllers.NewOrderController(logger, registrationSvc)

	mux := delivery.NewRouter(authController, catalogController, registrationController, orderController, tokenVerifier)

	var handler http.Handler = mux
	handler = middleware.CORS(cfg.CORSAllowedOrigins, handler)
	handler = middleware.LoggingMiddleware(logger, handler)

	addr := ":" + cfg.Port
	logger.Info("starting server", "addr", addr, "env", cfg.Environment)
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
