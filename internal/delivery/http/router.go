package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventadmissions/internal/delivery/http/controllers"
	"eventadmissions/internal/delivery/http/middleware"
	"eventadmissions/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	authController *controllers.AuthController,
	catalogController *controllers.CatalogController,
	registrationController *controllers.RegistrationController,
	orderController *controllers.OrderController,
	verifier domain.TokenVerifier,
) *http.ServeMux {
	mux := http.NewServeMux()

	requireAuth := middleware.RequireAuth(verifier, authController.Logger)
	requireAdmin := middleware.RequireRole("admin")

	// Auth
	mux.HandleFunc("POST /auth/signup", authController.SignUp)
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Catalog
	mux.HandleFunc("GET /events", catalogController.ListEvents)
	mux.HandleFunc("GET /events/{eventID}", catalogController.GetEvent)

	// Registrations
	mux.HandleFunc("POST /events/{eventID}/registrations/guest", registrationController.RegisterGuest)
	mux.HandleFunc("POST /events/{eventID}/registrations/member", requireAuth(registrationController.RegisterMember))

	// Orders (admin)
	mux.HandleFunc("GET /orders/{orderID}", requireAuth(requireAdmin(orderController.GetOrder)))
	mux.HandleFunc("PUT /orders/{orderID}/lines", requireAuth(requireAdmin(orderController.AdjustOrder)))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
