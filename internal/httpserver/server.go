package httpserver

import (
	"context"
	"database/sql"
	"log/slog"
	"net"
	"net/http"

	"truckfleet/internal/auth"
	"truckfleet/internal/config"
	"truckfleet/internal/service"
)

// Server binds the HTTP API to the service layer.
type Server struct {
	log       *slog.Logger
	db        *sql.DB
	auth      *service.AuthService
	users     *service.UserService
	trucks    *service.TruckService
	locations *service.LocationService
	orders    *service.OrderService
}

func New(log *slog.Logger, db *sql.DB, authSvc *service.AuthService, users *service.UserService,
	trucks *service.TruckService, locations *service.LocationService, orders *service.OrderService) *Server {
	return &Server{
		log:       log,
		db:        db,
		auth:      authSvc,
		users:     users,
		trucks:    trucks,
		locations: locations,
		orders:    orders,
	}
}

// Handler builds the route table and wraps it in the middleware chain.
// Signup, login and health are the only unauthenticated routes.
func (s *Server) Handler(jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/signup", s.handleSignup)
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("GET /users", s.handleListUsers)
	mux.HandleFunc("GET /users/{id}", s.handleGetUser)
	mux.HandleFunc("PATCH /users/{id}", s.handleUpdateUser)
	mux.HandleFunc("DELETE /users/{id}", s.handleDeleteUser)

	mux.HandleFunc("POST /trucks", s.handleCreateTruck)
	mux.HandleFunc("GET /trucks", s.handleListTrucks)
	mux.HandleFunc("GET /trucks/{id}", s.handleGetTruck)
	mux.HandleFunc("PATCH /trucks/{id}", s.handleUpdateTruck)
	mux.HandleFunc("DELETE /trucks/{id}", s.handleDeleteTruck)

	mux.HandleFunc("POST /locations", s.handleCreateLocation)
	mux.HandleFunc("GET /locations", s.handleListLocations)
	mux.HandleFunc("GET /locations/{id}", s.handleGetLocation)
	mux.HandleFunc("PATCH /locations/{id}", s.handleUpdateLocation)
	mux.HandleFunc("DELETE /locations/{id}", s.handleDeleteLocation)

	mux.HandleFunc("POST /orders", s.handleCreateOrder)
	mux.HandleFunc("GET /orders", s.handleListOrders)
	mux.HandleFunc("GET /orders/stats/status", s.handleOrderStats)
	mux.HandleFunc("GET /orders/{id}", s.handleGetOrder)
	mux.HandleFunc("PATCH /orders/{id}", s.handleUpdateOrder)
	mux.HandleFunc("PATCH /orders/{id}/status", s.handleChangeOrderStatus)
	mux.HandleFunc("DELETE /orders/{id}", s.handleDeleteOrder)

	var h http.Handler = mux
	h = auth.Middleware(jwtSecret,
		"POST /auth/signup",
		"POST /auth/login",
		"GET /health",
	)(h)
	h = Recovery(s.log)(h)
	h = Logging(s.log)(h)
	h = RequestID()(h)
	return h
}

// Start begins serving on the configured address and returns a shutdown
// function that drains in-flight requests within the given context.
func Start(cfg *config.Config, s *Server) (func(context.Context) error, error) {
	lis, err := net.Listen("tcp", cfg.HTTP.Address)
	if err != nil {
		return nil, err
	}

	srv := &http.Server{Handler: s.Handler(cfg.Auth.JWTSecret)}
	go func() {
		if err := srv.Serve(lis); err != nil && err != http.ErrServerClosed {
			s.log.Error("http server stopped", "error", err)
		}
	}()

	return func(ctx context.Context) error {
		return srv.Shutdown(ctx)
	}, nil
}
